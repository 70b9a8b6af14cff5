package dynamodb

import (
	"context"
	"sort"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"

	"campaign-manager/application/ports"
	"campaign-manager/domain/core/entities"
	"campaign-manager/domain/core/valueobjects"
	"campaign-manager/pkg/observability"
)

// campaignItem represents the DynamoDB item structure for a campaign
type campaignItem struct {
	CampaignID  string   `dynamodbav:"CampaignID"`
	Name        string   `dynamodbav:"Name"`
	Description string   `dynamodbav:"Description"`
	Status      string   `dynamodbav:"Status"`
	Leads       []string `dynamodbav:"Leads"`
	AccountIDs  []string `dynamodbav:"AccountIDs"`
	CreatedAt   string   `dynamodbav:"CreatedAt"`
	UpdatedAt   string   `dynamodbav:"UpdatedAt"`
}

func toCampaignItem(c *entities.Campaign) campaignItem {
	return campaignItem{
		CampaignID:  c.ID().String(),
		Name:        c.Name(),
		Description: c.Description(),
		Status:      c.Status().String(),
		Leads:       c.Leads(),
		AccountIDs:  c.AccountIDs(),
		CreatedAt:   formatTime(c.CreatedAt()),
		UpdatedAt:   formatTime(c.UpdatedAt()),
	}
}

func (i campaignItem) toEntity() (*entities.Campaign, error) {
	id, err := valueobjects.NewCampaignIDFromString(i.CampaignID)
	if err != nil {
		return nil, err
	}
	return entities.ReconstructCampaign(
		id,
		i.Name,
		i.Description,
		valueobjects.CampaignStatus(i.Status),
		i.Leads,
		i.AccountIDs,
		parseTime(i.CreatedAt),
		parseTime(i.UpdatedAt),
	), nil
}

// CampaignRepository implements ports.CampaignRepository on a DynamoDB table
// keyed by CampaignID, with a Status/CreatedAt GSI for filtered listings.
type CampaignRepository struct {
	client      Client
	tableName   string
	statusIndex string
	tracer      *observability.Tracer
	logger      *zap.Logger
}

// NewCampaignRepository creates a new CampaignRepository
func NewCampaignRepository(client Client, tableName, statusIndex string, tracer *observability.Tracer, logger *zap.Logger) *CampaignRepository {
	return &CampaignRepository{
		client:      client,
		tableName:   tableName,
		statusIndex: statusIndex,
		tracer:      tracer,
		logger:      logger.With(zap.String("component", "campaign_repository")),
	}
}

// FindOne returns the campaign or nil when absent
func (r *CampaignRepository) FindOne(ctx context.Context, id valueobjects.CampaignID) (*entities.Campaign, error) {
	var out *dynamodb.GetItemOutput
	err := traced(ctx, r.tracer, "GetItem", func(ctx context.Context) error {
		var err error
		out, err = r.client.GetItem(ctx, &dynamodb.GetItemInput{
			TableName: aws.String(r.tableName),
			Key: map[string]types.AttributeValue{
				"CampaignID": &types.AttributeValueMemberS{Value: id.String()},
			},
			ConsistentRead: aws.Bool(true),
		})
		return err
	})
	if err != nil {
		r.logger.Error("Failed to get campaign", zap.String("campaignID", id.String()), zap.Error(err))
		return nil, storageError("GetItem", err)
	}
	if len(out.Item) == 0 {
		return nil, nil
	}

	var item campaignItem
	if err := attributevalue.UnmarshalMap(out.Item, &item); err != nil {
		return nil, storageError("GetItem", err)
	}
	return item.toEntity()
}

// FindMany returns one page of campaigns, newest first. A status filter uses
// the status index; the default listing scans past DELETED items.
func (r *CampaignRepository) FindMany(ctx context.Context, filter ports.CampaignFilter, page ports.Page) ([]*entities.Campaign, error) {
	var (
		items []campaignItem
		err   error
	)
	if filter.Status != "" {
		items, err = r.queryByStatus(ctx, filter.Status, page.Skip+page.Limit)
	} else {
		items, err = r.scanActive(ctx)
		sort.SliceStable(items, func(i, j int) bool { return items[i].CreatedAt > items[j].CreatedAt })
	}
	if err != nil {
		return nil, err
	}

	result := []*entities.Campaign{}
	for i := page.Skip; i < len(items) && (page.Limit <= 0 || len(result) < page.Limit); i++ {
		c, err := items[i].toEntity()
		if err != nil {
			r.logger.Warn("Skipping malformed campaign item", zap.String("campaignID", items[i].CampaignID), zap.Error(err))
			continue
		}
		result = append(result, c)
	}
	return result, nil
}

// Count returns the number of matching campaigns
func (r *CampaignRepository) Count(ctx context.Context, filter ports.CampaignFilter) (int, error) {
	total := 0
	err := traced(ctx, r.tracer, "Count", func(ctx context.Context) error {
		if filter.Status != "" {
			input, err := r.statusQueryInput(filter.Status)
			if err != nil {
				return err
			}
			input.Select = types.SelectCount
			paginator := dynamodb.NewQueryPaginator(r.client, input)
			for paginator.HasMorePages() {
				out, err := paginator.NextPage(ctx)
				if err != nil {
					return err
				}
				total += int(out.Count)
			}
			return nil
		}

		input, err := r.activeScanInput()
		if err != nil {
			return err
		}
		input.Select = types.SelectCount
		paginator := dynamodb.NewScanPaginator(r.client, input)
		for paginator.HasMorePages() {
			out, err := paginator.NextPage(ctx)
			if err != nil {
				return err
			}
			total += int(out.Count)
		}
		return nil
	})
	if err != nil {
		r.logger.Error("Failed to count campaigns", zap.String("status", filter.Status.String()), zap.Error(err))
		return 0, storageError("Count", err)
	}
	return total, nil
}

// InsertOne stores a new campaign under a fresh ID
func (r *CampaignRepository) InsertOne(ctx context.Context, campaign *entities.Campaign) (valueobjects.CampaignID, error) {
	id := valueobjects.NewCampaignID()
	if err := campaign.AssignID(id); err != nil {
		return valueobjects.CampaignID{}, err
	}

	av, err := attributevalue.MarshalMap(toCampaignItem(campaign))
	if err != nil {
		return valueobjects.CampaignID{}, storageError("PutItem", err)
	}

	err = traced(ctx, r.tracer, "PutItem", func(ctx context.Context) error {
		_, err := r.client.PutItem(ctx, &dynamodb.PutItemInput{
			TableName:           aws.String(r.tableName),
			Item:                av,
			ConditionExpression: aws.String("attribute_not_exists(CampaignID)"),
		})
		return err
	})
	if err != nil {
		r.logger.Error("Failed to insert campaign", zap.String("campaignID", id.String()), zap.Error(err))
		return valueobjects.CampaignID{}, storageError("PutItem", err)
	}

	return id, nil
}

// UpdateOne writes the fields present in patch. A missing campaign matches
// nothing and is not an error.
func (r *CampaignRepository) UpdateOne(ctx context.Context, id valueobjects.CampaignID, patch entities.CampaignPatch) (int, error) {
	update := expression.Set(expression.Name("UpdatedAt"), expression.Value(formatTime(patch.UpdatedAt)))
	if patch.Name != nil {
		update = update.Set(expression.Name("Name"), expression.Value(*patch.Name))
	}
	if patch.Description != nil {
		update = update.Set(expression.Name("Description"), expression.Value(*patch.Description))
	}
	if patch.Status != nil {
		update = update.Set(expression.Name("Status"), expression.Value(patch.Status.String()))
	}
	if patch.Leads != nil {
		update = update.Set(expression.Name("Leads"), expression.Value(*patch.Leads))
	}
	if patch.AccountIDs != nil {
		update = update.Set(expression.Name("AccountIDs"), expression.Value(*patch.AccountIDs))
	}

	expr, err := expression.NewBuilder().
		WithUpdate(update).
		WithCondition(expression.AttributeExists(expression.Name("CampaignID"))).
		Build()
	if err != nil {
		return 0, storageError("UpdateItem", err)
	}

	err = traced(ctx, r.tracer, "UpdateItem", func(ctx context.Context) error {
		_, err := r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
			TableName: aws.String(r.tableName),
			Key: map[string]types.AttributeValue{
				"CampaignID": &types.AttributeValueMemberS{Value: id.String()},
			},
			UpdateExpression:          expr.Update(),
			ConditionExpression:       expr.Condition(),
			ExpressionAttributeNames:  expr.Names(),
			ExpressionAttributeValues: expr.Values(),
		})
		return err
	})
	if err != nil {
		if isConditionalCheckFailed(err) {
			return 0, nil
		}
		r.logger.Error("Failed to update campaign", zap.String("campaignID", id.String()), zap.Error(err))
		return 0, storageError("UpdateItem", err)
	}
	return 1, nil
}

func (r *CampaignRepository) statusQueryInput(status valueobjects.CampaignStatus) (*dynamodb.QueryInput, error) {
	expr, err := expression.NewBuilder().
		WithKeyCondition(expression.Key("Status").Equal(expression.Value(status.String()))).
		Build()
	if err != nil {
		return nil, err
	}
	return &dynamodb.QueryInput{
		TableName:                 aws.String(r.tableName),
		IndexName:                 aws.String(r.statusIndex),
		KeyConditionExpression:    expr.KeyCondition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
		ScanIndexForward:          aws.Bool(false),
	}, nil
}

// queryByStatus reads the status index newest first until want items are
// collected; want <= 0 reads everything
func (r *CampaignRepository) queryByStatus(ctx context.Context, status valueobjects.CampaignStatus, want int) ([]campaignItem, error) {
	var items []campaignItem
	err := traced(ctx, r.tracer, "Query", func(ctx context.Context) error {
		input, err := r.statusQueryInput(status)
		if err != nil {
			return err
		}
		paginator := dynamodb.NewQueryPaginator(r.client, input)
		for paginator.HasMorePages() && (want <= 0 || len(items) < want) {
			out, err := paginator.NextPage(ctx)
			if err != nil {
				return err
			}
			var page []campaignItem
			if err := attributevalue.UnmarshalListOfMaps(out.Items, &page); err != nil {
				return err
			}
			items = append(items, page...)
		}
		return nil
	})
	if err != nil {
		r.logger.Error("Failed to query campaigns by status", zap.String("status", status.String()), zap.Error(err))
		return nil, storageError("Query", err)
	}
	return items, nil
}

func (r *CampaignRepository) activeScanInput() (*dynamodb.ScanInput, error) {
	expr, err := expression.NewBuilder().
		WithFilter(expression.Name("Status").NotEqual(expression.Value(valueobjects.CampaignDeleted.String()))).
		Build()
	if err != nil {
		return nil, err
	}
	return &dynamodb.ScanInput{
		TableName:                 aws.String(r.tableName),
		FilterExpression:          expr.Filter(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	}, nil
}

func (r *CampaignRepository) scanActive(ctx context.Context) ([]campaignItem, error) {
	var items []campaignItem
	err := traced(ctx, r.tracer, "Scan", func(ctx context.Context) error {
		input, err := r.activeScanInput()
		if err != nil {
			return err
		}
		paginator := dynamodb.NewScanPaginator(r.client, input)
		for paginator.HasMorePages() {
			out, err := paginator.NextPage(ctx)
			if err != nil {
				return err
			}
			var page []campaignItem
			if err := attributevalue.UnmarshalListOfMaps(out.Items, &page); err != nil {
				return err
			}
			items = append(items, page...)
		}
		return nil
	})
	if err != nil {
		r.logger.Error("Failed to scan campaigns", zap.Error(err))
		return nil, storageError("Scan", err)
	}
	return items, nil
}
