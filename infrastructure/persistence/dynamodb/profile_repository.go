package dynamodb

import (
	"context"
	"sort"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"campaign-manager/application/ports"
	"campaign-manager/domain/core/entities"
	"campaign-manager/pkg/observability"
	pkgerrors "campaign-manager/pkg/errors"
)

const (
	entityProfile  = "PROFILE"
	entityURLGuard = "URL_GUARD"

	// maxTransactItems is the DynamoDB limit on actions per transaction
	maxTransactItems = 100
)

// profileItem represents the DynamoDB item structure for a profile
type profileItem struct {
	ProfileID  string `dynamodbav:"ProfileID"`
	EntityType string `dynamodbav:"EntityType"`
	Name       string `dynamodbav:"Name"`
	JobTitle   string `dynamodbav:"JobTitle"`
	Company    string `dynamodbav:"Company"`
	Location   string `dynamodbav:"Location"`
	Summary    string `dynamodbav:"Summary"`
	ProfileURL string `dynamodbav:"ProfileURL,omitempty"`
	CreatedAt  string `dynamodbav:"CreatedAt"`
	UpdatedAt  string `dynamodbav:"UpdatedAt"`
}

// urlGuardItem reserves a profile URL; it shares the table with profiles
type urlGuardItem struct {
	ProfileID  string `dynamodbav:"ProfileID"`
	EntityType string `dynamodbav:"EntityType"`
	OwnerID    string `dynamodbav:"OwnerID"`
}

func urlGuardKey(url string) string {
	return "URL#" + url
}

func (i profileItem) toEntity() *entities.Profile {
	return entities.ReconstructProfile(i.ProfileID, entities.ProfileFields{
		Name:       i.Name,
		JobTitle:   i.JobTitle,
		Company:    i.Company,
		Location:   i.Location,
		Summary:    i.Summary,
		ProfileURL: i.ProfileURL,
	}, parseTime(i.CreatedAt), parseTime(i.UpdatedAt))
}

// ProfileRepository implements ports.ProfileRepository. Profile URLs are kept
// unique with guard items written in the same transaction as the profile.
type ProfileRepository struct {
	client    Client
	tableName string
	tracer    *observability.Tracer
	logger    *zap.Logger
}

// NewProfileRepository creates a new ProfileRepository
func NewProfileRepository(client Client, tableName string, tracer *observability.Tracer, logger *zap.Logger) *ProfileRepository {
	return &ProfileRepository{
		client:    client,
		tableName: tableName,
		tracer:    tracer,
		logger:    logger.With(zap.String("component", "profile_repository")),
	}
}

// FindMany returns matching profiles newest first. Search is
// case-insensitive, so matching happens after the scan.
func (r *ProfileRepository) FindMany(ctx context.Context, filter ports.ProfileFilter, page ports.Page) ([]*entities.Profile, error) {
	matched, err := r.scanMatching(ctx, filter)
	if err != nil {
		return nil, err
	}

	result := []*entities.Profile{}
	for i := page.Skip; i < len(matched) && (page.Limit <= 0 || len(result) < page.Limit); i++ {
		result = append(result, matched[i])
	}
	return result, nil
}

// Count returns the number of matching profiles
func (r *ProfileRepository) Count(ctx context.Context, filter ports.ProfileFilter) (int, error) {
	matched, err := r.scanMatching(ctx, filter)
	if err != nil {
		return 0, err
	}
	return len(matched), nil
}

// InsertMany writes profiles and their URL guards transactionally. Batches
// larger than one transaction are split, so atomicity holds per chunk.
func (r *ProfileRepository) InsertMany(ctx context.Context, profiles []*entities.Profile) ([]string, error) {
	seen := make(map[string]struct{}, len(profiles))
	for _, p := range profiles {
		url := p.ProfileURL()
		if url == "" {
			continue
		}
		if _, dup := seen[url]; dup {
			return nil, pkgerrors.NewValidationError("profile_url already exists").WithDetail("profile_url", url)
		}
		seen[url] = struct{}{}
	}

	ids := make([]string, len(profiles))
	var chunk []types.TransactWriteItem
	flush := func() error {
		if len(chunk) == 0 {
			return nil
		}
		err := traced(ctx, r.tracer, "TransactWriteItems", func(ctx context.Context) error {
			_, err := r.client.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{TransactItems: chunk})
			return err
		})
		chunk = nil
		if err != nil {
			if transactionConditionFailed(err) {
				return pkgerrors.NewValidationError("profile_url already exists")
			}
			r.logger.Error("Failed to insert profiles", zap.Error(err))
			return storageError("TransactWriteItems", err)
		}
		return nil
	}

	for i, p := range profiles {
		ids[i] = uuid.New().String()
		writes, err := r.profileWrites(ids[i], p)
		if err != nil {
			return nil, storageError("TransactWriteItems", err)
		}
		if len(chunk)+len(writes) > maxTransactItems {
			if err := flush(); err != nil {
				return nil, err
			}
		}
		chunk = append(chunk, writes...)
	}
	if err := flush(); err != nil {
		return nil, err
	}

	for i, p := range profiles {
		p.AssignID(ids[i])
	}
	return ids, nil
}

func (r *ProfileRepository) profileWrites(id string, p *entities.Profile) ([]types.TransactWriteItem, error) {
	av, err := attributevalue.MarshalMap(profileItem{
		ProfileID:  id,
		EntityType: entityProfile,
		Name:       p.Name(),
		JobTitle:   p.JobTitle(),
		Company:    p.Company(),
		Location:   p.Location(),
		Summary:    p.Summary(),
		ProfileURL: p.ProfileURL(),
		CreatedAt:  formatTime(p.CreatedAt()),
		UpdatedAt:  formatTime(p.UpdatedAt()),
	})
	if err != nil {
		return nil, err
	}

	writes := []types.TransactWriteItem{{
		Put: &types.Put{
			TableName:           aws.String(r.tableName),
			Item:                av,
			ConditionExpression: aws.String("attribute_not_exists(ProfileID)"),
		},
	}}

	if url := p.ProfileURL(); url != "" {
		guard, err := attributevalue.MarshalMap(urlGuardItem{
			ProfileID:  urlGuardKey(url),
			EntityType: entityURLGuard,
			OwnerID:    id,
		})
		if err != nil {
			return nil, err
		}
		writes = append(writes, types.TransactWriteItem{
			Put: &types.Put{
				TableName:           aws.String(r.tableName),
				Item:                guard,
				ConditionExpression: aws.String("attribute_not_exists(ProfileID)"),
			},
		})
	}
	return writes, nil
}

func (r *ProfileRepository) scanMatching(ctx context.Context, filter ports.ProfileFilter) ([]*entities.Profile, error) {
	expr, err := expression.NewBuilder().
		WithFilter(expression.Name("EntityType").Equal(expression.Value(entityProfile))).
		Build()
	if err != nil {
		return nil, storageError("Scan", err)
	}

	var matched []*entities.Profile
	err = traced(ctx, r.tracer, "Scan", func(ctx context.Context) error {
		paginator := dynamodb.NewScanPaginator(r.client, &dynamodb.ScanInput{
			TableName:                 aws.String(r.tableName),
			FilterExpression:          expr.Filter(),
			ExpressionAttributeNames:  expr.Names(),
			ExpressionAttributeValues: expr.Values(),
		})
		for paginator.HasMorePages() {
			out, err := paginator.NextPage(ctx)
			if err != nil {
				return err
			}
			var items []profileItem
			if err := attributevalue.UnmarshalListOfMaps(out.Items, &items); err != nil {
				return err
			}
			for _, item := range items {
				if p := item.toEntity(); p.Matches(filter.Search) {
					matched = append(matched, p)
				}
			}
		}
		return nil
	})
	if err != nil {
		r.logger.Error("Failed to scan profiles", zap.Error(err))
		return nil, storageError("Scan", err)
	}

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].CreatedAt().After(matched[j].CreatedAt())
	})
	return matched, nil
}
