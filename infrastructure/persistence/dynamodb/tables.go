package dynamodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"
)

// TableAdmin is the part of the DynamoDB API used to bootstrap tables
type TableAdmin interface {
	CreateTable(ctx context.Context, params *dynamodb.CreateTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.CreateTableOutput, error)
	DescribeTable(ctx context.Context, params *dynamodb.DescribeTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DescribeTableOutput, error)
}

// TableNames lists the tables the service uses
type TableNames struct {
	Campaigns   string
	Profiles    string
	Messages    string
	Users       string
	StatusIndex string
}

// TableDefinitions returns the create requests for every table
func TableDefinitions(names TableNames) []*dynamodb.CreateTableInput {
	str := func(name string) types.AttributeDefinition {
		return types.AttributeDefinition{AttributeName: aws.String(name), AttributeType: types.ScalarAttributeTypeS}
	}
	hash := func(name string) types.KeySchemaElement {
		return types.KeySchemaElement{AttributeName: aws.String(name), KeyType: types.KeyTypeHash}
	}
	rangeKey := func(name string) types.KeySchemaElement {
		return types.KeySchemaElement{AttributeName: aws.String(name), KeyType: types.KeyTypeRange}
	}
	all := &types.Projection{ProjectionType: types.ProjectionTypeAll}

	return []*dynamodb.CreateTableInput{
		{
			TableName:            aws.String(names.Campaigns),
			BillingMode:          types.BillingModePayPerRequest,
			AttributeDefinitions: []types.AttributeDefinition{str("CampaignID"), str("Status"), str("CreatedAt"), str("Name")},
			KeySchema:            []types.KeySchemaElement{hash("CampaignID")},
			GlobalSecondaryIndexes: []types.GlobalSecondaryIndex{
				{
					IndexName:  aws.String(names.StatusIndex),
					KeySchema:  []types.KeySchemaElement{hash("Status"), rangeKey("CreatedAt")},
					Projection: all,
				},
				{
					IndexName:  aws.String("NameIndex"),
					KeySchema:  []types.KeySchemaElement{hash("Name")},
					Projection: all,
				},
			},
		},
		{
			TableName:            aws.String(names.Profiles),
			BillingMode:          types.BillingModePayPerRequest,
			AttributeDefinitions: []types.AttributeDefinition{str("ProfileID"), str("Company")},
			KeySchema:            []types.KeySchemaElement{hash("ProfileID")},
			GlobalSecondaryIndexes: []types.GlobalSecondaryIndex{
				{
					IndexName:  aws.String("CompanyIndex"),
					KeySchema:  []types.KeySchemaElement{hash("Company")},
					Projection: all,
				},
			},
		},
		{
			TableName:            aws.String(names.Messages),
			BillingMode:          types.BillingModePayPerRequest,
			AttributeDefinitions: []types.AttributeDefinition{str("MessageID")},
			KeySchema:            []types.KeySchemaElement{hash("MessageID")},
		},
		{
			TableName:            aws.String(names.Users),
			BillingMode:          types.BillingModePayPerRequest,
			AttributeDefinitions: []types.AttributeDefinition{str("Email")},
			KeySchema:            []types.KeySchemaElement{hash("Email")},
		},
	}
}

// EnsureTables creates missing tables and waits until each is ACTIVE.
// It returns the names of the tables it created.
func EnsureTables(ctx context.Context, admin TableAdmin, names TableNames, wait time.Duration, logger *zap.Logger) ([]string, error) {
	var created []string
	waiter := dynamodb.NewTableExistsWaiter(admin)

	for _, def := range TableDefinitions(names) {
		table := aws.ToString(def.TableName)

		_, err := admin.DescribeTable(ctx, &dynamodb.DescribeTableInput{TableName: def.TableName})
		if err == nil {
			logger.Info("Table exists", zap.String("table", table))
			continue
		}
		var notFound *types.ResourceNotFoundException
		if !errors.As(err, &notFound) {
			return created, fmt.Errorf("failed to describe table %s: %w", table, err)
		}

		logger.Info("Creating table", zap.String("table", table))
		if _, err := admin.CreateTable(ctx, def); err != nil {
			return created, fmt.Errorf("failed to create table %s: %w", table, err)
		}
		if err := waiter.Wait(ctx, &dynamodb.DescribeTableInput{TableName: def.TableName}, wait); err != nil {
			return created, fmt.Errorf("table %s did not become active: %w", table, err)
		}
		created = append(created, table)
	}

	return created, nil
}
