package dynamodb

import (
	"context"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"

	"campaign-manager/domain/core/entities"
	"campaign-manager/pkg/observability"
	pkgerrors "campaign-manager/pkg/errors"
)

type userItem struct {
	Email        string `dynamodbav:"Email"`
	Name         string `dynamodbav:"Name"`
	PasswordHash string `dynamodbav:"PasswordHash"`
	Role         string `dynamodbav:"Role"`
	CreatedAt    string `dynamodbav:"CreatedAt"`
}

// UserRepository stores operator accounts keyed by email
type UserRepository struct {
	client    Client
	tableName string
	tracer    *observability.Tracer
	logger    *zap.Logger
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(client Client, tableName string, tracer *observability.Tracer, logger *zap.Logger) *UserRepository {
	return &UserRepository{
		client:    client,
		tableName: tableName,
		tracer:    tracer,
		logger:    logger.With(zap.String("component", "user_repository")),
	}
}

// FindByEmail returns the user or nil when absent
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*entities.User, error) {
	var out *dynamodb.GetItemOutput
	err := traced(ctx, r.tracer, "GetItem", func(ctx context.Context) error {
		var err error
		out, err = r.client.GetItem(ctx, &dynamodb.GetItemInput{
			TableName: aws.String(r.tableName),
			Key: map[string]types.AttributeValue{
				"Email": &types.AttributeValueMemberS{Value: strings.ToLower(email)},
			},
		})
		return err
	})
	if err != nil {
		r.logger.Error("Failed to get user", zap.Error(err))
		return nil, storageError("GetItem", err)
	}
	if len(out.Item) == 0 {
		return nil, nil
	}

	var item userItem
	if err := attributevalue.UnmarshalMap(out.Item, &item); err != nil {
		return nil, storageError("GetItem", err)
	}
	role, err := entities.ParseRole(item.Role)
	if err != nil {
		role = entities.RoleUser
	}
	return entities.ReconstructUser(item.Email, item.Name, item.PasswordHash, role, parseTime(item.CreatedAt)), nil
}

// Insert stores user; an existing email is a conflict
func (r *UserRepository) Insert(ctx context.Context, user *entities.User) error {
	av, err := attributevalue.MarshalMap(userItem{
		Email:        user.Email(),
		Name:         user.Name(),
		PasswordHash: user.PasswordHash(),
		Role:         string(user.Role()),
		CreatedAt:    formatTime(user.CreatedAt()),
	})
	if err != nil {
		return storageError("PutItem", err)
	}

	err = traced(ctx, r.tracer, "PutItem", func(ctx context.Context) error {
		_, err := r.client.PutItem(ctx, &dynamodb.PutItemInput{
			TableName:           aws.String(r.tableName),
			Item:                av,
			ConditionExpression: aws.String("attribute_not_exists(Email)"),
		})
		return err
	})
	if err != nil {
		if isConditionalCheckFailed(err) {
			return pkgerrors.NewConflictError("user already exists").WithDetail("email", user.Email())
		}
		return storageError("PutItem", err)
	}
	return nil
}
