package dynamodb

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"campaign-manager/domain/core/entities"
	"campaign-manager/pkg/observability"
)

type messageItem struct {
	MessageID string `dynamodbav:"MessageID"`
	Name      string `dynamodbav:"Name"`
	JobTitle  string `dynamodbav:"JobTitle"`
	Company   string `dynamodbav:"Company"`
	Location  string `dynamodbav:"Location"`
	Summary   string `dynamodbav:"Summary"`
	Message   string `dynamodbav:"Message"`
	CreatedAt string `dynamodbav:"CreatedAt"`
}

// MessageLog records generated outreach messages
type MessageLog struct {
	client    Client
	tableName string
	tracer    *observability.Tracer
	logger    *zap.Logger
}

// NewMessageLog creates a new MessageLog
func NewMessageLog(client Client, tableName string, tracer *observability.Tracer, logger *zap.Logger) *MessageLog {
	return &MessageLog{client: client, tableName: tableName, tracer: tracer, logger: logger}
}

// Record stores msg, assigning an ID when it has none
func (l *MessageLog) Record(ctx context.Context, msg *entities.GeneratedMessage) error {
	if msg.ID == "" {
		msg.ID = uuid.New().String()
	}

	av, err := attributevalue.MarshalMap(messageItem{
		MessageID: msg.ID,
		Name:      msg.Profile.Name,
		JobTitle:  msg.Profile.JobTitle,
		Company:   msg.Profile.Company,
		Location:  msg.Profile.Location,
		Summary:   msg.Profile.Summary,
		Message:   msg.Message,
		CreatedAt: formatTime(msg.CreatedAt),
	})
	if err != nil {
		return storageError("PutItem", err)
	}

	err = traced(ctx, l.tracer, "PutItem", func(ctx context.Context) error {
		_, err := l.client.PutItem(ctx, &dynamodb.PutItemInput{
			TableName: aws.String(l.tableName),
			Item:      av,
		})
		return err
	})
	if err != nil {
		return storageError("PutItem", err)
	}
	return nil
}
