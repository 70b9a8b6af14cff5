package di

import (
	"net/http"

	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"go.uber.org/zap"

	"campaign-manager/application/commands/bus"
	querybus "campaign-manager/application/queries/bus"
	"campaign-manager/infrastructure/cache"
	"campaign-manager/infrastructure/config"
	"campaign-manager/pkg/observability"
)

// Container holds all application dependencies
type Container struct {
	Config       *config.Config
	Logger       *zap.Logger
	Cache        *cache.TTLCache
	Repositories Repositories
	DynamoDB     *awsdynamodb.Client
	CommandBus   *bus.CommandBus
	QueryBus     *querybus.QueryBus
	Metrics      *observability.Metrics
	Handler      http.Handler
}

// Shutdown flushes buffered log entries
func (c *Container) Shutdown() {
	if c.Logger != nil {
		_ = c.Logger.Sync()
	}
}
