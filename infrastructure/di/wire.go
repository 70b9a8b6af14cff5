//go:build wireinject
// +build wireinject

package di

import (
	"context"

	"github.com/google/wire"

	"campaign-manager/infrastructure/config"
)

// SuperSet is the main provider set containing all providers
var SuperSet = wire.NewSet(
	ProvideLogger,
	ProvideAWSConfig,
	ProvideDynamoDBClient,
	ProvideEventBridgeClient,
	ProvideCloudWatchClient,
	ProvideTracer,
	ProvideMetrics,
	ProvideClock,
	ProvideCache,
	ProvideRepositories,
	ProvideEventPublisher,
	ProvideJWTConfig,
	ProvideTokenIssuer,
	ProvideAuthService,
	ProvideErrorHandler,
	ProvideAuthenticator,
	ProvideCommandBus,
	ProvideQueryBus,
	ProvideRouter,
	ProvideHTTPHandler,
	wire.Struct(new(Container), "*"),
)

// InitializeContainer creates a fully wired container
func InitializeContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	wire.Build(SuperSet)
	return nil, nil // Wire will replace this
}
