package di

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awscloudwatch "github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	awseventbridge "github.com/aws/aws-sdk-go-v2/service/eventbridge"
	"go.uber.org/zap"

	"campaign-manager/application/commands"
	"campaign-manager/application/commands/bus"
	commands_handlers "campaign-manager/application/commands/handlers"
	"campaign-manager/application/ports"
	"campaign-manager/application/queries"
	querybus "campaign-manager/application/queries/bus"
	queries_handlers "campaign-manager/application/queries/handlers"
	"campaign-manager/application/services"
	"campaign-manager/infrastructure/cache"
	"campaign-manager/infrastructure/config"
	"campaign-manager/infrastructure/messaging/eventbridge"
	"campaign-manager/infrastructure/persistence/dynamodb"
	"campaign-manager/infrastructure/persistence/memory"
	"campaign-manager/interfaces/http/rest"
	"campaign-manager/interfaces/http/rest/middleware"
	"campaign-manager/pkg/auth"
	pkgerrors "campaign-manager/pkg/errors"
	"campaign-manager/pkg/observability"
	"campaign-manager/pkg/utils"
)

const serviceName = "campaign-manager"

// ProvideLogger creates a new logger instance
func ProvideLogger(cfg *config.Config) (*zap.Logger, error) {
	level, err := zap.ParseAtomicLevel(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}

	var zapCfg zap.Config
	if cfg.IsProduction() {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
	}
	zapCfg.Level = level

	logger, err := zapCfg.Build()
	if err != nil {
		return nil, err
	}

	return logger.With(zap.String("service", serviceName), zap.String("environment", cfg.Environment)), nil
}

// ProvideAWSConfig creates AWS configuration
func ProvideAWSConfig(ctx context.Context, cfg *config.Config) (aws.Config, error) {
	return awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.AWSRegion),
	)
}

// ProvideDynamoDBClient creates a DynamoDB client. DYNAMODB_ENDPOINT points it
// at DynamoDB Local.
func ProvideDynamoDBClient(awsCfg aws.Config, cfg *config.Config) *awsdynamodb.Client {
	return awsdynamodb.NewFromConfig(awsCfg, func(o *awsdynamodb.Options) {
		if cfg.DynamoDBEndpoint != "" {
			o.BaseEndpoint = aws.String(cfg.DynamoDBEndpoint)
		}
	})
}

// ProvideEventBridgeClient creates an EventBridge client
func ProvideEventBridgeClient(awsCfg aws.Config) *awseventbridge.Client {
	return awseventbridge.NewFromConfig(awsCfg)
}

// ProvideCloudWatchClient creates a CloudWatch client
func ProvideCloudWatchClient(awsCfg aws.Config) *awscloudwatch.Client {
	return awscloudwatch.NewFromConfig(awsCfg)
}

// ProvideTracer creates the X-Ray tracer
func ProvideTracer(cfg *config.Config) *observability.Tracer {
	return observability.NewTracer(serviceName, cfg.EnableTracing)
}

// ProvideMetrics creates metrics instance. Without ENABLE_METRICS nothing is sent.
func ProvideMetrics(client *awscloudwatch.Client, cfg *config.Config, logger *zap.Logger) *observability.Metrics {
	var mc observability.MetricsClient
	if cfg.EnableMetrics {
		mc = client
	}
	namespace := fmt.Sprintf("%s/%s", cfg.MetricsNamespace, cfg.Environment)
	return observability.NewMetrics(namespace, mc, logger)
}

// ProvideClock provides the wall clock
func ProvideClock() ports.Clock {
	return utils.SystemClock{}
}

// ProvideCache creates the process-wide response cache
func ProvideCache() *cache.TTLCache {
	return cache.New()
}

// Repositories groups the store adapters of the selected backend
type Repositories struct {
	Campaigns ports.CampaignRepository
	Profiles  ports.ProfileRepository
	Messages  ports.MessageLog
	Users     ports.UserRepository
}

// ProvideRepositories builds the store adapters for STORE_BACKEND
func ProvideRepositories(
	client *awsdynamodb.Client,
	tracer *observability.Tracer,
	cfg *config.Config,
	logger *zap.Logger,
) Repositories {
	if cfg.StoreBackend == config.BackendMemory {
		logger.Warn("Using in-memory store; data is lost on restart")
		return Repositories{
			Campaigns: memory.NewCampaignRepository(),
			Profiles:  memory.NewProfileRepository(),
			Messages:  memory.NewMessageLog(),
			Users:     memory.NewUserRepository(),
		}
	}

	return Repositories{
		Campaigns: dynamodb.NewCampaignRepository(client, cfg.CampaignsTable, cfg.StatusIndexName, tracer, logger),
		Profiles:  dynamodb.NewProfileRepository(client, cfg.ProfilesTable, tracer, logger),
		Messages:  dynamodb.NewMessageLog(client, cfg.MessagesTable, tracer, logger),
		Users:     dynamodb.NewUserRepository(client, cfg.UsersTable, tracer, logger),
	}
}

// ProvideEventPublisher creates the lifecycle event publisher. Without
// ENABLE_EVENTS events are dropped.
func ProvideEventPublisher(client *awseventbridge.Client, cfg *config.Config, logger *zap.Logger) ports.EventPublisher {
	if !cfg.EnableEvents {
		return eventbridge.NoopPublisher{}
	}
	return eventbridge.NewPublisher(client, cfg.EventBusName, logger)
}

// ProvideJWTConfig builds the token settings shared by issuer and validator
func ProvideJWTConfig(cfg *config.Config) auth.JWTConfig {
	return auth.JWTConfig{
		SecretKey: cfg.JWTSecret,
		Issuer:    cfg.JWTIssuer,
		Audience:  cfg.JWTAudience,
		TTL:       cfg.TokenTTL,
	}
}

var errTokensDisabled = errors.New("token issuing is disabled: JWT_SECRET is not set")

// disabledIssuer stands in for the JWT generator when no secret is configured
type disabledIssuer struct{}

func (disabledIssuer) GenerateToken(userID, email, name string, roles []string) (string, error) {
	return "", errTokensDisabled
}

func (disabledIssuer) TTL() time.Duration { return 0 }

// ProvideTokenIssuer creates the JWT generator
func ProvideTokenIssuer(jwtCfg auth.JWTConfig, logger *zap.Logger) (services.TokenIssuer, error) {
	if jwtCfg.SecretKey == "" {
		logger.Warn("JWT_SECRET is not set; token issuing is disabled")
		return disabledIssuer{}, nil
	}
	return auth.NewJWTGenerator(jwtCfg)
}

// ProvideAuthService creates the login service
func ProvideAuthService(repos Repositories, tokens services.TokenIssuer, clock ports.Clock, logger *zap.Logger) *services.AuthService {
	return services.NewAuthService(repos.Users, tokens, clock, logger)
}

// ProvideErrorHandler creates the HTTP error renderer
func ProvideErrorHandler(cfg *config.Config, logger *zap.Logger) *pkgerrors.ErrorHandler {
	return pkgerrors.NewErrorHandler(logger, cfg.IsDevelopment())
}

// ProvideAuthenticator creates the API guard. It is nil unless ENABLE_AUTH is set.
func ProvideAuthenticator(
	jwtCfg auth.JWTConfig,
	cfg *config.Config,
	errHandler *pkgerrors.ErrorHandler,
	logger *zap.Logger,
) (*middleware.Authenticator, error) {
	if !cfg.EnableAuth {
		return nil, nil
	}

	validator, err := auth.NewJWTValidator(jwtCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create token validator: %w", err)
	}

	limiter := auth.NewIPRateLimiter(cfg.RateLimitRPM)
	return middleware.NewAuthenticator(validator, limiter, cfg.RateLimitRPM, errHandler, logger), nil
}

// CommandHandlerAdapter adapts specific command handlers to the generic interface
type CommandHandlerAdapter struct {
	handler func(context.Context, bus.Command) (interface{}, error)
}

// Handle implements bus.CommandHandler
func (a *CommandHandlerAdapter) Handle(ctx context.Context, cmd bus.Command) (interface{}, error) {
	return a.handler(ctx, cmd)
}

// ProvideCommandBus creates a command bus with registered handlers
func ProvideCommandBus(
	repos Repositories,
	cache *cache.TTLCache,
	publisher ports.EventPublisher,
	clock ports.Clock,
	metrics *observability.Metrics,
	cfg *config.Config,
	logger *zap.Logger,
) (*bus.CommandBus, error) {
	commandBus := bus.NewCommandBus(
		bus.LoggingMiddleware(&zapLoggerAdapter{logger.With(zap.String("component", "commands"))}),
		bus.MetricsMiddleware(metrics),
	)

	handlerLogger := logger.With(zap.String("component", "campaigns"))

	createHandler := commands_handlers.NewCreateCampaignHandler(repos.Campaigns, cache, publisher, clock, handlerLogger)
	updateHandler := commands_handlers.NewUpdateCampaignHandler(repos.Campaigns, cache, cfg.CacheTTL, publisher, clock, handlerLogger)
	deleteHandler := commands_handlers.NewDeleteCampaignHandler(repos.Campaigns, cache, publisher, clock, handlerLogger)
	storeProfilesHandler := commands_handlers.NewStoreProfilesHandler(repos.Profiles, clock, logger.With(zap.String("component", "leads")))
	generateHandler := commands_handlers.NewGenerateMessageHandler(
		services.NewMessageGenerator(nil), repos.Messages, clock, logger.With(zap.String("component", "messages")))
	createUserHandler := commands_handlers.NewCreateUserHandler(repos.Users, clock, logger.With(zap.String("component", "users")))

	registrations := []struct {
		cmd     bus.Command
		handler func(context.Context, bus.Command) (interface{}, error)
	}{
		{commands.CreateCampaignCommand{}, func(ctx context.Context, cmd bus.Command) (interface{}, error) {
			c, ok := cmd.(commands.CreateCampaignCommand)
			if !ok {
				return nil, fmt.Errorf("invalid command type")
			}
			return createHandler.Handle(ctx, c)
		}},
		{commands.UpdateCampaignCommand{}, func(ctx context.Context, cmd bus.Command) (interface{}, error) {
			c, ok := cmd.(commands.UpdateCampaignCommand)
			if !ok {
				return nil, fmt.Errorf("invalid command type")
			}
			return updateHandler.Handle(ctx, c)
		}},
		{commands.DeleteCampaignCommand{}, func(ctx context.Context, cmd bus.Command) (interface{}, error) {
			c, ok := cmd.(commands.DeleteCampaignCommand)
			if !ok {
				return nil, fmt.Errorf("invalid command type")
			}
			return deleteHandler.Handle(ctx, c)
		}},
		{commands.StoreProfilesCommand{}, func(ctx context.Context, cmd bus.Command) (interface{}, error) {
			c, ok := cmd.(commands.StoreProfilesCommand)
			if !ok {
				return nil, fmt.Errorf("invalid command type")
			}
			return storeProfilesHandler.Handle(ctx, c)
		}},
		{commands.GenerateMessageCommand{}, func(ctx context.Context, cmd bus.Command) (interface{}, error) {
			c, ok := cmd.(commands.GenerateMessageCommand)
			if !ok {
				return nil, fmt.Errorf("invalid command type")
			}
			return generateHandler.Handle(ctx, c)
		}},
		{commands.CreateUserCommand{}, func(ctx context.Context, cmd bus.Command) (interface{}, error) {
			c, ok := cmd.(commands.CreateUserCommand)
			if !ok {
				return nil, fmt.Errorf("invalid command type")
			}
			return createUserHandler.Handle(ctx, c)
		}},
	}

	for _, reg := range registrations {
		if err := commandBus.Register(reg.cmd, &CommandHandlerAdapter{handler: reg.handler}); err != nil {
			return nil, err
		}
	}

	return commandBus, nil
}

// QueryHandlerAdapter adapts specific query handlers to the generic interface
type QueryHandlerAdapter struct {
	handler func(context.Context, querybus.Query) (interface{}, error)
}

// Handle implements querybus.QueryHandler
func (a *QueryHandlerAdapter) Handle(ctx context.Context, query querybus.Query) (interface{}, error) {
	return a.handler(ctx, query)
}

// ProvideQueryBus creates a query bus with registered handlers. Cacheable
// queries are served through the response cache for CACHE_TTL.
func ProvideQueryBus(
	repos Repositories,
	cache *cache.TTLCache,
	metrics *observability.Metrics,
	cfg *config.Config,
	logger *zap.Logger,
) (*querybus.QueryBus, error) {
	queryBus := querybus.NewQueryBus(
		querybus.NewMetricsMiddleware(metrics),
		querybus.NewCachingMiddleware(cache, cfg.CacheTTL, metrics, logger.With(zap.String("component", "cache"))),
	)

	queryLogger := logger.With(zap.String("component", "queries"))

	getCampaignHandler := queries_handlers.NewGetCampaignHandler(repos.Campaigns, queryLogger)
	if err := queryBus.Register(queries.GetCampaignQuery{}, &QueryHandlerAdapter{
		handler: func(ctx context.Context, query querybus.Query) (interface{}, error) {
			q, ok := query.(queries.GetCampaignQuery)
			if !ok {
				return nil, fmt.Errorf("invalid query type")
			}
			return getCampaignHandler.Handle(ctx, q)
		},
	}); err != nil {
		return nil, err
	}

	listCampaignsHandler := queries_handlers.NewListCampaignsHandler(repos.Campaigns, queryLogger)
	if err := queryBus.Register(queries.ListCampaignsQuery{}, &QueryHandlerAdapter{
		handler: func(ctx context.Context, query querybus.Query) (interface{}, error) {
			q, ok := query.(queries.ListCampaignsQuery)
			if !ok {
				return nil, fmt.Errorf("invalid query type")
			}
			return listCampaignsHandler.Handle(ctx, q)
		},
	}); err != nil {
		return nil, err
	}

	listProfilesHandler := queries_handlers.NewListProfilesHandler(repos.Profiles, queryLogger)
	if err := queryBus.Register(queries.ListProfilesQuery{}, &QueryHandlerAdapter{
		handler: func(ctx context.Context, query querybus.Query) (interface{}, error) {
			q, ok := query.(queries.ListProfilesQuery)
			if !ok {
				return nil, fmt.Errorf("invalid query type")
			}
			return listProfilesHandler.Handle(ctx, q)
		},
	}); err != nil {
		return nil, err
	}

	return queryBus, nil
}

// ProvideRouter creates the REST router
func ProvideRouter(
	cfg *config.Config,
	commandBus *bus.CommandBus,
	queryBus *querybus.QueryBus,
	authService *services.AuthService,
	authenticator *middleware.Authenticator,
	repos Repositories,
	responseCache *cache.TTLCache,
	errHandler *pkgerrors.ErrorHandler,
	tracer *observability.Tracer,
	logger *zap.Logger,
) *rest.Router {
	return rest.NewRouter(cfg, commandBus, queryBus, authService, authenticator, repos.Campaigns, responseCache, errHandler, tracer, logger)
}

// ProvideHTTPHandler builds the routed handler
func ProvideHTTPHandler(router *rest.Router) http.Handler {
	return router.Setup()
}

// zapLoggerAdapter adapts zap.Logger to the bus.Logger interface
type zapLoggerAdapter struct {
	logger *zap.Logger
}

func (a *zapLoggerAdapter) Debug(msg string, fields ...interface{}) {
	a.logger.Debug(msg, a.fieldsToZap(fields...)...)
}

func (a *zapLoggerAdapter) Info(msg string, fields ...interface{}) {
	a.logger.Info(msg, a.fieldsToZap(fields...)...)
}

func (a *zapLoggerAdapter) Warn(msg string, fields ...interface{}) {
	a.logger.Warn(msg, a.fieldsToZap(fields...)...)
}

func (a *zapLoggerAdapter) Error(msg string, fields ...interface{}) {
	a.logger.Error(msg, a.fieldsToZap(fields...)...)
}

func (a *zapLoggerAdapter) fieldsToZap(fields ...interface{}) []zap.Field {
	var zapFields []zap.Field
	for i := 0; i+1 < len(fields); i += 2 {
		key, _ := fields[i].(string)
		if err, ok := fields[i+1].(error); ok {
			zapFields = append(zapFields, zap.NamedError(key, err))
			continue
		}
		zapFields = append(zapFields, zap.Any(key, fields[i+1]))
	}
	return zapFields
}
