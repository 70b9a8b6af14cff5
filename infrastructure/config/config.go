package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Store backends
const (
	BackendDynamoDB = "dynamodb"
	BackendMemory   = "memory"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	ServerAddress string `env:"SERVER_ADDRESS" envDefault:":8080"`
	Environment   string `env:"ENVIRONMENT" envDefault:"development"`

	// AWS configuration
	AWSRegion        string `env:"AWS_REGION" envDefault:"us-west-2"`
	DynamoDBEndpoint string `env:"DYNAMODB_ENDPOINT"`
	CampaignsTable   string `env:"CAMPAIGNS_TABLE" envDefault:"campaigns"`
	ProfilesTable    string `env:"PROFILES_TABLE" envDefault:"linkedin_profiles"`
	MessagesTable    string `env:"MESSAGES_TABLE" envDefault:"generated_messages"`
	UsersTable       string `env:"USERS_TABLE" envDefault:"users"`
	StatusIndexName  string `env:"STATUS_INDEX_NAME" envDefault:"StatusIndex"`
	EventBusName     string `env:"EVENT_BUS_NAME" envDefault:"campaign-manager-events"`
	MetricsNamespace string `env:"METRICS_NAMESPACE" envDefault:"CampaignManager"`

	// Storage and caching
	StoreBackend string        `env:"STORE_BACKEND" envDefault:"dynamodb"`
	CacheTTL     time.Duration `env:"CACHE_TTL" envDefault:"60s"`

	// Logging
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// Authentication
	JWTSecret    string        `env:"JWT_SECRET"`
	JWTIssuer    string        `env:"JWT_ISSUER" envDefault:"campaign-manager"`
	JWTAudience  []string      `env:"JWT_AUDIENCE" envSeparator:","`
	TokenTTL     time.Duration `env:"TOKEN_TTL" envDefault:"720h"`
	RateLimitRPM int           `env:"RATE_LIMIT_RPM" envDefault:"120"`

	// Feature flags
	EnableAuth    bool     `env:"ENABLE_AUTH" envDefault:"false"`
	EnableMetrics bool     `env:"ENABLE_METRICS" envDefault:"false"`
	EnableTracing bool     `env:"ENABLE_TRACING" envDefault:"false"`
	EnableEvents  bool     `env:"ENABLE_EVENTS" envDefault:"false"`
	EnableCORS    bool     `env:"ENABLE_CORS" envDefault:"true"`
	CORSOrigins   []string `env:"CORS_ORIGINS" envSeparator:"," envDefault:"*"`
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	cfg.StoreBackend = strings.ToLower(strings.TrimSpace(cfg.StoreBackend))

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks if all required configuration is present
func (c *Config) Validate() error {
	if c.CacheTTL < 0 {
		return fmt.Errorf("CACHE_TTL must not be negative")
	}
	if c.TokenTTL <= 0 {
		return fmt.Errorf("TOKEN_TTL must be positive")
	}
	if c.RateLimitRPM <= 0 {
		return fmt.Errorf("RATE_LIMIT_RPM must be positive")
	}

	switch c.StoreBackend {
	case BackendDynamoDB:
		if c.CampaignsTable == "" || c.ProfilesTable == "" || c.MessagesTable == "" || c.UsersTable == "" {
			return fmt.Errorf("table names are required for the dynamodb backend")
		}
	case BackendMemory:
	default:
		return fmt.Errorf("STORE_BACKEND must be %q or %q, got %q", BackendDynamoDB, BackendMemory, c.StoreBackend)
	}

	if c.IsProduction() {
		if c.JWTSecret == "" {
			return fmt.Errorf("JWT_SECRET is required in production")
		}
		if c.StoreBackend == BackendMemory {
			return fmt.Errorf("the memory store backend is not allowed in production")
		}
	}

	if c.EnableAuth && c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required when ENABLE_AUTH is set")
	}

	return nil
}

// IsDevelopment checks if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction checks if running in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
