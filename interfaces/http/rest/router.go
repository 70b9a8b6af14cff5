package rest

import (
	"context"
	"net/http"
	"slices"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"campaign-manager/application/commands/bus"
	"campaign-manager/application/ports"
	querybus "campaign-manager/application/queries/bus"
	"campaign-manager/infrastructure/cache"
	"campaign-manager/infrastructure/config"
	"campaign-manager/interfaces/http/rest/handlers"
	"campaign-manager/interfaces/http/rest/middleware"
	"campaign-manager/pkg/common"
	pkgerrors "campaign-manager/pkg/errors"
	"campaign-manager/pkg/observability"
)

const readyTimeout = 2 * time.Second

// Router creates and configures the HTTP router
type Router struct {
	cfg           *config.Config
	commandBus    *bus.CommandBus
	queryBus      *querybus.QueryBus
	login         handlers.Authenticator
	authenticator *middleware.Authenticator
	campaigns     ports.CampaignRepository
	cache         *cache.TTLCache
	errors        *pkgerrors.ErrorHandler
	tracer        *observability.Tracer
	logger        *zap.Logger
}

// NewRouter creates a new router instance. A nil authenticator leaves the
// API routes open.
func NewRouter(
	cfg *config.Config,
	commandBus *bus.CommandBus,
	queryBus *querybus.QueryBus,
	login handlers.Authenticator,
	authenticator *middleware.Authenticator,
	campaigns ports.CampaignRepository,
	responseCache *cache.TTLCache,
	errHandler *pkgerrors.ErrorHandler,
	tracer *observability.Tracer,
	logger *zap.Logger,
) *Router {
	return &Router{
		cfg:           cfg,
		commandBus:    commandBus,
		queryBus:      queryBus,
		login:         login,
		authenticator: authenticator,
		campaigns:     campaigns,
		cache:         responseCache,
		errors:        errHandler,
		tracer:        tracer,
		logger:        logger,
	}
}

// Setup configures all routes and middleware
func (rt *Router) Setup() http.Handler {
	router := chi.NewRouter()

	// Global middleware
	router.Use(rt.tracer.Middleware)
	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(middleware.Logger(rt.logger))
	router.Use(rt.errors.Middleware)

	if rt.cfg.EnableCORS {
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins:   rt.cfg.CORSOrigins,
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
			ExposedHeaders:   []string{"X-Request-ID", "Retry-After"},
			AllowCredentials: !slices.Contains(rt.cfg.CORSOrigins, "*"),
			MaxAge:           300,
		}))
	}

	router.Get("/health", rt.healthCheck)
	router.Get("/ready", rt.readinessCheck)

	router.Route("/api", func(r chi.Router) {
		r.Post("/auth/token", handlers.NewAuthHandler(rt.login, rt.errors, rt.logger).IssueToken)

		r.Group(func(r chi.Router) {
			if rt.authenticator != nil {
				r.Use(rt.authenticator.Middleware)
			}

			r.Route("/campaigns", func(r chi.Router) {
				campaignHandler := handlers.NewCampaignHandler(rt.commandBus, rt.queryBus, rt.errors, rt.logger)
				r.Get("/", campaignHandler.ListCampaigns)
				r.Post("/", campaignHandler.CreateCampaign)
				r.Get("/{id}", campaignHandler.GetCampaign)
				r.Put("/{id}", campaignHandler.UpdateCampaign)
				r.With(rt.adminOnly).Delete("/{id}", campaignHandler.DeleteCampaign)
			})

			r.Route("/leads", func(r chi.Router) {
				leadHandler := handlers.NewLeadHandler(rt.commandBus, rt.queryBus, rt.errors, rt.logger)
				r.Get("/", leadHandler.ListLeads)
				r.Post("/", leadHandler.StoreLeads)
			})

			r.Post("/personalized-message", handlers.NewMessageHandler(rt.commandBus, rt.errors, rt.logger).GenerateMessage)
		})
	})

	return router
}

// adminOnly requires the admin role when authentication is enabled
func (rt *Router) adminOnly(next http.Handler) http.Handler {
	if rt.authenticator == nil {
		return next
	}
	return middleware.RequireRole(rt.errors, "admin")(next)
}

type healthResponse struct {
	Status string       `json:"status"`
	Cache  *cache.Stats `json:"cache,omitempty"`
}

// healthCheck reports liveness along with the response cache counters
func (rt *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	resp := healthResponse{Status: "healthy"}
	if rt.cache != nil {
		stats := rt.cache.Stats()
		resp.Cache = &stats
	}
	common.RespondJSON(w, http.StatusOK, resp)
}

// readinessCheck reports ready once the campaign store answers a count
func (rt *Router) readinessCheck(w http.ResponseWriter, req *http.Request) {
	ctx, cancel := context.WithTimeout(req.Context(), readyTimeout)
	defer cancel()

	if _, err := rt.campaigns.Count(ctx, ports.CampaignFilter{}); err != nil {
		rt.errors.Handle(w, req, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}
