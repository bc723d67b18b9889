package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"

	"github.com/thetajwar2003/SpendWiseApi/internal/domain"
	"github.com/thetajwar2003/SpendWiseApi/internal/infra/observability"
	"github.com/thetajwar2003/SpendWiseApi/internal/port"
	"github.com/thetajwar2003/SpendWiseApi/internal/service"
)

var tracer = otel.Tracer("handler")

// Services bundles everything the router needs.
type Services struct {
	Auth          *service.AuthService
	Link          *service.LinkService
	Transactions  *service.TransactionService
	Budgets       *service.BudgetService
	Subscriptions *service.SubscriptionService

	// Verifier may be nil to disable token checks in local runs.
	Verifier port.TokenVerifier
	// Users is pinged by the health check.
	Users port.UserStore
}

// NewRouter creates the HTTP router with all routes and middleware.
func NewRouter(svcs Services, metrics *observability.Metrics, logger *zap.Logger, allowedOrigins []string) http.Handler {
	r := chi.NewRouter()

	// --- Middleware ---
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(observability.ZapLoggerMiddleware(logger))
	r.Use(observability.MetricsMiddleware(metrics))
	r.Use(observability.TracingMiddleware)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Heartbeat("/ping"))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// --- Operational endpoints ---
	r.Get("/healthz", healthzHandler(svcs.Users, logger))
	r.Get("/readyz", readyzHandler())
	r.Handle("/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))

	// --- API v1 ---
	r.Route("/v1", func(r chi.Router) {

		// Auth flows are unauthenticated by nature; logout reads the
		// bearer token itself.
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", registerHandler(svcs.Auth, logger))
			r.Post("/login", loginHandler(svcs.Auth, logger))
			r.Post("/confirm", confirmHandler(svcs.Auth, logger))
			r.Post("/resend-confirmation", resendConfirmationHandler(svcs.Auth, logger))
			r.Post("/logout", logoutHandler(svcs.Auth, logger))
		})

		r.Get("/metrics/service", serviceMetricsHandler(metrics))

		// Everything below requires a valid access token.
		r.Group(func(r chi.Router) {
			r.Use(AuthMiddleware(svcs.Verifier, logger))

			r.Route("/link", func(r chi.Router) {
				r.Post("/token", createLinkTokenHandler(svcs.Link, logger))
				r.Post("/exchange", exchangeTokenHandler(svcs.Link, logger))
			})

			r.Route("/users/{userId}", func(r chi.Router) {
				r.Get("/accounts", listAccountsHandler(svcs.Transactions, logger))
				r.Get("/accounts/{accountId}", accountDetailHandler(svcs.Transactions, logger))

				r.Get("/transactions/summary", transactionSummaryHandler(svcs.Transactions, logger))
				r.Get("/transactions/monthly", monthlySummaryHandler(svcs.Transactions, logger))
				r.Get("/transactions/categories/previous-month", previousMonthCategoriesHandler(svcs.Transactions, logger))

				r.Get("/liabilities", liabilitiesHandler(svcs.Transactions, logger))

				r.Route("/budgets", func(r chi.Router) {
					r.Post("/", createBudgetHandler(svcs.Budgets, logger))
					r.Get("/", listBudgetsHandler(svcs.Budgets, logger))
					r.Put("/{category}", updateBudgetHandler(svcs.Budgets, logger))
					r.Delete("/{category}", deleteBudgetHandler(svcs.Budgets, logger))
				})

				r.Route("/subscriptions", func(r chi.Router) {
					r.Post("/", addSubscriptionHandler(svcs.Subscriptions, logger))
					r.Get("/", listSubscriptionsHandler(svcs.Subscriptions, logger))
					r.Delete("/{subscriptionId}", deleteSubscriptionHandler(svcs.Subscriptions, logger))
				})
			})
		})
	})

	return r
}

// ============================================================
// Health & metrics
// ============================================================

func healthzHandler(users port.UserStore, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		now := time.Now().Format(time.RFC3339)

		services := []domain.ServiceHealth{
			{Name: "spendwise-api", Status: "healthy", LatencyMs: 0, LastChecked: now},
		}

		if users != nil {
			start := time.Now()
			_, err := users.GetUser(ctx, "health-check")
			latency := time.Since(start).Milliseconds()

			// A not-found for the probe key still proves the table
			// is reachable.
			status := "healthy"
			var notFound *domain.ErrNotFound
			if err != nil && !errors.As(err, &notFound) {
				status = "degraded"
				logger.Warn("healthz: user store probe failed", zap.Error(err))
			}
			services = append(services, domain.ServiceHealth{
				Name: "dynamodb", Status: status, LatencyMs: latency, LastChecked: now,
			})
		}

		overallStatus := "healthy"
		for _, s := range services {
			if s.Status == "unhealthy" {
				overallStatus = "unhealthy"
				break
			}
			if s.Status == "degraded" {
				overallStatus = "degraded"
			}
		}

		writeJSON(w, http.StatusOK, domain.HealthStatus{
			Status:   overallStatus,
			Services: services,
		})
	}
}

func readyzHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	}
}

func serviceMetricsHandler(metrics *observability.Metrics) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, metrics.GetServiceSnapshot())
	}
}
