package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"palantir/internal/infrastructure/auth"
	itemcontroller "palantir/internal/item/controller"
	ordercontroller "palantir/internal/order/controller"
)

// NewRouter mounts the API under /api/v1 behind the auth middleware. The
// health endpoint stays outside so probes work without a token.
func NewRouter(
	catalogCtrl *itemcontroller.CatalogController,
	refreshCtrl *ordercontroller.RefreshController,
	authz *auth.Auth,
	logger *zap.Logger,
) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(logger))

	r.Get("/healthz", handleHealth)

	r.Route("/api/v1", func(api chi.Router) {
		api.Use(authz.Middleware)

		api.Post("/catalog/search", catalogCtrl.HandleSearch)
		api.Post("/catalog/import", catalogCtrl.HandleImport)
		api.Get("/catalog/products/{productNumber}/bestprice", catalogCtrl.HandleBestPrice)
		api.Get("/catalog/products/{productNumber}/specification", catalogCtrl.HandleSpecification)

		api.Post("/sales-orders/{orderId}/refresh-prices", refreshCtrl.HandleRefreshPrices)
	})

	return r
}

func requestLogger(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			logger.Info("request handled",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("duration", time.Since(start)))
		})
	}
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
