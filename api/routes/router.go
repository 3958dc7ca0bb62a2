package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/custodia-hq/custodia-backend/api/controllers"
	"github.com/custodia-hq/custodia-backend/api/middleware"
	"github.com/custodia-hq/custodia-backend/internal/quotes"
	"github.com/custodia-hq/custodia-backend/pkg/config"
	"github.com/custodia-hq/custodia-backend/pkg/db"
	"github.com/custodia-hq/custodia-backend/pkg/logger"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	quotesService quotes.Service,
) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP))
	})

	r.Route("/api/public", func(r chi.Router) {
		r.Get("/ping", controllers.PublicPing())
	})

	r.Route("/api/v1/quotes/{quoteID}", func(r chi.Router) {
		r.Get("/", controllers.GetQuote(quotesService, logg))
		r.Route("/costs", func(r chi.Router) {
			r.Get("/", controllers.GetQuoteCosts(quotesService, logg))
			r.Put("/", controllers.ReplaceQuoteCosts(quotesService, logg))
		})
	})

	return r
}
