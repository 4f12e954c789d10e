package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"handwerk/portal_backend/internal/app/config"
	"handwerk/portal_backend/internal/app/http/handlers"
	"handwerk/portal_backend/internal/app/http/middleware"
	"handwerk/portal_backend/internal/infra/db/postgres"
)

func NewRouter(cfg config.Config, db *postgres.DB) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Logging)
	r.Use(middleware.CORS(cfg.CORSAllowOrigin))

	h := handlers.New(db, cfg)

	r.Get("/health", h.Health)

	r.Route("/v1", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(middleware.InternalAuth(cfg.InternalToken))

			r.Post("/offers/render", h.RenderOffer)
			r.Get("/offers/templates", h.ListOfferTemplates)
			r.Post("/offers/preview", h.PushPreview)
			r.Get("/offers/preview", h.GetPreview)
			r.Delete("/offers/preview", h.ClosePreview)
		})
	})

	return r
}
