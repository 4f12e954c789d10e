package handlers

import (
	"log"

	"handwerk/portal_backend/internal/app/config"
	"handwerk/portal_backend/internal/domain/offer/pdf"
	pdfgen "handwerk/portal_backend/internal/domain/offer/pdf/gofpdf"
	"handwerk/portal_backend/internal/domain/offer/preview"
	"handwerk/portal_backend/internal/domain/offer/template"
	"handwerk/portal_backend/internal/infra/db/postgres"
)

type Handlers struct {
	DB       *postgres.DB
	Cfg      config.Config
	PDF      pdf.Generator
	Catalog  *template.Catalog
	Previews *previewSessions
}

func New(db *postgres.DB, cfg config.Config) *Handlers {
	store, err := preview.NewStore(cfg.PreviewSpoolDir)
	if err != nil {
		log.Fatalf("preview store: %v", err)
	}
	client := preview.NewClient(cfg.RenderURL, cfg.InternalToken, nil)
	return &Handlers{
		DB:       db,
		Cfg:      cfg,
		PDF:      pdfgen.New(),
		Catalog:  template.NewCatalog(db),
		Previews: newPreviewSessions(client, store),
	}
}
