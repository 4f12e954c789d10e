package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"

	"handwerk/portal_backend/internal/domain/offer"
)

type renderOfferRequest struct {
	Customer  offer.Customer   `json:"customer"`
	Positions []offer.Position `json:"positions"`
	Meta      struct {
		Title           string  `json:"title"`
		Intro           string  `json:"intro"`
		Commit          bool    `json:"commit"`
		Date            string  `json:"date"`
		ValidUntil      string  `json:"validUntil"`
		TaxRate         float64 `json:"taxRate"`
		BillingSettings struct {
			Template string `json:"template"`
		} `json:"billingSettings"`
		OfferNumber string         `json:"offerNumber"`
		OfferID     string         `json:"offerId"`
		Discount    offer.Discount `json:"discount"`
	} `json:"meta"`
}

// RenderOffer renders an offer document from the posted draft. commit=false
// is the preview path and persists nothing; commit=true stores the offer
// before rendering.
func (h *Handlers) RenderOffer(w http.ResponseWriter, r *http.Request) {
	var req renderOfferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Customer.ID) == "" || strings.TrimSpace(req.Meta.OfferNumber) == "" {
		http.Error(w, "customer and offer number required", http.StatusBadRequest)
		return
	}

	d := draftFromRequest(req)

	if req.Meta.Commit {
		if err := h.storeOffer(r.Context(), d); err != nil {
			log.Printf("offer render: store failed: %v", err)
			http.Error(w, "store offer failed", http.StatusInternalServerError)
			return
		}
	}

	pdfBytes, err := h.PDF.Generate(d)
	if err != nil {
		log.Printf("offer render: pdf failed: %v", err)
		http.Error(w, "pdf generation failed", http.StatusInternalServerError)
		return
	}

	filename := fmt.Sprintf("Angebot-%s.pdf", d.Number)
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf(`attachment; filename="%s"`, url.PathEscape(filename)))
	w.WriteHeader(http.StatusOK)
	w.Write(pdfBytes)
}

func draftFromRequest(req renderOfferRequest) *offer.Draft {
	d := &offer.Draft{
		Customer:   req.Customer,
		OfferID:    req.Meta.OfferID,
		Number:     req.Meta.OfferNumber,
		IssueDate:  req.Meta.Date,
		ValidUntil: req.Meta.ValidUntil,
		Title:      req.Meta.Title,
		Intro:      req.Meta.Intro,
		TaxRate:    req.Meta.TaxRate,
		Positions:  make(offer.PositionList, 0, len(req.Positions)),
		Discount:   req.Meta.Discount.Normalize(),
		Template:   req.Meta.BillingSettings.Template,
	}
	for _, p := range req.Positions {
		p.Kind = offer.ParseKind(string(p.Kind))
		d.Positions = append(d.Positions, p)
	}
	return d
}

func (h *Handlers) storeOffer(ctx context.Context, d *offer.Draft) error {
	id := strings.TrimSpace(d.OfferID)
	if id == "" {
		id = uuid.NewString()
		d.OfferID = id
	}
	payload, err := json.Marshal(d.Positions)
	if err != nil {
		return err
	}
	t := d.Totals()
	_, err = h.DB.Pool.Exec(ctx,
		`INSERT INTO offers (id, number, customer_id, title, issue_date, valid_until,
		                     tax_rate, positions, net, gross)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 ON CONFLICT (id) DO UPDATE SET
		   number = EXCLUDED.number, title = EXCLUDED.title,
		   issue_date = EXCLUDED.issue_date, valid_until = EXCLUDED.valid_until,
		   tax_rate = EXCLUDED.tax_rate, positions = EXCLUDED.positions,
		   net = EXCLUDED.net, gross = EXCLUDED.gross`,
		id, d.Number, d.Customer.ID, d.Title, d.IssueDate, d.ValidUntil,
		d.TaxRate, payload, t.Net, t.Gross)
	return err
}
