package offer

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// Customer is the selected recipient of the offer. Only fields that end up
// on the rendered document or in placeholder substitution live here.
type Customer struct {
	ID         string `json:"id"`
	Salutation string `json:"salutation"`
	Name       string `json:"name"`
	Company    string `json:"company"`
	Street     string `json:"street"`
	Zip        string `json:"zip"`
	City       string `json:"city"`
	Email      string `json:"email"`
}

// Draft is the full in-progress offer state. It is mutated only by the
// editor; the preview subsystem reads it and nothing else.
type Draft struct {
	Customer   Customer
	OfferID    string
	Number     string
	IssueDate  string
	ValidUntil string
	Title      string
	Intro      string
	TaxRate    float64
	Positions  PositionList
	Discount   Discount
	Template   string
}

// fingerprintView is the canonical encoding of everything that can affect
// the rendered artifact. Struct field order fixes the JSON key order, so
// two field-equal drafts always encode identically.
type fingerprintView struct {
	Customer   Customer     `json:"customer"`
	OfferID    string       `json:"offerId"`
	Number     string       `json:"number"`
	IssueDate  string       `json:"issueDate"`
	ValidUntil string       `json:"validUntil"`
	Title      string       `json:"title"`
	Intro      string       `json:"intro"`
	TaxRate    float64      `json:"taxRate"`
	Positions  []fpPosition `json:"positions"`
	Discount   Discount     `json:"discount"`
	Template   string       `json:"template"`
}

type fpPosition struct {
	Kind        Kind    `json:"type"`
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	Unit        string  `json:"unit"`
	UnitPrice   float64 `json:"unitPrice"`
}

// Fingerprint returns a deterministic digest of the draft. It is the only
// signal the preview controller uses to decide whether anything
// preview-relevant changed.
func (d *Draft) Fingerprint() string {
	v := fingerprintView{
		Customer:   d.Customer,
		OfferID:    d.OfferID,
		Number:     d.Number,
		IssueDate:  d.IssueDate,
		ValidUntil: d.ValidUntil,
		Title:      d.Title,
		Intro:      d.Intro,
		TaxRate:    d.TaxRate,
		Positions:  make([]fpPosition, 0, len(d.Positions)),
		Discount:   d.Discount,
		Template:   d.Template,
	}
	for _, p := range d.Positions {
		v.Positions = append(v.Positions, fpPosition{
			Kind:        p.Kind,
			Description: p.Description,
			Quantity:    p.Quantity,
			Unit:        p.Unit,
			UnitPrice:   p.UnitPrice,
		})
	}
	raw, err := json.Marshal(v)
	if err != nil {
		// only unmarshalable values can end up here and the view has none
		return ""
	}
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:])
}

// Clone returns an independent copy of the draft, so a render issued for
// one fingerprint is not affected by edits made while it is in flight.
func (d *Draft) Clone() *Draft {
	cp := *d
	cp.Positions = make(PositionList, len(d.Positions))
	copy(cp.Positions, d.Positions)
	return &cp
}

// Totals prices the draft with its own tax rate and discount.
func (d *Draft) Totals() Totals {
	return ComputeTotals(d.Positions, d.TaxRate, d.Discount)
}
