package template

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"handwerk/portal_backend/internal/domain/offer"
)

// RawPosition is a loosely typed candidate row, as it arrives from a saved
// template or an AI-proposed draft. Numerics are `any` because imports
// carry numbers, numeric strings, or nothing at all.
type RawPosition struct {
	Type        string `json:"type"`
	Description string `json:"description"`
	Quantity    any    `json:"quantity,omitempty"`
	Unit        string `json:"unit,omitempty"`
	UnitPrice   any    `json:"unitPrice,omitempty"`
}

// Merge normalizes an imported position list into the canonical shape and
// substitutes customer placeholders in description text. The input is
// never mutated; a half-broken row gets field-by-field defaults instead of
// failing the import.
func Merge(raw []RawPosition, customer offer.Customer) offer.PositionList {
	out := make(offer.PositionList, 0, len(raw))
	for _, r := range raw {
		p := offer.NewPosition(offer.ParseKind(r.Type))
		p.Description = ReplacePlaceholders(r.Description, customer)
		if p.Kind == offer.KindItem {
			if q, ok := coerceNumber(r.Quantity); ok {
				p.Quantity = q
			}
			if v, ok := coerceNumber(r.UnitPrice); ok {
				p.UnitPrice = v
			}
			if u := strings.TrimSpace(r.Unit); u != "" {
				p.Unit = u
			}
		}
		out = append(out, p)
	}
	return out
}

// ReplacePlaceholders substitutes {{kunde.*}} tokens in free text with the
// customer's attributes. Tokens it does not know stay literal.
func ReplacePlaceholders(text string, c offer.Customer) string {
	if !strings.Contains(text, "{{") {
		return text
	}
	r := strings.NewReplacer(
		"{{kunde.anrede}}", c.Salutation,
		"{{kunde.name}}", c.Name,
		"{{kunde.firma}}", c.Company,
		"{{kunde.strasse}}", c.Street,
		"{{kunde.plz}}", c.Zip,
		"{{kunde.ort}}", c.City,
		"{{kunde.email}}", c.Email,
	)
	return r.Replace(text)
}

func coerceNumber(v any) (float64, bool) {
	var f float64
	switch t := v.(type) {
	case float64:
		f = t
	case int:
		f = float64(t)
	case int64:
		f = float64(t)
	case json.Number:
		parsed, err := t.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	case string:
		parsed, err := strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(t), ",", "."), 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
