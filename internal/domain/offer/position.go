package offer

import (
	"math"
	"strconv"
	"strings"
)

// Kind discriminates the row types of an offer document.
type Kind string

const (
	KindItem        Kind = "item"
	KindHeading     Kind = "heading"
	KindDescription Kind = "description"
	KindSubtotal    Kind = "subtotal"
	KindSeparator   Kind = "separator"
)

// ParseKind maps a free-form type string to a known Kind. Unknown values
// fall back to KindItem.
func ParseKind(s string) Kind {
	switch Kind(strings.TrimSpace(strings.ToLower(s))) {
	case KindHeading:
		return KindHeading
	case KindDescription:
		return KindDescription
	case KindSubtotal:
		return KindSubtotal
	case KindSeparator:
		return KindSeparator
	default:
		return KindItem
	}
}

// Position is one row of the offer document. Only item rows carry
// quantity, unit and price; a subtotal row's value is always computed,
// never stored.
type Position struct {
	Kind        Kind    `json:"type"`
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity,omitempty"`
	Unit        string  `json:"unit,omitempty"`
	UnitPrice   float64 `json:"unitPrice,omitempty"`
}

// LineTotal returns quantity×unitPrice for item rows and 0 for all others.
func (p Position) LineTotal() float64 {
	if p.Kind != KindItem {
		return 0
	}
	return p.Quantity * p.UnitPrice
}

// NewPosition returns a position of the given kind with its defaults.
// Items start at quantity 1, unit "Stück", price 0.
func NewPosition(kind Kind) Position {
	p := Position{Kind: kind}
	if kind == KindItem {
		p.Quantity = 1
		p.Unit = "Stück"
	}
	return p
}

// ParseAmount accepts both period- and comma-decimal input ("2.5", "2,5",
// "1.234,56") and returns 0 for anything that does not parse to a finite
// number. It never fails; malformed input is a user typing, not an error.
func ParseAmount(raw string) float64 {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0
	}
	if strings.Contains(s, ",") {
		// comma is the decimal separator, periods are grouping
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}
