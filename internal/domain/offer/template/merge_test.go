package template

import (
	"testing"

	"handwerk/portal_backend/internal/domain/offer"
)

var customer = offer.Customer{
	Salutation: "Frau",
	Name:       "Beispiel",
	Company:    "Beispiel GmbH",
	City:       "Berlin",
}

func TestMergeCoercesKinds(t *testing.T) {
	raw := []RawPosition{
		{Type: "item", Description: "Kabel"},
		{Type: "heading", Description: "Arbeiten"},
		{Type: "banana", Description: "???"},
		{Type: "", Description: "leer"},
	}
	got := Merge(raw, customer)
	want := []offer.Kind{offer.KindItem, offer.KindHeading, offer.KindItem, offer.KindItem}
	for i, k := range want {
		if got[i].Kind != k {
			t.Fatalf("position %d: kind = %q, want %q", i, got[i].Kind, k)
		}
	}
}

func TestMergeCoercesNumbers(t *testing.T) {
	cases := []struct {
		name     string
		raw      RawPosition
		quantity float64
		price    float64
	}{
		{"floats", RawPosition{Type: "item", Quantity: 2.0, UnitPrice: 3.5}, 2, 3.5},
		{"numeric strings", RawPosition{Type: "item", Quantity: "2", UnitPrice: "3,5"}, 2, 3.5},
		{"garbage keeps defaults", RawPosition{Type: "item", Quantity: "viele", UnitPrice: map[string]any{}}, 1, 0},
		{"absent keeps defaults", RawPosition{Type: "item"}, 1, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Merge([]RawPosition{tc.raw}, customer)[0]
			if got.Quantity != tc.quantity || got.UnitPrice != tc.price {
				t.Fatalf("got qty=%v price=%v, want qty=%v price=%v",
					got.Quantity, got.UnitPrice, tc.quantity, tc.price)
			}
		})
	}
}

func TestMergeSubstitutesPlaceholders(t *testing.T) {
	raw := []RawPosition{{
		Type:        "description",
		Description: "Angebot für {{kunde.firma}}, z. Hd. {{kunde.anrede}} {{kunde.name}} ({{kunde.unbekannt}})",
	}}
	got := Merge(raw, customer)[0].Description
	want := "Angebot für Beispiel GmbH, z. Hd. Frau Beispiel ({{kunde.unbekannt}})"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestMergeDoesNotMutateInput(t *testing.T) {
	raw := []RawPosition{{Type: "item", Description: "{{kunde.name}}", Quantity: "5"}}
	Merge(raw, customer)
	if raw[0].Description != "{{kunde.name}}" || raw[0].Quantity != "5" {
		t.Fatalf("input mutated: %+v", raw[0])
	}
}

func TestMergeItemUnitDefault(t *testing.T) {
	got := Merge([]RawPosition{{Type: "item", Unit: " "}}, customer)[0]
	if got.Unit != "Stück" {
		t.Fatalf("blank unit keeps the default, got %q", got.Unit)
	}
	got = Merge([]RawPosition{{Type: "item", Unit: "Std."}}, customer)[0]
	if got.Unit != "Std." {
		t.Fatalf("explicit unit wins, got %q", got.Unit)
	}
}

func TestReplacePlaceholdersNoTokens(t *testing.T) {
	if got := ReplacePlaceholders("kein Platzhalter", customer); got != "kein Platzhalter" {
		t.Fatalf("got %q", got)
	}
}
