package offer

import (
	"testing"
)

func TestAppendDefaults(t *testing.T) {
	var l PositionList
	l.Append(KindItem)
	l.Append(KindHeading)

	if len(l) != 2 {
		t.Fatalf("expected 2 positions, got %d", len(l))
	}
	item := l[0]
	if item.Quantity != 1 || item.Unit != "Stück" || item.UnitPrice != 0 {
		t.Fatalf("unexpected item defaults: %+v", item)
	}
	heading := l[1]
	if heading.Quantity != 0 || heading.Unit != "" {
		t.Fatalf("heading should carry no item fields: %+v", heading)
	}
}

func TestRemove(t *testing.T) {
	l := PositionList{
		{Kind: KindItem, Description: "a"},
		{Kind: KindItem, Description: "b"},
	}
	l.Remove(0)
	if len(l) != 1 || l[0].Description != "b" {
		t.Fatalf("unexpected list after remove: %+v", l)
	}

	l.Remove(5)
	l.Remove(-1)
	if len(l) != 1 {
		t.Fatalf("out-of-range remove must be a no-op, got %+v", l)
	}
}

func TestReorderIsPermutation(t *testing.T) {
	l := PositionList{
		{Kind: KindItem, Description: "a"},
		{Kind: KindSubtotal, Description: "b"},
		{Kind: KindItem, Description: "c"},
		{Kind: KindSeparator, Description: "d"},
	}

	l.Reorder(0, 3)
	l.Reorder(2, 0)
	l.Reorder(3, 1)

	if len(l) != 4 {
		t.Fatalf("reorder changed length: %d", len(l))
	}
	seen := map[string]int{}
	for _, p := range l {
		seen[p.Description]++
	}
	for _, d := range []string{"a", "b", "c", "d"} {
		if seen[d] != 1 {
			t.Fatalf("element %q lost or duplicated: %v", d, seen)
		}
	}
}

func TestReorderMove(t *testing.T) {
	l := PositionList{
		{Description: "a"}, {Description: "b"}, {Description: "c"},
	}
	l.Reorder(2, 0)
	if l[0].Description != "c" || l[1].Description != "a" || l[2].Description != "b" {
		t.Fatalf("unexpected order: %+v", l)
	}
}

func TestUpdateFieldNumericCoercion(t *testing.T) {
	l := PositionList{NewPosition(KindItem)}

	t.Run("comma decimal", func(t *testing.T) {
		l.UpdateField(0, FieldUnitPrice, "2,5")
		if l[0].UnitPrice != 2.5 {
			t.Fatalf("expected 2.5, got %v", l[0].UnitPrice)
		}
	})

	t.Run("period decimal", func(t *testing.T) {
		l.UpdateField(0, FieldQuantity, "3.25")
		if l[0].Quantity != 3.25 {
			t.Fatalf("expected 3.25, got %v", l[0].Quantity)
		}
	})

	t.Run("grouped german format", func(t *testing.T) {
		l.UpdateField(0, FieldUnitPrice, "1.234,56")
		if l[0].UnitPrice != 1234.56 {
			t.Fatalf("expected 1234.56, got %v", l[0].UnitPrice)
		}
	})

	t.Run("garbage becomes zero", func(t *testing.T) {
		l.UpdateField(0, FieldUnitPrice, "abc")
		if l[0].UnitPrice != 0 {
			t.Fatalf("expected 0, got %v", l[0].UnitPrice)
		}
	})

	t.Run("text fields pass through", func(t *testing.T) {
		l.UpdateField(0, FieldDescription, "")
		if l[0].Description != "" {
			t.Fatalf("empty description must be valid")
		}
		l.UpdateField(0, FieldUnit, "Std.")
		if l[0].Unit != "Std." {
			t.Fatalf("expected unit Std., got %q", l[0].Unit)
		}
	})
}

func TestSubtotalAt(t *testing.T) {
	l := PositionList{
		{Kind: KindItem, Quantity: 2, UnitPrice: 50},
		{Kind: KindSubtotal, Description: "Zwischensumme"},
		{Kind: KindItem, Quantity: 1, UnitPrice: 20},
	}
	if got := l.SubtotalAt(1); got != 100 {
		t.Fatalf("subtotal row should display 100, got %v", got)
	}
	// a subtotal at the end sums the whole document
	if got := l.SubtotalAt(3); got != 120 {
		t.Fatalf("expected 120, got %v", got)
	}
}

func TestParseKind(t *testing.T) {
	cases := map[string]Kind{
		"item":      KindItem,
		"HEADING":   KindHeading,
		" subtotal": KindSubtotal,
		"separator": KindSeparator,
		"whatever":  KindItem,
		"":          KindItem,
	}
	for in, want := range cases {
		if got := ParseKind(in); got != want {
			t.Fatalf("ParseKind(%q) = %q, want %q", in, got, want)
		}
	}
}
