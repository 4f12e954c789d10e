package offer

import (
	"math"
	"testing"
)

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func examplePositions() PositionList {
	return PositionList{
		{Kind: KindItem, Quantity: 2, UnitPrice: 50},
		{Kind: KindSubtotal},
		{Kind: KindItem, Quantity: 1, UnitPrice: 20},
	}
}

func TestComputeTotalsNoDiscount(t *testing.T) {
	got := ComputeTotals(examplePositions(), 19, Discount{})
	if !approx(got.Net, 120) {
		t.Fatalf("net = %v, want 120", got.Net)
	}
	if got.DiscountAmount != 0 {
		t.Fatalf("disabled discount must not alter totals, got %v", got.DiscountAmount)
	}
	if !approx(got.Gross, 142.80) {
		t.Fatalf("gross = %v, want 142.80", got.Gross)
	}
}

func TestComputeTotalsPercentNet(t *testing.T) {
	d := Discount{Enabled: true, Type: DiscountPercent, Base: BaseNet, Value: 10}
	got := ComputeTotals(examplePositions(), 19, d)
	if !approx(got.DiscountAmount, 12) {
		t.Fatalf("discountAmount = %v, want 12", got.DiscountAmount)
	}
	if !approx(got.TaxableBase, 108) {
		t.Fatalf("taxableBase = %v, want 108", got.TaxableBase)
	}
	if !approx(got.Tax, 20.52) {
		t.Fatalf("tax = %v, want 20.52", got.Tax)
	}
	if !approx(got.Gross, 128.52) {
		t.Fatalf("gross = %v, want 128.52", got.Gross)
	}
}

func TestComputeTotalsAmountClamped(t *testing.T) {
	d := Discount{Enabled: true, Type: DiscountAmount, Base: BaseNet, Value: 500}
	got := ComputeTotals(examplePositions(), 19, d)
	if !approx(got.DiscountAmount, 120) {
		t.Fatalf("amount discount must clamp to the base figure, got %v", got.DiscountAmount)
	}
	if got.TaxableBase != 0 || got.Gross != 0 {
		t.Fatalf("fully discounted document must end at zero: %+v", got)
	}
}

func TestComputeTotalsPercentClamped(t *testing.T) {
	d := Discount{Enabled: true, Type: DiscountPercent, Base: BaseNet, Value: 150}
	got := ComputeTotals(examplePositions(), 19, d)
	if !approx(got.DiscountAmount, 120) {
		t.Fatalf("percent discount above 100 clamps to base, got %v", got.DiscountAmount)
	}
}

func TestComputeTotalsPercentGrossBase(t *testing.T) {
	// 10% off the pre-discount gross: base 142.80, discount 14.28,
	// net-equivalent 12, so the tax math matches the net-base case.
	d := Discount{Enabled: true, Type: DiscountPercent, Base: BaseGross, Value: 10}
	got := ComputeTotals(examplePositions(), 19, d)
	if !approx(got.DiscountAmount, 14.28) {
		t.Fatalf("discountAmount = %v, want 14.28", got.DiscountAmount)
	}
	if !approx(got.TaxableBase, 108) {
		t.Fatalf("taxableBase = %v, want 108", got.TaxableBase)
	}
	if !approx(got.Gross, 128.52) {
		t.Fatalf("gross = %v, want 128.52", got.Gross)
	}
}

func TestComputeTotalsAmountGrossBase(t *testing.T) {
	// Policy: a gross-base amount is gross-denominated and is converted to
	// its net-equivalent before the taxable base is derived.
	d := Discount{Enabled: true, Type: DiscountAmount, Base: BaseGross, Value: 11.90}
	got := ComputeTotals(examplePositions(), 19, d)
	if !approx(got.DiscountAmount, 11.90) {
		t.Fatalf("discountAmount = %v, want 11.90", got.DiscountAmount)
	}
	if !approx(got.TaxableBase, 110) {
		t.Fatalf("taxableBase = %v, want 110", got.TaxableBase)
	}
	if !approx(got.Gross, 130.90) {
		t.Fatalf("gross = %v, want 130.90", got.Gross)
	}
}

func TestComputeTotalsOnlyItemsCount(t *testing.T) {
	l := PositionList{
		{Kind: KindHeading, Description: "Arbeiten"},
		{Kind: KindItem, Quantity: 3, UnitPrice: 10},
		{Kind: KindDescription, Description: "Details", Quantity: 99, UnitPrice: 99},
		{Kind: KindSeparator},
	}
	got := ComputeTotals(l, 0, Discount{})
	if !approx(got.Net, 30) {
		t.Fatalf("only item rows contribute, net = %v", got.Net)
	}
	if !approx(got.Gross, 30) {
		t.Fatalf("zero tax rate keeps gross = net, got %v", got.Gross)
	}
}

func TestDiscountNormalize(t *testing.T) {
	d := Discount{Enabled: true, Type: "weird", Base: "nonsense", Value: -5}.Normalize()
	if d.Value != 0 {
		t.Fatalf("negative value must clamp to 0, got %v", d.Value)
	}
	if d.Type != DiscountPercent || d.Base != BaseNet {
		t.Fatalf("unknown type/base must default: %+v", d)
	}
}
