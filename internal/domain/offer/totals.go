package offer

// DiscountType says how the discount value is read.
type DiscountType string

// DiscountBase says which figure the discount is computed against.
type DiscountBase string

const (
	DiscountPercent DiscountType = "percent"
	DiscountAmount  DiscountType = "amount"

	BaseNet   DiscountBase = "net"
	BaseGross DiscountBase = "gross"
)

// Discount is the document-level price adjustment. It only ever touches
// the totals footer; individual position prices are never discounted.
type Discount struct {
	Enabled bool         `json:"enabled"`
	Label   string       `json:"label"`
	Type    DiscountType `json:"type"`
	Base    DiscountBase `json:"base"`
	Value   float64      `json:"value"`
}

// Normalize clamps the value to non-negative and maps unknown type/base
// strings to their defaults. Imported discounts pass through here so a
// half-broken payload still yields a usable discount.
func (d Discount) Normalize() Discount {
	if d.Value < 0 {
		d.Value = 0
	}
	if d.Type != DiscountAmount {
		d.Type = DiscountPercent
	}
	if d.Base != BaseGross {
		d.Base = BaseNet
	}
	return d
}

// Totals is the aggregate monetary result for a position list.
type Totals struct {
	Net            float64 `json:"net"`
	DiscountAmount float64 `json:"discountAmount"`
	TaxableBase    float64 `json:"taxableBase"`
	Tax            float64 `json:"tax"`
	Gross          float64 `json:"gross"`
}

// ComputeTotals prices the full position list. Only item rows contribute;
// subtotal boundaries do not scope the sum. taxRate is a percentage.
//
// Discount policy for base=gross with type=amount: the value is taken as a
// gross-denominated amount and divided by (1+rate/100) to get its
// net-equivalent before the taxable base is derived.
func ComputeTotals(positions PositionList, taxRate float64, discount Discount) Totals {
	var net float64
	for _, p := range positions {
		net += p.LineTotal()
	}

	rate := taxRate / 100
	grossBeforeDiscount := net * (1 + rate)

	var discountAmount, discountNet float64
	if discount.Enabled {
		d := discount.Normalize()
		base := net
		if d.Base == BaseGross {
			base = grossBeforeDiscount
		}
		switch d.Type {
		case DiscountPercent:
			discountAmount = base * d.Value / 100
			if discountAmount > base {
				discountAmount = base
			}
		case DiscountAmount:
			discountAmount = d.Value
			if discountAmount > base {
				discountAmount = base
			}
		}
		discountNet = discountAmount
		if d.Base == BaseGross && rate > -1 {
			discountNet = discountAmount / (1 + rate)
		}
	}

	taxableBase := net - discountNet
	if taxableBase < 0 {
		taxableBase = 0
	}
	tax := taxableBase * rate

	return Totals{
		Net:            net,
		DiscountAmount: discountAmount,
		TaxableBase:    taxableBase,
		Tax:            tax,
		Gross:          taxableBase + tax,
	}
}
