package offer

// PositionList is the ordered sequence of rows making up the offer body.
// All operations keep indexes dense; out-of-range indexes are ignored
// rather than panicking, mirroring how the editor drives the list.
type PositionList []Position

// Append adds a new position of the given kind, with defaults, at the end.
func (l *PositionList) Append(kind Kind) {
	*l = append(*l, NewPosition(kind))
}

// Remove deletes the position at index i. Indexes outside the list are a no-op.
func (l *PositionList) Remove(i int) {
	if i < 0 || i >= len(*l) {
		return
	}
	*l = append((*l)[:i], (*l)[i+1:]...)
}

// Reorder moves the element at from to position to, preserving the relative
// order of everything else. Any kind may be moved, including subtotals and
// separators; the document layout is freeform.
func (l *PositionList) Reorder(from, to int) {
	n := len(*l)
	if from < 0 || from >= n || to < 0 || to >= n || from == to {
		return
	}
	p := (*l)[from]
	rest := make(PositionList, 0, n-1)
	rest = append(rest, (*l)[:from]...)
	rest = append(rest, (*l)[from+1:]...)
	out := make(PositionList, 0, n)
	out = append(out, rest[:to]...)
	out = append(out, p)
	out = append(out, rest[to:]...)
	*l = out
}

// Field names accepted by UpdateField.
const (
	FieldDescription = "description"
	FieldQuantity    = "quantity"
	FieldUnit        = "unit"
	FieldUnitPrice   = "unitPrice"
)

// UpdateField writes a raw editor value into the named field. Numeric
// fields go through ParseAmount, so "2,5" and "2.5" both land as 2.5 and
// garbage lands as 0; the row never ends up unparsable.
func (l PositionList) UpdateField(i int, field, raw string) {
	if i < 0 || i >= len(l) {
		return
	}
	switch field {
	case FieldDescription:
		l[i].Description = raw
	case FieldUnit:
		l[i].Unit = raw
	case FieldQuantity:
		l[i].Quantity = ParseAmount(raw)
	case FieldUnitPrice:
		l[i].UnitPrice = ParseAmount(raw)
	}
}

// SubtotalAt returns the sum of all item line totals strictly before index
// i, counted from the start of the list. This is the value a subtotal row
// at i displays.
func (l PositionList) SubtotalAt(i int) float64 {
	if i > len(l) {
		i = len(l)
	}
	var sum float64
	for j := 0; j < i; j++ {
		sum += l[j].LineTotal()
	}
	return sum
}
