package gofpdf

import (
	"bytes"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"

	"handwerk/portal_backend/internal/domain/offer"
)

type Generator struct{}

func New() *Generator { return &Generator{} }

func (g *Generator) Generate(d *offer.Draft) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Angebot", false)
	regularFont := "internal/domain/offer/pdf/gofpdf/fonts/DejaVuSans.ttf"
	boldFont := "internal/domain/offer/pdf/gofpdf/fonts/DejaVuSans-Bold.ttf"
	pdf.AddUTF8Font("DejaVu", "", regularFont)
	pdf.AddUTF8Font("DejaVu", "B", boldFont)
	if err := pdf.Error(); err != nil {
		return nil, err
	}
	pdf.AddPage()

	title := strings.TrimSpace(d.Title)
	if title == "" {
		title = "Angebot"
	}
	pdf.SetFont("DejaVu", "B", 16)
	pdf.Cell(0, 10, title)
	pdf.Ln(8)

	pdf.SetFont("DejaVu", "", 11)
	pdf.Cell(0, 6, fmt.Sprintf("Nr. %s vom %s", d.Number, d.IssueDate))
	pdf.Ln(6)
	if d.ValidUntil != "" {
		pdf.Cell(0, 6, fmt.Sprintf("Gültig bis: %s", d.ValidUntil))
		pdf.Ln(6)
	}

	if d.Customer.Name != "" || d.Customer.Company != "" {
		pdf.Ln(2)
		if d.Customer.Company != "" {
			pdf.Cell(0, 6, d.Customer.Company)
			pdf.Ln(6)
		}
		if d.Customer.Name != "" {
			pdf.Cell(0, 6, strings.TrimSpace(d.Customer.Salutation+" "+d.Customer.Name))
			pdf.Ln(6)
		}
		if d.Customer.Street != "" {
			pdf.Cell(0, 6, d.Customer.Street)
			pdf.Ln(6)
		}
		if d.Customer.City != "" {
			pdf.Cell(0, 6, strings.TrimSpace(d.Customer.Zip+" "+d.Customer.City))
			pdf.Ln(6)
		}
	}

	if strings.TrimSpace(d.Intro) != "" {
		pdf.Ln(2)
		pdf.MultiCell(0, 5, d.Intro, "", "L", false)
	}

	pdf.Ln(4)
	pdf.SetFont("DejaVu", "B", 11)
	pdf.Cell(95, 7, "Beschreibung")
	pdf.Cell(20, 7, "Menge")
	pdf.Cell(20, 7, "Einheit")
	pdf.Cell(25, 7, "Einzelpreis")
	pdf.Cell(30, 7, "Gesamt")
	pdf.Ln(8)

	for i, p := range d.Positions {
		switch p.Kind {
		case offer.KindItem:
			pdf.SetFont("DejaVu", "", 10)
			pdf.Cell(95, 6, trim(p.Description, 52))
			pdf.Cell(20, 6, formatQty(p.Quantity))
			pdf.Cell(20, 6, p.Unit)
			pdf.Cell(25, 6, formatEUR(p.UnitPrice))
			pdf.Cell(30, 6, formatEUR(p.LineTotal()))
			pdf.Ln(6)
		case offer.KindHeading:
			pdf.Ln(2)
			pdf.SetFont("DejaVu", "B", 10)
			pdf.Cell(0, 6, trim(p.Description, 80))
			pdf.Ln(6)
		case offer.KindDescription:
			pdf.SetFont("DejaVu", "", 9)
			pdf.MultiCell(0, 5, p.Description, "", "L", false)
		case offer.KindSubtotal:
			label := p.Description
			if strings.TrimSpace(label) == "" {
				label = "Zwischensumme"
			}
			pdf.SetFont("DejaVu", "B", 10)
			pdf.Cell(160, 6, trim(label, 90))
			pdf.Cell(30, 6, formatEUR(d.Positions.SubtotalAt(i)))
			pdf.Ln(6)
		case offer.KindSeparator:
			pdf.Ln(2)
			x, y := pdf.GetX(), pdf.GetY()
			pdf.Line(x, y, x+190, y)
			pdf.Ln(3)
		}
	}

	t := d.Totals()
	pdf.Ln(4)
	pdf.SetFont("DejaVu", "", 10)
	pdf.Cell(160, 6, "Nettobetrag")
	pdf.Cell(30, 6, formatEUR(t.Net))
	pdf.Ln(6)
	if d.Discount.Enabled && t.DiscountAmount > 0 {
		label := strings.TrimSpace(d.Discount.Label)
		if label == "" {
			label = "Rabatt"
		}
		pdf.Cell(160, 6, label)
		pdf.Cell(30, 6, "-"+formatEUR(t.DiscountAmount))
		pdf.Ln(6)
		pdf.Cell(160, 6, "Zwischensumme nach Rabatt")
		pdf.Cell(30, 6, formatEUR(t.TaxableBase))
		pdf.Ln(6)
	}
	pdf.Cell(160, 6, fmt.Sprintf("zzgl. %s%% MwSt.", formatQty(d.TaxRate)))
	pdf.Cell(30, 6, formatEUR(t.Tax))
	pdf.Ln(6)
	pdf.SetFont("DejaVu", "B", 11)
	pdf.Cell(160, 7, "Gesamtbetrag")
	pdf.Cell(30, 7, formatEUR(t.Gross))
	pdf.Ln(8)

	pdf.SetFont("DejaVu", "", 9)
	pdf.Cell(0, 5, fmt.Sprintf("Erstellt: %s", time.Now().Format(time.RFC3339)))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		log.Printf("offer pdf: output failed: %v", err)
		return nil, err
	}
	return buf.Bytes(), nil
}

// formatEUR truncates to two decimals with a comma separator, grouping
// left to the locale-aware viewer; the document shows plain figures.
func formatEUR(v float64) string {
	s := fmt.Sprintf("%.2f €", v)
	return strings.Replace(s, ".", ",", 1)
}

func formatQty(v float64) string {
	s := fmt.Sprintf("%g", v)
	return strings.Replace(s, ".", ",", 1)
}

func trim(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-1]) + "…"
}
