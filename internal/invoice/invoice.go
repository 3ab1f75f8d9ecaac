// Package invoice renders an order as a one-document PDF.
package invoice

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"
	"storefront/internal/domain"
)

const (
	margin    = 15.0
	lineH     = 6.0
	pageWidth = 210.0
)

var symbols = map[string]string{
	"USD": "$",
	"EUR": "€",
	"GBP": "£",
	"JPY": "¥",
}

// Filename is the suggested attachment name for an order's invoice.
func Filename(o domain.Order) string {
	return "invoice-" + o.ID + ".pdf"
}

// RenderBytes renders the invoice into memory.
func RenderBytes(o domain.Order, s domain.Settings) ([]byte, error) {
	var buf bytes.Buffer
	if err := Render(&buf, o, s); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Render writes the invoice PDF for o to w. Output is byte-identical for
// the same order and settings.
func Render(w io.Writer, o domain.Order, s domain.Settings) error {
	if o.ID == "" {
		return domain.Invalid("order.id", "required")
	}
	pdf := fpdf.New("P", "mm", "A4", "")
	stamp := o.CreatedAt
	if stamp.IsZero() {
		// fpdf substitutes the wall clock for a zero date.
		stamp = time.Unix(0, 0).UTC()
	}
	pdf.SetCreationDate(stamp)
	pdf.SetModificationDate(stamp)
	pdf.SetCatalogSort(true)
	pdf.SetMargins(margin, margin, margin)
	pdf.SetAutoPageBreak(true, 20)

	tr := pdf.UnicodeTranslatorFromDescriptor("")
	storeName := s.StoreName
	if storeName == "" {
		storeName = "Store"
	}
	pdf.SetTitle(fmt.Sprintf("%s invoice %s", storeName, o.ID), true)
	pdf.SetAuthor(storeName, true)

	r := renderer{pdf: pdf, tr: tr, settings: s}
	pdf.SetFooterFunc(r.footer)
	pdf.AddPage()

	r.header(storeName)
	r.meta(o)
	r.address(o)
	r.items(o.Items)
	r.totals(o)

	if err := pdf.Error(); err != nil {
		return fmt.Errorf("render invoice %s: %w", o.ID, err)
	}
	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("write invoice %s: %w", o.ID, err)
	}
	return nil
}

type renderer struct {
	pdf      *fpdf.Fpdf
	tr       func(string) string
	settings domain.Settings
}

func (r renderer) money(d decimal.Decimal) string {
	code := strings.ToUpper(r.settings.Currency)
	if sym, ok := symbols[code]; ok {
		return r.tr(sym + d.StringFixed(2))
	}
	if code == "" {
		return d.StringFixed(2)
	}
	return code + " " + d.StringFixed(2)
}

func (r renderer) header(storeName string) {
	pdf := r.pdf
	red, green, blue := hexColor(r.settings.PrimaryColor, 31, 41, 55)
	pdf.SetFillColor(red, green, blue)
	pdf.Rect(0, 0, pageWidth, 28, "F")

	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 20)
	pdf.SetXY(margin, 9)
	pdf.CellFormat(120, 10, r.tr(storeName), "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 12)
	pdf.CellFormat(0, 10, "INVOICE", "", 1, "R", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
	pdf.SetY(36)
}

func (r renderer) meta(o domain.Order) {
	pdf := r.pdf
	rows := [][2]string{
		{"Invoice", o.ID},
		{"Date", o.CreatedAt.UTC().Format("02 Jan 2006")},
		{"Status", string(o.Status)},
	}
	for _, row := range rows {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(30, lineH, row[0], "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		pdf.CellFormat(0, lineH, r.tr(row[1]), "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)
}

func (r renderer) address(o domain.Order) {
	pdf := r.pdf
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(0, lineH, "Bill to", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)

	var lines []string
	if o.CustomerName != "" {
		lines = append(lines, o.CustomerName)
	}
	if o.CustomerEmail != "" {
		lines = append(lines, o.CustomerEmail)
	}
	a := o.ShippingAddress
	for _, l := range []string{a.Line1, strings.TrimSpace(a.PostalCode + " " + a.City), a.Country} {
		if l != "" {
			lines = append(lines, l)
		}
	}
	if len(lines) == 0 {
		lines = append(lines, "Guest")
	}
	for _, l := range lines {
		pdf.CellFormat(0, 5, r.tr(l), "", 1, "L", false, 0, "")
	}
	pdf.Ln(6)
}

var columns = []struct {
	title string
	width float64
	align string
}{
	{"Item", 95, "L"},
	{"Qty", 20, "C"},
	{"Unit price", 32.5, "R"},
	{"Total", 32.5, "R"},
}

func (r renderer) items(items []domain.CartItem) {
	pdf := r.pdf
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(243, 244, 246)
	for _, c := range columns {
		pdf.CellFormat(c.width, 8, c.title, "B", 0, c.align, true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 10)
	for _, it := range items {
		name := it.Name
		if label := it.SelectionLabel(); label != "" {
			name += " (" + label + ")"
		}
		cells := []string{
			r.tr(name),
			strconv.Itoa(it.Quantity),
			r.money(it.Price),
			r.money(it.LineTotal()),
		}
		for i, c := range columns {
			pdf.CellFormat(c.width, 7, cells[i], "B", 0, c.align, false, 0, "")
		}
		pdf.Ln(-1)
	}
	pdf.Ln(4)
}

func (r renderer) totals(o domain.Order) {
	pdf := r.pdf
	labelW := columns[0].width + columns[1].width + columns[2].width
	rows := []struct {
		label string
		value decimal.Decimal
		bold  bool
	}{
		{"Subtotal", o.Subtotal, false},
		{"Tax", o.Tax, false},
		{"Shipping", o.Shipping, false},
		{"Total", o.Total, true},
	}
	for _, row := range rows {
		style := ""
		if row.bold {
			style = "B"
		}
		pdf.SetFont("Helvetica", style, 10)
		pdf.CellFormat(labelW, 7, row.label, "", 0, "R", false, 0, "")
		pdf.CellFormat(columns[3].width, 7, r.money(row.value), "", 1, "R", false, 0, "")
	}
}

func (r renderer) footer() {
	pdf := r.pdf
	pdf.SetY(-18)
	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(107, 114, 128)
	var parts []string
	for _, p := range []string{r.settings.ContactEmail, r.settings.ContactPhone, r.settings.Address} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) > 0 {
		pdf.CellFormat(0, 5, r.tr(strings.Join(parts, "  |  ")), "", 1, "C", false, 0, "")
	}
	pdf.CellFormat(0, 5, fmt.Sprintf("Page %d", pdf.PageNo()), "", 0, "C", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
}

// hexColor parses "#rrggbb", returning the fallback on anything else.
func hexColor(s string, r, g, b int) (int, int, int) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) != 6 {
		return r, g, b
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return r, g, b
	}
	return int(v >> 16 & 0xff), int(v >> 8 & 0xff), int(v & 0xff)
}
