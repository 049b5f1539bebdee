package pdf

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"

	"github.com/Apurer/bakery-ledger/internal/domains/summary/domain"
	"github.com/Apurer/bakery-ledger/internal/domains/summary/ports"
)

var _ ports.ReportExporter = (*Exporter)(nil)

const (
	defaultBakeryName = "Mahajana Bakery"
	defaultCurrency   = "Rs."
	generatedLayout   = "2006-01-02 15:04:05"

	leftMargin  = 20.0
	lineHeight  = 8.0
	notesWidth  = 170.0
	pageBottom  = 20.0
	titleSize   = 20.0
	headingSize = 14.0
	bodySize    = 11.0
)

// LineKind controls how a report line is typeset.
type LineKind int

const (
	LineTitle LineKind = iota
	LineHeading
	LineBody
	LineParagraph
)

// Line is one typeset row of the report.
type Line struct {
	Kind LineKind
	Text string
}

// Exporter renders daily reports as PDF documents.
type Exporter struct {
	bakeryName string
	currency   string
	compress   bool
}

type Option func(*Exporter)

func WithBakeryName(name string) Option {
	return func(e *Exporter) {
		if strings.TrimSpace(name) != "" {
			e.bakeryName = strings.TrimSpace(name)
		}
	}
}

func WithCurrency(label string) Option {
	return func(e *Exporter) {
		if strings.TrimSpace(label) != "" {
			e.currency = strings.TrimSpace(label)
		}
	}
}

// WithCompression toggles stream compression. Uncompressed output is easier to inspect.
func WithCompression(enabled bool) Option {
	return func(e *Exporter) {
		e.compress = enabled
	}
}

func NewExporter(opts ...Option) *Exporter {
	e := &Exporter{bakeryName: defaultBakeryName, currency: defaultCurrency, compress: true}
	for _, opt := range opts {
		if opt != nil {
			opt(e)
		}
	}
	return e
}

func (e *Exporter) ContentType() string {
	return "application/pdf"
}

func (e *Exporter) FileName(date string) string {
	slug := strings.ToLower(strings.Join(strings.Fields(e.bakeryName), "_"))
	return fmt.Sprintf("%s_summary_%s.pdf", slug, date)
}

// Lines lays the report out in its fixed section order.
func (e *Exporter) Lines(report domain.Report) []Line {
	cash := report.Cash
	bakery := report.Stats.Bakery
	bev := report.Stats.Beverage
	grand := report.Stats.Grand

	status := "Unbalanced"
	if cash.IsBalanced {
		status = "Balanced"
	}

	lines := []Line{
		{LineTitle, e.bakeryName + " - Daily Summary"},
		{LineBody, "Date: " + report.Date},
		{LineBody, "Cashier: " + report.Ledger.Cashier()},
		{LineBody, "Generated: " + report.GeneratedAt.Format(generatedLayout)},

		{LineHeading, "Cash Balance Summary"},
		{LineBody, "Initial Cash: " + e.money(cash.Initial)},
		{LineBody, "Total Sales: " + e.money(cash.Sales)},
		{LineBody, "Cash Out: " + e.money(cash.CashOut)},
		{LineBody, "Expected Final: " + e.money(cash.Expected)},
		{LineBody, "Actual Final: " + e.money(cash.Final)},
		{LineBody, fmt.Sprintf("Difference: %s (%s)", e.money(cash.Difference), status)},

		{LineHeading, "Bakery Items Summary"},
		{LineBody, fmt.Sprintf("Total Categories: %d", bakery.Categories)},
		{LineBody, fmt.Sprintf("Total Items: %d", bakery.TotalItems)},
		{LineBody, fmt.Sprintf("Sold Items: %d", bakery.SoldItems)},
		{LineBody, fmt.Sprintf("Remaining Items: %d", bakery.RemainingItems)},
		{LineBody, "Total Value: " + e.money(bakery.TotalValue)},
		{LineBody, "Sold Value: " + e.money(bakery.SoldValue)},
		{LineBody, "Remaining Value: " + e.money(bakery.RemainingValue)},

		{LineHeading, "Beverage Summary"},
		{LineBody, fmt.Sprintf("Total Types: %d", bev.Types)},
		{LineBody, fmt.Sprintf("Total Cups: %d", bev.TotalCups)},
		{LineBody, fmt.Sprintf("Sold Cups: %d", bev.SoldCups)},
		{LineBody, fmt.Sprintf("Remaining Cups: %d", bev.RemainingCups)},
		{LineBody, "Total Value: " + e.money(bev.TotalValue)},
		{LineBody, "Sold Value: " + e.money(bev.SoldValue)},
		{LineBody, "Remaining Value: " + e.money(bev.RemainingValue)},

		{LineHeading, "Grand Total Summary"},
		{LineBody, "Combined Total Value: " + e.money(grand.TotalValue)},
		{LineBody, "Combined Sold Value: " + e.money(grand.SoldValue)},
		{LineBody, "Combined Remaining Value: " + e.money(grand.RemainingValue)},
	}
	if report.Ledger.HasNotes() {
		lines = append(lines,
			Line{LineHeading, "Notes"},
			Line{LineParagraph, strings.TrimSpace(report.Ledger.Notes)},
		)
	}
	return lines
}

// Export writes the report to w.
func (e *Exporter) Export(ctx context.Context, report domain.Report, w io.Writer) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	doc, err := e.render(report)
	if err != nil {
		return err
	}
	if err := doc.Output(w); err != nil {
		return fmt.Errorf("write summary pdf: %w", err)
	}
	return nil
}

func (e *Exporter) render(report domain.Report) (*fpdf.Fpdf, error) {
	doc := fpdf.New("P", "mm", "A4", "")
	doc.SetCompression(e.compress)
	doc.SetTitle(e.bakeryName+" - Daily Summary", true)
	doc.SetCreator(e.bakeryName, true)
	if !report.GeneratedAt.IsZero() {
		doc.SetCreationDate(report.GeneratedAt)
	}
	doc.SetMargins(leftMargin, pageBottom, leftMargin)
	doc.SetAutoPageBreak(true, pageBottom)
	doc.AddPage()

	tr := doc.UnicodeTranslatorFromDescriptor("")
	for _, line := range e.Lines(report) {
		switch line.Kind {
		case LineTitle:
			doc.SetFont("Helvetica", "B", titleSize)
			doc.CellFormat(0, lineHeight+4, tr(line.Text), "", 1, "L", false, 0, "")
		case LineHeading:
			doc.Ln(lineHeight / 2)
			doc.SetFont("Helvetica", "B", headingSize)
			doc.CellFormat(0, lineHeight, tr(line.Text), "", 1, "L", false, 0, "")
		case LineBody:
			doc.SetFont("Helvetica", "", bodySize)
			doc.CellFormat(0, lineHeight-1, tr(line.Text), "", 1, "L", false, 0, "")
		case LineParagraph:
			doc.SetFont("Helvetica", "", bodySize)
			doc.MultiCell(notesWidth, lineHeight-2, tr(line.Text), "", "L", false)
		}
	}
	if err := doc.Error(); err != nil {
		return nil, fmt.Errorf("render summary pdf: %w", err)
	}
	return doc, nil
}

func (e *Exporter) money(d decimal.Decimal) string {
	return e.currency + " " + d.StringFixed(2)
}
