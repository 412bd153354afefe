// Package pdf renders shipping quote documents using maroto/v2. The document
// carries the lot lines, shipment details, pricing totals and a QR code
// pointing at the quote reference.
package pdf

import (
	"fmt"
	"strings"
	"time"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/image"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/border"
	"github.com/johnfercher/maroto/v2/pkg/consts/extension"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/skip2/go-qrcode"
)

var (
	colorPrimary   = &props.Color{Red: 17, Green: 24, Blue: 39}    // near-black
	colorSecondary = &props.Color{Red: 107, Green: 114, Blue: 128} // gray-500
	colorAccent    = &props.Color{Red: 146, Green: 64, Blue: 14}   // amber-800
	colorTableHead = &props.Color{Red: 245, Green: 245, Blue: 244} // stone-100
	colorTableAlt  = &props.Color{Red: 250, Green: 250, Blue: 249} // stone-50
	colorBorder    = &props.Color{Red: 231, Green: 229, Blue: 228} // stone-200
	colorWarn      = &props.Color{Red: 180, Green: 83, Blue: 9}    // amber-700
)

// Line is one priced lot in the document.
type Line struct {
	LotID       int
	Description string
	WeightClass string
	Material    string
	AmountCents int64
}

// QuoteDocument holds everything the renderer needs. It is a pure data
// carrier; the quotes service maps its result into it.
type QuoteDocument struct {
	QuoteNumber   string
	CreatedAt     time.Time
	ValidUntil    time.Time
	DaysRemaining int
	SaleNumbers   []string

	Lines          []Line
	LookupFailures []string

	Packing    string
	Delivery   string
	Address    string
	DistanceKm float64

	SubtotalCents  int64
	MarginCents    int64
	InsuranceCents int64
	TotalCents     int64

	CurrencyCode        string
	CurrencySymbol      string
	ConvertedTotalCents int64

	VerifyURL string
}

// Generator renders quote documents.
type Generator struct {
	companyName string
}

// NewGenerator creates a renderer branded with the given company name.
func NewGenerator(companyName string) *Generator {
	if companyName == "" {
		companyName = "ShipQuote Fine Art Logistics"
	}
	return &Generator{companyName: companyName}
}

// Render produces the PDF bytes for a quote document.
func (g *Generator) Render(doc QuoteDocument) ([]byte, error) {
	cfg := config.NewBuilder().
		WithLeftMargin(15).
		WithTopMargin(12).
		WithRightMargin(15).
		Build()

	m := maroto.New(cfg)

	if err := m.RegisterFooter(g.buildFooter(doc)); err != nil {
		return nil, fmt.Errorf("register footer: %w", err)
	}

	m.AddRows(g.buildHeader(doc)...)
	m.AddRows(row.New(1).WithStyle(&props.Cell{
		BorderType:  border.Bottom,
		BorderColor: colorBorder,
	}))
	m.AddRows(row.New(6))

	m.AddRows(buildMetaBlock(doc)...)
	m.AddRows(row.New(6))

	m.AddRows(buildLotsTable(doc)...)
	m.AddRows(row.New(4))

	if len(doc.LookupFailures) > 0 {
		m.AddRows(buildFailuresBlock(doc.LookupFailures)...)
		m.AddRows(row.New(4))
	}

	m.AddRows(buildShipmentBlock(doc)...)
	m.AddRows(row.New(4))

	m.AddRows(buildTotalsBlock(doc)...)

	if doc.VerifyURL != "" {
		qrRows, err := buildVerifyBlock(doc.VerifyURL)
		if err != nil {
			return nil, err
		}
		m.AddRows(row.New(8))
		m.AddRows(qrRows...)
	}

	generated, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("generate PDF: %w", err)
	}

	return generated.GetBytes(), nil
}

func (g *Generator) buildHeader(doc QuoteDocument) []core.Row {
	companyCol := col.New(5).Add(
		text.New(g.companyName, props.Text{
			Size:  14,
			Style: fontstyle.Bold,
			Color: colorPrimary,
			Top:   4,
		}),
	)

	titleCol := col.New(7).Add(
		text.New("SHIPPING QUOTE", props.Text{
			Size:  22,
			Style: fontstyle.Bold,
			Align: align.Right,
			Color: colorAccent,
		}),
		text.New(doc.QuoteNumber, props.Text{
			Size:  10,
			Align: align.Right,
			Color: colorSecondary,
			Top:   12,
		}),
	)

	return []core.Row{row.New(20).Add(companyCol, titleCol)}
}

func buildMetaBlock(doc QuoteDocument) []core.Row {
	labelStyle := props.Text{Size: 7, Style: fontstyle.Bold, Color: colorAccent}
	valueStyle := props.Text{Size: 9, Color: colorPrimary}

	validity := doc.ValidUntil.Format("02-01-2006")
	countdown := fmt.Sprintf("%d days remaining", doc.DaysRemaining)
	if doc.DaysRemaining == 0 {
		countdown = "expires today"
	}

	rows := []core.Row{
		row.New(5).Add(
			col.New(4).Add(text.New("DATE", labelStyle)),
			col.New(4).Add(text.New("VALID UNTIL", labelStyle)),
			col.New(4).Add(text.New("SALE", labelStyle)),
		),
		row.New(5).Add(
			col.New(4).Add(text.New(doc.CreatedAt.Format("02-01-2006"), valueStyle)),
			col.New(4).Add(text.New(validity+"  ("+countdown+")", valueStyle)),
			col.New(4).Add(text.New(strings.Join(doc.SaleNumbers, ", "), valueStyle)),
		),
	}
	return rows
}

func buildLotsTable(doc QuoteDocument) []core.Row {
	rows := []core.Row{
		row.New(7).Add(
			col.New(12).Add(text.New("LOTS", props.Text{
				Size:  8,
				Style: fontstyle.Bold,
				Color: colorAccent,
			})),
		),
	}

	headerStyle := props.Text{Size: 7.5, Style: fontstyle.Bold, Color: colorPrimary, Top: 1.5}
	headerStyleRight := props.Text{Size: 7.5, Style: fontstyle.Bold, Color: colorPrimary, Align: align.Right, Top: 1.5}

	rows = append(rows, row.New(7).Add(
		col.New(1).Add(text.New("Lot", headerStyle)),
		col.New(6).Add(text.New("Description", headerStyle)),
		col.New(1).Add(text.New("Weight", headerStyle)),
		col.New(2).Add(text.New("Material", headerStyle)),
		col.New(2).Add(text.New("Amount", headerStyleRight)),
	).WithStyle(&props.Cell{
		BackgroundColor: colorTableHead,
		BorderType:      border.Bottom,
		BorderColor:     colorBorder,
	}))

	for i, line := range doc.Lines {
		normalStyle := props.Text{Size: 8, Color: colorPrimary, Top: 1}
		rightStyle := props.Text{Size: 8, Color: colorPrimary, Align: align.Right, Top: 1}

		r := row.New(7).Add(
			col.New(1).Add(text.New(fmt.Sprintf("%d", line.LotID), normalStyle)),
			col.New(6).Add(text.New(firstLine(line.Description), normalStyle)),
			col.New(1).Add(text.New(line.WeightClass, normalStyle)),
			col.New(2).Add(text.New(line.Material, normalStyle)),
			col.New(2).Add(text.New(formatAmount(doc.CurrencySymbol, line.AmountCents), rightStyle)),
		)
		if i%2 == 0 {
			r.WithStyle(&props.Cell{BackgroundColor: colorTableAlt})
		}
		rows = append(rows, r)
	}

	return rows
}

func buildFailuresBlock(failures []string) []core.Row {
	rows := []core.Row{
		row.New(5).Add(
			col.New(12).Add(text.New("NOT INCLUDED", props.Text{
				Size:  8,
				Style: fontstyle.Bold,
				Color: colorWarn,
			})),
		),
	}
	for _, failure := range failures {
		rows = append(rows, row.New(4).Add(
			col.New(12).Add(text.New(failure, props.Text{Size: 7.5, Color: colorWarn})),
		))
	}
	return rows
}

func buildShipmentBlock(doc QuoteDocument) []core.Row {
	labelStyle := props.Text{Size: 7, Style: fontstyle.Bold, Color: colorAccent}
	valueStyle := props.Text{Size: 8.5, Color: colorPrimary}

	destination := doc.Address
	if destination == "" {
		destination = "(no destination address)"
	}

	return []core.Row{
		row.New(5).Add(
			col.New(12).Add(text.New("SHIPMENT", labelStyle)),
		),
		row.New(5).Add(
			col.New(6).Add(text.New("Destination: "+destination, valueStyle)),
			col.New(6).Add(text.New(fmt.Sprintf("Distance: %.0f km", doc.DistanceKm), props.Text{
				Size: 8.5, Color: colorPrimary, Align: align.Right,
			})),
		),
		row.New(5).Add(
			col.New(6).Add(text.New("Packing: "+doc.Packing, valueStyle)),
			col.New(6).Add(text.New("Delivery: "+doc.Delivery, props.Text{
				Size: 8.5, Color: colorPrimary, Align: align.Right,
			})),
		),
	}
}

func buildTotalsBlock(doc QuoteDocument) []core.Row {
	rows := []core.Row{
		row.New(1).WithStyle(&props.Cell{
			BorderType:  border.Bottom,
			BorderColor: colorBorder,
		}),
		row.New(3),
	}

	labelStyle := props.Text{Size: 9, Color: colorSecondary, Align: align.Right}
	valueStyle := props.Text{Size: 9, Color: colorPrimary, Align: align.Right}

	rows = append(rows, row.New(6).Add(
		col.New(9).Add(text.New("Subtotal", labelStyle)),
		col.New(3).Add(text.New(formatAmount("€", doc.SubtotalCents), valueStyle)),
	))

	if doc.MarginCents > 0 {
		rows = append(rows, row.New(6).Add(
			col.New(9).Add(text.New("Handling margin", labelStyle)),
			col.New(3).Add(text.New(formatAmount("€", doc.MarginCents), valueStyle)),
		))
	}
	if doc.InsuranceCents > 0 {
		rows = append(rows, row.New(6).Add(
			col.New(9).Add(text.New("Insurance", labelStyle)),
			col.New(3).Add(text.New(formatAmount("€", doc.InsuranceCents), valueStyle)),
		))
	}

	rows = append(rows, row.New(2))
	rows = append(rows, row.New(10).Add(
		col.New(9).Add(text.New("TOTAL", props.Text{
			Size:  12,
			Style: fontstyle.Bold,
			Color: colorPrimary,
			Align: align.Right,
			Top:   2,
		})),
		col.New(3).Add(text.New(formatAmount("€", doc.TotalCents), props.Text{
			Size:  12,
			Style: fontstyle.Bold,
			Color: colorPrimary,
			Align: align.Right,
			Top:   2,
		})),
	).WithStyle(&props.Cell{
		BackgroundColor: colorTableHead,
		BorderType:      border.Top | border.Bottom,
		BorderColor:     colorBorder,
	}))

	if doc.CurrencyCode != "" && doc.CurrencyCode != "EUR" {
		rows = append(rows, row.New(6).Add(
			col.New(9).Add(text.New("Total in "+doc.CurrencyCode, labelStyle)),
			col.New(3).Add(text.New(formatAmount(doc.CurrencySymbol, doc.ConvertedTotalCents), valueStyle)),
		))
	}

	return rows
}

func buildVerifyBlock(verifyURL string) ([]core.Row, error) {
	png, err := qrcode.Encode(verifyURL, qrcode.Medium, 256)
	if err != nil {
		return nil, fmt.Errorf("encode verify QR: %w", err)
	}

	return []core.Row{
		row.New(25).Add(
			col.New(3).Add(
				image.NewFromBytes(png, extension.Png, props.Rect{
					Percent: 90,
					Center:  false,
				}),
			),
			col.New(9).Add(text.New("Scan to view this quote online.", props.Text{
				Size:  7.5,
				Color: colorSecondary,
				Top:   10,
			})),
		),
	}, nil
}

func (g *Generator) buildFooter(doc QuoteDocument) core.Row {
	footerText := g.companyName + "  ·  Quote " + doc.QuoteNumber +
		"  ·  Valid until " + doc.ValidUntil.Format("02-01-2006")

	return row.New(10).Add(
		col.New(12).Add(
			text.New(footerText, props.Text{
				Size:  6.5,
				Color: colorSecondary,
				Align: align.Center,
				Top:   4,
			}),
		),
	).WithStyle(&props.Cell{
		BorderType:  border.Top,
		BorderColor: colorBorder,
	})
}

func formatAmount(symbol string, cents int64) string {
	if symbol == "" {
		symbol = "€"
	}
	return fmt.Sprintf("%s %.2f", symbol, float64(cents)/100.0)
}

func firstLine(text string) string {
	if idx := strings.IndexByte(text, '\n'); idx >= 0 {
		return text[:idx]
	}
	return text
}
