// Package pdf implementa la generación de la guía de envío en PDF.
//
// Layout de la página A5:
//
//	┌─────────────────────────────────────────────┐
//	│  HEADER: N° de seguimiento + código de barra │
//	│  ───────────────────────────────────────────│
//	│  REMITENTE: nombre / dirección / email       │
//	│  DESTINATARIO: nombre / dirección / email    │
//	│  ───────────────────────────────────────────│
//	│  DETALLE: descripción, peso, dimensiones,    │
//	│           valor declarado, estado            │
//	└─────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/tu-usuario/rastreo-envios/internal/domain/entity"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// printer formatea números con separador de miles para el valor declarado.
var printer = message.NewPrinter(language.English)

// LabelGenerator genera la guía de envío usando Maroto v2.
type LabelGenerator struct{}

// NewLabelGenerator construye el generador.
func NewLabelGenerator() *LabelGenerator { return &LabelGenerator{} }

// GenerateLabel genera el PDF de la guía y devuelve sus bytes.
func (g *LabelGenerator) GenerateLabel(_ context.Context, pkg *entity.Package) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A5).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Guía de envío "+pkg.TrackingNumber, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(pkg))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(partyRow("REMITENTE", pkg.Sender))
	m.AddRows(partyRow("DESTINATARIO", pkg.Recipient))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(detailRows(pkg)...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar guía: %w", err)
	}
	return doc.GetBytes(), nil
}

// headerRow: número de seguimiento + código de barras.
func headerRow(pkg *entity.Package) core.Row {
	return row.New(22).Add(
		col.New(7).Add(
			text.New("GUÍA DE ENVÍO", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(pkg.TrackingNumber, props.Text{
				Style: fontstyle.Bold, Size: 14, Top: 6,
			}),
			text.New("Fecha: "+pkg.CreatedAt.Format("02/01/2006"), props.Text{
				Size: 8, Top: 15, Color: colorGray,
			}),
		),
		col.New(5).Add(
			code.NewBar(pkg.TrackingNumber, props.Barcode{
				Top: 2, Percent: 90, Center: true,
			}),
		),
	)
}

// partyRow: datos de remitente o destinatario.
func partyRow(title string, p entity.Party) core.Row {
	contact := p.Address
	if p.Email != "" {
		contact += "   |   " + p.Email
	}
	return row.New(12).Add(
		col.New(12).Add(
			text.New(title+": "+p.FullName, props.Text{
				Style: fontstyle.Bold, Size: 9, Color: colorPrimary, Top: 1,
			}),
			text.New(contact, props.Text{Size: 8, Top: 7, Color: colorGray}),
		),
	)
}

// detailRows: descripción, peso, dimensiones, valor declarado y estado.
func detailRows(pkg *entity.Package) []core.Row {
	d := pkg.Details
	dims := fmt.Sprintf("%.0f x %.0f x %.0f cm", d.Dimensions.Length, d.Dimensions.Width, d.Dimensions.Height)
	value := printer.Sprintf("$%.2f", d.Value.InexactFloat64())

	return []core.Row{
		row.New(8).Add(
			col.New(12).Add(
				text.New("Contenido: "+d.Description, props.Text{Size: 9, Top: 1}),
			),
		),
		row.New(8).Add(
			col.New(4).Add(
				text.New(fmt.Sprintf("Peso: %.2f kg", d.Weight), props.Text{Size: 8, Top: 1}),
			),
			col.New(4).Add(
				text.New("Dimensiones: "+dims, props.Text{Size: 8, Top: 1}),
			),
			col.New(4).Add(
				text.New("Valor declarado: "+value, props.Text{Size: 8, Top: 1, Align: align.Right}),
			),
		),
		row.New(8).Add(
			col.New(12).Add(
				text.New("Estado: "+pkg.Status, props.Text{
					Style: fontstyle.Bold, Size: 8, Top: 1, Color: colorGray,
				}),
			),
		),
	}
}
