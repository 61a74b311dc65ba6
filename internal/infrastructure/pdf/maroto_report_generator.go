// Package pdf implementa los reportes imprimibles del ledger con Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: título del reporte  │  generado: fecha + hora       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Fecha | Entradas | Salidas   (o Día | Fecha | Ent.)  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES                                                     │
//	└─────────────────────────────────────────────────────────────┘
//
// La fuente por defecto sólo cubre Latin-1: el encabezado mensual usa el prefijo
// numérico (1405/07) y no el nombre del mes.
package pdf

import (
	"fmt"
	"strconv"

	maroto "github.com/johnfercher/maroto/v2"
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

	"github.com/jhoicas/invoice-tracker/internal/application/dto"
	"github.com/jhoicas/invoice-tracker/internal/application/ports"
	"github.com/jhoicas/invoice-tracker/pkg/calendar"
)

var _ ports.ReportPDFGenerator = (*MarotoReportGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorHeader  = &props.Color{Red: 225, Green: 234, Blue: 242}
)

// MarotoReportGenerator implementa ports.ReportPDFGenerator usando Maroto v2.
type MarotoReportGenerator struct {
	author string
}

// NewMarotoReportGenerator construye el generador; author va en los metadatos del PDF.
func NewMarotoReportGenerator(author string) *MarotoReportGenerator {
	return &MarotoReportGenerator{author: author}
}

// GenerateWeeklyReport una fila por día de la ventana semanal, hoy primero.
func (g *MarotoReportGenerator) GenerateWeeklyReport(view dto.WeekViewDTO, at calendar.Stamp) ([]byte, error) {
	m := g.newDocument("Reporte semanal de facturas")

	m.AddRows(headerRow("REPORTE SEMANAL", "Entradas y salidas por fecha de entrada", at))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(tableHeaderRow([]string{"Fecha", "Día", "Entradas", "Salidas"}, []int{4, 2, 3, 3}))
	for _, d := range view.Days {
		m.AddRows(tableRow([]string{d.Date, dayLabel(d.Label), strconv.Itoa(d.EnterCount), strconv.Itoa(d.ExitCount)}, []int{4, 2, 3, 3}))
	}
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow([][2]string{
		{"Total entradas:", strconv.Itoa(view.TotalEntered)},
		{"Total salidas:", strconv.Itoa(view.TotalExited)},
		{"Tasa de salida:", view.ExitRate.StringFixed(2) + "%"},
	}))

	return generate(m)
}

// GenerateMonthlyReport grilla del mes: sólo los días con entradas, más el total.
func (g *MarotoReportGenerator) GenerateMonthlyReport(view dto.MonthViewDTO, at calendar.Stamp) ([]byte, error) {
	m := g.newDocument("Reporte mensual de facturas")

	m.AddRows(headerRow("REPORTE MENSUAL", "Mes "+view.Prefix, at))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(tableHeaderRow([]string{"Día", "Fecha", "Entradas"}, []int{2, 6, 4}))
	for _, d := range view.Days {
		if d.Count == 0 {
			continue
		}
		m.AddRows(tableRow([]string{strconv.Itoa(d.Day), d.Date, strconv.Itoa(d.Count)}, []int{2, 6, 4}))
	}
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow([][2]string{{"Total del mes:", strconv.Itoa(view.Total)}}))

	return generate(m)
}

func (g *MarotoReportGenerator) newDocument(title string) core.Maroto {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(title, true).
		WithAuthor(g.author, true).
		Build()
	return maroto.New(cfg)
}

func generate(m core.Maroto) ([]byte, error) {
	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(title, subtitle string, at calendar.Stamp) core.Row {
	return row.New(16).Add(
		col.New(8).Add(
			text.New(title, props.Text{Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1}),
			text.New(subtitle, props.Text{Size: 9, Top: 9, Color: colorGray}),
		),
		col.New(4).Add(
			text.New("Generado", props.Text{Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1}),
			text.New(at.Date+" "+at.Time, props.Text{Size: 9, Align: align.Right, Top: 7}),
		),
	)
}

func tableHeaderRow(labels []string, sizes []int) core.Row {
	cols := make([]core.Col, 0, len(labels))
	for i, l := range labels {
		cols = append(cols, col.New(sizes[i]).Add(text.New(l, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: align.Center, Top: 2,
		})))
	}
	return row.New(8).Add(cols...).WithStyle(&props.Cell{BackgroundColor: colorHeader})
}

func tableRow(values []string, sizes []int) core.Row {
	cols := make([]core.Col, 0, len(values))
	for i, v := range values {
		cols = append(cols, col.New(sizes[i]).Add(text.New(v, props.Text{
			Size: 8, Align: align.Center, Top: 1,
		})))
	}
	return row.New(6).Add(cols...)
}

func totalsRow(pairs [][2]string) core.Row {
	labels := make([]core.Component, 0, len(pairs))
	values := make([]core.Component, 0, len(pairs))
	for i, p := range pairs {
		top := float64(i * 6)
		labels = append(labels, text.New(p[0], props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2, Top: top}))
		values = append(values, text.New(p[1], props.Text{Size: 9, Align: align.Right, Right: 1, Top: top}))
	}
	return row.New(float64(6*len(pairs)+2)).Add(
		col.New(6),
		col.New(3).Add(labels...),
		col.New(3).Add(values...),
	)
}

func dayLabel(label string) string {
	switch label {
	case dto.DayLabelToday:
		return "Hoy"
	case dto.DayLabelYesterday:
		return "Ayer"
	default:
		return ""
	}
}
