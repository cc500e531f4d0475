package render

import (
	"github.com/jengzang/indicators-dashboard-go/internal/catalog"
	"github.com/jengzang/indicators-dashboard-go/internal/models"
	"github.com/jengzang/indicators-dashboard-go/internal/reshape"
)

// Chart kinds understood by the front-end chart components
const (
	ChartBar        = "bar"
	ChartGroupedBar = "grouped-bar"
)

var palette = []string{
	"#2563EB", "#10B981", "#F59E0B", "#EF4444", "#8B5CF6",
	"#06B6D4", "#EC4899", "#84CC16", "#F97316", "#6366F1",
}

// SeriesStyle describes how one metric is drawn
type SeriesStyle struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Color string `json:"color"`
}

// ChartProps are handed to the bar chart component as-is
type ChartProps struct {
	Kind     string           `json:"kind"`
	Title    string           `json:"title"`
	Layout   string           `json:"layout"`
	LabelKey string           `json:"labelKey"`
	DataKeys []string         `json:"dataKeys"`
	Series   []SeriesStyle    `json:"series"`
	Data     []reshape.Record `json:"data"`
}

// Column is a table column definition
type Column struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Align string `json:"align"`
}

// TableProps are handed to the data table component as-is
type TableProps struct {
	Title   string           `json:"title"`
	Columns []Column         `json:"columns"`
	Rows    []reshape.Record `json:"rows"`
	Totals  reshape.Record   `json:"totals"`
}

// View bundles the chart and table of one rendered indicator
type View struct {
	Chart ChartProps `json:"chart"`
	Table TableProps `json:"table"`
}

// Build maps reshaped data onto presentation props
func Build(def models.Indicator, points []reshape.Record, table reshape.Table) View {
	kind := ChartBar
	layout := "vertical"
	if def.IsMultiSeries() {
		kind = ChartGroupedBar
		layout = "horizontal"
	}

	dataKeys := seriesKeys(def, points)
	series := make([]SeriesStyle, len(dataKeys))
	for i, k := range dataKeys {
		series[i] = SeriesStyle{
			Key:   k,
			Label: catalog.MetricLabel(k),
			Color: palette[i%len(palette)],
		}
	}

	columns := make([]Column, len(table.Headers))
	for i, h := range table.Headers {
		if i == 0 {
			columns[i] = Column{Key: h, Label: firstColumnLabel(def.Endpoint), Align: "left"}
			continue
		}
		columns[i] = Column{Key: h, Label: catalog.MetricLabel(h), Align: "right"}
	}

	return View{
		Chart: ChartProps{
			Kind:     kind,
			Title:    def.DisplayLabel,
			Layout:   layout,
			LabelKey: reshape.LabelKey,
			DataKeys: dataKeys,
			Series:   series,
			Data:     nonNil(points),
		},
		Table: TableProps{
			Title:   def.DisplayLabel,
			Columns: columns,
			Rows:    nonNil(table.Body),
			Totals:  table.Totals,
		},
	}
}

// seriesKeys prefers the labels the backend actually returned and falls back
// to the requested metric keys for an empty result.
func seriesKeys(def models.Indicator, points []reshape.Record) []string {
	if len(points) > 0 && len(points[0].Fields) > 0 {
		return points[0].Keys()
	}
	if def.IsMultiSeries() {
		return append([]string(nil), def.MetricKeys...)
	}
	return []string{def.MetricKeys[0]}
}

func firstColumnLabel(endpoint string) string {
	switch endpoint {
	case models.EndpointLocalities:
		return "Localidad"
	case models.EndpointCareers:
		return "Carrera"
	case models.EndpointFaculties:
		return "Facultad"
	case models.EndpointModes:
		return "Modalidad"
	case models.EndpointSemesters:
		return "Periodo"
	}
	return reshape.RowLabelHeader
}

func nonNil(r []reshape.Record) []reshape.Record {
	if r == nil {
		return []reshape.Record{}
	}
	return r
}
