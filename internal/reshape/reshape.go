// Package reshape turns indicator result rows into chart series and table rows.
// All numeric coercion of backend values happens here.
package reshape

import (
	"fmt"
	"math"
	"slices"
	"sort"
	"strconv"
	"strings"

	"github.com/jengzang/indicators-dashboard-go/internal/models"
)

const (
	// LabelKey names the label member of chart points
	LabelKey = "label"
	// RowLabelHeader is the first table header and the label member of table rows
	RowLabelHeader = "row label"
	// TotalsLabel labels the synthetic totals row
	TotalsLabel = "Total"
)

// ShapeMismatchError reports a row whose metric labels differ from the expected set,
// repeat within the row, or collide with a label column.
type ShapeMismatchError struct {
	Row    int
	Label  string
	Want   []string
	Got    []string
	Reason string
}

func (e *ShapeMismatchError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("row %d (%q) has metrics [%s]: %s",
			e.Row, e.Label, strings.Join(e.Got, ", "), e.Reason)
	}
	return fmt.Sprintf("row %d (%q) has metrics [%s], expected [%s]",
		e.Row, e.Label, strings.Join(e.Got, ", "), strings.Join(e.Want, ", "))
}

// checkLabels rejects metric labels that repeat inside the row or would
// overwrite the label member of a chart point or table row
func checkLabels(i int, row models.ResultRow) error {
	seen := make(map[string]struct{}, len(row.Values))
	for _, v := range row.Values {
		reason := ""
		switch _, dup := seen[v.Label]; {
		case dup:
			reason = fmt.Sprintf("metric %q repeats", v.Label)
		case v.Label == LabelKey || v.Label == RowLabelHeader:
			reason = fmt.Sprintf("metric %q collides with the label column", v.Label)
		}
		if reason != "" {
			return &ShapeMismatchError{Row: i, Label: row.Label, Got: row.ValueLabels(), Reason: reason}
		}
		seen[v.Label] = struct{}{}
	}
	return nil
}

// Table is the tabular form of a result set
type Table struct {
	Headers []string `json:"headers"`
	Body    []Record `json:"body"`
	Totals  Record   `json:"totals"`
}

// ToNumber parses a backend value. Anything that is not a finite number counts as 0.
func ToNumber(v models.Scalar) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(v.String()), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// ToSingleSeries emits one point per row keyed by the row's first metric,
// ordered by that metric's value, largest first. Equal values keep input order.
func ToSingleSeries(rows []models.ResultRow) ([]Record, error) {
	type item struct {
		row   models.ResultRow
		value float64
	}

	items := make([]item, len(rows))
	for i, row := range rows {
		if len(row.Values) == 0 {
			return nil, &ShapeMismatchError{Row: i, Label: row.Label, Got: []string{}, Want: []string{"<metric>"}}
		}
		if err := checkLabels(i, row); err != nil {
			return nil, err
		}
		items[i] = item{row: row, value: ToNumber(row.Values[0].Value)}
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].value > items[j].value
	})

	out := make([]Record, len(items))
	for i, it := range items {
		out[i] = Record{
			LabelKey: LabelKey,
			Label:    it.row.Label,
			Fields:   []Field{{Key: it.row.Values[0].Label, Value: it.value}},
		}
	}
	return out, nil
}

// ToMultiSeries pivots every metric of each row into one point, in input order
func ToMultiSeries(rows []models.ResultRow) ([]Record, error) {
	out := make([]Record, len(rows))
	for i, row := range rows {
		if err := checkLabels(i, row); err != nil {
			return nil, err
		}
		rec := Record{LabelKey: LabelKey, Label: row.Label, Fields: make([]Field, 0, len(row.Values))}
		for _, v := range row.Values {
			rec.Set(v.Label, ToNumber(v.Value))
		}
		out[i] = rec
	}
	return out, nil
}

// ToTable builds headers from the first row's metric labels, one body record
// per row and a trailing totals record. Rows must share the same metric labels.
func ToTable(rows []models.ResultRow) (Table, error) {
	var labels []string
	if len(rows) > 0 {
		labels = rows[0].ValueLabels()
	}
	if err := checkUniform(rows, labels); err != nil {
		return Table{}, err
	}

	t := Table{
		Headers: append([]string{RowLabelHeader}, labels...),
		Body:    make([]Record, len(rows)),
	}

	sums := make([]float64, len(labels))
	for i, row := range rows {
		rec := Record{LabelKey: RowLabelHeader, Label: row.Label, Fields: make([]Field, len(labels))}
		for j, v := range row.Values {
			n := ToNumber(v.Value)
			rec.Fields[j] = Field{Key: labels[j], Value: n}
			sums[j] += n
		}
		t.Body[i] = rec
	}

	t.Totals = Record{LabelKey: RowLabelHeader, Label: TotalsLabel, Fields: make([]Field, len(labels))}
	for j, l := range labels {
		t.Totals.Fields[j] = Field{Key: l, Value: sums[j]}
	}

	return t, nil
}

func checkUniform(rows []models.ResultRow, want []string) error {
	for i, row := range rows {
		if err := checkLabels(i, row); err != nil {
			return err
		}
		got := row.ValueLabels()
		if !slices.Equal(got, want) {
			return &ShapeMismatchError{Row: i, Label: row.Label, Want: want, Got: got}
		}
	}
	return nil
}

// CheckShape verifies that every row carries one distinct value per requested metric key
func CheckShape(rows []models.ResultRow, metricKeys []string) error {
	for i, row := range rows {
		if err := checkLabels(i, row); err != nil {
			return err
		}
		if len(row.Values) != len(metricKeys) {
			return &ShapeMismatchError{Row: i, Label: row.Label, Want: metricKeys, Got: row.ValueLabels()}
		}
	}
	return nil
}
