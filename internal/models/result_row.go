package models

// ResultRow is one grouping returned by a filters endpoint
type ResultRow struct {
	Label  string        `json:"label"`
	Values []MetricValue `json:"values"`
}

// MetricValue is one labelled metric inside a result row
type MetricValue struct {
	Label string `json:"label"`
	Value Scalar `json:"value"`
}

// ValueLabels returns the metric labels of the row in order
func (r ResultRow) ValueLabels() []string {
	labels := make([]string, len(r.Values))
	for i, v := range r.Values {
		labels[i] = v.Label
	}
	return labels
}
