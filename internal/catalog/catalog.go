package catalog

import (
	"fmt"

	"github.com/jengzang/indicators-dashboard-go/internal/models"
)

// NotFoundError is returned when no indicator matches a key.
// Callers treat it as "no indicator selected".
type NotFoundError struct {
	Key string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("indicator %q not found", e.Key)
}

// Catalog is the immutable set of indicator definitions
type Catalog struct {
	defs  []models.Indicator
	byKey map[string]int
}

// New validates the definitions and builds a catalog
func New(defs []models.Indicator) (*Catalog, error) {
	c := &Catalog{
		defs:  make([]models.Indicator, 0, len(defs)),
		byKey: make(map[string]int, len(defs)),
	}

	for _, d := range defs {
		if err := d.Validate(); err != nil {
			return nil, fmt.Errorf("invalid catalog entry %s: %w", d.ID, err)
		}
		if _, dup := c.byKey[d.Key]; dup {
			return nil, fmt.Errorf("duplicate indicator key %q", d.Key)
		}
		d.MetricKeys = append([]string(nil), d.MetricKeys...)
		c.byKey[d.Key] = len(c.defs)
		c.defs = append(c.defs, d)
	}

	return c, nil
}

// Lookup returns the indicator registered under key
func (c *Catalog) Lookup(key string) (models.Indicator, error) {
	i, ok := c.byKey[key]
	if !ok {
		return models.Indicator{}, &NotFoundError{Key: key}
	}
	return clone(c.defs[i]), nil
}

// List returns all indicators in catalog order
func (c *Catalog) List() []models.Indicator {
	out := make([]models.Indicator, len(c.defs))
	for i, d := range c.defs {
		out[i] = clone(d)
	}
	return out
}

// Len returns the number of indicators
func (c *Catalog) Len() int {
	return len(c.defs)
}

func clone(d models.Indicator) models.Indicator {
	d.MetricKeys = append([]string(nil), d.MetricKeys...)
	return d
}

var metricLabels = map[string]string{
	"t_inscritos":              "Inscritos",
	"sum_t_inscritos":          "Total inscritos",
	"t_nuevos":                 "Nuevos inscritos",
	"titulados":                "Titulados",
	"egresados":                "Egresados",
	"reprobados_con_0_percent": "Deserción (%)",
	"sin_nota_percent":         "Sin nota (%)",
	"aprobados_percent":        "Aprobados (%)",
	"reprobados_percent":       "Reprobados (%)",
	"moras_percent":            "Mora (%)",
	"pps":                      "PPS",
	"ppac":                     "PPAC",
	"ppa1":                     "PPAC sin cero",
}

// MetricLabel returns the legend label for a metric key,
// falling back to the key itself.
func MetricLabel(key string) string {
	if l, ok := metricLabels[key]; ok {
		return l
	}
	return key
}
