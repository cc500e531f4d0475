package filter

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jengzang/indicators-dashboard-go/internal/models"
)

// ErrNoIndicator is returned when a field is edited before any indicator is selected
var ErrNoIndicator = errors.New("no indicator selected")

// ErrFieldNotEditable is wrapped by FieldError when the active indicator does not expose the field
var ErrFieldNotEditable = errors.New("field not editable for this indicator")

// FieldError reports a rejected field edit
type FieldError struct {
	Field string
	Value string
	Err   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("filter %s=%q: %v", e.Field, e.Value, e.Err)
}

func (e *FieldError) Unwrap() error { return e.Err }

// State holds the filter selections of one dashboard view
type State struct {
	selected   bool
	required   models.RequiredFilters
	metricKeys []string
	period     *models.Period
	modality   string
	locality   string
	faculty    string
	revision   uint64
}

// New returns an empty filter state with no indicator selected
func New() *State {
	return &State{}
}

// SelectIndicator resets every field and takes the metric keys of def
func (s *State) SelectIndicator(def models.Indicator) {
	*s = State{
		selected:   true,
		required:   def.RequiredFilters,
		metricKeys: append([]string(nil), def.MetricKeys...),
		revision:   s.revision + 1,
	}
}

// SetField updates one filter field. The "todos" sentinel and blank values unset it.
func (s *State) SetField(name, value string) error {
	if !s.selected {
		return ErrNoIndicator
	}

	switch name {
	case models.FieldPeriod, models.FieldModality, models.FieldLocality, models.FieldFaculty:
	default:
		return &FieldError{Field: name, Value: value, Err: errors.New("unknown field")}
	}
	if !s.required.Allows(name) {
		return &FieldError{Field: name, Value: value, Err: ErrFieldNotEditable}
	}

	value = strings.TrimSpace(value)
	unset := value == "" || strings.EqualFold(value, models.AllSentinel)

	switch name {
	case models.FieldPeriod:
		if unset {
			s.period = nil
			break
		}
		p, err := ParsePeriod(value)
		if err != nil {
			return &FieldError{Field: name, Value: value, Err: err}
		}
		s.period = &p
	case models.FieldModality:
		s.modality = orEmpty(value, unset)
	case models.FieldLocality:
		s.locality = orEmpty(value, unset)
	case models.FieldFaculty:
		s.faculty = orEmpty(value, unset)
	}

	s.revision++
	return nil
}

func orEmpty(v string, unset bool) string {
	if unset {
		return ""
	}
	return v
}

// ParsePeriod splits a YYYY-T selector value into year and term
func ParsePeriod(value string) (models.Period, error) {
	year, term, ok := strings.Cut(value, "-")
	if !ok || year == "" || term == "" || strings.Contains(term, "-") {
		return models.Period{}, fmt.Errorf("period must look like YYYY-T, got %q", value)
	}
	for _, r := range year + term {
		if r < '0' || r > '9' {
			return models.Period{}, fmt.Errorf("period must be numeric, got %q", value)
		}
	}
	return models.Period{Year: year, Term: term}, nil
}

// ToQueryParameters derives the request query from the current selections.
// Only fields the indicator requires and that are set produce entries.
func (s *State) ToQueryParameters() QueryParameters {
	var q QueryParameters

	for _, k := range s.metricKeys {
		if k != "" {
			q = q.Add(models.ParamIndicatorAttributes, k)
		}
	}

	if s.required.Period && s.period != nil {
		q = q.Add(models.ParamSemesterYear, s.period.Year)
		q = q.Add(models.ParamSemesterPeriod, s.period.Term)
	}
	if s.required.Modality && s.modality != "" {
		q = q.Add(models.ParamModeName, s.modality)
	}
	if s.required.Locality && s.locality != "" {
		q = q.Add(models.ParamLocalidadName, s.locality)
	}
	if s.required.Faculty && s.faculty != "" {
		q = q.Add(models.ParamFacultyName, s.faculty)
	}

	return q
}

// Selected reports whether an indicator has been selected
func (s *State) Selected() bool {
	return s.selected
}

// Revision increases on every mutation
func (s *State) Revision() uint64 {
	return s.revision
}

// Snapshot returns a copy of the selections
func (s *State) Snapshot() models.FilterValues {
	v := models.FilterValues{
		MetricKeys: append([]string(nil), s.metricKeys...),
		Modality:   s.modality,
		Locality:   s.locality,
		Faculty:    s.faculty,
	}
	if s.period != nil {
		p := *s.period
		v.Period = &p
	}
	return v
}
