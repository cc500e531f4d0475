package models

import (
	"errors"
	"fmt"
)

// Indicator is a predefined query against the data-mart API
type Indicator struct {
	ID              string          `json:"id" db:"id"`
	Key             string          `json:"key" db:"key"`                     // Canonical selector value
	DisplayLabel    string          `json:"display_label" db:"display_label"` // Human-readable name
	RequiredFilters RequiredFilters `json:"required_filters"`
	MetricKeys      []string        `json:"metric_keys"`            // Ordered, never empty
	Endpoint        string          `json:"endpoint" db:"endpoint"` // Backend collection name
}

// RequiredFilters flags which filter controls an indicator exposes
type RequiredFilters struct {
	Period   bool `json:"period" db:"need_period"`
	Locality bool `json:"locality" db:"need_locality"`
	Faculty  bool `json:"faculty" db:"need_faculty"`
	Modality bool `json:"modality" db:"need_modality"`
	Career   bool `json:"career" db:"need_career"`
}

// Allows reports whether the filter field may be edited
func (r RequiredFilters) Allows(field string) bool {
	switch field {
	case FieldPeriod:
		return r.Period
	case FieldLocality:
		return r.Locality
	case FieldFaculty:
		return r.Faculty
	case FieldModality:
		return r.Modality
	case FieldCareer:
		return r.Career
	}
	return false
}

// Endpoint constants
const (
	EndpointLocalities = "localities"
	EndpointCareers    = "careers"
	EndpointFaculties  = "faculties"
	EndpointModes      = "modes"
	EndpointSemesters  = "semesters"
)

// Endpoints lists every backend collection an indicator may query
var Endpoints = []string{
	EndpointLocalities,
	EndpointCareers,
	EndpointFaculties,
	EndpointModes,
	EndpointSemesters,
}

// IsValidEndpoint checks the endpoint against the fixed set
func IsValidEndpoint(endpoint string) bool {
	for _, e := range Endpoints {
		if e == endpoint {
			return true
		}
	}
	return false
}

// Validate checks the invariants every catalog entry must hold
func (i Indicator) Validate() error {
	if i.Key == "" {
		return errors.New("indicator key is empty")
	}
	if len(i.MetricKeys) == 0 {
		return fmt.Errorf("indicator %q has no metric keys", i.Key)
	}
	for _, k := range i.MetricKeys {
		if k == "" {
			return fmt.Errorf("indicator %q has an empty metric key", i.Key)
		}
	}
	if !IsValidEndpoint(i.Endpoint) {
		return fmt.Errorf("indicator %q has unknown endpoint %q", i.Key, i.Endpoint)
	}
	return nil
}

// IsMultiSeries reports whether the indicator charts more than one metric
func (i Indicator) IsMultiSeries() bool {
	return len(i.MetricKeys) > 1
}
