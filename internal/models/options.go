package models

// Envelope is the list wrapper returned by catalog-style endpoints
type Envelope[T any] struct {
	Data      []T `json:"data"`
	CountData int `json:"countData"`
}

// Faculty is a reference entry from GET faculties
type Faculty struct {
	ID   Scalar `json:"id"`
	Name string `json:"name"`
}

// Semester is a reference entry from GET semesters
type Semester struct {
	ID     Scalar `json:"id"`
	Year   Scalar `json:"year"`
	Period Scalar `json:"period"`
}

// Value is the period selector value, e.g. 2020-1
func (s Semester) Value() string {
	return s.Year.String() + "-" + s.Period.String()
}

// Locality is a reference entry from GET localities
type Locality struct {
	ID   Scalar `json:"id"`
	Name string `json:"name"`
}

// Mode is a reference entry from GET modes
type Mode struct {
	ID   Scalar `json:"id"`
	Name string `json:"name"`
}

// FilterOptions groups the choices offered by the filter controls
type FilterOptions struct {
	Faculties  []Faculty  `json:"faculties"`
	Semesters  []Semester `json:"semesters"`
	Localities []Locality `json:"localities"`
	Modes      []Mode     `json:"modes"`
}
