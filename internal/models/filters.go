package models

// Filter field names accepted by the filter store
const (
	FieldPeriod   = "period"
	FieldModality = "modality"
	FieldLocality = "locality"
	FieldFaculty  = "faculty"
	FieldCareer   = "career"
)

// AllSentinel is the "all values" choice offered by every filter control
const AllSentinel = "todos"

// Query parameter names understood by the filters endpoints
const (
	ParamIndicatorAttributes = "indicatorAttributes"
	ParamSemesterYear        = "semesterYear"
	ParamSemesterPeriod      = "semesterPeriod"
	ParamModeName            = "modeName"
	ParamLocalidadName       = "localidadName"
	ParamFacultyName         = "facultyName"
)

// Period is an academic term such as 2020-1
type Period struct {
	Year string `json:"year"`
	Term string `json:"term"`
}

// String formats the period the way the filter controls display it
func (p Period) String() string {
	return p.Year + "-" + p.Term
}

// FilterValues is a read-only copy of a filter state
type FilterValues struct {
	MetricKeys []string `json:"metric_keys"`
	Period     *Period  `json:"period,omitempty"`
	Modality   string   `json:"modality,omitempty"`
	Locality   string   `json:"locality,omitempty"`
	Faculty    string   `json:"faculty,omitempty"`
}
