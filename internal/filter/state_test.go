package filter

import (
	"errors"
	"testing"

	"github.com/jengzang/indicators-dashboard-go/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	byFaculty = models.Indicator{
		ID: "3", Key: "estudiantes inscritos por facultad",
		RequiredFilters: models.RequiredFilters{Period: true},
		MetricKeys:      []string{"t_inscritos"},
		Endpoint:        models.EndpointFaculties,
	}
	byCareer = models.Indicator{
		ID: "5", Key: "estudiantes inscritos por carrera",
		RequiredFilters: models.RequiredFilters{Period: true, Faculty: true, Locality: true, Modality: true},
		MetricKeys:      []string{"t_inscritos"},
		Endpoint:        models.EndpointCareers,
	}
	comparison = models.Indicator{
		ID: "12", Key: "comparacion de ingresos vs titulados por facultad",
		RequiredFilters: models.RequiredFilters{Period: true},
		MetricKeys:      []string{"titulados", "t_nuevos"},
		Endpoint:        models.EndpointFaculties,
	}
)

func TestState_QueryForFacultyIndicator(t *testing.T) {
	s := New()
	s.SelectIndicator(byFaculty)
	require.NoError(t, s.SetField(models.FieldPeriod, "2020-1"))

	assert.Equal(t,
		"indicatorAttributes=t_inscritos&semesterYear=2020&semesterPeriod=1",
		s.ToQueryParameters().Encode())
}

func TestState_RepeatedIndicatorAttributes(t *testing.T) {
	s := New()
	s.SelectIndicator(comparison)

	q := s.ToQueryParameters()
	assert.Equal(t, []string{"titulados", "t_nuevos"}, q.Values(models.ParamIndicatorAttributes))
	assert.Equal(t, "indicatorAttributes=titulados&indicatorAttributes=t_nuevos", q.Encode())
}

func TestState_SentinelRemovesField(t *testing.T) {
	s := New()
	s.SelectIndicator(byCareer)

	require.NoError(t, s.SetField(models.FieldFaculty, "FAC A"))
	assert.True(t, s.ToQueryParameters().Has(models.ParamFacultyName))

	require.NoError(t, s.SetField(models.FieldFaculty, "todos"))
	assert.False(t, s.ToQueryParameters().Has(models.ParamFacultyName))
	assert.NotContains(t, s.ToQueryParameters().Encode(), "facultyName")
}

func TestState_NeverEmitsUnsetOrSentinel(t *testing.T) {
	tests := map[string]struct {
		field string
		value string
		param string
	}{
		"period todos":     {field: models.FieldPeriod, value: "todos", param: models.ParamSemesterYear},
		"period blank":     {field: models.FieldPeriod, value: "", param: models.ParamSemesterPeriod},
		"modality TODOS":   {field: models.FieldModality, value: "TODOS", param: models.ParamModeName},
		"locality spaces":  {field: models.FieldLocality, value: "   ", param: models.ParamLocalidadName},
		"faculty sentinel": {field: models.FieldFaculty, value: "todos", param: models.ParamFacultyName},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			s := New()
			s.SelectIndicator(byCareer)
			require.NoError(t, s.SetField(test.field, test.value))

			q := s.ToQueryParameters()
			assert.False(t, q.Has(test.param))
			assert.Equal(t, "indicatorAttributes=t_inscritos", q.Encode())
		})
	}
}

func TestState_ReselectResetsFields(t *testing.T) {
	s := New()
	s.SelectIndicator(byCareer)
	require.NoError(t, s.SetField(models.FieldPeriod, "2021-2"))
	require.NoError(t, s.SetField(models.FieldModality, "PRESENCIAL"))
	require.NoError(t, s.SetField(models.FieldLocality, "SUCRE"))
	require.NoError(t, s.SetField(models.FieldFaculty, "FAC A"))

	s.SelectIndicator(comparison)

	snap := s.Snapshot()
	assert.Equal(t, []string{"titulados", "t_nuevos"}, snap.MetricKeys)
	assert.Nil(t, snap.Period)
	assert.Empty(t, snap.Modality)
	assert.Empty(t, snap.Locality)
	assert.Empty(t, snap.Faculty)

	s.SelectIndicator(byCareer)
	assert.Equal(t, "indicatorAttributes=t_inscritos", s.ToQueryParameters().Encode())
}

func TestState_RejectsFieldsNotRequired(t *testing.T) {
	s := New()
	s.SelectIndicator(byFaculty)

	err := s.SetField(models.FieldFaculty, "FAC A")
	var fe *FieldError
	require.True(t, errors.As(err, &fe))
	assert.ErrorIs(t, err, ErrFieldNotEditable)
	assert.False(t, s.ToQueryParameters().Has(models.ParamFacultyName))
}

func TestState_Errors(t *testing.T) {
	s := New()
	assert.ErrorIs(t, s.SetField(models.FieldPeriod, "2020-1"), ErrNoIndicator)

	s.SelectIndicator(byCareer)
	var fe *FieldError
	assert.True(t, errors.As(s.SetField("career", "X"), &fe))
	assert.True(t, errors.As(s.SetField("color", "red"), &fe))
	assert.True(t, errors.As(s.SetField(models.FieldPeriod, "2020"), &fe))
	assert.True(t, errors.As(s.SetField(models.FieldPeriod, "20a0-1"), &fe))
}

func TestState_RevisionAdvances(t *testing.T) {
	s := New()
	s.SelectIndicator(byCareer)
	r := s.Revision()

	require.NoError(t, s.SetField(models.FieldLocality, "SUCRE"))
	assert.Greater(t, s.Revision(), r)

	r = s.Revision()
	s.SelectIndicator(byCareer)
	assert.Greater(t, s.Revision(), r)
}

func TestParsePeriod(t *testing.T) {
	p, err := ParsePeriod("2020-1")
	require.NoError(t, err)
	assert.Equal(t, models.Period{Year: "2020", Term: "1"}, p)
	assert.Equal(t, "2020-1", p.String())

	for _, bad := range []string{"", "2020", "-1", "2020-", "2020-1-2", "abcd-1"} {
		_, err := ParsePeriod(bad)
		assert.Error(t, err, bad)
	}
}

func TestQueryParameters_EncodeEscapes(t *testing.T) {
	q := QueryParameters{}.
		Add(models.ParamIndicatorAttributes, "t_inscritos").
		Add(models.ParamFacultyName, "CIENCIAS & ARTES")

	assert.Equal(t, "indicatorAttributes=t_inscritos&facultyName=CIENCIAS+%26+ARTES", q.Encode())
	assert.Equal(t, "", QueryParameters(nil).Encode())
}
