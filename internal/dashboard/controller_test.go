package dashboard

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/jengzang/indicators-dashboard-go/internal/catalog"
	"github.com/jengzang/indicators-dashboard-go/internal/client"
	"github.com/jengzang/indicators-dashboard-go/internal/filter"
	"github.com/jengzang/indicators-dashboard-go/internal/models"
	"github.com/jengzang/indicators-dashboard-go/internal/reshape"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	byFacultyKey  = "estudiantes inscritos por facultad"
	byCareerKey   = "estudiantes inscritos por carrera"
	comparisonKey = "comparacion de ingresos vs titulados por facultad"
)

type fetchCall struct {
	endpoint string
	query    string
}

type fakeFetcher struct {
	mu      sync.Mutex
	calls   []fetchCall
	respond func(endpoint, query string) ([]models.ResultRow, error)
}

func (f *fakeFetcher) QueryIndicator(_ context.Context, endpoint, query string) ([]models.ResultRow, error) {
	f.mu.Lock()
	f.calls = append(f.calls, fetchCall{endpoint: endpoint, query: query})
	respond := f.respond
	f.mu.Unlock()
	return respond(endpoint, query)
}

func (f *fakeFetcher) lastCall() fetchCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[len(f.calls)-1]
}

func rowsOf(label, metric, value string) []models.ResultRow {
	return []models.ResultRow{{Label: label, Values: []models.MetricValue{{Label: metric, Value: models.Scalar(value)}}}}
}

func facultyRows() []models.ResultRow {
	return []models.ResultRow{
		{Label: "FAC A", Values: []models.MetricValue{{Label: "t_inscritos", Value: "50"}}},
		{Label: "FAC B", Values: []models.MetricValue{{Label: "t_inscritos", Value: "120"}}},
	}
}

func newController(t *testing.T, f *fakeFetcher) *Controller {
	t.Helper()
	cat, err := catalog.New(catalog.Builtin())
	require.NoError(t, err)
	return NewController(cat, f, nil)
}

func TestController_SubmitRendersSingleSeries(t *testing.T) {
	f := &fakeFetcher{respond: func(string, string) ([]models.ResultRow, error) { return facultyRows(), nil }}
	c := newController(t, f)

	assert.Equal(t, PhaseIdle, c.Snapshot().Phase)
	require.NoError(t, c.SelectIndicator(byFacultyKey))
	assert.Equal(t, PhaseSelected, c.Snapshot().Phase)
	require.NoError(t, c.SetField(models.FieldPeriod, "2020-1"))

	snap, err := c.Submit(context.Background())
	require.NoError(t, err)

	assert.Equal(t, fetchCall{
		endpoint: models.EndpointFaculties,
		query:    "indicatorAttributes=t_inscritos&semesterYear=2020&semesterPeriod=1",
	}, f.lastCall())

	assert.Equal(t, PhaseRendered, snap.Phase)
	require.NotNil(t, snap.View)
	assert.Nil(t, snap.Error)

	data := snap.View.Chart.Data
	require.Len(t, data, 2)
	assert.Equal(t, "FAC B", data[0].Label)
	v, _ := data[0].Value("t_inscritos")
	assert.Equal(t, 120.0, v)

	total, _ := snap.View.Table.Totals.Value("t_inscritos")
	assert.Equal(t, 170.0, total)
	assert.Equal(t, reshape.TotalsLabel, snap.View.Table.Totals.Label)
}

func TestController_MultiSeriesKeepsOrder(t *testing.T) {
	f := &fakeFetcher{respond: func(string, string) ([]models.ResultRow, error) {
		return []models.ResultRow{
			{Label: "FAC A", Values: []models.MetricValue{{Label: "titulados", Value: "5"}, {Label: "t_nuevos", Value: "40"}}},
			{Label: "FAC B", Values: []models.MetricValue{{Label: "titulados", Value: "9"}, {Label: "t_nuevos", Value: "30"}}},
		}, nil
	}}
	c := newController(t, f)
	require.NoError(t, c.SelectIndicator(comparisonKey))

	snap, err := c.Submit(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "indicatorAttributes=titulados&indicatorAttributes=t_nuevos", f.lastCall().query)
	require.NotNil(t, snap.View)
	assert.Equal(t, []string{"titulados", "t_nuevos"}, snap.View.Chart.DataKeys)
	assert.Equal(t, "FAC A", snap.View.Chart.Data[0].Label)
	assert.Equal(t, []string{"row label", "titulados", "t_nuevos"}, []string{
		snap.View.Table.Columns[0].Key, snap.View.Table.Columns[1].Key, snap.View.Table.Columns[2].Key,
	})
}

func TestController_FailureKeepsFiltersAndPreviousRender(t *testing.T) {
	fail := false
	f := &fakeFetcher{respond: func(string, string) ([]models.ResultRow, error) {
		if fail {
			return nil, &client.APIError{StatusCode: 400, Messages: []string{"semesterYear must be a number"}}
		}
		return facultyRows(), nil
	}}
	c := newController(t, f)
	require.NoError(t, c.SelectIndicator(byFacultyKey))
	require.NoError(t, c.SetField(models.FieldPeriod, "2020-1"))
	_, err := c.Submit(context.Background())
	require.NoError(t, err)

	fail = true
	snap, err := c.Submit(context.Background())
	require.Error(t, err)
	assert.True(t, client.IsAPIError(err))

	assert.Equal(t, PhaseSelected, snap.Phase)
	require.NotNil(t, snap.Error)
	assert.Equal(t, 400, snap.Error.StatusCode)
	assert.Equal(t, []string{"semesterYear must be a number"}, snap.Error.Messages)
	require.NotNil(t, snap.Filters.Period)
	assert.Equal(t, "2020-1", snap.Filters.Period.String())
	require.NotNil(t, snap.View, "previous render is retained")
	assert.Len(t, snap.View.Chart.Data, 2)

	fail = false
	snap, err = c.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, PhaseRendered, snap.Phase)
	assert.Nil(t, snap.Error)
}

func TestController_ShapeMismatchIsSurfaced(t *testing.T) {
	f := &fakeFetcher{respond: func(string, string) ([]models.ResultRow, error) {
		return []models.ResultRow{
			{Label: "FAC A", Values: []models.MetricValue{{Label: "titulados", Value: "5"}, {Label: "t_nuevos", Value: "40"}}},
			{Label: "FAC B", Values: []models.MetricValue{{Label: "t_nuevos", Value: "30"}, {Label: "titulados", Value: "9"}}},
		}, nil
	}}
	c := newController(t, f)
	require.NoError(t, c.SelectIndicator(comparisonKey))

	snap, err := c.Submit(context.Background())

	var sm *reshape.ShapeMismatchError
	require.True(t, errors.As(err, &sm))
	assert.Equal(t, PhaseSelected, snap.Phase)
	assert.Nil(t, snap.View)
	require.NotNil(t, snap.Error)
	assert.NotEmpty(t, snap.Error.Messages)
}

func TestController_WrongMetricCountIsSurfaced(t *testing.T) {
	f := &fakeFetcher{respond: func(string, string) ([]models.ResultRow, error) {
		return rowsOf("FAC A", "titulados", "5"), nil
	}}
	c := newController(t, f)
	require.NoError(t, c.SelectIndicator(comparisonKey))

	_, err := c.Submit(context.Background())
	var sm *reshape.ShapeMismatchError
	assert.True(t, errors.As(err, &sm))
}

func TestController_StaleResultIsDiscarded(t *testing.T) {
	c := newController(t, &fakeFetcher{})
	require.NoError(t, c.SelectIndicator(byFacultyKey))

	first, err := c.Dispatch(Submit{})
	require.NoError(t, err)
	second, err := c.Dispatch(Submit{})
	require.NoError(t, err)
	assert.Greater(t, second.Generation, first.Generation)

	_, err = c.Dispatch(FetchSucceeded{Generation: second.Generation, Rows: rowsOf("NEW", "t_inscritos", "1")})
	require.NoError(t, err)

	_, err = c.Dispatch(FetchSucceeded{Generation: first.Generation, Rows: rowsOf("OLD", "t_inscritos", "2")})
	assert.ErrorIs(t, err, ErrSuperseded)
	_, err = c.Dispatch(FetchFailed{Generation: first.Generation, Err: errors.New("late")})
	assert.ErrorIs(t, err, ErrSuperseded)

	snap := c.Snapshot()
	assert.Equal(t, PhaseRendered, snap.Phase)
	assert.Nil(t, snap.Error)
	require.NotNil(t, snap.View)
	assert.Equal(t, "NEW", snap.View.Chart.Data[0].Label)
}

func TestController_LateResponseAfterNewerSubmit(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})

	f := &fakeFetcher{respond: func(_ string, query string) ([]models.ResultRow, error) {
		if query == "indicatorAttributes=t_inscritos&semesterYear=2019&semesterPeriod=2" {
			close(started)
			<-release
			return rowsOf("OLD", "t_inscritos", "1"), nil
		}
		return rowsOf("NEW", "t_inscritos", "2"), nil
	}}
	c := newController(t, f)
	require.NoError(t, c.SelectIndicator(byFacultyKey))
	require.NoError(t, c.SetField(models.FieldPeriod, "2019-2"))

	done := make(chan error, 1)
	go func() {
		_, err := c.Submit(context.Background())
		done <- err
	}()
	<-started

	require.NoError(t, c.SetField(models.FieldPeriod, "2020-1"))
	snap, err := c.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "NEW", snap.View.Chart.Data[0].Label)

	close(release)
	select {
	case err := <-done:
		assert.ErrorIs(t, err, ErrSuperseded)
	case <-time.After(2 * time.Second):
		t.Fatal("first submit did not return")
	}

	snap = c.Snapshot()
	assert.Equal(t, "NEW", snap.View.Chart.Data[0].Label)
}

func TestController_ReselectDiscardsPendingAndResets(t *testing.T) {
	c := newController(t, &fakeFetcher{})
	require.NoError(t, c.SelectIndicator(byCareerKey))
	require.NoError(t, c.SetField(models.FieldFaculty, "FAC A"))
	require.NoError(t, c.SetField(models.FieldLocality, "SUCRE"))
	require.NoError(t, c.SetField(models.FieldModality, "PRESENCIAL"))
	require.NoError(t, c.SetField(models.FieldPeriod, "2020-1"))

	pending, err := c.Dispatch(Submit{})
	require.NoError(t, err)

	require.NoError(t, c.SelectIndicator(byCareerKey))

	_, err = c.Dispatch(FetchSucceeded{Generation: pending.Generation, Rows: rowsOf("X", "t_inscritos", "1")})
	assert.ErrorIs(t, err, ErrSuperseded)

	snap := c.Snapshot()
	assert.Equal(t, PhaseSelected, snap.Phase)
	assert.Nil(t, snap.View)
	assert.Nil(t, snap.Filters.Period)
	assert.Empty(t, snap.Filters.Faculty)
	assert.Empty(t, snap.Filters.Locality)
	assert.Empty(t, snap.Filters.Modality)
	assert.Equal(t, []string{"t_inscritos"}, snap.Filters.MetricKeys)
	assert.Equal(t, "indicatorAttributes=t_inscritos", snap.Query)
}

func TestController_TodosRemovesFacultyOnNextSubmit(t *testing.T) {
	f := &fakeFetcher{respond: func(string, string) ([]models.ResultRow, error) { return nil, nil }}
	c := newController(t, f)
	require.NoError(t, c.SelectIndicator(byCareerKey))

	require.NoError(t, c.SetField(models.FieldFaculty, "FAC A"))
	_, err := c.Submit(context.Background())
	require.NoError(t, err)
	assert.Contains(t, f.lastCall().query, "facultyName=FAC+A")

	require.NoError(t, c.SetField(models.FieldFaculty, "todos"))
	_, err = c.Submit(context.Background())
	require.NoError(t, err)
	assert.NotContains(t, f.lastCall().query, "facultyName")
}

func TestController_UnknownIndicatorMeansNothingSelected(t *testing.T) {
	c := newController(t, &fakeFetcher{})
	require.NoError(t, c.SelectIndicator(byFacultyKey))

	err := c.SelectIndicator("does not exist")
	var nf *catalog.NotFoundError
	require.True(t, errors.As(err, &nf))

	snap := c.Snapshot()
	assert.Equal(t, PhaseIdle, snap.Phase)
	assert.Nil(t, snap.Indicator)

	_, err = c.Submit(context.Background())
	assert.ErrorIs(t, err, ErrNoIndicator)
	assert.ErrorIs(t, c.SetField(models.FieldPeriod, "2020-1"), ErrNoIndicator)
}

func TestController_FieldErrors(t *testing.T) {
	c := newController(t, &fakeFetcher{})
	require.NoError(t, c.SelectIndicator(byFacultyKey))

	err := c.SetField(models.FieldFaculty, "FAC A")
	assert.ErrorIs(t, err, filter.ErrFieldNotEditable)
	assert.Equal(t, PhaseSelected, c.Snapshot().Phase)
}

func TestController_EmptyResultRendersEmptyView(t *testing.T) {
	f := &fakeFetcher{respond: func(string, string) ([]models.ResultRow, error) { return []models.ResultRow{}, nil }}
	c := newController(t, f)
	require.NoError(t, c.SelectIndicator(byFacultyKey))

	snap, err := c.Submit(context.Background())
	require.NoError(t, err)
	require.NotNil(t, snap.View)
	assert.Empty(t, snap.View.Chart.Data)
	assert.Equal(t, []string{"t_inscritos"}, snap.View.Chart.DataKeys)
	assert.Equal(t, reshape.TotalsLabel, snap.View.Table.Totals.Label)
}
