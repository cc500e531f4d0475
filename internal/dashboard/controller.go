package dashboard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/jengzang/indicators-dashboard-go/internal/client"
	"github.com/jengzang/indicators-dashboard-go/internal/filter"
	"github.com/jengzang/indicators-dashboard-go/internal/models"
	"github.com/jengzang/indicators-dashboard-go/internal/render"
	"github.com/jengzang/indicators-dashboard-go/internal/reshape"
)

// Phase is the controller state
type Phase string

// Phase constants
const (
	PhaseIdle     Phase = "idle"
	PhaseSelected Phase = "selected"
	PhaseFetching Phase = "fetching"
	PhaseRendered Phase = "rendered"
)

var (
	// ErrNoIndicator is returned for edits and submits before an indicator is selected
	ErrNoIndicator = filter.ErrNoIndicator

	// ErrSuperseded is returned when a fetch outcome belongs to an older submit
	ErrSuperseded = errors.New("result superseded by a newer request")
)

// Catalog resolves indicator keys
type Catalog interface {
	Lookup(key string) (models.Indicator, error)
}

// Fetcher runs indicator queries against the upstream API
type Fetcher interface {
	QueryIndicator(ctx context.Context, endpoint, query string) ([]models.ResultRow, error)
}

// ErrorInfo is the user-facing form of a failed submit
type ErrorInfo struct {
	StatusCode int      `json:"statusCode,omitempty"`
	Messages   []string `json:"messages"`
}

// Snapshot is a consistent copy of the controller state
type Snapshot struct {
	Phase      Phase               `json:"phase"`
	Indicator  *models.Indicator   `json:"indicator,omitempty"`
	Filters    models.FilterValues `json:"filters"`
	Query      string              `json:"query"`
	Generation uint64              `json:"generation"`
	View       *render.View        `json:"view,omitempty"`
	Error      *ErrorInfo          `json:"error,omitempty"`
	UpdatedAt  time.Time           `json:"updatedAt"`
}

// Controller coordinates indicator selection, filter edits, fetches and rendering
// for one dashboard view. Transitions are serialised; only the fetch runs unlocked.
type Controller struct {
	mu sync.Mutex

	catalog Catalog
	fetcher Fetcher
	log     *slog.Logger

	phase      Phase
	indicator  *models.Indicator
	filters    *filter.State
	generation uint64
	view       *render.View
	lastErr    error
	updatedAt  time.Time
}

// NewController creates a controller in the idle phase
func NewController(catalog Catalog, fetcher Fetcher, log *slog.Logger) *Controller {
	if log == nil {
		log = slog.Default()
	}
	return &Controller{
		catalog:   catalog,
		fetcher:   fetcher,
		log:       log,
		phase:     PhaseIdle,
		filters:   filter.New(),
		updatedAt: time.Now(),
	}
}

// Dispatch applies one message. A Submit yields the fetch the caller must perform.
func (c *Controller) Dispatch(m Msg) (*FetchRequest, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.updatedAt = time.Now()

	switch m := m.(type) {
	case SelectIndicator:
		return nil, c.selectIndicator(m.Key)
	case SetField:
		return nil, c.setField(m.Name, m.Value)
	case Submit:
		return c.submit()
	case FetchSucceeded:
		return nil, c.fetchSucceeded(m)
	case FetchFailed:
		return nil, c.fetchFailed(m)
	}
	return nil, fmt.Errorf("unknown message %T", m)
}

func (c *Controller) selectIndicator(key string) error {
	// any pending fetch belongs to the previous selection
	c.generation++
	c.view = nil
	c.lastErr = nil

	def, err := c.catalog.Lookup(key)
	if err != nil {
		c.indicator = nil
		c.filters = filter.New()
		c.phase = PhaseIdle
		return err
	}

	c.indicator = &def
	c.filters.SelectIndicator(def)
	c.phase = PhaseSelected
	return nil
}

func (c *Controller) setField(name, value string) error {
	if c.indicator == nil {
		return ErrNoIndicator
	}
	if err := c.filters.SetField(name, value); err != nil {
		return err
	}
	if c.phase == PhaseRendered {
		c.phase = PhaseSelected
	}
	return nil
}

func (c *Controller) submit() (*FetchRequest, error) {
	if c.indicator == nil {
		return nil, ErrNoIndicator
	}

	c.generation++
	c.phase = PhaseFetching
	c.lastErr = nil

	return &FetchRequest{
		Generation: c.generation,
		Endpoint:   c.indicator.Endpoint,
		Query:      c.filters.ToQueryParameters().Encode(),
	}, nil
}

func (c *Controller) fetchSucceeded(m FetchSucceeded) error {
	if m.Generation != c.generation {
		c.log.Debug("discarding stale result", "generation", m.Generation, "current", c.generation)
		return ErrSuperseded
	}

	view, err := c.shape(m.Rows)
	if err != nil {
		c.fail(err)
		return err
	}

	c.view = &view
	c.lastErr = nil
	c.phase = PhaseRendered
	return nil
}

func (c *Controller) fetchFailed(m FetchFailed) error {
	if m.Generation != c.generation {
		c.log.Debug("discarding stale failure", "generation", m.Generation, "current", c.generation)
		return ErrSuperseded
	}
	c.fail(m.Err)
	return nil
}

// fail keeps the filters and the previous render, and records err for display
func (c *Controller) fail(err error) {
	c.lastErr = err
	c.phase = PhaseSelected
	c.log.Warn("indicator fetch failed", "indicator", c.indicator.Key, "error", err)
}

func (c *Controller) shape(rows []models.ResultRow) (render.View, error) {
	def := *c.indicator

	if err := reshape.CheckShape(rows, def.MetricKeys); err != nil {
		return render.View{}, err
	}

	var (
		points []reshape.Record
		err    error
	)
	if def.IsMultiSeries() {
		points, err = reshape.ToMultiSeries(rows)
	} else {
		points, err = reshape.ToSingleSeries(rows)
	}
	if err != nil {
		return render.View{}, err
	}

	table, err := reshape.ToTable(rows)
	if err != nil {
		return render.View{}, err
	}

	return render.Build(def, points, table), nil
}

// Submit derives the query, fetches it and commits the outcome if no newer
// submit or reselection happened meanwhile.
func (c *Controller) Submit(ctx context.Context) (Snapshot, error) {
	req, err := c.Dispatch(Submit{})
	if err != nil {
		return c.Snapshot(), err
	}

	start := time.Now()
	rows, fetchErr := c.fetcher.QueryIndicator(ctx, req.Endpoint, req.Query)
	c.log.Debug("indicator fetched",
		"endpoint", req.Endpoint,
		"query", req.Query,
		"generation", req.Generation,
		"latency", time.Since(start),
	)

	if fetchErr != nil {
		if _, err := c.Dispatch(FetchFailed{Generation: req.Generation, Err: fetchErr}); err != nil {
			return c.Snapshot(), err
		}
		return c.Snapshot(), fetchErr
	}

	_, err = c.Dispatch(FetchSucceeded{Generation: req.Generation, Rows: rows})
	return c.Snapshot(), err
}

// SelectIndicator is shorthand for dispatching SelectIndicator
func (c *Controller) SelectIndicator(key string) error {
	_, err := c.Dispatch(SelectIndicator{Key: key})
	return err
}

// SetField is shorthand for dispatching SetField
func (c *Controller) SetField(name, value string) error {
	_, err := c.Dispatch(SetField{Name: name, Value: value})
	return err
}

// Snapshot returns a copy of the current state
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := Snapshot{
		Phase:      c.phase,
		Filters:    c.filters.Snapshot(),
		Query:      c.filters.ToQueryParameters().Encode(),
		Generation: c.generation,
		View:       c.view,
		Error:      errorInfo(c.lastErr),
		UpdatedAt:  c.updatedAt,
	}
	if c.indicator != nil {
		def := *c.indicator
		def.MetricKeys = append([]string(nil), def.MetricKeys...)
		s.Indicator = &def
	}
	return s
}

// LastActivity reports when the controller last received a message
func (c *Controller) LastActivity() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.updatedAt
}

func errorInfo(err error) *ErrorInfo {
	if err == nil {
		return nil
	}

	var apiErr *client.APIError
	if errors.As(err, &apiErr) {
		return &ErrorInfo{
			StatusCode: apiErr.StatusCode,
			Messages:   append([]string(nil), apiErr.Messages...),
		}
	}
	return &ErrorInfo{Messages: []string{err.Error()}}
}
