package service

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jengzang/indicators-dashboard-go/internal/dashboard"
)

// ErrViewNotFound is returned for unknown or evicted view IDs
var ErrViewNotFound = errors.New("view not found")

// DefaultViewTTL applies when no positive TTL is configured
const DefaultViewTTL = 30 * time.Minute

// minCleanupInterval bounds how often idle views are scanned
const minCleanupInterval = time.Millisecond

// DashboardService owns the mounted dashboard views
type DashboardService struct {
	catalog dashboard.Catalog
	fetcher dashboard.Fetcher
	ttl     time.Duration
	log     *slog.Logger

	mu    sync.RWMutex
	views map[string]*dashboard.Controller

	stop      chan struct{}
	done      chan struct{}
	closeOnce sync.Once
}

// NewDashboardService creates the view registry and starts evicting views
// idle for longer than ttl
func NewDashboardService(cat dashboard.Catalog, fetcher dashboard.Fetcher, ttl time.Duration, log *slog.Logger) *DashboardService {
	if log == nil {
		log = slog.Default()
	}
	if ttl <= 0 {
		ttl = DefaultViewTTL
	}
	s := &DashboardService{
		catalog: cat,
		fetcher: fetcher,
		ttl:     ttl,
		log:     log,
		views:   make(map[string]*dashboard.Controller),
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}

	// Start cleanup goroutine
	go s.cleanup()

	return s
}

// cleanup evicts idle views periodically
func (s *DashboardService) cleanup() {
	defer close(s.done)

	ticker := time.NewTicker(max(s.ttl/2, minCleanupInterval))
	defer ticker.Stop()

	for {
		select {
		case <-s.stop:
			return
		case now := <-ticker.C:
			if n := s.Evict(now); n > 0 {
				s.log.Info("evicted idle views", "count", n)
			}
		}
	}
}

// Evict removes views whose last activity is older than the TTL at now
func (s *DashboardService) Evict(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for id, v := range s.views {
		if now.Sub(v.LastActivity()) > s.ttl {
			delete(s.views, id)
			n++
		}
	}
	return n
}

// Close stops the cleanup goroutine
func (s *DashboardService) Close() {
	s.closeOnce.Do(func() {
		close(s.stop)
		<-s.done
	})
}

// Mount creates an idle view and returns its ID
func (s *DashboardService) Mount() (string, dashboard.Snapshot) {
	id := uuid.NewString()
	ctrl := dashboard.NewController(s.catalog, s.fetcher, s.log.With("view", id))

	s.mu.Lock()
	s.views[id] = ctrl
	s.mu.Unlock()

	s.log.Debug("view mounted", "view", id)
	return id, ctrl.Snapshot()
}

// Unmount discards a view. Fetches still running for it complete unobserved.
func (s *DashboardService) Unmount(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.views[id]; !ok {
		return ErrViewNotFound
	}
	delete(s.views, id)
	return nil
}

// Len returns the number of mounted views
func (s *DashboardService) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.views)
}

func (s *DashboardService) view(id string) (*dashboard.Controller, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.views[id]
	if !ok {
		return nil, ErrViewNotFound
	}
	return v, nil
}

// GetView returns the current snapshot of a view
func (s *DashboardService) GetView(id string) (dashboard.Snapshot, error) {
	v, err := s.view(id)
	if err != nil {
		return dashboard.Snapshot{}, err
	}
	return v.Snapshot(), nil
}

// SelectIndicator switches the indicator of a view
func (s *DashboardService) SelectIndicator(id, key string) (dashboard.Snapshot, error) {
	v, err := s.view(id)
	if err != nil {
		return dashboard.Snapshot{}, err
	}
	err = v.SelectIndicator(key)
	return v.Snapshot(), err
}

// SetFilters applies field edits in field-name order and stops at the first rejected one
func (s *DashboardService) SetFilters(id string, fields map[string]string) (dashboard.Snapshot, error) {
	v, err := s.view(id)
	if err != nil {
		return dashboard.Snapshot{}, err
	}

	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if err := v.SetField(name, fields[name]); err != nil {
			return v.Snapshot(), err
		}
	}
	return v.Snapshot(), nil
}

// Submit runs the current query of a view
func (s *DashboardService) Submit(ctx context.Context, id string) (dashboard.Snapshot, error) {
	v, err := s.view(id)
	if err != nil {
		return dashboard.Snapshot{}, err
	}
	return v.Submit(ctx)
}
