package service

import (
	"context"
	"fmt"

	"github.com/sourcegraph/conc/pool"

	"github.com/jengzang/indicators-dashboard-go/internal/client"
	"github.com/jengzang/indicators-dashboard-go/internal/models"
)

// OptionsService loads the choices offered by the filter controls
type OptionsService struct {
	client *client.Client
}

// NewOptionsService creates a new options service
func NewOptionsService(c *client.Client) *OptionsService {
	return &OptionsService{client: c}
}

// GetOptions fetches faculties, semesters, localities and modes concurrently.
// All four requests run to completion; the first failure is returned.
func (s *OptionsService) GetOptions(ctx context.Context) (models.FilterOptions, error) {
	var opts models.FilterOptions

	p := pool.New().WithContext(ctx).WithFirstError()

	p.Go(func(ctx context.Context) error {
		env, err := client.GetAll[models.Faculty](ctx, s.client, models.EndpointFaculties)
		if err != nil {
			return fmt.Errorf("failed to get faculties: %w", err)
		}
		opts.Faculties = env.Data
		return nil
	})
	p.Go(func(ctx context.Context) error {
		env, err := client.GetAll[models.Semester](ctx, s.client, models.EndpointSemesters)
		if err != nil {
			return fmt.Errorf("failed to get semesters: %w", err)
		}
		opts.Semesters = env.Data
		return nil
	})
	p.Go(func(ctx context.Context) error {
		env, err := client.GetAll[models.Locality](ctx, s.client, models.EndpointLocalities)
		if err != nil {
			return fmt.Errorf("failed to get localities: %w", err)
		}
		opts.Localities = env.Data
		return nil
	})
	p.Go(func(ctx context.Context) error {
		env, err := client.GetAll[models.Mode](ctx, s.client, models.EndpointModes)
		if err != nil {
			return fmt.Errorf("failed to get modes: %w", err)
		}
		opts.Modes = env.Data
		return nil
	})

	if err := p.Wait(); err != nil {
		return models.FilterOptions{}, err
	}
	return opts, nil
}
