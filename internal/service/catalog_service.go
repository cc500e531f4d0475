package service

import (
	"fmt"
	"log/slog"

	"github.com/jengzang/indicators-dashboard-go/internal/catalog"
	"github.com/jengzang/indicators-dashboard-go/internal/repository"
)

// LoadCatalog builds the indicator catalog. With a repository the stored
// definitions are used, seeding the builtin set into an empty table first;
// without one the builtin set is used directly.
func LoadCatalog(repo *repository.IndicatorRepository, log *slog.Logger) (*catalog.Catalog, error) {
	if log == nil {
		log = slog.Default()
	}
	if repo == nil {
		log.Info("using builtin indicator catalog", "indicators", len(catalog.Builtin()))
		return catalog.New(catalog.Builtin())
	}

	n, err := repo.Count()
	if err != nil {
		return nil, err
	}
	if n == 0 {
		builtin := catalog.Builtin()
		if err := repo.Seed(builtin); err != nil {
			return nil, fmt.Errorf("failed to seed indicator catalog: %w", err)
		}
		log.Info("seeded indicator catalog", "indicators", len(builtin))
	}

	defs, err := repo.List()
	if err != nil {
		return nil, err
	}

	cat, err := catalog.New(defs)
	if err != nil {
		return nil, fmt.Errorf("stored indicator catalog is invalid: %w", err)
	}
	log.Info("loaded indicator catalog", "indicators", cat.Len())
	return cat, nil
}
