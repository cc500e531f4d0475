package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/jengzang/indicators-dashboard-go/internal/database"
	"github.com/jengzang/indicators-dashboard-go/internal/models"
)

// IndicatorRepository handles database operations for indicator definitions
type IndicatorRepository struct {
	db *sql.DB
}

// NewIndicatorRepository creates a new indicator repository
func NewIndicatorRepository(db *sql.DB) *IndicatorRepository {
	return &IndicatorRepository{db: db}
}

// Count returns the number of stored indicators
func (r *IndicatorRepository) Count() (int, error) {
	var n int
	if err := r.db.QueryRow("SELECT COUNT(*) FROM indicators").Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count indicators: %w", err)
	}
	return n, nil
}

// Seed inserts defs in order within one transaction
func (r *IndicatorRepository) Seed(defs []models.Indicator) error {
	query := `INSERT INTO indicators (
		position, id, key, display_label, endpoint, metric_keys,
		need_period, need_locality, need_faculty, need_modality, need_career
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	return database.Transaction(r.db, func(tx *sql.Tx) error {
		stmt, err := tx.Prepare(query)
		if err != nil {
			return fmt.Errorf("failed to prepare insert: %w", err)
		}
		defer stmt.Close()

		for i, d := range defs {
			metricKeys, err := json.Marshal(d.MetricKeys)
			if err != nil {
				return fmt.Errorf("failed to encode metric keys of %q: %w", d.Key, err)
			}
			rf := d.RequiredFilters
			_, err = stmt.Exec(i, d.ID, d.Key, d.DisplayLabel, d.Endpoint, string(metricKeys),
				rf.Period, rf.Locality, rf.Faculty, rf.Modality, rf.Career)
			if err != nil {
				return fmt.Errorf("failed to insert indicator %q: %w", d.Key, err)
			}
		}
		return nil
	})
}

// List returns all indicators in catalog order
func (r *IndicatorRepository) List() ([]models.Indicator, error) {
	rows, err := r.db.Query(`SELECT id, key, display_label, endpoint, metric_keys,
		need_period, need_locality, need_faculty, need_modality, need_career
		FROM indicators ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("failed to query indicators: %w", err)
	}
	defer rows.Close()

	var defs []models.Indicator
	for rows.Next() {
		var (
			d          models.Indicator
			metricKeys string
		)
		err := rows.Scan(&d.ID, &d.Key, &d.DisplayLabel, &d.Endpoint, &metricKeys,
			&d.RequiredFilters.Period, &d.RequiredFilters.Locality, &d.RequiredFilters.Faculty,
			&d.RequiredFilters.Modality, &d.RequiredFilters.Career)
		if err != nil {
			return nil, fmt.Errorf("failed to scan indicator: %w", err)
		}
		if err := json.Unmarshal([]byte(metricKeys), &d.MetricKeys); err != nil {
			return nil, fmt.Errorf("failed to decode metric keys of %q: %w", d.Key, err)
		}
		defs = append(defs, d)
	}

	return defs, rows.Err()
}
