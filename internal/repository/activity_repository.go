package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/shubham1234-glitch/Timesheet-sub000/internal/models"
)

// ActivityRepository reads the activity reference catalog.
type ActivityRepository struct {
	db *sqlx.DB
}

// NewActivityRepository constructs an ActivityRepository.
func NewActivityRepository(db *sqlx.DB) *ActivityRepository {
	return &ActivityRepository{db: db}
}

const activityColumns = `activity_code, name, category, outdoor, active, created_at`

// ListActive returns all active activities ordered by name.
func (r *ActivityRepository) ListActive(ctx context.Context) ([]models.Activity, error) {
	query := fmt.Sprintf("SELECT %s FROM activities WHERE active = true ORDER BY name", activityColumns)
	var activities []models.Activity
	if err := r.db.SelectContext(ctx, &activities, query); err != nil {
		return nil, fmt.Errorf("list activities: %w", err)
	}
	return activities, nil
}

// ListOutdoor returns the active outdoor subset.
func (r *ActivityRepository) ListOutdoor(ctx context.Context) ([]models.Activity, error) {
	query := fmt.Sprintf("SELECT %s FROM activities WHERE active = true AND outdoor = true ORDER BY name", activityColumns)
	var activities []models.Activity
	if err := r.db.SelectContext(ctx, &activities, query); err != nil {
		return nil, fmt.Errorf("list outdoor activities: %w", err)
	}
	return activities, nil
}

// FindByCode fetches one activity by its code.
func (r *ActivityRepository) FindByCode(ctx context.Context, activityCode string) (*models.Activity, error) {
	query := fmt.Sprintf("SELECT %s FROM activities WHERE activity_code = $1", activityColumns)
	var activity models.Activity
	if err := r.db.GetContext(ctx, &activity, query, activityCode); err != nil {
		return nil, err
	}
	return &activity, nil
}
