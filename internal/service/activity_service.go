package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/shubham1234-glitch/Timesheet-sub000/internal/models"
	appErrors "github.com/shubham1234-glitch/Timesheet-sub000/pkg/errors"
)

type activityStore interface {
	ListActive(ctx context.Context) ([]models.Activity, error)
	ListOutdoor(ctx context.Context) ([]models.Activity, error)
	FindByCode(ctx context.Context, activityCode string) (*models.Activity, error)
}

// ActivityService serves the activity reference catalog through the
// master-data cache.
type ActivityService struct {
	repo   activityStore
	cache  *CacheService
	logger *zap.Logger
}

// NewActivityService constructs an ActivityService.
func NewActivityService(repo activityStore, cache *CacheService, logger *zap.Logger) *ActivityService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ActivityService{repo: repo, cache: cache, logger: logger}
}

// List returns the active activity catalog.
func (s *ActivityService) List(ctx context.Context) ([]models.Activity, error) {
	return s.cached(ctx, "masterdata:activities", s.repo.ListActive)
}

// ListOutdoor returns the active outdoor subset.
func (s *ActivityService) ListOutdoor(ctx context.Context) ([]models.Activity, error) {
	return s.cached(ctx, "masterdata:activities:outdoor", s.repo.ListOutdoor)
}

func (s *ActivityService) cached(ctx context.Context, key string, load func(context.Context) ([]models.Activity, error)) ([]models.Activity, error) {
	var activities []models.Activity
	if s.cache != nil {
		if hit, _ := s.cache.Get(ctx, key, &activities); hit {
			return activities, nil
		}
	}

	activities, err := load(ctx)
	if err != nil {
		s.logger.Error("failed to list activities", zap.String("key", key), zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list activities")
	}
	if activities == nil {
		activities = []models.Activity{}
	}
	if s.cache != nil {
		_ = s.cache.Set(ctx, key, activities, 0)
	}
	return activities, nil
}
