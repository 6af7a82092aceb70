package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/shubham1234-glitch/Timesheet-sub000/internal/dto"
	"github.com/shubham1234-glitch/Timesheet-sub000/internal/models"
	appErrors "github.com/shubham1234-glitch/Timesheet-sub000/pkg/errors"
)

type dashboardStore interface {
	DailyHours(ctx context.Context, userCode string, from, to time.Time) ([]models.DailyHoursRow, error)
	StatusCounts(ctx context.Context, userCode, teamCode string, from, to time.Time) ([]models.StatusCountRow, error)
	MemberHours(ctx context.Context, teamCode string, from, to time.Time) ([]models.MemberHoursRow, error)
	TeamHours(ctx context.Context, from, to time.Time) ([]models.TeamHoursRow, error)
	CountPendingEntries(ctx context.Context, teamCode string) (int, error)
}

type leavePendingCounter interface {
	CountPending(ctx context.Context, userCode, teamCode string) (int, error)
	ApprovedDays(ctx context.Context, userCode string, from, to time.Time) ([]time.Time, error)
}

type activeUserCounter interface {
	CountActive(ctx context.Context, teamCode string) (int, error)
}

// DashboardService aggregates timesheet and leave data into the personal,
// team, and organization-wide dashboard payloads. Results are cached.
type DashboardService struct {
	repo     dashboardStore
	leave    leavePendingCounter
	users    activeUserCounter
	cache    *CacheService
	cacheTTL time.Duration
	logger   *zap.Logger
	now      func() time.Time
}

// NewDashboardService builds a DashboardService.
func NewDashboardService(repo dashboardStore, leave leavePendingCounter, users activeUserCounter, cache *CacheService, cacheTTL time.Duration, logger *zap.Logger) *DashboardService {
	if cacheTTL <= 0 {
		cacheTTL = 5 * time.Minute
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardService{
		repo:     repo,
		leave:    leave,
		users:    users,
		cache:    cache,
		cacheTTL: cacheTTL,
		logger:   logger,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Personal builds the caller's dashboard over the inclusive window. A zero
// window defaults to the current calendar month, including the month grid.
func (s *DashboardService) Personal(ctx context.Context, from, to time.Time, claims *models.JWTClaims) (*dto.DashboardResponse, error) {
	if claims == nil {
		return nil, appErrors.ErrUnauthorized
	}

	withMonth := from.IsZero() && to.IsZero()
	from, to = s.resolveWindow(from, to)
	if to.Before(from) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "to_date must not precede from_date")
	}

	cacheKey := fmt.Sprintf("dashboard:personal:%s:%s:%s", claims.UserCode, from.Format(entryDateLayout), to.Format(entryDateLayout))
	var cached dto.DashboardResponse
	if s.cache != nil {
		if hit, _ := s.cache.Get(ctx, cacheKey, &cached); hit {
			return &cached, nil
		}
	}

	daily, err := s.repo.DailyHours(ctx, claims.UserCode, from, to)
	if err != nil {
		s.logger.Error("failed to load daily hours", zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to build dashboard")
	}
	statusCounts, err := s.repo.StatusCounts(ctx, claims.UserCode, "", from, to)
	if err != nil {
		s.logger.Error("failed to load status counts", zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to build dashboard")
	}
	leaveDays, err := s.leave.ApprovedDays(ctx, claims.UserCode, from, to)
	if err != nil {
		s.logger.Error("failed to load approved leave days", zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to build dashboard")
	}
	pendingLeave, err := s.leave.CountPending(ctx, claims.UserCode, "")
	if err != nil {
		s.logger.Error("failed to count pending leave", zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to build dashboard")
	}

	response := &dto.DashboardResponse{
		UserCode:     claims.UserCode,
		FromDate:     from,
		ToDate:       to,
		StatusCounts: emptyStatusCounts(statusCounts),
		DailyHours:   daily,
		Weeks:        BuildWeeks(from, to, daily, leaveDays),
		PendingLeave: pendingLeave,
	}
	for _, row := range daily {
		response.TotalHours += row.TotalHours
		response.ApprovedHours += row.ApprovedHours
	}
	if withMonth {
		grid := BuildMonthGrid(from.Year(), from.Month(), daily, leaveDays)
		response.Month = &grid
	}

	if s.cache != nil {
		_ = s.cache.Set(ctx, cacheKey, response, s.cacheTTL)
	}
	return response, nil
}

// Team builds the approver dashboard for one team. Non-approvers are
// rejected; approvers without an explicit team see their own.
func (s *DashboardService) Team(ctx context.Context, teamCode string, from, to time.Time, claims *models.JWTClaims) (*dto.TeamDashboardResponse, error) {
	if claims == nil {
		return nil, appErrors.ErrUnauthorized
	}
	if !claims.Role.IsApprover() {
		return nil, appErrors.ErrForbidden
	}
	if teamCode == "" {
		teamCode = claims.TeamCode
	}
	from, to = s.resolveWindow(from, to)
	if to.Before(from) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "to_date must not precede from_date")
	}

	cacheKey := fmt.Sprintf("dashboard:team:%s:%s:%s", teamCode, from.Format(entryDateLayout), to.Format(entryDateLayout))
	var cached dto.TeamDashboardResponse
	if s.cache != nil {
		if hit, _ := s.cache.Get(ctx, cacheKey, &cached); hit {
			return &cached, nil
		}
	}

	members, err := s.repo.MemberHours(ctx, teamCode, from, to)
	if err != nil {
		s.logger.Error("failed to load member hours", zap.String("team_code", teamCode), zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to build team dashboard")
	}
	statusCounts, err := s.repo.StatusCounts(ctx, "", teamCode, from, to)
	if err != nil {
		s.logger.Error("failed to load status counts", zap.String("team_code", teamCode), zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to build team dashboard")
	}
	pendingLeave, err := s.leave.CountPending(ctx, "", teamCode)
	if err != nil {
		s.logger.Error("failed to count pending leave", zap.String("team_code", teamCode), zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to build team dashboard")
	}
	pendingEntries, err := s.repo.CountPendingEntries(ctx, teamCode)
	if err != nil {
		s.logger.Error("failed to count pending entries", zap.String("team_code", teamCode), zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to build team dashboard")
	}

	response := &dto.TeamDashboardResponse{
		TeamCode:       teamCode,
		FromDate:       from,
		ToDate:         to,
		Members:        members,
		StatusCounts:   emptyStatusCounts(statusCounts),
		PendingLeave:   pendingLeave,
		PendingEntries: pendingEntries,
	}
	if s.cache != nil {
		_ = s.cache.Set(ctx, cacheKey, response, s.cacheTTL)
	}
	return response, nil
}

// SuperAdmin builds the organization-wide rollup. SUPERADMIN only.
func (s *DashboardService) SuperAdmin(ctx context.Context, from, to time.Time, claims *models.JWTClaims) (*dto.SuperAdminDashboardResponse, error) {
	if claims == nil {
		return nil, appErrors.ErrUnauthorized
	}
	if claims.Role != models.RoleSuperAdmin {
		return nil, appErrors.ErrForbidden
	}
	from, to = s.resolveWindow(from, to)
	if to.Before(from) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "to_date must not precede from_date")
	}

	cacheKey := fmt.Sprintf("dashboard:org:%s:%s", from.Format(entryDateLayout), to.Format(entryDateLayout))
	var cached dto.SuperAdminDashboardResponse
	if s.cache != nil {
		if hit, _ := s.cache.Get(ctx, cacheKey, &cached); hit {
			return &cached, nil
		}
	}

	teams, err := s.repo.TeamHours(ctx, from, to)
	if err != nil {
		s.logger.Error("failed to load team hours", zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to build dashboard")
	}
	statusCounts, err := s.repo.StatusCounts(ctx, "", "", from, to)
	if err != nil {
		s.logger.Error("failed to load status counts", zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to build dashboard")
	}
	activeUsers, err := s.users.CountActive(ctx, "")
	if err != nil {
		s.logger.Error("failed to count active users", zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to build dashboard")
	}

	response := &dto.SuperAdminDashboardResponse{
		FromDate:     from,
		ToDate:       to,
		Teams:        teams,
		StatusCounts: emptyStatusCounts(statusCounts),
		ActiveUsers:  activeUsers,
	}
	if s.cache != nil {
		_ = s.cache.Set(ctx, cacheKey, response, s.cacheTTL)
	}
	return response, nil
}

// resolveWindow defaults a zero window to the current calendar month.
func (s *DashboardService) resolveWindow(from, to time.Time) (time.Time, time.Time) {
	if from.IsZero() && to.IsZero() {
		now := s.now()
		first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
		last := first.AddDate(0, 1, -1)
		return first, last
	}
	if from.IsZero() {
		from = to.AddDate(0, 0, -30)
	}
	if to.IsZero() {
		to = from.AddDate(0, 0, 30)
	}
	return truncateDay(from), truncateDay(to)
}

func emptyStatusCounts(rows []models.StatusCountRow) []models.StatusCountRow {
	if rows == nil {
		return []models.StatusCountRow{}
	}
	return rows
}
