package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/shubham1234-glitch/Timesheet-sub000/internal/models"
	appErrors "github.com/shubham1234-glitch/Timesheet-sub000/pkg/errors"
)

type memoryCacheRepo struct {
	values map[string][]byte
}

func (m *memoryCacheRepo) Get(ctx context.Context, key string, dest interface{}) error {
	raw, ok := m.values[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	return json.Unmarshal(raw, dest)
}

func (m *memoryCacheRepo) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if m.values == nil {
		m.values = make(map[string][]byte)
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.values[key] = raw
	return nil
}

func (m *memoryCacheRepo) DeleteByPattern(ctx context.Context, pattern string) error {
	m.values = make(map[string][]byte)
	return nil
}

type mockDashboardRepo struct {
	daily          []models.DailyHoursRow
	statusCounts   []models.StatusCountRow
	members        []models.MemberHoursRow
	teams          []models.TeamHoursRow
	pendingEntries int
	dailyCalls     int
}

func (m *mockDashboardRepo) DailyHours(ctx context.Context, userCode string, from, to time.Time) ([]models.DailyHoursRow, error) {
	m.dailyCalls++
	return m.daily, nil
}

func (m *mockDashboardRepo) StatusCounts(ctx context.Context, userCode, teamCode string, from, to time.Time) ([]models.StatusCountRow, error) {
	return m.statusCounts, nil
}

func (m *mockDashboardRepo) MemberHours(ctx context.Context, teamCode string, from, to time.Time) ([]models.MemberHoursRow, error) {
	return m.members, nil
}

func (m *mockDashboardRepo) TeamHours(ctx context.Context, from, to time.Time) ([]models.TeamHoursRow, error) {
	return m.teams, nil
}

func (m *mockDashboardRepo) CountPendingEntries(ctx context.Context, teamCode string) (int, error) {
	return m.pendingEntries, nil
}

type mockLeaveCounter struct {
	pending int
	days    []time.Time
}

func (m *mockLeaveCounter) CountPending(ctx context.Context, userCode, teamCode string) (int, error) {
	return m.pending, nil
}

func (m *mockLeaveCounter) ApprovedDays(ctx context.Context, userCode string, from, to time.Time) ([]time.Time, error) {
	return m.days, nil
}

type mockUserCounter struct {
	active int
}

func (m *mockUserCounter) CountActive(ctx context.Context, teamCode string) (int, error) {
	return m.active, nil
}

func TestDashboardServicePersonal(t *testing.T) {
	repo := &mockDashboardRepo{
		daily: []models.DailyHoursRow{
			{Day: time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC), TotalHours: 8, ApprovedHours: 8, EntryCount: 1},
			{Day: time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC), TotalHours: 6, ApprovedHours: 0, EntryCount: 1},
		},
		statusCounts: []models.StatusCountRow{{Status: models.StatusPending, Count: 1}},
	}
	leave := &mockLeaveCounter{pending: 2}
	svc := NewDashboardService(repo, leave, &mockUserCounter{}, nil, time.Minute, zap.NewNop())

	from := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 3, 8, 0, 0, 0, 0, time.UTC)
	resp, err := svc.Personal(context.Background(), from, to, employeeClaims())
	require.NoError(t, err)
	assert.Equal(t, 14.0, resp.TotalHours)
	assert.Equal(t, 8.0, resp.ApprovedHours)
	assert.Equal(t, 2, resp.PendingLeave)
	assert.Len(t, resp.Weeks, 1)
	assert.Nil(t, resp.Month)
}

func TestDashboardServicePersonalDefaultsToMonth(t *testing.T) {
	repo := &mockDashboardRepo{}
	svc := NewDashboardService(repo, &mockLeaveCounter{}, &mockUserCounter{}, nil, time.Minute, zap.NewNop())
	svc.now = func() time.Time { return time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC) }

	resp, err := svc.Personal(context.Background(), time.Time{}, time.Time{}, employeeClaims())
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), resp.FromDate)
	assert.Equal(t, time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC), resp.ToDate)
	require.NotNil(t, resp.Month)
	assert.Len(t, resp.Month.Cells, 42)
}

func TestDashboardServicePersonalServesCachedCopy(t *testing.T) {
	repo := &mockDashboardRepo{}
	cache := NewCacheService(&memoryCacheRepo{}, nil, time.Minute, zap.NewNop(), true)
	svc := NewDashboardService(repo, &mockLeaveCounter{}, &mockUserCounter{}, cache, time.Minute, zap.NewNop())

	from := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 3, 8, 0, 0, 0, 0, time.UTC)
	_, err := svc.Personal(context.Background(), from, to, employeeClaims())
	require.NoError(t, err)
	_, err = svc.Personal(context.Background(), from, to, employeeClaims())
	require.NoError(t, err)
	assert.Equal(t, 1, repo.dailyCalls)
}

func TestDashboardServiceTeamRequiresApprover(t *testing.T) {
	svc := NewDashboardService(&mockDashboardRepo{}, &mockLeaveCounter{}, &mockUserCounter{}, nil, time.Minute, zap.NewNop())

	_, err := svc.Team(context.Background(), "TEAM-A", time.Time{}, time.Time{}, employeeClaims())
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrForbidden.Code, appErrors.FromError(err).Code)
}

func TestDashboardServiceTeamDefaultsToOwnTeam(t *testing.T) {
	repo := &mockDashboardRepo{
		members:        []models.MemberHoursRow{{UserCode: "EMP001", FullName: "One", TotalHours: 20}},
		pendingEntries: 3,
	}
	svc := NewDashboardService(repo, &mockLeaveCounter{pending: 1}, &mockUserCounter{}, nil, time.Minute, zap.NewNop())
	svc.now = func() time.Time { return time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC) }

	resp, err := svc.Team(context.Background(), "", time.Time{}, time.Time{}, adminClaims())
	require.NoError(t, err)
	assert.Equal(t, "TEAM-A", resp.TeamCode)
	assert.Equal(t, 3, resp.PendingEntries)
	assert.Equal(t, 1, resp.PendingLeave)
	assert.Len(t, resp.Members, 1)
}

func TestDashboardServiceSuperAdminOnly(t *testing.T) {
	svc := NewDashboardService(&mockDashboardRepo{}, &mockLeaveCounter{}, &mockUserCounter{}, nil, time.Minute, zap.NewNop())

	_, err := svc.SuperAdmin(context.Background(), time.Time{}, time.Time{}, adminClaims())
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrForbidden.Code, appErrors.FromError(err).Code)
}

func TestDashboardServiceSuperAdmin(t *testing.T) {
	repo := &mockDashboardRepo{teams: []models.TeamHoursRow{{TeamCode: "TEAM-A", MemberCount: 4, TotalHours: 120}}}
	svc := NewDashboardService(repo, &mockLeaveCounter{}, &mockUserCounter{active: 17}, nil, time.Minute, zap.NewNop())
	svc.now = func() time.Time { return time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC) }

	claims := adminClaims()
	claims.Role = models.RoleSuperAdmin
	resp, err := svc.SuperAdmin(context.Background(), time.Time{}, time.Time{}, claims)
	require.NoError(t, err)
	assert.Equal(t, 17, resp.ActiveUsers)
	assert.Len(t, resp.Teams, 1)
}
