package scheduler

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/avrek/wb-radar/internal/models"
	"github.com/avrek/wb-radar/test/mocks"
)

func newTestScheduler(t *testing.T) (*Scheduler, *mocks.Comparator, *mocks.GroupRepository) {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cmp := mocks.NewComparator(t)
	groups := mocks.NewGroupRepository(t)

	return NewScheduler(logger, cmp, groups, 6*time.Hour), cmp, groups
}

func TestRun_RefreshesStaleGroups(t *testing.T) {
	sched, cmp, groups := newTestScheduler(t)

	stale := []models.ArticleGroup{
		{ID: "g1", UserID: 1, GroupType: models.GroupTypeComparison},
		{ID: "g2", UserID: 2, GroupType: models.GroupTypeComparison},
	}
	groups.On("ListStaleComparisonGroups", mock.Anything, mock.Anything).Return(stale, nil).Once()
	cmp.On("Compare", mock.Anything, "g1", int64(1), true).Return(&models.ComparisonResponse{GroupID: "g1"}, nil).Once()
	cmp.On("Compare", mock.Anything, "g2", int64(2), true).Return(&models.ComparisonResponse{GroupID: "g2"}, nil).Once()

	sched.run()
}

func TestRun_CutoffHonorsTTL(t *testing.T) {
	sched, _, groups := newTestScheduler(t)

	groups.On("ListStaleComparisonGroups", mock.Anything, mock.MatchedBy(func(cutoff time.Time) bool {
		expected := time.Now().UTC().Add(-6 * time.Hour)
		return cutoff.Sub(expected).Abs() < time.Minute
	})).Return(nil, nil).Once()

	sched.run()
}

func TestRun_ToleratesFailures(t *testing.T) {
	sched, cmp, groups := newTestScheduler(t)

	stale := []models.ArticleGroup{
		{ID: "g1", UserID: 1, GroupType: models.GroupTypeComparison},
		{ID: "g2", UserID: 2, GroupType: models.GroupTypeComparison},
	}
	groups.On("ListStaleComparisonGroups", mock.Anything, mock.Anything).Return(stale, nil).Once()
	// The first refresh fails; the sweep must still reach the second group.
	cmp.On("Compare", mock.Anything, "g1", int64(1), true).Return(nil, assert.AnError).Once()
	cmp.On("Compare", mock.Anything, "g2", int64(2), true).Return(&models.ComparisonResponse{GroupID: "g2"}, nil).Once()

	sched.run()
}

func TestRun_ListFailureAborts(t *testing.T) {
	sched, _, groups := newTestScheduler(t)

	groups.On("ListStaleComparisonGroups", mock.Anything, mock.Anything).Return(nil, assert.AnError).Once()

	// No Compare expectation: a listing failure must end the sweep.
	sched.run()
}

func TestStartStop(t *testing.T) {
	sched, _, _ := newTestScheduler(t)

	t.Run("error: invalid cron spec", func(t *testing.T) {
		require.Error(t, sched.Start("not a cron spec"))
	})

	t.Run("valid spec starts and stops", func(t *testing.T) {
		require.NoError(t, sched.Start("@every 1h"))
		sched.Stop()
	})
}
