package monitor

import (
	"testing"
	"time"

	"github.com/commitment-parties/agent/src/utils/config"
	"github.com/commitment-parties/agent/src/utils/model"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

func TestPollerTestSuite(t *testing.T) {
	suite.Run(t, new(PollerTestSuite))
}

type PollerTestSuite struct {
	suite.Suite
	config *config.Config
	poller *Poller
}

func (s *PollerTestSuite) SetupSuite() {
	s.config = config.Default()
	s.config.Monitor.GracePeriod = time.Hour
	s.poller = NewPoller(s.config, model.GoalFamilyCheckin, time.Minute)
}

func (s *PollerTestSuite) TestNoClosedDayBeforeStart() {
	pool := &model.Pool{DurationDays: 7}
	require.Equal(s.T(), 0, s.poller.latestClosedDay(pool, time.Now().Unix()))

	pool.ActualStartTime = time.Now().Unix() + 3600
	require.Equal(s.T(), 0, s.poller.latestClosedDay(pool, time.Now().Unix()))
}

func (s *PollerTestSuite) TestDayClosesOnlyAfterGracePeriod() {
	start := int64(1700000000)
	pool := &model.Pool{ActualStartTime: start, DurationDays: 7}

	// Day 1 window ends at start+86400, still open during it
	require.Equal(s.T(), 0, s.poller.latestClosedDay(pool, start+86400))

	// Closed only once the grace period elapsed too
	require.Equal(s.T(), 0, s.poller.latestClosedDay(pool, start+86400+1800))
	require.Equal(s.T(), 1, s.poller.latestClosedDay(pool, start+86400+3600))
}

func (s *PollerTestSuite) TestLatestClosedDayIsCappedAtDuration() {
	start := int64(1700000000)
	pool := &model.Pool{ActualStartTime: start, DurationDays: 3}

	// Long after the pool ended only DurationDays days exist
	require.Equal(s.T(), 3, s.poller.latestClosedDay(pool, start+86400*30))
}

func (s *PollerTestSuite) TestDayWindowMatchesClosedDays() {
	start := int64(1700000000)
	pool := &model.Pool{ActualStartTime: start, DurationDays: 7}

	from, to := pool.DayWindow(2)
	require.Equal(s.T(), start+86400, from)
	require.Equal(s.T(), start+2*86400, to)

	// The window reported for a closed day lies fully in the past
	now := to + 3600
	require.GreaterOrEqual(s.T(), s.poller.latestClosedDay(pool, now), 2)
}
