package ledger

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/example/checkinbot/pkg/models"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func (c *fakeClock) Rewind(d time.Duration) {
	c.Advance(-d)
}

func newTestLedger(clock Clock) *Ledger {
	return New(clock, "zh", []string{"zh", "en", "km"})
}

func TestEatBreakScenario(t *testing.T) {
	clock := newFakeClock()
	l := newTestLedger(clock)

	res := l.StartActivity(1, models.Eat)
	require.Equal(t, 1, res.Count)
	require.Equal(t, clock.Now(), res.StartTime)

	clock.Advance(30 * time.Minute)
	stop := l.StopLatest(1)
	require.NotNil(t, stop)
	require.Equal(t, models.Eat, stop.Kind)
	require.Equal(t, 30*time.Minute, stop.Elapsed)

	sum := l.DailySummary(1)
	require.Equal(t, 1, sum.Counts[models.Eat])
	require.Equal(t, 30*time.Minute, sum.Durations[models.Eat])
	require.Equal(t, 30*time.Minute, sum.GrandTotal)
}

func TestGrandTotalConservation(t *testing.T) {
	clock := newFakeClock()
	l := newTestLedger(clock)

	var settled time.Duration
	steps := []struct {
		kind    models.ActivityKind
		advance time.Duration
	}{
		{models.Work, 10 * time.Minute},
		{models.Smoke, 5 * time.Minute},
		{models.Eat, 45 * time.Minute},
		{models.Toilet, 3 * time.Minute},
		{models.Work, 2 * time.Hour},
	}
	for _, step := range steps {
		l.StartActivity(7, step.kind)
		clock.Advance(step.advance)
		stop := l.StopActivity(7, step.kind)
		require.NotNil(t, stop)
		require.Equal(t, step.advance, stop.Elapsed)
		settled += stop.Elapsed
	}

	sum := l.DailySummary(7)
	require.Equal(t, settled, sum.GrandTotal)
}

func TestDoubleStopIsNoOp(t *testing.T) {
	clock := newFakeClock()
	l := newTestLedger(clock)

	l.StartActivity(1, models.Smoke)
	clock.Advance(time.Minute)
	require.NotNil(t, l.StopLatest(1))
	require.Nil(t, l.StopLatest(1))

	sum := l.DailySummary(1)
	require.Equal(t, time.Minute, sum.GrandTotal)
}

func TestStopWithNothingOpenForNewUser(t *testing.T) {
	l := newTestLedger(newFakeClock())
	require.Nil(t, l.StopLatest(99))
	require.Nil(t, l.StopActivity(99, models.Work))
}

func TestWorkAndBreakOpenConcurrently(t *testing.T) {
	clock := newFakeClock()
	l := newTestLedger(clock)

	l.StartActivity(1, models.Work)
	clock.Advance(time.Hour)
	l.StartActivity(1, models.Eat)
	clock.Advance(20 * time.Minute)

	// Checking out settles only the work slot, the meal keeps running
	stop := l.StopActivity(1, models.Work)
	require.NotNil(t, stop)
	require.Equal(t, models.Work, stop.Kind)
	require.Equal(t, time.Hour+20*time.Minute, stop.Elapsed)
	require.True(t, l.HasOpenActivity(1))

	clock.Advance(10 * time.Minute)
	stop = l.StopLatest(1)
	require.NotNil(t, stop)
	require.Equal(t, models.Eat, stop.Kind)
	require.Equal(t, 30*time.Minute, stop.Elapsed)
	require.False(t, l.HasOpenActivity(1))
}

func TestBackToDeskSettlesMostRecent(t *testing.T) {
	clock := newFakeClock()
	l := newTestLedger(clock)

	l.StartActivity(1, models.Work)
	clock.Advance(5 * time.Minute)
	l.StartActivity(1, models.Smoke)
	clock.Advance(7 * time.Minute)

	stop := l.StopLatest(1)
	require.NotNil(t, stop)
	require.Equal(t, models.Smoke, stop.Kind)
	require.Equal(t, 7*time.Minute, stop.Elapsed)
}

func TestRestartOpenKindResetsStartTime(t *testing.T) {
	clock := newFakeClock()
	l := newTestLedger(clock)

	l.StartActivity(1, models.Eat)
	clock.Advance(10 * time.Minute)
	res := l.StartActivity(1, models.Eat)
	require.Equal(t, 2, res.Count)

	clock.Advance(5 * time.Minute)
	stop := l.StopLatest(1)
	require.NotNil(t, stop)
	// Only the time since the restart counts
	require.Equal(t, 5*time.Minute, stop.Elapsed)
	require.Equal(t, 2, l.DailySummary(1).Counts[models.Eat])
}

func TestElapsedClampedAgainstClockSkew(t *testing.T) {
	clock := newFakeClock()
	l := newTestLedger(clock)

	l.StartActivity(1, models.Toilet)
	clock.Rewind(time.Minute)
	stop := l.StopLatest(1)
	require.NotNil(t, stop)
	require.Equal(t, time.Duration(0), stop.Elapsed)
	require.Equal(t, time.Duration(0), l.DailySummary(1).GrandTotal)
}

func TestResetAllClearsEveryUser(t *testing.T) {
	clock := newFakeClock()
	l := newTestLedger(clock)

	// User 1 has settled time, user 2 has a still-open work slot
	l.StartActivity(1, models.Eat)
	clock.Advance(15 * time.Minute)
	l.StopLatest(1)
	l.StartActivity(2, models.Work)

	require.Equal(t, 2, l.ResetAll())

	for _, userID := range []int64{1, 2} {
		sum := l.DailySummary(userID)
		require.Empty(t, sum.Counts)
		require.Empty(t, sum.Durations)
		require.Zero(t, sum.GrandTotal)
		require.False(t, l.HasOpenActivity(userID))
	}

	// The open work slot was dropped, not carried over: stopping now is a no-op
	require.Nil(t, l.StopActivity(2, models.Work))
}

func TestResetUserPreservesLanguage(t *testing.T) {
	l := newTestLedger(newFakeClock())

	require.NoError(t, l.SetLanguage(1, "km"))
	l.StartActivity(1, models.Smoke)
	l.ResetUser(1)

	require.Equal(t, "km", l.Language(1))
	require.Zero(t, l.DailySummary(1).GrandTotal)
}

func TestSetLanguageRejectsUnsupportedTag(t *testing.T) {
	l := newTestLedger(newFakeClock())

	require.NoError(t, l.SetLanguage(1, "en"))
	err := l.SetLanguage(1, "fr")
	require.ErrorIs(t, err, ErrInvalidLanguage)
	require.Equal(t, "en", l.Language(1))
}

func TestNewUserDefaults(t *testing.T) {
	l := newTestLedger(newFakeClock())

	l.EnsureUser(42)
	require.Equal(t, "zh", l.Language(42))
	sum := l.DailySummary(42)
	require.Empty(t, sum.Counts)
	require.Zero(t, sum.GrandTotal)
	require.ElementsMatch(t, []int64{42}, l.UserIDs())
}

func TestConcurrentUsersDoNotInterfere(t *testing.T) {
	clock := newFakeClock()
	l := newTestLedger(clock)

	// Deterministic sequence for user A
	l.StartActivity(1, models.Work)
	clock.Advance(time.Hour)

	// Noisy neighbors hammer the ledger while A's slot is open
	var wg sync.WaitGroup
	for userID := int64(2); userID <= 9; userID++ {
		wg.Add(1)
		go func(userID int64) {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				l.StartActivity(userID, models.Smoke)
				l.StopLatest(userID)
				l.DailySummary(userID)
			}
		}(userID)
	}
	wg.Wait()

	stop := l.StopActivity(1, models.Work)
	require.NotNil(t, stop)
	require.Equal(t, time.Hour, stop.Elapsed)

	sum := l.DailySummary(1)
	require.Equal(t, 1, sum.Counts[models.Work])
	require.Equal(t, time.Hour, sum.GrandTotal)

	for userID := int64(2); userID <= 9; userID++ {
		require.Equal(t, 100, l.DailySummary(userID).Counts[models.Smoke])
	}
}
