package scheduler

import (
	"fmt"
	"log"
	"time"

	"github.com/go-co-op/gocron"
)

// Resetter is the single ledger entry point the daily job invokes
type Resetter interface {
	ResetAll() int
}

// Scheduler fires the daily counter reset at a configured wall-clock time.
// Occurrences that pass while the process is down are skipped: the reset is
// idempotent and a missed zeroing is recovered by the next one.
type Scheduler struct {
	scheduler *gocron.Scheduler
	resetter  Resetter
	hour      int
	minute    int
}

// New creates a scheduler that will reset all users daily at hour:minute
// local time
func New(hour, minute int, resetter Resetter) (*Scheduler, error) {
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return nil, fmt.Errorf("invalid reset time %02d:%02d", hour, minute)
	}
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.Local),
		resetter:  resetter,
		hour:      hour,
		minute:    minute,
	}, nil
}

// Start registers the daily job and runs the scheduler asynchronously. The
// caller's goroutine is never blocked; gocron owns the timer and guarantees
// a single firing per calendar occurrence.
func (s *Scheduler) Start() error {
	_, err := s.scheduler.Every(1).Day().At(AtString(s.hour, s.minute)).Do(s.runReset)
	if err != nil {
		return fmt.Errorf("failed to schedule daily reset: %v", err)
	}
	s.scheduler.StartAsync()
	log.Printf("Daily reset scheduled at %s", AtString(s.hour, s.minute))
	return nil
}

// Stop terminates the scheduler and its pending jobs
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}

// JobCount reports the number of registered jobs
func (s *Scheduler) JobCount() int {
	return len(s.scheduler.Jobs())
}

func (s *Scheduler) runReset() {
	n := s.resetter.ResetAll()
	log.Printf("✅ Daily reset done, %d user(s) cleared", n)
}

// AtString renders an hour/minute pair in the HH:MM form gocron expects
func AtString(hour, minute int) string {
	return fmt.Sprintf("%02d:%02d", hour, minute)
}

// ParseTriggerTime parses a "HH:MM" trigger time from configuration
func ParseTriggerTime(value string) (hour, minute int, err error) {
	if _, err = fmt.Sscanf(value, "%d:%d", &hour, &minute); err != nil {
		return 0, 0, fmt.Errorf("invalid trigger time %q: %v", value, err)
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("trigger time %q out of range", value)
	}
	return hour, minute, nil
}

// NextTrigger returns the first hour:minute occurrence strictly after now.
// Exposed for tests; gocron performs the equivalent computation internally.
func NextTrigger(now time.Time, hour, minute int) time.Time {
	next := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location())
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}
