package ledger

import (
	"errors"
	"sync"
	"time"

	"github.com/example/checkinbot/pkg/models"
)

// ErrInvalidLanguage is returned by SetLanguage for an unsupported tag
var ErrInvalidLanguage = errors.New("unsupported language")

// openSlot is one started-but-not-settled activity. A user holds at most one
// slot per kind; slots keep insertion order so "back to desk" can settle the
// most recent one.
type openSlot struct {
	kind  models.ActivityKind
	start time.Time
}

type userRecord struct {
	mu        sync.Mutex
	counts    map[models.ActivityKind]int
	durations map[models.ActivityKind]time.Duration
	open      []openSlot
	lang      string
}

func (u *userRecord) findSlot(kind models.ActivityKind) int {
	for i, slot := range u.open {
		if slot.kind == kind {
			return i
		}
	}
	return -1
}

// Ledger owns all per-user activity state. All operations are in-memory and
// return immediately; per-user mutations are serialized by the record mutex,
// and ResetAll takes the table write lock so no reader observes a half-reset
// table.
type Ledger struct {
	mu    sync.RWMutex
	users map[int64]*userRecord

	clock       Clock
	defaultLang string
	supported   map[string]bool
}

// New creates an empty ledger. The default language must be one of the
// supported tags; the caller validates configuration before constructing.
func New(clock Clock, defaultLang string, supported []string) *Ledger {
	set := make(map[string]bool, len(supported))
	for _, lang := range supported {
		set[lang] = true
	}
	return &Ledger{
		users:       make(map[int64]*userRecord),
		clock:       clock,
		defaultLang: defaultLang,
		supported:   set,
	}
}

func newUserRecord(lang string) *userRecord {
	return &userRecord{
		counts:    make(map[models.ActivityKind]int),
		durations: make(map[models.ActivityKind]time.Duration),
		lang:      lang,
	}
}

// getOrCreate returns the record for userID, creating a default one if
// needed. Callers must not hold the table lock.
func (l *Ledger) getOrCreate(userID int64) *userRecord {
	l.mu.RLock()
	rec, ok := l.users[userID]
	l.mu.RUnlock()
	if ok {
		return rec
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if rec, ok = l.users[userID]; ok {
		return rec
	}
	rec = newUserRecord(l.defaultLang)
	l.users[userID] = rec
	return rec
}

// EnsureUser creates a default record for userID if none exists. Idempotent.
func (l *Ledger) EnsureUser(userID int64) {
	l.getOrCreate(userID)
}

// StartActivity increments the day's count for kind and opens (or restarts)
// its slot. Starting a kind that is already open resets the slot's start time
// in place; other open slots are untouched, so work and a break can run at
// the same time.
func (l *Ledger) StartActivity(userID int64, kind models.ActivityKind) models.StartResult {
	now := l.clock.Now()
	rec := l.getOrCreate(userID)

	l.mu.RLock()
	defer l.mu.RUnlock()
	rec.mu.Lock()
	defer rec.mu.Unlock()

	rec.counts[kind]++
	if i := rec.findSlot(kind); i >= 0 {
		rec.open[i].start = now
	} else {
		rec.open = append(rec.open, openSlot{kind: kind, start: now})
	}

	return models.StartResult{
		Kind:      kind,
		Count:     rec.counts[kind],
		StartTime: now,
	}
}

// StopActivity settles the open slot for kind, adding the elapsed time to the
// day's total. Returns nil if that kind is not open; stopping twice in a row
// is a defined no-op, never an error.
func (l *Ledger) StopActivity(userID int64, kind models.ActivityKind) *models.StopResult {
	now := l.clock.Now()
	rec := l.getOrCreate(userID)

	l.mu.RLock()
	defer l.mu.RUnlock()
	rec.mu.Lock()
	defer rec.mu.Unlock()

	i := rec.findSlot(kind)
	if i < 0 {
		return nil
	}
	return rec.settleSlot(i, now)
}

// StopLatest settles the most recently started open slot, whatever its kind.
// This backs the generic "back to desk" action. Returns nil if nothing is
// open.
func (l *Ledger) StopLatest(userID int64) *models.StopResult {
	now := l.clock.Now()
	rec := l.getOrCreate(userID)

	l.mu.RLock()
	defer l.mu.RUnlock()
	rec.mu.Lock()
	defer rec.mu.Unlock()

	if len(rec.open) == 0 {
		return nil
	}
	return rec.settleSlot(len(rec.open)-1, now)
}

// settleSlot removes the slot at index i and folds its elapsed time into the
// day's durations. Caller holds rec.mu. Elapsed is clamped to zero so a
// backwards clock step can never subtract time.
func (u *userRecord) settleSlot(i int, now time.Time) *models.StopResult {
	slot := u.open[i]
	u.open = append(u.open[:i], u.open[i+1:]...)

	elapsed := now.Sub(slot.start)
	if elapsed < 0 {
		elapsed = 0
	}
	u.durations[slot.kind] += elapsed

	var grand time.Duration
	for _, d := range u.durations {
		grand += d
	}

	return &models.StopResult{
		Kind:         slot.kind,
		Elapsed:      elapsed,
		TotalForKind: u.durations[slot.kind],
		GrandTotal:   grand,
	}
}

// DailySummary returns a snapshot of the user's counts and durations. Pure
// read; the returned maps are copies.
func (l *Ledger) DailySummary(userID int64) models.Summary {
	rec := l.getOrCreate(userID)

	l.mu.RLock()
	defer l.mu.RUnlock()
	rec.mu.Lock()
	defer rec.mu.Unlock()

	summary := models.Summary{
		Counts:    make(map[models.ActivityKind]int, len(rec.counts)),
		Durations: make(map[models.ActivityKind]time.Duration, len(rec.durations)),
	}
	for kind, n := range rec.counts {
		summary.Counts[kind] = n
	}
	for kind, d := range rec.durations {
		summary.Durations[kind] = d
		summary.GrandTotal += d
	}
	return summary
}

// HasOpenActivity reports whether the user has any unsettled slot
func (l *Ledger) HasOpenActivity(userID int64) bool {
	rec := l.getOrCreate(userID)

	l.mu.RLock()
	defer l.mu.RUnlock()
	rec.mu.Lock()
	defer rec.mu.Unlock()
	return len(rec.open) > 0
}

// ResetUser zeroes the user's counts and durations and drops any open slots.
// The language preference survives the reset.
func (l *Ledger) ResetUser(userID int64) {
	rec := l.getOrCreate(userID)

	l.mu.RLock()
	defer l.mu.RUnlock()
	rec.mu.Lock()
	defer rec.mu.Unlock()
	rec.reset()
}

func (u *userRecord) reset() {
	u.counts = make(map[models.ActivityKind]int)
	u.durations = make(map[models.ActivityKind]time.Duration)
	u.open = nil
}

// ResetAll zeroes every known user for the new accounting day. It holds the
// table write lock for the whole sweep, so concurrent reads and writes wait
// and never see a mix of pre- and post-reset state. Returns the number of
// users reset.
func (l *Ledger) ResetAll() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, rec := range l.users {
		rec.mu.Lock()
		rec.reset()
		rec.mu.Unlock()
	}
	return len(l.users)
}

// UserIDs returns the known user identifiers in unspecified order
func (l *Ledger) UserIDs() []int64 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	ids := make([]int64, 0, len(l.users))
	for id := range l.users {
		ids = append(ids, id)
	}
	return ids
}

// SetLanguage stores the user's language preference. Fails with
// ErrInvalidLanguage when lang is not in the supported set; the stored
// preference is left unchanged in that case.
func (l *Ledger) SetLanguage(userID int64, lang string) error {
	if !l.supported[lang] {
		return ErrInvalidLanguage
	}
	rec := l.getOrCreate(userID)

	l.mu.RLock()
	defer l.mu.RUnlock()
	rec.mu.Lock()
	defer rec.mu.Unlock()
	rec.lang = lang
	return nil
}

// Language returns the user's language preference, creating the record with
// the default language if the user is new.
func (l *Ledger) Language(userID int64) string {
	rec := l.getOrCreate(userID)

	l.mu.RLock()
	defer l.mu.RUnlock()
	rec.mu.Lock()
	defer rec.mu.Unlock()
	return rec.lang
}
