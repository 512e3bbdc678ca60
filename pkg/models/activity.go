package models

import (
	"time"
)

// ActivityKind represents a timed state a user can be in
type ActivityKind string

const (
	// Work represents time at the desk between check-in and check-out
	Work ActivityKind = "work"
	// Eat represents a meal break
	Eat ActivityKind = "eat"
	// Toilet represents a toilet break
	Toilet ActivityKind = "toilet"
	// Smoke represents a smoke break
	Smoke ActivityKind = "smoke"
)

// Kinds lists every activity kind in display order
var Kinds = []ActivityKind{Work, Eat, Toilet, Smoke}

// BreakKinds lists the non-work kinds, used for break-total aggregation
var BreakKinds = []ActivityKind{Eat, Toilet, Smoke}

// StartResult is returned by the ledger when an activity is started
type StartResult struct {
	Kind      ActivityKind
	Count     int       // how many times this kind has started today
	StartTime time.Time
}

// StopResult is returned by the ledger when an open activity is settled
type StopResult struct {
	Kind         ActivityKind
	Elapsed      time.Duration
	TotalForKind time.Duration // accumulated duration for Kind today
	GrandTotal   time.Duration // accumulated duration across all kinds today
}

// Summary is a read-only snapshot of a user's accounting day
type Summary struct {
	Counts     map[ActivityKind]int
	Durations  map[ActivityKind]time.Duration
	GrandTotal time.Duration
}

// BreakTotal returns the summed duration of all non-work kinds
func (s Summary) BreakTotal() time.Duration {
	var total time.Duration
	for _, kind := range BreakKinds {
		total += s.Durations[kind]
	}
	return total
}
