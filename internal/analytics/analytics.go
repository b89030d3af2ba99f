// Package analytics keeps the completion counts and the weekday session
// counter shown on the analytics view.
package analytics

import (
	"fmt"
	"time"

	"github.com/sadopc/focusboard/internal/store"
)

// Weekday labels in counter order.
var Weekdays = [7]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// WeekdayIndex maps t to its Monday-first slot.
func WeekdayIndex(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

// Week returns the weekday labels and counts starting from Sunday when
// sundayFirst is set, Monday otherwise. The stored order never changes.
func (s Snapshot) Week(sundayFirst bool) (labels [7]string, counts [7]int) {
	if !sundayFirst {
		return Weekdays, s.Productivity
	}
	for i := range labels {
		j := (i + 6) % 7
		labels[i], counts[i] = Weekdays[j], s.Productivity[j]
	}
	return labels, counts
}

type Completion struct {
	Completed int `json:"completed"`
	Pending   int `json:"pending"`
}

// Snapshot is the persisted chart cache.
type Snapshot struct {
	TaskCompletion Completion `json:"taskCompletion"`
	Productivity   [7]int     `json:"productivity"`
}

// Session is one completed work interval.
type Session struct {
	CompletedAt time.Time `json:"completedAt"`
	Minutes     int       `json:"minutes"`
}

type Persister interface {
	Load(key string, v any) (bool, error)
	Save(key string, v any) error
}

type Aggregator struct {
	persist  Persister
	loc      *time.Location
	snap     Snapshot
	sessions []Session
}

type Option func(*Aggregator)

// WithLocation sets the zone used to bucket sessions by weekday.
func WithLocation(loc *time.Location) Option {
	return func(a *Aggregator) { a.loc = loc }
}

func New(p Persister, opts ...Option) *Aggregator {
	a := &Aggregator{persist: p, loc: time.Local}
	for _, o := range opts {
		o(a)
	}
	return a
}

// Load reads the chart cache and the session log. A missing cache is
// rebuilt from the log.
func (a *Aggregator) Load() error {
	var sessions []Session
	logged, err := a.persist.Load(store.KeySessions, &sessions)
	if err != nil {
		return fmt.Errorf("load sessions: %w", err)
	}
	var snap Snapshot
	ok, err := a.persist.Load(store.KeyChart, &snap)
	if err != nil {
		return fmt.Errorf("load chart data: %w", err)
	}
	a.sessions = sessions
	if ok {
		a.snap = snap
	} else {
		a.Rebuild(sessions)
	}
	for i := range a.snap.Productivity {
		if a.snap.Productivity[i] < 0 {
			a.snap.Productivity[i] = 0
		}
	}
	// The session log wins over a counter left behind by a partial write.
	if logged && a.TotalSessions() != len(sessions) {
		a.Rebuild(sessions)
	}
	return nil
}

// UpdateTaskCompletion records the current completed/total task counts.
func (a *Aggregator) UpdateTaskCompletion(completed, total int) error {
	pending := total - completed
	if pending < 0 {
		pending = 0
	}
	a.snap.TaskCompletion = Completion{Completed: completed, Pending: pending}
	return a.saveChart()
}

// RecordWorkSession bumps the weekday slot of s and appends it to the log.
func (a *Aggregator) RecordWorkSession(s Session) error {
	a.snap.Productivity[WeekdayIndex(s.CompletedAt.In(a.loc))]++
	a.sessions = append(a.sessions, Session{CompletedAt: s.CompletedAt.UTC(), Minutes: s.Minutes})

	if err := a.persist.Save(store.KeySessions, a.sessions); err != nil {
		return fmt.Errorf("persist sessions: %w", err)
	}
	return a.saveChart()
}

// Rebuild recomputes the weekday counter from session records.
func (a *Aggregator) Rebuild(sessions []Session) {
	var counter [7]int
	for _, s := range sessions {
		counter[WeekdayIndex(s.CompletedAt.In(a.loc))]++
	}
	a.snap.Productivity = counter
}

func (a *Aggregator) saveChart() error {
	if err := a.persist.Save(store.KeyChart, a.snap); err != nil {
		return fmt.Errorf("persist chart data: %w", err)
	}
	return nil
}

func (a *Aggregator) Snapshot() Snapshot { return a.snap }

// Sessions returns a copy of the session log.
func (a *Aggregator) Sessions() []Session {
	out := make([]Session, len(a.sessions))
	copy(out, a.sessions)
	return out
}

// TotalSessions sums the weekday counter.
func (a *Aggregator) TotalSessions() int {
	n := 0
	for _, v := range a.snap.Productivity {
		n += v
	}
	return n
}

// CompletionRate is the completed share of all tasks in percent.
func (a *Aggregator) CompletionRate() float64 {
	c := a.snap.TaskCompletion
	return Rate(c.Completed, c.Completed+c.Pending)
}

func (a *Aggregator) Trend() Trend {
	return TrendOf(a.CompletionRate())
}

// Rate returns part/total in percent, 0 when total is 0.
func Rate(part, total int) float64 {
	if total <= 0 {
		return 0
	}
	return float64(part) / float64(total) * 100
}

type Trend string

const (
	TrendIncreasing Trend = "increasing"
	TrendStable     Trend = "stable"
	TrendDecreasing Trend = "decreasing"
)

// TrendOf classifies a completion rate. The thresholds are inclusive.
func TrendOf(rate float64) Trend {
	switch {
	case rate >= 70:
		return TrendIncreasing
	case rate >= 40:
		return TrendStable
	default:
		return TrendDecreasing
	}
}

func (t Trend) Emoji() string {
	switch t {
	case TrendIncreasing:
		return "📈"
	case TrendStable:
		return "📊"
	}
	return "📉"
}

func (t Trend) Message() string {
	switch t {
	case TrendIncreasing:
		return "Great job! Keep up the momentum!"
	case TrendStable:
		return "Maintaining steady progress. Consider setting more challenging goals."
	case TrendDecreasing:
		return "Try breaking tasks into smaller, more manageable steps."
	}
	return ""
}
