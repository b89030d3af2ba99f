// Package timer implements the work/break countdown driven by a one-second
// tick from the host.
package timer

import (
	"fmt"
	"time"
)

type State int

const (
	Idle State = iota
	Running
	Paused
)

var stateNames = map[State]string{
	Idle:    "IDLE",
	Running: "RUNNING",
	Paused:  "PAUSED",
}

func (s State) String() string { return stateNames[s] }

type Phase int

const (
	Work Phase = iota
	Break
)

func (p Phase) String() string {
	if p == Break {
		return "BREAK"
	}
	return "WORK"
}

const (
	DefaultWork  = 25 * time.Minute
	DefaultBreak = 5 * time.Minute
)

// DurationOptions are the work lengths, in minutes, offered by the UI.
var DurationOptions = []int{15, 25, 45}

// SessionCompleted is emitted when a work interval runs to zero.
type SessionCompleted struct {
	CompletedAt time.Time
	Minutes     int
}

type Timer struct {
	state     State
	phase     Phase
	remaining int // seconds

	workSecs  int
	breakSecs int

	now        func() time.Time
	onComplete func(SessionCompleted)
}

type Option func(*Timer)

func WithClock(now func() time.Time) Option {
	return func(t *Timer) { t.now = now }
}

// OnWorkCompleted registers the work-session-completed callback.
func OnWorkCompleted(fn func(SessionCompleted)) Option {
	return func(t *Timer) { t.onComplete = fn }
}

// SetOnWorkCompleted replaces the completion callback after construction.
func (t *Timer) SetOnWorkCompleted(fn func(SessionCompleted)) {
	t.onComplete = fn
}

// New returns an idle timer in the work phase. Non-positive durations fall
// back to the defaults.
func New(work, brk time.Duration, opts ...Option) *Timer {
	t := &Timer{
		workSecs:  seconds(work, DefaultWork),
		breakSecs: seconds(brk, DefaultBreak),
		now:       time.Now,
	}
	t.remaining = t.workSecs
	for _, o := range opts {
		o(t)
	}
	return t
}

func seconds(d, fallback time.Duration) int {
	if s := int(d / time.Second); s > 0 {
		return s
	}
	return int(fallback / time.Second)
}

func (t *Timer) State() State     { return t.state }
func (t *Timer) Phase() Phase     { return t.phase }
func (t *Timer) Remaining() int   { return t.remaining }
func (t *Timer) WorkSeconds() int { return t.workSecs }

func (t *Timer) BreakSeconds() int { return t.breakSecs }

// PhaseSeconds is the full length of the current phase.
func (t *Timer) PhaseSeconds() int {
	if t.phase == Break {
		return t.breakSecs
	}
	return t.workSecs
}

// Start enters Running from Idle or Paused.
func (t *Timer) Start() {
	if t.state == Running {
		return
	}
	t.state = Running
}

// Pause halts a running countdown and keeps the remaining time.
func (t *Timer) Pause() {
	if t.state != Running {
		return
	}
	t.state = Paused
}

// Reset halts and returns to a full work interval.
func (t *Timer) Reset() {
	t.state = Idle
	t.phase = Work
	t.remaining = t.workSecs
}

// SelectDuration changes the work length. It applies only while idle and
// reports whether it did.
func (t *Timer) SelectDuration(minutes int) bool {
	if t.state != Idle || minutes <= 0 {
		return false
	}
	t.workSecs = minutes * 60
	if t.phase == Work {
		t.remaining = t.workSecs
	}
	return true
}

// SetBreak changes the break length while idle.
func (t *Timer) SetBreak(minutes int) bool {
	if t.state != Idle || minutes <= 0 {
		return false
	}
	t.breakSecs = minutes * 60
	if t.phase == Break {
		t.remaining = t.breakSecs
	}
	return true
}

// Tick advances a running countdown by one second. When it reaches zero the
// timer goes idle in the other phase and, after a work interval, fires the
// completion callback. Tick reports whether a work session completed.
func (t *Timer) Tick() bool {
	if t.state != Running {
		return false
	}
	t.remaining--
	if t.remaining > 0 {
		return false
	}

	t.state = Idle
	if t.phase == Break {
		t.phase = Work
		t.remaining = t.workSecs
		return false
	}

	minutes := t.workSecs / 60
	t.phase = Break
	t.remaining = t.breakSecs
	if t.onComplete != nil {
		t.onComplete(SessionCompleted{CompletedAt: t.now().UTC(), Minutes: minutes})
	}
	return true
}

// Display renders the remaining time as MM:SS.
func (t *Timer) Display() string {
	return Format(t.remaining)
}

// Format renders seconds as zero-padded MM:SS.
func Format(secs int) string {
	if secs < 0 {
		secs = 0
	}
	return fmt.Sprintf("%02d:%02d", secs/60, secs%60)
}

// Progress is the elapsed fraction of the current phase in [0, 1].
func (t *Timer) Progress() float64 {
	total := t.PhaseSeconds()
	if total == 0 {
		return 0
	}
	return float64(total-t.remaining) / float64(total)
}
