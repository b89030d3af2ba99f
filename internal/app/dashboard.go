// Package app wires the stores, analytics, badge engine, timer and chat into
// the dashboard control flow.
package app

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/sadopc/focusboard/internal/analytics"
	"github.com/sadopc/focusboard/internal/badges"
	"github.com/sadopc/focusboard/internal/chat"
	"github.com/sadopc/focusboard/internal/diary"
	"github.com/sadopc/focusboard/internal/export"
	"github.com/sadopc/focusboard/internal/store"
	"github.com/sadopc/focusboard/internal/tasks"
	"github.com/sadopc/focusboard/internal/timer"
	"go.uber.org/zap"
)

var ErrMissingComponent = errors.New("missing component")

// Component names reported by Missing.
const (
	ComponentTasks     = "tasks"
	ComponentDiary     = "diary"
	ComponentAnalytics = "analytics"
	ComponentBadges    = "badges"
	ComponentTimer     = "timer"
)

// SettingsStore persists user settings. *store.Store satisfies it.
type SettingsStore interface {
	GetSetting(key string) (string, error)
	SetSetting(key, value string) error
}

// Deps are the collaborators of a Dashboard. Tasks, Analytics and Badges are
// required. Diary, Timer and Settings may be nil; the matching features are
// then unavailable.
type Deps struct {
	Tasks     *tasks.Store
	Diary     *diary.Store
	Analytics *analytics.Aggregator
	Badges    *badges.Engine
	Timer     *timer.Timer
	Settings  SettingsStore

	Log   *zap.Logger
	Now   func() time.Time
	Beta  bool
	Picks chat.Picker
}

type Dashboard struct {
	tasks     *tasks.Store
	diary     *diary.Store
	analytics *analytics.Aggregator
	badges    *badges.Engine
	timer     *timer.Timer
	settings  SettingsStore
	chat      *chat.Responder

	log  *zap.Logger
	now  func() time.Time
	beta bool

	tick TickResult
}

// TickResult reports what one timer tick caused.
type TickResult struct {
	SessionCompleted bool
	Unlocked         []badges.Badge
	Err              error
}

func New(d Deps) (*Dashboard, error) {
	switch {
	case d.Tasks == nil:
		return nil, fmt.Errorf("%w: %s", ErrMissingComponent, ComponentTasks)
	case d.Analytics == nil:
		return nil, fmt.Errorf("%w: %s", ErrMissingComponent, ComponentAnalytics)
	case d.Badges == nil:
		return nil, fmt.Errorf("%w: %s", ErrMissingComponent, ComponentBadges)
	}

	db := &Dashboard{
		tasks:     d.Tasks,
		diary:     d.Diary,
		analytics: d.Analytics,
		badges:    d.Badges,
		timer:     d.Timer,
		settings:  d.Settings,
		log:       d.Log,
		now:       d.Now,
		beta:      d.Beta,
	}
	if db.log == nil {
		db.log = zap.NewNop()
	}
	if db.now == nil {
		db.now = time.Now
	}

	src := chat.Sources{Tasks: d.Tasks, Sessions: d.Analytics, Badges: d.Badges}
	if d.Diary != nil {
		src.Diary = d.Diary
	}
	var opts []chat.Option
	if d.Picks != nil {
		opts = append(opts, chat.WithPicker(d.Picks))
	}
	db.chat = chat.New(src, opts...)

	if d.Timer != nil {
		d.Timer.SetOnWorkCompleted(db.onWorkCompleted)
	}
	return db, nil
}

// Missing lists the optional components that were not provided.
func (d *Dashboard) Missing() []string {
	var out []string
	if d.diary == nil {
		out = append(out, ComponentDiary)
	}
	if d.timer == nil {
		out = append(out, ComponentTimer)
	}
	return out
}

func (d *Dashboard) Tasks() *tasks.Store              { return d.tasks }
func (d *Dashboard) Diary() *diary.Store              { return d.diary }
func (d *Dashboard) Analytics() *analytics.Aggregator { return d.analytics }
func (d *Dashboard) Badges() *badges.Engine           { return d.badges }
func (d *Dashboard) Timer() *timer.Timer              { return d.timer }
func (d *Dashboard) Chat() *chat.Responder            { return d.chat }

// Load restores every component from the store and re-syncs the derived
// state. Badges unlocked by the re-sync are returned.
func (d *Dashboard) Load() ([]badges.Badge, error) {
	if err := d.tasks.Load(); err != nil {
		return nil, err
	}
	if d.diary != nil {
		if err := d.diary.Load(); err != nil {
			return nil, err
		}
	}
	if err := d.analytics.Load(); err != nil {
		return nil, err
	}
	if err := d.badges.Load(); err != nil {
		return nil, err
	}
	return d.refresh(nil)
}

// Activity snapshots the state the badge rules read.
func (d *Dashboard) Activity() badges.Activity {
	a := badges.Activity{
		Tasks:    d.tasks.All(),
		Weekdays: d.analytics.Snapshot().Productivity,
		Sessions: d.analytics.Sessions(),
		Now:      d.now(),
		Beta:     d.beta,
	}
	if d.diary != nil {
		a.Entries = d.diary.All()
	}
	return a
}

// refresh recomputes completion counts and re-evaluates badges. Persist
// failures from the mutation itself (cause) are joined with any failure
// here; in-memory state is kept in every case.
func (d *Dashboard) refresh(cause error) ([]badges.Badge, error) {
	errs := []error{cause}
	completed, total := d.tasks.Counts()
	if err := d.analytics.UpdateTaskCompletion(completed, total); err != nil {
		errs = append(errs, err)
	}
	return d.checkBadges(errs)
}

func (d *Dashboard) checkBadges(errs []error) ([]badges.Badge, error) {
	unlocked, err := d.badges.Check(d.Activity())
	errs = append(errs, err)
	for _, b := range unlocked {
		d.log.Info("badge unlocked", zap.String("badge", b.ID))
	}
	joined := errors.Join(errs...)
	if joined != nil {
		d.log.Error("persist failed", zap.Error(joined))
	}
	return unlocked, joined
}

// mutated runs the refresh pipeline after a store mutation. ok is false when
// the store rejected the input, in which case err is returned untouched.
func (d *Dashboard) mutated(ok bool, err error) ([]badges.Badge, error) {
	if !ok {
		return nil, err
	}
	return d.refresh(err)
}

func (d *Dashboard) AddTask(in tasks.NewTask) (tasks.Task, []badges.Badge, error) {
	t, err := d.tasks.Add(in)
	// Add returns a zero task when the input was rejected.
	unlocked, err := d.mutated(t.ID != 0, err)
	return t, unlocked, err
}

func (d *Dashboard) ToggleTask(id int64) (tasks.Task, []badges.Badge, error) {
	t, err := d.tasks.Toggle(id)
	unlocked, err := d.mutated(t.ID != 0, err)
	return t, unlocked, err
}

func (d *Dashboard) RescheduleTask(id int64, due *time.Time) (tasks.Task, []badges.Badge, error) {
	t, err := d.tasks.Reschedule(id, due)
	unlocked, err := d.mutated(t.ID != 0, err)
	return t, unlocked, err
}

func (d *Dashboard) DeleteTask(id int64) ([]badges.Badge, error) {
	_, exists := d.tasks.Get(id)
	return d.mutated(exists, d.tasks.Delete(id))
}

func (d *Dashboard) AddEntry(in diary.NewEntry) (diary.Entry, []badges.Badge, error) {
	if d.diary == nil {
		return diary.Entry{}, nil, fmt.Errorf("%w: %s", ErrMissingComponent, ComponentDiary)
	}
	e, err := d.diary.Add(in)
	if e.ID == 0 {
		return e, nil, err
	}
	unlocked, err := d.checkBadges([]error{err})
	return e, unlocked, err
}

func (d *Dashboard) ClearDiary() error {
	if d.diary == nil {
		return fmt.Errorf("%w: %s", ErrMissingComponent, ComponentDiary)
	}
	return d.diary.Clear()
}

// RecordSession logs a completed work interval and re-evaluates badges.
func (d *Dashboard) RecordSession(s analytics.Session) ([]badges.Badge, error) {
	err := d.analytics.RecordWorkSession(s)
	d.log.Info("work session completed", zap.Int("minutes", s.Minutes))
	return d.checkBadges([]error{err})
}

func (d *Dashboard) onWorkCompleted(ev timer.SessionCompleted) {
	unlocked, err := d.RecordSession(analytics.Session{CompletedAt: ev.CompletedAt, Minutes: ev.Minutes})
	d.tick = TickResult{SessionCompleted: true, Unlocked: unlocked, Err: err}
}

// Tick advances the timer by one second.
func (d *Dashboard) Tick() TickResult {
	if d.timer == nil {
		return TickResult{}
	}
	d.tick = TickResult{}
	d.timer.Tick()
	return d.tick
}

// SelectDuration sets the work length while the timer is idle and stores
// it as the pomodoro_work setting.
func (d *Dashboard) SelectDuration(minutes int) (bool, error) {
	if d.timer == nil || !d.timer.SelectDuration(minutes) {
		return false, nil
	}
	if d.settings == nil {
		return true, nil
	}
	if err := d.settings.SetSetting(store.SettingPomodoroWork, strconv.Itoa(minutes*60)); err != nil {
		d.log.Error("save timer setting", zap.Error(err))
		return true, fmt.Errorf("save timer setting: %w", err)
	}
	return true, nil
}

// Insights runs the performance analyzer over the current tasks.
func (d *Dashboard) Insights() analytics.Insights {
	return analytics.Analyze(d.tasks.All(), d.now())
}

// Reply answers a chat message.
func (d *Dashboard) Reply(msg string) string {
	return d.chat.Reply(msg)
}

// ExportBundle collects the current state for export.
func (d *Dashboard) ExportBundle(now time.Time) export.Bundle {
	b := export.Bundle{
		Tasks:  d.tasks.All(),
		Badges: d.badges.Earned(),
		Now:    now,
	}
	if d.diary != nil {
		b.Diary = d.diary.All()
	}
	return b
}
