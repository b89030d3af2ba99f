// Package tasks holds the ordered task collection and its persistence.
package tasks

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sadopc/focusboard/internal/store"
)

var (
	ErrEmptyText       = errors.New("task text is empty")
	ErrTaskNotFound    = errors.New("task not found")
	ErrInvalidPriority = errors.New("invalid priority")
	ErrInvalidEstimate = errors.New("estimated time must be positive")
)

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Priorities lists the accepted priorities in display order.
var Priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh}

// DefaultWorkType is used when a task is added without a work type.
const DefaultWorkType = "work"

// FilterAll disables priority filtering in Filter.
const FilterAll = "all"

type Task struct {
	ID            int64      `json:"id"`
	Text          string     `json:"text"`
	Priority      Priority   `json:"priority"`
	WorkType      string     `json:"workType"`
	EstimatedTime int        `json:"estimatedTime,omitempty"` // minutes
	DueDate       *time.Time `json:"dueDate,omitempty"`
	Completed     bool       `json:"completed"`
	CreatedAt     time.Time  `json:"createdAt"`
	CompletedAt   *time.Time `json:"completedAt,omitempty"`
	Rescheduled   bool       `json:"rescheduled,omitempty"`
}

// Overdue reports whether the task is incomplete and past its deadline at now.
func (t Task) Overdue(now time.Time) bool {
	return !t.Completed && t.DueDate != nil && t.DueDate.Before(now)
}

// OnTime reports whether the task was completed at or before its deadline.
func (t Task) OnTime() bool {
	return t.Completed && t.CompletedAt != nil && t.DueDate != nil && !t.CompletedAt.After(*t.DueDate)
}

// NewTask carries the user input for Add.
type NewTask struct {
	Text          string
	Priority      Priority
	WorkType      string
	EstimatedTime int
	DueDate       *time.Time
}

// Persister loads and saves wholesale snapshots. *store.Store satisfies it.
type Persister interface {
	Load(key string, v any) (bool, error)
	Save(key string, v any) error
}

type Store struct {
	persist Persister
	now     func() time.Time

	tasks  []Task
	lastID int64
}

type Option func(*Store)

// WithClock replaces time.Now, mostly for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

func New(p Persister, opts ...Option) *Store {
	s := &Store{persist: p, now: time.Now}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Load replaces the in-memory collection with the persisted snapshot. On
// error the current collection is left untouched.
func (s *Store) Load() error {
	var loaded []Task
	ok, err := s.persist.Load(store.KeyTasks, &loaded)
	if err != nil {
		return fmt.Errorf("load tasks: %w", err)
	}
	if !ok {
		return nil
	}
	s.tasks = loaded
	for _, t := range loaded {
		if t.ID > s.lastID {
			s.lastID = t.ID
		}
	}
	return nil
}

func (s *Store) save() error {
	if err := s.persist.Save(store.KeyTasks, s.tasks); err != nil {
		return fmt.Errorf("persist tasks: %w", err)
	}
	return nil
}

// nextID derives an id from the clock in milliseconds and keeps it strictly
// increasing.
func (s *Store) nextID(now time.Time) int64 {
	id := now.UnixMilli()
	if id <= s.lastID {
		id = s.lastID + 1
	}
	s.lastID = id
	return id
}

// Add appends a task. A persistence error is returned together with the
// added task; the in-memory collection keeps it.
func (s *Store) Add(in NewTask) (Task, error) {
	text := strings.TrimSpace(in.Text)
	if text == "" {
		return Task{}, ErrEmptyText
	}
	priority := in.Priority
	if priority == "" {
		priority = PriorityLow
	}
	if !ValidPriority(priority) {
		return Task{}, fmt.Errorf("%w: %q", ErrInvalidPriority, priority)
	}
	if in.EstimatedTime < 0 {
		return Task{}, ErrInvalidEstimate
	}
	workType := strings.TrimSpace(in.WorkType)
	if workType == "" {
		workType = DefaultWorkType
	}

	now := s.now().UTC()
	t := Task{
		ID:            s.nextID(now),
		Text:          text,
		Priority:      priority,
		WorkType:      workType,
		EstimatedTime: in.EstimatedTime,
		DueDate:       utcPtr(in.DueDate),
		CreatedAt:     now,
	}
	s.tasks = append(s.tasks, t)
	return t, s.save()
}

// Toggle flips the completion flag, recording or clearing the completion time.
func (s *Store) Toggle(id int64) (Task, error) {
	i := s.index(id)
	if i < 0 {
		return Task{}, fmt.Errorf("toggle %d: %w", id, ErrTaskNotFound)
	}
	t := &s.tasks[i]
	t.Completed = !t.Completed
	if t.Completed {
		now := s.now().UTC()
		t.CompletedAt = &now
	} else {
		t.CompletedAt = nil
	}
	return *t, s.save()
}

// Reschedule changes the deadline of a task and marks it rescheduled when a
// deadline was already set.
func (s *Store) Reschedule(id int64, due *time.Time) (Task, error) {
	i := s.index(id)
	if i < 0 {
		return Task{}, fmt.Errorf("reschedule %d: %w", id, ErrTaskNotFound)
	}
	t := &s.tasks[i]
	if t.DueDate != nil {
		t.Rescheduled = true
	}
	t.DueDate = utcPtr(due)
	return *t, s.save()
}

func (s *Store) Delete(id int64) error {
	i := s.index(id)
	if i < 0 {
		return fmt.Errorf("delete %d: %w", id, ErrTaskNotFound)
	}
	s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
	return s.save()
}

func (s *Store) Get(id int64) (Task, bool) {
	i := s.index(id)
	if i < 0 {
		return Task{}, false
	}
	return s.tasks[i], true
}

// All returns a copy of the collection in insertion order.
func (s *Store) All() []Task {
	out := make([]Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

// Filter returns tasks of the given priority, or all of them for FilterAll.
func (s *Store) Filter(priority string) []Task {
	if priority == "" || priority == FilterAll {
		return s.All()
	}
	var out []Task
	for _, t := range s.tasks {
		if string(t.Priority) == priority {
			out = append(out, t)
		}
	}
	return out
}

// Counts returns completed and total task counts.
func (s *Store) Counts() (completed, total int) {
	for _, t := range s.tasks {
		if t.Completed {
			completed++
		}
	}
	return completed, len(s.tasks)
}

func (s *Store) Len() int { return len(s.tasks) }

func (s *Store) index(id int64) int {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			return i
		}
	}
	return -1
}

func ValidPriority(p Priority) bool {
	for _, v := range Priorities {
		if v == p {
			return true
		}
	}
	return false
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}

// ParseDue reads a deadline typed by the user: RFC3339, "YYYY-MM-DD HH:MM"
// or a bare date, which is due at the end of that day. Empty input returns
// nil.
func ParseDue(s string, loc *time.Location) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return &t, nil
	}
	if t, err := time.ParseInLocation("2006-01-02 15:04", s, loc); err == nil {
		return &t, nil
	}
	if t, err := time.ParseInLocation("2006-01-02", s, loc); err == nil {
		t = t.Add(24*time.Hour - time.Minute)
		return &t, nil
	}
	return nil, fmt.Errorf("invalid due date %q: use YYYY-MM-DD or YYYY-MM-DD HH:MM", s)
}
