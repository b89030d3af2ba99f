// Package diary holds free-text diary entries with optional mood, rating and
// media attachments.
package diary

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/sadopc/focusboard/internal/store"
)

var (
	ErrEmptyText     = errors.New("diary text is empty")
	ErrInvalidMood   = errors.New("invalid mood")
	ErrInvalidRating = errors.New("productivity rating must be between 0 and 5")
)

type Mood string

const (
	MoodHappy   Mood = "happy"
	MoodNeutral Mood = "neutral"
	MoodSad     Mood = "sad"
	MoodAngry   Mood = "angry"
	MoodExcited Mood = "excited"
)

var Moods = []Mood{MoodHappy, MoodNeutral, MoodSad, MoodAngry, MoodExcited}

var moodEmoji = map[Mood]string{
	MoodHappy:   "😊",
	MoodNeutral: "😐",
	MoodSad:     "😢",
	MoodAngry:   "😠",
	MoodExcited: "🤩",
}

// Emoji returns the display glyph for m, neutral for unknown moods.
func (m Mood) Emoji() string {
	if e, ok := moodEmoji[m]; ok {
		return e
	}
	return moodEmoji[MoodNeutral]
}

func ValidMood(m Mood) bool {
	_, ok := moodEmoji[m]
	return ok
}

// MaxRating is the top of the productivity rating scale.
const MaxRating = 5

// Extension is the optional mood-and-media value attached to an entry.
type Extension struct {
	Mood               Mood    `json:"mood,omitempty"`
	ProductivityRating int     `json:"productivityRating"`
	MediaFiles         []Media `json:"mediaFiles,omitempty"`
}

func (e *Extension) validate() error {
	if e.Mood != "" && !ValidMood(e.Mood) {
		return fmt.Errorf("%w: %q", ErrInvalidMood, e.Mood)
	}
	if e.ProductivityRating < 0 || e.ProductivityRating > MaxRating {
		return ErrInvalidRating
	}
	return nil
}

// Stars renders the rating as filled and empty stars.
func (e *Extension) Stars() string {
	r := 0
	if e != nil {
		r = e.ProductivityRating
	}
	return strings.Repeat("★", r) + strings.Repeat("☆", MaxRating-r)
}

type Entry struct {
	ID     int64     `json:"id"`
	Text   string    `json:"text"`
	Date   time.Time `json:"date"`
	Prompt string    `json:"prompt,omitempty"`

	*Extension
}

// MoodValue returns the entry mood, empty when no extension is attached.
func (e Entry) MoodValue() Mood {
	if e.Extension == nil {
		return ""
	}
	return e.Mood
}

func (e Entry) Rating() int {
	if e.Extension == nil {
		return 0
	}
	return e.ProductivityRating
}

// NewEntry carries the user input for Add.
type NewEntry struct {
	Text      string
	Prompt    string
	Extension *Extension
}

// Persister loads and saves wholesale snapshots. *store.Store satisfies it.
type Persister interface {
	Load(key string, v any) (bool, error)
	Save(key string, v any) error
}

type Store struct {
	persist Persister
	now     func() time.Time

	entries []Entry
	lastID  int64
}

type Option func(*Store)

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

// Load replaces the in-memory entries with the persisted snapshot.
func (s *Store) Load() error {
	var loaded []Entry
	ok, err := s.persist.Load(store.KeyDiary, &loaded)
	if err != nil {
		return fmt.Errorf("load diary: %w", err)
	}
	if !ok {
		return nil
	}
	s.entries = loaded
	for _, e := range loaded {
		if e.ID > s.lastID {
			s.lastID = e.ID
		}
	}
	return nil
}

func (s *Store) save() error {
	if err := s.persist.Save(store.KeyDiary, s.entries); err != nil {
		return fmt.Errorf("persist diary: %w", err)
	}
	return nil
}

// Add appends an entry. Empty text is rejected with ErrEmptyText before
// anything is stored.
func (s *Store) Add(in NewEntry) (Entry, error) {
	text := strings.TrimSpace(in.Text)
	if text == "" {
		return Entry{}, ErrEmptyText
	}
	var ext *Extension
	if in.Extension != nil {
		if err := in.Extension.validate(); err != nil {
			return Entry{}, err
		}
		cp := *in.Extension
		if cp.Mood == "" {
			cp.Mood = MoodNeutral
		}
		cp.MediaFiles = append([]Media(nil), in.Extension.MediaFiles...)
		ext = &cp
	}

	now := s.now().UTC()
	id := now.UnixMilli()
	if id <= s.lastID {
		id = s.lastID + 1
	}
	s.lastID = id

	e := Entry{
		ID:        id,
		Text:      text,
		Date:      now,
		Prompt:    strings.TrimSpace(in.Prompt),
		Extension: ext,
	}
	s.entries = append(s.entries, e)
	return e, s.save()
}

// Clear removes every entry.
func (s *Store) Clear() error {
	s.entries = nil
	return s.save()
}

// All returns the entries in insertion order.
func (s *Store) All() []Entry {
	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Newest returns the entries sorted newest first.
func (s *Store) Newest() []Entry {
	out := s.All()
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out
}

func (s *Store) Len() int { return len(s.entries) }

// Filter names accepted by Filter.
const (
	FilterAll        = "all"
	FilterHappy      = "happy"
	FilterProductive = "productive"
	FilterRecent     = "recent"
)

// RecentLimit is the number of entries kept by FilterRecent.
const RecentLimit = 5

// Filter returns entries newest first, narrowed by the named filter.
// Unknown names behave like FilterAll.
func (s *Store) Filter(name string) []Entry {
	entries := s.Newest()
	switch name {
	case FilterHappy:
		var out []Entry
		for _, e := range entries {
			if e.MoodValue() == MoodHappy {
				out = append(out, e)
			}
		}
		return out
	case FilterProductive:
		var out []Entry
		for _, e := range entries {
			if e.Rating() >= 4 {
				out = append(out, e)
			}
		}
		return out
	case FilterRecent:
		if len(entries) > RecentLimit {
			entries = entries[:RecentLimit]
		}
		return entries
	}
	return entries
}
