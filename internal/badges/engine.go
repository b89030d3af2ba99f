package badges

import (
	"fmt"

	"github.com/sadopc/focusboard/internal/store"
)

type Persister interface {
	Load(key string, v any) (bool, error)
	Save(key string, v any) error
}

// Engine evaluates the catalog against activity and keeps the earned set.
// Earned badges are never revoked.
type Engine struct {
	persist Persister
	rules   map[string]rule

	earned []string
	set    map[string]bool
}

type Option func(*Engine)

// WithSessionThresholds overrides the pomodoro tier counts. Non-positive
// values keep the defaults.
func WithSessionThresholds(th SessionThresholds) Option {
	return func(e *Engine) {
		d := DefaultSessionThresholds
		if th.Starter <= 0 {
			th.Starter = d.Starter
		}
		if th.Apprentice <= 0 {
			th.Apprentice = d.Apprentice
		}
		if th.Pro <= 0 {
			th.Pro = d.Pro
		}
		e.rules = newRules(th)
	}
}

func New(p Persister, opts ...Option) *Engine {
	e := &Engine{
		persist: p,
		rules:   newRules(DefaultSessionThresholds),
		set:     map[string]bool{},
	}
	for _, o := range opts {
		o(e)
	}
	return e
}

// Load restores the persisted earned set. Unknown ids are kept.
func (e *Engine) Load() error {
	var ids []string
	if _, err := e.persist.Load(store.KeyBadges, &ids); err != nil {
		return fmt.Errorf("load badges: %w", err)
	}
	e.earned = nil
	e.set = map[string]bool{}
	for _, id := range ids {
		if !e.set[id] {
			e.set[id] = true
			e.earned = append(e.earned, id)
		}
	}
	return nil
}

// Check evaluates every unearned badge in catalog order and returns the ones
// unlocked by this pass. Aggregate badges run after the others so they see
// this pass's unlocks. The earned set is updated before persisting, so a
// save error leaves the unlocks in memory.
func (e *Engine) Check(a Activity) ([]Badge, error) {
	f := newFacts(a, e.set)

	var unlocked []Badge
	for _, last := range []bool{false, true} {
		for _, b := range Catalog {
			if e.set[b.ID] || aggregate[b.ID] != last {
				continue
			}
			r, ok := e.rules[b.ID]
			if !ok || !r(f) {
				continue
			}
			e.set[b.ID] = true
			e.earned = append(e.earned, b.ID)
			unlocked = append(unlocked, b)
		}
	}

	if len(unlocked) == 0 {
		return nil, nil
	}
	if err := e.persist.Save(store.KeyBadges, e.earned); err != nil {
		return unlocked, fmt.Errorf("persist badges: %w", err)
	}
	return unlocked, nil
}

// Earned returns the earned ids in unlock order.
func (e *Engine) Earned() []string {
	out := make([]string, len(e.earned))
	copy(out, e.earned)
	return out
}

func (e *Engine) Has(id string) bool { return e.set[id] }

func (e *Engine) Count() int { return len(e.earned) }
