package analytics

import (
	"time"

	"github.com/sadopc/focusboard/internal/tasks"
)

// ReflectionPrompts seed new diary entries.
var ReflectionPrompts = []string{
	"What was your biggest achievement today?",
	"What challenges did you face and how did you overcome them?",
	"What could you have done better?",
	"What are you looking forward to tomorrow?",
	"How did your mood affect your productivity today?",
}

// Insights is the performance summary computed from the task list.
type Insights struct {
	CompletionRate float64
	Trend          Trend

	PeakHour    int // 0-23, -1 without completed tasks
	HasPeakHour bool

	Overdue             int
	ProcrastinationRate float64

	Recommendations []string
}

// Analyze derives insights from ts as of now. Hours are taken in now's zone.
func Analyze(ts []tasks.Task, now time.Time) Insights {
	completed := 0
	for _, t := range ts {
		if t.Completed {
			completed++
		}
	}
	in := Insights{CompletionRate: Rate(completed, len(ts))}
	in.Trend = TrendOf(in.CompletionRate)
	in.PeakHour, in.HasPeakHour = PeakHour(ts, now.Location())

	for _, t := range ts {
		if t.Overdue(now) {
			in.Overdue++
		}
	}
	in.ProcrastinationRate = Rate(in.Overdue, len(ts))
	in.Recommendations = Recommendations(ts)
	return in
}

// PeakHour returns the hour of day with the most completions. Tasks
// completed before completion times were recorded count at their creation
// hour. Ties resolve to the earliest hour.
func PeakHour(ts []tasks.Task, loc *time.Location) (int, bool) {
	var hist [24]int
	seen := false
	for _, t := range ts {
		if !t.Completed {
			continue
		}
		at := t.CreatedAt
		if t.CompletedAt != nil {
			at = *t.CompletedAt
		}
		hist[at.In(loc).Hour()]++
		seen = true
	}
	if !seen {
		return -1, false
	}
	peak := 0
	for h := 1; h < 24; h++ {
		if hist[h] > hist[peak] {
			peak = h
		}
	}
	return peak, true
}

// ProcrastinationMessage grades an overdue rate in percent.
func ProcrastinationMessage(rate float64) string {
	switch {
	case rate > 50:
		return "High procrastination detected. Try using the Pomodoro technique to stay focused."
	case rate > 20:
		return "Moderate procrastination. Consider setting more realistic deadlines."
	}
	return "Good time management! Keep it up!"
}

func Recommendations(ts []tasks.Task) []string {
	var highPending, noDeadline bool
	for _, t := range ts {
		if t.Priority == tasks.PriorityHigh && !t.Completed {
			highPending = true
		}
		if t.DueDate == nil {
			noDeadline = true
		}
	}
	var recs []string
	if highPending {
		recs = append(recs, "Focus on completing high-priority tasks first")
	}
	if len(ts) > 10 {
		recs = append(recs, "Consider breaking down large tasks into smaller ones")
	}
	if noDeadline {
		recs = append(recs, "Set deadlines for tasks to improve accountability")
	}
	return recs
}
