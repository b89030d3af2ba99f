// Package chat answers assistant messages with canned responses chosen by
// keyword matching.
package chat

import (
	"fmt"
	"math/rand/v2"
	"strings"
)

// Greeting opens every conversation.
const Greeting = "Hello! I'm your productivity assistant. How can I help you today?"

const DefaultReply = "I can help you with tasks, Pomodoro timer, analytics, diary, or badges. What would you like to know?"

var Quotes = []string{
	"Start with one task at a time.",
	"Focus on progress, not perfection.",
	"Take small steps consistently.",
	"Stay focused on your goals.",
	"Keep moving forward.",
}

var Tips = []string{
	"Use the Pomodoro technique: 25 minutes work, 5 minutes break.",
	"Break large tasks into smaller ones.",
	"Set specific deadlines for tasks.",
	"Take regular breaks to stay fresh.",
	"Start with the most important task first.",
}

type TaskCounter interface {
	Counts() (completed, total int)
}

type SessionCounter interface {
	TotalSessions() int
}

type EntryCounter interface {
	Len() int
}

type BadgeCounter interface {
	Count() int
}

// Sources supplies the counters quoted in replies. Nil sources read as zero.
type Sources struct {
	Tasks    TaskCounter
	Sessions SessionCounter
	Diary    EntryCounter
	Badges   BadgeCounter
}

// Picker returns an index in [0, n).
type Picker func(n int) int

type Responder struct {
	src  Sources
	pick Picker
}

type Option func(*Responder)

func WithPicker(p Picker) Option {
	return func(r *Responder) { r.pick = p }
}

func New(src Sources, opts ...Option) *Responder {
	r := &Responder{src: src, pick: rand.IntN}
	for _, o := range opts {
		o(r)
	}
	return r
}

type rule struct {
	keywords []string
	reply    func(r *Responder, msg string) string
}

// rules are tried in order; the first whose keyword appears wins.
var rules = []rule{
	{[]string{"task", "todo"}, (*Responder).taskReply},
	{[]string{"pomodoro", "timer"}, (*Responder).timerReply},
	{[]string{"progress", "analytics"}, (*Responder).analyticsReply},
	{[]string{"diary", "journal"}, (*Responder).diaryReply},
	{[]string{"badge", "achievement"}, (*Responder).badgeReply},
	{[]string{"motivation", "motivate"}, func(r *Responder, _ string) string { return r.choose(Quotes) }},
	{[]string{"productivity", "productive"}, func(r *Responder, _ string) string { return r.choose(Tips) }},
	{[]string{"hello", "hi"}, fixed("Hello! How can I help you with your tasks today?")},
	{[]string{"help"}, fixed("I can help you with:\n- Tasks\n- Pomodoro Timer\n- Analytics\n- Diary\n- Badges\n\nWhat would you like to know?")},
	{[]string{"thank"}, fixed("You're welcome! Let me know if you need anything else.")},
}

func fixed(s string) func(*Responder, string) string {
	return func(*Responder, string) string { return s }
}

// Reply answers msg. Matching is case-insensitive substring containment.
func (r *Responder) Reply(msg string) string {
	lower := strings.ToLower(msg)
	for _, rl := range rules {
		for _, kw := range rl.keywords {
			if strings.Contains(lower, kw) {
				return rl.reply(r, lower)
			}
		}
	}
	return DefaultReply
}

func (r *Responder) choose(list []string) string {
	i := r.pick(len(list))
	if i < 0 || i >= len(list) {
		i = 0
	}
	return list[i]
}

func (r *Responder) taskReply(msg string) string {
	switch {
	case strings.Contains(msg, "how many"):
		var completed, total int
		if r.src.Tasks != nil {
			completed, total = r.src.Tasks.Counts()
		}
		return fmt.Sprintf("You have %d completed tasks out of %d total tasks.", completed, total)
	case strings.Contains(msg, "add"):
		return "To add a new task, press 'a' in the Tasks view or run 'focusboard task add'."
	}
	return "I can help you with task management. You can ask about your tasks or how to add new ones."
}

func (r *Responder) timerReply(msg string) string {
	switch {
	case strings.Contains(msg, "how to"):
		return "The Pomodoro technique works by breaking your work into 25-minute focused sessions followed by 5-minute breaks. After 4 sessions, take a longer 15-minute break."
	case strings.Contains(msg, "start"):
		return "You can start the Pomodoro timer by pressing 's' in the Pomodoro view."
	}
	return "I can help you with the Pomodoro timer. You can ask how to use it or how to start a session."
}

func (r *Responder) analyticsReply(string) string {
	n := 0
	if r.src.Sessions != nil {
		n = r.src.Sessions.TotalSessions()
	}
	return fmt.Sprintf("You've completed %d Pomodoro sessions this week. Check the Analytics section for detailed statistics.", n)
}

func (r *Responder) diaryReply(msg string) string {
	if strings.Contains(msg, "how many") {
		n := 0
		if r.src.Diary != nil {
			n = r.src.Diary.Len()
		}
		return fmt.Sprintf("You have written %d diary entries so far.", n)
	}
	return "I can help you with your diary entries. You can ask about how many entries you've written or how to add new ones."
}

func (r *Responder) badgeReply(string) string {
	n := 0
	if r.src.Badges != nil {
		n = r.src.Badges.Count()
	}
	return fmt.Sprintf("You have earned %d badges so far. Check the Badges section to see your achievements!", n)
}
