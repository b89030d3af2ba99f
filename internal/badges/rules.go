package badges

import (
	"sort"
	"strings"
	"time"

	"github.com/sadopc/focusboard/internal/analytics"
	"github.com/sadopc/focusboard/internal/diary"
	"github.com/sadopc/focusboard/internal/tasks"
)

// Activity is the read-only state the rules are evaluated against. Local
// calendar days are taken in Now's location.
type Activity struct {
	Tasks    []tasks.Task
	Entries  []diary.Entry
	Weekdays [7]int
	Sessions []analytics.Session
	Now      time.Time
	Beta     bool
}

// CollaborationWorkType marks tasks that count toward team_player.
const CollaborationWorkType = "collaboration"

// SessionThresholds are the total work-session counts for the pomodoro tiers.
type SessionThresholds struct {
	Starter    int
	Apprentice int
	Pro        int
}

var DefaultSessionThresholds = SessionThresholds{Starter: 5, Apprentice: 25, Pro: 100}

type rule func(f *facts) bool

// facts holds values derived once per Check and shared by the rules.
type facts struct {
	Activity
	loc    *time.Location
	earned map[string]bool

	completed         []tasks.Task // with a completion time
	completedCount    int
	runs              []int // consecutive completion-day runs, chronological
	completionsPerDay map[int64]int
	sessionsPerDay    map[int64]int
	minutesPerDay     map[int64]int
}

// civilDay numbers the local calendar day of t.
func civilDay(t time.Time, loc *time.Location) int64 {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Unix() / 86400
}

func newFacts(a Activity, earned map[string]bool) *facts {
	loc := a.Now.Location()
	f := &facts{
		Activity:          a,
		loc:               loc,
		earned:            earned,
		completionsPerDay: map[int64]int{},
		sessionsPerDay:    map[int64]int{},
		minutesPerDay:     map[int64]int{},
	}
	for _, t := range a.Tasks {
		if !t.Completed {
			continue
		}
		f.completedCount++
		if t.CompletedAt != nil {
			f.completed = append(f.completed, t)
			f.completionsPerDay[civilDay(*t.CompletedAt, loc)]++
		}
	}
	for _, s := range a.Sessions {
		d := civilDay(s.CompletedAt, loc)
		f.sessionsPerDay[d]++
		f.minutesPerDay[d] += s.Minutes
	}

	days := make([]int64, 0, len(f.completionsPerDay))
	for d := range f.completionsPerDay {
		days = append(days, d)
	}
	sort.Slice(days, func(i, j int) bool { return days[i] < days[j] })
	for i, d := range days {
		if i > 0 && d == days[i-1]+1 {
			f.runs[len(f.runs)-1]++
			continue
		}
		f.runs = append(f.runs, 1)
	}
	return f
}

func (f *facts) longestStreak() int {
	best := 0
	for _, r := range f.runs {
		if r > best {
			best = r
		}
	}
	return best
}

func (f *facts) anyCompleted(pred func(t tasks.Task, done time.Time) bool) bool {
	for _, t := range f.completed {
		if pred(t, t.CompletedAt.In(f.loc)) {
			return true
		}
	}
	return false
}

func maxValue(m map[int64]int) int {
	best := 0
	for _, v := range m {
		if v > best {
			best = v
		}
	}
	return best
}

func streakAtLeast(n int) rule {
	return func(f *facts) bool { return f.longestStreak() >= n }
}

func completedAtLeast(n int) rule {
	return func(f *facts) bool { return f.completedCount >= n }
}

func entriesAtLeast(n int) rule {
	return func(f *facts) bool { return len(f.Entries) >= n }
}

func sessionsAtLeast(n int) rule {
	return func(f *facts) bool { return len(f.Sessions) >= n }
}

func never(*facts) bool { return false }

// beforeDeadline reports how long before its deadline t was completed.
func beforeDeadline(t tasks.Task, done time.Time) (time.Duration, bool) {
	if t.DueDate == nil || done.After(*t.DueDate) {
		return 0, false
	}
	return t.DueDate.Sub(done), true
}

func noExcuses(f *facts) bool {
	return f.anyCompleted(func(t tasks.Task, _ time.Time) bool {
		return t.Priority == tasks.PriorityHigh && t.OnTime()
	})
}

func lastMinute(f *facts) bool {
	return f.anyCompleted(func(t tasks.Task, done time.Time) bool {
		left, ok := beforeDeadline(t, done)
		return ok && left <= 5*time.Minute
	})
}

func earlyBird(f *facts) bool {
	return f.anyCompleted(func(t tasks.Task, done time.Time) bool {
		left, ok := beforeDeadline(t, done)
		return ok && left >= 24*time.Hour
	})
}

func nightOwl(f *facts) bool {
	return f.anyCompleted(func(_ tasks.Task, done time.Time) bool { return done.Hour() < 5 })
}

func marathonWorker(f *facts) bool { return maxValue(f.completionsPerDay) >= 3 }

// deadlineDominator requires every task due within the last seven days to
// have been completed on time.
func deadlineDominator(f *facts) bool {
	since := f.Now.AddDate(0, 0, -7)
	due := 0
	for _, t := range f.Tasks {
		if t.DueDate == nil || t.DueDate.Before(since) || t.DueDate.After(f.Now) {
			continue
		}
		if !t.OnTime() {
			return false
		}
		due++
	}
	return due > 0
}

func powerHour(f *facts) bool {
	return f.anyCompleted(func(t tasks.Task, done time.Time) bool {
		if done.Sub(t.CreatedAt) > 30*time.Minute {
			return false
		}
		for _, s := range f.Sessions {
			if !s.CompletedAt.Before(t.CreatedAt) && !s.CompletedAt.After(done) {
				return true
			}
		}
		return false
	})
}

func procrastinationBuster(f *facts) bool {
	return f.anyCompleted(func(t tasks.Task, _ time.Time) bool { return t.Rescheduled && t.OnTime() })
}

func consistencyRoyalty(f *facts) bool { return f.longestStreak() > 90 }

// yearGrowth needs a task at least a year old and some activity this week.
func yearGrowth(f *facts) bool {
	if len(f.Tasks) == 0 {
		return false
	}
	first := f.Tasks[0].CreatedAt
	for _, t := range f.Tasks[1:] {
		if t.CreatedAt.Before(first) {
			first = t.CreatedAt
		}
	}
	if f.Now.Sub(first) < 365*24*time.Hour {
		return false
	}

	recent := f.Now.AddDate(0, 0, -7)
	for _, t := range f.Tasks {
		if t.CreatedAt.After(recent) || (t.CompletedAt != nil && t.CompletedAt.After(recent)) {
			return true
		}
	}
	for _, e := range f.Entries {
		if e.Date.After(recent) {
			return true
		}
	}
	for _, s := range f.Sessions {
		if s.CompletedAt.After(recent) {
			return true
		}
	}
	return false
}

// comebackKid needs a streak of at least two days that broke and was later
// beaten by a longer one.
func comebackKid(f *facts) bool {
	best := 0
	for _, r := range f.runs {
		if best >= 2 && r > best {
			return true
		}
		if r > best {
			best = r
		}
	}
	return false
}

func emotionExplorer(f *facts) bool {
	n := 0
	for _, e := range f.Entries {
		if e.MoodValue() != "" {
			n++
		}
	}
	return n >= 7
}

func improvementGuru(f *facts) bool {
	for _, e := range f.Entries {
		if e.Prompt != "" {
			return true
		}
	}
	return false
}

func weekendWarrior(f *facts) bool {
	return f.anyCompleted(func(_ tasks.Task, done time.Time) bool {
		wd := done.Weekday()
		return wd == time.Saturday || wd == time.Sunday
	})
}

func mondayMotivation(f *facts) bool {
	return f.anyCompleted(func(_ tasks.Task, done time.Time) bool {
		return done.Weekday() == time.Monday && done.Hour() < 10
	})
}

func focusBeast(f *facts) bool { return maxValue(f.minutesPerDay) >= 60 }

func betaTester(f *facts) bool { return f.Beta }

func hiddenGem(f *facts) bool {
	for _, n := range f.Weekdays {
		if n < 1 {
			return false
		}
	}
	return true
}

func teamPlayer(f *facts) bool {
	for _, t := range f.Tasks {
		if t.Completed && strings.EqualFold(t.WorkType, CollaborationWorkType) {
			return true
		}
	}
	return false
}

func challengeAccepted(f *facts) bool { return maxValue(f.sessionsPerDay) >= 4 }

// allRounder is evaluated after every other rule of the same pass.
func allRounder(f *facts) bool {
	for _, c := range Categories {
		if c == CategorySpecial {
			continue
		}
		found := false
		for _, b := range ByCategory(c) {
			if f.earned[b.ID] {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// aggregate rules depend on the earned set and run last.
var aggregate = map[string]bool{AllRounder: true}

func newRules(th SessionThresholds) map[string]rule {
	return map[string]rule{
		FirstStep:      completedAtLeast(1),
		ThreeDayStreak: streakAtLeast(3),
		WeekWarrior:    streakAtLeast(7),
		MomentumMaster: streakAtLeast(14),
		HabitHero:      streakAtLeast(30),
		Unstoppable:    streakAtLeast(90),

		TaskStarter:       completedAtLeast(5),
		TaskFinisher:      completedAtLeast(10),
		ProductivityChamp: completedAtLeast(25),
		TaskSlayer:        completedAtLeast(50),
		MasterExecutor:    completedAtLeast(100),

		NoExcuses:             noExcuses,
		LastMinute:            lastMinute,
		EarlyBird:             earlyBird,
		NightOwl:              nightOwl,
		MarathonWorker:        marathonWorker,
		DeadlineDominator:     deadlineDominator,
		PowerHour:             powerHour,
		ProcrastinationBuster: procrastinationBuster,

		ConsistencyRoyalty: consistencyRoyalty,
		YearGrowth:         yearGrowth,
		ComebackKid:        comebackKid,
		PomodoroStarter:    sessionsAtLeast(th.Starter),
		FocusApprentice:    sessionsAtLeast(th.Apprentice),
		PomodoroPro:        sessionsAtLeast(th.Pro),

		DearDiary:       entriesAtLeast(1),
		MindfulWriter:   entriesAtLeast(10),
		DeepThinker:     entriesAtLeast(50),
		EmotionExplorer: emotionExplorer,
		ImprovementGuru: improvementGuru,

		WeekendWarrior:   weekendWarrior,
		MondayMotivation: mondayMotivation,
		FocusBeast:       focusBeast,
		DistractionFree:  never,
		AllRounder:       allRounder,
		BetaTester:       betaTester,
		HiddenGem:        hiddenGem,

		MotivationMentor:  never,
		TeamPlayer:        teamPlayer,
		ChallengeAccepted: challengeAccepted,
	}
}
