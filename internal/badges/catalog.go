// Package badges holds the badge catalog and the rule engine that unlocks
// badges from task, diary and session activity.
package badges

type Category string

const (
	CategoryStreak      Category = "streak"
	CategoryCompletion  Category = "completion"
	CategoryAchievement Category = "achievement"
	CategoryDedication  Category = "dedication"
	CategoryReflection  Category = "reflection"
	CategorySpecial     Category = "special"
	CategorySocial      Category = "social"
)

// Categories in display order.
var Categories = []Category{
	CategoryStreak,
	CategoryCompletion,
	CategoryAchievement,
	CategoryDedication,
	CategoryReflection,
	CategorySpecial,
	CategorySocial,
}

var categoryTitles = map[Category]string{
	CategoryStreak:      "🔥 Streak & Consistency",
	CategoryCompletion:  "🚀 Task Completion",
	CategoryAchievement: "🏆 Achievement & Milestone",
	CategoryDedication:  "📅 Long-Term Dedication",
	CategoryReflection:  "🧠 Self-Reflection & Diary",
	CategorySpecial:     "💡 Special & Fun",
	CategorySocial:      "🔗 Social & Community",
}

func (c Category) Title() string {
	if t, ok := categoryTitles[c]; ok {
		return t
	}
	return string(c)
}

type Badge struct {
	ID          string
	Name        string
	Icon        string
	Description string
	Category    Category
}

// Badge ids referenced by rules and tests.
const (
	FirstStep             = "first_step"
	ThreeDayStreak        = "three_day_streak"
	WeekWarrior           = "week_warrior"
	MomentumMaster        = "momentum_master"
	HabitHero             = "habit_hero"
	Unstoppable           = "unstoppable"
	TaskStarter           = "task_starter"
	TaskFinisher          = "task_finisher"
	ProductivityChamp     = "productivity_champ"
	TaskSlayer            = "task_slayer"
	MasterExecutor        = "master_executor"
	NoExcuses             = "no_excuses"
	LastMinute            = "last_minute"
	EarlyBird             = "early_bird"
	NightOwl              = "night_owl"
	MarathonWorker        = "marathon_worker"
	DeadlineDominator     = "deadline_dominator"
	PowerHour             = "power_hour"
	ProcrastinationBuster = "procrastination_buster"
	ConsistencyRoyalty    = "consistency_royalty"
	YearGrowth            = "year_growth"
	ComebackKid           = "comeback_kid"
	PomodoroStarter       = "pomodoro_starter"
	FocusApprentice       = "focus_apprentice"
	PomodoroPro           = "pomodoro_pro"
	DearDiary             = "dear_diary"
	MindfulWriter         = "mindful_writer"
	DeepThinker           = "deep_thinker"
	EmotionExplorer       = "emotion_explorer"
	ImprovementGuru       = "improvement_guru"
	WeekendWarrior        = "weekend_warrior"
	MondayMotivation      = "monday_motivation"
	FocusBeast            = "focus_beast"
	DistractionFree       = "distraction_free"
	AllRounder            = "all_rounder"
	BetaTester            = "beta_tester"
	HiddenGem             = "hidden_gem"
	MotivationMentor      = "motivation_mentor"
	TeamPlayer            = "team_player"
	ChallengeAccepted     = "challenge_accepted"
)

// Catalog is the ordered, static list of badges.
var Catalog = []Badge{
	{FirstStep, "First Step", "🏁", "Completed the first task", CategoryStreak},
	{ThreeDayStreak, "3-Day Streak", "🔥", "Completed tasks for three consecutive days", CategoryStreak},
	{WeekWarrior, "One-Week Warrior", "🔥", "Maintained a 7-day streak", CategoryStreak},
	{MomentumMaster, "Momentum Master", "🔥", "Maintained a 14-day streak", CategoryStreak},
	{HabitHero, "Habit Hero", "👑", "Maintained a 30-day streak", CategoryStreak},
	{Unstoppable, "Unstoppable", "⚡", "Maintained a 90-day streak", CategoryStreak},

	{TaskStarter, "Task Starter", "▶️", "Completed 5 tasks", CategoryCompletion},
	{TaskFinisher, "Task Finisher", "✅", "Completed 10 tasks", CategoryCompletion},
	{ProductivityChamp, "Productivity Champ", "🏆", "Completed 25 tasks", CategoryCompletion},
	{TaskSlayer, "Task Slayer", "🐉", "Completed 50 tasks", CategoryCompletion},
	{MasterExecutor, "Master Executor", "⭐", "Completed 100 tasks", CategoryCompletion},

	{NoExcuses, "No More Excuses", "✔️", "Completed a high-priority task on time", CategoryAchievement},
	{LastMinute, "Last-Minute Saver", "⏰", "Completed a task within 5 minutes of the deadline", CategoryAchievement},
	{EarlyBird, "Early Bird", "🐦", "Completed a task at least a day before the deadline", CategoryAchievement},
	{NightOwl, "Night Owl", "🌙", "Completed a task after midnight", CategoryAchievement},
	{MarathonWorker, "Marathon Worker", "🏃", "Completed 3+ tasks in a single day", CategoryAchievement},
	{DeadlineDominator, "Deadline Dominator", "📆", "Completed all tasks in a week without missing any", CategoryAchievement},
	{PowerHour, "Power Hour", "⚡", "Completed a task within 30 minutes using focus mode", CategoryAchievement},
	{ProcrastinationBuster, "Procrastination Buster", "⌛", "Rescheduled a task but still completed it on time", CategoryAchievement},

	{ConsistencyRoyalty, "Consistency King/Queen", "👑", "Maintained an active streak for over 3 months", CategoryDedication},
	{YearGrowth, "Year of Growth", "🌳", "Used the app consistently for 1 year", CategoryDedication},
	{ComebackKid, "Comeback Kid", "↩️", "Broke a streak but bounced back stronger", CategoryDedication},
	{PomodoroStarter, "Pomodoro Starter", "🍅", "Completed your first focus sessions", CategoryDedication},
	{FocusApprentice, "Focus Apprentice", "🎧", "Completed a steady run of focus sessions", CategoryDedication},
	{PomodoroPro, "Pomodoro Pro", "🧘", "Completed a long record of focus sessions", CategoryDedication},

	{DearDiary, "Dear Diary", "📖", "Made the first diary entry", CategoryReflection},
	{MindfulWriter, "Mindful Writer", "🪶", "Logged 10 diary entries", CategoryReflection},
	{DeepThinker, "Deep Thinker", "🧠", "Logged 50 diary entries", CategoryReflection},
	{EmotionExplorer, "Emotion Explorer", "😊", "Consistently tracked mood with the diary", CategoryReflection},
	{ImprovementGuru, "Self-Improvement Guru", "📈", "Used insights to adjust habits", CategoryReflection},

	{WeekendWarrior, "Weekend Warrior", "🏖️", "Completed a task on a weekend", CategorySpecial},
	{MondayMotivation, "Monday Motivation", "☕", "Completed a task early on a Monday", CategorySpecial},
	{FocusBeast, "Focus Beast", "🎯", "Focused for 1 hour in a single day", CategorySpecial},
	{DistractionFree, "Distraction-Free Master", "🚫", "Avoided social media distractions while working", CategorySpecial},
	{AllRounder, "All-Rounder", "🎖️", "Earned at least one badge in every other category", CategorySpecial},
	{BetaTester, "Beta Tester", "🧪", "Used early features", CategorySpecial},
	{HiddenGem, "Hidden Gem", "💎", "Completed a focus session on every day of the week", CategorySpecial},

	{MotivationMentor, "Motivation Mentor", "👥", "Helped a friend join the app", CategorySocial},
	{TeamPlayer, "Team Player", "🤝", "Completed a collaborative goal", CategorySocial},
	{ChallengeAccepted, "Challenge Accepted", "🚩", "Completed 4 focus sessions in a single day", CategorySocial},
}

var byID = func() map[string]Badge {
	m := make(map[string]Badge, len(Catalog))
	for _, b := range Catalog {
		m[b.ID] = b
	}
	return m
}()

// Lookup returns the catalog entry for id.
func Lookup(id string) (Badge, bool) {
	b, ok := byID[id]
	return b, ok
}

// ByCategory returns the catalog entries of c in catalog order.
func ByCategory(c Category) []Badge {
	var out []Badge
	for _, b := range Catalog {
		if b.Category == c {
			out = append(out, b)
		}
	}
	return out
}
