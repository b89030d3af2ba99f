package tui

import (
	"os"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sadopc/focusboard/internal/analytics"
	"github.com/sadopc/focusboard/internal/app"
	"github.com/sadopc/focusboard/internal/badges"
	"github.com/sadopc/focusboard/internal/diary"
	"github.com/sadopc/focusboard/internal/store"
	"github.com/sadopc/focusboard/internal/tasks"
	"github.com/sadopc/focusboard/internal/timer"
)

// 2026-03-04 is a Wednesday.
var testNow = time.Date(2026, 3, 4, 14, 0, 0, 0, time.UTC)

func clock() time.Time { return testNow }

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.NewMemory()
	if err != nil {
		t.Fatalf("new memory store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// newTestDash wires a full dashboard with a one-minute work/break timer.
func newTestDash(t *testing.T) (*app.Dashboard, *store.Store) {
	t.Helper()
	s := newTestStore(t)
	d, err := app.New(app.Deps{
		Tasks:     tasks.New(s, tasks.WithClock(clock)),
		Diary:     diary.New(s, diary.WithClock(clock)),
		Analytics: analytics.New(s, analytics.WithLocation(time.UTC)),
		Badges:    badges.New(s),
		Timer:     timer.New(time.Minute, time.Minute, timer.WithClock(clock)),
		Settings:  s,
		Now:       clock,
	})
	if err != nil {
		t.Fatalf("new dashboard: %v", err)
	}
	return d, s
}

func newTestApp(t *testing.T) (App, *app.Dashboard, *store.Store) {
	t.Helper()
	d, s := newTestDash(t)
	a := NewApp(d, s, WithClock(clock))
	m, _ := a.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return m.(App), d, s
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var (
	space = tea.KeyMsg{Type: tea.KeySpace}
	enter = tea.KeyMsg{Type: tea.KeyEnter}
	esc   = tea.KeyMsg{Type: tea.KeyEsc}
	down  = tea.KeyMsg{Type: tea.KeyDown}
	up    = tea.KeyMsg{Type: tea.KeyUp}
	tab   = tea.KeyMsg{Type: tea.KeyTab}
)

func send(t *testing.T, a App, msgs ...tea.Msg) App {
	t.Helper()
	for _, msg := range msgs {
		m, _ := a.Update(msg)
		a = m.(App)
	}
	return a
}

// statusOf runs cmd and returns the status message it produced.
func statusOf(t *testing.T, cmd tea.Cmd) statusMsg {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a command")
	}
	raw := cmd()
	msg, ok := raw.(statusMsg)
	if !ok {
		t.Fatalf("expected statusMsg, got %T", raw)
	}
	return msg
}

// ============================================================
// Helpers
// ============================================================

func TestViewNames(t *testing.T) {
	if len(viewNames) != 8 {
		t.Fatalf("expected 8 views, got %d", len(viewNames))
	}
	if len(tabs) != len(viewNames) {
		t.Fatalf("%d tab bindings for %d views", len(tabs), len(viewNames))
	}
	if viewNames[viewSettings] != "Settings" || viewNames[viewChat] != "Chat" {
		t.Fatal("view names out of order")
	}
}

func TestNextDuration(t *testing.T) {
	tests := []struct{ in, want int }{
		{15, 25},
		{25, 45},
		{45, 15},
		{30, 15},
	}
	for _, tt := range tests {
		if got := nextDuration(tt.in); got != tt.want {
			t.Errorf("nextDuration(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestFormatDue(t *testing.T) {
	if got := formatDue(nil, time.UTC); got != "" {
		t.Fatalf("nil due should render empty, got %q", got)
	}
	due := time.Date(2026, 3, 5, 9, 30, 0, 0, time.UTC)
	if got := formatDue(&due, time.UTC); got != "Mar 05 09:30" {
		t.Fatalf("got %q", got)
	}
}

func TestValidators(t *testing.T) {
	if validateDue("") != nil || validateDue("2026-03-05") != nil || validateDue("2026-03-05 10:00") != nil {
		t.Fatal("valid due dates rejected")
	}
	if validateDue("tomorrow") == nil {
		t.Fatal("invalid due date accepted")
	}
	if validateEstimate("") != nil || validateEstimate("30") != nil {
		t.Fatal("valid estimates rejected")
	}
	if validateEstimate("-5") == nil || validateEstimate("abc") == nil {
		t.Fatal("invalid estimates accepted")
	}
	if required("task")("  ") == nil {
		t.Fatal("blank text accepted")
	}
	if positiveMinutes("0") == nil || positiveMinutes("25") != nil {
		t.Fatal("positiveMinutes")
	}
}

func TestUnlockedText(t *testing.T) {
	b, _ := badges.Lookup(badges.FirstStep)
	got := unlockedText([]badges.Badge{b})
	if !strings.HasPrefix(got, "Badge unlocked: ") || !strings.Contains(got, b.Name) {
		t.Fatalf("got %q", got)
	}
}

// ============================================================
// Pomodoro view
// ============================================================

func TestPomodoroKeys(t *testing.T) {
	d, s := newTestDash(t)
	p := newPomodoroModel(d)
	tm := d.Timer()

	p, _ = p.update(runes("s"))
	if tm.State() != timer.Running {
		t.Fatalf("s should start, got %s", tm.State())
	}
	p, _ = p.update(space)
	if tm.State() != timer.Paused {
		t.Fatalf("space should pause, got %s", tm.State())
	}
	p, _ = p.update(space)
	if tm.State() != timer.Running {
		t.Fatalf("space should resume, got %s", tm.State())
	}

	// The length cannot change mid-session.
	_, cmd := p.update(runes("c"))
	if msg := statusOf(t, cmd); !msg.isError {
		t.Fatal("cycling while running should report an error")
	}

	p, _ = p.update(runes("x"))
	if tm.State() != timer.Idle || tm.Display() != "01:00" {
		t.Fatalf("x should reset, got %s %s", tm.State(), tm.Display())
	}

	_, cmd = p.update(runes("c"))
	if msg := statusOf(t, cmd); msg.isError {
		t.Fatalf("unexpected error: %s", msg.text)
	}
	if tm.WorkSeconds() != 15*60 {
		t.Fatalf("expected 15 min, got %d secs", tm.WorkSeconds())
	}
	if v, _ := s.GetSetting(store.SettingPomodoroWork); v != "900" {
		t.Fatalf("setting not persisted, got %q", v)
	}
}

func TestPomodoroViewStates(t *testing.T) {
	d, _ := newTestDash(t)
	p := newPomodoroModel(d)
	p.setSize(100, 30)

	if !strings.Contains(p.view(), "IDLE") {
		t.Fatal("idle timer should say IDLE")
	}
	d.Timer().Start()
	out := p.view()
	if !strings.Contains(out, "WORK") || !strings.Contains(out, "01:00") {
		t.Fatal("running view should show phase and clock")
	}
}

func TestTickCompletesSession(t *testing.T) {
	a, d, _ := newTestApp(t)
	d.Timer().Start()
	for i := 0; i < 60; i++ {
		a = send(t, a, tickMsg(testNow))
	}
	if d.Analytics().TotalSessions() != 1 {
		t.Fatalf("expected 1 session, got %d", d.Analytics().TotalSessions())
	}
	if d.Timer().Phase() != timer.Break || d.Timer().State() != timer.Idle {
		t.Fatal("timer should wait in the break phase")
	}
}

// ============================================================
// Tasks view
// ============================================================

func TestSubmitTask(t *testing.T) {
	d, _ := newTestDash(t)
	m := newTasksModel(d, clock)

	*m.formText = "Write report"
	*m.formPriority = string(tasks.PriorityHigh)
	*m.formWorkType = "study"
	*m.formEstimate = "30"
	*m.formDue = "2026-03-05 10:00"
	m.submitTask()

	all := d.Tasks().All()
	if len(all) != 1 {
		t.Fatalf("expected 1 task, got %d", len(all))
	}
	got := all[0]
	if got.Text != "Write report" || got.Priority != tasks.PriorityHigh || got.WorkType != "study" || got.EstimatedTime != 30 {
		t.Fatalf("unexpected task %+v", got)
	}
	want := time.Date(2026, 3, 5, 10, 0, 0, 0, time.UTC)
	if got.DueDate == nil || !got.DueDate.Equal(want) {
		t.Fatalf("due = %v, want %v", got.DueDate, want)
	}
}

func TestSubmitTaskRejectsInput(t *testing.T) {
	d, _ := newTestDash(t)
	m := newTasksModel(d, clock)

	*m.formText = "   "
	if cmd := m.submitTask(); cmd != nil {
		t.Fatal("empty text should be ignored silently")
	}

	*m.formText = "Plan"
	*m.formDue = "someday"
	if msg := statusOf(t, m.submitTask()); !msg.isError {
		t.Fatal("bad due date should report an error")
	}
	if d.Tasks().Len() != 0 {
		t.Fatal("no task should be added")
	}
}

func TestTaskKeys(t *testing.T) {
	d, _ := newTestDash(t)
	d.AddTask(tasks.NewTask{Text: "first"})
	d.AddTask(tasks.NewTask{Text: "second", Priority: tasks.PriorityHigh})
	m := newTasksModel(d, clock)
	m.setSize(100, 30)

	m, _ = m.update(down)
	if m.cursor != 1 {
		t.Fatalf("cursor = %d, want 1", m.cursor)
	}
	m, _ = m.update(down)
	if m.cursor != 1 {
		t.Fatal("cursor should stop at the last task")
	}

	m, _ = m.update(runes("t"))
	if done, _ := d.Tasks().Counts(); done != 1 {
		t.Fatalf("expected 1 completed, got %d", done)
	}
	if !d.Badges().Has(badges.FirstStep) {
		t.Fatal("completing a task should unlock the first badge")
	}

	m, _ = m.update(up)
	m, _ = m.update(runes("d"))
	if d.Tasks().Len() != 1 {
		t.Fatalf("expected 1 task left, got %d", d.Tasks().Len())
	}
	if m.cursor != 0 {
		t.Fatalf("cursor = %d, want 0", m.cursor)
	}

	// low, medium, high
	m, _ = m.update(runes("f"))
	if len(m.visible()) != 0 {
		t.Fatal("low filter should hide the high-priority task")
	}
	m, _ = m.update(runes("f"))
	m, _ = m.update(runes("f"))
	if len(m.visible()) != 1 {
		t.Fatal("high filter should show the high-priority task")
	}
	if !strings.Contains(m.view(), "filter: high") {
		t.Fatal("view should show the active filter")
	}
}

func TestTaskFormOpensAndCancels(t *testing.T) {
	d, _ := newTestDash(t)
	m := newTasksModel(d, clock)
	m.setSize(100, 30)

	m, _ = m.update(runes("a"))
	if !m.formActive || m.formType != "task" {
		t.Fatal("a should open the new task form")
	}
	if !strings.Contains(m.view(), "New Task") {
		t.Fatal("form view should be shown")
	}
	m, _ = m.update(esc)
	if m.formActive {
		t.Fatal("esc should cancel the form")
	}
}

// ============================================================
// Diary view
// ============================================================

func TestSubmitEntry(t *testing.T) {
	d, _ := newTestDash(t)
	m := newDiaryModel(d, &diary.MediaLibrary{Dir: t.TempDir()})
	m.setSize(100, 30)

	*m.formPrompt = analytics.ReflectionPrompts[0]
	*m.formText = "Shipped the release"
	*m.formMood = string(diary.MoodHappy)
	*m.formRating = "4"
	if cmd := m.submitEntry(); cmd == nil {
		t.Fatal("first entry should report unlocked badges")
	}

	entries := d.Diary().All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	e := entries[0]
	if !strings.HasPrefix(e.Text, analytics.ReflectionPrompts[0]+"\n\n") {
		t.Fatalf("prompt should lead the text, got %q", e.Text)
	}
	if e.MoodValue() != diary.MoodHappy || e.Rating() != 4 {
		t.Fatalf("unexpected extension %+v", e.Extension)
	}
	if !d.Badges().Has(badges.DearDiary) {
		t.Fatal("first entry should unlock Dear Diary")
	}
	if !strings.Contains(m.view(), "Shipped the release") {
		t.Fatal("entry should be listed")
	}
}

func TestSubmitEntryWithMedia(t *testing.T) {
	d, _ := newTestDash(t)
	lib := diary.MediaLibrary{Dir: t.TempDir()}
	m := newDiaryModel(d, &lib)

	src := t.TempDir() + "/photo.png"
	if err := os.WriteFile(src, []byte("png"), 0o644); err != nil {
		t.Fatal(err)
	}
	*m.formText = "With a picture"
	*m.formMedia = src
	m.submitEntry()

	entries := d.Diary().All()
	if len(entries) != 1 || entries[0].Extension == nil || len(entries[0].Extension.MediaFiles) != 1 {
		t.Fatal("entry should carry one attachment")
	}
	if _, err := os.Stat(lib.Path(entries[0].Extension.MediaFiles[0])); err != nil {
		t.Fatalf("attachment not copied: %v", err)
	}
}

func TestMediaHelpers(t *testing.T) {
	got := splitPaths(" a.png, ,b.mp4 ")
	if len(got) != 2 || got[0] != "a.png" || got[1] != "b.mp4" {
		t.Fatalf("splitPaths = %v", got)
	}
	if validateMedia("a.png, b.mp4") != nil {
		t.Fatal("supported media rejected")
	}
	if validateMedia("notes.txt") == nil {
		t.Fatal("unsupported media accepted")
	}
}

// ============================================================
// Badges and chat views
// ============================================================

func TestBadgesCategoryCycle(t *testing.T) {
	d, _ := newTestDash(t)
	m := newBadgesModel(d)
	m.setSize(120, 40)

	m, _ = m.update(down)
	if m.category != 1 {
		t.Fatalf("category = %d, want 1", m.category)
	}
	m, _ = m.update(up)
	m, _ = m.update(up)
	if m.category != len(badges.Categories)-1 {
		t.Fatal("up from the first category should wrap")
	}
	if !strings.Contains(m.view(), badges.Categories[m.category].Title()) {
		t.Fatal("view should show the selected category")
	}
}

func TestChatFlow(t *testing.T) {
	d, _ := newTestDash(t)
	m := newChatModel(d)
	m.setSize(100, 30)

	if m.typing() {
		t.Fatal("input should start blurred")
	}
	m, _ = m.update(enter)
	if !m.typing() {
		t.Fatal("enter should focus the input")
	}

	m.input.SetValue("how many tasks?")
	m, _ = m.update(enter)
	if len(m.history) != 3 {
		t.Fatalf("expected greeting plus 2 lines, got %d", len(m.history))
	}
	if !m.history[1].fromUser || m.history[2].text != "You have 0 completed tasks out of 0 total tasks." {
		t.Fatalf("unexpected history %+v", m.history)
	}
	if m.input.Value() != "" {
		t.Fatal("input should be cleared after sending")
	}

	m, _ = m.update(esc)
	if m.typing() {
		t.Fatal("esc should blur the input")
	}
}

// ============================================================
// Settings view
// ============================================================

func TestSecsToMin(t *testing.T) {
	tests := []struct{ in, want string }{
		{"1500", "25"},
		{"300", "5"},
		{"abc", "abc"},
	}
	for _, tt := range tests {
		if got := secsToMin(tt.in); got != tt.want {
			t.Errorf("secsToMin(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestMinToSecs(t *testing.T) {
	tests := []struct{ in, want string }{
		{"25", "1500"},
		{" 5 ", "300"},
		{"abc", "abc"},
	}
	for _, tt := range tests {
		if got := minToSecs(tt.in); got != tt.want {
			t.Errorf("minToSecs(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatSettingValue(t *testing.T) {
	tests := []struct{ key, val, want string }{
		{store.SettingPomodoroWork, "1500", "25 min"},
		{store.SettingPomodoroBreak, "300", "5 min"},
		{store.SettingWeekStart, "sunday", "sunday"},
	}
	for _, tt := range tests {
		if got := formatSettingValue(tt.key, tt.val); got != tt.want {
			t.Errorf("formatSettingValue(%q, %q) = %q, want %q", tt.key, tt.val, got, tt.want)
		}
	}
}

func TestSaveSettingsAppliesToTimer(t *testing.T) {
	d, s := newTestDash(t)
	m := newSettingsModel(s, d)

	*m.pomodoroWork = "30"
	*m.pomodoroBreak = "10"
	*m.weekStart = "sunday"
	if err := m.saveSettings(); err != nil {
		t.Fatal(err)
	}
	if msg := statusOf(t, m.applyToTimer()); msg.isError {
		t.Fatalf("unexpected error: %s", msg.text)
	}

	if d.Timer().WorkSeconds() != 1800 || d.Timer().BreakSeconds() != 600 {
		t.Fatalf("timer not updated: %d/%d", d.Timer().WorkSeconds(), d.Timer().BreakSeconds())
	}
	for k, want := range map[string]string{
		store.SettingPomodoroWork:  "1800",
		store.SettingPomodoroBreak: "600",
		store.SettingWeekStart:     "sunday",
	} {
		if v, _ := s.GetSetting(k); v != want {
			t.Errorf("%s = %q, want %q", k, v, want)
		}
	}

	m.reload()
	m.setSize(100, 30)
	if !strings.Contains(m.view(), "30 min") {
		t.Fatal("view should list the saved work length")
	}
}

func TestSaveSettingsWhileRunning(t *testing.T) {
	d, s := newTestDash(t)
	m := newSettingsModel(s, d)
	d.Timer().Start()

	*m.pomodoroWork = "30"
	*m.pomodoroBreak = "10"
	*m.weekStart = "monday"
	m.saveSettings()
	msg := statusOf(t, m.applyToTimer())
	if !strings.Contains(msg.text, "reset the timer") {
		t.Fatalf("got %q", msg.text)
	}
	if d.Timer().WorkSeconds() != 60 {
		t.Fatal("running timer must keep its length")
	}
}

// ============================================================
// Missing components
// ============================================================

func TestUnavailablePanels(t *testing.T) {
	s := newTestStore(t)
	d, err := app.New(app.Deps{
		Tasks:     tasks.New(s),
		Analytics: analytics.New(s),
		Badges:    badges.New(s),
	})
	if err != nil {
		t.Fatal(err)
	}
	a := NewApp(d, nil)
	a = send(t, a, tea.WindowSizeMsg{Width: 120, Height: 40})

	for _, v := range []viewState{viewPomodoro, viewDiary, viewSettings} {
		a.activeView = v
		if !strings.Contains(a.View(), "unavailable") {
			t.Errorf("view %s should be unavailable", viewNames[v])
		}
	}

	// Ticks and keys are harmless without a timer.
	a.activeView = viewPomodoro
	a = send(t, a, tickMsg(testNow), runes("s"), space)
	if footerIndicator(d.Timer()) != "" {
		t.Fatal("no timer, no indicator")
	}
}

// ============================================================
// Overview
// ============================================================

func TestOverviewToday(t *testing.T) {
	d, _ := newTestDash(t)
	task, _, _ := d.AddTask(tasks.NewTask{Text: "a"})
	d.ToggleTask(task.ID)
	d.RecordSession(analytics.Session{CompletedAt: testNow, Minutes: 25})
	d.RecordSession(analytics.Session{CompletedAt: testNow.Add(-72 * time.Hour), Minutes: 25})

	o := newOverviewModel(d, clock)
	done, sessions := o.today()
	if done != 1 || sessions != 1 {
		t.Fatalf("today() = %d, %d; want 1, 1", done, sessions)
	}

	o.setSize(120, 40)
	out := o.view(d.Insights())
	if !strings.Contains(out, "Recent Badges") || !strings.Contains(out, "Insights") {
		t.Fatal("overview should show badges and insights")
	}
}

func TestOverviewTimerKeys(t *testing.T) {
	d, _ := newTestDash(t)
	o := newOverviewModel(d, clock)

	o, _ = o.update(runes("s"))
	if d.Timer().State() != timer.Running {
		t.Fatal("s should start the timer from the overview")
	}
	o.update(space)
	if d.Timer().State() != timer.Paused {
		t.Fatal("space should pause the timer from the overview")
	}
}

// ============================================================
// App model
// ============================================================

func TestNewApp(t *testing.T) {
	a, _, _ := newTestApp(t)

	if a.activeView != viewDashboard {
		t.Fatal("default view should be dashboard")
	}
	if a.showHelp {
		t.Fatal("help should be hidden by default")
	}
	if a.exportPicking {
		t.Fatal("export picker should be hidden by default")
	}
	if a.isFormActive() {
		t.Fatal("no forms should be active initially")
	}
}

func TestAppViewStates(t *testing.T) {
	a, _, _ := newTestApp(t)

	// Test all views render without panic
	for i := range viewNames {
		a.activeView = viewState(i)
		if a.View() == "" {
			t.Fatalf("view %s rendered empty", viewNames[i])
		}
	}
}

func TestAppTabSwitching(t *testing.T) {
	a, _, _ := newTestApp(t)

	a = send(t, a, runes("2"))
	if a.activeView != viewTasks {
		t.Fatalf("2 should open tasks, got %s", viewNames[a.activeView])
	}
	a = send(t, a, tab)
	if a.activeView != viewPomodoro {
		t.Fatalf("tab should advance to pomodoro, got %s", viewNames[a.activeView])
	}
	a = send(t, a, runes("8"), tab)
	if a.activeView != viewDashboard {
		t.Fatal("tab should wrap to the dashboard")
	}
}

func TestAppChatCapturesKeys(t *testing.T) {
	a, _, _ := newTestApp(t)

	a = send(t, a, runes("7"))
	if a.activeView != viewChat || !a.isFormActive() {
		t.Fatal("entering chat should focus the input")
	}
	a = send(t, a, runes("2"), runes("q"))
	if a.activeView != viewChat {
		t.Fatal("tab keys should type while chatting")
	}
	if a.chat.input.Value() != "2q" {
		t.Fatalf("input = %q", a.chat.input.Value())
	}

	a = send(t, a, esc, runes("1"))
	if a.activeView != viewDashboard {
		t.Fatal("after esc the tab keys switch views again")
	}
}

func TestAppWeekStartSetting(t *testing.T) {
	a, _, s := newTestApp(t)
	if a.analytics.sundayFirst {
		t.Fatal("default week starts on Monday")
	}
	if err := s.SetSetting(store.SettingWeekStart, "sunday"); err != nil {
		t.Fatal(err)
	}
	a = send(t, a, runes("4"))
	if !a.analytics.sundayFirst {
		t.Fatal("analytics should pick up the sunday week start")
	}
}

func TestAppInsightsTick(t *testing.T) {
	a, d, _ := newTestApp(t)
	past := testNow.Add(-time.Hour)
	d.AddTask(tasks.NewTask{Text: "late", DueDate: &past})

	if a.insights.Overdue != 0 {
		t.Fatal("insights are cached until the next refresh")
	}
	a = send(t, a, insightsTickMsg(testNow))
	if a.insights.Overdue != 1 {
		t.Fatalf("overdue = %d, want 1", a.insights.Overdue)
	}
}

func TestAppRenderHeaderContainsAllTabs(t *testing.T) {
	a, _, _ := newTestApp(t)

	header := a.renderHeader()
	if !strings.Contains(header, "focusboard") {
		t.Fatal("header missing title")
	}
	for _, name := range viewNames {
		if !strings.Contains(header, name) {
			t.Fatalf("header missing tab %q", name)
		}
	}
}

func TestAppRenderFooter(t *testing.T) {
	a, d, _ := newTestApp(t)

	if a.renderFooter() == "" {
		t.Fatal("footer should not be empty")
	}
	d.Timer().Start()
	if !strings.Contains(a.renderFooter(), "WORK 01:00") {
		t.Fatal("footer should show the running countdown")
	}
}

func TestAppLoadingState(t *testing.T) {
	d, s := newTestDash(t)
	a := NewApp(d, s)
	// Width 0 means not yet sized
	if out := a.View(); out != "Loading..." {
		t.Fatalf("expected 'Loading...', got %q", out)
	}
}

func TestAppStatusMessage(t *testing.T) {
	a, _, _ := newTestApp(t)

	a = send(t, a, statusMsg{text: "test status"})
	if !strings.Contains(a.renderFooter(), "test status") {
		t.Fatal("footer should contain status message")
	}

	b, _ := badges.Lookup(badges.DearDiary)
	a = send(t, a, badgesUnlockedMsg{badges: []badges.Badge{b}})
	if !strings.Contains(a.status, "Badge unlocked") || a.statusErr {
		t.Fatalf("status = %q", a.status)
	}
}

func TestAppExportPicker(t *testing.T) {
	a, _, _ := newTestApp(t)

	a = send(t, a, runes("e"))
	if !a.exportPicking {
		t.Fatal("e should open the export picker")
	}
	a = send(t, a, down, down)
	if a.exportCursor != 1 {
		t.Fatalf("cursor = %d, want 1", a.exportCursor)
	}
	a = send(t, a, esc)
	if a.exportPicking {
		t.Fatal("esc should close the picker")
	}
}

func TestAppExportWritesFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	a, d, _ := newTestApp(t)
	d.AddTask(tasks.NewTask{Text: "export me"})

	msg := a.doExport("json")()
	done, ok := msg.(exportDoneMsg)
	if !ok {
		t.Fatalf("expected exportDoneMsg, got %#v", msg)
	}
	data, err := os.ReadFile(done.path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "export me") {
		t.Fatal("export should contain the task")
	}

	a = send(t, a, done)
	if !strings.Contains(a.status, "Exported to") {
		t.Fatalf("status = %q", a.status)
	}
}

// ============================================================
// Key bindings
// ============================================================

func TestKeyMapShortHelp(t *testing.T) {
	bindings := keys.ShortHelp()
	if len(bindings) == 0 {
		t.Fatal("short help should have bindings")
	}
}

func TestKeyMapFullHelp(t *testing.T) {
	groups := keys.FullHelp()
	if len(groups) == 0 {
		t.Fatal("full help should have groups")
	}
	for i, g := range groups {
		if len(g) == 0 {
			t.Fatalf("full help group %d is empty", i)
		}
	}
}

// ============================================================
// Styles (smoke test, just verify they don't panic)
// ============================================================

func TestStylesRender(t *testing.T) {
	styles := []struct {
		name string
		fn   func() string
	}{
		{"activeTab", func() string { return activeTabStyle.Render("test") }},
		{"panel", func() string { return panelStyle.Render("test") }},
		{"timerBreak", func() string { return timerBreakStyle.Render("test") }},
		{"doneTask", func() string { return doneTaskStyle.Render("test") }},
		{"earnedBadge", func() string { return earnedBadgeStyle.Render("test") }},
		{"botBubble", func() string { return botBubbleStyle.Render("test") }},
		{"priorityHigh", func() string { return priorityStyle(tasks.PriorityHigh).Render("test") }},
		{"priorityUnknown", func() string { return priorityStyle("urgent").Render("test") }},
	}
	for _, s := range styles {
		if out := s.fn(); out == "" {
			t.Errorf("style %s rendered empty", s.name)
		}
	}
}
