package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/focusboard/internal/analytics"
	"github.com/sadopc/focusboard/internal/app"
	"github.com/sadopc/focusboard/internal/badges"
	"github.com/sadopc/focusboard/internal/diary"
	"github.com/sadopc/focusboard/internal/export"
	"github.com/sadopc/focusboard/internal/store"
)

// App is the root Bubble Tea model.
type App struct {
	dash   *app.Dashboard
	store  *store.Store
	now    func() time.Time
	width  int
	height int

	activeView    viewState
	showHelp      bool
	exportPicking bool
	exportCursor  int

	overview  overviewModel
	tasks     tasksModel
	pomodoro  pomodoroModel
	analytics analyticsModel
	diary     diaryModel
	badges    badgesModel
	chat      chatModel
	settings  settingsModel

	insights analytics.Insights

	media diary.MediaLibrary

	// Reported once by Init.
	unlocked []badges.Badge
	loadErr  error

	help      help.Model
	status    string
	statusErr bool
}

type Option func(*App)

// WithUnlocked reports badges unlocked while loading.
func WithUnlocked(bs []badges.Badge) Option {
	return func(a *App) { a.unlocked = bs }
}

// WithLoadError reports a failure to restore saved state.
func WithLoadError(err error) Option {
	return func(a *App) { a.loadErr = err }
}

// WithMedia sets the library diary attachments are copied into.
func WithMedia(m diary.MediaLibrary) Option {
	return func(a *App) { a.media = m }
}

func WithClock(now func() time.Time) Option {
	return func(a *App) { a.now = now }
}

// NewApp builds the root model. s may be nil, in which case the settings
// view is unavailable.
func NewApp(d *app.Dashboard, s *store.Store, opts ...Option) App {
	h := help.New()
	h.ShowAll = false

	a := App{
		dash:       d,
		store:      s,
		now:        time.Now,
		activeView: viewDashboard,
		help:       h,
	}
	for _, o := range opts {
		o(&a)
	}

	a.overview = newOverviewModel(d, a.now)
	a.tasks = newTasksModel(d, a.now)
	a.pomodoro = newPomodoroModel(d)
	a.analytics = newAnalyticsModel(d, a.now)
	media := a.media
	a.diary = newDiaryModel(d, &media)
	a.badges = newBadgesModel(d)
	a.chat = newChatModel(d)
	a.settings = newSettingsModel(s, d)
	a.settings.reload()
	a.refreshWeekStart()
	a.insights = d.Insights()
	return a
}

func (a App) Init() tea.Cmd {
	cmds := []tea.Cmd{tickCmd(), insightsTickCmd()}
	if missing := a.dash.Missing(); len(missing) > 0 {
		cmds = append(cmds, statusCmd(fmt.Sprintf("Running without: %v", missing), false))
	}
	if a.loadErr != nil {
		cmds = append(cmds, statusCmd(fmt.Sprintf("Could not restore saved data: %v", a.loadErr), true))
	}
	if len(a.unlocked) > 0 {
		unlocked := a.unlocked
		cmds = append(cmds, func() tea.Msg { return badgesUnlockedMsg{badges: unlocked} })
	}
	return tea.Sequence(cmds...)
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func insightsTickCmd() tea.Cmd {
	return tea.Tick(insightsInterval, func(t time.Time) tea.Msg {
		return insightsTickMsg(t)
	})
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		contentHeight := a.height - 4 // header + footer
		a.overview.setSize(a.width, contentHeight)
		a.tasks.setSize(a.width, contentHeight)
		a.pomodoro.setSize(a.width, contentHeight)
		a.analytics.setSize(a.width, contentHeight)
		a.diary.setSize(a.width, contentHeight)
		a.badges.setSize(a.width, contentHeight)
		a.chat.setSize(a.width, contentHeight)
		a.settings.setSize(a.width, contentHeight)
		return a, nil

	case tea.KeyMsg:
		// Export picker
		if a.exportPicking {
			return a.updateExportPicker(msg)
		}

		// If a child view is capturing input (e.g. form), delegate first.
		if a.isFormActive() {
			return a.updateActiveView(msg)
		}

		switch {
		case key.Matches(msg, keys.Export):
			a.exportPicking = true
			a.exportCursor = 0
			return a, nil
		case key.Matches(msg, keys.Quit):
			return a, tea.Quit
		case key.Matches(msg, keys.Help):
			a.showHelp = !a.showHelp
			a.help.ShowAll = a.showHelp
			return a, nil
		case key.Matches(msg, keys.Tab):
			return a.switchTo(viewState((int(a.activeView) + 1) % len(viewNames)))
		}
		for i, b := range tabs {
			if key.Matches(msg, b) {
				return a.switchTo(viewState(i))
			}
		}

	case tickMsg:
		res := a.dash.Tick()
		cmds := []tea.Cmd{tickCmd()}
		if res.SessionCompleted {
			cmds = append(cmds, statusCmd("Work session complete! Time for a break", false))
		}
		cmds = append(cmds, notify(res.Unlocked, res.Err))
		return a, tea.Batch(cmds...)

	case insightsTickMsg:
		a.insights = a.dash.Insights()
		return a, insightsTickCmd()

	case statusMsg:
		a.status = msg.text
		a.statusErr = msg.isError
		return a, nil

	case badgesUnlockedMsg:
		a.status = unlockedText(msg.badges)
		a.statusErr = false
		return a, nil

	case exportDoneMsg:
		a.status = "Exported to " + msg.path
		a.statusErr = false
		a.exportPicking = false
		return a, nil
	}

	return a.updateActiveView(msg)
}

// switchTo activates a view and refreshes whatever it caches.
func (a App) switchTo(v viewState) (tea.Model, tea.Cmd) {
	a.activeView = v
	switch v {
	case viewDashboard, viewAnalytics:
		a.insights = a.dash.Insights()
		a.refreshWeekStart()
	case viewSettings:
		a.settings.reload()
	case viewChat:
		var cmd tea.Cmd
		a.chat, cmd = a.chat.focus()
		return a, cmd
	}
	return a, nil
}

// refreshWeekStart reads the week_start setting into the chart views.
func (a *App) refreshWeekStart() {
	if a.store == nil {
		return
	}
	if v, err := a.store.GetSetting(store.SettingWeekStart); err == nil {
		a.analytics.sundayFirst = v == "sunday"
	}
}

func (a App) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.activeView {
	case viewDashboard:
		a.overview, cmd = a.overview.update(msg)
	case viewTasks:
		a.tasks, cmd = a.tasks.update(msg)
	case viewPomodoro:
		a.pomodoro, cmd = a.pomodoro.update(msg)
	case viewDiary:
		a.diary, cmd = a.diary.update(msg)
	case viewBadges:
		a.badges, cmd = a.badges.update(msg)
	case viewChat:
		a.chat, cmd = a.chat.update(msg)
	case viewSettings:
		a.settings, cmd = a.settings.update(msg)
	}
	return a, cmd
}

func (a App) isFormActive() bool {
	switch a.activeView {
	case viewTasks:
		return a.tasks.formActive
	case viewDiary:
		return a.diary.formActive
	case viewSettings:
		return a.settings.formActive
	case viewChat:
		return a.chat.typing()
	}
	return false
}

func (a App) View() string {
	if a.width == 0 {
		return "Loading..."
	}

	header := a.renderHeader()
	footer := a.renderFooter()

	var content string
	switch a.activeView {
	case viewDashboard:
		content = a.overview.view(a.insights)
	case viewTasks:
		content = a.tasks.view()
	case viewPomodoro:
		content = a.pomodoro.view()
	case viewAnalytics:
		content = a.analytics.view(a.insights)
	case viewDiary:
		content = a.diary.view()
	case viewBadges:
		content = a.badges.view()
	case viewChat:
		content = a.chat.view()
	case viewSettings:
		content = a.settings.view()
	}

	// Calculate available height for content
	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := max(1, a.height-headerHeight-footerHeight)

	// Show export picker overlay
	if a.exportPicking {
		content = a.renderExportPicker()
	}

	content = lipgloss.NewStyle().
		Width(a.width).
		Height(contentHeight).
		MaxHeight(contentHeight).
		Render(content)

	return lipgloss.JoinVertical(lipgloss.Left, header, content, footer)
}

func (a App) renderHeader() string {
	var labels []string
	for i, name := range viewNames {
		label := fmt.Sprintf("%d %s", i+1, name)
		if viewState(i) == a.activeView {
			labels = append(labels, activeTabStyle.Render(label))
		} else {
			labels = append(labels, inactiveTabStyle.Render(label))
		}
	}

	tabRow := lipgloss.JoinHorizontal(lipgloss.Bottom, labels...)

	title := lipgloss.NewStyle().Bold(true).Foreground(colorPrimary).Render("focusboard")
	gap := max(1, a.width-lipgloss.Width(title)-lipgloss.Width(tabRow)-4)
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return headerStyle.Render(
		lipgloss.JoinHorizontal(lipgloss.Bottom, title, spacer, tabRow),
	)
}

func (a App) renderFooter() string {
	helpView := a.help.View(keys)

	status := ""
	if a.status != "" {
		style := mutedStyle
		if a.statusErr {
			style = errorStyle
		}
		status = style.Render(" " + a.status)
	}

	left := footerStyle.Render(helpView)
	right := footerIndicator(a.dash.Timer()) + status

	gap := max(1, a.width-lipgloss.Width(left)-lipgloss.Width(right)-2)
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return lipgloss.JoinHorizontal(lipgloss.Bottom, left, spacer, right)
}

var exportFormats = []string{"csv", "json"}

func (a App) renderExportPicker() string {
	title := titleStyle.Render("Export Format")
	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")
	for i, f := range []string{"CSV (tasks + diary)", "JSON"} {
		cursor := "  "
		style := normalItemStyle
		if i == a.exportCursor {
			cursor = "> "
			style = selectedItemStyle
		}
		rows = append(rows, style.Render(cursor+f))
	}
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  enter: export  esc: cancel"))

	w := a.width - 4
	return activePanelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (a App) updateExportPicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if a.exportCursor > 0 {
			a.exportCursor--
		}
	case key.Matches(msg, keys.Down):
		if a.exportCursor < len(exportFormats)-1 {
			a.exportCursor++
		}
	case key.Matches(msg, keys.Enter):
		a.exportPicking = false
		return a, a.doExport(exportFormats[a.exportCursor])
	case key.Matches(msg, keys.Back):
		a.exportPicking = false
	}
	return a, nil
}

// doExport snapshots the state now and writes the file off the update loop.
func (a App) doExport(format string) tea.Cmd {
	b := a.dash.ExportBundle(a.now())
	return func() tea.Msg {
		home, err := os.UserHomeDir()
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Export error: %v", err), isError: true}
		}
		path := filepath.Join(home, export.Filename(format, b.Now))

		if format == "csv" {
			err = export.ToCSV(b, path)
		} else {
			err = export.ToJSON(b, path)
		}
		if err != nil {
			return statusMsg{text: fmt.Sprintf("%s export error: %v", format, err), isError: true}
		}
		return exportDoneMsg{path: path}
	}
}
