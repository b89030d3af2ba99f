package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/focusboard/internal/app"
	"github.com/sadopc/focusboard/internal/badges"
	"github.com/sadopc/focusboard/internal/tasks"
)

var workTypes = []string{"work", "study", "personal", badges.CollaborationWorkType, "health", "other"}

// taskFilters is the cycle order of the priority filter.
var taskFilters = []string{tasks.FilterAll, string(tasks.PriorityLow), string(tasks.PriorityMedium), string(tasks.PriorityHigh)}

type tasksModel struct {
	dash   *app.Dashboard
	now    func() time.Time
	width  int
	height int

	cursor int
	filter int // index into taskFilters

	formActive bool
	form       *huh.Form
	formType   string // "task", "reschedule"

	// Form field pointers (survive value copies)
	formText     *string
	formPriority *string
	formWorkType *string
	formEstimate *string
	formDue      *string

	editingID int64 // task being rescheduled
}

func newTasksModel(d *app.Dashboard, now func() time.Time) tasksModel {
	text, prio, wt, est, due := "", string(tasks.PriorityLow), tasks.DefaultWorkType, "", ""
	return tasksModel{
		dash:         d,
		now:          now,
		formText:     &text,
		formPriority: &prio,
		formWorkType: &wt,
		formEstimate: &est,
		formDue:      &due,
	}
}

func (m *tasksModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

// visible is the filtered task list the cursor moves over.
func (m tasksModel) visible() []tasks.Task {
	return m.dash.Tasks().Filter(taskFilters[m.filter])
}

func (m tasksModel) update(msg tea.Msg) (tasksModel, tea.Cmd) {
	if m.formActive && m.form != nil {
		return m.updateForm(msg)
	}

	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	list := m.visible()
	switch {
	case key.Matches(km, keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(km, keys.Down):
		if m.cursor < len(list)-1 {
			m.cursor++
		}
	case key.Matches(km, keys.Filter):
		m.filter = (m.filter + 1) % len(taskFilters)
		m.cursor = 0
	case key.Matches(km, keys.New):
		return m.showNewTaskForm()
	case key.Matches(km, keys.Toggle), key.Matches(km, keys.Enter):
		if len(list) > 0 {
			_, unlocked, err := m.dash.ToggleTask(list[m.cursor].ID)
			return m, notify(unlocked, err)
		}
	case key.Matches(km, keys.Reschedule):
		if len(list) > 0 {
			return m.showRescheduleForm(list[m.cursor])
		}
	case key.Matches(km, keys.Delete):
		if len(list) > 0 {
			unlocked, err := m.dash.DeleteTask(list[m.cursor].ID)
			m.clampCursor()
			return m, tea.Batch(notify(unlocked, err), statusCmd("Task deleted", false))
		}
	}
	return m, nil
}

func (m *tasksModel) clampCursor() {
	if n := len(m.visible()); m.cursor >= n {
		m.cursor = max(0, n-1)
	}
}

func (m tasksModel) showNewTaskForm() (tasksModel, tea.Cmd) {
	*m.formText = ""
	*m.formPriority = string(tasks.PriorityLow)
	*m.formWorkType = tasks.DefaultWorkType
	*m.formEstimate = ""
	*m.formDue = ""
	m.formType = "task"

	prioOptions := make([]huh.Option[string], len(tasks.Priorities))
	for i, p := range tasks.Priorities {
		prioOptions[i] = huh.NewOption(string(p), string(p))
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Task").Value(m.formText).Validate(required("task")),
			huh.NewSelect[string]().Title("Priority").Options(prioOptions...).Value(m.formPriority),
			huh.NewSelect[string]().Title("Work type").Options(huh.NewOptions(workTypes...)...).Value(m.formWorkType),
			huh.NewInput().Title("Estimate (min, optional)").Value(m.formEstimate).Validate(validateEstimate),
			huh.NewInput().Title("Due (YYYY-MM-DD [HH:MM], optional)").Value(m.formDue).Validate(validateDue),
		),
	).WithShowHelp(true).WithShowErrors(true)

	m.formActive = true
	return m, m.form.Init()
}

func (m tasksModel) showRescheduleForm(t tasks.Task) (tasksModel, tea.Cmd) {
	*m.formDue = ""
	if t.DueDate != nil {
		*m.formDue = t.DueDate.In(m.now().Location()).Format("2006-01-02 15:04")
	}
	m.formType = "reschedule"
	m.editingID = t.ID

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("New due date (empty clears)").Value(m.formDue).Validate(validateDue),
		),
	).WithShowHelp(true).WithShowErrors(true)

	m.formActive = true
	return m, m.form.Init()
}

func (m tasksModel) updateForm(msg tea.Msg) (tasksModel, tea.Cmd) {
	// Check for escape to cancel form
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			m.formActive = false
			m.form = nil
			return m, nil
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		m.formActive = false
		switch m.formType {
		case "task":
			return m, m.submitTask()
		case "reschedule":
			due, err := tasks.ParseDue(*m.formDue, m.now().Location())
			if err != nil {
				return m, statusCmd(err.Error(), true)
			}
			_, unlocked, err := m.dash.RescheduleTask(m.editingID, due)
			return m, notify(unlocked, err)
		}
	}

	return m, cmd
}

func (m tasksModel) submitTask() tea.Cmd {
	in := tasks.NewTask{
		Text:     *m.formText,
		Priority: tasks.Priority(*m.formPriority),
		WorkType: *m.formWorkType,
	}
	if s := strings.TrimSpace(*m.formEstimate); s != "" {
		in.EstimatedTime, _ = strconv.Atoi(s)
	}
	due, err := tasks.ParseDue(*m.formDue, m.now().Location())
	if err != nil {
		return statusCmd(err.Error(), true)
	}
	in.DueDate = due

	_, unlocked, err := m.dash.AddTask(in)
	if errors.Is(err, tasks.ErrEmptyText) {
		return nil
	}
	return notify(unlocked, err)
}

func required(what string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", what)
		}
		return nil
	}
}

func validateEstimate(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if n, err := strconv.Atoi(s); err != nil || n <= 0 {
		return errors.New("enter a positive number of minutes")
	}
	return nil
}

func (m tasksModel) view() string {
	if m.formActive && m.form != nil {
		title := titleStyle.Render("New Task")
		if m.formType == "reschedule" {
			title = titleStyle.Render("Reschedule Task")
		}
		content := lipgloss.JoinVertical(lipgloss.Left, title, "", m.form.View())
		return panelStyle.Width(m.width - 4).Render(content)
	}
	return m.renderList()
}

func (m tasksModel) renderList() string {
	w := m.width - 4
	completed, total := m.dash.Tasks().Counts()
	title := titleStyle.Render("Tasks") + "  " +
		mutedStyle.Render(fmt.Sprintf("%d/%d done  filter: %s", completed, total, taskFilters[m.filter]))

	list := m.visible()
	if len(list) == 0 {
		hint := "No tasks yet. Press a to add one."
		if total > 0 {
			hint = "No tasks match this filter. Press f to change it."
		}
		content := lipgloss.JoinVertical(lipgloss.Left, title, "", mutedStyle.Render(hint))
		return panelStyle.Width(w).Render(content)
	}

	now := m.now()
	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")

	for i, t := range list {
		cursor := "  "
		style := normalItemStyle
		if i == m.cursor {
			cursor = "> "
			style = selectedItemStyle
		}
		check := "[ ]"
		if t.Completed {
			check = "[x]"
			style = doneTaskStyle
		}
		dot := priorityStyle(t.Priority).Render("●")

		meta := []string{t.WorkType}
		if t.EstimatedTime > 0 {
			meta = append(meta, fmt.Sprintf("~%dm", t.EstimatedTime))
		}
		row := fmt.Sprintf("%s%s %s %s", cursor, check, dot, style.Render(t.Text)) +
			mutedStyle.Render("  "+strings.Join(meta, " "))
		if t.DueDate != nil {
			due := "  due " + formatDue(t.DueDate, now.Location())
			if t.Overdue(now) {
				row += errorStyle.Render(due + " overdue")
			} else {
				row += highlightStyle.Render(due)
			}
		}
		rows = append(rows, row)
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  a: add  t/enter: toggle  r: reschedule  d: delete  f: filter"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
