package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/focusboard/internal/analytics"
	"github.com/sadopc/focusboard/internal/app"
	"github.com/sadopc/focusboard/internal/diary"
)

var diaryFilters = []string{diary.FilterAll, diary.FilterHappy, diary.FilterProductive, diary.FilterRecent}

type diaryModel struct {
	dash   *app.Dashboard
	media  *diary.MediaLibrary
	width  int
	height int

	offset int // first entry shown
	filter int // index into diaryFilters

	formActive bool
	form       *huh.Form
	formType   string // "entry", "clear"

	// Form field pointers (survive value copies)
	formPrompt *string
	formText   *string
	formMood   *string
	formRating *string
	formMedia  *string
	formClear  *bool
}

func newDiaryModel(d *app.Dashboard, media *diary.MediaLibrary) diaryModel {
	prompt, text, mood, rating, files := "", "", "", "", ""
	confirm := false
	return diaryModel{
		dash:       d,
		media:      media,
		formPrompt: &prompt,
		formText:   &text,
		formMood:   &mood,
		formRating: &rating,
		formMedia:  &files,
		formClear:  &confirm,
	}
}

func (m *diaryModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

func (m diaryModel) update(msg tea.Msg) (diaryModel, tea.Cmd) {
	if m.dash.Diary() == nil {
		return m, nil
	}
	if m.formActive && m.form != nil {
		return m.updateForm(msg)
	}

	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch {
	case key.Matches(km, keys.Up):
		if m.offset > 0 {
			m.offset--
		}
	case key.Matches(km, keys.Down):
		if m.offset < len(m.dash.Diary().Filter(diaryFilters[m.filter]))-1 {
			m.offset++
		}
	case key.Matches(km, keys.Filter):
		m.filter = (m.filter + 1) % len(diaryFilters)
		m.offset = 0
	case key.Matches(km, keys.New):
		return m.showEntryForm()
	case key.Matches(km, keys.Clear):
		if m.dash.Diary().Len() > 0 {
			return m.showClearForm()
		}
	}
	return m, nil
}

func (m diaryModel) showEntryForm() (diaryModel, tea.Cmd) {
	*m.formPrompt = ""
	*m.formText = ""
	*m.formMood = string(diary.MoodNeutral)
	*m.formRating = "0"
	*m.formMedia = ""
	m.formType = "entry"

	promptOptions := []huh.Option[string]{huh.NewOption("Free writing", "")}
	for _, p := range analytics.ReflectionPrompts {
		promptOptions = append(promptOptions, huh.NewOption(p, p))
	}
	moodOptions := make([]huh.Option[string], len(diary.Moods))
	for i, md := range diary.Moods {
		moodOptions[i] = huh.NewOption(md.Emoji()+" "+string(md), string(md))
	}
	ratingOptions := make([]huh.Option[string], 0, diary.MaxRating+1)
	for r := 0; r <= diary.MaxRating; r++ {
		ext := &diary.Extension{ProductivityRating: r}
		ratingOptions = append(ratingOptions, huh.NewOption(ext.Stars(), strconv.Itoa(r)))
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().Title("Reflection prompt").Options(promptOptions...).Value(m.formPrompt),
		),
		huh.NewGroup(
			huh.NewText().Title("Entry").Value(m.formText).Validate(required("entry text")),
			huh.NewSelect[string]().Title("Mood").Options(moodOptions...).Value(m.formMood),
			huh.NewSelect[string]().Title("Productivity").Options(ratingOptions...).Value(m.formRating),
			huh.NewInput().Title("Attach files (comma-separated paths, optional)").Value(m.formMedia).Validate(validateMedia),
		),
	).WithShowHelp(true).WithShowErrors(true)

	m.formActive = true
	return m, m.form.Init()
}

func (m diaryModel) showClearForm() (diaryModel, tea.Cmd) {
	*m.formClear = false
	m.formType = "clear"

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Delete all %d diary entries?", m.dash.Diary().Len())).
				Affirmative("Delete").
				Negative("Keep").
				Value(m.formClear),
		),
	).WithShowHelp(true)

	m.formActive = true
	return m, m.form.Init()
}

func (m diaryModel) updateForm(msg tea.Msg) (diaryModel, tea.Cmd) {
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
		case "entry":
			return m, m.submitEntry()
		case "clear":
			if !*m.formClear {
				return m, nil
			}
			m.offset = 0
			if err := m.dash.ClearDiary(); err != nil {
				return m, statusCmd(fmt.Sprintf("Error: %v", err), true)
			}
			return m, statusCmd("Diary cleared", false)
		}
	}

	return m, cmd
}

func (m diaryModel) submitEntry() tea.Cmd {
	text := strings.TrimSpace(*m.formText)
	if *m.formPrompt != "" {
		text = *m.formPrompt + "\n\n" + text
	}
	rating, _ := strconv.Atoi(*m.formRating)
	ext := &diary.Extension{Mood: diary.Mood(*m.formMood), ProductivityRating: rating}

	for _, path := range splitPaths(*m.formMedia) {
		if m.media == nil {
			return statusCmd("Attachments are unavailable", true)
		}
		media, err := m.media.Import(path)
		if err != nil {
			return statusCmd(fmt.Sprintf("Error: %v", err), true)
		}
		ext.MediaFiles = append(ext.MediaFiles, media)
	}

	_, unlocked, err := m.dash.AddEntry(diary.NewEntry{Text: text, Prompt: *m.formPrompt, Extension: ext})
	if errors.Is(err, diary.ErrEmptyText) {
		return nil
	}
	return notify(unlocked, err)
}

func splitPaths(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func validateMedia(s string) error {
	for _, p := range splitPaths(s) {
		if _, err := diary.MediaTypeOf(p); err != nil {
			return err
		}
	}
	return nil
}

func (m diaryModel) view() string {
	w := m.width - 4
	if m.dash.Diary() == nil {
		return unavailable("Diary", w)
	}

	if m.formActive && m.form != nil {
		title := titleStyle.Render("New Diary Entry")
		if m.formType == "clear" {
			title = titleStyle.Render("Clear Diary")
		}
		return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, title, "", m.form.View()))
	}

	entries := m.dash.Diary().Filter(diaryFilters[m.filter])
	title := titleStyle.Render("Diary") + "  " +
		mutedStyle.Render(fmt.Sprintf("%d entries  filter: %s", m.dash.Diary().Len(), diaryFilters[m.filter]))

	if len(entries) == 0 {
		hint := "No entries yet. Press a to write one."
		if m.dash.Diary().Len() > 0 {
			hint = "No entries match this filter. Press f to change it."
		}
		return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, title, "", mutedStyle.Render(hint)))
	}

	rows := []string{title, ""}
	budget := m.height - 8
	for _, e := range entries[min(m.offset, len(entries)-1):] {
		block := renderEntry(e, w-6)
		budget -= lipgloss.Height(block) + 1
		if budget < 0 && len(rows) > 2 {
			break
		}
		rows = append(rows, block, "")
	}
	rows = append(rows, mutedStyle.Render("  a: write  f: filter  ↑/↓: scroll  D: clear all"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func renderEntry(e diary.Entry, w int) string {
	head := highlightStyle.Render(e.Date.Local().Format("Mon Jan 02 2006, 15:04"))
	if e.Extension != nil {
		head += "  " + e.Mood.Emoji() + "  " + warningStyle.Render(e.Stars())
	}
	body := lipgloss.NewStyle().Width(w).Render(e.Text)
	lines := []string{head, body}
	if e.Extension != nil {
		for _, md := range e.MediaFiles {
			lines = append(lines, mutedStyle.Render(fmt.Sprintf("  📎 %s (%s)", md.Name, md.Type)))
		}
	}
	return strings.Join(lines, "\n")
}
