package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/focusboard/internal/app"
	"github.com/sadopc/focusboard/internal/chat"
)

type chatLine struct {
	fromUser bool
	text     string
}

type chatModel struct {
	dash   *app.Dashboard
	width  int
	height int

	input   textinput.Model
	history []chatLine
}

func newChatModel(d *app.Dashboard) chatModel {
	ti := textinput.New()
	ti.Placeholder = "Ask about tasks, pomodoro, progress..."
	ti.CharLimit = 200
	return chatModel{
		dash:    d,
		input:   ti,
		history: []chatLine{{text: chat.Greeting}},
	}
}

func (m *chatModel) setSize(w, h int) {
	m.width = w
	m.height = h
	m.input.Width = max(10, w-12)
}

// typing reports whether the input owns the keyboard.
func (m chatModel) typing() bool { return m.input.Focused() }

func (m chatModel) focus() (chatModel, tea.Cmd) {
	return m, m.input.Focus()
}

func (m chatModel) update(msg tea.Msg) (chatModel, tea.Cmd) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	if !m.typing() {
		if key.Matches(km, keys.Enter) || key.Matches(km, keys.New) {
			return m.focus()
		}
		return m, nil
	}

	switch {
	case key.Matches(km, keys.Back):
		m.input.Blur()
		return m, nil
	case key.Matches(km, keys.Enter):
		text := strings.TrimSpace(m.input.Value())
		if text == "" {
			return m, nil
		}
		m.history = append(m.history,
			chatLine{fromUser: true, text: text},
			chatLine{text: m.dash.Reply(text)},
		)
		m.input.SetValue("")
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m chatModel) view() string {
	w := m.width - 4
	title := titleStyle.Render("Assistant")

	var lines []string
	for _, l := range m.history {
		if l.fromUser {
			lines = append(lines, userBubbleStyle.Render("You: ")+l.text)
		} else {
			lines = append(lines, botBubbleStyle.Width(max(10, w-6)).Render("🤖 "+l.text))
		}
	}

	// Keep the newest lines that fit.
	budget := max(3, m.height-10)
	body := strings.Join(lines, "\n")
	if all := strings.Split(body, "\n"); len(all) > budget {
		body = strings.Join(all[len(all)-budget:], "\n")
	}

	hint := mutedStyle.Render("  enter: send  esc: leave input")
	if !m.typing() {
		hint = mutedStyle.Render("  enter: type a message")
	}

	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Left, title, "", body, "", m.input.View(), hint),
	)
}
