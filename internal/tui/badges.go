package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/focusboard/internal/app"
	"github.com/sadopc/focusboard/internal/badges"
)

type badgesModel struct {
	dash   *app.Dashboard
	width  int
	height int

	category int // index into badges.Categories
}

func newBadgesModel(d *app.Dashboard) badgesModel {
	return badgesModel{dash: d}
}

func (m *badgesModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

func (m badgesModel) update(msg tea.Msg) (badgesModel, tea.Cmd) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	n := len(badges.Categories)
	switch {
	case key.Matches(km, keys.Left), key.Matches(km, keys.Up):
		m.category = (m.category + n - 1) % n
	case key.Matches(km, keys.Right), key.Matches(km, keys.Down):
		m.category = (m.category + 1) % n
	}
	return m, nil
}

func (m badgesModel) view() string {
	w := m.width - 4
	eng := m.dash.Badges()

	header := titleStyle.Render("Badges") + "  " +
		mutedStyle.Render(fmt.Sprintf("%d of %d earned", eng.Count(), len(badges.Catalog)))

	// Category strip with per-category progress.
	var strip []string
	for i, c := range badges.Categories {
		earned, all := 0, badges.ByCategory(c)
		for _, b := range all {
			if eng.Has(b.ID) {
				earned++
			}
		}
		label := fmt.Sprintf("%s %d/%d", c.Title(), earned, len(all))
		if i == m.category {
			strip = append(strip, selectedItemStyle.Render("> "+label))
		} else {
			strip = append(strip, normalItemStyle.Render("  "+label))
		}
	}

	cat := badges.Categories[m.category]
	rows := []string{titleStyle.Render(cat.Title()), ""}
	for _, b := range badges.ByCategory(cat) {
		if eng.Has(b.ID) {
			rows = append(rows, earnedBadgeStyle.Render(fmt.Sprintf("%s  %s", b.Icon, b.Name))+
				mutedStyle.Render("  "+b.Description))
		} else {
			rows = append(rows, lockedBadgeStyle.Render(fmt.Sprintf("🔒  %s  %s", b.Name, b.Description)))
		}
	}

	left := lipgloss.NewStyle().Width(34).Render(strings.Join(strip, "\n"))
	right := lipgloss.NewStyle().Width(max(20, w-40)).Render(strings.Join(rows, "\n"))

	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			header, "",
			lipgloss.JoinHorizontal(lipgloss.Top, left, right), "",
			mutedStyle.Render("  ↑/↓: category"),
		),
	)
}
