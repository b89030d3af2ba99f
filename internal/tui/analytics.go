package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/focusboard/internal/analytics"
	"github.com/sadopc/focusboard/internal/app"
)

type analyticsModel struct {
	dash   *app.Dashboard
	now    func() time.Time
	width  int
	height int

	sundayFirst bool
}

func newAnalyticsModel(d *app.Dashboard, now func() time.Time) analyticsModel {
	return analyticsModel{dash: d, now: now}
}

func (m *analyticsModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

// weekChart draws the weekday session counter.
func (m analyticsModel) weekChart() barchart.Model {
	chartWidth := m.width - 8
	if chartWidth < 20 {
		chartWidth = 20
	}
	chartHeight := 10
	if m.height > 34 {
		chartHeight = 14
	}

	chart := barchart.New(chartWidth, chartHeight)
	labels, counts := m.dash.Analytics().Snapshot().Week(m.sundayFirst)
	today := analytics.Weekdays[analytics.WeekdayIndex(m.now())]

	bars := make([]barchart.BarData, len(labels))
	for i, label := range labels {
		style := lipgloss.NewStyle().Foreground(colorPrimary)
		if label == today {
			style = lipgloss.NewStyle().Foreground(colorSecondary)
		}
		bars[i] = barchart.BarData{
			Label:  label,
			Values: []barchart.BarValue{{Name: "sessions", Value: float64(counts[i]), Style: style}},
		}
	}

	chart.PushAll(bars)
	chart.Draw()
	return chart
}

func (m analyticsModel) view(in analytics.Insights) string {
	w := m.width - 4
	a := m.dash.Analytics()
	c := a.Snapshot().TaskCompletion
	trend := a.Trend()

	header := lipgloss.JoinHorizontal(lipgloss.Bottom,
		titleStyle.Render("Analytics"), "  ",
		mutedStyle.Render(fmt.Sprintf("%d pomodoro sessions", a.TotalSessions())),
	)

	completion := fmt.Sprintf("  Completed %s  Pending %s  %s",
		successStyle.Render(fmt.Sprint(c.Completed)),
		warningStyle.Render(fmt.Sprint(c.Pending)),
		highlightStyle.Render(fmt.Sprintf("%.0f%%", a.CompletionRate())),
	)
	trendLine := fmt.Sprintf("  %s %s", trend.Emoji(), trend.Message())

	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			header, "",
			titleStyle.Render("Task completion"), completion, trendLine, "",
			titleStyle.Render("Focus sessions by weekday"), m.weekChart().View(), "",
			renderInsights(in, w),
		),
	)
}

// renderInsights formats the performance analyzer output. It is shared by
// the dashboard and analytics views.
func renderInsights(in analytics.Insights, w int) string {
	var rows []string
	rows = append(rows, titleStyle.Render("Insights"))

	peak := "not enough data yet"
	if in.HasPeakHour {
		peak = fmt.Sprintf("%02d:00", in.PeakHour)
	}
	rows = append(rows,
		fmt.Sprintf("  Most productive hour  %s", highlightStyle.Render(peak)),
		fmt.Sprintf("  Overdue tasks         %s", overdueText(in.Overdue)),
		"  "+mutedStyle.Render(analytics.ProcrastinationMessage(in.ProcrastinationRate)),
	)
	for _, r := range in.Recommendations {
		rows = append(rows, "  • "+r)
	}
	return lipgloss.NewStyle().MaxWidth(w).Render(strings.Join(rows, "\n"))
}

func overdueText(n int) string {
	if n == 0 {
		return successStyle.Render("0")
	}
	return errorStyle.Render(fmt.Sprint(n))
}
