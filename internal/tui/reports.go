package tui

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/okemir/worklogger/internal/store"
	"github.com/okemir/worklogger/internal/summary"
)

// reportDay is one day's minutes per project, in chart order.
type reportDay struct {
	date       time.Time
	perProject map[string]int
}

// reportsModel charts logged hours per project over a 7-day window.
type reportsModel struct {
	store  *store.Store
	width  int
	height int

	offset   int // 7-day blocks back from today (0 = current)
	days     []reportDay
	projects []string // sorted, for stable color assignment

	chart barchart.Model
}

func newReportsModel(s *store.Store) reportsModel {
	return reportsModel{
		store: s,
		chart: barchart.New(60, 12),
	}
}

func (r *reportsModel) setSize(w, h int) {
	r.width = w
	r.height = h
}

type reportsDataMsg struct {
	days     []reportDay
	projects []string
}

func (r reportsModel) dateRange() (time.Time, time.Time) {
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	end := today.AddDate(0, 0, 1-7*r.offset)
	return end.AddDate(0, 0, -7), end
}

func (r reportsModel) refresh() tea.Cmd {
	return func() tea.Msg {
		from, to := r.dateRange()

		var days []reportDay
		seen := make(map[string]bool)
		for d := from; d.Before(to); d = d.AddDate(0, 0, 1) {
			entries, _, err := r.store.ReadDay(d)
			if err != nil {
				continue
			}
			perProject := summary.Summarize(entries).ProjectMinutes()
			for p := range perProject {
				seen[p] = true
			}
			days = append(days, reportDay{date: d, perProject: perProject})
		}

		projects := make([]string, 0, len(seen))
		for p := range seen {
			projects = append(projects, p)
		}
		sort.Strings(projects)

		return reportsDataMsg{days: days, projects: projects}
	}
}

func (r reportsModel) update(msg tea.Msg) (reportsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case reportsDataMsg:
		r.days = msg.days
		r.projects = msg.projects
		r.buildChart()
		return r, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Left):
			r.offset++
			return r, r.refresh()
		case key.Matches(msg, keys.Right):
			if r.offset > 0 {
				r.offset--
			}
			return r, r.refresh()
		case key.Matches(msg, keys.Refresh):
			return r, r.refresh()
		}
	}
	return r, nil
}

func (r *reportsModel) buildChart() {
	chartWidth := r.width - 8
	if chartWidth < 20 {
		chartWidth = 20
	}
	chartHeight := 12
	if r.height > 30 {
		chartHeight = 16
	}

	r.chart = barchart.New(chartWidth, chartHeight)

	var bars []barchart.BarData
	for _, day := range r.days {
		var values []barchart.BarValue
		for _, p := range r.projects {
			minutes, ok := day.perProject[p]
			if !ok {
				continue
			}
			values = append(values, barchart.BarValue{
				Name:  p,
				Value: float64(minutes) / 60.0,
				Style: lipgloss.NewStyle().Foreground(r.projectColor(p)),
			})
		}
		if len(values) == 0 {
			values = []barchart.BarValue{{Value: 0, Style: lipgloss.NewStyle().Foreground(colorSubtle)}}
		}
		bars = append(bars, barchart.BarData{
			Label:  day.date.Format("Mon 02"),
			Values: values,
		})
	}

	r.chart.PushAll(bars)
	r.chart.Draw()
}

func (r reportsModel) projectColor(project string) lipgloss.Color {
	for i, p := range r.projects {
		if p == project {
			return lipgloss.Color(projectColors[i%len(projectColors)])
		}
	}
	return colorSubtle
}

func (r reportsModel) view() string {
	w := r.width - 4

	from, to := r.dateRange()
	dateLabel := mutedStyle.Render(fmt.Sprintf("%s — %s (hours/day)",
		from.Format("Jan 02"), to.AddDate(0, 0, -1).Format("Jan 02, 2006")))
	header := lipgloss.JoinHorizontal(lipgloss.Bottom, titleStyle.Render("Reports"), "  ", dateLabel)

	nav := mutedStyle.Render("  ←/→: navigate weeks  r: refresh")

	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			header, "", r.chart.View(), "", r.renderLegend(), "", r.renderTotals(w), "", nav,
		),
	)
}

func (r reportsModel) renderLegend() string {
	var items []string
	for _, p := range r.projects {
		dot := lipgloss.NewStyle().Foreground(r.projectColor(p)).Render("●")
		items = append(items, fmt.Sprintf("%s %s", dot, p))
	}
	if len(items) == 0 {
		return mutedStyle.Render("  No data for this period")
	}
	return "  " + strings.Join(items, "  ")
}

func (r reportsModel) renderTotals(w int) string {
	totals := make(map[string]int)
	for _, day := range r.days {
		for p, minutes := range day.perProject {
			totals[p] += minutes
		}
	}
	if len(totals) == 0 {
		return ""
	}

	var rows []string
	rows = append(rows, mutedStyle.Render(fmt.Sprintf("  %-24s %10s", "Project", "Total")))
	rows = append(rows, mutedStyle.Render("  "+strings.Repeat("─", min(w-6, 36))))
	for _, p := range r.projects {
		rows = append(rows, fmt.Sprintf("  %-24s %10s", p, summary.FormatMinutes(totals[p])))
	}
	return strings.Join(rows, "\n")
}
