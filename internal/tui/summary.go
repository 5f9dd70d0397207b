package tui

import (
	"fmt"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/okemir/worklogger/internal/store"
	"github.com/okemir/worklogger/internal/summary"
)

// summaryModel shows today's entries grouped by project and task type, with
// copy-to-clipboard for pasting into standups and timesheets.
type summaryModel struct {
	store  *store.Store
	width  int
	height int

	text    string
	total   int
	skipped int
}

func newSummaryModel(s *store.Store) summaryModel {
	return summaryModel{store: s}
}

func (s *summaryModel) setSize(w, h int) {
	s.width = w
	s.height = h
}

type summaryDataMsg struct {
	text    string
	total   int
	skipped int
}

func (s summaryModel) refresh() tea.Cmd {
	return func() tea.Msg {
		entries, skipped, err := s.store.ReadDay(time.Now())
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Read error: %v", err), isError: true}
		}
		sum := summary.Summarize(entries)
		return summaryDataMsg{
			text:    sum.Format(),
			total:   sum.TotalMinutes(),
			skipped: skipped,
		}
	}
}

func (s summaryModel) update(msg tea.Msg) (summaryModel, tea.Cmd) {
	switch msg := msg.(type) {
	case summaryDataMsg:
		s.text = msg.text
		s.total = msg.total
		s.skipped = msg.skipped
		return s, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Copy):
			return s, s.copyToClipboard()
		case key.Matches(msg, keys.Refresh):
			return s, s.refresh()
		}
	}
	return s, nil
}

func (s summaryModel) copyToClipboard() tea.Cmd {
	text := s.text
	return func() tea.Msg {
		if err := clipboard.WriteAll(text); err != nil {
			return statusMsg{text: fmt.Sprintf("Clipboard error: %v", err), isError: true}
		}
		return statusMsg{text: "Summary copied to clipboard"}
	}
}

func (s summaryModel) view() string {
	w := s.width - 4

	day := time.Now().Format("Monday, January 2, 2006")
	title := titleStyle.Render("Work Summary for " + day)
	total := highlightStyle.Render(summary.FormatMinutes(s.total) + " total")

	rows := []string{
		lipgloss.JoinHorizontal(lipgloss.Bottom, title, "  ", total),
		"",
		s.text,
		"",
	}
	if s.skipped > 0 {
		rows = append(rows, warningStyle.Render(fmt.Sprintf("%d malformed row(s) skipped", s.skipped)))
	}
	rows = append(rows, mutedStyle.Render("c: copy  r: refresh"))

	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}
