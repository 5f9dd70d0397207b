package tui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/okemir/worklogger/internal/store"
	"github.com/okemir/worklogger/internal/summary"
)

// projectLookbackDays bounds the scan for project name suggestions.
const projectLookbackDays = 30

// logModel is the capture view: a countdown to the next prompt, today's
// recent entries, and the entry form itself.
type logModel struct {
	store           *store.Store
	intervalMinutes int
	width           int
	height          int

	entries      []store.Entry
	skipped      int
	todayMinutes int

	formActive bool
	// saving covers the window between form completion and entrySavedMsg,
	// so a due reminder cannot reopen the form mid-save
	saving bool
	form   *huh.Form

	// Form values as pointers (survive value copies)
	description *string
	project     *string
	taskType    *string
}

func newLogModel(s *store.Store, intervalMinutes int) logModel {
	desc, proj, task := "", "", ""
	return logModel{
		store:           s,
		intervalMinutes: intervalMinutes,
		description:     &desc,
		project:         &proj,
		taskType:        &task,
	}
}

func (l *logModel) setSize(w, h int) {
	l.width = w
	l.height = h
}

type logDataMsg struct {
	entries []store.Entry
	skipped int
	minutes int
}

func (l logModel) refresh() tea.Cmd {
	return func() tea.Msg {
		entries, skipped, err := l.store.ReadDay(time.Now())
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Read error: %v", err), isError: true}
		}
		return logDataMsg{
			entries: entries,
			skipped: skipped,
			minutes: summary.Summarize(entries).TotalMinutes(),
		}
	}
}

func (l logModel) update(msg tea.Msg) (logModel, tea.Cmd) {
	if l.formActive && l.form != nil {
		return l.updateForm(msg)
	}

	switch msg := msg.(type) {
	case logDataMsg:
		l.entries = msg.entries
		l.skipped = msg.skipped
		l.todayMinutes = msg.minutes
		return l, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.LogNow), key.Matches(msg, keys.Enter):
			return l.showForm()
		}
	}
	return l, nil
}

// showForm opens the capture form, prefilled with the last used project and
// task type the way the previous popup left them.
func (l logModel) showForm() (logModel, tea.Cmd) {
	*l.description = ""
	*l.project = ""
	*l.taskType = store.DefaultTaskTypes[0]

	if last, err := l.store.LastEntry(time.Now()); err == nil && last != nil {
		*l.project = last.Project
		if last.TaskType != "" {
			*l.taskType = last.TaskType
		}
	}

	taskTypes := store.DefaultTaskTypes
	if !containsString(taskTypes, *l.taskType) {
		taskTypes = append(append([]string{}, taskTypes...), *l.taskType)
	}

	l.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(fmt.Sprintf("What did you work on in the last %d minutes?", l.intervalMinutes)).
				Placeholder("Enter what you worked on...").
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return errors.New("description is required")
					}
					return nil
				}).
				Value(l.description),
			huh.NewInput().
				Title("Project").
				Suggestions(l.store.Projects(projectLookbackDays)).
				Value(l.project),
			huh.NewSelect[string]().
				Title("Task Type").
				Options(huh.NewOptions(taskTypes...)...).
				Value(l.taskType),
		),
	).WithShowHelp(true).WithShowErrors(true)

	l.formActive = true
	return l, l.form.Init()
}

func (l logModel) updateForm(msg tea.Msg) (logModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "esc":
			l.formActive = false
			l.form = nil
			return l, func() tea.Msg { return entrySkippedMsg{} }
		case "ctrl+s":
			l.formActive = false
			l.form = nil
			return l, func() tea.Msg { return entrySnoozedMsg{} }
		}
	}

	form, cmd := l.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		l.form = f
	}

	if l.form.State == huh.StateCompleted {
		l.formActive = false
		l.saving = true
		return l, l.saveEntry()
	}

	return l, cmd
}

func (l logModel) saveEntry() tea.Cmd {
	project := strings.TrimSpace(*l.project)
	taskType := strings.TrimSpace(*l.taskType)
	description := strings.TrimSpace(*l.description)
	return func() tea.Msg {
		entry, err := l.store.Append(project, taskType, description)
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Save error: %v", err), isError: true}
		}
		return entrySavedMsg{entry: entry}
	}
}

func (l logModel) view(countdown string, paused bool) string {
	if l.width < 20 {
		return "Terminal too small"
	}
	w := l.width - 4

	if l.formActive && l.form != nil {
		title := titleStyle.Render("Log Entry")
		hint := mutedStyle.Render("enter: save  ctrl+s: snooze  esc: skip")
		return activePanelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, title, "", l.form.View(), hint),
		)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		l.renderCountdownPanel(w, countdown, paused),
		l.renderTodayPanel(w),
	)
}

func (l logModel) renderCountdownPanel(w int, countdown string, paused bool) string {
	var timeDisplay, indicator string
	switch {
	case paused:
		timeDisplay = countdownPausedStyle.Width(w - 6).Render(countdown)
		indicator = warningStyle.Render("⏸  REMINDERS PAUSED")
	case countdown == "00:00":
		timeDisplay = countdownDueStyle.Width(w - 6).Render(countdown)
		indicator = successStyle.Render("●  PROMPT DUE")
	default:
		timeDisplay = countdownStyle.Width(w - 6).Render(countdown)
		indicator = mutedStyle.Render("next reminder")
	}
	hint := mutedStyle.Render("Press n to log now")

	content := lipgloss.JoinVertical(lipgloss.Center, timeDisplay, indicator, hint)
	return panelStyle.Width(w).Render(content)
}

func (l logModel) renderTodayPanel(w int) string {
	title := titleStyle.Render("Today")
	total := highlightStyle.Render(summary.FormatMinutes(l.todayMinutes))
	header := fmt.Sprintf("%s  %s", title, total)

	var rows []string
	rows = append(rows, header)
	if len(l.entries) == 0 {
		rows = append(rows, mutedStyle.Render("No entries yet"))
	}

	// Show the tail of the day, newest last, like the file itself.
	first := 0
	if len(l.entries) > 6 {
		first = len(l.entries) - 6
	}
	for _, e := range l.entries[first:] {
		project := e.Project
		if project == "" {
			project = summary.NoProject
		}
		row := fmt.Sprintf("  %s–%s  %-18s %s", e.StartTime, e.EndTime, project, e.Description)
		rows = append(rows, row)
	}

	if l.skipped > 0 {
		rows = append(rows, warningStyle.Render(fmt.Sprintf("  %d malformed row(s) skipped", l.skipped)))
	}

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
