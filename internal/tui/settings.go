package tui

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/okemir/worklogger/internal/config"
)

// settingsModel edits the reminder interval, snooze duration and worklog
// directory. Values are only persisted on save, after the directory passes
// the write probe.
type settingsModel struct {
	path    string // settings file, resolved once at startup
	current config.Settings
	width   int
	height  int

	formActive bool
	form       *huh.Form

	// Form values as pointers (survive value copies)
	interval *string
	snooze   *string
	dir      *string
}

func newSettingsModel(path string, current config.Settings) settingsModel {
	iv, sn, dir := "", "", ""
	return settingsModel{
		path:     path,
		current:  current,
		interval: &iv,
		snooze:   &sn,
		dir:      &dir,
	}
}

func (s *settingsModel) setSize(w, h int) {
	s.width = w
	s.height = h
}

func (s settingsModel) update(msg tea.Msg) (settingsModel, tea.Cmd) {
	if s.formActive && s.form != nil {
		return s.updateForm(msg)
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, keys.Enter), key.Matches(msg, keys.LogNow):
			return s.showForm()
		}
	}
	return s, nil
}

func (s settingsModel) showForm() (settingsModel, tea.Cmd) {
	*s.interval = strconv.Itoa(s.current.ReminderIntervalMinutes)
	*s.snooze = strconv.Itoa(s.current.SnoozeDurationMinutes)
	*s.dir = s.current.WorklogDir

	s.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(fmt.Sprintf("Reminder interval (min, %d–%d)", config.MinReminderMinutes, config.MaxReminderMinutes)).
				Validate(intInRange(config.MinReminderMinutes, config.MaxReminderMinutes)).
				Value(s.interval),
			huh.NewInput().
				Title(fmt.Sprintf("Snooze duration (min, %d–%d)", config.MinSnoozeMinutes, config.MaxSnoozeMinutes)).
				Validate(intInRange(config.MinSnoozeMinutes, config.MaxSnoozeMinutes)).
				Value(s.snooze),
			huh.NewInput().
				Title("Log directory").
				Validate(func(v string) error {
					if strings.TrimSpace(v) == "" {
						return errors.New("log directory cannot be empty")
					}
					return nil
				}).
				Value(s.dir),
		).Title("Settings"),
	).WithShowHelp(true).WithShowErrors(true)

	s.formActive = true
	return s, s.form.Init()
}

func intInRange(lo, hi int) func(string) error {
	return func(v string) error {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return errors.New("enter a number")
		}
		if n < lo || n > hi {
			return fmt.Errorf("must be between %d and %d", lo, hi)
		}
		return nil
	}
}

func (s settingsModel) updateForm(msg tea.Msg) (settingsModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			s.formActive = false
			s.form = nil
			return s, nil
		}
	}

	form, cmd := s.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		s.form = f
	}

	if s.form.State == huh.StateCompleted {
		s.formActive = false
		return s, s.saveSettings()
	}

	return s, cmd
}

// saveSettings persists the form values. The log directory is created if
// absent and probed for writability before anything is written; a failed
// probe refuses the save and leaves the settings file untouched.
func (s settingsModel) saveSettings() tea.Cmd {
	interval, _ := strconv.Atoi(strings.TrimSpace(*s.interval))
	snooze, _ := strconv.Atoi(strings.TrimSpace(*s.snooze))
	dir := filepath.Clean(strings.TrimSpace(*s.dir))
	path := s.path

	return func() tea.Msg {
		next := config.Settings{
			ReminderIntervalMinutes: interval,
			SnoozeDurationMinutes:   snooze,
			WorklogDir:              dir,
		}.Clamped()

		if err := os.MkdirAll(next.WorklogDir, 0o755); err != nil {
			return statusMsg{text: fmt.Sprintf("Cannot create %s: %v", next.WorklogDir, err), isError: true}
		}
		if err := config.CheckWritable(next.WorklogDir); err != nil {
			return statusMsg{text: fmt.Sprintf("Cannot write to %s: %v", next.WorklogDir, err), isError: true}
		}
		if err := next.Save(path); err != nil {
			return statusMsg{text: fmt.Sprintf("Settings error: %v", err), isError: true}
		}
		return settingsSavedMsg{settings: next}
	}
}

func (s settingsModel) view() string {
	w := s.width - 4

	if s.formActive && s.form != nil {
		title := titleStyle.Render("Settings")
		return activePanelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, title, "", s.form.View()),
		)
	}

	title := titleStyle.Render("Settings")
	rows := []string{
		title,
		"",
		settingRow("Reminder interval", fmt.Sprintf("%d min", s.current.ReminderIntervalMinutes)),
		settingRow("Snooze duration", fmt.Sprintf("%d min", s.current.SnoozeDurationMinutes)),
		settingRow("Log directory", s.current.WorklogDir),
		settingRow("Settings file", s.path),
		"",
		mutedStyle.Render("Press enter to edit settings"),
	}

	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func settingRow(label, value string) string {
	l := lipgloss.NewStyle().Width(20).Render(label)
	return fmt.Sprintf("  %s %s", l, highlightStyle.Render(value))
}
