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
	"github.com/okemir/worklogger/internal/config"
	"github.com/okemir/worklogger/internal/export"
	"github.com/okemir/worklogger/internal/store"
)

// exportLookbackDays is how far back the export picker gathers entries.
const exportLookbackDays = 30

// App is the root Bubble Tea model. It owns the reminder scheduler and
// routes messages to the per-view models.
type App struct {
	store   *store.Store
	cfg     config.Settings
	cfgPath string

	width  int
	height int

	activeView    viewState
	showHelp      bool
	exportPicking bool
	exportCursor  int

	reminder reminderModel

	log          logModel
	daySummary   summaryModel
	reports      reportsModel
	settingsView settingsModel

	help      help.Model
	status    string
	statusErr bool
}

// NewApp wires the views to the store and settings. startupNotice, when
// non-empty, is shown in the footer (e.g. "settings file ignored, using
// defaults").
func NewApp(s *store.Store, cfg config.Settings, cfgPath, startupNotice string) App {
	h := help.New()
	h.ShowAll = false

	now := time.Now()
	return App{
		store:        s,
		cfg:          cfg,
		cfgPath:      cfgPath,
		activeView:   viewLog,
		reminder:     newReminderModel(cfg.Interval(), cfg.Snooze(), now),
		log:          newLogModel(s, cfg.ReminderIntervalMinutes),
		daySummary:   newSummaryModel(s),
		reports:      newReportsModel(s),
		settingsView: newSettingsModel(cfgPath, cfg),
		help:         h,
		status:       startupNotice,
	}
}

func (a App) Init() tea.Cmd {
	return tea.Batch(
		a.log.refresh(),
		tickCmd(),
	)
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		contentHeight := a.height - 4 // header + footer
		a.log.setSize(a.width, contentHeight)
		a.daySummary.setSize(a.width, contentHeight)
		a.reports.setSize(a.width, contentHeight)
		a.settingsView.setSize(a.width, contentHeight)
		return a, nil

	case tea.KeyMsg:
		if a.exportPicking {
			return a.updateExportPicker(msg)
		}

		// If a form is capturing input, delegate first.
		if a.isFormActive() {
			return a.updateActiveView(msg)
		}

		switch {
		case key.Matches(msg, keys.Quit):
			return a, tea.Quit
		case key.Matches(msg, keys.Help):
			a.showHelp = !a.showHelp
			a.help.ShowAll = a.showHelp
			return a, nil
		case key.Matches(msg, keys.Pause):
			a.reminder.toggle(time.Now())
			if a.reminder.paused {
				a.setStatus("Reminders paused", false)
			} else {
				a.setStatus("Reminders resumed", false)
			}
			return a, nil
		case key.Matches(msg, keys.Export):
			a.exportPicking = true
			a.exportCursor = 0
			return a, nil
		case key.Matches(msg, keys.Tab1):
			a.activeView = viewLog
			return a, a.log.refresh()
		case key.Matches(msg, keys.Tab2):
			a.activeView = viewSummary
			return a, a.daySummary.refresh()
		case key.Matches(msg, keys.Tab3):
			a.activeView = viewReports
			return a, a.reports.refresh()
		case key.Matches(msg, keys.Tab4):
			a.activeView = viewSettings
			return a, nil
		case key.Matches(msg, keys.Tab):
			a.activeView = (a.activeView + 1) % 4
			return a, a.refreshCurrentView()
		}

	case tickMsg:
		now := time.Time(msg)
		cmds := []tea.Cmd{tickCmd()}
		if a.reminder.due(now) && !a.isFormActive() {
			a.activeView = viewLog
			var cmd tea.Cmd
			a.log, cmd = a.log.showForm()
			if cmd != nil {
				cmds = append(cmds, cmd)
			}
		}
		return a, tea.Batch(cmds...)

	case statusMsg:
		a.setStatus(msg.text, msg.isError)
		if msg.isError {
			a.log.saving = false
		}
		return a, nil

	case entrySavedMsg:
		a.log.saving = false
		a.reminder.reschedule(time.Now())
		a.setStatus(fmt.Sprintf("Logged %s–%s", msg.entry.StartTime, msg.entry.EndTime), false)
		return a, a.log.refresh()

	case entrySkippedMsg:
		a.reminder.reschedule(time.Now())
		a.setStatus("Entry skipped", false)
		return a, nil

	case entrySnoozedMsg:
		a.reminder.snoozeFrom(time.Now())
		a.setStatus(fmt.Sprintf("Snoozed %d min", a.cfg.SnoozeDurationMinutes), false)
		return a, nil

	case settingsSavedMsg:
		return a.applySettings(msg.settings)

	case exportDoneMsg:
		a.setStatus("Exported to "+msg.path, false)
		a.exportPicking = false
		return a, nil
	}

	return a.updateActiveView(msg)
}

func (a *App) setStatus(text string, isError bool) {
	a.status = text
	a.statusErr = isError
}

// applySettings rebuilds the store and scheduler from freshly saved
// settings. This is the explicit reload; nothing re-reads the settings file
// behind the scenes.
func (a App) applySettings(cfg config.Settings) (tea.Model, tea.Cmd) {
	s, err := store.New(cfg.WorklogDir, cfg.Interval())
	if err != nil {
		a.setStatus(fmt.Sprintf("Settings error: %v", err), true)
		return a, nil
	}

	a.store = s
	a.cfg = cfg
	a.reminder.setDurations(cfg.Interval(), cfg.Snooze(), time.Now())

	a.log.store = s
	a.log.intervalMinutes = cfg.ReminderIntervalMinutes
	a.daySummary.store = s
	a.reports.store = s
	a.settingsView.current = cfg

	a.setStatus("Settings saved", false)
	return a, a.log.refresh()
}

func (a App) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.activeView {
	case viewLog:
		a.log, cmd = a.log.update(msg)
	case viewSummary:
		a.daySummary, cmd = a.daySummary.update(msg)
	case viewReports:
		a.reports, cmd = a.reports.update(msg)
	case viewSettings:
		a.settingsView, cmd = a.settingsView.update(msg)
	}
	return a, cmd
}

func (a App) isFormActive() bool {
	return a.log.formActive || a.log.saving || a.settingsView.formActive
}

func (a App) refreshCurrentView() tea.Cmd {
	switch a.activeView {
	case viewLog:
		return a.log.refresh()
	case viewSummary:
		return a.daySummary.refresh()
	case viewReports:
		return a.reports.refresh()
	}
	return nil
}

func (a App) View() string {
	if a.width == 0 {
		return "Loading..."
	}

	header := a.renderHeader()
	footer := a.renderFooter()

	var content string
	switch a.activeView {
	case viewLog:
		content = a.log.view(formatCountdown(a.reminder.remaining(time.Now())), a.reminder.paused)
	case viewSummary:
		content = a.daySummary.view()
	case viewReports:
		content = a.reports.view()
	case viewSettings:
		content = a.settingsView.view()
	}

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := a.height - headerHeight - footerHeight
	if contentHeight < 1 {
		contentHeight = 1
	}

	if a.exportPicking {
		content = a.renderExportPicker()
	}

	content = lipgloss.NewStyle().
		Width(a.width).
		Height(contentHeight).
		Render(content)

	return lipgloss.JoinVertical(lipgloss.Left, header, content, footer)
}

func (a App) renderHeader() string {
	var tabs []string
	for i, name := range viewNames {
		if viewState(i) == a.activeView {
			tabs = append(tabs, activeTabStyle.Render(name))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(name))
		}
	}
	tabRow := lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...)

	title := lipgloss.NewStyle().Bold(true).Foreground(colorPrimary).Render("worklogger")
	gap := a.width - lipgloss.Width(title) - lipgloss.Width(tabRow) - 4
	if gap < 1 {
		gap = 1
	}
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

	reminderInfo := ""
	if a.reminder.paused {
		reminderInfo = warningStyle.Render(" ⏸ paused")
	} else {
		reminderInfo = successStyle.Render(" ⏰ " + formatCountdown(a.reminder.remaining(time.Now())))
	}

	left := footerStyle.Render(helpView)
	right := reminderInfo + status

	gap := a.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return lipgloss.JoinHorizontal(lipgloss.Bottom, left, spacer, right)
}

func (a App) renderExportPicker() string {
	title := titleStyle.Render("Export Format")
	formats := []string{"CSV", "JSON"}
	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")
	for i, f := range formats {
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
		if a.exportCursor < 1 {
			a.exportCursor++
		}
	case key.Matches(msg, keys.Enter):
		a.exportPicking = false
		return a, a.doExport(a.exportCursor)
	case key.Matches(msg, keys.Back):
		a.exportPicking = false
	}
	return a, nil
}

// doExport merges the last exportLookbackDays day files, oldest first, and
// writes them to the home directory in the chosen format.
func (a App) doExport(format int) tea.Cmd {
	s := a.store
	return func() tea.Msg {
		var entries []store.Entry
		now := time.Now()
		for i := exportLookbackDays - 1; i >= 0; i-- {
			dayEntries, _, err := s.ReadDay(now.AddDate(0, 0, -i))
			if err != nil {
				continue
			}
			entries = append(entries, dayEntries...)
		}

		home, _ := os.UserHomeDir()
		dateStr := now.Format(store.DateLayout)

		var path string
		var err error
		if format == 0 {
			path = filepath.Join(home, fmt.Sprintf("worklog-export-%s.csv", dateStr))
			err = export.ToCSV(entries, path)
		} else {
			path = filepath.Join(home, fmt.Sprintf("worklog-export-%s.json", dateStr))
			err = export.ToJSON(entries, path)
		}
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Export error: %v", err), isError: true}
		}

		return exportDoneMsg{path: path}
	}
}
