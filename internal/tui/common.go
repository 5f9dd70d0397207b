package tui

import (
	"fmt"
	"time"

	"github.com/okemir/worklogger/internal/config"
	"github.com/okemir/worklogger/internal/store"
)

// viewState represents the currently active view.
type viewState int

const (
	viewLog viewState = iota
	viewSummary
	viewReports
	viewSettings
)

var viewNames = []string{"Log", "Summary", "Reports", "Settings"}

// --- Messages ---

type tickMsg time.Time

type statusMsg struct {
	text    string
	isError bool
}

// entrySavedMsg reschedules the reminder for a full interval.
type entrySavedMsg struct {
	entry store.Entry
}

// entrySkippedMsg is a dismissed capture prompt; the reminder reschedules a
// full interval, the same as after a save.
type entrySkippedMsg struct{}

// entrySnoozedMsg reschedules the reminder for the snooze duration.
type entrySnoozedMsg struct{}

type settingsSavedMsg struct {
	settings config.Settings
}

type exportDoneMsg struct {
	path string
}

// --- Helpers ---

// formatCountdown renders the time until the next reminder as MM:SS, or
// H:MM:SS once an hour or more remains.
func formatCountdown(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d.Round(time.Second).Seconds())
	h := total / 3600
	m := (total % 3600) / 60
	s := total % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%02d:%02d", m, s)
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
