// Package config persists the application settings as a single JSON file
// under the user config root. The file location is resolved once at startup
// and never depends on values stored inside it.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Settings is the process-wide configuration. It is carried by value;
// components receive the values they need at construction and are rebuilt
// after an explicit save.
type Settings struct {
	ReminderIntervalMinutes int    `json:"reminder_interval_minutes"`
	SnoozeDurationMinutes   int    `json:"snooze_duration_minutes"`
	WorklogDir              string `json:"worklog_dir"`
}

// Bounds for the timer settings.
const (
	MinReminderMinutes = 5
	MaxReminderMinutes = 240
	MinSnoozeMinutes   = 1
	MaxSnoozeMinutes   = 60

	defaultReminderMinutes = 45
	defaultSnoozeMinutes   = 10
)

// Default returns the built-in settings with the worklog directory under the
// user's home.
func Default() Settings {
	dir := "worklog"
	if home, err := os.UserHomeDir(); err == nil {
		dir = filepath.Join(home, "worklog")
	}
	return Settings{
		ReminderIntervalMinutes: defaultReminderMinutes,
		SnoozeDurationMinutes:   defaultSnoozeMinutes,
		WorklogDir:              dir,
	}
}

// DefaultPath returns the settings file location,
// <user config dir>/worklogger/settings.json.
func DefaultPath() (string, error) {
	cfg, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cfg, "worklogger", "settings.json"), nil
}

// Load reads settings from path, merging persisted values over the defaults
// and clamping out-of-range numbers. A missing file yields the defaults with
// a nil error. An unreadable or corrupt file also yields the defaults, but
// with a non-nil error so the caller can tell the user the file was ignored.
func Load(path string) (Settings, error) {
	s := Default()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return Default(), fmt.Errorf("read settings file %s: %w", path, err)
	}

	if err := json.Unmarshal(data, &s); err != nil {
		return Default(), fmt.Errorf("parse settings file %s: %w", path, err)
	}
	if s.WorklogDir == "" {
		s.WorklogDir = Default().WorklogDir
	}
	return s.Clamped(), nil
}

// Save clamps the settings and writes them to path, creating the settings
// directory and the worklog directory as needed.
func (s Settings) Save(path string) error {
	s = s.Clamped()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create settings directory: %w", err)
	}
	if err := os.MkdirAll(s.WorklogDir, 0o755); err != nil {
		return fmt.Errorf("create worklog directory: %w", err)
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write settings file: %w", err)
	}
	return nil
}

// Clamped returns a copy with the timer values forced into their valid
// ranges.
func (s Settings) Clamped() Settings {
	s.ReminderIntervalMinutes = clamp(s.ReminderIntervalMinutes, MinReminderMinutes, MaxReminderMinutes)
	s.SnoozeDurationMinutes = clamp(s.SnoozeDurationMinutes, MinSnoozeMinutes, MaxSnoozeMinutes)
	return s
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Interval returns the reminder interval as a duration.
func (s Settings) Interval() time.Duration {
	return time.Duration(s.ReminderIntervalMinutes) * time.Minute
}

// Snooze returns the snooze duration as a duration.
func (s Settings) Snooze() time.Duration {
	return time.Duration(s.SnoozeDurationMinutes) * time.Minute
}

// CheckWritable probes dir by creating and deleting a marker file. It is
// called at settings-save time so an unwritable log directory is surfaced
// to the user instead of failing silently on the next append.
func CheckWritable(dir string) error {
	probe := filepath.Join(dir, ".write_probe")
	f, err := os.Create(probe)
	if err != nil {
		return fmt.Errorf("directory not writable: %w", err)
	}
	f.Close()
	if err := os.Remove(probe); err != nil {
		return fmt.Errorf("remove write probe: %w", err)
	}
	return nil
}
