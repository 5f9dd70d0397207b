package tui

import "time"

// reminderModel schedules the periodic capture prompt. It holds no goroutine
// state of its own; the app drives it from the 1-second tick and asks it
// whether a prompt is due. Durations come from the settings at construction
// and are replaced explicitly when settings are saved.
type reminderModel struct {
	interval time.Duration
	snooze   time.Duration

	dueAt  time.Time
	paused bool
	// remaining time frozen while paused, restored on resume
	frozen time.Duration
}

func newReminderModel(interval, snooze time.Duration, now time.Time) reminderModel {
	return reminderModel{
		interval: interval,
		snooze:   snooze,
		dueAt:    now.Add(interval),
	}
}

// due reports whether the prompt should fire. A paused reminder is never due.
func (r reminderModel) due(now time.Time) bool {
	return !r.paused && !now.Before(r.dueAt)
}

// remaining is the time left until the prompt, clamped at zero.
func (r reminderModel) remaining(now time.Time) time.Duration {
	if r.paused {
		return r.frozen
	}
	d := r.dueAt.Sub(now)
	if d < 0 {
		return 0
	}
	return d
}

// reschedule starts a full interval. Called after save and after skip: a
// dismissed prompt counts as a completed cycle, not a pending one.
func (r *reminderModel) reschedule(now time.Time) {
	r.dueAt = now.Add(r.interval)
}

// snoozeFrom delays the prompt by the snooze duration.
func (r *reminderModel) snoozeFrom(now time.Time) {
	r.dueAt = now.Add(r.snooze)
}

func (r *reminderModel) pause(now time.Time) {
	if r.paused {
		return
	}
	r.frozen = r.remaining(now)
	r.paused = true
}

func (r *reminderModel) resume(now time.Time) {
	if !r.paused {
		return
	}
	r.paused = false
	r.dueAt = now.Add(r.frozen)
	r.frozen = 0
}

func (r *reminderModel) toggle(now time.Time) {
	if r.paused {
		r.resume(now)
	} else {
		r.pause(now)
	}
}

// setDurations applies new settings and restarts a full interval; a shorter
// interval should not make an in-flight countdown fire retroactively.
func (r *reminderModel) setDurations(interval, snooze time.Duration, now time.Time) {
	r.interval = interval
	r.snooze = snooze
	r.paused = false
	r.frozen = 0
	r.reschedule(now)
}
