// Package summary groups a day's entries by project and task type and
// renders the result as a report.
package summary

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/okemir/worklogger/internal/store"
)

// Placeholders used when an entry carries no project or task type.
const (
	NoProject   = "No Project"
	NoTaskType  = "Other"
	EmptyReport = "No entries logged today."
)

// Bucket accumulates one (project, task type) group.
type Bucket struct {
	Minutes      int
	Descriptions []string
}

// Summary maps project → task type → accumulated bucket.
type Summary map[string]map[string]*Bucket

// Summarize aggregates entries in read order. Durations that fail to parse
// or come out negative (end before start, e.g. across midnight) count as
// zero minutes rather than failing the whole report.
func Summarize(entries []store.Entry) Summary {
	s := Summary{}
	for _, e := range entries {
		project := e.Project
		if project == "" {
			project = NoProject
		}
		taskType := e.TaskType
		if taskType == "" {
			taskType = NoTaskType
		}

		byTask, ok := s[project]
		if !ok {
			byTask = map[string]*Bucket{}
			s[project] = byTask
		}
		b, ok := byTask[taskType]
		if !ok {
			b = &Bucket{}
			byTask[taskType] = b
		}

		b.Minutes += durationMinutes(e.StartTime, e.EndTime)
		if e.Description != "" {
			b.Descriptions = append(b.Descriptions, e.Description)
		}
	}
	return s
}

// durationMinutes computes end − start in whole minutes, clamped to zero.
func durationMinutes(start, end string) int {
	st, err := time.Parse(store.TimeLayout, start)
	if err != nil {
		return 0
	}
	et, err := time.Parse(store.TimeLayout, end)
	if err != nil {
		return 0
	}
	minutes := int(et.Sub(st).Minutes())
	if minutes < 0 {
		return 0
	}
	return minutes
}

// Format renders the summary sorted by project then task type, one heading
// line per group followed by bulleted descriptions, with a blank line
// between groups.
func (s Summary) Format() string {
	if len(s) == 0 {
		return EmptyReport
	}

	projects := make([]string, 0, len(s))
	for p := range s {
		projects = append(projects, p)
	}
	sort.Strings(projects)

	var lines []string
	for _, project := range projects {
		byTask := s[project]
		taskTypes := make([]string, 0, len(byTask))
		for t := range byTask {
			taskTypes = append(taskTypes, t)
		}
		sort.Strings(taskTypes)

		for _, taskType := range taskTypes {
			b := byTask[taskType]
			lines = append(lines, fmt.Sprintf("%s – %s – %s", project, taskType, FormatMinutes(b.Minutes)))
			for _, desc := range b.Descriptions {
				lines = append(lines, "  • "+desc)
			}
			lines = append(lines, "")
		}
	}

	return strings.TrimSpace(strings.Join(lines, "\n"))
}

// FormatMinutes renders a minute total as "2h 5m", or just "45m" under an
// hour.
func FormatMinutes(minutes int) string {
	h := minutes / 60
	m := minutes % 60
	if h > 0 {
		return fmt.Sprintf("%dh %dm", h, m)
	}
	return fmt.Sprintf("%dm", m)
}

// TotalMinutes sums every bucket in the summary.
func (s Summary) TotalMinutes() int {
	total := 0
	for _, byTask := range s {
		for _, b := range byTask {
			total += b.Minutes
		}
	}
	return total
}

// ProjectMinutes flattens the summary to minutes per project, for charting.
func (s Summary) ProjectMinutes() map[string]int {
	totals := make(map[string]int, len(s))
	for project, byTask := range s {
		for _, b := range byTask {
			totals[project] += b.Minutes
		}
	}
	return totals
}
