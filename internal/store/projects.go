package store

import (
	"sort"
	"time"
)

// Projects returns the distinct non-empty project names used over the last
// lookbackDays days (today included), sorted by name. Days that fail to read
// are skipped; a stale day never blocks capture.
func (s *Store) Projects(lookbackDays int) []string {
	seen := make(map[string]bool)
	now := time.Now()
	for i := 0; i < lookbackDays; i++ {
		entries, _, err := s.ReadDay(now.AddDate(0, 0, -i))
		if err != nil {
			continue
		}
		for _, e := range entries {
			if e.Project != "" {
				seen[e.Project] = true
			}
		}
	}

	projects := make([]string, 0, len(seen))
	for p := range seen {
		projects = append(projects, p)
	}
	sort.Strings(projects)
	return projects
}
