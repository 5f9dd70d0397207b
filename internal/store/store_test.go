package store

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(t.TempDir(), 45*time.Minute)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	return s
}

// at builds a clock value on an arbitrary fixed day.
func at(hour, minute int) time.Time {
	return time.Date(2026, 3, 2, hour, minute, 0, 0, time.Local)
}

// ============================================================
// Store initialization
// ============================================================

func TestNewCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "worklog")
	s, err := New(dir, 45*time.Minute)
	if err != nil {
		t.Fatal(err)
	}
	if s.Dir() != dir {
		t.Fatalf("dir = %q, want %q", s.Dir(), dir)
	}
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		t.Fatalf("directory not created: %v", err)
	}
}

func TestDayPathNamedByISODate(t *testing.T) {
	s := newTestStore(t)
	path := s.dayPath(at(10, 0))
	if filepath.Base(path) != "2026-03-02.csv" {
		t.Fatalf("unexpected day file name: %s", filepath.Base(path))
	}
}

func TestDefaultDir(t *testing.T) {
	dir, err := DefaultDir()
	if err != nil {
		t.Fatal(err)
	}
	if dir == "" {
		t.Fatal("empty default dir")
	}
}

// ============================================================
// Append
// ============================================================

func TestAppendFirstEntryEstimatesStart(t *testing.T) {
	s := newTestStore(t)

	entry, err := s.appendAt(at(10, 0), "Acme", "Development", "Fixed bug")
	if err != nil {
		t.Fatal(err)
	}
	if entry.StartTime != "09:15" {
		t.Fatalf("start = %q, want 09:15", entry.StartTime)
	}
	if entry.EndTime != "10:00" {
		t.Fatalf("end = %q, want 10:00", entry.EndTime)
	}
	if entry.Date != "2026-03-02" {
		t.Fatalf("date = %q", entry.Date)
	}
}

func TestAppendChainsStartTimes(t *testing.T) {
	s := newTestStore(t)

	if _, err := s.appendAt(at(10, 0), "Acme", "Development", "Fixed bug"); err != nil {
		t.Fatal(err)
	}
	second, err := s.appendAt(at(10, 30), "Acme", "Development", "Code review")
	if err != nil {
		t.Fatal(err)
	}
	if second.StartTime != "10:00" {
		t.Fatalf("second start = %q, want 10:00", second.StartTime)
	}
	if second.EndTime != "10:30" {
		t.Fatalf("second end = %q, want 10:30", second.EndTime)
	}
}

func TestAppendChainAcrossManyEntries(t *testing.T) {
	s := newTestStore(t)

	for i := 0; i < 5; i++ {
		if _, err := s.appendAt(at(9+i, 0), "p", "t", "d"); err != nil {
			t.Fatal(err)
		}
	}
	entries, skipped, err := s.ReadDay(at(12, 0))
	if err != nil {
		t.Fatal(err)
	}
	if skipped != 0 {
		t.Fatalf("skipped = %d, want 0", skipped)
	}
	for i := 1; i < len(entries); i++ {
		if entries[i].StartTime != entries[i-1].EndTime {
			t.Fatalf("entry %d start %q != entry %d end %q",
				i, entries[i].StartTime, i-1, entries[i-1].EndTime)
		}
	}
}

func TestAppendRoundTrip(t *testing.T) {
	s := newTestStore(t)

	desc := `fixed "the" bug, twice; also\nnewlines and ümlauts`
	want, err := s.appendAt(at(14, 5), "Acme, Inc.", "Review", desc)
	if err != nil {
		t.Fatal(err)
	}

	entries, skipped, err := s.ReadDay(at(14, 5))
	if err != nil {
		t.Fatal(err)
	}
	if skipped != 0 {
		t.Fatalf("skipped = %d, want 0", skipped)
	}
	if len(entries) != 1 {
		t.Fatalf("len = %d, want 1", len(entries))
	}
	if entries[0] != want {
		t.Fatalf("round trip mismatch:\n got %+v\nwant %+v", entries[0], want)
	}
}

func TestAppendCreatesHeader(t *testing.T) {
	s := newTestStore(t)

	if _, err := s.appendAt(at(10, 0), "p", "t", "d"); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(s.dayPath(at(10, 0)))
	if err != nil {
		t.Fatal(err)
	}
	firstLine := strings.SplitN(string(data), "\n", 2)[0]
	if firstLine != "date,start_time,end_time,project,task_type,description" {
		t.Fatalf("unexpected header: %q", firstLine)
	}
}

func TestAppendDoesNotRepeatHeader(t *testing.T) {
	s := newTestStore(t)

	s.appendAt(at(10, 0), "p", "t", "a")
	s.appendAt(at(11, 0), "p", "t", "b")

	data, _ := os.ReadFile(s.dayPath(at(10, 0)))
	if got := strings.Count(string(data), "date,start_time"); got != 1 {
		t.Fatalf("header written %d times", got)
	}
}

func TestAppendSeparateDaysSeparateFiles(t *testing.T) {
	s := newTestStore(t)

	day1 := at(10, 0)
	day2 := day1.AddDate(0, 0, 1)
	s.appendAt(day1, "p", "t", "one")

	// First entry of a new day estimates from the interval again.
	entry, err := s.appendAt(day2, "p", "t", "two")
	if err != nil {
		t.Fatal(err)
	}
	if entry.StartTime != "09:15" {
		t.Fatalf("new day start = %q, want 09:15", entry.StartTime)
	}

	entries, _, _ := s.ReadDay(day1)
	if len(entries) != 1 || entries[0].Description != "one" {
		t.Fatalf("day1 entries: %+v", entries)
	}
	entries, _, _ = s.ReadDay(day2)
	if len(entries) != 1 || entries[0].Description != "two" {
		t.Fatalf("day2 entries: %+v", entries)
	}
}

// ============================================================
// ReadDay
// ============================================================

func TestReadDayMissingFile(t *testing.T) {
	s := newTestStore(t)

	entries, skipped, err := s.ReadDay(at(10, 0))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 || skipped != 0 {
		t.Fatalf("entries=%d skipped=%d, want 0/0", len(entries), skipped)
	}
}

func TestReadDaySkipsMalformedRows(t *testing.T) {
	s := newTestStore(t)
	day := at(10, 0)

	raw := strings.Join([]string{
		"date,start_time,end_time,project,task_type,description",
		"2026-03-02,09:00,10:00,Acme,Development,good row",
		"2026-03-02,too,few",
		"2026-03-02,10:00,11:00,Acme,Review,another good row",
		"one,two,three,four,five,six,seven",
		"",
	}, "\n")
	if err := os.WriteFile(s.dayPath(day), []byte(raw), 0o644); err != nil {
		t.Fatal(err)
	}

	entries, skipped, err := s.ReadDay(day)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 {
		t.Fatalf("len = %d, want 2", len(entries))
	}
	if skipped != 2 {
		t.Fatalf("skipped = %d, want 2", skipped)
	}
	if entries[0].Description != "good row" || entries[1].Description != "another good row" {
		t.Fatalf("wrong rows survived: %+v", entries)
	}
}

func TestReadDayPreservesFileOrder(t *testing.T) {
	s := newTestStore(t)

	for _, d := range []string{"first", "second", "third"} {
		s.appendAt(at(10, 0), "p", "t", d)
	}
	entries, _, _ := s.ReadDay(at(10, 0))
	if len(entries) != 3 {
		t.Fatalf("len = %d", len(entries))
	}
	for i, want := range []string{"first", "second", "third"} {
		if entries[i].Description != want {
			t.Fatalf("entry %d = %q, want %q", i, entries[i].Description, want)
		}
	}
}

// ============================================================
// Derived queries
// ============================================================

func TestLastEntry(t *testing.T) {
	s := newTestStore(t)

	last, err := s.LastEntry(at(10, 0))
	if err != nil {
		t.Fatal(err)
	}
	if last != nil {
		t.Fatal("expected nil for empty day")
	}

	s.appendAt(at(10, 0), "Acme", "Development", "first")
	s.appendAt(at(11, 0), "Beta", "Meeting", "second")

	last, err = s.LastEntry(at(11, 0))
	if err != nil {
		t.Fatal(err)
	}
	if last == nil || last.Description != "second" {
		t.Fatalf("last = %+v, want second", last)
	}
}

func TestProjectsDistinctSorted(t *testing.T) {
	s := newTestStore(t)
	now := time.Now()

	s.appendAt(now, "Zeta", "Development", "a")
	s.appendAt(now, "Acme", "Development", "b")
	s.appendAt(now, "Acme", "Review", "c")
	s.appendAt(now.AddDate(0, 0, -1), "Mid", "Development", "d")
	s.appendAt(now, "", "Development", "no project")

	got := s.Projects(30)
	want := []string{"Acme", "Mid", "Zeta"}
	if len(got) != len(want) {
		t.Fatalf("projects = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("projects = %v, want %v", got, want)
		}
	}
}

func TestProjectsLookbackWindow(t *testing.T) {
	s := newTestStore(t)
	now := time.Now()

	s.appendAt(now.AddDate(0, 0, -40), "Ancient", "Development", "too old")
	s.appendAt(now, "Fresh", "Development", "recent")

	got := s.Projects(30)
	if len(got) != 1 || got[0] != "Fresh" {
		t.Fatalf("projects = %v, want [Fresh]", got)
	}
}

func TestEntryFromRecordSchema(t *testing.T) {
	if _, ok := entryFromRecord([]string{"a", "b", "c"}); ok {
		t.Fatal("short record accepted")
	}
	if _, ok := entryFromRecord([]string{"1", "2", "3", "4", "5", "6", "7"}); ok {
		t.Fatal("long record accepted")
	}
	e, ok := entryFromRecord([]string{"2026-03-02", "09:00", "10:00", "Acme", "Review", "d"})
	if !ok {
		t.Fatal("valid record rejected")
	}
	if e.Project != "Acme" || e.TaskType != "Review" {
		t.Fatalf("bad mapping: %+v", e)
	}
}
