package store

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"time"
)

// Append records a completed interval ending now. The start time is the end
// time of today's last entry, or now minus the reminder interval when this is
// the first entry of the day. The row is flushed and fsynced before Append
// returns so a crash immediately after cannot lose it.
func (s *Store) Append(project, taskType, description string) (Entry, error) {
	return s.appendAt(time.Now(), project, taskType, description)
}

func (s *Store) appendAt(now time.Time, project, taskType, description string) (Entry, error) {
	last, err := s.LastEntry(now)
	if err != nil {
		return Entry{}, err
	}

	start := now.Add(-s.interval).Format(TimeLayout)
	if last != nil {
		start = last.EndTime
	}

	entry := Entry{
		Date:        now.Format(DateLayout),
		StartTime:   start,
		EndTime:     now.Format(TimeLayout),
		Project:     project,
		TaskType:    taskType,
		Description: description,
	}

	if err := s.writeRow(s.dayPath(now), entry); err != nil {
		return Entry{}, err
	}
	return entry, nil
}

// writeRow appends one record to the day file, creating it with the schema
// header first when absent.
func (s *Store) writeRow(path string, entry Entry) error {
	_, statErr := os.Stat(path)
	fresh := os.IsNotExist(statErr)

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open day file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if fresh {
		if err := w.Write(header); err != nil {
			return fmt.Errorf("write header: %w", err)
		}
	}
	if err := w.Write(entry.record()); err != nil {
		return fmt.Errorf("write entry: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush entry: %w", err)
	}
	if err := f.Sync(); err != nil {
		return fmt.Errorf("sync day file: %w", err)
	}
	return nil
}

// ReadDay returns all entries for the given day in file order, together with
// the number of malformed rows that were skipped. A missing day file is an
// empty day, not an error; the error return is reserved for failures that
// abort the whole read.
func (s *Store) ReadDay(day time.Time) ([]Entry, int, error) {
	f, err := os.Open(s.dayPath(day))
	if os.IsNotExist(err) {
		return nil, 0, nil
	}
	if err != nil {
		return nil, 0, fmt.Errorf("open day file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	// First row is always the schema header written at creation time.
	if _, err := r.Read(); err == io.EOF {
		return nil, 0, nil
	} else if err != nil {
		return nil, 0, fmt.Errorf("read header: %w", err)
	}

	var entries []Entry
	skipped := 0
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			skipped++
			continue
		}
		entry, ok := entryFromRecord(rec)
		if !ok {
			skipped++
			continue
		}
		entries = append(entries, entry)
	}
	return entries, skipped, nil
}

// LastEntry returns the most recently appended entry for the given day, or
// nil when the day has no entries.
func (s *Store) LastEntry(day time.Time) (*Entry, error) {
	entries, _, err := s.ReadDay(day)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, nil
	}
	return &entries[len(entries)-1], nil
}
