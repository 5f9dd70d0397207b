package export

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/okemir/worklogger/internal/store"
)

// ToCSV writes entries spanning any number of days into a single CSV file
// with the same six-column schema as the daily log files.
func ToCSV(entries []store.Entry, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{"date", "start_time", "end_time", "project", "task_type", "description"}); err != nil {
		return err
	}
	for _, e := range entries {
		row := []string{e.Date, e.StartTime, e.EndTime, e.Project, e.TaskType, e.Description}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return w.Error()
}
