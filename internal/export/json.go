package export

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/okemir/worklogger/internal/store"
)

type jsonExport struct {
	ExportedAt string        `json:"exported_at"`
	Count      int           `json:"count"`
	Entries    []store.Entry `json:"entries"`
}

// ToJSON writes entries to path as a pretty-printed JSON document with the
// export timestamp and entry count.
func ToJSON(entries []store.Entry, path string) error {
	doc := jsonExport{
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
		Count:      len(entries),
		Entries:    entries,
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write json file: %w", err)
	}
	return nil
}
