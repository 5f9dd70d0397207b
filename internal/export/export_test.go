package export

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/okemir/worklogger/internal/store"
)

func sampleEntries() []store.Entry {
	return []store.Entry{
		{
			Date:        "2026-03-01",
			StartTime:   "09:15",
			EndTime:     "10:00",
			Project:     "Acme",
			TaskType:    "Development",
			Description: "Fixed bug",
		},
		{
			Date:        "2026-03-02",
			StartTime:   "10:00",
			EndTime:     "10:30",
			Project:     "",
			TaskType:    "Meeting",
			Description: "standup, retro",
		},
	}
}

// ============================================================
// CSV
// ============================================================

func TestToCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "export.csv")
	if err := ToCSV(sampleEntries(), path); err != nil {
		t.Fatalf("ToCSV: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 3 {
		t.Fatalf("rows = %d, want header + 2", len(records))
	}
	if records[0][0] != "date" || records[0][5] != "description" {
		t.Fatalf("bad header: %v", records[0])
	}
	if records[1][3] != "Acme" || records[2][5] != "standup, retro" {
		t.Fatalf("bad rows: %v", records[1:])
	}
}

func TestToCSVEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")
	if err := ToCSV(nil, path); err != nil {
		t.Fatal(err)
	}

	f, _ := os.Open(path)
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 1 {
		t.Fatalf("rows = %d, want header only", len(records))
	}
}

// ============================================================
// JSON
// ============================================================

func TestToJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "export.json")
	if err := ToJSON(sampleEntries(), path); err != nil {
		t.Fatalf("ToJSON: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	var doc struct {
		ExportedAt string        `json:"exported_at"`
		Count      int           `json:"count"`
		Entries    []store.Entry `json:"entries"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatal(err)
	}
	if doc.Count != 2 || len(doc.Entries) != 2 {
		t.Fatalf("count = %d, entries = %d", doc.Count, len(doc.Entries))
	}
	if doc.ExportedAt == "" {
		t.Fatal("exported_at missing")
	}
	if doc.Entries[0] != sampleEntries()[0] {
		t.Fatalf("entry mismatch: %+v", doc.Entries[0])
	}
}
