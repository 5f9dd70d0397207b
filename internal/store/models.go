package store

// Entry is one completed work interval. Times are wall-clock time-of-day
// strings at minute granularity, mirroring the on-disk columns; an entry is
// never mutated after it has been appended.
type Entry struct {
	Date        string `json:"date"`       // 2006-01-02
	StartTime   string `json:"start_time"` // 15:04
	EndTime     string `json:"end_time"`   // 15:04
	Project     string `json:"project"`
	TaskType    string `json:"task_type"`
	Description string `json:"description"`
}

// Layout strings for the Date and StartTime/EndTime fields.
const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// header is the fixed first row of every day file.
var header = []string{"date", "start_time", "end_time", "project", "task_type", "description"}

// DefaultTaskTypes are the task type choices offered at capture time.
// Free text is still accepted.
var DefaultTaskTypes = []string{
	"Development",
	"Meeting",
	"Review",
	"Learning",
	"Support",
	"Other",
}

func (e Entry) record() []string {
	return []string{e.Date, e.StartTime, e.EndTime, e.Project, e.TaskType, e.Description}
}

// entryFromRecord maps a CSV row back to an Entry. It reports false for rows
// that do not match the six-column schema.
func entryFromRecord(rec []string) (Entry, bool) {
	if len(rec) != len(header) {
		return Entry{}, false
	}
	return Entry{
		Date:        rec[0],
		StartTime:   rec[1],
		EndTime:     rec[2],
		Project:     rec[3],
		TaskType:    rec[4],
		Description: rec[5],
	}, true
}
