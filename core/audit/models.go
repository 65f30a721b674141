package audit

import "time"

// Run is one merged asset group.
type Run struct {
	ID           string `gorm:"primaryKey;column:id;type:varchar(36)" json:"id"`
	Kind         string `gorm:"column:kind;type:varchar(32);index" json:"kind"`
	RelativePath string `gorm:"column:relative_path;type:varchar(512)" json:"relative_path"`
	OutputPath   string `gorm:"column:output_path;type:varchar(1024)" json:"output_path"`
	HasVanilla   bool   `gorm:"column:has_vanilla" json:"has_vanilla"`
	Persisted    bool   `gorm:"column:persisted" json:"persisted"`
	Fatal        bool   `gorm:"column:fatal" json:"fatal"`

	Files                  int `gorm:"column:files;default:0" json:"files"`
	Folded                 int `gorm:"column:folded;default:0" json:"folded"`
	SkippedFiles           int `gorm:"column:skipped_files;default:0" json:"skipped_files"`
	Replaced               int `gorm:"column:replaced;default:0" json:"replaced"`
	Added                  int `gorm:"column:added;default:0" json:"added"`
	Skipped                int `gorm:"column:skipped;default:0" json:"skipped"`
	StructuralReplacements int `gorm:"column:structural_replacements;default:0" json:"structural_replacements"`
	Unchanged              int `gorm:"column:unchanged;default:0" json:"unchanged"`

	// Failures holds one "kind: message" line per failure.
	Failures string `gorm:"column:failures;type:text" json:"failures,omitempty"`

	StartedAt  time.Time `gorm:"column:started_at;index" json:"started_at"`
	FinishedAt time.Time `gorm:"column:finished_at" json:"finished_at"`

	Records []Record `gorm:"foreignKey:RunID" json:"records,omitempty"`
}

func (Run) TableName() string {
	return "merge_runs"
}

// Record is one persisted audit decision.
type Record struct {
	ID         uint   `gorm:"primaryKey;column:id;autoIncrement" json:"-"`
	RunID      string `gorm:"column:run_id;type:varchar(36);index" json:"run_id"`
	Kind       string `gorm:"column:kind;type:varchar(32)" json:"kind"`
	File       string `gorm:"column:file;type:varchar(1024)" json:"file"`
	Collection string `gorm:"column:collection;type:varchar(255)" json:"collection"`
	Key        string `gorm:"column:unit_key;type:varchar(255)" json:"key"` // key is reserved in MySQL
	Action     string `gorm:"column:action;type:varchar(32)" json:"action"`
	Reason     string `gorm:"column:reason;type:varchar(32)" json:"reason"`
	Detail     string `gorm:"column:detail;type:text" json:"detail,omitempty"`
}

func (Record) TableName() string {
	return "merge_records"
}

var (
	runColumns = []string{
		"id", "kind", "relative_path", "output_path", "has_vanilla", "persisted", "fatal",
		"files", "folded", "skipped_files", "replaced", "added", "skipped",
		"structural_replacements", "unchanged", "failures", "started_at", "finished_at",
	}
	recordColumns = []string{
		"id", "run_id", "kind", "file", "collection", "unit_key", "action", "reason", "detail",
	}
)
