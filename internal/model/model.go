package model

import (
	"time"
)

// Columns is the fixed column order of a generated table.
var Columns = []string{
	"id", "period", "treatment", "x1", "x2", "x3", "x4",
	"age", "outcome", "censored", "eligible", "age_s",
}

// Record is one subject-period observation.
type Record struct {
	ID        int
	Period    int
	Treatment int
	X1        float64
	X2        float64
	X3        int
	X4        float64
	Age       int
	Outcome   int
	Censored  int
	Eligible  int
	AgeS      float64
}

// Table holds Subjects*Periods records, subject-major and period-minor.
type Table struct {
	Subjects int
	Periods  int
	Records  []Record
}

func (t *Table) Len() int {
	return len(t.Records)
}

// Run describes one persisted table in the run registry.
type Run struct {
	ID         int64     `json:"id,omitempty"`
	Seed       uint32    `json:"seed"`
	Subjects   int       `json:"n_subjects"`
	Periods    int       `json:"n_periods"`
	Stream     string    `json:"stream"`
	OutputPath string    `json:"output_path"`
	Rows       int       `json:"rows"`
	Checksum   string    `json:"checksum"`
	Timestamp  time.Time `json:"created_at,omitempty"`
}
