package synth

import (
	"fmt"
	"github.com/CvitoyBamp/panelsynth/internal/model"
)

const (
	minAge = 20
	maxAge = 80

	// MaxRows bounds nSubjects*nPeriods.
	MaxRows = 50_000_000
)

// Weights of 0 and 1 for the binary indicators.
var (
	outcomeOdds  = []float64{0.85, 0.15}
	censoredOdds = []float64{0.9, 0.1}
	eligibleOdds = []float64{0.2, 0.8}
)

// Generate builds a subject-period table from the shared legacy stream.
func Generate(seed uint32, nSubjects, nPeriods int) *model.Table {
	return GenerateWith(StreamLegacy, seed, nSubjects, nPeriods)
}

// GenerateWith builds a table of nSubjects*nPeriods records. Columns are
// drawn in a fixed order: treatment, x1, x2, x3, x4, age (one per subject),
// outcome, censored, eligible. Changing that order changes every value
// drawn after it on the legacy stream.
//
// Sizes must be positive and their product at most MaxRows.
func GenerateWith(kind StreamKind, seed uint32, nSubjects, nPeriods int) *model.Table {
	if err := CheckSize(nSubjects, nPeriods); err != nil {
		panic("synth: " + err.Error())
	}

	src := newStream(kind, seed)
	n := nSubjects * nPeriods

	treatment := src.integers(0, 2, n)
	x1 := src.normal(n)
	x2 := src.normal(n)
	x3 := src.integers(0, 2, n)
	x4 := src.uniform(n)
	ages := src.integers(minAge, maxAge, nSubjects)
	outcome := src.choice(outcomeOdds, n)
	censored := src.choice(censoredOdds, n)
	eligible := src.choice(eligibleOdds, n)

	records := make([]model.Record, n)
	for i := range records {
		subject := i / nPeriods
		records[i] = model.Record{
			ID:        subject + 1,
			Period:    i % nPeriods,
			Treatment: treatment[i],
			X1:        x1[i],
			X2:        x2[i],
			X3:        x3[i],
			X4:        x4[i],
			Age:       ages[subject],
			Outcome:   outcome[i],
			Censored:  censored[i],
			Eligible:  eligible[i],
		}
	}

	for i := range records {
		records[i].AgeS = float64(records[i].Age) + float64(records[i].Period)/12
	}

	return &model.Table{Subjects: nSubjects, Periods: nPeriods, Records: records}
}

// CheckSize reports whether nSubjects x nPeriods is a table GenerateWith
// accepts. The product is never computed before the bound check, so it
// cannot overflow.
func CheckSize(nSubjects, nPeriods int) error {
	if nSubjects <= 0 || nPeriods <= 0 {
		return fmt.Errorf("table size must be positive, got %d subjects x %d periods", nSubjects, nPeriods)
	}
	if nSubjects > MaxRows/nPeriods {
		return fmt.Errorf("table of %d subjects x %d periods exceeds %d rows", nSubjects, nPeriods, MaxRows)
	}
	return nil
}
