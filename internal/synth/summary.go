package synth

import (
	"fmt"
	"github.com/CvitoyBamp/panelsynth/internal/model"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Summary is a per-column digest of a generated table.
type Summary struct {
	Rows     int
	Subjects int
	Periods  int

	// Fraction of rows equal to 1.
	Treatment float64
	X3        float64
	Outcome   float64
	Censored  float64
	Eligible  float64

	MeanX1  float64
	MeanX2  float64
	MeanX4  float64
	MeanAge float64
}

func Summarize(t *model.Table) Summary {
	s := Summary{Rows: t.Len(), Subjects: t.Subjects, Periods: t.Periods}
	if t.Len() == 0 {
		return s
	}

	cols := make([][]float64, 9)
	for i := range cols {
		cols[i] = make([]float64, t.Len())
	}
	for i, r := range t.Records {
		cols[0][i] = float64(r.Treatment)
		cols[1][i] = float64(r.X3)
		cols[2][i] = float64(r.Outcome)
		cols[3][i] = float64(r.Censored)
		cols[4][i] = float64(r.Eligible)
		cols[5][i] = r.X1
		cols[6][i] = r.X2
		cols[7][i] = r.X4
		cols[8][i] = float64(r.Age)
	}

	n := float64(t.Len())
	s.Treatment = floats.Sum(cols[0]) / n
	s.X3 = floats.Sum(cols[1]) / n
	s.Outcome = floats.Sum(cols[2]) / n
	s.Censored = floats.Sum(cols[3]) / n
	s.Eligible = floats.Sum(cols[4]) / n
	s.MeanX1 = stat.Mean(cols[5], nil)
	s.MeanX2 = stat.Mean(cols[6], nil)
	s.MeanX4 = stat.Mean(cols[7], nil)
	s.MeanAge = stat.Mean(cols[8], nil)

	return s
}

func (s Summary) String() string {
	return fmt.Sprintf("rows=%d subjects=%d periods=%d treatment=%.3f x3=%.3f outcome=%.3f censored=%.3f eligible=%.3f mean(x1)=%.3f mean(x2)=%.3f mean(x4)=%.3f mean(age)=%.2f",
		s.Rows, s.Subjects, s.Periods, s.Treatment, s.X3, s.Outcome, s.Censored, s.Eligible,
		s.MeanX1, s.MeanX2, s.MeanX4, s.MeanAge)
}
