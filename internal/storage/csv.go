package storage

import (
	"bufio"
	"crypto/sha256"
	"encoding/csv"
	"encoding/hex"
	"github.com/CvitoyBamp/panelsynth/internal/customerror"
	"github.com/CvitoyBamp/panelsynth/internal/model"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Persist writes t as CSV to path, creating missing parent directories.
// An existing file at path is truncated.
func Persist(t *model.Table, path string) (err error) {
	if dir := filepath.Dir(path); dir != "" {
		if errDir := os.MkdirAll(dir, 0o755); errDir != nil {
			return &customerror.IOError{Op: "mkdir", Path: dir, Err: errDir}
		}
	}

	f, errCreate := os.Create(path)
	if errCreate != nil {
		return &customerror.IOError{Op: "create", Path: path, Err: errCreate}
	}
	defer func() {
		if errClose := f.Close(); errClose != nil && err == nil {
			err = &customerror.IOError{Op: "close", Path: path, Err: errClose}
		}
	}()

	w := bufio.NewWriter(f)
	if errWrite := WriteCSV(w, t); errWrite != nil {
		return &customerror.IOError{Op: "write", Path: path, Err: errWrite}
	}
	if errFlush := w.Flush(); errFlush != nil {
		return &customerror.IOError{Op: "write", Path: path, Err: errFlush}
	}

	return nil
}

// WriteCSV writes the header row followed by one line per record.
func WriteCSV(w io.Writer, t *model.Table) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(model.Columns); err != nil {
		return err
	}

	row := make([]string, len(model.Columns))
	for _, r := range t.Records {
		row[0] = strconv.Itoa(r.ID)
		row[1] = strconv.Itoa(r.Period)
		row[2] = strconv.Itoa(r.Treatment)
		row[3] = FormatFloat(r.X1)
		row[4] = FormatFloat(r.X2)
		row[5] = strconv.Itoa(r.X3)
		row[6] = FormatFloat(r.X4)
		row[7] = strconv.Itoa(r.Age)
		row[8] = strconv.Itoa(r.Outcome)
		row[9] = strconv.Itoa(r.Censored)
		row[10] = strconv.Itoa(r.Eligible)
		row[11] = FormatFloat(r.AgeS)
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// FormatFloat renders f with the fewest digits that round-trip. Integral
// values keep a trailing ".0"; magnitudes below 1e-4 or from 1e16 up use
// exponent notation. NaN is written as an empty field.
func FormatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return ""
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}

	if abs := math.Abs(f); abs != 0 && (abs < 1e-4 || abs >= 1e16) {
		return strconv.FormatFloat(f, 'e', -1, 64)
	}

	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// Checksum returns the hex SHA-256 of the file at path.
func Checksum(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", &customerror.IOError{Op: "open", Path: path, Err: err}
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", &customerror.IOError{Op: "read", Path: path, Err: err}
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
