// Command synth writes a simulated subject-period dataset to a CSV file and
// prints the file's absolute path.
package main

import (
	"context"
	"errors"
	"fmt"
	"github.com/CvitoyBamp/panelsynth/internal/config"
	"github.com/CvitoyBamp/panelsynth/internal/customerror"
	"github.com/CvitoyBamp/panelsynth/internal/database"
	"github.com/CvitoyBamp/panelsynth/internal/model"
	"github.com/CvitoyBamp/panelsynth/internal/storage"
	"github.com/CvitoyBamp/panelsynth/internal/synth"
	"io"
	"log"
	"os"
	"path/filepath"
)

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context, args []string, stdout io.Writer) error {
	cfg, err := config.Load("synth", args)
	if err != nil {
		return err
	}

	path, err := filepath.Abs(cfg.OutputPath)
	if err != nil {
		return &customerror.IOError{Op: "resolve", Path: cfg.OutputPath, Err: err}
	}

	table := synth.GenerateWith(cfg.StreamKind(), cfg.Seed32(), cfg.Subjects, cfg.Periods)
	log.Printf("generated %s", synth.Summarize(table))

	if err := storage.Persist(table, path); err != nil {
		return err
	}

	if cfg.DatabaseURI != "" {
		if err := register(ctx, cfg, table, path); err != nil {
			log.Printf("run was not registered, error: %v", err)
		}
	}

	_, err = fmt.Fprintf(stdout, "CSV file saved at:\n%s\n", path)
	return err
}

func register(ctx context.Context, cfg *config.Config, table *model.Table, path string) error {
	sum, err := storage.Checksum(path)
	if err != nil {
		return err
	}

	db, err := database.Open(ctx, cfg.DatabaseURI)
	if err != nil {
		return err
	}
	defer db.Close()

	run := &model.Run{
		Seed:       cfg.Seed32(),
		Subjects:   cfg.Subjects,
		Periods:    cfg.Periods,
		Stream:     cfg.Stream,
		OutputPath: path,
		Rows:       table.Len(),
		Checksum:   sum,
	}
	err = db.RecordRun(ctx, run)
	switch {
	case errors.Is(err, customerror.ErrRunExists):
		log.Printf("run %s at %s is already registered", sum, path)
		return nil
	case err != nil:
		return err
	}

	log.Printf("registered run %d", run.ID)
	return nil
}
