package config

import (
	"errors"
	"flag"
	"fmt"
	"github.com/CvitoyBamp/panelsynth/internal/synth"
	"github.com/caarlos0/env/v9"
	"io"
	"math"
)

type Config struct {
	Seed       uint64 `env:"SEED"`
	Subjects   int    `env:"N_SUBJECTS"`
	Periods    int    `env:"N_PERIODS"`
	OutputPath string `env:"OUTPUT_PATH"`
	Stream     string `env:"STREAM"`

	RunAddress  string `env:"RUN_ADDRESS"`
	DatabaseURI string `env:"DATABASE_URI"`
	SecretToken string `env:"TOKEN"`
	APIKeyHash  string `env:"API_KEY_HASH"`
}

// required flags may not be left empty.
var required = map[string]bool{"o": true, "stream": true}

// Load fills a Config from command line flags and then from the
// environment; environment values win.
func Load(name string, args []string) (*Config, error) {
	var cfg Config

	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.Uint64Var(&cfg.Seed, "seed", 123, "Seed of the random stream.")
	fs.IntVar(&cfg.Subjects, "n", 100, "Number of subjects.")
	fs.IntVar(&cfg.Periods, "p", 8, "Number of periods per subject.")
	fs.StringVar(&cfg.OutputPath, "o", "data_censored.csv", "Output CSV path, relative paths resolve against the working directory.")
	fs.StringVar(&cfg.Stream, "stream", string(synth.StreamLegacy), "Random stream layout: legacy or independent.")
	fs.StringVar(&cfg.RunAddress, "a", ":8080", "Address and port of service.")
	fs.StringVar(&cfg.DatabaseURI, "d", "", "DSN of PG database for the run registry, empty disables it.")
	fs.StringVar(&cfg.SecretToken, "t", "", "Secret token for jwt, empty disables auth.")
	fs.StringVar(&cfg.APIKeyHash, "k", "", "Argon2 encoded hash of the API key exchanged for tokens.")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("it's not possible to initialise environment variables, error: %w", err)
	}

	var errs []error
	fs.VisitAll(func(f *flag.Flag) {
		if required[f.Name] && f.Value.String() == "" {
			errs = append(errs, fmt.Errorf("flag \"-%s\" not set! It's necessary! Check --help flag", f.Name))
		}
	})
	if err := synth.CheckSize(cfg.Subjects, cfg.Periods); err != nil {
		errs = append(errs, err)
	}
	if cfg.Seed > math.MaxUint32 {
		errs = append(errs, fmt.Errorf("seed %d does not fit in 32 bits", cfg.Seed))
	}
	if _, err := synth.ParseStreamKind(cfg.Stream); err != nil {
		errs = append(errs, err)
	}

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) StreamKind() synth.StreamKind {
	return synth.StreamKind(c.Stream)
}

func (c *Config) Seed32() uint32 {
	return uint32(c.Seed)
}
