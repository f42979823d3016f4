package config

import (
	"github.com/CvitoyBamp/panelsynth/internal/synth"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("synth", nil)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Seed != 123 || cfg.Subjects != 100 || cfg.Periods != 8 {
		t.Errorf("sizes = (%d, %d, %d), want (123, 100, 8)", cfg.Seed, cfg.Subjects, cfg.Periods)
	}
	if cfg.OutputPath != "data_censored.csv" {
		t.Errorf("OutputPath = %q", cfg.OutputPath)
	}
	if cfg.StreamKind() != synth.StreamLegacy {
		t.Errorf("StreamKind() = %q", cfg.StreamKind())
	}
	if cfg.DatabaseURI != "" || cfg.SecretToken != "" {
		t.Errorf("optional services enabled by default: %+v", cfg)
	}
}

func TestLoad_EnvOverridesFlags(t *testing.T) {
	t.Setenv("SEED", "7")
	t.Setenv("OUTPUT_PATH", "/tmp/out/data.csv")
	t.Setenv("STREAM", "independent")

	cfg, err := Load("synth", []string{"-seed", "99", "-n", "10", "-o", "flag.csv"})
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Seed32() != 7 {
		t.Errorf("Seed = %d, want 7 from environment", cfg.Seed)
	}
	if cfg.Subjects != 10 {
		t.Errorf("Subjects = %d, want 10 from flag", cfg.Subjects)
	}
	if cfg.OutputPath != "/tmp/out/data.csv" {
		t.Errorf("OutputPath = %q", cfg.OutputPath)
	}
	if cfg.StreamKind() != synth.StreamIndependent {
		t.Errorf("StreamKind() = %q", cfg.StreamKind())
	}
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		env  map[string]string
	}{
		{name: "empty output", args: []string{"-o", ""}},
		{name: "zero subjects", args: []string{"-n", "0"}},
		{name: "negative periods", env: map[string]string{"N_PERIODS": "-3"}},
		{name: "row count overflows", args: []string{"-n", "4000000000", "-p", "4000000000"}},
		{name: "too many rows", args: []string{"-n", "50000001", "-p", "1"}},
		{name: "seed too wide", args: []string{"-seed", "4294967296"}},
		{name: "unknown stream", args: []string{"-stream", "numpy"}},
		{name: "bad env value", env: map[string]string{"N_SUBJECTS": "many"}},
		{name: "unknown flag", args: []string{"-verbose"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			if _, err := Load("synth", tt.args); err == nil {
				t.Fatalf("Load(%v) returned no error", tt.args)
			}
		})
	}
}
