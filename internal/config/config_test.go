package config

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
)

func parse(args []string) (Config, error) {
	flags := pflag.NewFlagSet("phimport", pflag.ContinueOnError)
	flags.SetOutput(io.Discard)
	cfg := BindFlags(flags)
	if err := flags.Parse(args); err != nil {
		return Config{}, err
	}
	if err := cfg.Resolve(flags.Args()); err != nil {
		return Config{}, err
	}
	return *cfg, nil
}

func TestParseFlagsAndFiles(t *testing.T) {
	t.Setenv("PHIMPORT_SOURCE_DIR", "")
	t.Setenv("PHIMPORT_TARGET_DIR", "")

	cfg, err := parse([]string{"-s", "/src", "--target", "/dst", "-D", "Holiday", "-r", "a.jpg", "b.jpg"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.SourceDir != "/src" || cfg.TargetDir != "/dst" {
		t.Fatalf("unexpected dirs: %+v", cfg)
	}
	if cfg.Description != "Holiday" || !cfg.RenameToDate {
		t.Fatalf("unexpected options: %+v", cfg)
	}
	if len(cfg.Files) != 2 || cfg.Files[0] != "a.jpg" || cfg.Files[1] != "b.jpg" {
		t.Fatalf("unexpected files: %v", cfg.Files)
	}
}

func TestParseFallsBackToEnv(t *testing.T) {
	t.Setenv("PHIMPORT_SOURCE_DIR", "/env/src")
	t.Setenv("PHIMPORT_TARGET_DIR", "/env/dst")
	t.Setenv("PHIMPORT_RENAME", "yes")
	t.Setenv("PHIMPORT_DESCRIPTION", "trip")

	cfg, err := parse(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.SourceDir != "/env/src" || cfg.TargetDir != "/env/dst" || !cfg.RenameToDate || cfg.Description != "trip" {
		t.Fatalf("unexpected config: %+v", cfg)
	}
}

func TestParseRejectsInvalidInput(t *testing.T) {
	t.Setenv("PHIMPORT_SOURCE_DIR", "")
	t.Setenv("PHIMPORT_TARGET_DIR", "")
	t.Setenv("PHIMPORT_DESCRIPTION", "")

	if _, err := parse([]string{"-s", "/src"}); err == nil {
		t.Fatalf("expected error when target is missing")
	}
	if _, err := parse([]string{"-s", "/src", "-t", "/dst", "-D", "a/b"}); err == nil {
		t.Fatalf("expected error for description with separator")
	}
	if _, err := parse([]string{"--unknown"}); err == nil {
		t.Fatalf("expected error for unknown flag")
	}
}

func TestLoadDotEnv(t *testing.T) {
	if err := LoadDotEnv(filepath.Join(t.TempDir(), "missing.env")); err != nil {
		t.Fatalf("missing file should be ignored: %v", err)
	}

	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("PHIMPORT_TEST_VALUE=from-file\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("PHIMPORT_TEST_VALUE", "")
	os.Unsetenv("PHIMPORT_TEST_VALUE")

	if err := LoadDotEnv(path); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := os.Getenv("PHIMPORT_TEST_VALUE"); got != "from-file" {
		t.Fatalf("expected from-file, got %q", got)
	}
}
