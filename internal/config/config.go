package config

import (
	"errors"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
)

type Config struct {
	SourceDir    string
	TargetDir    string
	Files        []string
	Description  string
	RenameToDate bool
	DryRun       bool
	Verbose      bool
	Verify       bool
	Interactive  bool
}

// BindFlags registers the import flags on flags. The returned Config is
// filled when flags are parsed; call Resolve afterwards.
func BindFlags(flags *pflag.FlagSet) *Config {
	cfg := &Config{}
	flags.StringVarP(&cfg.SourceDir, "source", "s", "", "Source directory to import from")
	flags.StringVarP(&cfg.TargetDir, "target", "t", "", "Destination root directory")
	flags.StringVarP(&cfg.Description, "description", "D", "", "Suffix appended to each date folder as -<description>")
	flags.BoolVarP(&cfg.RenameToDate, "rename", "r", false, "Rename files to their capture date")
	flags.BoolVarP(&cfg.DryRun, "dry-run", "d", false, "Dry run (nothing is written)")
	flags.BoolVarP(&cfg.Verbose, "verbose", "v", false, "Verbose output")
	flags.BoolVar(&cfg.Verify, "verify", false, "Compare checksums of every copy with its source")
	flags.BoolVarP(&cfg.Interactive, "interactive", "i", false, "Show an interactive progress view")
	return cfg
}

// Resolve applies environment fallbacks, takes positional file names and
// validates the result.
func (c *Config) Resolve(files []string) error {
	c.Files = append([]string(nil), files...)

	if c.SourceDir == "" {
		c.SourceDir = envOrEmpty("PHIMPORT_SOURCE_DIR")
	}
	if c.TargetDir == "" {
		c.TargetDir = envOrEmpty("PHIMPORT_TARGET_DIR")
	}
	if c.Description == "" {
		c.Description = envOrEmpty("PHIMPORT_DESCRIPTION")
	}
	if !c.RenameToDate {
		c.RenameToDate = envTruthy("PHIMPORT_RENAME")
	}
	if !c.Verbose {
		c.Verbose = envTruthy("PHIMPORT_VERBOSE")
	}

	if c.SourceDir == "" || c.TargetDir == "" {
		return errors.New("source and target are required")
	}
	if strings.ContainsAny(c.Description, `/\`) || c.Description == "." || c.Description == ".." {
		return errors.New("description must not contain path separators")
	}
	return nil
}

// LoadDotEnv loads variables from path without overriding ones already set.
// A missing file is not an error.
func LoadDotEnv(path string) error {
	err := godotenv.Load(path)
	if err != nil && errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

func envOrEmpty(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}

func envTruthy(key string) bool {
	val := strings.TrimSpace(strings.ToLower(os.Getenv(key)))
	return val == "1" || val == "true" || val == "yes" || val == "y"
}
