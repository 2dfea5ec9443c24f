package domain

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// FolderName renders year_month_day without zero padding, with an optional
// "-description" suffix.
func FolderName(takenAt time.Time, description string) string {
	name := fmt.Sprintf("%d_%d_%d", takenAt.Year(), int(takenAt.Month()), takenAt.Day())
	if description != "" {
		name += "-" + description
	}
	return name
}

// DateName renders a capture time as {y}{m}{d}_{h}{min}{s}, no padding.
func DateName(takenAt time.Time) string {
	return fmt.Sprintf("%d%d%d_%d%d%d",
		takenAt.Year(), int(takenAt.Month()), takenAt.Day(),
		takenAt.Hour(), takenAt.Minute(), takenAt.Second())
}

// SourceStem cuts the base name at its first dot, so "a.b.jpg" yields "a".
func SourceStem(name string) string {
	base := filepath.Base(name)
	if i := strings.Index(base, "."); i >= 0 {
		return base[:i]
	}
	return base
}

func FileName(stem, format string) string {
	return stem + "." + format
}
