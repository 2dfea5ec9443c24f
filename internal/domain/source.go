package domain

import (
	"path/filepath"
	"time"
)

// SourceFile is one entry of the batch, named relative to the source directory.
type SourceFile struct {
	Path string
	Name string
}

func NewSourceFile(sourceDir, name string) SourceFile {
	return SourceFile{
		Path: filepath.Join(sourceDir, name),
		Name: name,
	}
}

// Stem returns the text before the first dot of the base name.
func (s SourceFile) Stem() string {
	return SourceStem(s.Name)
}

type Metadata struct {
	TakenAt time.Time
	Format  string
}

type LookupStatus int

const (
	LookupOK LookupStatus = iota
	LookupNotFound
	LookupUnsupportedFormat
	LookupNoTimestamp
	// LookupFailed covers I/O errors and cancellation.
	LookupFailed
)

func (s LookupStatus) String() string {
	switch s {
	case LookupOK:
		return "ok"
	case LookupNotFound:
		return "not found"
	case LookupUnsupportedFormat:
		return "unsupported format"
	case LookupNoTimestamp:
		return "no timestamp"
	case LookupFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Lookup is the classified result of reading a source file's metadata.
// Metadata is only meaningful when Status is LookupOK.
type Lookup struct {
	Status   LookupStatus
	Metadata Metadata
	Err      error
}
