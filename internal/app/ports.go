package app

import (
	"context"
	"io/fs"

	"phimport/internal/domain"
)

type FileSystem interface {
	Stat(path string) (fs.FileInfo, error)
	Exists(path string) (bool, error)
	MkdirAll(path string, perm fs.FileMode) error
	// CopyFile must fail with an error matching fs.ErrExist when dst exists.
	CopyFile(src, dst string) error
	Checksum(path string) (uint64, error)
	ListFiles(dir string) ([]string, error)
}

type MetadataReader interface {
	Lookup(ctx context.Context, path string) domain.Lookup
}
