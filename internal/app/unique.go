package app

import (
	"fmt"
	"path/filepath"

	"phimport/internal/domain"
)

type existsChecker interface {
	Exists(path string) (bool, error)
}

// UniqueStem returns stem if {folder}/{stem}.{ext} is free, otherwise the
// first free stem_N for N = 1, 2, ...
func UniqueStem(fs existsChecker, stem, ext, folder string) (string, error) {
	candidate := stem
	for n := 1; ; n++ {
		exists, err := fs.Exists(filepath.Join(folder, domain.FileName(candidate, ext)))
		if err != nil {
			return "", err
		}
		if !exists {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s_%d", stem, n)
	}
}
