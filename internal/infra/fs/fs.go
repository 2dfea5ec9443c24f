package fs

import (
	"errors"
	"io"
	iofs "io/fs"
	"os"
	"sort"

	"github.com/cespare/xxhash"
	"github.com/spf13/afero"
)

// FS adapts an afero.Fs to the operations the importer needs.
type FS struct {
	Fs afero.Fs
}

func NewOS() FS {
	return FS{Fs: afero.NewOsFs()}
}

// NewDryRun layers an in-memory overlay over a read-only view of the real
// file system. Writes land in memory only.
func NewDryRun() FS {
	base := afero.NewReadOnlyFs(afero.NewOsFs())
	return FS{Fs: afero.NewCopyOnWriteFs(base, afero.NewMemMapFs())}
}

func (f FS) Stat(path string) (iofs.FileInfo, error) {
	return f.Fs.Stat(path)
}

func (f FS) Exists(path string) (bool, error) {
	_, err := f.Fs.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, iofs.ErrNotExist) {
		return false, nil
	}
	return false, err
}

func (f FS) MkdirAll(path string, perm iofs.FileMode) error {
	return f.Fs.MkdirAll(path, perm)
}

// ListFiles returns the names of regular files directly inside dir.
func (f FS) ListFiles(dir string) ([]string, error) {
	entries, err := afero.ReadDir(f.Fs, dir)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if !entry.Mode().IsRegular() {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)
	return names, nil
}

// CopyFile copies src to dst, keeping the source permissions and
// modification time. dst is created exclusively: if it already exists the
// returned error satisfies errors.Is(err, fs.ErrExist) and nothing is written.
func (f FS) CopyFile(src, dst string) (err error) {
	srcFile, err := f.Fs.Open(src)
	if err != nil {
		return err
	}
	defer srcFile.Close()

	info, err := srcFile.Stat()
	if err != nil {
		return err
	}

	dstFile, err := f.Fs.OpenFile(dst, os.O_CREATE|os.O_EXCL|os.O_WRONLY, info.Mode().Perm())
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = f.Fs.Remove(dst)
		}
	}()

	if _, err = io.Copy(dstFile, srcFile); err != nil {
		dstFile.Close()
		return err
	}
	if err = dstFile.Close(); err != nil {
		return err
	}

	if err = f.Fs.Chmod(dst, info.Mode().Perm()); err != nil {
		return err
	}
	return f.Fs.Chtimes(dst, info.ModTime(), info.ModTime())
}

// Checksum returns the xxhash64 of the file's content.
func (f FS) Checksum(path string) (uint64, error) {
	file, err := f.Fs.Open(path)
	if err != nil {
		return 0, err
	}
	defer file.Close()

	h := xxhash.New()
	if _, err := io.Copy(h, file); err != nil {
		return 0, err
	}
	return h.Sum64(), nil
}
