package fs

import (
	"errors"
	iofs "io/fs"
	"testing"
	"time"

	"github.com/spf13/afero"
)

func newMemFS(t *testing.T) FS {
	t.Helper()
	return FS{Fs: afero.NewMemMapFs()}
}

func TestCopyFilePreservesContentAndMetadata(t *testing.T) {
	f := newMemFS(t)
	if err := afero.WriteFile(f.Fs, "/src/a.jpg", []byte("pixels"), 0o640); err != nil {
		t.Fatal(err)
	}
	modTime := time.Date(2023, 5, 7, 10, 2, 9, 0, time.UTC)
	if err := f.Fs.Chtimes("/src/a.jpg", modTime, modTime); err != nil {
		t.Fatal(err)
	}
	if err := f.MkdirAll("/dst/2023_5_7", 0o755); err != nil {
		t.Fatal(err)
	}

	if err := f.CopyFile("/src/a.jpg", "/dst/2023_5_7/a.JPEG"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := afero.ReadFile(f.Fs, "/dst/2023_5_7/a.JPEG")
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "pixels" {
		t.Fatalf("unexpected content %q", data)
	}
	info, err := f.Stat("/dst/2023_5_7/a.JPEG")
	if err != nil {
		t.Fatal(err)
	}
	if !info.ModTime().Equal(modTime) {
		t.Fatalf("expected mod time %v, got %v", modTime, info.ModTime())
	}
	if info.Mode().Perm() != 0o640 {
		t.Fatalf("expected mode 0640, got %v", info.Mode().Perm())
	}
}

func TestCopyFileRefusesToOverwrite(t *testing.T) {
	f := newMemFS(t)
	if err := afero.WriteFile(f.Fs, "/src/a.jpg", []byte("new"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := afero.WriteFile(f.Fs, "/dst/a.JPEG", []byte("old"), 0o644); err != nil {
		t.Fatal(err)
	}

	err := f.CopyFile("/src/a.jpg", "/dst/a.JPEG")
	if !errors.Is(err, iofs.ErrExist) {
		t.Fatalf("expected ErrExist, got %v", err)
	}
	data, _ := afero.ReadFile(f.Fs, "/dst/a.JPEG")
	if string(data) != "old" {
		t.Fatalf("existing file was modified: %q", data)
	}
}

func TestExistsAndListFiles(t *testing.T) {
	f := newMemFS(t)
	for _, name := range []string{"/src/b.jpg", "/src/a.jpg"} {
		if err := afero.WriteFile(f.Fs, name, []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	if err := f.MkdirAll("/src/nested", 0o755); err != nil {
		t.Fatal(err)
	}

	exists, err := f.Exists("/src/a.jpg")
	if err != nil || !exists {
		t.Fatalf("expected a.jpg to exist: %v", err)
	}
	exists, err = f.Exists("/src/missing.jpg")
	if err != nil || exists {
		t.Fatalf("expected missing.jpg to be absent: %v", err)
	}

	names, err := f.ListFiles("/src")
	if err != nil {
		t.Fatal(err)
	}
	if len(names) != 2 || names[0] != "a.jpg" || names[1] != "b.jpg" {
		t.Fatalf("unexpected listing %v", names)
	}
}

func TestChecksumMatchesForEqualContent(t *testing.T) {
	f := newMemFS(t)
	_ = afero.WriteFile(f.Fs, "/a", []byte("same"), 0o644)
	_ = afero.WriteFile(f.Fs, "/b", []byte("same"), 0o644)
	_ = afero.WriteFile(f.Fs, "/c", []byte("different"), 0o644)

	a, _ := f.Checksum("/a")
	b, _ := f.Checksum("/b")
	c, _ := f.Checksum("/c")
	if a != b {
		t.Fatalf("expected equal checksums")
	}
	if a == c {
		t.Fatalf("expected different checksums")
	}
}

func TestDryRunLeavesDiskUntouched(t *testing.T) {
	dir := t.TempDir()
	osfs := NewOS()
	if err := afero.WriteFile(osfs.Fs, dir+"/a.jpg", []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	dry := NewDryRun()
	if err := dry.MkdirAll(dir+"/out", 0o755); err != nil {
		t.Fatal(err)
	}
	if err := dry.CopyFile(dir+"/a.jpg", dir+"/out/a.JPEG"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok, _ := dry.Exists(dir + "/out/a.JPEG"); !ok {
		t.Fatalf("expected copy to be visible in the overlay")
	}
	if ok, _ := osfs.Exists(dir + "/out"); ok {
		t.Fatalf("dry run wrote to disk")
	}
}
