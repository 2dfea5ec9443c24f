package exif

import (
	"context"
	"testing"
	"time"

	"github.com/spf13/afero"

	"phimport/internal/domain"
	appErrors "phimport/internal/errors"
	"phimport/internal/testutil"
)

func newReader(t *testing.T, files map[string][]byte) Reader {
	t.Helper()
	fs := afero.NewMemMapFs()
	for name, data := range files {
		if err := afero.WriteFile(fs, name, data, 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return Reader{Fs: fs}
}

func TestLookupReadsDateTimeOriginalAndFormat(t *testing.T) {
	r := newReader(t, map[string][]byte{
		"/src/a.jpg": testutil.JPEG("2023:05:07 10:02:09"),
	})

	res := r.Lookup(context.Background(), "/src/a.jpg")
	if res.Status != domain.LookupOK {
		t.Fatalf("expected ok, got %s: %v", res.Status, res.Err)
	}
	want := time.Date(2023, 5, 7, 10, 2, 9, 0, time.UTC)
	if !res.Metadata.TakenAt.Equal(want) {
		t.Fatalf("expected %v, got %v", want, res.Metadata.TakenAt)
	}
	if res.Metadata.Format != "JPEG" {
		t.Fatalf("expected JPEG, got %q", res.Metadata.Format)
	}
}

func TestLookupClassifiesFailures(t *testing.T) {
	r := newReader(t, map[string][]byte{
		"/src/nodate.jpg":   testutil.JPEG(""),
		"/src/modified.jpg": testutil.JPEGWithDateTime("2023:05:07 10:02:09"),
		"/src/plain.png":    testutil.PNG(),
		"/src/notes.txt":    []byte("not an image"),
	})

	tests := []struct {
		path string
		want domain.LookupStatus
		kind appErrors.Kind
	}{
		{"/src/nodate.jpg", domain.LookupNoTimestamp, appErrors.NoTimestamp},
		{"/src/modified.jpg", domain.LookupNoTimestamp, appErrors.NoTimestamp},
		{"/src/plain.png", domain.LookupNoTimestamp, appErrors.NoTimestamp},
		{"/src/notes.txt", domain.LookupUnsupportedFormat, appErrors.UnsupportedFormat},
		{"/src/missing.jpg", domain.LookupNotFound, appErrors.NotFound},
		{"/src", domain.LookupNotFound, appErrors.NotFound},
	}
	for _, tt := range tests {
		res := r.Lookup(context.Background(), tt.path)
		if res.Status != tt.want {
			t.Errorf("%s: expected %s, got %s (%v)", tt.path, tt.want, res.Status, res.Err)
		}
		if appErrors.KindOf(res.Err) != tt.kind {
			t.Errorf("%s: expected kind %s, got %s", tt.path, tt.kind, appErrors.KindOf(res.Err))
		}
	}
}

func TestFormatTagWithoutTimestamp(t *testing.T) {
	r := newReader(t, map[string][]byte{"/src/plain.png": testutil.PNG()})

	format, err := r.FormatTag(context.Background(), "/src/plain.png")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if format != "PNG" {
		t.Fatalf("expected PNG, got %q", format)
	}

	if _, err := r.CaptureTime(context.Background(), "/src/plain.png"); !appErrors.Is(err, appErrors.NoTimestamp) {
		t.Fatalf("expected no_timestamp, got %v", err)
	}
}

func TestLookupHonoursCancelledContext(t *testing.T) {
	r := newReader(t, map[string][]byte{"/src/a.jpg": testutil.JPEG("2023:05:07 10:02:09")})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res := r.Lookup(ctx, "/src/a.jpg")
	if res.Status != domain.LookupFailed {
		t.Fatalf("expected failed, got %s", res.Status)
	}
}
