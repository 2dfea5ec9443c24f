package exif

import (
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	iofs "io/fs"
	"strings"
	"time"

	goexif "github.com/rwcarlsen/goexif/exif"
	"github.com/spf13/afero"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"phimport/internal/domain"
	appErrors "phimport/internal/errors"
)

const dateTimeLayout = "2006:01:02 15:04:05"

var errNoDateTimeOriginal = errors.New("exif DateTimeOriginal (36867) not present")

// Reader reads capture time and format from image files on Fs. A nil Fs
// reads from the operating system.
type Reader struct {
	Fs afero.Fs
}

func (r Reader) fs() afero.Fs {
	if r.Fs == nil {
		return afero.NewOsFs()
	}
	return r.Fs
}

// Lookup reads both the capture time and the format tag and classifies any
// failure.
func (r Reader) Lookup(ctx context.Context, path string) domain.Lookup {
	meta, err := r.read(ctx, path)
	if err != nil {
		return domain.Lookup{Status: classify(err), Err: err}
	}
	return domain.Lookup{Status: domain.LookupOK, Metadata: meta}
}

func (r Reader) CaptureTime(ctx context.Context, path string) (time.Time, error) {
	meta, err := r.read(ctx, path)
	if err != nil {
		return time.Time{}, err
	}
	return meta.TakenAt, nil
}

func (r Reader) FormatTag(ctx context.Context, path string) (string, error) {
	file, err := r.open(ctx, path)
	if err != nil {
		return "", err
	}
	defer file.Close()
	return formatTag(file, path)
}

func (r Reader) read(ctx context.Context, path string) (domain.Metadata, error) {
	file, err := r.open(ctx, path)
	if err != nil {
		return domain.Metadata{}, err
	}
	defer file.Close()

	format, err := formatTag(file, path)
	if err != nil {
		return domain.Metadata{}, err
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return domain.Metadata{}, appErrors.Wrap(appErrors.ExifFailure, "seek", path, err)
	}

	takenAt, err := dateTimeOriginal(file, path)
	if err != nil {
		return domain.Metadata{}, err
	}
	return domain.Metadata{TakenAt: takenAt, Format: format}, nil
}

func (r Reader) open(ctx context.Context, path string) (afero.File, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	info, err := r.fs().Stat(path)
	if err != nil {
		if errors.Is(err, iofs.ErrNotExist) {
			return nil, appErrors.Wrap(appErrors.NotFound, "stat", path, err)
		}
		return nil, appErrors.Wrap(appErrors.IOFailure, "stat", path, err)
	}
	if info.IsDir() {
		return nil, appErrors.Wrap(appErrors.NotFound, "stat", path, fmt.Errorf("is a directory"))
	}

	file, err := r.fs().Open(path)
	if err != nil {
		if errors.Is(err, iofs.ErrNotExist) {
			return nil, appErrors.Wrap(appErrors.NotFound, "open", path, err)
		}
		return nil, appErrors.Wrap(appErrors.IOFailure, "open", path, err)
	}
	return file, nil
}

func formatTag(r io.Reader, path string) (string, error) {
	_, format, err := image.DecodeConfig(r)
	if err != nil {
		return "", appErrors.Wrap(appErrors.UnsupportedFormat, "decode", path, err)
	}
	return strings.ToUpper(format), nil
}

func dateTimeOriginal(r io.Reader, path string) (time.Time, error) {
	x, err := goexif.Decode(r)
	if err != nil && (x == nil || goexif.IsCriticalError(err)) {
		return time.Time{}, appErrors.Wrap(appErrors.NoTimestamp, "exif", path, err)
	}

	tag, err := x.Get(goexif.DateTimeOriginal)
	if err != nil {
		return time.Time{}, appErrors.Wrap(appErrors.NoTimestamp, "exif", path, errNoDateTimeOriginal)
	}
	str, err := tag.StringVal()
	if err != nil {
		return time.Time{}, appErrors.Wrap(appErrors.NoTimestamp, "exif", path, err)
	}
	parsed, err := time.Parse(dateTimeLayout, strings.TrimRight(str, "\x00 "))
	if err != nil {
		return time.Time{}, appErrors.Wrap(appErrors.NoTimestamp, "exif", path, err)
	}
	return parsed, nil
}

func classify(err error) domain.LookupStatus {
	switch appErrors.KindOf(err) {
	case appErrors.NotFound:
		return domain.LookupNotFound
	case appErrors.UnsupportedFormat:
		return domain.LookupUnsupportedFormat
	case appErrors.NoTimestamp:
		return domain.LookupNoTimestamp
	default:
		return domain.LookupFailed
	}
}
