package app

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"phimport/internal/domain"
	appErrors "phimport/internal/errors"
	"phimport/internal/logging"
)

// maxPlaceAttempts bounds how often a copy is retried after the chosen
// target appeared between the uniqueness probe and the exclusive create.
const maxPlaceAttempts = 16

// OutcomeFunc is called after each processed file.
type OutcomeFunc func(outcome domain.Outcome, current, total int)

type Request struct {
	SourceDir    string
	TargetDir    string
	Files        []string
	Description  string
	RenameToDate bool
}

// Importer copies source files into date-named folders below the target
// directory. Files are processed one at a time in request order.
type Importer struct {
	FS        FileSystem
	Meta      MetadataReader
	Logger    logging.Logger
	Verify    bool
	DryRun    bool
	OnOutcome OutcomeFunc
}

// ImportImages runs a batch and reports whether it ran to completion.
func (i *Importer) ImportImages(ctx context.Context, sourceDir, destDir string, files []string, description string, renameToDate bool) bool {
	report, err := i.Import(ctx, Request{
		SourceDir:    sourceDir,
		TargetDir:    destDir,
		Files:        files,
		Description:  description,
		RenameToDate: renameToDate,
	})
	return err == nil && report.Completed
}

// Start runs Import in its own goroutine and passes the result to done.
// The returned stop cancels the batch and blocks until the file in flight
// has been handled, so no partial copy is left behind on exit.
func (i *Importer) Start(ctx context.Context, req Request, done func(domain.BatchReport, error)) (stop func()) {
	ctx, cancel := context.WithCancel(ctx)
	finished := make(chan struct{})
	go func() {
		defer close(finished)
		report, err := i.Import(ctx, req)
		if done != nil {
			done(report, err)
		}
	}()
	return func() {
		cancel()
		<-finished
	}
}

// Import processes req.Files in order. Files that carry no capture date or
// are not decodable images are skipped. A missing source file or any file
// system failure stops the batch; the returned report then has Completed
// false and the error describes the failing file.
func (i *Importer) Import(ctx context.Context, req Request) (domain.BatchReport, error) {
	report := domain.BatchReport{
		ID:      uuid.New().String(),
		Total:   len(req.Files),
		DryRun:  i.DryRun,
		Started: time.Now(),
	}
	if i.FS == nil || i.Meta == nil {
		return report, errors.New("importer requires FS and Meta")
	}

	log := i.Logger.With("batch", report.ID)
	stop := log.Measure("Importing batch")
	defer stop()
	log.Verbosef("Importing %d files from %s into %s", len(req.Files), req.SourceDir, req.TargetDir)

	for idx, name := range req.Files {
		if err := ctx.Err(); err != nil {
			report.Finished = time.Now()
			return report, err
		}

		outcome := i.importFile(ctx, log, req, domain.NewSourceFile(req.SourceDir, name))
		report.Outcomes = append(report.Outcomes, outcome)
		if i.OnOutcome != nil {
			i.OnOutcome(outcome, idx+1, len(req.Files))
		}

		if outcome.Status.Fatal() {
			log.Errorf("%s", appErrors.UserMessage(outcome.Err))
			report.Finished = time.Now()
			return report, outcome.Err
		}
	}

	report.Completed = true
	report.Finished = time.Now()
	log.Verbosef("Copied %d, skipped %d of %d files", report.CopiedCount(), report.SkippedCount(), report.Total)
	return report, nil
}

func (i *Importer) importFile(ctx context.Context, log logging.Logger, req Request, src domain.SourceFile) domain.Outcome {
	outcome := domain.Outcome{Source: src}

	lookup := i.Meta.Lookup(ctx, src.Path)
	switch lookup.Status {
	case domain.LookupOK:
	case domain.LookupNoTimestamp:
		outcome.Status = domain.SkippedNoTimestamp
		outcome.Err = ensureKind(appErrors.NoTimestamp, src.Path, lookup.Err)
		log.Warnf("%s", appErrors.UserMessage(outcome.Err))
		return outcome
	case domain.LookupUnsupportedFormat:
		outcome.Status = domain.SkippedUnsupported
		outcome.Err = ensureKind(appErrors.UnsupportedFormat, src.Path, lookup.Err)
		log.Warnf("%s", appErrors.UserMessage(outcome.Err))
		return outcome
	case domain.LookupNotFound:
		outcome.Status = domain.AbortedNotFound
		outcome.Err = ensureKind(appErrors.NotFound, src.Path, lookup.Err)
		return outcome
	default:
		outcome.Status = domain.AbortedIO
		outcome.Err = ensureKind(appErrors.IOFailure, src.Path, lookup.Err)
		return outcome
	}

	meta := lookup.Metadata
	outcome.TakenAt = meta.TakenAt
	outcome.Folder = filepath.Join(req.TargetDir, domain.FolderName(meta.TakenAt, req.Description))

	if err := i.FS.MkdirAll(outcome.Folder, 0o755); err != nil {
		outcome.Status = domain.AbortedIO
		outcome.Err = appErrors.Wrap(appErrors.IOFailure, "mkdir", outcome.Folder, err)
		return outcome
	}

	stem := src.Stem()
	if req.RenameToDate {
		stem = domain.DateName(meta.TakenAt)
	}

	target, err := i.place(src.Path, outcome.Folder, stem, meta.Format)
	if err != nil {
		outcome.Status = domain.AbortedIO
		outcome.Err = appErrors.Wrap(appErrors.IOFailure, "copy", src.Path, err)
		return outcome
	}
	outcome.TargetPath = target

	if i.Verify {
		if err := i.verify(src.Path, target); err != nil {
			outcome.Status = domain.AbortedIO
			outcome.Err = appErrors.Wrap(appErrors.IOFailure, "verify", target, err)
			return outcome
		}
	}

	outcome.Status = domain.Copied
	log.Verbosef("Copied %s -> %s", src.Path, target)
	return outcome
}

// place resolves a free name for stem in folder and copies src there. The
// copy never replaces an existing file: if the name was taken after the
// probe, the probe runs again.
func (i *Importer) place(src, folder, stem, ext string) (string, error) {
	for attempt := 0; attempt < maxPlaceAttempts; attempt++ {
		unique, err := UniqueStem(i.FS, stem, ext, folder)
		if err != nil {
			return "", err
		}
		target := filepath.Join(folder, domain.FileName(unique, ext))
		err = i.FS.CopyFile(src, target)
		if errors.Is(err, fs.ErrExist) {
			i.Logger.Verbosef("%s appeared before copy, probing again", target)
			continue
		}
		if err != nil {
			return "", err
		}
		return target, nil
	}
	return "", fmt.Errorf("no free name for %s in %s after %d attempts", stem, folder, maxPlaceAttempts)
}

func (i *Importer) verify(src, dst string) error {
	want, err := i.FS.Checksum(src)
	if err != nil {
		return err
	}
	got, err := i.FS.Checksum(dst)
	if err != nil {
		return err
	}
	if want != got {
		return fmt.Errorf("checksum mismatch: %x != %x", got, want)
	}
	return nil
}

// ensureKind keeps an AppError produced by the metadata reader and wraps
// anything else with kind.
func ensureKind(kind appErrors.Kind, path string, err error) error {
	if err == nil {
		err = errors.New(string(kind))
	}
	if appErrors.KindOf(err) == kind {
		return err
	}
	return appErrors.Wrap(kind, "lookup", path, err)
}
