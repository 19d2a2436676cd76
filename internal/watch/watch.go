// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package watch converts PDFs dropped into an input directory. Files already
// present when the watcher starts are converted first; after that each new
// file is converted once its creation event arrives and a settle delay has
// passed.
package watch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"

	"github.com/pdiddy/pdfconv/internal/journal"
	"github.com/pdiddy/pdfconv/pkg/types"
)

// Converter runs one conversion request.
type Converter interface {
	Convert(ctx context.Context, req types.ConversionRequest) types.ConversionResult
}

// Recorder stores conversion outcomes. A nil Recorder disables recording.
type Recorder interface {
	Record(ctx context.Context, runID string, res types.ConversionResult, req types.ConversionRequest) error
}

// Summary counts the conversions a watcher session performed.
type Summary struct {
	Converted int
	Failed    int
}

// Watcher converts PDFs arriving in an input directory.
type Watcher struct {
	cfg     types.WatchConfig
	conv    Converter
	journal Recorder
	log     logrus.FieldLogger
	runID   string

	// scanned holds files converted by the initial pass whose Create event
	// may still be queued.
	scanned map[string]bool
	summary Summary
}

// New creates a watcher. Each watcher gets a fresh run ID grouping its
// journal entries. Kind and OCR are accepted in any spelling the types
// parsers accept; an unknown value is passed through and every conversion
// fails with it.
func New(cfg types.WatchConfig, conv Converter, j Recorder, log logrus.FieldLogger) *Watcher {
	if cfg.SettleDelay < 0 {
		cfg.SettleDelay = 0
	}
	if cfg.Kind == "" {
		cfg.Kind = types.OutputText
	}
	if kind, err := types.ParseOutputKind(string(cfg.Kind)); err == nil {
		cfg.Kind = kind
	}
	if mode, err := types.ParseOCRMode(string(cfg.OCR)); err == nil {
		cfg.OCR = mode
	}
	runID := journal.NewRunID()
	return &Watcher{
		cfg:     cfg,
		conv:    conv,
		journal: j,
		log:     log.WithField("run_id", runID),
		runID:   runID,
		scanned: make(map[string]bool),
	}
}

// RunID returns the session identifier used for journal entries.
func (w *Watcher) RunID() string { return w.runID }

// Run watches until ctx is cancelled. It returns an error only if the
// directories cannot be prepared or the watch cannot be established.
// Conversion failures are logged and watching continues.
func (w *Watcher) Run(ctx context.Context) (Summary, error) {
	for _, dir := range []string{w.cfg.InputDir, w.cfg.OutputDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return w.summary, fmt.Errorf("creating directory %s: %w", dir, err)
		}
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return w.summary, fmt.Errorf("creating file watcher: %w", err)
	}
	defer func() {
		if err := fsw.Close(); err != nil {
			w.log.WithError(err).Warn("closing file watcher")
		}
	}()

	// Subscribe before scanning so files created during the scan are not
	// missed. Such files are also listed by the scan; onEvent drops their
	// Create event.
	if err := fsw.Add(w.cfg.InputDir); err != nil {
		return w.summary, fmt.Errorf("watching %s: %w", w.cfg.InputDir, err)
	}

	w.log.WithFields(logrus.Fields{
		"input":  w.cfg.InputDir,
		"output": w.cfg.OutputDir,
		"kind":   w.cfg.Kind,
	}).Info("watching for PDF files")

	if !w.cfg.SkipExisting {
		if err := w.processExisting(ctx); err != nil {
			return w.summary, err
		}
	}

	for {
		select {
		case <-ctx.Done():
			w.log.WithFields(logrus.Fields{
				"converted": w.summary.Converted,
				"failed":    w.summary.Failed,
			}).Info("watcher stopped")
			return w.summary, nil

		case event, ok := <-fsw.Events:
			if !ok {
				return w.summary, nil
			}
			w.onEvent(ctx, event)

		case err, ok := <-fsw.Errors:
			if !ok {
				return w.summary, nil
			}
			w.log.WithError(err).Error("file watcher error")
		}
	}
}

// onEvent converts the file named by a Create event. The first Create for a
// file already converted by the initial scan is dropped; removing or renaming
// the file forgets it, so a later copy under the same name is converted.
func (w *Watcher) onEvent(ctx context.Context, event fsnotify.Event) {
	if !isPDF(event.Name) {
		return
	}
	if event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
		delete(w.scanned, event.Name)
		return
	}
	if !event.Has(fsnotify.Create) {
		return
	}
	if w.scanned[event.Name] {
		delete(w.scanned, event.Name)
		w.log.WithField("source", event.Name).Debug("already converted by initial scan")
		return
	}
	if err := sleep(ctx, w.cfg.SettleDelay); err != nil {
		return
	}
	w.handle(ctx, event.Name)
}

func (w *Watcher) processExisting(ctx context.Context) error {
	entries, err := os.ReadDir(w.cfg.InputDir)
	if err != nil {
		return fmt.Errorf("reading %s: %w", w.cfg.InputDir, err)
	}

	var paths []string
	for _, e := range entries {
		if e.Type().IsRegular() && isPDF(e.Name()) {
			paths = append(paths, filepath.Join(w.cfg.InputDir, e.Name()))
		}
	}
	sort.Strings(paths)

	if len(paths) > 0 {
		w.log.WithField("files", len(paths)).Info("converting existing files")
	}
	for _, p := range paths {
		if ctx.Err() != nil {
			return nil
		}
		w.scanned[p] = true
		w.handle(ctx, p)
	}
	return nil
}

func (w *Watcher) handle(ctx context.Context, path string) {
	req := types.NewConversionRequest(path,
		types.DestinationIn(w.cfg.OutputDir, path, w.cfg.Kind), w.cfg.Kind, w.cfg.OCR)

	log := w.log.WithField("source", path)
	log.Info("new file detected")

	res := w.conv.Convert(ctx, req)
	if res.OK {
		w.summary.Converted++
		log.WithField("output", res.OutputPath).Info("file converted")
	} else {
		w.summary.Failed++
		log.WithField("error_kind", res.Kind).Warnf("conversion failed: %s", res.Message)
	}

	if w.journal != nil {
		if err := w.journal.Record(ctx, w.runID, res, req); err != nil {
			log.WithError(err).Warn("recording conversion")
		}
	}
}

func isPDF(name string) bool {
	return strings.EqualFold(filepath.Ext(name), ".pdf")
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
