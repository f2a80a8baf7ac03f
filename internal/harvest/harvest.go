// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package harvest runs the link-to-text pipeline: read links, fetch each
// document, extract its text, and add it to the combined output.
//
// A run is one sequential pass over the link table. Row N+1 starts only
// after row N has been fetched, extracted, and written. Failures on a row
// are logged and counted, never fatal; only setup errors and output write
// errors abort the run.
package harvest

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/pdiddy/pdf-harvest/internal/acquire"
	"github.com/pdiddy/pdf-harvest/internal/aggregate"
	"github.com/pdiddy/pdf-harvest/internal/convert"
	"github.com/pdiddy/pdf-harvest/internal/ledger"
	"github.com/pdiddy/pdf-harvest/internal/links"
	"github.com/pdiddy/pdf-harvest/pkg/types"
)

// Deps are the collaborators of a run.
type Deps struct {
	Client *http.Client
	Open   convert.Opener
	Log    zerolog.Logger

	// Ledger is optional; nil disables recording.
	Ledger *ledger.Store
}

// Summary counts the outcome of a run.
type Summary struct {
	Links         int
	Invalid       int
	Fetched       int
	Extracted     int
	FetchFailed   int
	ExtractFailed int
	Blocks        int
	Duplicates    int
	Output        string
}

// Failures returns the number of rows that did not yield complete text.
func (s Summary) Failures() int {
	return s.Invalid + s.FetchFailed + s.ExtractFailed
}

// Run executes the pipeline described by cfg.
func Run(ctx context.Context, cfg types.HarvestConfig, deps Deps) (Summary, error) {
	sum := Summary{Output: cfg.Conversion.Output}

	records, err := links.Read(cfg.Links.Input, cfg.Links.Column)
	if err != nil {
		return sum, err
	}
	sum.Links = len(records)

	if err := acquire.Prepare(cfg.Acquisition); err != nil {
		return sum, err
	}

	w, err := aggregate.Create(cfg.Conversion.Output, cfg.Conversion.Mode)
	if err != nil {
		return sum, err
	}

	r := &run{cfg: cfg, deps: deps, w: w}
	r.beginLedger(ctx)

	loopErr := r.process(ctx, records, &sum)
	closeErr := w.Close()
	r.finishLedger()

	stats := w.Stats()
	sum.Blocks = stats.Blocks
	sum.Duplicates = stats.Duplicates

	if loopErr != nil {
		return sum, loopErr
	}
	if closeErr != nil {
		return sum, closeErr
	}

	logCompletion(deps.Log, w.Mode(), w.Path())
	deps.Log.Debug().
		Int("links", sum.Links).
		Int("fetched", sum.Fetched).
		Int("extracted", sum.Extracted).
		Int("invalid", sum.Invalid).
		Int("fetch_failed", sum.FetchFailed).
		Int("extract_failed", sum.ExtractFailed).
		Int("blocks", sum.Blocks).
		Int("duplicates", sum.Duplicates).
		Msg("summary")
	return sum, nil
}

// Combine extracts local documents and aggregates their text, skipping
// the read and fetch stages.
func Combine(ctx context.Context, paths []string, cfg types.ConversionConfig, deps Deps) (Summary, error) {
	sum := Summary{Output: cfg.Output, Links: len(paths)}

	w, err := aggregate.Create(cfg.Output, cfg.Mode)
	if err != nil {
		return sum, err
	}

	var loopErr error
	for _, path := range paths {
		if loopErr = ctx.Err(); loopErr != nil {
			break
		}
		deps.Log.Info().Msgf("Processing file: %s", path)
		res := convert.Extract(deps.Open, path)
		if res.Err != nil {
			deps.Log.Error().Msgf("Failed to extract text from %s: %v", path, res.Err)
			sum.ExtractFailed++
		}
		if _, loopErr = w.Add(res.Text); loopErr != nil {
			break
		}
		if res.Err == nil {
			sum.Extracted++
		}
	}

	closeErr := w.Close()
	stats := w.Stats()
	sum.Blocks = stats.Blocks
	sum.Duplicates = stats.Duplicates
	if loopErr != nil {
		return sum, loopErr
	}
	if closeErr != nil {
		return sum, closeErr
	}
	logCompletion(deps.Log, w.Mode(), w.Path())
	return sum, nil
}

func logCompletion(log zerolog.Logger, mode types.Mode, path string) {
	if mode == types.ModeDedup {
		log.Info().Msgf("All unique text has been combined into %s", path)
		return
	}
	log.Info().Msgf("All text has been combined into %s", path)
}

// run holds the state of one Run call.
type run struct {
	cfg   types.HarvestConfig
	deps  Deps
	w     *aggregate.Writer
	runID int64
}

func (r *run) process(ctx context.Context, records []types.LinkRecord, sum *Summary) error {
	log := r.deps.Log
	pacer := acquire.NewPacer(r.cfg.Acquisition.DownloadDelay)
	for i, link := range records {
		if err := pacer.Wait(ctx); err != nil {
			log.Warn().Int("remaining", len(records)-i).Msg("run interrupted")
			return err
		}

		log.Info().Int("index", link.Index).Msgf("Processing URL: %s", link.URL)

		doc, err := acquire.Fetch(ctx, r.deps.Client, link, r.cfg.Acquisition)
		if err != nil {
			acquire.LogFailure(log, link, err)
			status := types.StatusFetchFailed
			if errors.Is(err, acquire.ErrInvalidURL) {
				status = types.StatusInvalid
				sum.Invalid++
			} else {
				sum.FetchFailed++
			}
			r.record(ctx, ledger.Entry{Index: link.Index, URL: link.URL, Status: status, Error: err.Error()})
			continue
		}
		sum.Fetched++

		res := convert.Extract(r.deps.Open, doc.Path)
		entry := ledger.Entry{
			Index:  link.Index,
			URL:    link.URL,
			Path:   doc.Path,
			Status: types.StatusDone,
			Bytes:  doc.Bytes,
			Chars:  len(res.Text),
		}
		if res.Err != nil {
			log.Error().Msgf("Failed to extract text from %s: %v", doc.Path, res.Err)
			sum.ExtractFailed++
			entry.Status = types.StatusExtractFailed
			entry.Error = res.Err.Error()
		}

		n, err := r.w.Add(res.Text)
		if err != nil {
			return err
		}
		if res.Err == nil {
			sum.Extracted++
		}
		log.Debug().Str("path", doc.Path).Int("pages", res.Pages).Int("blocks", n).Msg("added")
		r.record(ctx, entry)
	}
	return nil
}

func (r *run) beginLedger(ctx context.Context) {
	if r.deps.Ledger == nil {
		return
	}
	id, err := r.deps.Ledger.BeginRun(ctx, r.cfg)
	if err != nil {
		r.deps.Log.Warn().Err(err).Msg("ledger unavailable; continuing without it")
		r.deps.Ledger = nil
		return
	}
	r.runID = id
}

func (r *run) finishLedger() {
	if r.deps.Ledger == nil {
		return
	}
	// The run context may already be cancelled; the stamp is still wanted.
	if err := r.deps.Ledger.FinishRun(context.Background(), r.runID); err != nil {
		r.deps.Log.Warn().Err(err).Msg("ledger write failed")
	}
}

func (r *run) record(ctx context.Context, e ledger.Entry) {
	if r.deps.Ledger == nil {
		return
	}
	e.RunID = r.runID
	if err := r.deps.Ledger.Record(ctx, e); err != nil {
		r.deps.Log.Warn().Err(err).Msg("ledger write failed")
	}
}

// Describe renders a one-line summary for the console.
func (s Summary) Describe() string {
	return fmt.Sprintf("%d links: %d fetched, %d extracted, %d invalid, %d fetch failed, %d extract failed; %d blocks written, %d duplicates dropped",
		s.Links, s.Fetched, s.Extracted, s.Invalid, s.FetchFailed, s.ExtractFailed, s.Blocks, s.Duplicates)
}
