// Package app wires the demo command's dependencies together: load the
// catalog, build the index, and hand back an App ready to search or hand
// off to the interactive CUI.
//
// Grounded on the teacher's internal/app/app.go, which built an fts.FTS
// over a leveldb-backed StorageApp. There is no persistence layer in
// this domain (the index lives entirely in memory and rebuilds from the
// catalog file on every run), so StorageApp has no equivalent here; App
// instead holds the built index, and New runs the loader and attaches the
// build instrumentation the teacher tracked through internal/utils/metrics.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"prefixdex/config"
	"prefixdex/internal/catalog"
	"prefixdex/internal/catalogloader"
	"prefixdex/internal/metrics"
	"prefixdex/internal/wordsplit"
	"prefixdex/pkg/prefixindex"
)

// App holds the live index built from the loaded catalog, and the logger
// shared by the demo's subsystems.
type App struct {
	Index *prefixindex.Index[catalog.Entry]
	log   *slog.Logger
}

// New loads cfg.CatalogPath, builds the index from it, and logs build
// instrumentation. It returns an error instead of panicking, unlike the
// teacher's storage-backed New, since catalog loading is an ordinary
// runtime failure (missing file) rather than a startup invariant.
func New(ctx context.Context, log *slog.Logger, cfg *config.Config) (*App, error) {
	loader := catalogloader.New(log, cfg.CatalogPath)
	entries, err := loader.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("app: loading catalog: %w", err)
	}

	splitter := wordsplit.New(
		func(e catalog.Entry) (string, bool) { return e.Title, true },
		wordsplit.WithPattern(cfg.Splitter.SubwordPattern),
		wordsplit.WithNormalizeUnicode(cfg.Splitter.NormalizeUnicode),
	)
	index := prefixindex.NewIndex[catalog.Entry](
		splitter,
		prefixindex.WithLogger[catalog.Entry](log),
		prefixindex.WithBuildMetrics[catalog.Entry](&metrics.Build{}),
	)

	start := time.Now()
	if err := index.CreateIndex(ctx, entries); err != nil {
		return nil, fmt.Errorf("app: building index: %w", err)
	}
	log.Info("index built", "entries", len(entries), "elapsed", time.Since(start))

	return &App{Index: index, log: log}, nil
}
