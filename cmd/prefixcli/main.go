// Command prefixcli loads a catalog, builds a prefix index over it, and
// either answers a single query or launches an interactive search pane.
//
// Grounded on the teacher's cmd/fts/main.go: the same env-keyed
// setupLogger, flag-based CLI, and graceful SIGINT/SIGTERM shutdown via
// os/signal. The teacher loaded one Wikipedia dump and ran one search
// before waiting on a stop signal purely to keep the process alive for
// manual testing; here the stop signal only cancels the context, and the
// optional interactive gocui pane keeps running until the user quits it
// with Ctrl-C.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"prefixdex/config"
	"prefixdex/internal/app"
	"prefixdex/internal/cui"
	"prefixdex/internal/lib/logger/sl"
	"prefixdex/internal/ratelog"
)

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

func main() {
	// These flags must be defined before config.MustLoad, which calls
	// flag.Parse and would otherwise reject them as unknown.
	var query string
	var interactive, showStats bool
	flag.StringVar(&query, "q", "", "search query (ignored in -cui mode)")
	flag.BoolVar(&interactive, "cui", false, "launch the interactive search pane")
	flag.BoolVar(&showStats, "stats", false, "print trie structural diagnostics and exit")

	cfg := config.MustLoad()
	log := setupLogger(cfg.Env)
	log.Info("prefixcli", "env", cfg.Env, "catalog_path", cfg.CatalogPath)
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	application, err := app.New(ctx, log, cfg)
	if err != nil {
		log.Error("failed to build index", sl.Err(err))
		os.Exit(1)
	}

	if showStats {
		printStats(application, log)
		return
	}

	if interactive {
		runInteractive(ctx, log, application, cfg.DefaultMaxSize)
		return
	}

	runOneShot(log, application, query, cfg.DefaultMaxSize)
}

func runOneShot(log *slog.Logger, application *app.App, query string, maxSize int) {
	tracker := ratelog.NewTracker(5 * time.Second)

	start := time.Now()
	results := application.Index.SearchWithLimit(query, maxSize)
	tracker.Add(1)
	tracker.Check(log)

	fmt.Printf("query %q matched %d entries in %v\n", query, len(results), time.Since(start))
	for _, entry := range results {
		hs := application.Index.GetHighlighted(entry.Title, query)
		fmt.Printf("  [%d] ", entry.ID)
		for _, seg := range hs.Segments() {
			if seg.Highlighted {
				fmt.Printf("*%s*", seg.Text)
			} else {
				fmt.Print(seg.Text)
			}
		}
		fmt.Println()
	}
}

// runInteractive blocks in the gocui main loop until the user quits with
// Ctrl-C. A SIGTERM delivered while the pane is running only cancels ctx
// (see signal.NotifyContext in main); it does not tear down the pane,
// since gocui's own Ctrl-C keybinding is the documented way out.
func runInteractive(ctx context.Context, log *slog.Logger, application *app.App, maxSize int) {
	pane := cui.New(ctx, log, application.Index, maxSize)
	defer pane.Close()

	if err := pane.Start(); err != nil {
		log.Error("interactive pane exited with error", sl.Err(err))
	}
	log.Info("gracefully stopped")
}

func printStats(application *app.App, log *slog.Logger) {
	snap := application.Index.Snapshot()
	if snap == nil {
		log.Error("index has no snapshot to report on")
		return
	}
	stats := snap.Trie.Stats()
	fmt.Printf("nodes=%d leaves=%d max_depth=%d avg_depth=%.2f avg_children_per_level=%v\n",
		stats.Nodes, stats.Leaves, stats.MaxDepth, stats.AvgDepth, stats.AvgChildrenPerLevel)
}

func setupLogger(env string) *slog.Logger {
	switch env {
	case envLocal:
		return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	case envDev:
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	case envProd:
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	default:
		return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	}
}
