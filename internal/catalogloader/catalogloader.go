// Package catalogloader loads the demo catalog from a gzip-compressed
// XML file: a flat list of <entry><title>...</title></entry> elements,
// sanitized and assigned a stable insertion-order ID.
//
// The teacher carried two near-identical loaders (internal/services/
// loader and internal/services/fts/loader) for a gzip-compressed
// Wikipedia XML abstract dump, each document further fetched through a
// live MediaWiki API call to resolve its extract. This loader keeps the
// teacher's wire shape -- gzip-wrapped XML, one element per catalog
// entry, a per-entry ID assigned after decoding, clean.Title in place of
// the teacher's utils.Clean -- and drops the HTTP fetch entirely: the
// spec's catalog entries are already complete title strings, so there is
// nothing left to resolve from a remote API.
package catalogloader

import (
	"compress/gzip"
	"context"
	"encoding/xml"
	"fmt"
	"log/slog"
	"os"

	"prefixdex/internal/catalog"
	"prefixdex/internal/clean"
	"prefixdex/internal/lib/logger/sl"
)

// entryXML mirrors the teacher's document element shape, reduced to the
// one field this domain's catalog entries carry.
type entryXML struct {
	Title string `xml:"title"`
}

type catalogXML struct {
	Entries []entryXML `xml:"entry"`
}

// Loader reads a gzip+XML catalog from a path on disk.
type Loader struct {
	log  *slog.Logger
	path string
}

// New returns a Loader reading from path, logging failures through log.
func New(log *slog.Logger, path string) *Loader {
	return &Loader{log: log, path: path}
}

// Load decodes every <entry> element, sanitizes its title via
// clean.Title, drops entries left blank by sanitization, and assigns
// each surviving entry an ID equal to its 0-based position among the
// surviving entries. It checks ctx before the (potentially large) decode
// step and again before each entry while assigning IDs, matching the
// teacher's ctx-checkpointed decode loop.
func (l *Loader) Load(ctx context.Context) ([]catalog.Entry, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	f, err := os.Open(l.path)
	if err != nil {
		l.log.Error("failed to open catalog file", sl.Err(err))
		return nil, fmt.Errorf("catalogloader: open %s: %w", l.path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			l.log.Error("failed to close catalog file", sl.Err(cerr))
		}
	}()

	gz, err := gzip.NewReader(f)
	if err != nil {
		l.log.Error("failed to open gzip stream", sl.Err(err))
		return nil, fmt.Errorf("catalogloader: gzip %s: %w", l.path, err)
	}
	defer func() {
		if cerr := gz.Close(); cerr != nil {
			l.log.Error("failed to close gzip stream", sl.Err(cerr))
		}
	}()

	var dump catalogXML
	if err := xml.NewDecoder(gz).Decode(&dump); err != nil {
		l.log.Error("failed to decode catalog XML", sl.Err(err))
		return nil, fmt.Errorf("catalogloader: decode %s: %w", l.path, err)
	}

	entries := make([]catalog.Entry, 0, len(dump.Entries))
	for _, raw := range dump.Entries {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		title := clean.Title(raw.Title)
		if title == "" {
			continue
		}
		entries = append(entries, catalog.Entry{ID: len(entries), Title: title})
	}

	l.log.Info("catalog loaded", "path", l.path, "entries", len(entries))
	return entries, nil
}
