// Package cui is a terminal search demo for a prefixindex.Index[catalog.Entry]:
// a search box, a result count/time panel, and a highlighted results pane.
//
// Grounded on the teacher's internal/services/cui/cui.go gocui layout and
// keybinding shape (input/maxResults/output panes, Tab cycling, Ctrl-C to
// quit). The teacher's performSearch round-tripped each hit through
// leveldb to fetch its stored document and highlighted matches with a
// hand-rolled regexp; here the index already holds the model in memory,
// so results come straight from Index.SearchWithLimit, and highlighting
// goes through GetHighlighted/Segments instead of a regexp substitution.
package cui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/jroimartin/gocui"

	"prefixdex/internal/catalog"
	"prefixdex/internal/lib/logger/sl"
	"prefixdex/pkg/prefixindex"
)

const (
	ansiRed    = "\033[31m"
	ansiGreen  = "\033[32m"
	ansiYellow = "\033[33m"
	ansiReset  = "\033[0m"
)

// CUI drives the interactive search demo against a single index.
type CUI struct {
	ctx        context.Context
	gui        *gocui.Gui
	index      *prefixindex.Index[catalog.Entry]
	log        *slog.Logger
	maxResults int
}

// New creates the gocui root; it exits the process if the terminal
// cannot be initialized, matching the teacher's fail-fast startup.
func New(ctx context.Context, log *slog.Logger, index *prefixindex.Index[catalog.Entry], maxResults int) *CUI {
	g, err := gocui.NewGui(gocui.OutputNormal)
	if err != nil {
		log.Error("failed to create GUI", sl.Err(err))
		os.Exit(1)
	}
	return &CUI{ctx: ctx, gui: g, index: index, log: log, maxResults: maxResults}
}

// Close releases the underlying terminal.
func (c *CUI) Close() {
	c.gui.Close()
}

// Start runs the interactive event loop until the user quits.
func (c *CUI) Start() error {
	c.gui.Cursor = true
	c.gui.SetManagerFunc(c.layout)
	defer c.gui.Close()

	bindings := []struct {
		view string
		key  interface{}
		fn   func(*gocui.Gui, *gocui.View) error
	}{
		{"", gocui.KeyCtrlC, quit},
		{"input", gocui.KeyEnter, func(g *gocui.Gui, v *gocui.View) error {
			return c.search(g, strings.TrimSpace(v.Buffer()))
		}},
		{"output", gocui.KeyArrowDown, scrollDown},
		{"output", gocui.KeyArrowUp, scrollUp},
		{"maxResults", gocui.KeyEnter, c.setMaxResults},
		{"", gocui.KeyTab, cycleView},
	}
	for _, b := range bindings {
		if err := c.gui.SetKeybinding(b.view, b.key, gocui.ModNone, b.fn); err != nil {
			c.log.Error("failed to set keybinding", "view", b.view, sl.Err(err))
		}
	}

	if err := c.gui.MainLoop(); err != nil && err != gocui.ErrQuit {
		c.log.Error("GUI main loop exited with error", sl.Err(err))
	}
	return nil
}

func (c *CUI) setMaxResults(_ *gocui.Gui, v *gocui.View) error {
	if n, err := strconv.Atoi(strings.TrimSpace(v.Buffer())); err == nil && n > 0 {
		c.maxResults = n
	}
	return nil
}

func cycleView(g *gocui.Gui, _ *gocui.View) error {
	switch g.CurrentView().Name() {
	case "input":
		_, _ = g.SetCurrentView("maxResults")
	case "maxResults":
		_, _ = g.SetCurrentView("output")
	default:
		_, _ = g.SetCurrentView("input")
	}
	return nil
}

func scrollDown(_ *gocui.Gui, v *gocui.View) error {
	_, oy := v.Origin()
	_, sy := v.Size()
	if oy+sy < len(v.BufferLines()) {
		v.SetOrigin(0, oy+1)
	}
	return nil
}

func scrollUp(_ *gocui.Gui, v *gocui.View) error {
	_, oy := v.Origin()
	if oy > 0 {
		v.SetOrigin(0, oy-1)
	}
	return nil
}

func (c *CUI) layout(g *gocui.Gui) error {
	maxX, maxY := g.Size()
	if maxX < 10 || maxY < 6 {
		return fmt.Errorf("terminal window is too small")
	}

	if v, err := g.SetView("time", 0, 0, maxX/4, maxY-2); err != nil {
		if !errors.Is(err, gocui.ErrUnknownView) {
			return err
		}
		v.Title = "Timing"
		v.Wrap = true
	}

	if v, err := g.SetView("input", maxX/4+1, 2, maxX-2, 4); err != nil {
		if !errors.Is(err, gocui.ErrUnknownView) {
			return err
		}
		v.Editable = true
		v.Title = "Search"
		v.Wrap = true
		_, _ = g.SetCurrentView("input")
	}

	if v, err := g.SetView("maxResults", maxX/4+1, 5, maxX/2, 7); err != nil {
		if !errors.Is(err, gocui.ErrUnknownView) {
			return err
		}
		v.Editable = true
		v.Title = "Max Results"
		v.Wrap = true
		fmt.Fprintf(v, "%d", c.maxResults)
	}

	if v, err := g.SetView("output", maxX/4+1, 8, maxX-2, maxY-2); err != nil {
		if !errors.Is(err, gocui.ErrUnknownView) {
			return err
		}
		v.Title = "Results"
		v.Wrap = true
		v.Clear()
	}

	return nil
}

func (c *CUI) search(g *gocui.Gui, query string) error {
	start := time.Now()
	results := c.index.SearchWithLimit(query, c.maxResults)
	elapsed := time.Since(start)

	timeView, err := g.View("time")
	if err != nil {
		return err
	}
	timeView.Clear()
	fmt.Fprintf(timeView, "%sSearch Time:%s\n", ansiYellow, ansiReset)
	fmt.Fprintf(timeView, "%stotal: %s%s\n", ansiGreen, elapsed, ansiReset)

	outputView, err := g.View("output")
	if err != nil {
		return err
	}
	outputView.Clear()
	fmt.Fprintf(outputView, "%sMatches: %d%s\n\n", ansiYellow, len(results), ansiReset)

	for _, entry := range results {
		fmt.Fprintf(outputView, "%sID %d:%s %s\n", ansiGreen, entry.ID, ansiReset, highlightANSI(c.index, entry.Title, query))
	}

	_, _ = g.SetCurrentView("input")
	return nil
}

// highlightANSI renders value with each query-matched segment wrapped in
// an ANSI red escape, via the index's own highlighter rather than a
// fresh regexp match, so the terminal view agrees exactly with
// Index.GetHighlighted.
func highlightANSI(index *prefixindex.Index[catalog.Entry], value, query string) string {
	hs := index.GetHighlighted(value, query)
	var b strings.Builder
	for _, seg := range hs.Segments() {
		if seg.Highlighted {
			b.WriteString(ansiRed)
			b.WriteString(seg.Text)
			b.WriteString(ansiReset)
		} else {
			b.WriteString(seg.Text)
		}
	}
	return b.String()
}

func quit(*gocui.Gui, *gocui.View) error {
	return gocui.ErrQuit
}
