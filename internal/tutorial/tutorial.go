// Package tutorial wires a deck together in two phases: supplementary
// content is assembled first, then the document is prepared and the first
// section rendered without yielding.
package tutorial

import (
	"context"
	"fmt"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/dgallion1/minitut/internal/assemble"
	"github.com/dgallion1/minitut/internal/deck"
	"github.com/dgallion1/minitut/internal/nav"
)

// Assembler fetches supplementary content. Failed entries are reported in
// the error while the successful fragments are still returned.
type Assembler interface {
	FetchAll(ctx context.Context, entries []string) ([]assemble.Fragment, error)
}

// Options configures a tutorial.
type Options struct {
	Download     []string
	TOC          deck.TOCOptions
	SectionTitle string
	Nav          nav.Options
	Plugins      []deck.Plugin
	// Events receives plugins and listeners registered before Start.
	Events *deck.Events
}

// Tutorial is a started deck.
type Tutorial struct {
	Doc      *deck.Document
	Events   *deck.Events
	TOC      *deck.TOC
	Renderer *deck.Renderer
	Nav      *nav.Navigator
}

// Start assembles and prepares doc, then renders the section named by the
// fragment in loc. Fetch failures are logged and skipped; no input should be
// fed to the navigator before Start returns.
func Start(ctx context.Context, doc *deck.Document, loc nav.Location, asm Assembler, opts Options, log *zap.Logger) (*Tutorial, error) {
	if log == nil {
		log = zap.NewNop()
	}
	events := opts.Events
	if events == nil {
		events = deck.NewEvents()
	}
	events.Use(opts.Plugins...)

	if asm != nil && len(opts.Download) > 0 {
		frags, err := asm.FetchAll(ctx, opts.Download)
		for _, e := range multierr.Errors(err) {
			log.Warn("supplementary content skipped", zap.Error(e))
		}
		for _, f := range frags {
			if err := doc.Append(f.HTML); err != nil {
				return nil, fmt.Errorf("append %s: %w", f.Source, err)
			}
		}
	}

	events.ContentReady(doc.Content())
	doc.GobbleWhitespace()
	if err := doc.Index(); err != nil {
		return nil, fmt.Errorf("index sections: %w", err)
	}
	doc.HideAll()
	doc.InsertHeadings(opts.SectionTitle != "")
	toc := deck.BuildTOC(doc, opts.TOC)

	r := deck.NewRenderer(doc, events, opts.SectionTitle, log)
	n := nav.New(doc.Total(), r, loc, opts.Nav, log)
	current := n.Start()

	log.Info("tutorial started",
		zap.Int("sections", doc.Total()),
		zap.Int("current", current),
		zap.Int("toc_entries", toc.Len()),
	)
	return &Tutorial{Doc: doc, Events: events, TOC: toc, Renderer: r, Nav: n}, nil
}

// Current returns the visible section, or nil when there is none.
func (t *Tutorial) Current() *deck.Section {
	return t.Doc.Section(t.Nav.State().Current)
}
