package tutorial

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/dgallion1/minitut/internal/assemble"
	"github.com/dgallion1/minitut/internal/config"
	"github.com/dgallion1/minitut/internal/deck"
	"github.com/dgallion1/minitut/internal/nav"
)

// OptionsFromConfig maps the presenter configuration onto tutorial options.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		Download: cfg.Download,
		TOC: deck.TOCOptions{
			Style: deck.TOCStyle(cfg.TOCStyle),
			List:  deck.TOCList(cfg.TOCList),
		},
		SectionTitle: cfg.SectionTitle,
		Nav: nav.Options{
			NoKeyboardNav: cfg.NoKeyboardNav,
			NoTouchNav:    cfg.NoTouchNav,
		},
	}
}

// Open loads cfg.Document, assembles its supplementary content relative to
// the document and starts it at the fragment held by loc.
func Open(ctx context.Context, cfg *config.Config, loc nav.Location, log *zap.Logger, plugins ...deck.Plugin) (*Tutorial, error) {
	if log == nil {
		log = zap.NewNop()
	}
	f, err := os.Open(cfg.Document)
	if err != nil {
		return nil, fmt.Errorf("open document: %w", err)
	}
	doc, err := deck.Load(f)
	f.Close()
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", cfg.Document, err)
	}

	fetcher := assemble.NewFetcher(assemble.Options{
		Base:          cfg.Document,
		Timeout:       cfg.FetchTimeout.Std(),
		Retries:       cfg.FetchRetries,
		MaxConcurrent: cfg.MaxConcurrent,
	}, log.Named("assemble"))

	opts := OptionsFromConfig(cfg)
	opts.Plugins = plugins
	return Start(ctx, doc, loc, fetcher, opts, log)
}
