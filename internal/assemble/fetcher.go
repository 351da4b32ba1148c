// Package assemble fetches supplementary content and turns it into HTML
// fragments that a deck appends before indexing. Fetches run concurrently
// but fragments come back in the requested order.
package assemble

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// MaxBodySize bounds a single fetched document.
const MaxBodySize = 50 << 20

// Fragment is one fetched and converted document.
type Fragment struct {
	Source string // resolved URL
	HTML   string
}

// Options configures a Fetcher. Zero values fall back to defaults.
type Options struct {
	// Base is the location of the deck; relative entries resolve against
	// it. A bare path is treated as a file.
	Base          string
	Timeout       time.Duration
	Retries       int
	MaxConcurrent int
	HTTPClient    *http.Client
}

// Fetcher is the content assembler.
type Fetcher struct {
	base    *url.URL
	opts    Options
	client  *http.Client
	log     *zap.Logger
	backoff func(attempt int) time.Duration
}

// NewFetcher creates a fetcher. An unparsable base is ignored and entries
// resolve against the working directory.
func NewFetcher(opts Options, log *zap.Logger) *Fetcher {
	if log == nil {
		log = zap.NewNop()
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}
	if opts.Retries < 0 {
		opts.Retries = 0
	}
	if opts.MaxConcurrent <= 0 {
		opts.MaxConcurrent = 4
	}
	client := opts.HTTPClient
	if client == nil {
		client = &http.Client{}
	}

	f := &Fetcher{opts: opts, client: client, log: log, backoff: Backoff}
	if opts.Base != "" {
		base, err := toURL(opts.Base)
		if err != nil {
			log.Warn("ignoring document base", zap.String("base", opts.Base), zap.Error(err))
		} else {
			f.base = base
		}
	}
	return f
}

// FetchAll fetches every entry with bounded concurrency. Fragments are
// returned in entry order, skipping failed ones; failures are combined into
// the returned error so the caller can proceed with what arrived.
func (f *Fetcher) FetchAll(ctx context.Context, entries []string) ([]Fragment, error) {
	type fetchResult struct {
		frag Fragment
		err  error
		idx  int
	}
	results := make(chan fetchResult, len(entries))
	sem := make(chan struct{}, f.opts.MaxConcurrent)

	for i, entry := range entries {
		select {
		case sem <- struct{}{}:
		case <-ctx.Done():
			results <- fetchResult{err: fmt.Errorf("fetch %s: %w", entry, ctx.Err()), idx: i}
			continue
		}
		go func(i int, entry string) {
			defer func() { <-sem }()
			frag, err := f.Fetch(ctx, entry)
			results <- fetchResult{frag: frag, err: err, idx: i}
		}(i, entry)
	}

	ordered := make([]fetchResult, len(entries))
	for range entries {
		r := <-results
		ordered[r.idx] = r
	}

	var frags []Fragment
	var errs error
	for _, r := range ordered {
		if r.err != nil {
			errs = multierr.Append(errs, r.err)
			continue
		}
		frags = append(frags, r.frag)
	}
	f.log.Info("content assembled",
		zap.Int("requested", len(entries)),
		zap.Int("fetched", len(frags)),
		zap.Int("failed", len(multierr.Errors(errs))),
	)
	return frags, errs
}

// Fetch retrieves one entry and converts it to section markup.
func (f *Fetcher) Fetch(ctx context.Context, entry string) (Fragment, error) {
	u, err := f.resolve(entry)
	if err != nil {
		return Fragment{}, fmt.Errorf("resolve %s: %w", entry, err)
	}
	log := f.log.With(zap.String("source", u.String()))

	var body []byte
	var contentType string
	switch u.Scheme {
	case "file":
		body, err = readFile(u)
	case "http", "https":
		body, contentType, err = f.getWithRetry(ctx, u, log)
	default:
		err = fmt.Errorf("unsupported scheme %q", u.Scheme)
	}
	if err != nil {
		return Fragment{}, fmt.Errorf("fetch %s: %w", u, err)
	}

	out, err := ToHTML(path.Base(u.Path), contentType, body)
	if err != nil {
		return Fragment{}, fmt.Errorf("convert %s: %w", u, err)
	}
	log.Debug("fetched", zap.Int("bytes", len(body)), zap.String("content_type", contentType))
	return Fragment{Source: u.String(), HTML: out}, nil
}

func (f *Fetcher) getWithRetry(ctx context.Context, u *url.URL, log *zap.Logger) ([]byte, string, error) {
	var lastErr error
	for attempt := 0; attempt <= f.opts.Retries; attempt++ {
		body, ct, err := f.get(ctx, u)
		if err == nil {
			return body, ct, nil
		}
		lastErr = err
		if !IsRetryable(err) || attempt == f.opts.Retries {
			break
		}
		wait := f.backoff(attempt)
		log.Warn("retryable fetch error", zap.Int("attempt", attempt), zap.Duration("wait", wait), zap.Error(err))
		select {
		case <-time.After(wait):
		case <-ctx.Done():
			return nil, "", ctx.Err()
		}
	}
	return nil, "", lastErr
}

func (f *Fetcher) get(ctx context.Context, u *url.URL) ([]byte, string, error) {
	ctx, cancel := context.WithTimeout(ctx, f.opts.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, "", fmt.Errorf("create request: %w", err)
	}
	resp, err := f.client.Do(req)
	if err != nil {
		if errors.Is(ctx.Err(), context.Canceled) {
			return nil, "", err
		}
		return nil, "", &RetryableError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<10))
		return nil, "", &RetryableError{StatusCode: resp.StatusCode, Message: string(msg)}
	}
	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<10))
		return nil, "", fmt.Errorf("status %d: %s", resp.StatusCode, truncate(string(msg), 200))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxBodySize))
	if err != nil {
		return nil, "", &RetryableError{Err: fmt.Errorf("read body: %w", err)}
	}
	return body, resp.Header.Get("Content-Type"), nil
}

func (f *Fetcher) resolve(entry string) (*url.URL, error) {
	entry = strings.TrimSpace(entry)
	if entry == "" {
		return nil, fmt.Errorf("empty entry")
	}
	ref, err := url.Parse(entry)
	if err != nil || (ref.Scheme != "" && len(ref.Scheme) == 1) {
		// Windows drive letters parse as a scheme.
		return toURL(entry)
	}
	if ref.IsAbs() {
		return ref, nil
	}
	if f.base == nil {
		return toURL(entry)
	}
	return f.base.ResolveReference(ref), nil
}

// toURL turns a URL or a file path into an absolute URL.
func toURL(s string) (*url.URL, error) {
	if u, err := url.Parse(s); err == nil && u.IsAbs() && len(u.Scheme) > 1 {
		return u, nil
	}
	abs, err := filepath.Abs(s)
	if err != nil {
		return nil, err
	}
	return &url.URL{Scheme: "file", Path: filepath.ToSlash(abs)}, nil
}

func readFile(u *url.URL) ([]byte, error) {
	f, err := os.Open(filepath.FromSlash(u.Path))
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(io.LimitReader(f, MaxBodySize))
}
