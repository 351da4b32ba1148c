package deck

import (
	"sync"

	"golang.org/x/net/html"
)

// Plugin post-processes content once it is in the document. PreprocessHTML
// receives the content root after assembly and any element later reported
// through Events.HTMLChanged.
type Plugin interface {
	PreprocessHTML(root *html.Node)
}

// PluginFunc adapts a function to Plugin.
type PluginFunc func(root *html.Node)

// PreprocessHTML calls f(root).
func (f PluginFunc) PreprocessHTML(root *html.Node) { f(root) }

// Events is the registry of plugins and listeners. Plugins and listeners run
// in registration order.
type Events struct {
	mu             sync.RWMutex
	plugins        []Plugin
	contentReady   []func(root *html.Node)
	sectionChanged []func(s *Section)
	ready          bool
}

// NewEvents returns an empty registry.
func NewEvents() *Events {
	return &Events{}
}

// Use registers plugins.
func (e *Events) Use(plugins ...Plugin) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, p := range plugins {
		if p != nil {
			e.plugins = append(e.plugins, p)
		}
	}
}

// OnContentReady registers a listener for the content ready event.
func (e *Events) OnContentReady(fn func(root *html.Node)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.contentReady = append(e.contentReady, fn)
}

// OnSectionChanged registers a listener called after every successful render.
func (e *Events) OnSectionChanged(fn func(s *Section)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.sectionChanged = append(e.sectionChanged, fn)
}

// ContentReady fires the content ready event. Only the first call has an
// effect: plugins preprocess root, then listeners are notified.
func (e *Events) ContentReady(root *html.Node) {
	e.mu.Lock()
	if e.ready || root == nil {
		e.mu.Unlock()
		return
	}
	e.ready = true
	plugins := append([]Plugin(nil), e.plugins...)
	listeners := append([]func(*html.Node)(nil), e.contentReady...)
	e.mu.Unlock()

	for _, p := range plugins {
		p.PreprocessHTML(root)
	}
	for _, fn := range listeners {
		fn(root)
	}
}

// HTMLChanged lets every plugin preprocess an element whose content changed
// after startup.
func (e *Events) HTMLChanged(el *html.Node) {
	if el == nil {
		return
	}
	e.mu.RLock()
	plugins := append([]Plugin(nil), e.plugins...)
	e.mu.RUnlock()

	for _, p := range plugins {
		p.PreprocessHTML(el)
	}
}

// SectionChanged notifies listeners of the newly visible section.
func (e *Events) SectionChanged(s *Section) {
	e.mu.RLock()
	listeners := append([]func(*Section)(nil), e.sectionChanged...)
	e.mu.RUnlock()

	for _, fn := range listeners {
		fn(s)
	}
}
