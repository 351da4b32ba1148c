// Package nav implements the navigation state machine of a deck: it owns the
// current display index, clamps requests into range, renders, and keeps the
// URL fragment in sync. Input adapters reduce to RequestIndex calls.
package nav

import (
	"go.uber.org/zap"
)

// Renderer applies a display index to the document. It reports false when
// nothing could be shown.
type Renderer interface {
	Render(index int) bool
}

// State is the navigation state: one state per index in [1, Total].
type State struct {
	Current int `json:"current"`
	Total   int `json:"total"`
}

// Options disables input adapters.
type Options struct {
	NoKeyboardNav bool
	NoTouchNav    bool
}

// Navigator is the single point that transitions visible state.
type Navigator struct {
	state    State
	renderer Renderer
	loc      Location
	opts     Options
	log      *zap.Logger
}

// New creates a navigator over total navigable sections. The state starts
// at index 1 and nothing is rendered until Start or RequestIndex.
func New(total int, r Renderer, loc Location, opts Options, log *zap.Logger) *Navigator {
	if log == nil {
		log = zap.NewNop()
	}
	if total < 0 {
		total = 0
	}
	return &Navigator{
		state:    State{Current: 1, Total: total},
		renderer: r,
		loc:      loc,
		opts:     opts,
		log:      log,
	}
}

// State returns a copy of the current state.
func (n *Navigator) State() State { return n.state }

// Location returns the fragment the navigator persists to.
func (n *Navigator) Location() Location { return n.loc }

// Start renders the index found in the URL fragment, defaulting to 1.
func (n *Navigator) Start() int {
	return n.RequestIndex(ParseHash(n.loc.Hash()))
}

// RequestIndex clamps i into [1, Total], makes it current, renders it and
// writes it to the URL fragment unless the fragment already holds it. With
// no sections the target is 1 and the render shows nothing.
func (n *Navigator) RequestIndex(i int) int {
	i = clamp(i, n.state.Total)
	n.state.Current = i

	if !n.renderer.Render(i) {
		n.log.Debug("render skipped", zap.Int("index", i), zap.Int("total", n.state.Total))
	}

	if h := FormatHash(i); n.loc.Hash() != h {
		n.loc.SetHash(h)
	}
	return i
}

// Next moves forward when a next section exists.
func (n *Navigator) Next() bool {
	if n.state.Current >= n.state.Total {
		return false
	}
	n.RequestIndex(n.state.Current + 1)
	return true
}

// Prev moves back when a previous section exists.
func (n *Navigator) Prev() bool {
	if n.state.Current <= 1 {
		return false
	}
	n.RequestIndex(n.state.Current - 1)
	return true
}

// Handle maps one input to at most one navigation and reports whether it
// navigated.
func (n *Navigator) Handle(in Input) bool {
	switch in := in.(type) {
	case HashChange:
		n.RequestIndex(ParseHash(in.Hash))
		return true
	case KeyPress:
		if n.opts.NoKeyboardNav || in.modified() || !in.navigableTarget() {
			return false
		}
		switch in.Code {
		case KeyArrowLeft:
			return n.Prev()
		case KeyArrowRight, KeyEnter:
			return n.Next()
		}
	case Swipe:
		if n.opts.NoTouchNav || in.PointerType == PointerMouse {
			return false
		}
		switch in.Direction {
		case SwipeLeft:
			return n.Next()
		case SwipeRight:
			return n.Prev()
		}
	}
	return false
}

func clamp(i, total int) int {
	if i > total {
		i = total
	}
	if i < 1 {
		i = 1
	}
	return i
}
