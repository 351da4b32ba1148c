package nav

import (
	"context"
	"errors"

	"go.uber.org/zap"
)

// ErrStopped is returned once the controller loop has exited.
var ErrStopped = errors.New("navigation controller stopped")

// Controller serializes every input and every read of the document on a
// single goroutine, so no two transitions ever overlap.
type Controller struct {
	nav   *Navigator
	inbox chan func()
	done  chan struct{}
	log   *zap.Logger
}

// NewController wraps a navigator. Call Run to start processing.
func NewController(n *Navigator, log *zap.Logger) *Controller {
	if log == nil {
		log = zap.NewNop()
	}
	return &Controller{
		nav:   n,
		inbox: make(chan func()),
		done:  make(chan struct{}),
		log:   log,
	}
}

// Run processes queued work until ctx is cancelled.
func (c *Controller) Run(ctx context.Context) error {
	defer close(c.done)
	c.log.Debug("navigation controller started")
	for {
		select {
		case <-ctx.Done():
			c.log.Debug("navigation controller stopped")
			return nil
		case fn := <-c.inbox:
			fn()
		}
	}
}

// Do runs fn on the controller goroutine and waits for it to finish.
func (c *Controller) Do(ctx context.Context, fn func(n *Navigator)) error {
	finished := make(chan struct{})
	work := func() {
		defer close(finished)
		fn(c.nav)
	}

	select {
	case c.inbox <- work:
	case <-c.done:
		return ErrStopped
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case <-finished:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Dispatch hands one input to the navigator and returns the resulting state
// and whether it navigated.
func (c *Controller) Dispatch(ctx context.Context, in Input) (State, bool, error) {
	var st State
	var moved bool
	err := c.Do(ctx, func(n *Navigator) {
		moved = n.Handle(in)
		st = n.State()
	})
	if err != nil {
		return State{}, false, err
	}
	if moved {
		c.log.Debug("navigated", zap.Int("current", st.Current), zap.Int("total", st.Total))
	}
	return st, moved, nil
}

// State reads the state on the controller goroutine.
func (c *Controller) State(ctx context.Context) (State, error) {
	var st State
	err := c.Do(ctx, func(n *Navigator) { st = n.State() })
	return st, err
}
