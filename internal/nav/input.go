package nav

import "strings"

// Input is a navigation request produced by an input adapter.
type Input interface {
	input()
}

// HashChange reports that the URL fragment changed.
type HashChange struct {
	Hash string `json:"hash"`
}

// Key codes understood by the keyboard adapter.
const (
	KeyArrowLeft  = "ArrowLeft"
	KeyArrowRight = "ArrowRight"
	KeyEnter      = "Enter"
)

// KeyPress is a released key. Target is the node name of the element that
// had focus; empty means the page body.
type KeyPress struct {
	Code   string `json:"code"`
	Ctrl   bool   `json:"ctrl,omitempty"`
	Shift  bool   `json:"shift,omitempty"`
	Alt    bool   `json:"alt,omitempty"`
	Meta   bool   `json:"meta,omitempty"`
	Target string `json:"target,omitempty"`
}

// Direction of a swipe gesture.
type Direction string

const (
	SwipeLeft  Direction = "left"
	SwipeRight Direction = "right"
)

// PointerMouse marks gestures synthesized from mouse drags.
const PointerMouse = "mouse"

// Swipe is a recognized touch gesture.
type Swipe struct {
	Direction   Direction `json:"direction"`
	PointerType string    `json:"pointer_type,omitempty"`
}

func (HashChange) input() {}
func (KeyPress) input()   {}
func (Swipe) input()      {}

func (k KeyPress) modified() bool {
	return k.Ctrl || k.Shift || k.Alt || k.Meta
}

// navigableTarget reports whether key presses on the target may navigate.
// Keys typed into form fields must not.
func (k KeyPress) navigableTarget() bool {
	switch strings.ToUpper(k.Target) {
	case "", "BODY", "SECTION", "MAIN":
		return true
	}
	return false
}
