package nav

import (
	"strconv"
	"strings"
	"sync"
)

// Location is the URL fragment, the only durable navigation state.
type Location interface {
	Hash() string
	SetHash(hash string)
}

// MemoryLocation keeps the fragment in memory. Listeners are notified only
// when the value actually changes, the same way a browser raises hashchange.
type MemoryLocation struct {
	mu        sync.Mutex
	hash      string
	writes    int
	listeners []func(hash string)
}

// NewMemoryLocation starts at the given fragment ("#3", "3" or "").
func NewMemoryLocation(hash string) *MemoryLocation {
	return &MemoryLocation{hash: normalizeHash(hash)}
}

// Hash returns the current fragment including the leading "#", or "".
func (l *MemoryLocation) Hash() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.hash
}

// SetHash stores the fragment. Writing the current value is a no-op.
func (l *MemoryLocation) SetHash(hash string) {
	hash = normalizeHash(hash)

	l.mu.Lock()
	if hash == l.hash {
		l.mu.Unlock()
		return
	}
	l.hash = hash
	l.writes++
	listeners := append([]func(string)(nil), l.listeners...)
	l.mu.Unlock()

	for _, fn := range listeners {
		fn(hash)
	}
}

// Writes returns how many times the stored value changed.
func (l *MemoryLocation) Writes() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.writes
}

// OnChange registers a listener for fragment changes.
func (l *MemoryLocation) OnChange(fn func(hash string)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.listeners = append(l.listeners, fn)
}

func normalizeHash(hash string) string {
	if hash == "" || hash == "#" {
		return ""
	}
	if !strings.HasPrefix(hash, "#") {
		return "#" + hash
	}
	return hash
}

// FormatHash renders a display index as a fragment.
func FormatHash(index int) string {
	return "#" + strconv.Itoa(index)
}

// ParseHash reads the display index from a fragment. Like a browser's
// parseInt it accepts leading whitespace, a sign and the leading decimal
// digits ("#3abc" is 3). Anything without digits yields 1.
func ParseHash(hash string) int {
	s := strings.TrimLeft(strings.TrimPrefix(hash, "#"), " \t\n\r")

	neg := false
	if s != "" && (s[0] == '+' || s[0] == '-') {
		neg = s[0] == '-'
		s = s[1:]
	}

	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return 1
	}

	n, err := strconv.Atoi(s[:end])
	if err != nil {
		// Too many digits for an int; clamping makes the exact value irrelevant.
		n = int(^uint(0) >> 1)
	}
	if neg {
		n = -n
	}
	return n
}
