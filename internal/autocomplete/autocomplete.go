// Package autocomplete models the keyboard-navigable suggestion list used by
// the phone input: arrow keys move a highlight, enter confirms either the
// highlighted suggestion or the typed value.
package autocomplete

import "sync"

// List is the suggestion list state for one input. The zero highlight state
// is -1 (nothing highlighted), matching a freshly typed query.
type List[T any] struct {
	mu    sync.Mutex
	items []T
	hover int
	open  bool
}

// New creates an empty, closed list.
func New[T any]() *List[T] {
	return &List[T]{hover: -1}
}

// SetItems replaces the suggestions (a new query was typed), opens the list
// and resets the highlight.
func (l *List[T]) SetItems(items []T) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.items = items
	l.hover = -1
	l.open = len(items) > 0
}

// MoveDown advances the highlight, clamped to the last suggestion. Opens the
// list when closed, as arrow keys do.
func (l *List[T]) MoveDown() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.open = true
	if l.hover < len(l.items)-1 {
		l.hover++
	}
}

// MoveUp retreats the highlight, clamped to the first suggestion.
func (l *List[T]) MoveUp() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.open = true
	if l.hover > 0 {
		l.hover--
	}
}

// Highlighted returns the currently highlighted suggestion, if any.
func (l *List[T]) Highlighted() (T, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.open && l.hover >= 0 && l.hover < len(l.items) {
		return l.items[l.hover], true
	}
	var zero T
	return zero, false
}

// Confirm resolves an enter press: the highlighted suggestion when one is
// active (ok=true), otherwise ok=false meaning "use the typed value".
// Either way the list closes.
func (l *List[T]) Confirm() (T, bool) {
	item, ok := l.Highlighted()
	l.Dismiss()
	return item, ok
}

// Dismiss closes the list (outside click or blur).
func (l *List[T]) Dismiss() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.open = false
	l.hover = -1
}

// IsOpen reports whether the list is showing.
func (l *List[T]) IsOpen() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.open
}
