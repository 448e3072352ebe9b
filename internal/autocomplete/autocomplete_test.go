package autocomplete_test

import (
	"testing"

	"github.com/minhphat/retail-crm-go/internal/autocomplete"
)

func TestSetItems_OpensAndResetsHighlight(t *testing.T) {
	l := autocomplete.New[string]()
	if l.IsOpen() {
		t.Fatal("expected a fresh list closed")
	}

	l.SetItems([]string{"0901", "0902"})
	if !l.IsOpen() {
		t.Error("expected list open with suggestions")
	}
	if _, ok := l.Highlighted(); ok {
		t.Error("expected no highlight after a new query")
	}

	l.SetItems(nil)
	if l.IsOpen() {
		t.Error("expected list closed with no suggestions")
	}
}

func TestMove_ClampsAtEdges(t *testing.T) {
	l := autocomplete.New[string]()
	l.SetItems([]string{"a", "b", "c"})

	l.MoveUp() // no highlight yet, stays unset
	l.MoveDown()
	if got, _ := l.Highlighted(); got != "a" {
		t.Errorf("expected first item highlighted, got %q", got)
	}

	l.MoveDown()
	l.MoveDown()
	l.MoveDown() // clamped at last
	if got, _ := l.Highlighted(); got != "c" {
		t.Errorf("expected highlight clamped at last item, got %q", got)
	}

	l.MoveUp()
	l.MoveUp()
	l.MoveUp() // clamped at first
	if got, _ := l.Highlighted(); got != "a" {
		t.Errorf("expected highlight clamped at first item, got %q", got)
	}
}

func TestConfirm_HighlightedSuggestion(t *testing.T) {
	l := autocomplete.New[string]()
	l.SetItems([]string{"a", "b"})
	l.MoveDown()
	l.MoveDown()

	got, ok := l.Confirm()
	if !ok || got != "b" {
		t.Errorf("expected confirmed suggestion b, got %q ok=%v", got, ok)
	}
	if l.IsOpen() {
		t.Error("expected list closed after confirm")
	}
}

func TestConfirm_NoHighlightMeansTypedValue(t *testing.T) {
	l := autocomplete.New[string]()
	l.SetItems([]string{"a", "b"})

	if _, ok := l.Confirm(); ok {
		t.Error("expected ok=false when nothing highlighted")
	}
	if l.IsOpen() {
		t.Error("expected list closed after confirm")
	}
}

func TestDismiss(t *testing.T) {
	l := autocomplete.New[string]()
	l.SetItems([]string{"a"})
	l.MoveDown()

	l.Dismiss()
	if l.IsOpen() {
		t.Error("expected list closed after dismiss")
	}
	if _, ok := l.Highlighted(); ok {
		t.Error("expected highlight cleared after dismiss")
	}
}
