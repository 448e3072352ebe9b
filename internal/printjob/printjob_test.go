package printjob_test

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/minhphat/retail-crm-go/internal/printjob"
)

func TestAfter_Fires(t *testing.T) {
	var ran atomic.Int32
	j := printjob.After(10*time.Millisecond, func() { ran.Add(1) })

	time.Sleep(50 * time.Millisecond)
	if ran.Load() != 1 {
		t.Errorf("expected callback to run once, got %d", ran.Load())
	}
	if !j.Fired() {
		t.Error("expected Fired true")
	}
	if j.Cancel() {
		t.Error("expected Cancel to report false after the job fired")
	}
}

func TestCancel_PreventsCallback(t *testing.T) {
	var ran atomic.Int32
	j := printjob.After(50*time.Millisecond, func() { ran.Add(1) })

	if !j.Cancel() {
		t.Fatal("expected Cancel to succeed before the delay elapses")
	}
	time.Sleep(100 * time.Millisecond)

	if ran.Load() != 0 {
		t.Errorf("expected no callback after cancel, got %d", ran.Load())
	}
	if j.Fired() {
		t.Error("expected Fired false after cancel")
	}
}

func TestCancel_Twice(t *testing.T) {
	j := printjob.After(time.Hour, func() {})

	if !j.Cancel() {
		t.Fatal("expected first cancel to succeed")
	}
	if j.Cancel() {
		t.Error("expected second cancel to report false")
	}
}
