package inmemory

import (
	"testing"
	"time"
)

func TestRecorderSnapshot(t *testing.T) {
	r := NewRecorder()
	r.RecordAccepted("move")
	r.RecordAccepted("gather")
	r.RecordRejected("gather", "INVENTORY_FULL")
	r.RecordTick(16*time.Millisecond, 0)
	r.RecordTick(16*time.Millisecond, 3)

	s := r.Snapshot()
	if s.IntentTotal != 3 {
		t.Fatalf("expected total 3, got %d", s.IntentTotal)
	}
	if s.IntentAccepted != 2 {
		t.Fatalf("expected accepted 2, got %d", s.IntentAccepted)
	}
	if s.IntentRejected != 1 {
		t.Fatalf("expected rejected 1, got %d", s.IntentRejected)
	}
	if s.ByIntent["gather"] != 2 {
		t.Fatalf("expected gather count 2, got %d", s.ByIntent["gather"])
	}
	if s.ByReasonCode["INVENTORY_FULL"] != 1 {
		t.Fatalf("expected INVENTORY_FULL count 1")
	}
	if s.Ticks != 2 || s.Events != 3 || s.SimulatedMS != 32 {
		t.Fatalf("unexpected tick counters: %+v", s)
	}
}

func TestRecorderSnapshotIsDetached(t *testing.T) {
	r := NewRecorder()
	r.RecordRejected("attack", "NO_WEAPON")
	s := r.Snapshot()
	s.ByReasonCode["NO_WEAPON"] = 99

	if got := r.Snapshot().ByReasonCode["NO_WEAPON"]; got != 1 {
		t.Fatalf("expected recorder unaffected, got %d", got)
	}
}
