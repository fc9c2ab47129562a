package inmemory

import (
	"sync"
	"time"
)

type Snapshot struct {
	IntentTotal    uint64            `json:"intent_total"`
	IntentAccepted uint64            `json:"intent_accepted"`
	IntentRejected uint64            `json:"intent_rejected"`
	ByIntent       map[string]uint64 `json:"by_intent"`
	ByReasonCode   map[string]uint64 `json:"by_reason_code"`
	Ticks          uint64            `json:"ticks"`
	Events         uint64            `json:"events"`
	SimulatedMS    int64             `json:"simulated_ms"`
}

type Recorder struct {
	mu        sync.Mutex
	accepted  uint64
	rejected  uint64
	byIntent  map[string]uint64
	byReason  map[string]uint64
	ticks     uint64
	events    uint64
	simulated time.Duration
}

func NewRecorder() *Recorder {
	return &Recorder{
		byIntent: map[string]uint64{},
		byReason: map[string]uint64{},
	}
}

func (r *Recorder) RecordAccepted(intent string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.accepted++
	r.byIntent[intent]++
}

func (r *Recorder) RecordRejected(intent, code string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rejected++
	r.byIntent[intent]++
	r.byReason[code]++
}

func (r *Recorder) RecordTick(dt time.Duration, events int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ticks++
	r.simulated += dt
	if events > 0 {
		r.events += uint64(events)
	}
}

func (r *Recorder) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := Snapshot{
		IntentAccepted: r.accepted,
		IntentRejected: r.rejected,
		IntentTotal:    r.accepted + r.rejected,
		ByIntent:       make(map[string]uint64, len(r.byIntent)),
		ByReasonCode:   make(map[string]uint64, len(r.byReason)),
		Ticks:          r.ticks,
		Events:         r.events,
		SimulatedMS:    r.simulated.Milliseconds(),
	}
	for k, v := range r.byIntent {
		out.ByIntent[k] = v
	}
	for k, v := range r.byReason {
		out.ByReasonCode[k] = v
	}
	return out
}

func (r *Recorder) SnapshotAny() any {
	return r.Snapshot()
}
