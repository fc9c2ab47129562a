package ports

import "time"

type IntentMetrics interface {
	RecordAccepted(intent string)
	RecordRejected(intent, code string)
}

type TickMetrics interface {
	RecordTick(dt time.Duration, events int)
}
