package world

// Health is the hit counter shared by mineable nodes and attackable creatures.
// Once it reaches zero the owner is being consumed and further hits are ignored.
type Health struct {
	Current   int  `json:"current"`
	Max       int  `json:"max"`
	Consuming bool `json:"consuming"`
}

func NewHealth(n int) Health {
	if n < 1 {
		n = 1
	}
	return Health{Current: n, Max: n}
}

// Hit removes one point and reports whether this hit destroyed the owner.
// A hit on a consumed owner is a no-op that reports false.
func (h *Health) Hit() bool {
	if h.Consuming {
		return false
	}
	h.Current--
	if h.Current <= 0 {
		h.Current = 0
		h.Consuming = true
		return true
	}
	return false
}

func (h Health) Fraction() float64 {
	if h.Max <= 0 {
		return 0
	}
	return float64(h.Current) / float64(h.Max)
}
