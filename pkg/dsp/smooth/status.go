package smooth

// Status describes where a Smoother is in its settle cycle.
type Status int

const (
	// Inactive means every value in the output equals the target.
	Inactive Status = iota
	// Active means the output is still moving toward the target.
	Active
	// Deactivating means the output has just been snapped to the target.
	// Consumers that keep their own per-sample state (filters computing
	// coefficients per sample, for example) get one more block to catch up
	// before the smoother reports Inactive.
	Deactivating
)

func (s Status) String() string {
	switch s {
	case Inactive:
		return "inactive"
	case Active:
		return "active"
	case Deactivating:
		return "deactivating"
	default:
		return "unknown"
	}
}

// IsActive reports whether s is Active.
func (s Status) IsActive() bool {
	return s == Active
}

// Output is one block of smoothed values.
//
// Values aliases the smoother's internal buffer. It is valid until the next
// call that advances or resets the smoother and must not be written to.
type Output[T Float] struct {
	Values []T
	Status Status
}

// IsSmoothing reports whether the values may differ from sample to sample,
// or differ from the previous block.
func (o Output[T]) IsSmoothing() bool {
	return o.Status != Inactive
}

// Frames returns o limited to its first n values.
func (o Output[T]) Frames(n int) Output[T] {
	n = max(0, min(n, len(o.Values)))
	return Output[T]{Values: o.Values[:n], Status: o.Status}
}

// At returns the value at frame i. When the output is not smoothing every
// frame holds the same value, so the first one is returned. An empty output,
// as from a zero-frame block, returns 0.
func (o Output[T]) At(i int) T {
	if len(o.Values) == 0 {
		return 0
	}
	if !o.IsSmoothing() {
		return o.Values[0]
	}
	return o.Values[i]
}
