package timebase

// Tempo is a musical tempo in beats per minute.
type Tempo float64

// DefaultTempo is the tempo a new transport starts at.
const DefaultTempo Tempo = 120

// SecondsPerBeat returns the length of one beat.
func (t Tempo) SecondsPerBeat() Seconds {
	return Seconds(60.0 / float64(t))
}
