package param

import (
	"errors"
	"fmt"
	"sync"

	"github.com/justyntemme/dawcore/pkg/framework/debug"
	"github.com/justyntemme/dawcore/pkg/timebase"
)

var (
	// ErrUnknownParameter is returned for an ID that was never registered.
	ErrUnknownParameter = errors.New("unknown parameter")
	// ErrDuplicateID is returned when an ID is registered twice.
	ErrDuplicateID = errors.New("duplicate parameter ID")
)

// Control is a parameter handle a Registry can drive. *Handle[float32],
// *Handle[float64] and *HandleI32 implement it.
type Control interface {
	Poll() bool
	Format() string

	controlNormalized() float64
	setControlNormalized(n float64)
	parseNormalized(text string) (float64, error)
}

var (
	_ Control = (*HandleF32)(nil)
	_ Control = (*HandleF64)(nil)
	_ Control = (*HandleI32)(nil)
)

// Entry is one registered parameter.
type Entry struct {
	ID      uint32
	Name    string
	Control Control
}

// Registry indexes parameter handles by ID for a host bridge or UI. It is
// safe for concurrent use, but every method takes a lock, so it belongs on
// control threads only. The audio thread talks to its Params directly.
type Registry struct {
	mu      sync.RWMutex
	entries map[uint32]*Entry
	byName  map[string]uint32
	order   []uint32
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		entries: make(map[uint32]*Entry),
		byName:  make(map[string]uint32),
	}
}

// Add registers c under id. The registry takes ownership of c: keep a Clone
// for any other goroutine that needs the parameter.
func (r *Registry) Add(id uint32, name string, c Control) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if e, ok := r.entries[id]; ok {
		debug.Warn("param: ID %d already used by %q, not adding %q", id, e.Name, name)
		return fmt.Errorf("register %q: %w: %d", name, ErrDuplicateID, id)
	}

	r.entries[id] = &Entry{ID: id, Name: name, Control: c}
	r.byName[name] = id
	r.order = append(r.order, id)
	return nil
}

// AddF32 builds a float32 parameter from b, registers a clone of its handle
// and returns the pair.
func (r *Registry) AddF32(b *Builder, sr timebase.SampleRate) (*ParamF32, *HandleF32, error) {
	p, h := b.BuildF32(sr)
	if err := r.Add(b.ID(), b.Name(), h.Clone()); err != nil {
		return nil, nil, err
	}
	return p, h, nil
}

// AddF64 is AddF32 for float64 parameters.
func (r *Registry) AddF64(b *Builder, sr timebase.SampleRate) (*ParamF64, *HandleF64, error) {
	p, h := b.BuildF64(sr)
	if err := r.Add(b.ID(), b.Name(), h.Clone()); err != nil {
		return nil, nil, err
	}
	return p, h, nil
}

// AddI32 builds an integer parameter from b, registers a clone of its handle
// and returns the pair.
func (r *Registry) AddI32(b *Builder) (*ParamI32, *HandleI32, error) {
	p, h := b.BuildI32()
	if err := r.Add(b.ID(), b.Name(), h.Clone()); err != nil {
		return nil, nil, err
	}
	return p, h, nil
}

func (r *Registry) get(id uint32) (*Entry, error) {
	e, ok := r.entries[id]
	if !ok {
		return nil, fmt.Errorf("parameter %d: %w", id, ErrUnknownParameter)
	}
	return e, nil
}

// Lookup returns the ID registered under name.
func (r *Registry) Lookup(name string) (uint32, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byName[name]
	return id, ok
}

// SetNormalized publishes a normalized value, as a host does for
// automation.
func (r *Registry) SetNormalized(id uint32, n float64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, err := r.get(id)
	if err != nil {
		return err
	}
	e.Control.setControlNormalized(n)
	return nil
}

// Normalized returns the latest normalized value.
func (r *Registry) Normalized(id uint32) (float64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, err := r.get(id)
	if err != nil {
		return 0, err
	}
	return e.Control.controlNormalized(), nil
}

// Format returns the latest value as display text.
func (r *Registry) Format(id uint32) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, err := r.get(id)
	if err != nil {
		return "", err
	}
	e.Control.Poll()
	return e.Control.Format(), nil
}

// Parse converts display text to a normalized value without applying it.
func (r *Registry) Parse(id uint32, text string) (float64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, err := r.get(id)
	if err != nil {
		return 0, err
	}
	n, err := e.Control.parseNormalized(text)
	if err != nil {
		return 0, fmt.Errorf("parameter %d (%s): %w", id, e.Name, err)
	}
	return n, nil
}

// Changed returns, in registration order, the IDs whose value moved since
// the previous call. Values this registry set itself do not count.
func (r *Registry) Changed() []uint32 {
	r.mu.Lock()
	defer r.mu.Unlock()

	var ids []uint32
	for _, id := range r.order {
		if r.entries[id].Control.Poll() {
			ids = append(ids, id)
		}
	}
	return ids
}

// All returns every entry in registration order.
func (r *Registry) All() []Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Entry, len(r.order))
	for i, id := range r.order {
		out[i] = *r.entries[id]
	}
	return out
}

// Count returns the number of registered parameters.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order)
}
