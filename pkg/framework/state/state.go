// Package state saves and restores the normalized value of every parameter in
// a param.Registry.
//
// The format is little-endian: the "DAWCST" magic, a uint32 version, a uint32
// parameter count, then (uint32 ID, float64 normalized) per parameter, then a
// uint32 length and that many bytes of caller-defined extra state.
package state

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/justyntemme/dawcore/pkg/framework/debug"
	"github.com/justyntemme/dawcore/pkg/framework/param"
)

const (
	magic = "DAWCST"
	// Version is the newest format Load understands.
	Version uint32 = 1
	// maxExtra bounds the extra blob so a corrupt length cannot force a huge
	// allocation.
	maxExtra = 16 << 20
)

var (
	ErrBadMagic   = errors.New("not a parameter state stream")
	ErrNewVersion = errors.New("state version newer than supported")
)

// Extra lets the owner persist state that is not a parameter.
type Extra interface {
	SaveExtra(w io.Writer) error
	LoadExtra(r io.Reader) error
}

// Manager reads and writes registry state.
type Manager struct {
	registry *param.Registry
	extra    Extra
}

func NewManager(r *param.Registry) *Manager {
	return &Manager{registry: r}
}

// SetExtra installs the extra-state hooks; nil removes them.
func (m *Manager) SetExtra(e Extra) { m.extra = e }

// Save writes every registered parameter in registration order.
func (m *Manager) Save(w io.Writer) error {
	entries := m.registry.All()

	var extra bytes.Buffer
	if m.extra != nil {
		if err := m.extra.SaveExtra(&extra); err != nil {
			return fmt.Errorf("save extra state: %w", err)
		}
	}

	buf := make([]byte, 0, len(magic)+8+len(entries)*12+4+extra.Len())
	buf = append(buf, magic...)
	buf = binary.LittleEndian.AppendUint32(buf, Version)
	buf = binary.LittleEndian.AppendUint32(buf, uint32(len(entries)))
	for _, e := range entries {
		n, err := m.registry.Normalized(e.ID)
		if err != nil {
			return fmt.Errorf("save parameter %d: %w", e.ID, err)
		}
		buf = binary.LittleEndian.AppendUint32(buf, e.ID)
		buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(n))
	}
	buf = binary.LittleEndian.AppendUint32(buf, uint32(extra.Len()))
	buf = append(buf, extra.Bytes()...)

	if _, err := w.Write(buf); err != nil {
		return fmt.Errorf("write state: %w", err)
	}
	return nil
}

// Load applies a saved state. Each value is published through the registry,
// so audio-side parameters glide to it on their next block. IDs the registry
// does not know are skipped.
func (m *Manager) Load(r io.Reader) error {
	header := make([]byte, len(magic))
	if _, err := io.ReadFull(r, header); err != nil {
		return fmt.Errorf("read header: %w", err)
	}
	if string(header) != magic {
		return ErrBadMagic
	}

	var version, count uint32
	if err := binary.Read(r, binary.LittleEndian, &version); err != nil {
		return fmt.Errorf("read version: %w", err)
	}
	if version > Version {
		return fmt.Errorf("%w: %d > %d", ErrNewVersion, version, Version)
	}
	if err := binary.Read(r, binary.LittleEndian, &count); err != nil {
		return fmt.Errorf("read count: %w", err)
	}

	var rec struct {
		ID         uint32
		Normalized float64
	}
	skipped := 0
	for i := uint32(0); i < count; i++ {
		if err := binary.Read(r, binary.LittleEndian, &rec); err != nil {
			return fmt.Errorf("read parameter %d of %d: %w", i+1, count, err)
		}
		err := m.registry.SetNormalized(rec.ID, rec.Normalized)
		switch {
		case errors.Is(err, param.ErrUnknownParameter):
			skipped++
		case err != nil:
			return fmt.Errorf("load parameter %d: %w", rec.ID, err)
		}
	}
	debug.WarnIf(skipped > 0, "state: skipped %d unknown parameters", skipped)

	var extraLen uint32
	if err := binary.Read(r, binary.LittleEndian, &extraLen); err != nil {
		return fmt.Errorf("read extra length: %w", err)
	}
	if extraLen > maxExtra {
		return fmt.Errorf("extra state of %d bytes exceeds limit", extraLen)
	}
	if extraLen == 0 {
		return nil
	}
	body := io.LimitReader(r, int64(extraLen))
	if m.extra == nil {
		_, err := io.Copy(io.Discard, body)
		return err
	}
	if err := m.extra.LoadExtra(body); err != nil {
		return fmt.Errorf("load extra state: %w", err)
	}
	return nil
}
