// device/memory.go
package device

import (
	"encoding/binary"
	"sync"

	"c2gpio-go/errcode"
	"c2gpio-go/pinmap"
)

// leaseCount tracks outstanding handles per direction for one pin.
// The two counts are never both positive at the same time.
type leaseCount struct {
	input  int
	output int
}

// memory owns the mapped register window and the lease registry. It is the
// only gateway to raw register bytes; accessors go through word/setWord.
//
// The registry mutex guards lease bookkeeping only. Register words are
// read and written without synchronization: two operations touching the
// same word concurrently (from this process or outside it) are a data race
// the caller must prevent.
type memory struct {
	buf []byte

	mu       sync.Mutex
	leases   map[pinmap.PinID]leaseCount
	poisoned bool
}

func newMemory(buf []byte) *memory {
	return &memory{
		buf:    buf,
		leases: make(map[pinmap.PinID]leaseCount, len(pinmap.All())),
	}
}

type direction uint8

const (
	dirInput direction = iota
	dirOutput
)

func (d direction) String() string {
	if d == dirInput {
		return "input"
	}
	return "output"
}

func (m *memory) lease(id pinmap.PinID, d direction) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.poisoned {
		return &errcode.E{C: errcode.LeaseRegistryPoisoned, Op: "device.lease"}
	}
	lc := m.leases[id]
	if opposite(d, lc) > 0 {
		return &errcode.E{
			C:   errcode.WrongLease,
			Op:  "device.lease",
			Msg: id.String() + " already leased as " + (1 - d).String(),
		}
	}
	incr(d, &lc)
	m.leases[id] = lc
	return nil
}

// release gives back one lease unit. Releasing a direction whose count is
// already zero is a caller bug: the books can no longer be trusted, so the
// registry is poisoned and all further lease traffic fails.
func (m *memory) release(id pinmap.PinID, d direction) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.poisoned {
		return &errcode.E{C: errcode.LeaseRegistryPoisoned, Op: "device.release"}
	}
	lc := m.leases[id]
	if held(d, lc) == 0 {
		m.poisoned = true
		return &errcode.E{
			C:   errcode.LeaseUnderflow,
			Op:  "device.release",
			Msg: "no outstanding " + d.String() + " lease for " + id.String(),
		}
	}
	decr(d, &lc)
	m.leases[id] = lc
	return nil
}

// convert swaps a pin's single lease from one direction to the other inside
// one critical section, so there is no window during which neither lease is
// held. It refuses when other handles of the source direction exist, since
// they would be left pointing at a reprogrammed pin.
func (m *memory) convert(id pinmap.PinID, from direction) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.poisoned {
		return &errcode.E{C: errcode.LeaseRegistryPoisoned, Op: "device.convert"}
	}
	lc := m.leases[id]
	switch {
	case held(from, lc) == 0:
		m.poisoned = true
		return &errcode.E{
			C:   errcode.LeaseUnderflow,
			Op:  "device.convert",
			Msg: "no outstanding " + from.String() + " lease for " + id.String(),
		}
	case held(from, lc) > 1:
		return &errcode.E{
			C:   errcode.WrongLease,
			Op:  "device.convert",
			Msg: id.String() + " has other " + from.String() + " handles",
		}
	}
	decr(from, &lc)
	incr(1-from, &lc)
	m.leases[id] = lc
	return nil
}

// leaseCounts is introspection for callers and tests.
func (m *memory) leaseCounts(id pinmap.PinID) (input, output int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	lc := m.leases[id]
	return lc.input, lc.output
}

func held(d direction, lc leaseCount) int {
	if d == dirInput {
		return lc.input
	}
	return lc.output
}

func opposite(d direction, lc leaseCount) int { return held(1-d, lc) }

func incr(d direction, lc *leaseCount) {
	if d == dirInput {
		lc.input++
	} else {
		lc.output++
	}
}

func decr(d direction, lc *leaseCount) {
	if d == dirInput {
		lc.input--
	} else {
		lc.output--
	}
}

// word reads the native-endian 32-bit register at a byte offset. Offsets
// are pre-validated by the offset table; the slice bounds check is the
// defense-in-depth backstop against library bugs.
func (m *memory) word(off int) uint32 {
	return binary.NativeEndian.Uint32(m.buf[off : off+wordSize])
}

func (m *memory) setWord(off int, v uint32) {
	binary.NativeEndian.PutUint32(m.buf[off:off+wordSize], v)
}
