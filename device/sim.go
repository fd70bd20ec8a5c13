package device

import (
	"c2gpio-go/pinmap"
)

// OpenSim returns a Device backed by a plain in-process register window
// instead of mapped hardware, plus a Sim handle for poking the simulated
// silicon. Lease rules and register protocols behave exactly as on a real
// device, so drivers and tests can run anywhere.
func OpenSim() (*Device, *Sim) {
	mem := newMemory(make([]byte, blockSize))
	return &Device{fd: -1, mem: mem}, &Sim{mem: mem}
}

// Sim is the test-side view of a simulated register window. It plays the
// role of the external world: setting input levels and observing what the
// code under test drove.
type Sim struct {
	mem *memory
}

// SetLevel forces a line's input-level bit, as if the outside world drove
// the line to that level.
func (s *Sim) SetLevel(id pinmap.PinID, l Level) error {
	regs, err := offsetsFor(id)
	if err != nil {
		return err
	}
	lev := s.mem.word(regs.gplev())
	if l == High {
		s.mem.setWord(regs.gplev(), lev|regs.bit())
	} else {
		s.mem.setWord(regs.gplev(), lev&^regs.bit())
	}
	return nil
}

// Driven reports the level latched in the line's output-set register.
func (s *Sim) Driven(id pinmap.PinID) (Level, error) {
	regs, err := offsetsFor(id)
	if err != nil {
		return Low, err
	}
	if s.mem.word(regs.gpset())&regs.bit() != 0 {
		return High, nil
	}
	return Low, nil
}

// IsOutput reports whether the line's function-select bit is programmed for
// output (the bit is clear in output mode).
func (s *Sim) IsOutput(id pinmap.PinID) (bool, error) {
	regs, err := offsetsFor(id)
	if err != nil {
		return false, err
	}
	return s.mem.word(regs.fsel())&regs.bit() == 0, nil
}

// SetPull forces the line's pull-enable bit, as if firmware had left the
// pull resistor on before this process started.
func (s *Sim) SetPull(id pinmap.PinID, enabled bool) error {
	regs, err := offsetsFor(id)
	if err != nil {
		return err
	}
	puen := s.mem.word(regs.puen())
	if enabled {
		s.mem.setWord(regs.puen(), puen|regs.bit())
	} else {
		s.mem.setWord(regs.puen(), puen&^regs.bit())
	}
	return nil
}

// PullEnabled reports the line's pull-enable bit.
func (s *Sim) PullEnabled(id pinmap.PinID) (bool, error) {
	regs, err := offsetsFor(id)
	if err != nil {
		return false, err
	}
	return s.mem.word(regs.puen())&regs.bit() != 0, nil
}

// Loopback mirrors the driven output level back onto the input-level
// register, the way a jumpered header or an LED test rig would.
func (s *Sim) Loopback(id pinmap.PinID) error {
	l, err := s.Driven(id)
	if err != nil {
		return err
	}
	return s.SetLevel(id, l)
}
