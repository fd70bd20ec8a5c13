// device/pin.go
package device

import (
	"c2gpio-go/errcode"
	"c2gpio-go/pinmap"
)

// Level is the logic value of a GPIO line. The electrical reading can still
// be shifted by external pull resistors.
type Level uint8

const (
	Low Level = iota
	High
)

func (l Level) String() string {
	if l == High {
		return "high"
	}
	return "low"
}

// accessor implements the register-level pin protocols. It is a copyable
// value holding the pin's derived offsets and a reference to the device's
// register window; it carries no lease state of its own.
//
// Every protocol is a read-modify-write on one 32-bit word. Nothing here is
// atomic: concurrent mutation of the same word, even for a different pin
// sharing it, is outside the safety contract.
type accessor struct {
	mem  *memory
	regs registerOffsets
}

func newAccessor(mem *memory, id pinmap.PinID) (accessor, error) {
	regs, err := offsetsFor(id)
	if err != nil {
		return accessor{}, err
	}
	return accessor{mem: mem, regs: regs}, nil
}

// setDirection programs the function-select bit: set for input, clear for
// output. Input mode also clears the pull-enable bit so the line floats.
func (a accessor) setDirection(d direction) {
	fsel := a.mem.word(a.regs.fsel())
	switch d {
	case dirInput:
		a.mem.setWord(a.regs.fsel(), fsel|a.regs.bit())
		puen := a.mem.word(a.regs.puen())
		a.mem.setWord(a.regs.puen(), puen&^a.regs.bit())
	case dirOutput:
		a.mem.setWord(a.regs.fsel(), fsel&^a.regs.bit())
	}
}

func (a accessor) write(l Level) {
	gpset := a.mem.word(a.regs.gpset())
	if l == High {
		a.mem.setWord(a.regs.gpset(), gpset|a.regs.bit())
	} else {
		a.mem.setWord(a.regs.gpset(), gpset&^a.regs.bit())
	}
}

func (a accessor) read() Level {
	if a.mem.word(a.regs.gplev())&a.regs.bit() != 0 {
		return High
	}
	return Low
}

// driven is the level currently latched in the output-set register.
func (a accessor) driven() Level {
	if a.mem.word(a.regs.gpset())&a.regs.bit() != 0 {
		return High
	}
	return Low
}

// InputPin owns one input lease unit for its pin. Handles are scoped to
// their Device: using one after the device is closed is undefined.
type InputPin struct {
	acc      accessor
	released bool
}

// Read returns the line's current level.
func (p *InputPin) Read() Level { return p.acc.read() }

// ID returns the pin's internal identifier.
func (p *InputPin) ID() pinmap.PinID { return p.acc.regs.id }

// Close releases the input lease. The first call reports any registry
// failure; repeat calls are no-ops.
func (p *InputPin) Close() error {
	if p.released {
		return nil
	}
	p.released = true
	return p.acc.mem.release(p.acc.regs.id, dirInput)
}

// IntoOutput converts this handle into an output handle. The lease swap
// happens in a single registry critical section and the source handle is
// disarmed, so the lease is neither dropped nor double-released. On failure
// the source handle stays valid.
func (p *InputPin) IntoOutput() (*OutputPin, error) {
	if p.released {
		return nil, &errcode.E{C: errcode.WrongLease, Op: "InputPin.IntoOutput", Msg: "pin already released"}
	}
	if err := p.acc.mem.convert(p.acc.regs.id, dirInput); err != nil {
		return nil, err
	}
	p.released = true
	out := &OutputPin{acc: p.acc}
	out.acc.setDirection(dirOutput)
	return out, nil
}

// OutputPin owns one output lease unit for its pin.
type OutputPin struct {
	acc      accessor
	released bool
}

// Set drives the line high or low.
func (p *OutputPin) Set(l Level) { p.acc.write(l) }

// Toggle inverts the currently driven level.
func (p *OutputPin) Toggle() {
	if p.acc.driven() == High {
		p.acc.write(Low)
	} else {
		p.acc.write(High)
	}
}

// ID returns the pin's internal identifier.
func (p *OutputPin) ID() pinmap.PinID { return p.acc.regs.id }

// Close releases the output lease. The first call reports any registry
// failure; repeat calls are no-ops.
func (p *OutputPin) Close() error {
	if p.released {
		return nil
	}
	p.released = true
	return p.acc.mem.release(p.acc.regs.id, dirOutput)
}

// IntoInput is the mirror of InputPin.IntoOutput.
func (p *OutputPin) IntoInput() (*InputPin, error) {
	if p.released {
		return nil, &errcode.E{C: errcode.WrongLease, Op: "OutputPin.IntoInput", Msg: "pin already released"}
	}
	if err := p.acc.mem.convert(p.acc.regs.id, dirOutput); err != nil {
		return nil, err
	}
	p.released = true
	in := &InputPin{acc: p.acc}
	in.acc.setDirection(dirInput)
	return in, nil
}
