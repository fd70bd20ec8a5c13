// Package periphio exposes device pins as periph.io gpio.PinIO so they plug
// into drivers written against the periph connector interfaces.
//
// Edge detection, pull selection and PWM are not part of this hardware
// access model and report as unsupported in the way periph expects.
package periphio

import (
	"errors"
	"time"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"

	"c2gpio-go/device"
	"c2gpio-go/pinmap"
)

// Pin adapts one GPIO line to gpio.PinIO. It keeps at most one typed device
// handle and converts it when the direction changes. Not safe for
// concurrent use.
type Pin struct {
	dev *device.Device
	id  pinmap.PinID

	in  *device.InputPin
	out *device.OutputPin
}

var _ gpio.PinIO = (*Pin)(nil)

// New binds a pin id. No lease is taken until In or Out is called.
func New(dev *device.Device, id pinmap.PinID) *Pin {
	return &Pin{dev: dev, id: id}
}

func (p *Pin) String() string { return p.Name() }

// Name returns the physical header name, e.g. "Phy7".
func (p *Pin) Name() string { return p.id.String() }

// Number returns the internal GPIO line id.
func (p *Pin) Number() int { return int(p.id) }

// Function describes the current direction.
func (p *Pin) Function() string {
	switch {
	case p.in != nil:
		return "In"
	case p.out != nil:
		return "Out"
	default:
		return ""
	}
}

// In configures the pin as input. The hardware protocol always disables the
// pull resistor, so only gpio.Float and gpio.PullNoChange are accepted, and
// no edge detection is available.
func (p *Pin) In(pull gpio.Pull, edge gpio.Edge) error {
	if edge != gpio.NoEdge {
		return errors.New("periphio: edge detection is not supported")
	}
	if pull != gpio.Float && pull != gpio.PullNoChange {
		return errors.New("periphio: pull resistors are not supported")
	}
	if p.in != nil {
		return nil
	}
	if p.out != nil {
		in, err := p.out.IntoInput()
		if err != nil {
			return err
		}
		p.out, p.in = nil, in
		return nil
	}
	in, err := p.dev.InputPin(p.id)
	if err != nil {
		return err
	}
	p.in = in
	return nil
}

// Read returns the line level; gpio.Low if the pin is not an input.
func (p *Pin) Read() gpio.Level {
	if p.in == nil {
		return gpio.Low
	}
	return p.in.Read() == device.High
}

// WaitForEdge always reports false; there is no edge support.
func (p *Pin) WaitForEdge(timeout time.Duration) bool { return false }

// Pull reports gpio.Float: inputs always have the pull disabled.
func (p *Pin) Pull() gpio.Pull { return gpio.Float }

// DefaultPull reports gpio.Float for the same reason.
func (p *Pin) DefaultPull() gpio.Pull { return gpio.Float }

// Out configures the pin as output if needed and drives the level.
func (p *Pin) Out(l gpio.Level) error {
	if p.out == nil {
		if p.in != nil {
			out, err := p.in.IntoOutput()
			if err != nil {
				return err
			}
			p.in, p.out = nil, out
		} else {
			out, err := p.dev.OutputPin(p.id)
			if err != nil {
				return err
			}
			p.out = out
		}
	}
	if l == gpio.High {
		p.out.Set(device.High)
	} else {
		p.out.Set(device.Low)
	}
	return nil
}

// PWM is not supported.
func (p *Pin) PWM(duty gpio.Duty, f physic.Frequency) error {
	return errors.New("periphio: pwm is not supported")
}

// Halt releases whichever lease the pin holds.
func (p *Pin) Halt() error {
	switch {
	case p.in != nil:
		in := p.in
		p.in = nil
		return in.Close()
	case p.out != nil:
		out := p.out
		p.out = nil
		return out.Close()
	default:
		return nil
	}
}
