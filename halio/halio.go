// Package halio adapts device pins to the small pin capability interface
// that generic driver code consumes. Drivers written against Pin never see
// the register window or the lease registry.
package halio

import (
	"log/slog"

	"c2gpio-go/device"
	"c2gpio-go/pinmap"
)

// Pull selection for inputs.
type Pull uint8

const (
	PullNone Pull = iota
	PullUp
	PullDown
)

// Pin is the capability surface handed to drivers.
type Pin interface {
	ConfigureInput(pull Pull) error
	ConfigureOutput(initial bool) error
	Set(level bool)
	Get() bool
	Toggle()
	Number() int
}

// ErrUnsupported is returned for capabilities this hardware cannot provide.
var ErrUnsupported = errUnsupported{}

type errUnsupported struct{}

func (errUnsupported) Error() string { return "unsupported" }

// DevicePin binds one GPIO line of a Device to the Pin interface. It holds
// at most one typed handle at a time and re-leases when reconfigured.
// Not safe for concurrent use.
type DevicePin struct {
	dev *device.Device
	id  pinmap.PinID

	in  *device.InputPin
	out *device.OutputPin
}

var _ Pin = (*DevicePin)(nil)

// NewPin binds a pin id. No lease is taken until the first Configure call.
func NewPin(dev *device.Device, id pinmap.PinID) *DevicePin {
	return &DevicePin{dev: dev, id: id}
}

// ConfigureInput leases the pin for reading. Only PullNone is supported:
// programming input direction on this hardware always disables the pull
// resistor.
func (p *DevicePin) ConfigureInput(pull Pull) error {
	if pull != PullNone {
		return ErrUnsupported
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

// ConfigureOutput leases the pin for writing and drives the initial level.
func (p *DevicePin) ConfigureOutput(initial bool) error {
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
	p.Set(initial)
	return nil
}

// Set drives the level. The interface has no error path, so misuse on an
// unconfigured pin is logged, not silently dropped.
func (p *DevicePin) Set(level bool) {
	if p.out == nil {
		slog.Error("halio: Set on pin not configured as output", "pin", p.id.String())
		return
	}
	if level {
		p.out.Set(device.High)
	} else {
		p.out.Set(device.Low)
	}
}

// Get reads the line level of an input-configured pin.
func (p *DevicePin) Get() bool {
	if p.in == nil {
		slog.Error("halio: Get on pin not configured as input", "pin", p.id.String())
		return false
	}
	return p.in.Read() == device.High
}

// Toggle inverts an output-configured pin.
func (p *DevicePin) Toggle() {
	if p.out == nil {
		slog.Error("halio: Toggle on pin not configured as output", "pin", p.id.String())
		return
	}
	p.out.Toggle()
}

// Number returns the internal GPIO line id.
func (p *DevicePin) Number() int { return int(p.id) }

// Close releases whichever lease the pin currently holds.
func (p *DevicePin) Close() error {
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
