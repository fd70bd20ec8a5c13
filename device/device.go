// Package device provides memory-mapped access to the ODROID-C2 (rev 2)
// GPIO register block and hands out typed input/output pin handles.
//
// A Device owns the mapped 4 KiB register window and a lease registry that
// keeps one pin from being held as input and output at the same time,
// within this process. It does not guard against the kernel or another
// process touching the same registers.
package device

import (
	"c2gpio-go/errcode"
	"c2gpio-go/pinmap"

	"golang.org/x/sys/unix"
)

const (
	// Physical base of the GPIO register block.
	gpioBaseAddr = 0xC8834000
	blockSize    = 4096

	memPath     = "/dev/mem"
	gpioMemPath = "/dev/gpiomem"
)

// Device owns the opened device file and the mapped register window, and is
// the factory for typed pin handles. Close it when done; all pins must be
// released first.
type Device struct {
	fd  int // -1 for simulated devices
	mem *memory
}

// Open maps the GPIO register window. Root gets the full /dev/mem device;
// everyone else goes through the restricted /dev/gpiomem node (see the
// ODROID wiki's rootless GPIO setup).
func Open() (*Device, error) {
	path := gpioMemPath
	if unix.Geteuid() == 0 {
		path = memPath
	}
	return openPath(path)
}

func openPath(path string) (*Device, error) {
	fd, err := unix.Open(path, unix.O_RDWR|unix.O_SYNC|unix.O_CLOEXEC, 0)
	if err != nil {
		return nil, &errcode.E{C: errcode.DeviceAccessFailed, Op: "open " + path, Err: err}
	}
	buf, err := unix.Mmap(fd, gpioBaseAddr, blockSize, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		unix.Close(fd)
		return nil, &errcode.E{C: errcode.MemoryMapFailed, Op: "mmap " + path, Err: err}
	}
	return &Device{fd: fd, mem: newMemory(buf)}, nil
}

// Close unmaps the register window and closes the device file. Pin handles
// derived from this device must not be used afterwards.
func (d *Device) Close() error {
	if d.fd < 0 {
		return nil
	}
	err := unix.Munmap(d.mem.buf)
	if cerr := unix.Close(d.fd); err == nil {
		err = cerr
	}
	d.fd = -1
	if err != nil {
		return &errcode.E{C: errcode.Error, Op: "device.Close", Err: err}
	}
	return nil
}

// InputPin leases a pin for reading and programs it as input, which also
// disables its pull resistor. Fails with wrong_pin_id for an unknown id and
// wrong_lease while an output handle for the same pin exists.
func (d *Device) InputPin(id pinmap.PinID) (*InputPin, error) {
	acc, err := newAccessor(d.mem, id)
	if err != nil {
		return nil, err
	}
	if err := d.mem.lease(id, dirInput); err != nil {
		return nil, err
	}
	acc.setDirection(dirInput)
	return &InputPin{acc: acc}, nil
}

// OutputPin leases a pin for writing and programs it as output. Failure
// modes mirror InputPin.
func (d *Device) OutputPin(id pinmap.PinID) (*OutputPin, error) {
	acc, err := newAccessor(d.mem, id)
	if err != nil {
		return nil, err
	}
	if err := d.mem.lease(id, dirOutput); err != nil {
		return nil, err
	}
	acc.setDirection(dirOutput)
	return &OutputPin{acc: acc}, nil
}

// Leases reports the outstanding lease counts for a pin.
func (d *Device) Leases(id pinmap.PinID) (input, output int) {
	return d.mem.leaseCounts(id)
}
