package errcode

// Code is a stable, caller-facing error identifier.
// It is a string newtype, comparable, allocation-free, and implements error.
type Code string

func (c Code) Error() string { return string(c) }

// Canonical codes (short, stable).
const (
	OK Code = "ok"

	// Device bring-up.
	DeviceAccessFailed Code = "device_access_failed"
	MemoryMapFailed    Code = "memory_map_failed"

	// Pin leasing.
	WrongLease            Code = "wrong_lease"
	WrongPinID            Code = "wrong_pin_id"
	LeaseUnderflow        Code = "lease_underflow"
	LeaseRegistryPoisoned Code = "lease_registry_poisoned"

	Error Code = "error" // generic fallback
)

// Recoverable reports whether the caller may retry the failed operation
// later. Only lease conflicts qualify; everything else is either fatal to
// the device or a programming error.
func (c Code) Recoverable() bool { return c == WrongLease }

// E is the optional wrapper when we want to keep context and a cause.
type E struct {
	C   Code
	Op  string
	Msg string
	Err error
}

func (e *E) Error() string {
	s := string(e.C)
	if e.Op != "" {
		s = e.Op + ": " + s
	}
	if e.Msg != "" {
		s += ": " + e.Msg
	}
	if e.Err != nil {
		s += ": " + e.Err.Error()
	}
	return s
}

func (e *E) Unwrap() error { return e.Err }
func (e *E) Code() Code    { return e.C }

// Is makes errors.Is(err, errcode.WrongLease) match wrapped codes.
func (e *E) Is(target error) bool {
	c, ok := target.(Code)
	return ok && e.C == c
}

// Of extracts a Code from an error, defaulting to Error.
func Of(err error) Code {
	if err == nil {
		return OK
	}
	if c, ok := err.(Code); ok {
		return c
	}
	type coder interface{ Code() Code }
	if x, ok := err.(coder); ok {
		return x.Code()
	}
	return Error
}
