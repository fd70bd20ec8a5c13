package device

import (
	"strconv"

	"c2gpio-go/errcode"
	"c2gpio-go/pinmap"
)

// The C2's GPIO lines live in three address-aliased banks (DV, Y and X).
// Each bank exposes the same four logical registers at different word
// indices inside the mapped block, and the bit used for a line inside a
// register word is the line's distance from the start of its bank.
// Internal ids are contiguous per bank, offset from a common base.

const (
	pinBase = 136

	dvStart = pinBase + 45  // 181
	dvEnd   = pinBase + 74  // 210
	yStart  = pinBase + 75  // 211
	yEnd    = pinBase + 91  // 227
	xStart  = pinBase + 92  // 228
	xEnd    = pinBase + 114 // 250
)

// wordSize is the width of every GPIO register, in bytes.
const wordSize = 4

type bank uint8

const (
	bankDV bank = iota
	bankY
	bankX
)

func (b bank) String() string {
	switch b {
	case bankDV:
		return "DV"
	case bankY:
		return "Y"
	default:
		return "X"
	}
}

// Register word indices per bank: function select, pull enable, output set,
// input level. Byte offset = index * wordSize, native endianness.
var bankRegs = [3]struct {
	fsel, puen, gpset, gplev int
	start                    uint8
}{
	bankDV: {fsel: 0x10C, puen: 0x13A, gpset: 0x10D, gplev: 0x10E, start: dvStart},
	bankY:  {fsel: 0x10F, puen: 0x149, gpset: 0x110, gplev: 0x111, start: yStart},
	bankX:  {fsel: 0x118, puen: 0x14C, gpset: 0x119, gplev: 0x11A, start: xStart},
}

// registerOffsets is the per-pin view of the register block, derived once
// when an accessor is built.
type registerOffsets struct {
	id   pinmap.PinID
	bank bank
}

func offsetsFor(id pinmap.PinID) (registerOffsets, error) {
	switch n := uint8(id); {
	case n >= dvStart && n <= dvEnd:
		return registerOffsets{id: id, bank: bankDV}, nil
	case n >= yStart && n <= yEnd:
		return registerOffsets{id: id, bank: bankY}, nil
	case n >= xStart && n <= xEnd:
		return registerOffsets{id: id, bank: bankX}, nil
	default:
		return registerOffsets{}, &errcode.E{
			C:   errcode.WrongPinID,
			Op:  "device.offsetsFor",
			Msg: "id " + strconv.Itoa(int(n)) + " outside the DV/Y/X banks",
		}
	}
}

func (r registerOffsets) fsel() int  { return bankRegs[r.bank].fsel * wordSize }
func (r registerOffsets) puen() int  { return bankRegs[r.bank].puen * wordSize }
func (r registerOffsets) gpset() int { return bankRegs[r.bank].gpset * wordSize }
func (r registerOffsets) gplev() int { return bankRegs[r.bank].gplev * wordSize }

// bitOffset is the pin's position inside each of its bank's register words.
func (r registerOffsets) bitOffset() uint8 {
	return uint8(r.id) - bankRegs[r.bank].start
}

func (r registerOffsets) bit() uint32 {
	return uint32(1) << r.bitOffset()
}
