// Package pinmap maps physical positions on the ODROID-C2 40-pin header to
// the internal GPIO line identifiers used by the register block.
//
// Only the usable GPIO positions are listed; power, ground and I2C/UART
// positions have no internal id. The numbering follows the Hardkernel
// "enhancement 40pins" application note for revision 2 boards.
package pinmap

import (
	"sort"
	"strconv"
	"strings"

	"c2gpio-go/errcode"
)

// PinID is the internal identifier of a GPIO line, as understood by the
// register windows. It is distinct from the physical connector position.
type PinID uint8

const (
	Phy7  PinID = 249
	Phy8  PinID = 240
	Phy10 PinID = 241
	Phy11 PinID = 247
	Phy12 PinID = 238
	Phy13 PinID = 239
	Phy15 PinID = 237
	Phy16 PinID = 236
	Phy18 PinID = 233
	Phy19 PinID = 235
	Phy21 PinID = 232
	Phy22 PinID = 231
	Phy23 PinID = 230
	Phy24 PinID = 229
	Phy26 PinID = 225
	Phy27 PinID = 207
	Phy28 PinID = 208
	Phy29 PinID = 228
	Phy31 PinID = 219
	Phy32 PinID = 224
	Phy33 PinID = 234
	Phy35 PinID = 214
	Phy36 PinID = 218
)

var byPhysical = map[int]PinID{
	7:  Phy7,
	8:  Phy8,
	10: Phy10,
	11: Phy11,
	12: Phy12,
	13: Phy13,
	15: Phy15,
	16: Phy16,
	18: Phy18,
	19: Phy19,
	21: Phy21,
	22: Phy22,
	23: Phy23,
	24: Phy24,
	26: Phy26,
	27: Phy27,
	28: Phy28,
	29: Phy29,
	31: Phy31,
	32: Phy32,
	33: Phy33,
	35: Phy35,
	36: Phy36,
}

var byID = func() map[PinID]int {
	m := make(map[PinID]int, len(byPhysical))
	for phy, id := range byPhysical {
		m[id] = phy
	}
	return m
}()

// FromPhysical returns the internal id for a physical connector position.
func FromPhysical(n int) (PinID, bool) {
	id, ok := byPhysical[n]
	return id, ok
}

// Physical returns the physical connector position of an internal id.
func Physical(id PinID) (int, bool) {
	phy, ok := byID[id]
	return phy, ok
}

// Parse accepts a physical position in the forms "7", "phy7" or "PHY7".
func Parse(s string) (PinID, error) {
	t := strings.TrimPrefix(strings.ToLower(strings.TrimSpace(s)), "phy")
	n, err := strconv.Atoi(t)
	if err != nil {
		return 0, &errcode.E{C: errcode.WrongPinID, Op: "pinmap.Parse", Msg: s, Err: err}
	}
	id, ok := FromPhysical(n)
	if !ok {
		return 0, &errcode.E{C: errcode.WrongPinID, Op: "pinmap.Parse", Msg: "no GPIO at physical position " + t}
	}
	return id, nil
}

func (id PinID) String() string {
	if phy, ok := byID[id]; ok {
		return "Phy" + strconv.Itoa(phy)
	}
	return "PinID(" + strconv.Itoa(int(id)) + ")"
}

// All returns every catalogued pin, ordered by physical position.
func All() []PinID {
	phys := make([]int, 0, len(byPhysical))
	for phy := range byPhysical {
		phys = append(phys, phy)
	}
	sort.Ints(phys)
	ids := make([]PinID, len(phys))
	for i, phy := range phys {
		ids[i] = byPhysical[phy]
	}
	return ids
}
