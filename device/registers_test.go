package device

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"c2gpio-go/errcode"
	"c2gpio-go/pinmap"
)

func TestOffsetsFor_EveryCataloguedPin(t *testing.T) {
	lengths := map[bank]uint8{bankDV: 30, bankY: 17, bankX: 23}
	for _, id := range pinmap.All() {
		regs, err := offsetsFor(id)
		require.NoError(t, err, "offsetsFor(%v)", id)
		assert.Less(t, regs.bitOffset(), lengths[regs.bank],
			"%v: bit offset must stay inside the %v bank word", id, regs.bank)
	}
}

func TestOffsetsFor_BankClassification(t *testing.T) {
	cases := []struct {
		id   pinmap.PinID
		bank bank
		bit  uint8
	}{
		{pinmap.Phy27, bankDV, 26}, // 207 - 181
		{pinmap.Phy31, bankY, 8},   // 219 - 211
		{pinmap.Phy7, bankX, 21},   // 249 - 228
		{pinmap.PinID(dvStart), bankDV, 0},
		{pinmap.PinID(yStart), bankY, 0},
		{pinmap.PinID(xEnd), bankX, 22},
	}
	for _, c := range cases {
		regs, err := offsetsFor(c.id)
		require.NoError(t, err)
		assert.Equal(t, c.bank, regs.bank, "bank for %v", c.id)
		assert.Equal(t, c.bit, regs.bitOffset(), "bit offset for %v", c.id)
	}
}

func TestOffsetsFor_RegisterByteOffsets(t *testing.T) {
	// Word index * 4 per the S905 datasheet layout.
	regs, err := offsetsFor(pinmap.Phy7) // X bank
	require.NoError(t, err)
	assert.Equal(t, 0x118*4, regs.fsel())
	assert.Equal(t, 0x14C*4, regs.puen())
	assert.Equal(t, 0x119*4, regs.gpset())
	assert.Equal(t, 0x11A*4, regs.gplev())

	regs, err = offsetsFor(pinmap.Phy27) // DV bank
	require.NoError(t, err)
	assert.Equal(t, 0x10C*4, regs.fsel())
	assert.Equal(t, 0x13A*4, regs.puen())
	assert.Equal(t, 0x10D*4, regs.gpset())
	assert.Equal(t, 0x10E*4, regs.gplev())

	regs, err = offsetsFor(pinmap.Phy31) // Y bank
	require.NoError(t, err)
	assert.Equal(t, 0x10F*4, regs.fsel())
	assert.Equal(t, 0x149*4, regs.puen())
	assert.Equal(t, 0x110*4, regs.gpset())
	assert.Equal(t, 0x111*4, regs.gplev())
}

func TestOffsetsFor_UnknownID(t *testing.T) {
	for _, n := range []uint8{0, 1, pinBase, dvStart - 1, 255} {
		_, err := offsetsFor(pinmap.PinID(n))
		require.Error(t, err, "id %d", n)
		assert.True(t, errors.Is(err, errcode.WrongPinID), "id %d: %v", n, err)
	}
}

func TestOffsetsFor_BanksAreDisjointAndContiguous(t *testing.T) {
	// Walk the whole id space; each usable id lands in exactly one bank.
	inAnyBank := 0
	for n := 0; n < 256; n++ {
		regs, err := offsetsFor(pinmap.PinID(n))
		if err != nil {
			continue
		}
		inAnyBank++
		start := int(bankRegs[regs.bank].start)
		assert.Equal(t, n-start, int(regs.bitOffset()))
	}
	assert.Equal(t, 30+17+23, inAnyBank)
}
