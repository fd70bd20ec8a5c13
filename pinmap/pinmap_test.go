package pinmap

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"c2gpio-go/errcode"
)

func TestFromPhysical_RoundTrip(t *testing.T) {
	for _, id := range All() {
		phy, ok := Physical(id)
		require.True(t, ok, "no physical position for %v", id)
		got, ok := FromPhysical(phy)
		require.True(t, ok)
		assert.Equal(t, id, got)
	}
}

func TestFromPhysical_NonGPIOPositions(t *testing.T) {
	// Power, ground and reserved positions have no internal id.
	for _, phy := range []int{1, 2, 4, 6, 9, 14, 17, 20, 25, 30, 34, 37, 40} {
		_, ok := FromPhysical(phy)
		assert.False(t, ok, "position %d should not map", phy)
	}
}

func TestParse(t *testing.T) {
	for _, s := range []string{"7", "phy7", "PHY7", " Phy7 "} {
		id, err := Parse(s)
		require.NoError(t, err, "Parse(%q)", s)
		assert.Equal(t, Phy7, id)
	}
}

func TestParse_BadInput(t *testing.T) {
	for _, s := range []string{"", "abc", "phy", "9", "phy40"} {
		_, err := Parse(s)
		require.Error(t, err, "Parse(%q)", s)
		assert.True(t, errors.Is(err, errcode.WrongPinID), "Parse(%q) = %v", s, err)
	}
}

func TestString(t *testing.T) {
	assert.Equal(t, "Phy7", Phy7.String())
	assert.Equal(t, "PinID(5)", PinID(5).String())
}

func TestAll_SortedAndComplete(t *testing.T) {
	ids := All()
	require.Len(t, ids, 23)
	prev := 0
	for _, id := range ids {
		phy, ok := Physical(id)
		require.True(t, ok)
		assert.Greater(t, phy, prev, "All must be ordered by physical position")
		prev = phy
	}
}
