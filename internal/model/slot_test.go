package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlotOf(t *testing.T) {
	s, aligned := SlotOf(time.Date(2013, 1, 5, 0, 0, 0, 0, time.UTC))
	assert.True(t, aligned)
	assert.Equal(t, Slot(0), s)

	s, aligned = SlotOf(time.Date(2013, 1, 5, 23, 30, 0, 0, time.UTC))
	assert.True(t, aligned)
	assert.Equal(t, Slot(47), s)

	s, aligned = SlotOf(time.Date(2013, 1, 5, 9, 15, 0, 0, time.UTC))
	assert.False(t, aligned)
	assert.Equal(t, Slot(18), s)
}

func TestSlot_LabelRoundTrip(t *testing.T) {
	for i := 0; i < SlotsPerDay; i++ {
		got, err := ParseSlot(Slot(i).Label())
		require.NoError(t, err)
		assert.Equal(t, Slot(i), got)
	}
	assert.Equal(t, "13:30", Slot(27).Label())
}

func TestParseSlot_Invalid(t *testing.T) {
	for _, in := range []string{"", "12", "24:00", "10:15", "10:30:05", "ab:cd"} {
		_, err := ParseSlot(in)
		assert.Error(t, err, in)
	}
	s, err := ParseSlot("06:30:00")
	require.NoError(t, err)
	assert.Equal(t, Slot(13), s)
}

func TestSlotLabels(t *testing.T) {
	labels := SlotLabels()
	require.Len(t, labels, SlotsPerDay)
	assert.Equal(t, "00:00", labels[0])
	assert.Equal(t, "23:30", labels[47])
}
