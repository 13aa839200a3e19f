package data

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadWideCSV(t *testing.T) {
	in := `tstp,MAC000002,MAC000001
2012-10-12 00:30:00.0000000,0.1,
2012-10-12 00:00:00.0000000,0.2,Null
2012-10-12 01:00:00,0.3,1.5
`
	m, err := ReadWideCSV(strings.NewReader(in))
	require.NoError(t, err)

	assert.Equal(t, []string{"MAC000001", "MAC000002"}, m.Households())
	assert.Equal(t, 3, m.Len())
	assert.Equal(t, time.Date(2012, 10, 12, 0, 0, 0, 0, time.UTC), m.Timestamp(0))

	_, ok := m.Value(0, 0)
	assert.False(t, ok, "Null is absent")
	v, ok := m.Value(0, 1)
	require.True(t, ok)
	assert.InDelta(t, 0.2, v, 1e-12)
	assert.Equal(t, 4, m.ReadingCount())
}

func TestReadWideCSV_Errors(t *testing.T) {
	_, err := ReadWideCSV(strings.NewReader("time,A\n"))
	assert.Error(t, err)

	_, err = ReadWideCSV(strings.NewReader("tstp,A\nyesterday,1\n"))
	assert.Error(t, err)

	_, err = ReadWideCSV(strings.NewReader("tstp,A\n2012-10-12 00:00:00,abc\n"))
	assert.Error(t, err)

	_, err = ReadWideCSV(strings.NewReader("tstp,A\n2012-10-12 00:10:00,1\n"))
	assert.Error(t, err, "unaligned timestamp")
}

func TestReadLongCSV_AveragesDuplicatesAndSkipsNull(t *testing.T) {
	in := `LCLid,tstp,energy(kWh/hh)
MAC000002,2012-10-12 00:30:00.0000000, 0.1
MAC000002,2012-10-12 00:30:00.0000000, 0.3
MAC000002,2012-10-12 01:00:00.0000000,Null
MAC000003,2012-10-12 01:00:00.0000000, 0.5
`
	m, err := ReadLongCSV(strings.NewReader(in))
	require.NoError(t, err)

	assert.Equal(t, []string{"MAC000002", "MAC000003"}, m.Households())
	v, ok := m.Value(0, 0)
	require.True(t, ok)
	assert.InDelta(t, 0.2, v, 1e-12)
	_, ok = m.Value(1, 0)
	assert.False(t, ok)
}

func TestReadLongCSV_MissingColumns(t *testing.T) {
	_, err := ReadLongCSV(strings.NewReader("id,tstp,kwh\n"))
	assert.Error(t, err)
}
