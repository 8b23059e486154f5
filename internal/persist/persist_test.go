package persist

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteReadRoundTrip(t *testing.T) {
	entries := []Entry{
		{Key: "3|0|-|2", StrategySum: []float64{1.5, 0.5}},
		{Key: "9|1|0F1C|3", StrategySum: []float64{0.1, 0.2, 0.7}},
	}

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, entries))

	got, err := Read(&buf)
	require.NoError(t, err)
	assert.Equal(t, entries, got)
}

func TestReadRejectsTrailingBytes(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, []Entry{{Key: "1|0|-|1", StrategySum: []float64{1}}}))
	buf.WriteByte(0xFF)

	_, err := Read(&buf)
	assert.Error(t, err)
}

func TestWriteRejectsNonASCIIKey(t *testing.T) {
	var buf bytes.Buffer
	err := Write(&buf, []Entry{{Key: "bücket|0|-|1", StrategySum: []float64{1}}})
	assert.Error(t, err)
}

func TestEmptyTableRoundTrips(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, nil))

	got, err := Read(&buf)
	require.NoError(t, err)
	assert.Empty(t, got)
}
