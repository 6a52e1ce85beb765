package linemax

import (
	"bytes"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOffsets(t *testing.T) {
	assert.Equal(t, []int64{0, 2, 2, 5, 6}, Offsets([]int{2, 0, 3, 1}))
	assert.Equal(t, []int64{0}, Offsets(nil))
}

// TestCollectIgnoresArrivalOrder shuffles the worker results many times; the
// merged sequence must always follow worker rank.
func TestCollectIgnoresArrivalOrder(t *testing.T) {
	results := []WorkerResult{
		{Worker: 0, Values: []byte{98, 100}},
		{Worker: 1, Values: nil},
		{Worker: 2, Values: []byte{0, 90}},
		{Worker: 3, Values: []byte{}},
	}
	r := rand.New(rand.NewSource(1))
	for i := 0; i < 50; i++ {
		shuffled := append([]WorkerResult(nil), results...)
		r.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })

		got, err := Collect(4, shuffled)
		require.NoError(t, err)
		require.Equal(t, scenarioWant, got.Values())
	}
}

func TestCollectGlobalIndices(t *testing.T) {
	got, err := Collect(3, []WorkerResult{
		{Worker: 2, Values: []byte{'z'}},
		{Worker: 0, Values: []byte{'a', 'b'}},
		{Worker: 1, Values: []byte{'m'}},
	})
	require.NoError(t, err)
	require.Equal(t, 4, got.Len())
	assert.Equal(t, Line{Index: 2, Max: 'm'}, got.At(2))

	var lines []Line
	for l := range got.All() {
		lines = append(lines, l)
	}
	assert.Equal(t, []Line{{0, 'a'}, {1, 'b'}, {2, 'm'}, {3, 'z'}}, lines)
}

func TestCollectRejectsBadRanks(t *testing.T) {
	_, err := Collect(2, []WorkerResult{{Worker: 0}, {Worker: 0}})
	assert.ErrorIs(t, err, ErrInvariant)

	_, err = Collect(2, []WorkerResult{{Worker: 0}})
	assert.ErrorIs(t, err, ErrInvariant)

	_, err = Collect(2, []WorkerResult{{Worker: 0}, {Worker: 5}})
	assert.ErrorIs(t, err, ErrInvariant)

	_, err = Collect(0, nil)
	assert.ErrorIs(t, err, ErrConfig)
}

func TestCollectDoesNotAlias(t *testing.T) {
	vals := []byte{'a'}
	got, err := Collect(1, []WorkerResult{{Worker: 0, Values: vals}})
	require.NoError(t, err)
	vals[0] = 'x'
	assert.Equal(t, []byte{'a'}, got.Values())

	out := got.Values()
	out[0] = 'y'
	assert.Equal(t, byte('a'), got.At(0).Max)
}

func TestReport(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Report(&buf, GlobalResult{values: scenarioWant}))
	assert.Equal(t, "0: 98\n1: 100\n2: 0\n3: 90\n", buf.String())
}

func TestReportEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Report(&buf, GlobalResult{}))
	assert.Empty(t, buf.String())
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, assert.AnError }

func TestReportWriteError(t *testing.T) {
	err := Report(failingWriter{}, GlobalResult{values: []byte{1}})
	assert.ErrorIs(t, err, ErrIO)
	assert.ErrorIs(t, err, assert.AnError)
}
