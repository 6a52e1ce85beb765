package linemax

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var strategies = []Strategy{StrategyWindow, StrategyIndexed}

func sourcesFor(data []byte) map[string]Source {
	return map[string]Source{
		"bytes":    NewBytesSource(data),
		"streamed": streamed(data),
	}
}

func TestRunScenario(t *testing.T) {
	for _, strategy := range strategies {
		for workers := 1; workers <= 12; workers++ {
			for name, src := range sourcesFor([]byte(scenario)) {
				t.Run(fmt.Sprintf("%s/%s/w%d", strategy, name, workers), func(t *testing.T) {
					opts := testOptions(workers)
					opts.Strategy = strategy
					res, st, err := Run(context.Background(), src, opts)
					require.NoError(t, err)
					assert.Equal(t, scenarioWant, res.Values())
					assert.Equal(t, uint64(4), st.Lines)
					assert.Equal(t, uint64(len(scenario)), st.Bytes)
					assert.Len(t, st.PerWorker, workers)
					assert.Equal(t, strategy, st.Strategy)
				})
			}
		}
	}
}

// TestRunMatchesReference is the main property: for random inputs and any
// worker count the result equals the single-pass reference scan, the line
// count equals the reference count and nothing depends on W.
func TestRunMatchesReference(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	for iter := 0; iter < 150; iter++ {
		data := randomInput(r, r.Intn(300))
		want := refScan(data)
		require.Len(t, want, refLineCount(data))

		for _, strategy := range strategies {
			for workers := 1; workers <= 9; workers++ {
				for name, src := range sourcesFor(data) {
					opts := testOptions(workers)
					opts.Strategy = strategy
					res, st, err := Run(context.Background(), src, opts)
					require.NoError(t, err)
					require.Equal(t, want, res.Values(), "iter=%d %s/%s workers=%d", iter, strategy, name, workers)
					require.Equal(t, uint64(len(want)), st.Lines)

					sum := 0
					for _, n := range st.PerWorker {
						sum += n
					}
					require.Equal(t, len(want), sum)
				}
			}
		}
	}
}

// TestRunDivisibility covers sizes that divide evenly by W and sizes that do
// not, with lines of length one so every chunk edge hits a boundary.
func TestRunDivisibility(t *testing.T) {
	data := []byte(strings.Repeat("a\n", 6)) // 12 bytes
	for _, workers := range []int{1, 2, 3, 4, 5, 6, 7, 12, 13} {
		res, _, err := Run(context.Background(), NewBytesSource(data), testOptions(workers))
		require.NoError(t, err)
		assert.Equal(t, bytes.Repeat([]byte{'a'}, 6), res.Values(), "workers=%d (12%%%d=%d)", workers, workers, 12%workers)
	}
}

func TestRunEmptySource(t *testing.T) {
	for _, strategy := range strategies {
		opts := testOptions(4)
		opts.Strategy = strategy
		res, st, err := Run(context.Background(), NewBytesSource(nil), opts)
		require.NoError(t, err)
		assert.Equal(t, 0, res.Len())
		assert.Equal(t, uint64(0), st.Lines)
	}
}

func TestRunUnterminatedLastLine(t *testing.T) {
	data := []byte("first\nsecond\nlast")
	res, _, err := Run(context.Background(), NewBytesSource(data), testOptions(3))
	require.NoError(t, err)
	require.Equal(t, 3, res.Len())
	assert.Equal(t, Line{Index: 2, Max: 't'}, res.At(2))
}

func TestRunInvalidOptions(t *testing.T) {
	opts := testOptions(0)
	_, _, err := Run(context.Background(), NewBytesSource([]byte("x")), opts)
	assert.ErrorIs(t, err, ErrConfig)

	opts = testOptions(2)
	opts.Strategy = "round-robin"
	_, _, err = Run(context.Background(), NewBytesSource([]byte("x")), opts)
	assert.ErrorIs(t, err, ErrConfig)
}

// brokenReaderAt fails every read at or beyond failAt.
type brokenReaderAt struct {
	data   []byte
	failAt int64
}

var errDisk = errors.New("disk on fire")

func (b brokenReaderAt) ReadAt(p []byte, off int64) (int, error) {
	if off+int64(len(p)) > b.failAt {
		return 0, errDisk
	}
	n := copy(p, b.data[off:])
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}

func TestRunFailFast(t *testing.T) {
	data := []byte(strings.Repeat("line\n", 40))

	// a single worker does no alignment reads; the scan itself fails
	src := NewReaderAtSource(brokenReaderAt{data: data, failAt: 100}, int64(len(data)))
	_, _, err := Run(context.Background(), src, testOptions(1))
	assert.ErrorIs(t, err, ErrIO)
	assert.ErrorIs(t, err, errDisk)

	// several workers: the last windows are unreadable, the whole run fails
	// and no partial result is returned
	for _, strategy := range strategies {
		opts := testOptions(4)
		opts.Strategy = strategy
		res, _, err := Run(context.Background(), src, opts)
		require.Error(t, err, strategy)
		assert.ErrorIs(t, err, errDisk)
		assert.Equal(t, 0, res.Len())
	}
}

func TestRunResourceLimit(t *testing.T) {
	data := []byte(strings.Repeat("x\n", 10))
	opts := testOptions(2)
	opts.MaxLinesPerWorker = 3
	_, _, err := Run(context.Background(), NewBytesSource(data), opts)
	assert.ErrorIs(t, err, ErrResource)
	assert.Equal(t, ExitResource, ExitCode(err))

	// worker 0 owns [0,12), six lines
	opts.MaxLinesPerWorker = 6
	res, _, err := Run(context.Background(), NewBytesSource(data), opts)
	require.NoError(t, err)
	assert.Equal(t, 10, res.Len())
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, _, err := Run(ctx, NewBytesSource([]byte("a\nb\n")), testOptions(1))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestPlanOwnerCoversEveryByte(t *testing.T) {
	r := rand.New(rand.NewSource(3))
	for iter := 0; iter < 50; iter++ {
		data := randomInput(r, 1+r.Intn(80))
		workers := 1 + r.Intn(8)
		src := NewBytesSource(data)

		for _, build := range []func(context.Context, Source, int) (*Plan, error){NewPlan, NewIndexedPlan} {
			plan, err := build(context.Background(), src, workers)
			require.NoError(t, err)
			for off := int64(0); off < plan.Size; off++ {
				w, err := plan.Owner(off)
				require.NoError(t, err)
				require.True(t, plan.Windows[w].Range.Contains(off))
			}
			_, err = plan.Owner(plan.Size)
			assert.Error(t, err)
			_, err = plan.Owner(-1)
			assert.Error(t, err)
		}
	}
}

func TestIndexedPlanSplitsLines(t *testing.T) {
	plan, err := NewIndexedPlan(context.Background(), NewBytesSource([]byte(scenario)), 3)
	require.NoError(t, err)
	assert.Equal(t, StrategyIndexed, plan.Strategy)
	assert.Equal(t, []ByteRange{{0, 2}, {2, 4}, {4, 4}}, []ByteRange{
		plan.LineChunks[0].Range, plan.LineChunks[1].Range, plan.LineChunks[2].Range,
	})
	assert.Equal(t, []ByteRange{{0, 7}, {7, 9}, {9, 9}}, windowRanges(plan.Windows))
}

func TestLineStartsStreamed(t *testing.T) {
	starts, err := lineStarts(context.Background(), streamed([]byte(scenario)), newBlockPool(2))
	require.NoError(t, err)
	assert.Equal(t, []int64{0, 3, 7, 8}, starts)

	starts, err = lineStarts(context.Background(), NewBytesSource([]byte("a\n")), newBlockPool(2))
	require.NoError(t, err)
	assert.Equal(t, []int64{0}, starts)
}
