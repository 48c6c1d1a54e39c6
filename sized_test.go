//
// Copyright 2026 Cristian Maglie. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

package transfer

import (
	"bytes"
	"io"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func startSized[R io.Reader, W io.Writer](r R, w W, size uint64, clock func() time.Time) *SizedTransfer[R, W] {
	return &SizedTransfer[R, W]{
		Transfer: start(r, w, Config{}, clock),
		size:     size,
	}
}

func TestSizedNothingTransferredYet(t *testing.T) {
	t.Parallel()

	pr, pw := io.Pipe()
	tr := NewSized(pr, &bytes.Buffer{}, 1024)

	require.Equal(t, uint64(1024), tr.Size())
	require.Equal(t, uint64(1024), tr.Remaining())
	require.Equal(t, 0.0, tr.FractionTransferred())
	_, ok := tr.ETA()
	require.False(t, ok)

	_, err := pw.Write(make([]byte, 1024))
	require.NoError(t, err)
	require.NoError(t, pw.Close())
	_, _, err = tr.Finish()
	require.NoError(t, err)

	require.Equal(t, uint64(1024), tr.Transferred())
	require.Equal(t, 1.0, tr.FractionTransferred())
	require.Zero(t, tr.Remaining())
	eta, ok := tr.ETA()
	require.True(t, ok)
	require.Zero(t, eta)
}

func TestSizedETA(t *testing.T) {
	t.Parallel()

	clock := newFakeClock()
	pr, pw := io.Pipe()
	tr := startSized(pr, io.Discard, 1000, clock.Now)

	_, err := pw.Write(make([]byte, 250))
	require.NoError(t, err)
	require.Eventually(t, func() bool { return tr.Transferred() == 250 }, 5*time.Second, time.Millisecond)

	clock.Advance(time.Second)
	eta, ok := tr.ETA()
	require.True(t, ok)
	require.Equal(t, 3*time.Second, eta)
	require.Equal(t, 0.25, tr.FractionTransferred())
	require.Equal(t, uint64(750), tr.Remaining())
	require.Equal(t, uint64(250), tr.Speed())

	require.NoError(t, pw.Close())
	_, _, err = tr.Finish()
	require.NoError(t, err)
}

func TestSizedStreamLongerThanDeclared(t *testing.T) {
	t.Parallel()

	tr := NewSized(bytes.NewReader(make([]byte, 100)), io.Discard, 10)
	_, _, err := tr.Finish()
	require.NoError(t, err)

	require.Equal(t, uint64(100), tr.Transferred())
	require.Zero(t, tr.Remaining())
	require.Equal(t, 10.0, tr.FractionTransferred())
	eta, ok := tr.ETA()
	require.True(t, ok)
	require.Zero(t, eta)
}

func TestSizedZeroSize(t *testing.T) {
	t.Parallel()

	pr, pw := io.Pipe()
	tr := NewSized(pr, io.Discard, 0)

	fraction := tr.FractionTransferred()
	require.False(t, math.IsNaN(fraction) || math.IsInf(fraction, 0))
	require.Equal(t, 0.0, fraction)

	require.NoError(t, pw.Close())
	_, _, err := tr.Finish()
	require.NoError(t, err)
	require.Equal(t, 1.0, tr.FractionTransferred())
	require.Zero(t, tr.Remaining())
}

func TestSizedDelegatesToTransfer(t *testing.T) {
	t.Parallel()

	src := bytes.NewReader([]byte("hello"))
	dst := &chunkRecorder{}
	tr := NewSizedWithConfig(src, dst, 5, Config{BufferSize: 2})

	r, w, err := tr.Finish()
	require.NoError(t, err)
	require.Same(t, src, r)
	require.Same(t, dst, w)
	require.Equal(t, []int{2, 2, 1}, w.chunks)
	require.True(t, tr.IsComplete())

	_, _, err = tr.Finish()
	require.ErrorIs(t, err, ErrAlreadyFinished)
}

func TestSizedETALargeSize(t *testing.T) {
	t.Parallel()

	clock := newFakeClock()
	pr, pw := io.Pipe()
	tr := startSized(pr, io.Discard, 100<<30, clock.Now)

	_, err := pw.Write([]byte{0})
	require.NoError(t, err)
	require.Eventually(t, func() bool { return tr.Transferred() == 1 }, 5*time.Second, time.Millisecond)

	// 30s per byte over 100 GiB is far beyond the range of time.Duration.
	clock.Advance(30 * time.Second)
	eta, ok := tr.ETA()
	require.True(t, ok)
	require.Equal(t, time.Duration(math.MaxInt64), eta)

	// A large but representable estimate is not capped.
	clock.Advance(-30*time.Second + time.Nanosecond)
	eta, ok = tr.ETA()
	require.True(t, ok)
	require.Positive(t, eta)
	require.Less(t, eta, time.Duration(math.MaxInt64))

	require.NoError(t, pw.Close())
	_, _, err = tr.Finish()
	require.NoError(t, err)
}

func TestSizedETANeverNegative(t *testing.T) {
	t.Parallel()

	clock := newFakeClock()
	pr, pw := io.Pipe()
	tr := startSized(pr, io.Discard, math.MaxUint64, clock.Now)

	_, err := pw.Write(make([]byte, 10))
	require.NoError(t, err)
	require.Eventually(t, func() bool { return tr.Transferred() == 10 }, 5*time.Second, time.Millisecond)

	for _, step := range []time.Duration{time.Nanosecond, time.Millisecond, time.Second, time.Hour, 24 * time.Hour} {
		clock.Advance(step)
		eta, ok := tr.ETA()
		require.True(t, ok)
		require.GreaterOrEqual(t, eta, time.Duration(0), "after advancing %s", step)
	}

	require.NoError(t, pw.Close())
	_, _, err = tr.Finish()
	require.NoError(t, err)
}
