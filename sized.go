//
// Copyright 2026 Cristian Maglie. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

package transfer

import (
	"io"
	"math"
	"time"
)

// SizedTransfer is a Transfer whose total size is known in advance. It adds
// completion metrics on top of the embedded Transfer.
//
// The size is trusted as given: if the stream turns out to be longer,
// Remaining saturates at 0 and FractionTransferred goes above 1.
type SizedTransfer[R io.Reader, W io.Writer] struct {
	*Transfer[R, W]
	size uint64
}

// NewSized creates and starts a SizedTransfer of size bytes from reader to
// writer using the default configuration.
func NewSized[R io.Reader, W io.Writer](reader R, writer W, size uint64) *SizedTransfer[R, W] {
	return NewSizedWithConfig(reader, writer, size, GetDefaultConfig())
}

// NewSizedWithConfig creates and starts a SizedTransfer of size bytes from
// reader to writer using the given configuration.
func NewSizedWithConfig[R io.Reader, W io.Writer](reader R, writer W, size uint64, config Config) *SizedTransfer[R, W] {
	return &SizedTransfer[R, W]{
		Transfer: NewWithConfig(reader, writer, config),
		size:     size,
	}
}

// Size returns the total size of the transfer as declared at creation.
func (t *SizedTransfer[R, W]) Size() uint64 {
	return t.size
}

// Remaining returns the number of bytes still to be transferred, 0 if more
// than Size bytes were already transferred.
func (t *SizedTransfer[R, W]) Remaining() uint64 {
	return t.remaining(t.Transferred())
}

func (t *SizedTransfer[R, W]) remaining(transferred uint64) uint64 {
	if transferred >= t.size {
		return 0
	}
	return t.size - transferred
}

// FractionTransferred returns the ratio between transferred bytes and Size.
// For an empty transfer (Size 0) it returns 1 once the copy is over and 0
// before.
func (t *SizedTransfer[R, W]) FractionTransferred() float64 {
	if t.size == 0 {
		if t.IsComplete() {
			return 1
		}
		return 0
	}
	return float64(t.Transferred()) / float64(t.size)
}

// ETA returns the approximate time left until the transfer completes, by
// extrapolating the average speed since the start. The second return value
// is false when nothing has been transferred yet and no speed is known.
// Estimates beyond the range of time.Duration are capped to its maximum.
func (t *SizedTransfer[R, W]) ETA() (time.Duration, bool) {
	transferred := t.Transferred()
	if transferred == 0 {
		return 0, false
	}
	elapsed := float64(t.RunningTime())
	remaining := float64(t.remaining(transferred))
	eta := elapsed / float64(transferred) * remaining
	if eta >= math.MaxInt64 {
		return time.Duration(math.MaxInt64), true
	}
	return time.Duration(eta), true
}
