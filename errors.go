//
// Copyright 2026 Cristian Maglie. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

package transfer

import (
	"errors"
	"fmt"
	"os"
)

var (
	// ErrWorkerAborted is returned by Finish when the copy goroutine panicked
	// instead of completing. The returned error is an *AbortError.
	ErrWorkerAborted = errors.New("transfer worker aborted")

	// ErrAlreadyFinished is returned by every Finish call after the first.
	ErrAlreadyFinished = errors.New("transfer already finished")

	// ErrStalled is returned by Poll when no progress has been made for the
	// configured InactivityTimeout. It wraps os.ErrDeadlineExceeded.
	ErrStalled = fmt.Errorf("transfer stalled: %w", os.ErrDeadlineExceeded)
)

// AbortError reports a panic recovered from the copy goroutine.
type AbortError struct {
	// Value is the value passed to panic.
	Value any
	// Stack is the goroutine stack captured when the panic was recovered.
	Stack []byte
}

func (e *AbortError) Error() string {
	return fmt.Sprintf("%s: %v", ErrWorkerAborted, e.Value)
}

// Unwrap makes errors.Is(err, ErrWorkerAborted) hold, and exposes the panic
// value when it was itself an error.
func (e *AbortError) Unwrap() []error {
	if err, ok := e.Value.(error); ok {
		return []error{ErrWorkerAborted, err}
	}
	return []error{ErrWorkerAborted}
}
