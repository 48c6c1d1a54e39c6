//
// Copyright 2018-2026 Cristian Maglie. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

package transfer

import (
	"context"
	"fmt"
	"io"
	"math"
	"runtime/debug"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"

	"go.bug.st/transfer/internal/progress"
)

// DefaultPollInterval is used by Poll when a non-positive interval is given.
const DefaultPollInterval = time.Second

// Transfer monitors an asynchronous copy from an io.Reader to an io.Writer.
//
// The copy starts on its own goroutine as soon as the Transfer is created.
// The reader and writer belong to that goroutine until Finish returns them,
// they must not be used directly in the meantime. All the query methods are
// lock-free and may be called from any goroutine.
type Transfer[R io.Reader, W io.Writer] struct {
	start    time.Time
	clock    func() time.Time
	counter  *progressCounter
	done     chan struct{}
	finished atomic.Bool
	log      logrus.FieldLogger
	timeout  time.Duration

	// Outcome of the copy, written by the worker before done is closed.
	reader R
	writer W
	err    error
}

// New creates and starts a Transfer from reader to writer using the default
// configuration.
func New[R io.Reader, W io.Writer](reader R, writer W) *Transfer[R, W] {
	return NewWithConfig(reader, writer, GetDefaultConfig())
}

// NewWithConfig creates and starts a Transfer from reader to writer using the
// given configuration.
func NewWithConfig[R io.Reader, W io.Writer](reader R, writer W, config Config) *Transfer[R, W] {
	return start(reader, writer, config, time.Now)
}

func start[R io.Reader, W io.Writer](reader R, writer W, config Config, clock func() time.Time) *Transfer[R, W] {
	t := &Transfer[R, W]{
		start:   clock(),
		clock:   clock,
		counter: &progressCounter{},
		done:    make(chan struct{}),
		log:     config.logger(),
		timeout: config.InactivityTimeout,
		reader:  reader,
		writer:  writer,
	}
	bufSize := config.bufferSize()
	t.log.WithField("buffer_size", bufSize).Debug("Transfer started")
	go t.run(bufSize)
	return t
}

// run is the body of the transfer goroutine.
func (t *Transfer[R, W]) run(bufSize int) {
	defer func() {
		if r := recover(); r != nil {
			t.err = &AbortError{Value: r, Stack: debug.Stack()}
			t.log.WithField("panic", r).Error("Transfer worker aborted")
		}
		// Observers must always see completion, whatever the outcome.
		t.counter.markComplete()
		close(t.done)
	}()

	_, err := progress.Copy(t.writer, t.reader, bufSize, t.counter.publish)
	fields := logrus.Fields{
		"bytes":   t.counter.loadTransferred(),
		"elapsed": t.RunningTime(),
	}
	if err != nil {
		t.err = fmt.Errorf("copying data: %w", err)
		t.log.WithFields(fields).WithError(err).Debug("Transfer failed")
		return
	}
	t.log.WithFields(fields).Debug("Transfer completed")
}

// Finish blocks until the copy is over and returns the reader and the writer.
// If the copy failed the error is returned alongside them. If the copy is
// already over, Finish returns immediately.
//
// Finish consumes the Transfer: only the first call gets the outcome, any
// later call returns zero values and ErrAlreadyFinished.
func (t *Transfer[R, W]) Finish() (R, W, error) {
	if !t.finished.CompareAndSwap(false, true) {
		var r R
		var w W
		return r, w, ErrAlreadyFinished
	}
	<-t.done
	return t.reader, t.writer, t.err
}

// Done returns a channel that is closed when the copy is over, successfully
// or not.
func (t *Transfer[R, W]) Done() <-chan struct{} {
	return t.done
}

// IsComplete tests if the copy is over. Completion does not mean success,
// only Finish reports the outcome.
func (t *Transfer[R, W]) IsComplete() bool {
	return t.counter.loadComplete()
}

// Transferred returns the number of bytes written to the writer so far.
func (t *Transfer[R, W]) Transferred() uint64 {
	return t.counter.loadTransferred()
}

// RunningTime returns the time elapsed since the transfer started.
func (t *Transfer[R, W]) RunningTime() time.Duration {
	return t.clock().Sub(t.start)
}

// Speed returns the average speed of the transfer in bytes per second, or 0
// if no time has elapsed yet.
func (t *Transfer[R, W]) Speed() uint64 {
	secs := t.RunningTime().Seconds()
	if secs <= 0 {
		return 0
	}
	return uint64(math.Round(float64(t.Transferred()) / secs))
}

// Poll calls the poll function every interval with the number of bytes
// transferred, and once more when the copy is over. It returns nil when the
// copy is over, the cause of the context cancellation, or ErrStalled if the
// configured InactivityTimeout expires without progress. Progress is checked
// on every tick, so interval should be shorter than InactivityTimeout.
//
// Poll never interrupts the copy: Finish must still be called to get the
// outcome.
func (t *Transfer[R, W]) Poll(ctx context.Context, interval time.Duration, poll func(transferred uint64)) error {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	ctx, wd := newWatchdog(ctx, t.timeout)
	defer wd.Cancel()

	tick := time.NewTicker(interval)
	defer tick.Stop()

	last := t.Transferred()
	for {
		select {
		case <-tick.C:
			current := t.Transferred()
			if current != last {
				wd.Kick()
				last = current
			}
			if poll != nil {
				poll(current)
			}
		case <-t.done:
			if poll != nil {
				poll(t.Transferred())
			}
			return nil
		case <-ctx.Done():
			return context.Cause(ctx)
		}
	}
}
