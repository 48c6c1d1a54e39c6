//
// Copyright 2018-2026 Cristian Maglie. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

package transfer

import (
	"context"
	"time"
)

// watchdog cancels its context with ErrStalled unless it is kicked at
// least once every timeout.
type watchdog struct {
	cancel  context.CancelCauseFunc
	timer   *time.Timer
	timeout time.Duration
}

func newWatchdog(parent context.Context, timeout time.Duration) (context.Context, *watchdog) {
	ctx, cancel := context.WithCancelCause(parent)
	var timer *time.Timer
	if timeout > 0 {
		timer = time.AfterFunc(timeout, func() {
			cancel(ErrStalled)
		})
	}
	return ctx, &watchdog{
		cancel:  cancel,
		timer:   timer,
		timeout: timeout,
	}
}

// Kick postpones the stall deadline by another timeout.
func (wd *watchdog) Kick() {
	if wd.timeout > 0 {
		wd.timer.Reset(wd.timeout)
	}
}

// Cancel stops the timer and releases the watchdog context.
func (wd *watchdog) Cancel() {
	if wd.timeout > 0 {
		wd.timer.Stop()
	}
	wd.cancel(nil)
}
