//
// Copyright 2026 Cristian Maglie. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

package transfer

import "sync/atomic"

// progressCounter is written by the transfer goroutine only and read by any
// number of observers.
//
// All sync/atomic operations are sequentially consistent, which is stronger
// than a release/acquire pair: an observer loading transferred == T sees
// every write the worker made before publishing T, and an observer seeing
// complete == true also sees the final transferred value, because
// markComplete is always called after the last publish.
type progressCounter struct {
	transferred atomic.Uint64
	complete    atomic.Bool
}

// publish adds the size of a copied chunk.
func (c *progressCounter) publish(delta uint64) {
	c.transferred.Add(delta)
}

func (c *progressCounter) markComplete() {
	c.complete.Store(true)
}

func (c *progressCounter) loadTransferred() uint64 {
	return c.transferred.Load()
}

func (c *progressCounter) loadComplete() bool {
	return c.complete.Load()
}
