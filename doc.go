//
// Copyright 2018-2026 Cristian Maglie. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

// Package transfer copies an io.Reader into an io.Writer on a background
// goroutine and exposes lock-free progress queries while the copy runs.
//
//	t := transfer.NewSized(src, dst, size)
//	for !t.IsComplete() {
//	    time.Sleep(time.Second)
//	    fmt.Printf("%.1f%% done\n", t.FractionTransferred()*100)
//	}
//	src, dst, err := t.Finish()
//
// Human readable formatting of a transfer lives in the display package.
package transfer
