//
// Copyright 2026 Cristian Maglie. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

// Package progress provides an io.Writer that reports every chunk written
// through it.
package progress

import "io"

// Callback receives the number of bytes accepted by a single Write.
type Callback func(n uint64)

// Writer wraps an io.Writer and reports each chunk written.
// Writer intentionally does not implement io.ReaderFrom, so io.Copy and
// io.CopyBuffer always move data in buffer sized chunks through Write.
type Writer struct {
	w        io.Writer
	callback Callback
}

// NewWriter creates a progress-reporting writer. A nil callback is allowed.
func NewWriter(w io.Writer, callback Callback) *Writer {
	return &Writer{
		w:        w,
		callback: callback,
	}
}

// Write implements io.Writer. The callback is invoked with the bytes the
// underlying writer accepted, even when it also returned an error.
func (pw *Writer) Write(p []byte) (int, error) {
	n, err := pw.w.Write(p)
	if n > 0 && pw.callback != nil {
		pw.callback(uint64(n))
	}
	return n, err
}

// Copy copies from src to dst through a Writer using a buffer of bufSize
// bytes, reporting each chunk to callback. It returns the number of bytes
// copied and the first error encountered, like io.CopyBuffer.
func Copy(dst io.Writer, src io.Reader, bufSize int, callback Callback) (int64, error) {
	buf := make([]byte, bufSize)
	return io.CopyBuffer(NewWriter(dst, callback), onlyReader{src}, buf)
}

// onlyReader hides io.WriterTo so the copy loop stays in our buffer.
type onlyReader struct {
	io.Reader
}
