//
// Copyright 2026 Cristian Maglie. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

package cli

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/schollz/progressbar/v3"
	"golang.org/x/term"
)

// Progress display modes.
const (
	progressAuto  = "auto"
	progressTTY   = "tty"
	progressPlain = "plain"
	progressNone  = "none"
)

// progressMode validates the configured progress mode.
func progressMode(mode string) (string, error) {
	switch mode {
	case progressAuto, progressTTY, progressPlain, progressNone:
		return mode, nil
	default:
		return "", fmt.Errorf("invalid progress mode %q: must be one of auto, tty, plain, none", mode)
	}
}

// shouldShowBar returns true if a progress bar should be drawn instead of
// plain status lines.
func shouldShowBar(mode string) bool {
	switch mode {
	case progressTTY:
		return true
	case progressAuto:
		return term.IsTerminal(int(os.Stderr.Fd()))
	default:
		return false
	}
}

// reporter renders transfer progress either as a bar or as one status line
// per update.
type reporter struct {
	bar    *progressbar.ProgressBar
	out    io.Writer
	status func() string
	quiet  bool
}

func newReporter(mode string, size int64, status func() string, out io.Writer) *reporter {
	r := &reporter{out: out, status: status, quiet: mode == progressNone}
	if !r.quiet && shouldShowBar(mode) {
		// A negative size turns the bar into a spinner.
		r.bar = newProgressBar(size, out)
	}
	return r
}

// newProgressBar creates a new progress bar for byte-based operations.
func newProgressBar(total int64, out io.Writer) *progressbar.ProgressBar {
	return progressbar.NewOptions64(
		total,
		progressbar.OptionSetDescription("Copying"),
		progressbar.OptionSetWriter(out),
		progressbar.OptionShowBytes(true),
		progressbar.OptionSetWidth(40),
		progressbar.OptionThrottle(100*time.Millisecond),
		progressbar.OptionShowCount(),
		progressbar.OptionSetRenderBlankState(true),
		progressbar.OptionUseANSICodes(true),
	)
}

func (r *reporter) update(transferred uint64) {
	switch {
	case r.quiet:
	case r.bar != nil:
		//nolint:errcheck // progress bar errors are not critical
		r.bar.Set64(int64(transferred))
	default:
		fmt.Fprintln(r.out, r.status())
	}
}

func (r *reporter) finish() {
	if r.bar != nil {
		//nolint:errcheck // progress bar errors are not critical
		r.bar.Finish()
		fmt.Fprintln(r.out)
	}
}
