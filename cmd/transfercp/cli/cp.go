//
// Copyright 2026 Cristian Maglie. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/docker/go-units"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"go.bug.st/transfer"
	"go.bug.st/transfer/display"
	"go.bug.st/transfer/internal/source"
)

// closeGracePeriod bounds the wait for a transfer after its source was
// closed to stop it. Some sources (a terminal on standard input) don't
// unblock a pending read when closed.
var closeGracePeriod = 2 * time.Second

// copyKeys are the configuration keys used by the cp command.
var copyKeys = []string{"buffer-size", "inactivity-timeout", "interval", "progress", "size", "units"}

var cpCmd = &cobra.Command{
	Use:   "cp SRC [DST]",
	Short: "Copy SRC to DST showing progress",
	Long: `Copy SRC to DST showing progress on standard error.

SRC can be a local file, an http(s) URL or "-" for standard input.
DST is a local file, or standard output when omitted or "-".

When the total size is known, from the source or from --size, the
completion percentage and the estimated time left are displayed too.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runCopy,
}

func init() {
	setCopyDefaults()

	f := cpCmd.Flags()
	f.String("buffer-size", "32KiB", "Copy buffer size")
	f.Duration("interval", time.Second, "Progress refresh interval")
	f.Duration("inactivity-timeout", 0, "Stop when no data is copied for this long (0 disables)")
	f.String("progress", "auto", "Progress display: auto, tty, plain or none")
	f.String("size", "", "Declared total size (e.g. 10MiB), overrides the detected size")
	f.String("units", "binary", "Byte units: binary or si")
	for _, key := range copyKeys {
		_ = viper.BindPFlag(key, f.Lookup(key))
	}
	rootCmd.AddCommand(cpCmd)
}

func setCopyDefaults() {
	viper.SetDefault("buffer-size", "32KiB")
	viper.SetDefault("inactivity-timeout", "0s")
	viper.SetDefault("interval", "1s")
	viper.SetDefault("progress", "auto")
	viper.SetDefault("size", "")
	viper.SetDefault("units", "binary")
}

type copyOptions struct {
	bufferSize        int
	inactivityTimeout time.Duration
	interval          time.Duration
	progress          string
	size              int64
	units             display.Units
}

func loadCopyOptions() (copyOptions, error) {
	opts := copyOptions{
		inactivityTimeout: viper.GetDuration("inactivity-timeout"),
		interval:          viper.GetDuration("interval"),
		size:              source.UnknownSize,
	}

	bufferSize, err := units.RAMInBytes(viper.GetString("buffer-size"))
	if err != nil {
		return opts, fmt.Errorf("invalid buffer-size: %w", err)
	}
	if bufferSize <= 0 {
		return opts, fmt.Errorf("invalid buffer-size: must be positive")
	}
	opts.bufferSize = int(bufferSize)

	if s := viper.GetString("size"); s != "" {
		size, err := humanize.ParseBytes(s)
		if err != nil {
			return opts, fmt.Errorf("invalid size: %w", err)
		}
		opts.size = int64(size)
	}

	if opts.units, err = display.ParseUnits(viper.GetString("units")); err != nil {
		return opts, err
	}

	if opts.progress, err = progressMode(viper.GetString("progress")); err != nil {
		return opts, err
	}
	return opts, nil
}

// monitor is what the cp command needs from both kinds of transfer.
type monitor interface {
	Poll(ctx context.Context, interval time.Duration, poll func(transferred uint64)) error
	Transferred() uint64
	RunningTime() time.Duration
	Speed() uint64
	Done() <-chan struct{}
	Finish() (io.ReadCloser, io.WriteCloser, error)
}

func runCopy(cmd *cobra.Command, args []string) error {
	opts, err := loadCopyOptions()
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	src, srcSize, err := source.Open(ctx, args[0], source.Config{})
	if err != nil {
		return err
	}
	dst, err := openSink(args[1:])
	if err != nil {
		_ = src.Close()
		return err
	}

	size := srcSize
	if opts.size != source.UnknownSize {
		size = opts.size
	}

	config := transfer.Config{
		BufferSize:        opts.bufferSize,
		InactivityTimeout: opts.inactivityTimeout,
		Logger:            newLogger(),
	}
	var m monitor
	var status func() string
	if size != source.UnknownSize {
		t := transfer.NewSizedWithConfig(src, dst, uint64(size), config)
		m = t
		status = func() string { return display.SizedTransfer(t, opts.units) }
	} else {
		t := transfer.NewWithConfig(src, dst, config)
		m = t
		status = func() string { return display.Transfer(t, opts.units) }
	}

	out := cmd.ErrOrStderr()
	rep := newReporter(opts.progress, size, status, out)
	pollErr := m.Poll(ctx, opts.interval, rep.update)
	if pollErr != nil {
		// A transfer can't be canceled: make its source fail instead.
		_ = src.Close()
		select {
		case <-m.Done():
		case <-time.After(closeGracePeriod):
			// The process is about to exit, leave the copy behind.
			rep.finish()
			return pollErr
		}
	}
	r, w, err := m.Finish()
	rep.finish()
	_ = r.Close()
	closeErr := w.Close()

	switch {
	case pollErr != nil:
		return pollErr
	case err != nil:
		return err
	case closeErr != nil:
		return fmt.Errorf("closing output: %w", closeErr)
	}

	if opts.progress != progressNone {
		fmt.Fprintf(out, "Copied %s in %s (%s/s)\n",
			opts.units.Bytes(m.Transferred()),
			m.RunningTime().Round(time.Millisecond),
			opts.units.Bytes(m.Speed()))
	}
	return nil
}

// openSink opens the destination named in args, standard output if none.
func openSink(args []string) (io.WriteCloser, error) {
	if len(args) == 0 || args[0] == "-" {
		return nopWriteCloser{os.Stdout}, nil
	}
	f, err := os.Create(args[0])
	if err != nil {
		return nil, fmt.Errorf("opening %s for writing: %w", args[0], err)
	}
	return f, nil
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }
