//
// Copyright 2026 Cristian Maglie. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

// Package display renders the state of a transfer in human readable form.
//
// It only relies on the query methods of a transfer, so it works with
// *transfer.Transfer and *transfer.SizedTransfer alike.
package display

import (
	"fmt"
	"strings"
	"time"

	"github.com/docker/go-units"
	"github.com/dustin/go-humanize"
)

// Units selects how byte quantities are formatted.
type Units int

const (
	// Binary uses IEC units (KiB, MiB, ...).
	Binary Units = iota
	// SI uses decimal units (kB, MB, ...).
	SI
)

// ParseUnits converts "binary" or "si" (case insensitive) to Units.
func ParseUnits(s string) (Units, error) {
	switch strings.ToLower(s) {
	case "binary", "iec":
		return Binary, nil
	case "si", "decimal":
		return SI, nil
	default:
		return Binary, fmt.Errorf("invalid units %q: must be one of binary, si", s)
	}
}

func (u Units) String() string {
	if u == SI {
		return "si"
	}
	return "binary"
}

// Bytes formats n bytes.
func (u Units) Bytes(n uint64) string {
	if u == SI {
		return humanize.Bytes(n)
	}
	return humanize.IBytes(n)
}

// Progress is the part of a transfer that Transfer reads.
type Progress interface {
	Transferred() uint64
	Speed() uint64
}

// SizedProgress is the part of a sized transfer that SizedTransfer reads.
type SizedProgress interface {
	Progress
	Size() uint64
	FractionTransferred() float64
	ETA() (time.Duration, bool)
}

// Transfer formats a transfer as "<transferred> (<speed>/s)".
func Transfer(p Progress, u Units) string {
	return fmt.Sprintf("%s (%s/s)", u.Bytes(p.Transferred()), u.Bytes(p.Speed()))
}

// SizedTransfer formats a sized transfer as
// "<percent> % (<transferred> of <size>, <speed>/s, ETA <eta>)".
func SizedTransfer(p SizedProgress, u Units) string {
	return fmt.Sprintf("%.1f %% (%s of %s, %s/s, ETA %s)",
		p.FractionTransferred()*100,
		u.Bytes(p.Transferred()),
		u.Bytes(p.Size()),
		u.Bytes(p.Speed()),
		ETA(p))
}

// ETA formats the estimated time left, or "unknown" when it can't be
// computed yet.
func ETA(p SizedProgress) string {
	eta, ok := p.ETA()
	if !ok {
		return "unknown"
	}
	return units.HumanDuration(eta)
}
