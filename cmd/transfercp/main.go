//
// Copyright 2026 Cristian Maglie. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

// Command transfercp copies a file, URL or the standard input into a file or
// the standard output, showing live progress.
package main

import (
	"os"

	"go.bug.st/transfer/cmd/transfercp/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
