//
// Copyright 2026 Cristian Maglie. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

package main_test

import (
	"os"
	"testing"

	"github.com/rogpeppe/go-internal/testscript"

	"go.bug.st/transfer/cmd/transfercp/cli"
)

func TestMain(m *testing.M) {
	os.Exit(testscript.RunMain(m, map[string]func() int{
		"transfercp": func() int {
			if err := cli.Execute(); err != nil {
				return 1
			}
			return 0
		},
	}))
}

func TestCLI(t *testing.T) {
	testscript.Run(t, testscript.Params{
		Dir: "testdata/script",
		Setup: func(env *testscript.Env) error {
			// testscript sets HOME=/no-home
			env.Setenv("XDG_CONFIG_HOME", env.WorkDir+"/.config")
			return nil
		},
	})
}
