//
// Copyright 2018-2026 Cristian Maglie. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

package transfer

import (
	"io"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// DefaultBufferSize is the copy buffer size used when Config.BufferSize is 0.
const DefaultBufferSize = 32 * 1024

// Config contains the configuration for a transfer
type Config struct {
	// BufferSize is the size of the copy buffer, which is also the largest
	// chunk published to the progress counter. If set to 0, DefaultBufferSize
	// is used.
	BufferSize int
	// InactivityTimeout is the duration after which, if no data is copied,
	// Poll stops with ErrStalled. The copy itself keeps going.
	// If set to 0, no timeout is applied.
	InactivityTimeout time.Duration
	// Logger receives debug messages about the transfer lifecycle.
	// If nil, logging is disabled.
	Logger logrus.FieldLogger
}

var defaultConfig Config = Config{}
var defaultConfigLock sync.Mutex

// SetDefaultConfig sets the configuration that will be used by the New and
// NewSized functions.
func SetDefaultConfig(newConfig Config) {
	defaultConfigLock.Lock()
	defer defaultConfigLock.Unlock()
	defaultConfig = newConfig
}

// GetDefaultConfig returns a copy of the default configuration. The default
// configuration can be changed using the SetDefaultConfig function.
func GetDefaultConfig() Config {
	defaultConfigLock.Lock()
	defer defaultConfigLock.Unlock()

	// deep copy struct
	return defaultConfig
}

func (c Config) bufferSize() int {
	if c.BufferSize <= 0 {
		return DefaultBufferSize
	}
	return c.BufferSize
}

func (c Config) logger() logrus.FieldLogger {
	if c.Logger != nil {
		return c.Logger
	}
	return discardLogger
}

// discardLogger is shared by all the transfers configured without a Logger.
var discardLogger = &logrus.Logger{
	Out:       io.Discard,
	Formatter: new(logrus.TextFormatter),
	Hooks:     make(logrus.LevelHooks),
	Level:     logrus.PanicLevel,
}
