// Copyright 2017 The go-interpreter Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package memory

import (
	"io"

	"github.com/sirupsen/logrus"
)

var logger = logrus.New()

func init() {
	logger.SetOutput(io.Discard)
}

// SetDebugMode enables or disables package log output.
func SetDebugMode(dbg bool) {
	if dbg {
		logger.SetOutput(logrus.StandardLogger().Out)
		logger.SetLevel(logrus.DebugLevel)
	} else {
		logger.SetOutput(io.Discard)
	}
}
