// Copyright (c) 2026 The basealt-test-task Authors.
// SPDX-License-Identifier: Apache-2.0

package feed

import (
	"fmt"

	"github.com/apex/log"
)

// leveledLogger routes retryablehttp's logging through apex/log. Its own
// Info chatter is demoted to debug.
type leveledLogger struct{}

func (leveledLogger) Error(msg string, kv ...interface{}) {
	log.WithFields(fields(kv)).Error(msg)
}

func (leveledLogger) Warn(msg string, kv ...interface{}) {
	log.WithFields(fields(kv)).Warn(msg)
}

func (leveledLogger) Info(msg string, kv ...interface{}) {
	log.WithFields(fields(kv)).Debug(msg)
}

func (leveledLogger) Debug(msg string, kv ...interface{}) {
	log.WithFields(fields(kv)).Debug(msg)
}

func fields(kv []interface{}) log.Fields {
	f := log.Fields{}
	for i := 0; i+1 < len(kv); i += 2 {
		f[fmt.Sprint(kv[i])] = kv[i+1]
	}
	if len(kv)%2 == 1 {
		f["extra"] = kv[len(kv)-1]
	}
	return f
}
