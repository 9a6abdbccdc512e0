// Copyright (c) 2020-present Mattermost, Inc. All Rights Reserved.
// See LICENSE.txt for license information.
//

package testlib

import (
	"strings"
	"testing"

	log "github.com/sirupsen/logrus"
)

// MakeLogger returns a trace level logger whose entries show up in the
// output of tb, tagged with the test name.
func MakeLogger(tb testing.TB) log.FieldLogger {
	logger := log.New()
	logger.SetOutput(testWriter{tb})
	logger.SetLevel(log.TraceLevel)
	logger.SetFormatter(&log.TextFormatter{DisableTimestamp: true})

	return logger.WithField("test", tb.Name())
}

type testWriter struct {
	tb testing.TB
}

func (w testWriter) Write(b []byte) (int, error) {
	w.tb.Helper()
	w.tb.Log(strings.TrimRight(string(b), "\n"))
	return len(b), nil
}
