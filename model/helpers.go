package model

import (
	"bytes"
	"encoding/json"

	log "github.com/sirupsen/logrus"
)

// newDefaultLogger is used until SetLogger is called. It only reports
// warnings and errors.
func newDefaultLogger() log.FieldLogger {
	logger := log.New()
	logger.SetLevel(log.WarnLevel)
	return logger
}

// isJSON reports whether b holds a single JSON value.
func isJSON(b []byte) bool {
	b = bytes.TrimSpace(b)
	if len(b) == 0 {
		return false
	}
	return json.Valid(b)
}
