package store

import (
	"bytes"
	"encoding/json"
	"errors"

	"fjacquet/pfma/internal/kvstore"
	"fjacquet/pfma/internal/logging"
	"fjacquet/pfma/internal/parsererror"
)

// Reasons attached to fallback warnings.
const (
	ReasonUnreadable = "unreadable"
	ReasonNull       = "null"
	ReasonMalformed  = "malformed"
)

// loadDocument reads the JSON array stored under key. It reports false when
// the key is absent or the stored value cannot be used, in which case the
// caller falls back to its default. Bad data is logged, never returned.
func loadDocument[T any](kv kvstore.Store, key string, logger logging.Logger) ([]T, bool) {
	log := logger.WithField(logging.FieldKey, key)

	raw, err := kv.Get(key)
	if errors.Is(err, kvstore.ErrNotFound) {
		log.Debug("No stored document, using default")
		return nil, false
	}
	if err != nil {
		log.WithError(err).Warn("Could not read stored document, using default",
			logging.F(logging.FieldReason, ReasonUnreadable))
		return nil, false
	}

	trimmed := bytes.TrimSpace(raw)
	if bytes.Equal(trimmed, []byte("null")) {
		log.Warn("Stored document is null, using default",
			logging.F(logging.FieldReason, ReasonNull))
		return nil, false
	}

	var items []T
	if err := json.Unmarshal(trimmed, &items); err != nil {
		perr := &parsererror.ParseError{Source: key, Value: string(raw), Err: err}
		log.WithError(perr).Warn("Could not parse stored document, using default",
			logging.F(logging.FieldReason, ReasonMalformed))
		return nil, false
	}
	if items == nil {
		items = []T{}
	}
	return items, true
}

func encodeDocument[T any](items []T) ([]byte, error) {
	if items == nil {
		items = []T{}
	}
	return json.Marshal(items)
}
