package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// SchemaVersion is written into every document envelope. Documents written by
// the browser app carry no envelope and are read as version 0.
const SchemaVersion = 1

// envelope wraps every stored document so future format changes can be
// migrated on read.
type envelope struct {
	Version int `json:"version"`
	Data    any `json:"data"`
}

// ReadError describes a stored document that could not be decoded.
// The store never returns it to callers; it replaces the document with its
// default and logs the error.
type ReadError struct {
	Version int
	Err     error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("unreadable document (version %d): %v", e.Version, e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }

var errNullDocument = errors.New("document is null")

func encode(value any) ([]byte, error) {
	return json.Marshal(envelope{Version: SchemaVersion, Data: value})
}

// decode accepts both the versioned envelope and a bare legacy document.
func decode[T any](raw []byte) (T, error) {
	var zero T
	raw = bytes.TrimSpace(raw)

	version := 0
	payload := raw
	if len(raw) > 0 && raw[0] == '{' {
		var probe struct {
			Version *int            `json:"version"`
			Data    json.RawMessage `json:"data"`
		}
		if err := json.Unmarshal(raw, &probe); err == nil && probe.Version != nil && probe.Data != nil {
			version = *probe.Version
			payload = probe.Data
		}
	}

	if version > SchemaVersion {
		return zero, &ReadError{Version: version, Err: fmt.Errorf("newer than supported version %d", SchemaVersion)}
	}
	if bytes.Equal(bytes.TrimSpace(payload), []byte("null")) {
		return zero, &ReadError{Version: version, Err: errNullDocument}
	}

	var v T
	if err := json.Unmarshal(payload, &v); err != nil {
		return zero, &ReadError{Version: version, Err: err}
	}
	return v, nil
}
