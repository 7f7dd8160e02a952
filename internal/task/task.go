// Package task defines the task value accepted and returned by the API.
//
// A task has no schema. Whatever JSON value the client sends is kept as
// compact bytes and handed back unchanged.
package task

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"unicode/utf8"
)

var (
	ErrEmptyBody   = errors.New("empty task body")
	ErrInvalidJSON = errors.New("task body is not valid JSON")
)

// Task is one opaque JSON value.
type Task []byte

// Parse accepts exactly one JSON value of any shape.
func Parse(b []byte) (Task, error) {
	b = bytes.TrimSpace(b)
	if len(b) == 0 {
		return nil, ErrEmptyBody
	}
	if !utf8.Valid(b) || !json.Valid(b) {
		return nil, ErrInvalidJSON
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, b); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}
	return Task(buf.Bytes()), nil
}

// MustParse is Parse for literals in tests and fixtures.
func MustParse(s string) Task {
	t, err := Parse([]byte(s))
	if err != nil {
		panic(err)
	}
	return t
}

func (t Task) MarshalJSON() ([]byte, error) {
	if len(t) == 0 {
		return []byte("null"), nil
	}
	return t, nil
}

func (t *Task) UnmarshalJSON(b []byte) error {
	parsed, err := Parse(b)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

func (t Task) String() string {
	if len(t) == 0 {
		return "null"
	}
	return string(t)
}

// Field renders a top-level object key for display. Strings come back
// unquoted, any other value as its JSON text. ok is false when the task is
// not an object or has no such key.
func (t Task) Field(name string) (string, bool) {
	if len(t) == 0 || t[0] != '{' {
		return "", false
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(t, &obj); err != nil {
		return "", false
	}
	raw, ok := obj[name]
	if !ok {
		return "", false
	}
	if len(raw) > 0 && raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			return s, true
		}
	}
	return string(raw), true
}
