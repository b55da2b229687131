// Package record models the roster entities returned by the backend data
// service: an immutable identifier assigned by the backend plus a map of named
// fields, one of which is a structured {day, month, year} date.
package record

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Record is one roster entry as served by the backend:
//
//	{ "ref": { "@ref": { "id": "..." } }, "data": { "nombre": "...", ... } }
//
// Data stays a field map so callers can tell absent fields apart from empty
// ones; a nil Data means the record lacked its "data" object entirely.
type Record struct {
	Ref  Ref            `json:"ref"`
	Data map[string]any `json:"data"`
}

// Ref wraps the backend reference envelope.
type Ref struct {
	Inner RefID `json:"@ref"`
}

// RefID carries the backend-assigned identifier.
type RefID struct {
	ID string `json:"id"`
}

// ListPayload is the envelope returned by the list endpoint.
type ListPayload struct {
	Data []Record `json:"data"`
}

// ID returns the backend identifier, or "" when the reference is missing.
func (r Record) ID() string {
	return r.Ref.Inner.ID
}

// HasData reports whether the record carried a "data" object.
func (r Record) HasData() bool {
	return r.Data != nil
}

// Raw returns the untouched value stored under key.
func (r Record) Raw(key string) (any, bool) {
	if r.Data == nil {
		return nil, false
	}
	value, ok := r.Data[key]
	if !ok || value == nil {
		return nil, false
	}
	return value, true
}

// Text formats the value under key as display text. Lists are joined with
// ", ", numbers use their shortest representation and structured dates use
// the day-month-year form.
func (r Record) Text(key string) (string, bool) {
	value, ok := r.Raw(key)
	if !ok {
		return "", false
	}
	return FormatValue(value)
}

// Date decodes the structured date stored under key.
func (r Record) Date(key string) (Date, bool) {
	value, ok := r.Raw(key)
	if !ok {
		return Date{}, false
	}
	return DateFromValue(value)
}

// Number decodes a numeric value stored under key. Numeric strings are
// accepted since older fixtures store weights as text.
func (r Record) Number(key string) (float64, bool) {
	value, ok := r.Raw(key)
	if !ok {
		return 0, false
	}
	return toFloat(value)
}

// FormatValue renders a decoded JSON value as display text.
func FormatValue(value any) (string, bool) {
	switch v := value.(type) {
	case nil:
		return "", false
	case string:
		return v, true
	case bool:
		return strconv.FormatBool(v), true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	case int:
		return strconv.Itoa(v), true
	case json.Number:
		return v.String(), true
	case []any:
		parts := make([]string, 0, len(v))
		for _, item := range v {
			if text, ok := FormatValue(item); ok && text != "" {
				parts = append(parts, text)
			}
		}
		return strings.Join(parts, ", "), true
	case []string:
		return strings.Join(v, ", "), true
	case map[string]any:
		if date, ok := DateFromValue(v); ok {
			return date.String(), true
		}
		return "", false
	default:
		return fmt.Sprint(v), true
	}
}

// DecodeList parses a list envelope ({"data": [...]}) into records.
func DecodeList(data []byte) ([]Record, error) {
	if len(data) == 0 {
		return nil, errors.New("record: list payload is empty")
	}
	var payload ListPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("record: decode list: %w", err)
	}
	return payload.Data, nil
}

// Decode parses a single record payload.
func Decode(data []byte) (Record, error) {
	if len(data) == 0 {
		return Record{}, errors.New("record: payload is empty")
	}
	var out Record
	if err := json.Unmarshal(data, &out); err != nil {
		return Record{}, fmt.Errorf("record: decode: %w", err)
	}
	return out, nil
}

func toFloat(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		return f, err == nil
	default:
		return 0, false
	}
}
