package api

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Envelope is the {EC, EM, DT, data} wrapper every backend response uses.
type Envelope struct {
	EC   any             `json:"EC"`
	EM   string          `json:"EM"`
	DT   any             `json:"DT,omitempty"`
	Data json.RawMessage `json:"data,omitempty"`
}

// OK reports whether EC is 0 or "OK".
func (e *Envelope) OK() bool {
	switch v := e.EC.(type) {
	case float64:
		return v == 0
	case json.Number:
		return v.String() == "0"
	case int:
		return v == 0
	case string:
		return v == "OK" || v == "0"
	default:
		return false
	}
}

// Code returns EC rendered as a string for logging.
func (e *Envelope) Code() string {
	if e.EC == nil {
		return ""
	}
	if f, ok := e.EC.(float64); ok {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return fmt.Sprint(e.EC)
}

func (e *Envelope) hasData() bool {
	return len(e.Data) > 0 && string(e.Data) != "null"
}

// Record decodes data as a single object. Anything else yields an empty record.
func (e *Envelope) Record() Record {
	rec := Record{}
	if e.hasData() {
		_ = json.Unmarshal(e.Data, &rec)
	}
	return rec
}

// Record is one JSON object sent to or received from the backend.
type Record map[string]any

// ID returns the server assigned id, or "" when the record has none.
func (r Record) ID() string {
	return r.String("id")
}

// String returns a field rendered as a string. Numbers keep their integer form.
func (r Record) String(key string) string {
	v, ok := r[key]
	if !ok || v == nil {
		return ""
	}
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case json.Number:
		return t.String()
	default:
		return fmt.Sprint(t)
	}
}

// Strings returns a list field as []string, accepting both []string and []any.
func (r Record) Strings(key string) []string {
	switch t := r[key].(type) {
	case []string:
		return t
	case []any:
		out := make([]string, 0, len(t))
		for _, v := range t {
			if s, ok := v.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}

// HasString reports whether the list field key contains value.
func (r Record) HasString(key, value string) bool {
	for _, s := range r.Strings(key) {
		if s == value {
			return true
		}
	}
	return false
}

// DisplayName picks the most human readable label a record carries.
func (r Record) DisplayName() string {
	first, last := r.String("first_name"), r.String("last_name")
	if first != "" && last != "" {
		return first + " " + last
	}
	for _, key := range []string{"name", "restaurant_name", "email"} {
		if v := r.String(key); v != "" {
			return v
		}
	}
	return r.ID()
}
