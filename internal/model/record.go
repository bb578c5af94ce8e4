package model

import (
	"bytes"
	"encoding/json"

	"github.com/rotisserie/eris"
)

// Record is a JSON object that remembers the order its keys arrived in.
// Values are decoded with json.Number so integers keep full precision.
type Record struct {
	keys   []string
	values map[string]any
}

// Keys returns the record's keys in first-seen order.
func (r Record) Keys() []string {
	return r.keys
}

// Get returns the value stored under key.
func (r Record) Get(key string) (any, bool) {
	v, ok := r.values[key]
	return v, ok
}

// Len returns the number of keys.
func (r Record) Len() int {
	return len(r.keys)
}

// Set stores value under key, appending key if it is new.
func (r *Record) Set(key string, value any) {
	if r.values == nil {
		r.values = make(map[string]any)
	}
	if _, ok := r.values[key]; !ok {
		r.keys = append(r.keys, key)
	}
	r.values[key] = value
}

// UnmarshalJSON decodes a JSON object, preserving key order.
func (r *Record) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return eris.Wrap(err, "record: read object start")
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return eris.Errorf("record: expected JSON object, got %v", tok)
	}

	*r = Record{values: make(map[string]any)}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return eris.Wrap(err, "record: read key")
		}
		key, ok := tok.(string)
		if !ok {
			return eris.Errorf("record: expected string key, got %v", tok)
		}

		var value any
		if err := dec.Decode(&value); err != nil {
			return eris.Wrapf(err, "record: decode value for %q", key)
		}
		r.Set(key, value)
	}

	if _, err := dec.Token(); err != nil {
		return eris.Wrap(err, "record: read object end")
	}
	return nil
}

// MarshalJSON encodes the record with its keys in their original order.
func (r Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range r.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(key)
		if err != nil {
			return nil, eris.Wrap(err, "record: marshal key")
		}
		v, err := json.Marshal(r.values[key])
		if err != nil {
			return nil, eris.Wrapf(err, "record: marshal value for %q", key)
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
