// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// PayloadKind discriminates the shapes a response body can take.
type PayloadKind int

const (
	// PayloadEmpty is a zero-length body. It stands for JSON null.
	PayloadEmpty PayloadKind = iota
	// PayloadJSON is a body that parsed as JSON.
	PayloadJSON
	// PayloadRaw is a body that did not parse as JSON, kept as text.
	PayloadRaw
)

func (k PayloadKind) String() string {
	switch k {
	case PayloadEmpty:
		return "empty"
	case PayloadJSON:
		return "json"
	case PayloadRaw:
		return "raw"
	default:
		return fmt.Sprintf("PayloadKind(%d)", int(k))
	}
}

// Payload is a parsed response body. The zero value is an empty payload.
type Payload struct {
	kind PayloadKind
	data json.RawMessage
	text string
}

// ParsePayload classifies a response body.
func ParsePayload(body []byte) Payload {
	if len(body) == 0 {
		return Payload{kind: PayloadEmpty}
	}
	if json.Valid(body) {
		return Payload{kind: PayloadJSON, data: bytes.Clone(body)}
	}
	return Payload{kind: PayloadRaw, text: string(body)}
}

// RawPayload wraps non-JSON text.
func RawPayload(text string) Payload {
	return Payload{kind: PayloadRaw, text: text}
}

// Kind reports which shape the payload has.
func (p Payload) Kind() PayloadKind { return p.kind }

// JSON returns the body of a PayloadJSON, nil otherwise.
func (p Payload) JSON() json.RawMessage {
	if p.kind != PayloadJSON {
		return nil
	}
	return p.data
}

// Raw returns the text of a PayloadRaw, "" otherwise.
func (p Payload) Raw() string {
	if p.kind != PayloadRaw {
		return ""
	}
	return p.text
}

// IsNull reports whether the payload carries no value: an empty body or
// a literal JSON null.
func (p Payload) IsNull() bool {
	switch p.kind {
	case PayloadEmpty:
		return true
	case PayloadJSON:
		return string(bytes.TrimSpace(p.data)) == "null"
	default:
		return false
	}
}

// Decode unmarshals a JSON payload into v. An empty payload leaves v
// untouched. A raw payload is an error.
func (p Payload) Decode(v any) error {
	switch p.kind {
	case PayloadEmpty:
		return nil
	case PayloadJSON:
		if err := json.Unmarshal(p.data, v); err != nil {
			return fmt.Errorf("api: decoding response: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("api: response is not JSON: %.80q", p.text)
	}
}

// Field returns a top-level string field of a JSON object payload. For
// a raw payload the field "raw" yields the body text. Missing fields,
// non-string values, and non-object payloads report false.
func (p Payload) Field(name string) (string, bool) {
	switch p.kind {
	case PayloadRaw:
		if name == "raw" {
			return p.text, true
		}
		return "", false
	case PayloadJSON:
		var object map[string]json.RawMessage
		if json.Unmarshal(p.data, &object) != nil {
			return "", false
		}
		raw, ok := object[name]
		if !ok {
			return "", false
		}
		var value string
		if json.Unmarshal(raw, &value) != nil {
			return "", false
		}
		return value, true
	default:
		return "", false
	}
}

// MarshalJSON renders the payload for diagnostics: null, the JSON
// body, or {"raw": text}.
func (p Payload) MarshalJSON() ([]byte, error) {
	switch p.kind {
	case PayloadJSON:
		return p.data, nil
	case PayloadRaw:
		return json.Marshal(map[string]string{"raw": p.text})
	default:
		return []byte("null"), nil
	}
}

func (p Payload) String() string {
	data, _ := p.MarshalJSON()
	return string(data)
}
