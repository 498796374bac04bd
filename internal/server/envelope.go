package server

import (
	"bytes"
	"encoding/json"
)

// UnwrapEnvelope normalizes a request body sent by callable-function clients. A body of
// {"data":{"data":X}} becomes X, {"data":X} becomes X, and anything else is returned as is.
// Only objects whose sole key is "data" count as envelopes, and unwrapping happens once per
// request, at the boundary, before decoding.
func UnwrapEnvelope(body []byte) []byte {
	inner, ok := envelopeData(body)
	if !ok {
		return body
	}
	if innermost, ok := envelopeData(inner); ok {
		return innermost
	}
	return inner
}

// envelopeData returns X for a body of exactly {"data":X}
func envelopeData(body []byte) (json.RawMessage, bool) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, false
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &obj); err != nil || len(obj) != 1 {
		return nil, false
	}
	data, ok := obj["data"]
	if !ok {
		return nil, false
	}
	return data, true
}
