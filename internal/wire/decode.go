package wire

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrMalformed is returned when a body is not the JSON shape an endpoint
// promises.
var ErrMalformed = errors.New("malformed payload")

// DecodeObject decodes a single JSON object. A literal null decodes to a nil
// Record without error.
func DecodeObject(body []byte) (Record, error) {
	trimmed := bytes.TrimSpace(body)
	if isNull(trimmed) {
		return nil, nil
	}
	if trimmed[0] != '{' {
		return nil, fmt.Errorf("%w: expected object", ErrMalformed)
	}
	var rec Record
	if err := json.Unmarshal(trimmed, &rec); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return rec, nil
}

// DecodeCollection decodes a list that may arrive bare ([...]) or wrapped
// in an envelope object under one of envelopeKeys ({"projects": [...]}).
// Non-object elements are dropped.
func DecodeCollection(body []byte, envelopeKeys ...string) ([]Record, error) {
	return decodeCollection(body, false, envelopeKeys)
}

// DecodeOneOrMany is DecodeCollection that additionally accepts a single
// unwrapped object, returned as a one-element list. Used for resources whose
// older generation returned one object where the newer returns a list.
func DecodeOneOrMany(body []byte, envelopeKeys ...string) ([]Record, error) {
	return decodeCollection(body, true, envelopeKeys)
}

func decodeCollection(body []byte, allowSingle bool, keys []string) ([]Record, error) {
	trimmed := bytes.TrimSpace(body)
	if isNull(trimmed) {
		return []Record{}, nil
	}

	switch trimmed[0] {
	case '[':
		return decodeArray(trimmed)
	case '{':
		var env Record
		if err := json.Unmarshal(trimmed, &env); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		for _, k := range keys {
			raw, ok := env[k]
			if !ok {
				continue
			}
			if isNull(raw) {
				return []Record{}, nil
			}
			return decodeArray(raw)
		}
		if allowSingle {
			return []Record{env}, nil
		}
		return nil, fmt.Errorf("%w: object without envelope key %v", ErrMalformed, keys)
	default:
		return nil, fmt.Errorf("%w: expected array or object", ErrMalformed)
	}
}

func decodeArray(raw json.RawMessage) ([]Record, error) {
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	out := make([]Record, 0, len(items))
	for _, item := range items {
		if !startsWith(item, '{') {
			continue
		}
		var rec Record
		if err := json.Unmarshal(item, &rec); err != nil {
			continue
		}
		out = append(out, rec)
	}
	return out, nil
}
