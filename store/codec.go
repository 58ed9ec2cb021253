package store

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// encodeRecord marshals a record for storage.
func encodeRecord(v any) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode record: %w", err)
	}
	return data, nil
}

// decodeRecord unmarshals a stored record strictly: unknown fields are
// rejected rather than dropped, so a schema drift between writer and
// reader fails loudly instead of silently losing data.
func decodeRecord(data []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("decode record: %w", err)
	}
	return nil
}
