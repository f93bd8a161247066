package node

import (
	"bytes"
	"encoding/json"
	"fmt"
	"maps"
	"time"

	"gopkg.in/yaml.v3"
)

const timestampKey = "Timestamp"

// Row is one wide reading row: a timestamp plus one value per parameter.
// On the wire it is a flat object {"Timestamp": "...", "<param>": value}.
type Row struct {
	Timestamp string
	Values    map[string]any
}

// MarshalJSON implements json.Marshaler.
func (r Row) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.flat())
}

// UnmarshalJSON implements json.Unmarshaler. Numbers are kept as json.Number.
func (r *Row) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var flat map[string]any
	if err := dec.Decode(&flat); err != nil {
		return fmt.Errorf("decode row: %w", err)
	}
	r.fromFlat(flat)
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (r Row) MarshalYAML() (any, error) {
	return r.flat(), nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (r *Row) UnmarshalYAML(value *yaml.Node) error {
	var flat map[string]any
	if err := value.Decode(&flat); err != nil {
		return fmt.Errorf("decode row: %w", err)
	}
	r.fromFlat(flat)
	return nil
}

func (r Row) flat() map[string]any {
	flat := make(map[string]any, len(r.Values)+1)
	maps.Copy(flat, r.Values)
	flat[timestampKey] = r.Timestamp
	return flat
}

func (r *Row) fromFlat(flat map[string]any) {
	r.Timestamp = ""
	r.Values = make(map[string]any, len(flat))
	for key, value := range flat {
		if key == timestampKey || key == "timestamp" {
			r.Timestamp = formatTimestamp(value)
			continue
		}
		r.Values[key] = value
	}
}

// formatTimestamp keeps string timestamps verbatim. YAML decodes unquoted
// timestamps to time.Time, which is rendered back as RFC 3339.
func formatTimestamp(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case time.Time:
		return v.Format(time.RFC3339Nano)
	}
	return fmt.Sprint(value)
}
