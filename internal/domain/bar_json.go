package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// MarshalJSON writes the bar as a single flat object: ganttBarConfig alongside
// every application key.
func (b Bar) MarshalJSON() ([]byte, error) {
	if _, ok := b.Extra[ConfigKey]; ok {
		return nil, ErrReservedKey
	}
	cfg, err := EncodeJSON(b.Config, "")
	if err != nil {
		return nil, fmt.Errorf("encoding %s: %w", ConfigKey, err)
	}
	out := make(map[string]json.RawMessage, len(b.Extra)+1)
	for k, v := range b.Extra {
		out[k] = v
	}
	out[ConfigKey] = cfg
	return EncodeJSON(out, "")
}

// EncodeJSON marshals v without escaping <, > and &, so markup in html.logo
// and application data is written as given. A non-empty indent pretty-prints.
func EncodeJSON(v any, indent string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if indent != "" {
		enc.SetIndent("", indent)
	}
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// UnmarshalJSON splits a flat bar object into Config and Extra. Unknown keys
// inside ganttBarConfig are rejected.
func (b *Bar) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return fmt.Errorf("decoding bar: %w", err)
	}
	if fields == nil {
		return fmt.Errorf("decoding bar: %w", ErrMissingConfig)
	}

	rawCfg, ok := fields[ConfigKey]
	if !ok || JSONKind(rawCfg) != "object" {
		return ErrMissingConfig
	}

	var cfg BarConfig
	dec := json.NewDecoder(bytes.NewReader(rawCfg))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return fmt.Errorf("decoding %s: %w", ConfigKey, err)
	}

	delete(fields, ConfigKey)
	var extra map[string]json.RawMessage
	if len(fields) > 0 {
		extra = fields
	}

	b.Config = cfg
	b.Extra = extra
	return nil
}
