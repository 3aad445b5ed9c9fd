package importer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alexanderramin/ganttkit/internal/domain"
	"gopkg.in/yaml.v3"
)

// Document is a parsed bar file: an optional chart header and the raw bar
// elements, kept undecoded until ValidateDocument has checked their shape.
type Document struct {
	Chart *ChartHeader
	Bars  []json.RawMessage
}

// ChartHeader carries chart-level fields of the object document form.
type ChartHeader struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

type objectDocument struct {
	Chart *ChartHeader    `json:"chart,omitempty"`
	Bars  json.RawMessage `json:"bars"`
}

// LoadDocument reads and parses a bar file. Files ending in .yaml or .yml are
// decoded as YAML; everything else is read as JSON.
func LoadDocument(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err = yamlToJSON(data)
		if err != nil {
			return nil, fmt.Errorf("parsing yaml file: %w", err)
		}
	}
	return ParseDocument(data)
}

// ParseDocument parses either a bare JSON array of bars or an object of the form
// {"chart": {...}, "bars": [...]}.
func ParseDocument(data []byte) (*Document, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, fmt.Errorf("parsing bar file: empty document")
	}

	switch data[0] {
	case '[':
		var bars []json.RawMessage
		if err := json.Unmarshal(data, &bars); err != nil {
			return nil, fmt.Errorf("parsing bar file: %w", err)
		}
		return &Document{Bars: bars}, nil
	case '{':
		var obj objectDocument
		if err := json.Unmarshal(data, &obj); err != nil {
			return nil, fmt.Errorf("parsing bar file: %w", err)
		}
		if len(obj.Bars) == 0 {
			return nil, fmt.Errorf("parsing bar file: bars is required")
		}
		if k := kindOf(obj.Bars); k != "array" {
			return nil, fmt.Errorf("parsing bar file: bars must be an array, got %s", k)
		}
		var bars []json.RawMessage
		if err := json.Unmarshal(obj.Bars, &bars); err != nil {
			return nil, fmt.Errorf("parsing bar file: %w", err)
		}
		return &Document{Chart: obj.Chart, Bars: bars}, nil
	default:
		return nil, fmt.Errorf("parsing bar file: expected array or object, got %s", kindOf(data))
	}
}

func yamlToJSON(data []byte) ([]byte, error) {
	var v any
	if err := yaml.Unmarshal(data, &v); err != nil {
		return nil, err
	}
	out, err := domain.EncodeJSON(v, "")
	if err != nil {
		return nil, fmt.Errorf("converting to json: %w", err)
	}
	return out, nil
}
