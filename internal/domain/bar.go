package domain

import (
	"encoding/json"
	"errors"
	"time"
)

// ConfigKey is the reserved top-level key holding a bar's chart configuration.
const ConfigKey = "ganttBarConfig"

var (
	// ErrMissingConfig indicates a bar document without a ganttBarConfig object.
	ErrMissingConfig = errors.New("ganttBarConfig is required")

	// ErrReservedKey indicates application data using the reserved ganttBarConfig key.
	ErrReservedKey = errors.New("extra data may not use the reserved key " + ConfigKey)
)

// Bar is a single schedulable item rendered as a horizontal segment on a chart.
// Config is interpreted by the chart; Extra is application data carried verbatim.
type Bar struct {
	Config BarConfig
	Extra  map[string]json.RawMessage
}

// BarConfig is the fixed-schema configuration stored under ganttBarConfig.
type BarConfig struct {
	ID             string    `json:"id"`
	Label          *BarLabel `json:"label,omitempty"`
	HTML           *BarHTML  `json:"html,omitempty"`
	HasHandles     *bool     `json:"hasHandles,omitempty"`
	Immobile       *bool     `json:"immobile,omitempty"`
	Bundle         *string   `json:"bundle,omitempty"`
	PushOnOverlap  *bool     `json:"pushOnOverlap,omitempty"`
	DragLimitLeft  *float64  `json:"dragLimitLeft,omitempty"`
	DragLimitRight *float64  `json:"dragLimitRight,omitempty"`
	Style          Style     `json:"style,omitzero"`
	Class          *string   `json:"class,omitempty"`
}

// BarLabel is the text shown on or near a bar. An empty string is kept
// distinct from an absent field.
type BarLabel struct {
	Name  *string `json:"name,omitempty"`
	Color *string `json:"color,omitempty"`
}

// BarHTML holds markup rendered inside a bar.
type BarHTML struct {
	Logo *string `json:"logo,omitempty"`
}

// StoredBar is a bar together with its chart placement.
type StoredBar struct {
	ChartID   string
	Position  int
	Bar       *Bar
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewBar returns a bar with the given id and no optional configuration.
func NewBar(id string) *Bar {
	return &Bar{Config: BarConfig{ID: id}}
}

// SetExtra marshals v and stores it under key in the bar's application data.
func (b *Bar) SetExtra(key string, v any) error {
	if key == ConfigKey {
		return ErrReservedKey
	}
	raw, err := EncodeJSON(v, "")
	if err != nil {
		return err
	}
	if b.Extra == nil {
		b.Extra = make(map[string]json.RawMessage)
	}
	b.Extra[key] = raw
	return nil
}

// LabelName returns the label text, or "" when the bar has no label.
func (b *Bar) LabelName() string {
	if b.Config.Label == nil {
		return ""
	}
	return Text(b.Config.Label.Name)
}

// BundleName returns the bundle, or "" when the bar belongs to none.
func (c BarConfig) BundleName() string {
	return Text(c.Bundle)
}

// Flag returns the value of an optional boolean, treating nil as false.
func Flag(p *bool) bool {
	return p != nil && *p
}

// Text returns the value of an optional string, treating nil as "".
func Text(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

// Ptr returns a pointer to v, for filling optional fields.
func Ptr[T any](v T) *T {
	return &v
}
