package testutil

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/alexanderramin/ganttkit/internal/domain"
	"github.com/google/uuid"
)

var testChartCounter atomic.Int64

// Chart options
type ChartOption func(*domain.Chart)

func WithDescription(d string) ChartOption {
	return func(c *domain.Chart) {
		c.Description = d
	}
}

// NewTestChart builds a chart with a unique name derived from name.
func NewTestChart(name string, opts ...ChartOption) *domain.Chart {
	now := time.Now().UTC().Truncate(time.Second)
	n := testChartCounter.Add(1)
	c := &domain.Chart{
		ID:        uuid.New().String(),
		Name:      fmt.Sprintf("%s %02d", name, n),
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Bar options
type BarOption func(*domain.Bar)

// WithLabel sets the label name. An empty color leaves the color absent.
func WithLabel(name, color string) BarOption {
	return func(b *domain.Bar) {
		b.Config.Label = &domain.BarLabel{Name: &name}
		if color != "" {
			b.Config.Label.Color = &color
		}
	}
}

func WithBundle(bundle string) BarOption {
	return func(b *domain.Bar) {
		b.Config.Bundle = &bundle
	}
}

func WithDragLimits(left, right float64) BarOption {
	return func(b *domain.Bar) {
		b.Config.DragLimitLeft = &left
		b.Config.DragLimitRight = &right
	}
}

func WithHandles(v bool) BarOption {
	return func(b *domain.Bar) {
		b.Config.HasHandles = &v
	}
}

func WithImmobile(v bool) BarOption {
	return func(b *domain.Bar) {
		b.Config.Immobile = &v
	}
}

func WithPushOnOverlap(v bool) BarOption {
	return func(b *domain.Bar) {
		b.Config.PushOnOverlap = &v
	}
}

func WithStyle(style domain.Style) BarOption {
	return func(b *domain.Bar) {
		b.Config.Style = style
	}
}

func WithLogo(logo string) BarOption {
	return func(b *domain.Bar) {
		b.Config.HTML = &domain.BarHTML{Logo: &logo}
	}
}

func WithClass(class string) BarOption {
	return func(b *domain.Bar) {
		b.Config.Class = &class
	}
}

// WithExtra stores v under key in the bar's application data. Panics on
// values that cannot be marshaled.
func WithExtra(key string, v any) BarOption {
	return func(b *domain.Bar) {
		if err := b.SetExtra(key, v); err != nil {
			panic(err)
		}
	}
}

func NewTestBar(id string, opts ...BarOption) *domain.Bar {
	b := domain.NewBar(id)
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// NewStoredBar places bar in chart at position with fresh timestamps.
func NewStoredBar(chartID string, position int, bar *domain.Bar) *domain.StoredBar {
	now := time.Now().UTC().Truncate(time.Second)
	return &domain.StoredBar{
		ChartID:   chartID,
		Position:  position,
		Bar:       bar,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// FullTestBar returns a bar with every configuration field and some application data set.
func FullTestBar(id string) *domain.Bar {
	return NewTestBar(id,
		WithLabel("Deploy "+id, "#ffffff"),
		WithLogo("<img src=\"rocket.png\">"),
		WithHandles(true),
		WithImmobile(false),
		WithBundle("release"),
		WithPushOnOverlap(true),
		WithDragLimits(0, 240.5),
		WithStyle(domain.Style{"background": domain.StyleString("#e09b69"), "opacity": domain.StyleNumber(0.8)}),
		WithClass("bar deploy"),
		WithExtra("myBeginDate", "2024-03-01 09:00"),
		WithExtra("myEndDate", "2024-03-01 17:30"),
		WithExtra("meta", map[string]any{"owner": "ops", "tags": []string{"a", "b"}}),
	)
}
