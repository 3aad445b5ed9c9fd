package domain

import (
	"fmt"
	"math"
	"strings"
)

// Validate checks the bar against the invariants a typed caller can still
// break: a non-empty id, finite drag limits and no use of the reserved key.
// It returns every problem found.
func (b *Bar) Validate() []error {
	var errs []error

	if strings.TrimSpace(b.Config.ID) == "" {
		errs = append(errs, fmt.Errorf("%s.id is required", ConfigKey))
	}
	if _, ok := b.Extra[ConfigKey]; ok {
		errs = append(errs, ErrReservedKey)
	}

	errs = append(errs, validateLimit("dragLimitLeft", b.Config.DragLimitLeft)...)
	errs = append(errs, validateLimit("dragLimitRight", b.Config.DragLimitRight)...)

	for _, k := range b.Config.Style.Keys() {
		if k == "" {
			errs = append(errs, fmt.Errorf("%s.style: empty property name", ConfigKey))
			continue
		}
		if n, ok := b.Config.Style[k].Number(); ok && (math.IsNaN(n) || math.IsInf(n, 0)) {
			errs = append(errs, fmt.Errorf("%s.style.%s: must be a finite number", ConfigKey, k))
		}
	}

	return errs
}

func validateLimit(field string, v *float64) []error {
	if v == nil {
		return nil
	}
	if math.IsNaN(*v) || math.IsInf(*v, 0) {
		return []error{fmt.Errorf("%s.%s: must be a finite number", ConfigKey, field)}
	}
	return nil
}

// DragLimitsInverted reports whether both drag limits are set and the left
// limit lies beyond the right one. The shape permits it; callers may warn.
func (c BarConfig) DragLimitsInverted() bool {
	return c.DragLimitLeft != nil && c.DragLimitRight != nil && *c.DragLimitLeft > *c.DragLimitRight
}
