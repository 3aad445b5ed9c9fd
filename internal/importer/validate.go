package importer

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/alexanderramin/ganttkit/internal/domain"
)

var (
	configBoolFields   = []string{"hasHandles", "immobile", "pushOnOverlap"}
	configNumberFields = []string{"dragLimitLeft", "dragLimitRight"}
	configStringFields = []string{"bundle", "class"}

	knownConfigFields = map[string]bool{
		"id": true, "label": true, "html": true, "hasHandles": true, "immobile": true,
		"bundle": true, "pushOnOverlap": true, "dragLimitLeft": true, "dragLimitRight": true,
		"style": true, "class": true,
	}
)

func kindOf(raw []byte) string {
	return domain.JSONKind(raw)
}

// ValidateDocument checks every bar element against the bar shape before any
// decoding happens. Returns a slice of all validation errors found. The chart
// header is not checked here: its name may be overridden at import time.
func ValidateDocument(doc *Document) []error {
	var errs []error

	seen := make(map[string]int)
	for i, raw := range doc.Bars {
		prefix := fmt.Sprintf("bars[%d]", i)
		id, barErrs := validateBar(prefix, raw)
		errs = append(errs, barErrs...)
		if strings.TrimSpace(id) == "" {
			continue
		}
		if first, dup := seen[id]; dup {
			errs = append(errs, fmt.Errorf("%s.%s.id: duplicate id %q (first used by bars[%d])", prefix, domain.ConfigKey, id, first))
			continue
		}
		seen[id] = i
	}

	return errs
}

// validateBar checks one raw element and returns its id when one could be read.
func validateBar(prefix string, raw json.RawMessage) (string, []error) {
	if k := kindOf(raw); k != "object" {
		return "", []error{fmt.Errorf("%s: expected object, got %s", prefix, k)}
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return "", []error{fmt.Errorf("%s: %w", prefix, err)}
	}

	rawCfg, ok := fields[domain.ConfigKey]
	if !ok {
		return "", []error{fmt.Errorf("%s.%s is required", prefix, domain.ConfigKey)}
	}
	prefix = prefix + "." + domain.ConfigKey
	if k := kindOf(rawCfg); k != "object" {
		return "", []error{fmt.Errorf("%s: expected object, got %s", prefix, k)}
	}
	var cfg map[string]json.RawMessage
	if err := json.Unmarshal(rawCfg, &cfg); err != nil {
		return "", []error{fmt.Errorf("%s: %w", prefix, err)}
	}

	var errs []error
	var id string

	if rawID, ok := cfg["id"]; !ok {
		errs = append(errs, fmt.Errorf("%s.id is required", prefix))
	} else if err := expectKind(prefix+".id", rawID, "string"); err != nil {
		errs = append(errs, err)
	} else {
		_ = json.Unmarshal(rawID, &id)
		if strings.TrimSpace(id) == "" {
			errs = append(errs, fmt.Errorf("%s.id must not be empty", prefix))
		}
	}

	errs = append(errs, validateStringObject(prefix+".label", cfg["label"], "name", "color")...)
	errs = append(errs, validateStringObject(prefix+".html", cfg["html"], "logo")...)

	for _, f := range configBoolFields {
		if v, ok := cfg[f]; ok {
			if err := expectKind(prefix+"."+f, v, "boolean"); err != nil {
				errs = append(errs, err)
			}
		}
	}
	for _, f := range configNumberFields {
		if v, ok := cfg[f]; ok {
			if err := expectKind(prefix+"."+f, v, "number"); err != nil {
				errs = append(errs, err)
			}
		}
	}
	for _, f := range configStringFields {
		if v, ok := cfg[f]; ok {
			if err := expectKind(prefix+"."+f, v, "string"); err != nil {
				errs = append(errs, err)
			}
		}
	}

	errs = append(errs, validateStyle(prefix+".style", cfg["style"])...)

	var unknown []string
	for k := range cfg {
		if !knownConfigFields[k] {
			unknown = append(unknown, k)
		}
	}
	sort.Strings(unknown)
	for _, k := range unknown {
		errs = append(errs, fmt.Errorf("%s.%s: unknown field", prefix, k))
	}

	return id, errs
}

func validateStringObject(prefix string, raw json.RawMessage, allowed ...string) []error {
	if raw == nil {
		return nil
	}
	if err := expectKind(prefix, raw, "object"); err != nil {
		return []error{err}
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil {
		return []error{fmt.Errorf("%s: %w", prefix, err)}
	}

	allowedSet := make(map[string]bool, len(allowed))
	for _, a := range allowed {
		allowedSet[a] = true
	}

	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var errs []error
	for _, k := range keys {
		if !allowedSet[k] {
			errs = append(errs, fmt.Errorf("%s.%s: unknown field", prefix, k))
			continue
		}
		if err := expectKind(prefix+"."+k, obj[k], "string"); err != nil {
			errs = append(errs, err)
		}
	}
	return errs
}

func validateStyle(prefix string, raw json.RawMessage) []error {
	if raw == nil {
		return nil
	}
	if err := expectKind(prefix, raw, "object"); err != nil {
		return []error{err}
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil {
		return []error{fmt.Errorf("%s: %w", prefix, err)}
	}

	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var errs []error
	for _, k := range keys {
		if k == "" {
			errs = append(errs, fmt.Errorf("%s: empty property name", prefix))
			continue
		}
		if got := kindOf(obj[k]); got != "string" && got != "number" {
			errs = append(errs, fmt.Errorf("%s.%s: expected string or number, got %s", prefix, k, got))
		}
	}
	return errs
}

func expectKind(field string, raw json.RawMessage, want string) error {
	if got := kindOf(raw); got != want {
		return fmt.Errorf("%s: expected %s, got %s", field, want, got)
	}
	return nil
}
