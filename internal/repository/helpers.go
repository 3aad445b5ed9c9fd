package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/alexanderramin/ganttkit/internal/domain"
)

// nullableBoolToValue converts a *bool to a value suitable for SQLite storage.
// Returns nil (SQL NULL) if the pointer is nil, otherwise 0 or 1.
func nullableBoolToValue(v *bool) interface{} {
	if v == nil {
		return nil
	}
	return boolToInt(*v)
}

// nullableFloatToValue converts a *float64 to a value suitable for SQLite storage.
func nullableFloatToValue(v *float64) interface{} {
	if v == nil {
		return nil
	}
	return *v
}

// nullableStringToValue stores an absent string as NULL and an empty one as ''.
func nullableStringToValue(v *string) interface{} {
	if v == nil {
		return nil
	}
	return *v
}

// parseNullableString turns a nullable TEXT column back into a *string.
func parseNullableString(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	s := v.String
	return &s
}

// parseNullableBool turns a nullable integer column back into a *bool.
func parseNullableBool(v sql.NullInt64) *bool {
	if !v.Valid {
		return nil
	}
	b := intToBool(int(v.Int64))
	return &b
}

// parseNullableFloat turns a nullable REAL column back into a *float64.
func parseNullableFloat(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}

// jsonToValue encodes m as a JSON text column. A nil map is stored as NULL and
// an empty one as {}.
func jsonToValue[M ~map[K]V, K comparable, V any](m M) (interface{}, error) {
	if m == nil {
		return nil, nil
	}
	data, err := domain.EncodeJSON(m, "")
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// parseJSONColumn decodes a nullable JSON text column into dst.
func parseJSONColumn(s sql.NullString, column string, dst any) error {
	if !s.Valid || s.String == "" {
		return nil
	}
	if err := json.Unmarshal([]byte(s.String), dst); err != nil {
		return fmt.Errorf("parsing %s: %w", column, err)
	}
	return nil
}

// boolToInt converts a Go bool to an integer (0 or 1) for SQLite storage.
func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// intToBool converts a SQLite integer (0 or 1) to a Go bool.
func intToBool(i int) bool {
	return i != 0
}

func parseTimestamp(column, s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing %s: %w", column, err)
	}
	return t, nil
}
