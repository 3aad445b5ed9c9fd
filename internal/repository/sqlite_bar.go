package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/ganttkit/internal/db"
	"github.com/alexanderramin/ganttkit/internal/domain"
)

// SQLiteBarRepo implements BarRepo using a SQLite database.
type SQLiteBarRepo struct {
	db db.DBTX
}

// NewSQLiteBarRepo creates a new SQLiteBarRepo.
func NewSQLiteBarRepo(conn db.DBTX) *SQLiteBarRepo {
	return &SQLiteBarRepo{db: conn}
}

const barColumns = `chart_id, bar_id, position,
	has_label, label_name, label_color, has_html, html_logo,
	has_handles, immobile, bundle, push_on_overlap,
	drag_limit_left, drag_limit_right, style_json, class, extra_json,
	created_at, updated_at`

const insertBar = `INSERT INTO bars (` + barColumns + `)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

func (r *SQLiteBarRepo) Create(ctx context.Context, b *domain.StoredBar) error {
	args, err := barArgs(b)
	if err != nil {
		return err
	}
	if _, err := r.db.ExecContext(ctx, insertBar, args...); err != nil {
		return fmt.Errorf("inserting bar %q: %w", b.Bar.Config.ID, err)
	}
	return nil
}

// Upsert inserts the bar or replaces its configuration and data in place.
// An existing bar keeps its position and created_at.
func (r *SQLiteBarRepo) Upsert(ctx context.Context, b *domain.StoredBar) error {
	args, err := barArgs(b)
	if err != nil {
		return err
	}
	query := insertBar + `
	ON CONFLICT(chart_id, bar_id) DO UPDATE SET
		has_label = excluded.has_label,
		label_name = excluded.label_name,
		label_color = excluded.label_color,
		has_html = excluded.has_html,
		html_logo = excluded.html_logo,
		has_handles = excluded.has_handles,
		immobile = excluded.immobile,
		bundle = excluded.bundle,
		push_on_overlap = excluded.push_on_overlap,
		drag_limit_left = excluded.drag_limit_left,
		drag_limit_right = excluded.drag_limit_right,
		style_json = excluded.style_json,
		class = excluded.class,
		extra_json = excluded.extra_json,
		updated_at = excluded.updated_at`
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upserting bar %q: %w", b.Bar.Config.ID, err)
	}
	return nil
}

func (r *SQLiteBarRepo) Get(ctx context.Context, chartID, barID string) (*domain.StoredBar, error) {
	query := `SELECT ` + barColumns + ` FROM bars WHERE chart_id = ? AND bar_id = ?`
	b, err := scanBar(r.db.QueryRowContext(ctx, query, chartID, barID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("bar %q: %w", barID, ErrNotFound)
		}
		return nil, err
	}
	return b, nil
}

func (r *SQLiteBarRepo) ListByChart(ctx context.Context, chartID string) ([]*domain.StoredBar, error) {
	query := `SELECT ` + barColumns + ` FROM bars WHERE chart_id = ? ORDER BY position, bar_id`
	return r.list(ctx, query, chartID)
}

func (r *SQLiteBarRepo) ListByBundle(ctx context.Context, chartID, bundle string) ([]*domain.StoredBar, error) {
	query := `SELECT ` + barColumns + ` FROM bars WHERE chart_id = ? AND bundle = ? ORDER BY position, bar_id`
	return r.list(ctx, query, chartID, bundle)
}

// NextPosition returns the position after the last bar of the chart.
func (r *SQLiteBarRepo) NextPosition(ctx context.Context, chartID string) (int, error) {
	var next int
	err := r.db.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(position) + 1, 0) FROM bars WHERE chart_id = ?`, chartID).Scan(&next)
	if err != nil {
		return 0, fmt.Errorf("reading next bar position: %w", err)
	}
	return next, nil
}

func (r *SQLiteBarRepo) Count(ctx context.Context, chartID string) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM bars WHERE chart_id = ?`, chartID).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting bars: %w", err)
	}
	return n, nil
}

func (r *SQLiteBarRepo) Delete(ctx context.Context, chartID, barID string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM bars WHERE chart_id = ? AND bar_id = ?`, chartID, barID)
	if err != nil {
		return fmt.Errorf("deleting bar: %w", err)
	}
	return requireAffected(res, fmt.Sprintf("bar %q", barID))
}

func (r *SQLiteBarRepo) DeleteByChart(ctx context.Context, chartID string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM bars WHERE chart_id = ?`, chartID); err != nil {
		return fmt.Errorf("deleting chart bars: %w", err)
	}
	return nil
}

func (r *SQLiteBarRepo) list(ctx context.Context, query string, args ...any) ([]*domain.StoredBar, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing bars: %w", err)
	}
	defer rows.Close()

	var bars []*domain.StoredBar
	for rows.Next() {
		b, err := scanBar(rows)
		if err != nil {
			return nil, err
		}
		bars = append(bars, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating bars: %w", err)
	}
	return bars, nil
}

func barArgs(sb *domain.StoredBar) ([]any, error) {
	cfg := sb.Bar.Config

	var hasLabel, hasHTML bool
	var labelName, labelColor, logo *string
	if cfg.Label != nil {
		hasLabel = true
		labelName, labelColor = cfg.Label.Name, cfg.Label.Color
	}
	if cfg.HTML != nil {
		hasHTML = true
		logo = cfg.HTML.Logo
	}

	styleVal, err := jsonToValue(cfg.Style)
	if err != nil {
		return nil, fmt.Errorf("encoding style of bar %q: %w", cfg.ID, err)
	}
	extraVal, err := jsonToValue(sb.Bar.Extra)
	if err != nil {
		return nil, fmt.Errorf("encoding data of bar %q: %w", cfg.ID, err)
	}

	return []any{
		sb.ChartID,
		cfg.ID,
		sb.Position,
		boolToInt(hasLabel),
		nullableStringToValue(labelName),
		nullableStringToValue(labelColor),
		boolToInt(hasHTML),
		nullableStringToValue(logo),
		nullableBoolToValue(cfg.HasHandles),
		nullableBoolToValue(cfg.Immobile),
		nullableStringToValue(cfg.Bundle),
		nullableBoolToValue(cfg.PushOnOverlap),
		nullableFloatToValue(cfg.DragLimitLeft),
		nullableFloatToValue(cfg.DragLimitRight),
		styleVal,
		nullableStringToValue(cfg.Class),
		extraVal,
		sb.CreatedAt.Format(time.RFC3339),
		sb.UpdatedAt.Format(time.RFC3339),
	}, nil
}

// scanBar returns sql.ErrNoRows unwrapped so callers can decide how to report it.
func scanBar(row rowScanner) (*domain.StoredBar, error) {
	var (
		sb                         domain.StoredBar
		cfg                        domain.BarConfig
		hasLabel, hasHTML          int
		labelName, labelColor      sql.NullString
		logo, bundle, class        sql.NullString
		hasHandles, immobile       sql.NullInt64
		pushOnOverlap              sql.NullInt64
		dragLeft, dragRight        sql.NullFloat64
		styleJSON, extraJSON       sql.NullString
		createdAtStr, updatedAtStr string
	)

	err := row.Scan(
		&sb.ChartID, &cfg.ID, &sb.Position,
		&hasLabel, &labelName, &labelColor, &hasHTML, &logo,
		&hasHandles, &immobile, &bundle, &pushOnOverlap,
		&dragLeft, &dragRight, &styleJSON, &class, &extraJSON,
		&createdAtStr, &updatedAtStr,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning bar: %w", err)
	}

	if intToBool(hasLabel) {
		cfg.Label = &domain.BarLabel{Name: parseNullableString(labelName), Color: parseNullableString(labelColor)}
	}
	if intToBool(hasHTML) {
		cfg.HTML = &domain.BarHTML{Logo: parseNullableString(logo)}
	}
	cfg.Bundle = parseNullableString(bundle)
	cfg.Class = parseNullableString(class)
	cfg.HasHandles = parseNullableBool(hasHandles)
	cfg.Immobile = parseNullableBool(immobile)
	cfg.PushOnOverlap = parseNullableBool(pushOnOverlap)
	cfg.DragLimitLeft = parseNullableFloat(dragLeft)
	cfg.DragLimitRight = parseNullableFloat(dragRight)

	if err := parseJSONColumn(styleJSON, "style_json", &cfg.Style); err != nil {
		return nil, err
	}
	var extra map[string]json.RawMessage
	if err := parseJSONColumn(extraJSON, "extra_json", &extra); err != nil {
		return nil, err
	}

	if sb.CreatedAt, err = parseTimestamp("created_at", createdAtStr); err != nil {
		return nil, err
	}
	if sb.UpdatedAt, err = parseTimestamp("updated_at", updatedAtStr); err != nil {
		return nil, err
	}

	sb.Bar = &domain.Bar{Config: cfg, Extra: extra}
	return &sb, nil
}
