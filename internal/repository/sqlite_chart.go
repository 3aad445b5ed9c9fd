package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/ganttkit/internal/db"
	"github.com/alexanderramin/ganttkit/internal/domain"
)

// SQLiteChartRepo implements ChartRepo using a SQLite database.
type SQLiteChartRepo struct {
	db db.DBTX
}

// NewSQLiteChartRepo creates a new SQLiteChartRepo.
func NewSQLiteChartRepo(conn db.DBTX) *SQLiteChartRepo {
	return &SQLiteChartRepo{db: conn}
}

const chartColumns = `id, name, description, created_at, updated_at`

func (r *SQLiteChartRepo) Create(ctx context.Context, c *domain.Chart) error {
	query := `INSERT INTO charts (` + chartColumns + `) VALUES (?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		c.ID,
		c.Name,
		c.Description,
		c.CreatedAt.Format(time.RFC3339),
		c.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting chart: %w", err)
	}
	return nil
}

func (r *SQLiteChartRepo) GetByID(ctx context.Context, id string) (*domain.Chart, error) {
	query := `SELECT ` + chartColumns + ` FROM charts WHERE id = ?`
	return r.scanChart(r.db.QueryRowContext(ctx, query, id))
}

func (r *SQLiteChartRepo) GetByName(ctx context.Context, name string) (*domain.Chart, error) {
	query := `SELECT ` + chartColumns + ` FROM charts WHERE name = ? COLLATE NOCASE`
	return r.scanChart(r.db.QueryRowContext(ctx, query, name))
}

func (r *SQLiteChartRepo) List(ctx context.Context) ([]*domain.Chart, error) {
	query := `SELECT ` + chartColumns + ` FROM charts ORDER BY created_at, name`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing charts: %w", err)
	}
	defer rows.Close()

	var charts []*domain.Chart
	for rows.Next() {
		c, err := r.scanChart(rows)
		if err != nil {
			return nil, err
		}
		charts = append(charts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating charts: %w", err)
	}
	return charts, nil
}

func (r *SQLiteChartRepo) Update(ctx context.Context, c *domain.Chart) error {
	query := `UPDATE charts SET name = ?, description = ?, updated_at = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		c.Name,
		c.Description,
		c.UpdatedAt.Format(time.RFC3339),
		c.ID,
	)
	if err != nil {
		return fmt.Errorf("updating chart: %w", err)
	}
	return requireAffected(res, "chart")
}

func (r *SQLiteChartRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM charts WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting chart: %w", err)
	}
	return requireAffected(res, "chart")
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *SQLiteChartRepo) scanChart(row rowScanner) (*domain.Chart, error) {
	var c domain.Chart
	var createdAtStr, updatedAtStr string

	err := row.Scan(&c.ID, &c.Name, &c.Description, &createdAtStr, &updatedAtStr)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("chart: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning chart: %w", err)
	}

	if c.CreatedAt, err = parseTimestamp("created_at", createdAtStr); err != nil {
		return nil, err
	}
	if c.UpdatedAt, err = parseTimestamp("updated_at", updatedAtStr); err != nil {
		return nil, err
	}
	return &c, nil
}

func requireAffected(res sql.Result, entity string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s rows affected: %w", entity, err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", entity, ErrNotFound)
	}
	return nil
}
