package postgresrepo

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/ngocdai99/furniture-backend/internal/dal/postgres"
	"github.com/ngocdai99/furniture-backend/internal/service/models/color"
)

// PostgresColorRepository represents a Postgres color repository.
type PostgresColorRepository struct {
	conn postgres.GenericConn
	sb   sq.StatementBuilderType
}

// NewPostgresColorRepository creates a new Postgres color repository.
func NewPostgresColorRepository(conn postgres.GenericConn) *PostgresColorRepository {
	return &PostgresColorRepository{
		conn: conn,
		sb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// Insert inserts a color and returns it with the generated id.
func (r *PostgresColorRepository) Insert(ctx context.Context, c color.Color) (*color.Color, error) {
	sql, args, err := r.sb.
		Insert("colors").
		Columns("color_name").
		Values(c.ColorName).
		Suffix("RETURNING id, color_name").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build insert query: %w", err)
	}

	var out color.Color
	if err := r.conn.QueryRow(ctx, sql, args...).Scan(&out.ID, &out.ColorName); err != nil {
		return nil, fmt.Errorf("failed to insert color: %w", err)
	}

	return &out, nil
}

// List retrieves all colors.
func (r *PostgresColorRepository) List(ctx context.Context) ([]color.Color, error) {
	sql, args, err := r.sb.
		Select("id", "color_name").
		From("colors").
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := r.conn.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query colors: %w", err)
	}
	defer rows.Close()

	var result []color.Color
	for rows.Next() {
		var c color.Color
		if err := rows.Scan(&c.ID, &c.ColorName); err != nil {
			return nil, fmt.Errorf("failed to scan color: %w", err)
		}
		result = append(result, c)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}

// GetByName retrieves a color by exact name. Returns nil when no color
// matches.
func (r *PostgresColorRepository) GetByName(ctx context.Context, name string) (*color.Color, error) {
	sql, args, err := r.sb.
		Select("id", "color_name").
		From("colors").
		Where(sq.Eq{"color_name": name}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	var c color.Color
	if err := r.conn.QueryRow(ctx, sql, args...).Scan(&c.ID, &c.ColorName); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query color: %w", err)
	}

	return &c, nil
}

// Update renames a color. Returns nil when no color matches.
func (r *PostgresColorRepository) Update(ctx context.Context, c color.Color) (*color.Color, error) {
	sql, args, err := r.sb.
		Update("colors").
		Set("color_name", c.ColorName).
		Where(sq.Eq{"id": c.ID}).
		Suffix("RETURNING id, color_name").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build update query: %w", err)
	}

	var out color.Color
	if err := r.conn.QueryRow(ctx, sql, args...).Scan(&out.ID, &out.ColorName); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update color: %w", err)
	}

	return &out, nil
}
