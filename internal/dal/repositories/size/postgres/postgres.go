package postgresrepo

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/ngocdai99/furniture-backend/internal/dal/postgres"
	"github.com/ngocdai99/furniture-backend/internal/service/models/size"
)

// PostgresSizeRepository represents a Postgres size repository.
type PostgresSizeRepository struct {
	conn postgres.GenericConn
	sb   sq.StatementBuilderType
}

// NewPostgresSizeRepository creates a new Postgres size repository.
func NewPostgresSizeRepository(conn postgres.GenericConn) *PostgresSizeRepository {
	return &PostgresSizeRepository{
		conn: conn,
		sb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// Insert inserts a size and returns it with the generated id.
func (r *PostgresSizeRepository) Insert(ctx context.Context, s size.Size) (*size.Size, error) {
	sql, args, err := r.sb.
		Insert("sizes").
		Columns("size_name").
		Values(s.SizeName).
		Suffix("RETURNING id, size_name").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build insert query: %w", err)
	}

	var out size.Size
	if err := r.conn.QueryRow(ctx, sql, args...).Scan(&out.ID, &out.SizeName); err != nil {
		return nil, fmt.Errorf("failed to insert size: %w", err)
	}

	return &out, nil
}

// List retrieves all sizes.
func (r *PostgresSizeRepository) List(ctx context.Context) ([]size.Size, error) {
	sql, args, err := r.sb.
		Select("id", "size_name").
		From("sizes").
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := r.conn.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query sizes: %w", err)
	}
	defer rows.Close()

	var result []size.Size
	for rows.Next() {
		var s size.Size
		if err := rows.Scan(&s.ID, &s.SizeName); err != nil {
			return nil, fmt.Errorf("failed to scan size: %w", err)
		}
		result = append(result, s)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}

// Update renames a size. Returns nil when no size matches.
func (r *PostgresSizeRepository) Update(ctx context.Context, s size.Size) (*size.Size, error) {
	sql, args, err := r.sb.
		Update("sizes").
		Set("size_name", s.SizeName).
		Where(sq.Eq{"id": s.ID}).
		Suffix("RETURNING id, size_name").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build update query: %w", err)
	}

	var out size.Size
	if err := r.conn.QueryRow(ctx, sql, args...).Scan(&out.ID, &out.SizeName); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update size: %w", err)
	}

	return &out, nil
}
