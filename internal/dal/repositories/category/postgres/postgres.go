package postgresrepo

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/ngocdai99/furniture-backend/internal/dal/postgres"
	"github.com/ngocdai99/furniture-backend/internal/service/models/category"
)

// PostgresCategoryRepository represents a Postgres category repository.
type PostgresCategoryRepository struct {
	conn postgres.GenericConn
	sb   sq.StatementBuilderType
}

// NewPostgresCategoryRepository creates a new Postgres category repository.
func NewPostgresCategoryRepository(conn postgres.GenericConn) *PostgresCategoryRepository {
	return &PostgresCategoryRepository{
		conn: conn,
		sb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// Insert inserts a category and returns it with the generated id.
func (r *PostgresCategoryRepository) Insert(ctx context.Context, c category.Category) (*category.Category, error) {
	sql, args, err := r.sb.
		Insert("categories").
		Columns("name", "image").
		Values(c.Name, c.Image).
		Suffix("RETURNING id, name, image").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build insert query: %w", err)
	}

	var out category.Category
	if err := r.conn.QueryRow(ctx, sql, args...).Scan(&out.ID, &out.Name, &out.Image); err != nil {
		return nil, fmt.Errorf("failed to insert category: %w", err)
	}

	return &out, nil
}

// List retrieves all categories.
func (r *PostgresCategoryRepository) List(ctx context.Context) ([]category.Category, error) {
	sql, args, err := r.sb.
		Select("id", "name", "image").
		From("categories").
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := r.conn.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer rows.Close()

	var result []category.Category
	for rows.Next() {
		var c category.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Image); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		result = append(result, c)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}

// GetByID retrieves a category by id. Returns nil when no category matches.
func (r *PostgresCategoryRepository) GetByID(ctx context.Context, id int64) (*category.Category, error) {
	return r.getOne(ctx, sq.Eq{"id": id})
}

// GetByName retrieves a category by exact name. Returns nil when no category
// matches.
func (r *PostgresCategoryRepository) GetByName(ctx context.Context, name string) (*category.Category, error) {
	return r.getOne(ctx, sq.Eq{"name": name})
}

func (r *PostgresCategoryRepository) getOne(ctx context.Context, where sq.Eq) (*category.Category, error) {
	sql, args, err := r.sb.
		Select("id", "name", "image").
		From("categories").
		Where(where).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	var c category.Category
	if err := r.conn.QueryRow(ctx, sql, args...).Scan(&c.ID, &c.Name, &c.Image); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query category: %w", err)
	}

	return &c, nil
}

// Update overwrites a category. Returns nil when no category matches.
func (r *PostgresCategoryRepository) Update(ctx context.Context, c category.Category) (*category.Category, error) {
	sql, args, err := r.sb.
		Update("categories").
		Set("name", c.Name).
		Set("image", c.Image).
		Where(sq.Eq{"id": c.ID}).
		Suffix("RETURNING id, name, image").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build update query: %w", err)
	}

	var out category.Category
	if err := r.conn.QueryRow(ctx, sql, args...).Scan(&out.ID, &out.Name, &out.Image); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update category: %w", err)
	}

	return &out, nil
}

// Delete removes a category by id.
func (r *PostgresCategoryRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := r.sb.
		Delete("categories").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete query: %w", err)
	}

	if _, err := r.conn.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}

	return nil
}
