package postgresrepo

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/ngocdai99/furniture-backend/internal/dal/postgres"
	"github.com/ngocdai99/furniture-backend/internal/service/models/favorite"
)

// PostgresFavoriteRepository represents a Postgres favorite repository.
type PostgresFavoriteRepository struct {
	conn postgres.GenericConn
	sb   sq.StatementBuilderType
}

// NewPostgresFavoriteRepository creates a new Postgres favorite repository.
func NewPostgresFavoriteRepository(conn postgres.GenericConn) *PostgresFavoriteRepository {
	return &PostgresFavoriteRepository{
		conn: conn,
		sb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// Insert inserts a favorite and returns it with the generated id.
func (r *PostgresFavoriteRepository) Insert(ctx context.Context, f favorite.Favorite) (*favorite.Favorite, error) {
	sql, args, err := r.sb.
		Insert("favorites").
		Columns("user_id", "product_id", "added_at").
		Values(f.UserID, f.ProductID, pgtype.Timestamptz{Time: f.AddedAt, Valid: true}).
		Suffix("RETURNING id, user_id, product_id, added_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build insert query: %w", err)
	}

	var out favorite.Favorite
	var addedAt pgtype.Timestamptz
	if err := r.conn.QueryRow(ctx, sql, args...).Scan(&out.ID, &out.UserID, &out.ProductID, &addedAt); err != nil {
		return nil, fmt.Errorf("failed to insert favorite: %w", err)
	}
	out.AddedAt = addedAt.Time

	return &out, nil
}

// QueryByUser retrieves all favorites of one user in insertion order.
func (r *PostgresFavoriteRepository) QueryByUser(ctx context.Context, userID int64) ([]favorite.Favorite, error) {
	sql, args, err := r.sb.
		Select("id", "user_id", "product_id", "added_at").
		From("favorites").
		Where(sq.Eq{"user_id": userID}).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := r.conn.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query favorites: %w", err)
	}
	defer rows.Close()

	var result []favorite.Favorite
	for rows.Next() {
		var f favorite.Favorite
		var addedAt pgtype.Timestamptz
		if err := rows.Scan(&f.ID, &f.UserID, &f.ProductID, &addedAt); err != nil {
			return nil, fmt.Errorf("failed to scan favorite: %w", err)
		}
		f.AddedAt = addedAt.Time
		result = append(result, f)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}
