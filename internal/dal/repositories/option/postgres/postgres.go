package postgresrepo

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/ngocdai99/furniture-backend/internal/dal/postgres"
	"github.com/ngocdai99/furniture-backend/internal/service/models/currency"
	"github.com/ngocdai99/furniture-backend/internal/service/models/option"
)

// OptionDal represents the option data access layer model.
type OptionDal struct {
	Id            int64  `db:"id"`
	ProductId     int64  `db:"product_id"`
	ColorId       int64  `db:"color_id"`
	OptionName    string `db:"option_name"`
	PriceCents    int64  `db:"price_cents"`
	PriceCurrency string `db:"price_currency"`
}

// ToModel converts OptionDal to the service layer Option model.
func (o *OptionDal) ToModel() (*option.Option, error) {
	cur, err := currency.ParseCurrency(o.PriceCurrency)
	if err != nil {
		return nil, err
	}

	return &option.Option{
		ID:            o.Id,
		ProductID:     o.ProductId,
		ColorID:       o.ColorId,
		OptionName:    o.OptionName,
		PriceCents:    o.PriceCents,
		PriceCurrency: cur,
	}, nil
}

// PostgresOptionRepository represents a Postgres option repository.
type PostgresOptionRepository struct {
	conn postgres.GenericConn
	sb   sq.StatementBuilderType
}

// NewPostgresOptionRepository creates a new Postgres option repository.
func NewPostgresOptionRepository(conn postgres.GenericConn) *PostgresOptionRepository {
	return &PostgresOptionRepository{
		conn: conn,
		sb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

const optionReturning = "RETURNING id, product_id, color_id, option_name, price_cents, price_currency"

// Insert inserts an option and returns it with the generated id.
func (r *PostgresOptionRepository) Insert(ctx context.Context, o option.Option) (*option.Option, error) {
	sql, args, err := r.sb.
		Insert("options").
		Columns("product_id", "color_id", "option_name", "price_cents", "price_currency").
		Values(o.ProductID, o.ColorID, o.OptionName, o.PriceCents, o.PriceCurrency.String()).
		Suffix(optionReturning).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build insert query: %w", err)
	}

	dal, err := scanOptionRow(r.conn.QueryRow(ctx, sql, args...).Scan)
	if err != nil {
		return nil, fmt.Errorf("failed to insert option: %w", err)
	}

	return dal.ToModel()
}

// Update overwrites an option. Returns nil when no option matches.
func (r *PostgresOptionRepository) Update(ctx context.Context, o option.Option) (*option.Option, error) {
	sql, args, err := r.sb.
		Update("options").
		Set("product_id", o.ProductID).
		Set("color_id", o.ColorID).
		Set("option_name", o.OptionName).
		Set("price_cents", o.PriceCents).
		Set("price_currency", o.PriceCurrency.String()).
		Where(sq.Eq{"id": o.ID}).
		Suffix(optionReturning).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build update query: %w", err)
	}

	dal, err := scanOptionRow(r.conn.QueryRow(ctx, sql, args...).Scan)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update option: %w", err)
	}

	return dal.ToModel()
}

// QueryByIds retrieves options by id.
func (r *PostgresOptionRepository) QueryByIds(ctx context.Context, ids []int64) ([]option.Option, error) {
	return r.query(ctx, sq.Eq{"id": ids})
}

// QueryByProductIds retrieves options for the given products.
func (r *PostgresOptionRepository) QueryByProductIds(ctx context.Context, productIds []int64) ([]option.Option, error) {
	return r.query(ctx, sq.Eq{"product_id": productIds})
}

func (r *PostgresOptionRepository) query(ctx context.Context, where sq.Eq) ([]option.Option, error) {
	sql, args, err := r.sb.
		Select("id", "product_id", "color_id", "option_name", "price_cents", "price_currency").
		From("options").
		Where(where).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := r.conn.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query options: %w", err)
	}
	defer rows.Close()

	var result []option.Option
	for rows.Next() {
		dal, err := scanOptionRow(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan option: %w", err)
		}
		model, err := dal.ToModel()
		if err != nil {
			return nil, fmt.Errorf("failed to convert option dal to model: %w", err)
		}
		result = append(result, *model)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}

func scanOptionRow(scan func(dest ...any) error) (*OptionDal, error) {
	var dal OptionDal
	err := scan(
		&dal.Id,
		&dal.ProductId,
		&dal.ColorId,
		&dal.OptionName,
		&dal.PriceCents,
		&dal.PriceCurrency,
	)
	if err != nil {
		return nil, err
	}

	return &dal, nil
}
