package postgresrepo

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/ngocdai99/furniture-backend/internal/dal/postgres"
	"github.com/ngocdai99/furniture-backend/internal/service/models/currency"
	"github.com/ngocdai99/furniture-backend/internal/service/models/product"
)

// ProductDal represents the product data access layer model.
type ProductDal struct {
	Id            int64    `db:"id"`
	Name          string   `db:"name"`
	Description   string   `db:"description"`
	PriceCents    int64    `db:"price_cents"`
	PriceCurrency string   `db:"price_currency"`
	Images        []string `db:"images"`
	Rating        float64  `db:"rating"`
	Voting        int      `db:"voting"`
	Quantity      int      `db:"quantity"`
	CategoryId    int64    `db:"category_id"`
}

// ToModel converts ProductDal to the service layer Product model.
func (p *ProductDal) ToModel() (*product.Product, error) {
	cur, err := currency.ParseCurrency(p.PriceCurrency)
	if err != nil {
		return nil, err
	}

	images := p.Images
	if images == nil {
		images = []string{}
	}

	return &product.Product{
		ID:            p.Id,
		Name:          p.Name,
		Description:   p.Description,
		PriceCents:    p.PriceCents,
		PriceCurrency: cur,
		Images:        images,
		Rating:        p.Rating,
		Voting:        p.Voting,
		Quantity:      p.Quantity,
		CategoryID:    p.CategoryId,
	}, nil
}

// PostgresProductRepository represents a Postgres product repository.
type PostgresProductRepository struct {
	conn postgres.GenericConn
	sb   sq.StatementBuilderType
}

// NewPostgresProductRepository creates a new Postgres product repository.
func NewPostgresProductRepository(conn postgres.GenericConn) *PostgresProductRepository {
	return &PostgresProductRepository{
		conn: conn,
		sb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

var productColumns = []string{
	"id", "name", "description", "price_cents", "price_currency",
	"images", "rating", "voting", "quantity", "category_id",
}

const productReturning = "RETURNING id, name, description, price_cents, price_currency, images, rating, voting, quantity, category_id"

// Insert inserts a product and returns it with the generated id.
func (r *PostgresProductRepository) Insert(ctx context.Context, p product.Product) (*product.Product, error) {
	sql, args, err := r.sb.
		Insert("products").
		Columns(
			"name", "description", "price_cents", "price_currency",
			"images", "rating", "voting", "quantity", "category_id",
		).
		Values(
			p.Name, p.Description, p.PriceCents, p.PriceCurrency.String(),
			p.Images, p.Rating, p.Voting, p.Quantity, p.CategoryID,
		).
		Suffix(productReturning).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build insert query: %w", err)
	}

	dal, err := scanProductRow(r.conn.QueryRow(ctx, sql, args...).Scan)
	if err != nil {
		return nil, fmt.Errorf("failed to insert product: %w", err)
	}

	return dal.ToModel()
}

// Query retrieves products matching the filter.
func (r *PostgresProductRepository) Query(ctx context.Context, filter *product.QueryProductsModel) ([]product.Product, error) {
	query := r.sb.
		Select(productColumns...).
		From("products")

	if len(filter.Ids) > 0 {
		query = query.Where(sq.Eq{"id": filter.Ids})
	}

	if len(filter.CategoryIds) > 0 {
		query = query.Where(sq.Eq{"category_id": filter.CategoryIds})
	}

	if filter.Name != "" {
		query = query.Where(sq.ILike{"name": "%" + filter.Name + "%"})
	}

	if filter.MinPriceCents != nil {
		query = query.Where(sq.GtOrEq{"price_cents": *filter.MinPriceCents})
	}

	if filter.MaxPriceCents != nil {
		query = query.Where(sq.LtOrEq{"price_cents": *filter.MaxPriceCents})
	}

	if filter.MaxQuantity != nil {
		query = query.Where(sq.Lt{"quantity": *filter.MaxQuantity})
	}

	switch filter.Sort {
	case product.SortPriceAsc:
		query = query.OrderBy("price_cents ASC")
	case product.SortPriceDesc:
		query = query.OrderBy("price_cents DESC")
	default:
		query = query.OrderBy("id ASC")
	}

	if filter.Limit > 0 {
		query = query.Limit(uint64(filter.Limit))
	}

	if filter.Offset > 0 {
		query = query.Offset(uint64(filter.Offset))
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := r.conn.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	var result []product.Product
	for rows.Next() {
		dal, err := scanProductRow(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		model, err := dal.ToModel()
		if err != nil {
			return nil, fmt.Errorf("failed to convert product dal to model: %w", err)
		}
		result = append(result, *model)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}

// GetByID retrieves a product by id. Returns nil when no product matches.
func (r *PostgresProductRepository) GetByID(ctx context.Context, id int64) (*product.Product, error) {
	sql, args, err := r.sb.
		Select(productColumns...).
		From("products").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	dal, err := scanProductRow(r.conn.QueryRow(ctx, sql, args...).Scan)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query product: %w", err)
	}

	return dal.ToModel()
}

// Update overwrites a product. Returns nil when no product matches.
func (r *PostgresProductRepository) Update(ctx context.Context, p product.Product) (*product.Product, error) {
	sql, args, err := r.sb.
		Update("products").
		Set("name", p.Name).
		Set("description", p.Description).
		Set("price_cents", p.PriceCents).
		Set("price_currency", p.PriceCurrency.String()).
		Set("images", p.Images).
		Set("rating", p.Rating).
		Set("voting", p.Voting).
		Set("quantity", p.Quantity).
		Set("category_id", p.CategoryID).
		Where(sq.Eq{"id": p.ID}).
		Suffix(productReturning).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build update query: %w", err)
	}

	dal, err := scanProductRow(r.conn.QueryRow(ctx, sql, args...).Scan)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	return dal.ToModel()
}

// CountByCategory returns how many products reference the given category.
func (r *PostgresProductRepository) CountByCategory(ctx context.Context, categoryID int64) (int64, error) {
	sql, args, err := r.sb.
		Select("COUNT(*)").
		From("products").
		Where(sq.Eq{"category_id": categoryID}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build count query: %w", err)
	}

	var count int64
	if err := r.conn.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}

	return count, nil
}

func scanProductRow(scan func(dest ...any) error) (*ProductDal, error) {
	var dal ProductDal
	err := scan(
		&dal.Id,
		&dal.Name,
		&dal.Description,
		&dal.PriceCents,
		&dal.PriceCurrency,
		&dal.Images,
		&dal.Rating,
		&dal.Voting,
		&dal.Quantity,
		&dal.CategoryId,
	)
	if err != nil {
		return nil, err
	}

	return &dal, nil
}
