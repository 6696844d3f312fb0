package catalogsvc

import (
	"context"
	"time"

	"github.com/ngocdai99/furniture-backend/internal/dal/postgres"
	categoryrepo "github.com/ngocdai99/furniture-backend/internal/dal/repositories/category/postgres"
	colorrepo "github.com/ngocdai99/furniture-backend/internal/dal/repositories/color/postgres"
	favoriterepo "github.com/ngocdai99/furniture-backend/internal/dal/repositories/favorite/postgres"
	optionrepo "github.com/ngocdai99/furniture-backend/internal/dal/repositories/option/postgres"
	productrepo "github.com/ngocdai99/furniture-backend/internal/dal/repositories/product/postgres"
	sizerepo "github.com/ngocdai99/furniture-backend/internal/dal/repositories/size/postgres"
	"github.com/ngocdai99/furniture-backend/internal/service/models/apperror"
	"github.com/ngocdai99/furniture-backend/internal/service/models/category"
	"github.com/ngocdai99/furniture-backend/internal/service/models/color"
	"github.com/ngocdai99/furniture-backend/internal/service/models/favorite"
	optionmodel "github.com/ngocdai99/furniture-backend/internal/service/models/option"
	"github.com/ngocdai99/furniture-backend/internal/service/models/product"
	"github.com/ngocdai99/furniture-backend/internal/service/models/size"
)

type categoryRepository interface {
	Insert(ctx context.Context, c category.Category) (*category.Category, error)
	List(ctx context.Context) ([]category.Category, error)
	GetByID(ctx context.Context, id int64) (*category.Category, error)
	GetByName(ctx context.Context, name string) (*category.Category, error)
	Update(ctx context.Context, c category.Category) (*category.Category, error)
	Delete(ctx context.Context, id int64) error
}

type productRepository interface {
	Insert(ctx context.Context, p product.Product) (*product.Product, error)
	Query(ctx context.Context, filter *product.QueryProductsModel) ([]product.Product, error)
	GetByID(ctx context.Context, id int64) (*product.Product, error)
	Update(ctx context.Context, p product.Product) (*product.Product, error)
	CountByCategory(ctx context.Context, categoryID int64) (int64, error)
}

type sizeRepository interface {
	Insert(ctx context.Context, s size.Size) (*size.Size, error)
	List(ctx context.Context) ([]size.Size, error)
	Update(ctx context.Context, s size.Size) (*size.Size, error)
}

type colorRepository interface {
	Insert(ctx context.Context, c color.Color) (*color.Color, error)
	List(ctx context.Context) ([]color.Color, error)
	GetByName(ctx context.Context, name string) (*color.Color, error)
	Update(ctx context.Context, c color.Color) (*color.Color, error)
}

type optionRepository interface {
	Insert(ctx context.Context, o optionmodel.Option) (*optionmodel.Option, error)
	Update(ctx context.Context, o optionmodel.Option) (*optionmodel.Option, error)
	QueryByProductIds(ctx context.Context, productIds []int64) ([]optionmodel.Option, error)
}

type favoriteRepository interface {
	Insert(ctx context.Context, f favorite.Favorite) (*favorite.Favorite, error)
	QueryByUser(ctx context.Context, userID int64) ([]favorite.Favorite, error)
}

// CatalogService covers the plain CRUD side of the store: categories,
// products, sizes, colors, options and favorites. No cross-entity workflow
// here beyond existence checks.
type CatalogService struct {
	pgClient *postgres.Client

	categoryRepo categoryRepository
	productRepo  productRepository
	sizeRepo     sizeRepository
	colorRepo    colorRepository
	optionRepo   optionRepository
	favoriteRepo favoriteRepository
}

// option is a function that configures the CatalogService.
type option func(*CatalogService)

// MustNewCatalogService creates a new CatalogService.
func MustNewCatalogService(opts ...option) *CatalogService {
	s := &CatalogService{}
	for _, opt := range opts {
		opt(s)
	}

	if s.pgClient != nil {
		pool := s.pgClient.Pool()
		if s.categoryRepo == nil {
			s.categoryRepo = categoryrepo.NewPostgresCategoryRepository(pool)
		}
		if s.productRepo == nil {
			s.productRepo = productrepo.NewPostgresProductRepository(pool)
		}
		if s.sizeRepo == nil {
			s.sizeRepo = sizerepo.NewPostgresSizeRepository(pool)
		}
		if s.colorRepo == nil {
			s.colorRepo = colorrepo.NewPostgresColorRepository(pool)
		}
		if s.optionRepo == nil {
			s.optionRepo = optionrepo.NewPostgresOptionRepository(pool)
		}
		if s.favoriteRepo == nil {
			s.favoriteRepo = favoriterepo.NewPostgresFavoriteRepository(pool)
		}
	}
	if s.categoryRepo == nil || s.productRepo == nil || s.sizeRepo == nil ||
		s.colorRepo == nil || s.optionRepo == nil || s.favoriteRepo == nil {
		panic("catalogsvc: repositories are required")
	}

	return s
}

// WithPostgresClient sets the Postgres client for the CatalogService.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithPostgresClient(pgClient *postgres.Client) option {
	return func(s *CatalogService) {
		s.pgClient = pgClient
	}
}

// WithRepositories overrides the repositories, mainly for tests.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithRepositories(
	categoryRepo categoryRepository,
	productRepo productRepository,
	sizeRepo sizeRepository,
	colorRepo colorRepository,
	optionRepo optionRepository,
	favoriteRepo favoriteRepository,
) option {
	return func(s *CatalogService) {
		s.categoryRepo = categoryRepo
		s.productRepo = productRepo
		s.sizeRepo = sizeRepo
		s.colorRepo = colorRepo
		s.optionRepo = optionRepo
		s.favoriteRepo = favoriteRepo
	}
}

// ListCategories returns all categories.
func (s *CatalogService) ListCategories(ctx context.Context) ([]category.Category, error) {
	return s.categoryRepo.List(ctx)
}

// GetCategoryByName returns the category with the exact given name.
func (s *CatalogService) GetCategoryByName(ctx context.Context, name string) (*category.Category, error) {
	c, err := s.categoryRepo.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, apperror.NotFound("category not found")
	}

	return c, nil
}

// AddCategory creates a category. Names are unique.
func (s *CatalogService) AddCategory(ctx context.Context, c category.Category) (*category.Category, error) {
	existing, err := s.categoryRepo.GetByName(ctx, c.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.Conflict("category name already exists")
	}

	return s.categoryRepo.Insert(ctx, c)
}

// UpdateCategory overwrites a category.
func (s *CatalogService) UpdateCategory(ctx context.Context, c category.Category) (*category.Category, error) {
	updated, err := s.categoryRepo.Update(ctx, c)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, apperror.NotFound("category not found")
	}

	return updated, nil
}

// DeleteCategory removes a category unless products still reference it.
func (s *CatalogService) DeleteCategory(ctx context.Context, id int64) error {
	existing, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return apperror.NotFound("category not found")
	}

	count, err := s.productRepo.CountByCategory(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return apperror.Conflict("category is referenced by existing products")
	}

	return s.categoryRepo.Delete(ctx, id)
}

// ListProducts returns products matching the filter, each enriched with its
// category.
func (s *CatalogService) ListProducts(ctx context.Context, filter *product.QueryProductsModel) ([]product.Product, error) {
	products, err := s.productRepo.Query(ctx, filter)
	if err != nil {
		return nil, err
	}
	if len(products) == 0 {
		return []product.Product{}, nil
	}

	categories, err := s.categoryRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	byID := make(map[int64]category.Category, len(categories))
	for _, c := range categories {
		byID[c.ID] = c
	}

	for i := range products {
		if c, ok := byID[products[i].CategoryID]; ok {
			products[i].Category = &c
		}
	}

	return products, nil
}

// ProductDetail is a product together with its purchasable options.
type ProductDetail struct {
	Product product.Product      `json:"product"`
	Options []optionmodel.Option `json:"options"`
}

// GetProductDetail returns one product with its options.
func (s *CatalogService) GetProductDetail(ctx context.Context, id int64) (*ProductDetail, error) {
	p, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, apperror.NotFound("product not found")
	}

	options, err := s.optionRepo.QueryByProductIds(ctx, []int64{id})
	if err != nil {
		return nil, err
	}
	if options == nil {
		options = []optionmodel.Option{}
	}

	return &ProductDetail{Product: *p, Options: options}, nil
}

// AddProduct creates a product after checking the category exists.
func (s *CatalogService) AddProduct(ctx context.Context, p product.Product) (*product.Product, error) {
	c, err := s.categoryRepo.GetByID(ctx, p.CategoryID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, apperror.Validation("category does not exist")
	}

	return s.productRepo.Insert(ctx, p)
}

// UpdateProduct overwrites a product.
func (s *CatalogService) UpdateProduct(ctx context.Context, p product.Product) (*product.Product, error) {
	updated, err := s.productRepo.Update(ctx, p)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, apperror.NotFound("product not found")
	}

	return updated, nil
}

// AddSize creates a size.
func (s *CatalogService) AddSize(ctx context.Context, sz size.Size) (*size.Size, error) {
	return s.sizeRepo.Insert(ctx, sz)
}

// ListSizes returns all sizes.
func (s *CatalogService) ListSizes(ctx context.Context) ([]size.Size, error) {
	return s.sizeRepo.List(ctx)
}

// UpdateSize renames a size.
func (s *CatalogService) UpdateSize(ctx context.Context, sz size.Size) (*size.Size, error) {
	updated, err := s.sizeRepo.Update(ctx, sz)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, apperror.NotFound("size not found")
	}

	return updated, nil
}

// AddColor creates a color. Names are unique.
func (s *CatalogService) AddColor(ctx context.Context, c color.Color) (*color.Color, error) {
	existing, err := s.colorRepo.GetByName(ctx, c.ColorName)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.Conflict("color name already exists")
	}

	return s.colorRepo.Insert(ctx, c)
}

// ListColors returns all colors.
func (s *CatalogService) ListColors(ctx context.Context) ([]color.Color, error) {
	return s.colorRepo.List(ctx)
}

// UpdateColor renames a color.
func (s *CatalogService) UpdateColor(ctx context.Context, c color.Color) (*color.Color, error) {
	updated, err := s.colorRepo.Update(ctx, c)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, apperror.NotFound("color not found")
	}

	return updated, nil
}

// AddOption creates an option after checking the product exists.
func (s *CatalogService) AddOption(ctx context.Context, o optionmodel.Option) (*optionmodel.Option, error) {
	p, err := s.productRepo.GetByID(ctx, o.ProductID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, apperror.Validation("product does not exist")
	}

	return s.optionRepo.Insert(ctx, o)
}

// UpdateOption overwrites an option.
func (s *CatalogService) UpdateOption(ctx context.Context, o optionmodel.Option) (*optionmodel.Option, error) {
	updated, err := s.optionRepo.Update(ctx, o)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, apperror.NotFound("option not found")
	}

	return updated, nil
}

// ListOptionsByProduct returns all options of one product.
func (s *CatalogService) ListOptionsByProduct(ctx context.Context, productID int64) ([]optionmodel.Option, error) {
	options, err := s.optionRepo.QueryByProductIds(ctx, []int64{productID})
	if err != nil {
		return nil, err
	}
	if options == nil {
		options = []optionmodel.Option{}
	}

	return options, nil
}

// AddFavorite marks a product as a favorite of a user.
func (s *CatalogService) AddFavorite(ctx context.Context, userID, productID int64) (*favorite.Favorite, error) {
	p, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, apperror.Validation("product does not exist")
	}

	return s.favoriteRepo.Insert(ctx, favorite.Favorite{
		UserID:    userID,
		ProductID: productID,
		AddedAt:   time.Now(),
	})
}

// ListFavoritesByUser returns all favorites of one user.
func (s *CatalogService) ListFavoritesByUser(ctx context.Context, userID int64) ([]favorite.Favorite, error) {
	favorites, err := s.favoriteRepo.QueryByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if favorites == nil {
		favorites = []favorite.Favorite{}
	}

	return favorites, nil
}
