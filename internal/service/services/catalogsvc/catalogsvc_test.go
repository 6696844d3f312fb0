package catalogsvc

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ngocdai99/furniture-backend/internal/service/models/apperror"
	"github.com/ngocdai99/furniture-backend/internal/service/models/category"
	"github.com/ngocdai99/furniture-backend/internal/service/models/color"
	"github.com/ngocdai99/furniture-backend/internal/service/models/favorite"
	optionmodel "github.com/ngocdai99/furniture-backend/internal/service/models/option"
	"github.com/ngocdai99/furniture-backend/internal/service/models/product"
	"github.com/ngocdai99/furniture-backend/internal/service/models/size"
)

// MockCategoryRepository is a mock implementation of the category repository.
type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) Insert(ctx context.Context, c category.Category) (*category.Category, error) {
	args := m.Called(ctx, c)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*category.Category), args.Error(1)
}

func (m *MockCategoryRepository) List(ctx context.Context) ([]category.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]category.Category), args.Error(1)
}

func (m *MockCategoryRepository) GetByID(ctx context.Context, id int64) (*category.Category, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*category.Category), args.Error(1)
}

func (m *MockCategoryRepository) GetByName(ctx context.Context, name string) (*category.Category, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*category.Category), args.Error(1)
}

func (m *MockCategoryRepository) Update(ctx context.Context, c category.Category) (*category.Category, error) {
	args := m.Called(ctx, c)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*category.Category), args.Error(1)
}

func (m *MockCategoryRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockProductRepository is a mock implementation of the product repository.
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) Insert(ctx context.Context, p product.Product) (*product.Product, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*product.Product), args.Error(1)
}

func (m *MockProductRepository) Query(ctx context.Context, filter *product.QueryProductsModel) ([]product.Product, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]product.Product), args.Error(1)
}

func (m *MockProductRepository) GetByID(ctx context.Context, id int64) (*product.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*product.Product), args.Error(1)
}

func (m *MockProductRepository) Update(ctx context.Context, p product.Product) (*product.Product, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*product.Product), args.Error(1)
}

func (m *MockProductRepository) CountByCategory(ctx context.Context, categoryID int64) (int64, error) {
	args := m.Called(ctx, categoryID)
	return args.Get(0).(int64), args.Error(1)
}

// MockSizeRepository is a mock implementation of the size repository.
type MockSizeRepository struct {
	mock.Mock
}

func (m *MockSizeRepository) Insert(ctx context.Context, s size.Size) (*size.Size, error) {
	args := m.Called(ctx, s)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*size.Size), args.Error(1)
}

func (m *MockSizeRepository) List(ctx context.Context) ([]size.Size, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]size.Size), args.Error(1)
}

func (m *MockSizeRepository) Update(ctx context.Context, s size.Size) (*size.Size, error) {
	args := m.Called(ctx, s)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*size.Size), args.Error(1)
}

// MockColorRepository is a mock implementation of the color repository.
type MockColorRepository struct {
	mock.Mock
}

func (m *MockColorRepository) Insert(ctx context.Context, c color.Color) (*color.Color, error) {
	args := m.Called(ctx, c)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*color.Color), args.Error(1)
}

func (m *MockColorRepository) List(ctx context.Context) ([]color.Color, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]color.Color), args.Error(1)
}

func (m *MockColorRepository) GetByName(ctx context.Context, name string) (*color.Color, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*color.Color), args.Error(1)
}

func (m *MockColorRepository) Update(ctx context.Context, c color.Color) (*color.Color, error) {
	args := m.Called(ctx, c)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*color.Color), args.Error(1)
}

// MockOptionRepository is a mock implementation of the option repository.
type MockOptionRepository struct {
	mock.Mock
}

func (m *MockOptionRepository) Insert(ctx context.Context, o optionmodel.Option) (*optionmodel.Option, error) {
	args := m.Called(ctx, o)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*optionmodel.Option), args.Error(1)
}

func (m *MockOptionRepository) Update(ctx context.Context, o optionmodel.Option) (*optionmodel.Option, error) {
	args := m.Called(ctx, o)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*optionmodel.Option), args.Error(1)
}

func (m *MockOptionRepository) QueryByProductIds(ctx context.Context, productIds []int64) ([]optionmodel.Option, error) {
	args := m.Called(ctx, productIds)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]optionmodel.Option), args.Error(1)
}

// MockFavoriteRepository is a mock implementation of the favorite repository.
type MockFavoriteRepository struct {
	mock.Mock
}

func (m *MockFavoriteRepository) Insert(ctx context.Context, f favorite.Favorite) (*favorite.Favorite, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*favorite.Favorite), args.Error(1)
}

func (m *MockFavoriteRepository) QueryByUser(ctx context.Context, userID int64) ([]favorite.Favorite, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]favorite.Favorite), args.Error(1)
}

type mocks struct {
	categories *MockCategoryRepository
	products   *MockProductRepository
	sizes      *MockSizeRepository
	colors     *MockColorRepository
	options    *MockOptionRepository
	favorites  *MockFavoriteRepository
}

func newTestService() (*CatalogService, *mocks) {
	m := &mocks{
		categories: &MockCategoryRepository{},
		products:   &MockProductRepository{},
		sizes:      &MockSizeRepository{},
		colors:     &MockColorRepository{},
		options:    &MockOptionRepository{},
		favorites:  &MockFavoriteRepository{},
	}
	svc := MustNewCatalogService(WithRepositories(
		m.categories, m.products, m.sizes, m.colors, m.options, m.favorites,
	))

	return svc, m
}

func TestAddCategory_DuplicateNameConflicts(t *testing.T) {
	svc, m := newTestService()

	m.categories.On("GetByName", mock.Anything, "Chairs").
		Return(&category.Category{ID: 1, Name: "Chairs"}, nil)

	_, err := svc.AddCategory(context.Background(), category.Category{Name: "Chairs"})
	require.Error(t, err)
	assert.Equal(t, apperror.KindConflict, apperror.AsError(err).Kind)

	m.categories.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
}

func TestDeleteCategory_BlockedByReferencingProducts(t *testing.T) {
	svc, m := newTestService()

	m.categories.On("GetByID", mock.Anything, int64(1)).
		Return(&category.Category{ID: 1, Name: "Chairs"}, nil)
	m.products.On("CountByCategory", mock.Anything, int64(1)).Return(int64(3), nil)

	err := svc.DeleteCategory(context.Background(), 1)
	require.Error(t, err)
	assert.Equal(t, apperror.KindConflict, apperror.AsError(err).Kind)

	m.categories.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestDeleteCategory_UnreferencedIsDeleted(t *testing.T) {
	svc, m := newTestService()

	m.categories.On("GetByID", mock.Anything, int64(1)).
		Return(&category.Category{ID: 1, Name: "Chairs"}, nil)
	m.products.On("CountByCategory", mock.Anything, int64(1)).Return(int64(0), nil)
	m.categories.On("Delete", mock.Anything, int64(1)).Return(nil)

	require.NoError(t, svc.DeleteCategory(context.Background(), 1))
	m.categories.AssertCalled(t, "Delete", mock.Anything, int64(1))
}

func TestDeleteCategory_UnknownIsNotFound(t *testing.T) {
	svc, m := newTestService()

	m.categories.On("GetByID", mock.Anything, int64(99)).Return(nil, nil)

	err := svc.DeleteCategory(context.Background(), 99)
	require.Error(t, err)
	assert.Equal(t, apperror.KindNotFound, apperror.AsError(err).Kind)
}

func TestAddColor_DuplicateNameConflicts(t *testing.T) {
	svc, m := newTestService()

	m.colors.On("GetByName", mock.Anything, "Oak").
		Return(&color.Color{ID: 1, ColorName: "Oak"}, nil)

	_, err := svc.AddColor(context.Background(), color.Color{ColorName: "Oak"})
	require.Error(t, err)
	assert.Equal(t, apperror.KindConflict, apperror.AsError(err).Kind)
}

func TestAddProduct_MissingCategoryRejected(t *testing.T) {
	svc, m := newTestService()

	m.categories.On("GetByID", mock.Anything, int64(9)).Return(nil, nil)

	_, err := svc.AddProduct(context.Background(), product.Product{Name: "Oak table", CategoryID: 9})
	require.Error(t, err)
	assert.Equal(t, apperror.KindValidation, apperror.AsError(err).Kind)

	m.products.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
}

func TestListProducts_ResolvesCategories(t *testing.T) {
	svc, m := newTestService()

	m.products.On("Query", mock.Anything, mock.Anything).
		Return([]product.Product{{ID: 1, Name: "Oak table", CategoryID: 2}}, nil)
	m.categories.On("List", mock.Anything).
		Return([]category.Category{{ID: 2, Name: "Tables"}}, nil)

	products, err := svc.ListProducts(context.Background(), &product.QueryProductsModel{})
	require.NoError(t, err)
	require.Len(t, products, 1)
	require.NotNil(t, products[0].Category)
	assert.Equal(t, "Tables", products[0].Category.Name)
}

func TestGetProductDetail_IncludesOptions(t *testing.T) {
	svc, m := newTestService()

	m.products.On("GetByID", mock.Anything, int64(1)).
		Return(&product.Product{ID: 1, Name: "Oak table"}, nil)
	m.options.On("QueryByProductIds", mock.Anything, []int64{1}).
		Return([]optionmodel.Option{{ID: 5, ProductID: 1, OptionName: "Dark finish"}}, nil)

	detail, err := svc.GetProductDetail(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "Oak table", detail.Product.Name)
	require.Len(t, detail.Options, 1)
}

func TestAddFavorite_MissingProductRejected(t *testing.T) {
	svc, m := newTestService()

	m.products.On("GetByID", mock.Anything, int64(9)).Return(nil, nil)

	_, err := svc.AddFavorite(context.Background(), 7, 9)
	require.Error(t, err)
	assert.Equal(t, apperror.KindValidation, apperror.AsError(err).Kind)
}
