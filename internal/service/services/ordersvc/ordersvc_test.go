package ordersvc

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	iorder "github.com/ngocdai99/furniture-backend/internal/dal/interfaces/order"
	iorderitem "github.com/ngocdai99/furniture-backend/internal/dal/interfaces/orderitem"
	"github.com/ngocdai99/furniture-backend/internal/dal/interfaces/ioutboxrepo"
	"github.com/ngocdai99/furniture-backend/internal/service/models/apperror"
	"github.com/ngocdai99/furniture-backend/internal/service/models/currency"
	optionmodel "github.com/ngocdai99/furniture-backend/internal/service/models/option"
	"github.com/ngocdai99/furniture-backend/internal/service/models/order"
	"github.com/ngocdai99/furniture-backend/internal/service/models/orderitem"
	"github.com/ngocdai99/furniture-backend/internal/service/models/outbox"
	"github.com/ngocdai99/furniture-backend/internal/service/models/product"
	"github.com/ngocdai99/furniture-backend/internal/service/models/user"
)

// MockOrderRepository is a mock implementation of the order repository.
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) Insert(ctx context.Context, o order.Order) (*order.Order, error) {
	args := m.Called(ctx, o)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) Query(ctx context.Context, filter *order.QueryOrdersModel) ([]order.Order, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]order.Order), args.Error(1)
}

// MockOrderItemRepository is a mock implementation of the order item repository.
type MockOrderItemRepository struct {
	mock.Mock
}

func (m *MockOrderItemRepository) BulkInsert(ctx context.Context, items []orderitem.OrderItem) ([]orderitem.OrderItem, error) {
	args := m.Called(ctx, items)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]orderitem.OrderItem), args.Error(1)
}

func (m *MockOrderItemRepository) Query(ctx context.Context, filter *orderitem.QueryOrderItemsModel) ([]orderitem.OrderItem, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]orderitem.OrderItem), args.Error(1)
}

// MockOutboxRepository is a mock implementation of the outbox repository.
type MockOutboxRepository struct {
	ioutboxrepo.IOutboxRepository
	mock.Mock
}

func (m *MockOutboxRepository) Insert(ctx context.Context, msg outbox.Message) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

// MockUnitOfWork is a mock transaction scope over the three repositories.
type MockUnitOfWork struct {
	mock.Mock

	orderRepo     *MockOrderRepository
	orderItemRepo *MockOrderItemRepository
	outboxRepo    *MockOutboxRepository
}

func newMockUnitOfWork() *MockUnitOfWork {
	return &MockUnitOfWork{
		orderRepo:     &MockOrderRepository{},
		orderItemRepo: &MockOrderItemRepository{},
		outboxRepo:    &MockOutboxRepository{},
	}
}

func (m *MockUnitOfWork) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUnitOfWork) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUnitOfWork) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUnitOfWork) OrderRepository() iorder.PostgresRepository {
	return m.orderRepo
}

func (m *MockUnitOfWork) OrderItemRepository() iorderitem.PostgresRepository {
	return m.orderItemRepo
}

func (m *MockUnitOfWork) OutboxRepository() ioutboxrepo.IOutboxRepository {
	return m.outboxRepo
}

// MockUserRepository is a mock implementation of the user read repository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetByID(ctx context.Context, id int64) (*user.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

// MockProductRepository is a mock implementation of the product read repository.
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) Query(ctx context.Context, filter *product.QueryProductsModel) ([]product.Product, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]product.Product), args.Error(1)
}

// MockOptionRepository is a mock implementation of the option read repository.
type MockOptionRepository struct {
	mock.Mock
}

func (m *MockOptionRepository) QueryByIds(ctx context.Context, ids []int64) ([]optionmodel.Option, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]optionmodel.Option), args.Error(1)
}

func newTestService(work *MockUnitOfWork, users *MockUserRepository, products *MockProductRepository, options *MockOptionRepository) *OrderService {
	return MustNewOrderService(
		WithUnitOfWorkFactory(func() unitOfWork { return work }),
		WithUserRepository(users),
		WithProductRepository(products),
		WithOptionRepository(options),
	)
}

func TestCreateOrder_ComputesTotalAndCommits(t *testing.T) {
	work := newMockUnitOfWork()
	svc := newTestService(work, &MockUserRepository{}, &MockProductRepository{}, &MockOptionRepository{})

	items := []orderitem.OrderItem{
		{ProductID: 1, Quantity: 2, PriceCents: 100, PriceCurrency: currency.CurrencyVND},
		{ProductID: 2, Quantity: 1, PriceCents: 50, PriceCurrency: currency.CurrencyVND},
	}

	work.On("Begin", mock.Anything).Return(nil)
	work.On("Commit", mock.Anything).Return(nil)
	work.On("Rollback", mock.Anything).Return(nil)

	work.orderRepo.On("Insert", mock.Anything, mock.MatchedBy(func(o order.Order) bool {
		return o.TotalPriceCents == 250 &&
			o.TotalPriceCurrency == currency.CurrencyVND &&
			o.Status == order.StatusPending &&
			o.UserID == 7
	})).Return(&order.Order{ID: 42, UserID: 7, TotalPriceCents: 250, TotalPriceCurrency: currency.CurrencyVND, Status: order.StatusPending}, nil)

	work.orderItemRepo.On("BulkInsert", mock.Anything, mock.MatchedBy(func(inserted []orderitem.OrderItem) bool {
		for _, item := range inserted {
			if item.OrderID != 42 {
				return false
			}
		}
		return len(inserted) == 2
	})).Return([]orderitem.OrderItem{{ID: 1, OrderID: 42}, {ID: 2, OrderID: 42}}, nil)

	work.outboxRepo.On("Insert", mock.Anything, mock.MatchedBy(func(msg outbox.Message) bool {
		return msg.QueueName == "furniture.order.created" && len(msg.Payload) > 0
	})).Return(nil)

	created, err := svc.CreateOrder(context.Background(), 7, items)
	require.NoError(t, err)
	assert.Equal(t, int64(42), created.ID)
	assert.Equal(t, int64(250), created.TotalPriceCents)
	assert.Len(t, created.OrderItems, 2)

	work.AssertCalled(t, "Commit", mock.Anything)
	work.outboxRepo.AssertExpectations(t)
}

func TestCreateOrder_EmptyItemsRejectedBeforeAnyWrite(t *testing.T) {
	work := newMockUnitOfWork()
	svc := newTestService(work, &MockUserRepository{}, &MockProductRepository{}, &MockOptionRepository{})

	_, err := svc.CreateOrder(context.Background(), 7, nil)
	require.Error(t, err)
	assert.Equal(t, apperror.KindValidation, apperror.AsError(err).Kind)

	work.AssertNotCalled(t, "Begin", mock.Anything)
	work.orderRepo.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
}

func TestCreateOrder_InvalidItemsRejected(t *testing.T) {
	work := newMockUnitOfWork()
	svc := newTestService(work, &MockUserRepository{}, &MockProductRepository{}, &MockOptionRepository{})

	tests := []struct {
		name  string
		items []orderitem.OrderItem
	}{
		{
			name:  "zero quantity",
			items: []orderitem.OrderItem{{ProductID: 1, Quantity: 0, PriceCents: 100, PriceCurrency: currency.CurrencyVND}},
		},
		{
			name:  "negative price",
			items: []orderitem.OrderItem{{ProductID: 1, Quantity: 1, PriceCents: -1, PriceCurrency: currency.CurrencyVND}},
		},
		{
			name:  "missing product reference",
			items: []orderitem.OrderItem{{Quantity: 1, PriceCents: 100, PriceCurrency: currency.CurrencyVND}},
		},
		{
			name: "mixed currencies",
			items: []orderitem.OrderItem{
				{ProductID: 1, Quantity: 1, PriceCents: 100, PriceCurrency: currency.CurrencyVND},
				{ProductID: 2, Quantity: 1, PriceCents: 100, PriceCurrency: currency.CurrencyUSD},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateOrder(context.Background(), 7, tt.items)
			require.Error(t, err)
			assert.Equal(t, apperror.KindValidation, apperror.AsError(err).Kind)
		})
	}

	work.AssertNotCalled(t, "Begin", mock.Anything)
}

func TestCreateOrder_RollsBackWhenItemInsertFails(t *testing.T) {
	work := newMockUnitOfWork()
	svc := newTestService(work, &MockUserRepository{}, &MockProductRepository{}, &MockOptionRepository{})

	work.On("Begin", mock.Anything).Return(nil)
	work.On("Rollback", mock.Anything).Return(nil)

	work.orderRepo.On("Insert", mock.Anything, mock.Anything).
		Return(&order.Order{ID: 42, UserID: 7}, nil)
	work.orderItemRepo.On("BulkInsert", mock.Anything, mock.Anything).
		Return(nil, errors.New("constraint violation"))

	_, err := svc.CreateOrder(context.Background(), 7, []orderitem.OrderItem{
		{ProductID: 1, Quantity: 1, PriceCents: 100, PriceCurrency: currency.CurrencyVND},
	})
	require.Error(t, err)
	assert.Equal(t, apperror.KindTransaction, apperror.AsError(err).Kind)

	work.AssertCalled(t, "Rollback", mock.Anything)
	work.AssertNotCalled(t, "Commit", mock.Anything)
	work.outboxRepo.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
}

func TestGetOrderDetails_AssemblesView(t *testing.T) {
	work := newMockUnitOfWork()
	users := &MockUserRepository{}
	products := &MockProductRepository{}
	options := &MockOptionRepository{}
	svc := newTestService(work, users, products, options)

	optionID := int64(5)
	work.orderRepo.On("Query", mock.Anything, &order.QueryOrdersModel{Ids: []int64{42}}).
		Return([]order.Order{{ID: 42, UserID: 7, TotalPriceCents: 250, TotalPriceCurrency: currency.CurrencyVND, Status: order.StatusPending}}, nil)
	work.orderItemRepo.On("Query", mock.Anything, &orderitem.QueryOrderItemsModel{OrderIds: []int64{42}}).
		Return([]orderitem.OrderItem{
			{ID: 1, OrderID: 42, ProductID: 1, Quantity: 2, PriceCents: 100, PriceCurrency: currency.CurrencyVND},
			{ID: 2, OrderID: 42, ProductID: 2, OptionID: &optionID, Quantity: 1, PriceCents: 50, PriceCurrency: currency.CurrencyVND},
		}, nil)

	users.On("GetByID", mock.Anything, int64(7)).
		Return(&user.User{ID: 7, Name: "Dai", Email: "dai@example.com"}, nil)
	products.On("Query", mock.Anything, mock.Anything).
		Return([]product.Product{{ID: 1, Name: "Oak table"}, {ID: 2, Name: "Walnut chair"}}, nil)
	options.On("QueryByIds", mock.Anything, []int64{5}).
		Return([]optionmodel.Option{{ID: 5, ProductID: 2, OptionName: "Dark finish"}}, nil)

	view, err := svc.GetOrderDetails(context.Background(), 42)
	require.NoError(t, err)

	assert.Equal(t, int64(42), view.GeneralInformation.ID)
	require.NotNil(t, view.GeneralInformation.User)
	assert.Equal(t, "Dai", view.GeneralInformation.User.Name)

	require.Len(t, view.Details, 2)
	assert.Equal(t, "Oak table", view.Details[0].ProductName)
	assert.Nil(t, view.Details[0].Option)
	assert.Equal(t, "Walnut chair", view.Details[1].ProductName)
	require.NotNil(t, view.Details[1].Option)
	assert.Equal(t, "Dark finish", view.Details[1].Option.OptionName)
}

func TestGetOrderDetails_UnknownOrderIsNotFound(t *testing.T) {
	work := newMockUnitOfWork()
	svc := newTestService(work, &MockUserRepository{}, &MockProductRepository{}, &MockOptionRepository{})

	work.orderRepo.On("Query", mock.Anything, mock.Anything).Return([]order.Order{}, nil)

	_, err := svc.GetOrderDetails(context.Background(), 999)
	require.Error(t, err)
	assert.Equal(t, apperror.KindNotFound, apperror.AsError(err).Kind)
}

func TestListOrders_FiltersByUserAndStatus(t *testing.T) {
	work := newMockUnitOfWork()
	users := &MockUserRepository{}
	products := &MockProductRepository{}
	options := &MockOptionRepository{}
	svc := newTestService(work, users, products, options)

	status := order.StatusShipped
	work.orderRepo.On("Query", mock.Anything, &order.QueryOrdersModel{
		UserIds:  []int64{7},
		Statuses: []order.Status{order.StatusShipped},
	}).Return([]order.Order{
		{ID: 1, UserID: 7, Status: order.StatusShipped},
		{ID: 2, UserID: 7, Status: order.StatusShipped},
	}, nil)
	work.orderItemRepo.On("Query", mock.Anything, mock.Anything).
		Return([]orderitem.OrderItem{}, nil)
	users.On("GetByID", mock.Anything, int64(7)).Return(&user.User{ID: 7}, nil)

	views, err := svc.ListOrders(context.Background(), 7, &status)
	require.NoError(t, err)
	require.Len(t, views, 2)
	// Result order follows the header query.
	assert.Equal(t, int64(1), views[0].GeneralInformation.ID)
	assert.Equal(t, int64(2), views[1].GeneralInformation.ID)
}

func TestListOrders_EmptyResultIsSuccess(t *testing.T) {
	work := newMockUnitOfWork()
	svc := newTestService(work, &MockUserRepository{}, &MockProductRepository{}, &MockOptionRepository{})

	work.orderRepo.On("Query", mock.Anything, &order.QueryOrdersModel{UserIds: []int64{7}}).
		Return([]order.Order{}, nil)

	views, err := svc.ListOrders(context.Background(), 7, nil)
	require.NoError(t, err)
	assert.Empty(t, views)
}
