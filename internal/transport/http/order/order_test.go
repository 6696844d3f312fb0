package order

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ngocdai99/furniture-backend/internal/service/models/apperror"
	"github.com/ngocdai99/furniture-backend/internal/service/models/currency"
	ordermodel "github.com/ngocdai99/furniture-backend/internal/service/models/order"
	"github.com/ngocdai99/furniture-backend/internal/service/models/orderitem"
)

// MockOrderService is a mock implementation of the service layer.
type MockOrderService struct {
	mock.Mock
}

func (m *MockOrderService) CreateOrder(ctx context.Context, userID int64, items []orderitem.OrderItem) (*ordermodel.Order, error) {
	args := m.Called(ctx, userID, items)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ordermodel.Order), args.Error(1)
}

func (m *MockOrderService) GetOrderDetails(ctx context.Context, orderID int64) (*ordermodel.View, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ordermodel.View), args.Error(1)
}

func (m *MockOrderService) ListOrders(ctx context.Context, userID int64, status *ordermodel.Status) ([]ordermodel.View, error) {
	args := m.Called(ctx, userID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ordermodel.View), args.Error(1)
}

func TestCreateOrder_Success(t *testing.T) {
	svc := &MockOrderService{}
	svc.On("CreateOrder", mock.Anything, int64(7), mock.MatchedBy(func(items []orderitem.OrderItem) bool {
		return len(items) == 2 && items[0].PriceCurrency == currency.CurrencyVND
	})).Return(&ordermodel.Order{ID: 42, UserID: 7, TotalPriceCents: 250}, nil)

	body := `{
		"userId": 7,
		"items": [
			{"productId": 1, "quantity": 2, "priceCents": 100, "priceCurrency": "VND"},
			{"productId": 2, "quantity": 1, "priceCents": 50, "priceCurrency": "VND"}
		]
	}`
	req := httptest.NewRequest(http.MethodPost, "/order/add", bytes.NewBufferString(body))
	rec := httptest.NewRecorder()

	CreateOrder(rec, req, svc)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, true, resp["status"])
	assert.Equal(t, float64(42), resp["orderId"])
}

func TestCreateOrder_MalformedBody(t *testing.T) {
	svc := &MockOrderService{}

	req := httptest.NewRequest(http.MethodPost, "/order/add", bytes.NewBufferString("{not json"))
	rec := httptest.NewRecorder()

	CreateOrder(rec, req, svc)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	svc.AssertNotCalled(t, "CreateOrder", mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateOrder_EmptyItems(t *testing.T) {
	svc := &MockOrderService{}

	req := httptest.NewRequest(http.MethodPost, "/order/add",
		bytes.NewBufferString(`{"userId": 7, "items": []}`))
	rec := httptest.NewRecorder()

	CreateOrder(rec, req, svc)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	svc.AssertNotCalled(t, "CreateOrder", mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateOrder_UnknownCurrency(t *testing.T) {
	svc := &MockOrderService{}

	body := `{"userId": 7, "items": [{"productId": 1, "quantity": 1, "priceCents": 100, "priceCurrency": "EUR"}]}`
	req := httptest.NewRequest(http.MethodPost, "/order/add", bytes.NewBufferString(body))
	rec := httptest.NewRecorder()

	CreateOrder(rec, req, svc)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestOrderDetails_Success(t *testing.T) {
	svc := &MockOrderService{}
	svc.On("GetOrderDetails", mock.Anything, int64(42)).Return(&ordermodel.View{
		GeneralInformation: ordermodel.GeneralInformation{ID: 42, TotalPriceCents: 250},
		Details:            []ordermodel.LineItemView{{ID: 1, ProductName: "Oak table"}},
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/order/details?orderId=42", nil)
	rec := httptest.NewRecorder()

	OrderDetails(rec, req, svc)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, true, resp["status"])

	general := resp["generalInformation"].(map[string]any)
	assert.Equal(t, float64(42), general["id"])
	details := resp["details"].([]any)
	require.Len(t, details, 1)
}

func TestOrderDetails_NotFound(t *testing.T) {
	svc := &MockOrderService{}
	svc.On("GetOrderDetails", mock.Anything, int64(999)).
		Return(nil, apperror.NotFound("order not found"))

	req := httptest.NewRequest(http.MethodGet, "/order/details?orderId=999", nil)
	rec := httptest.NewRecorder()

	OrderDetails(rec, req, svc)

	require.Equal(t, http.StatusNotFound, rec.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, false, resp["status"])
	assert.Equal(t, "order not found", resp["message"])
}

func TestListOrders_PassesStatusFilter(t *testing.T) {
	svc := &MockOrderService{}
	svc.On("ListOrders", mock.Anything, int64(7), mock.MatchedBy(func(status *ordermodel.Status) bool {
		return status != nil && *status == ordermodel.StatusShipped
	})).Return([]ordermodel.View{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/order/list-orders?userId=7&status=SHIPPED", nil)
	rec := httptest.NewRecorder()

	ListOrders(rec, req, svc)

	require.Equal(t, http.StatusOK, rec.Code)
	svc.AssertExpectations(t)
}

func TestListOrders_RejectsUnknownStatus(t *testing.T) {
	svc := &MockOrderService{}

	req := httptest.NewRequest(http.MethodGet, "/order/list-orders?userId=7&status=DONE", nil)
	rec := httptest.NewRecorder()

	ListOrders(rec, req, svc)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	svc.AssertNotCalled(t, "ListOrders", mock.Anything, mock.Anything, mock.Anything)
}
