package ordersvc

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	iorder "github.com/ngocdai99/furniture-backend/internal/dal/interfaces/order"
	iorderitem "github.com/ngocdai99/furniture-backend/internal/dal/interfaces/orderitem"
	"github.com/ngocdai99/furniture-backend/internal/dal/interfaces/ioutboxrepo"
	"github.com/ngocdai99/furniture-backend/internal/dal/postgres"
	optionrepo "github.com/ngocdai99/furniture-backend/internal/dal/repositories/option/postgres"
	productrepo "github.com/ngocdai99/furniture-backend/internal/dal/repositories/product/postgres"
	userrepo "github.com/ngocdai99/furniture-backend/internal/dal/repositories/user/postgres"
	"github.com/ngocdai99/furniture-backend/internal/dal/uow"
	"github.com/ngocdai99/furniture-backend/internal/service/models/apperror"
	"github.com/ngocdai99/furniture-backend/internal/service/models/events"
	optionmodel "github.com/ngocdai99/furniture-backend/internal/service/models/option"
	"github.com/ngocdai99/furniture-backend/internal/service/models/order"
	"github.com/ngocdai99/furniture-backend/internal/service/models/orderitem"
	"github.com/ngocdai99/furniture-backend/internal/service/models/outbox"
	"github.com/ngocdai99/furniture-backend/internal/service/models/product"
	"github.com/ngocdai99/furniture-backend/internal/service/models/user"
)

// enrichConcurrency bounds the per-order detail fetches running in parallel
// during listing.
const enrichConcurrency = 8

// outboxMaxRetries is how many delivery attempts an order event gets before
// the outbox worker gives up on it.
const outboxMaxRetries = 10

// unitOfWork scopes the write-side repositories to one transaction.
type unitOfWork interface {
	Begin(ctx context.Context) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error

	OrderRepository() iorder.PostgresRepository
	OrderItemRepository() iorderitem.PostgresRepository
	OutboxRepository() ioutboxrepo.IOutboxRepository
}

// Read-side collaborators used for enrichment only; the order workflow never
// mutates them.
type userRepository interface {
	GetByID(ctx context.Context, id int64) (*user.User, error)
}

type productRepository interface {
	Query(ctx context.Context, filter *product.QueryProductsModel) ([]product.Product, error)
}

type optionRepository interface {
	QueryByIds(ctx context.Context, ids []int64) ([]optionmodel.Option, error)
}

// OrderService is a service for managing orders.
type OrderService struct {
	pgClient *postgres.Client
	newUOW   func() unitOfWork

	userRepo    userRepository
	productRepo productRepository
	optionRepo  optionRepository
}

// option is a function that configures the OrderService.
type option func(*OrderService)

// MustNewOrderService creates a new OrderService.
func MustNewOrderService(opts ...option) *OrderService {
	s := &OrderService{}
	for _, opt := range opts {
		opt(s)
	}

	if s.newUOW == nil {
		if s.pgClient == nil {
			panic("ordersvc: postgres client is required")
		}
		s.newUOW = func() unitOfWork { return uow.NewUnitOfWork(s.pgClient) }
	}
	if s.userRepo == nil && s.pgClient != nil {
		s.userRepo = userrepo.NewPostgresUserRepository(s.pgClient.Pool())
	}
	if s.productRepo == nil && s.pgClient != nil {
		s.productRepo = productrepo.NewPostgresProductRepository(s.pgClient.Pool())
	}
	if s.optionRepo == nil && s.pgClient != nil {
		s.optionRepo = optionrepo.NewPostgresOptionRepository(s.pgClient.Pool())
	}

	return s
}

// WithPostgresClient sets the Postgres client for the OrderService.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithPostgresClient(pgClient *postgres.Client) option {
	return func(s *OrderService) {
		s.pgClient = pgClient
	}
}

// WithUnitOfWorkFactory overrides how transactions are created.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithUnitOfWorkFactory(factory func() unitOfWork) option {
	return func(s *OrderService) {
		s.newUOW = factory
	}
}

// WithUserRepository overrides the user read repository.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithUserRepository(repo userRepository) option {
	return func(s *OrderService) {
		s.userRepo = repo
	}
}

// WithProductRepository overrides the product read repository.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithProductRepository(repo productRepository) option {
	return func(s *OrderService) {
		s.productRepo = repo
	}
}

// WithOptionRepository overrides the option read repository.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithOptionRepository(repo optionRepository) option {
	return func(s *OrderService) {
		s.optionRepo = repo
	}
}

// CreateOrder validates the request, computes the total server-side and
// persists the order header, its line items and the order.created outbox
// message in one transaction. Nothing is observably persisted on failure.
func (s *OrderService) CreateOrder(
	ctx context.Context,
	userID int64,
	items []orderitem.OrderItem,
) (*order.Order, error) {
	if userID <= 0 {
		return nil, apperror.Validation("userId must be a positive identifier")
	}
	if len(items) == 0 {
		return nil, apperror.Validation("items must be a non-empty array")
	}

	cur := items[0].PriceCurrency
	var totalPriceCents int64
	for _, item := range items {
		if item.ProductID <= 0 {
			return nil, apperror.Validation("every item must reference a product")
		}
		if item.Quantity <= 0 {
			return nil, apperror.Validation("item quantity must be positive")
		}
		if item.PriceCents < 0 {
			return nil, apperror.Validation("item price must not be negative")
		}
		if item.PriceCurrency != cur {
			return nil, apperror.Validation("all items must share one currency")
		}
		totalPriceCents += int64(item.Quantity) * item.PriceCents
	}

	now := time.Now()

	work := s.newUOW()
	if err := work.Begin(ctx); err != nil {
		return nil, apperror.Transaction("order creation failed", err)
	}
	// Rollback after a successful commit is a no-op; this guarantees the
	// transaction handle is always released.
	defer func() { _ = work.Rollback(ctx) }()

	header := order.Order{
		UserID:             userID,
		TotalPriceCents:    totalPriceCents,
		TotalPriceCurrency: cur,
		Status:             order.StatusPending,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	created, err := work.OrderRepository().Insert(ctx, header)
	if err != nil {
		return nil, apperror.Transaction("order creation failed", err)
	}

	for i := range items {
		items[i].OrderID = created.ID
		items[i].CreatedAt = now
		items[i].UpdatedAt = now
	}

	insertedItems, err := work.OrderItemRepository().BulkInsert(ctx, items)
	if err != nil {
		return nil, apperror.Transaction("order creation failed", err)
	}

	if err := s.insertOrderCreatedMessage(ctx, work, created, len(insertedItems), now); err != nil {
		return nil, apperror.Transaction("order creation failed", err)
	}

	if err := work.Commit(ctx); err != nil {
		return nil, apperror.Transaction("order creation failed", err)
	}

	created.OrderItems = insertedItems

	return created, nil
}

func (s *OrderService) insertOrderCreatedMessage(
	ctx context.Context,
	work unitOfWork,
	created *order.Order,
	itemCount int,
	now time.Time,
) error {
	payload, err := json.Marshal(events.OrderCreated{
		Type:            events.TypeOrderCreated,
		OrderID:         created.ID,
		UserID:          created.UserID,
		TotalPriceCents: created.TotalPriceCents,
		Currency:        created.TotalPriceCurrency.String(),
		ItemCount:       itemCount,
		CreatedAt:       created.CreatedAt,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal order created event: %w", err)
	}

	return work.OutboxRepository().Insert(ctx, outbox.Message{
		QueueName:   events.QueueOrderCreated,
		RoutingKey:  events.QueueOrderCreated,
		Payload:     payload,
		ContentType: "application/json",
		MaxRetries:  outboxMaxRetries,
		CreatedAt:   now,
		UpdatedAt:   now,
		NextRetryAt: now,
	})
}

// GetOrderDetails fetches one order with its line items and resolves the
// user, product name and option references for the response.
func (s *OrderService) GetOrderDetails(ctx context.Context, orderID int64) (*order.View, error) {
	if orderID <= 0 {
		return nil, apperror.Validation("orderId must be a positive identifier")
	}

	work := s.newUOW()

	orders, err := work.OrderRepository().Query(ctx, &order.QueryOrdersModel{Ids: []int64{orderID}})
	if err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return nil, apperror.NotFound("order not found")
	}

	items, err := work.OrderItemRepository().Query(ctx, &orderitem.QueryOrderItemsModel{
		OrderIds: []int64{orderID},
	})
	if err != nil {
		return nil, err
	}

	return s.enrich(ctx, orders[0], items)
}

// ListOrders returns every order of one user, optionally narrowed to a
// status, each enriched like GetOrderDetails. The per-order detail fetches
// fan out concurrently; any single failure fails the whole listing.
func (s *OrderService) ListOrders(ctx context.Context, userID int64, status *order.Status) ([]order.View, error) {
	if userID <= 0 {
		return nil, apperror.Validation("userId must be a positive identifier")
	}

	filter := &order.QueryOrdersModel{UserIds: []int64{userID}}
	if status != nil {
		filter.Statuses = []order.Status{*status}
	}

	work := s.newUOW()

	orders, err := work.OrderRepository().Query(ctx, filter)
	if err != nil {
		return nil, err
	}

	views := make([]order.View, len(orders))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(enrichConcurrency)

	for i, o := range orders {
		i, o := i, o
		g.Go(func() error {
			items, err := work.OrderItemRepository().Query(ctx, &orderitem.QueryOrderItemsModel{
				OrderIds: []int64{o.ID},
			})
			if err != nil {
				return err
			}

			view, err := s.enrich(ctx, o, items)
			if err != nil {
				return err
			}
			views[i] = *view

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return views, nil
}

// enrich substitutes the order's user reference and each line's product and
// option references with the referenced records.
func (s *OrderService) enrich(ctx context.Context, o order.Order, items []orderitem.OrderItem) (*order.View, error) {
	usr, err := s.userRepo.GetByID(ctx, o.UserID)
	if err != nil {
		return nil, err
	}

	productIds := make([]int64, 0, len(items))
	optionIds := make([]int64, 0, len(items))
	for _, item := range items {
		productIds = append(productIds, item.ProductID)
		if item.OptionID != nil {
			optionIds = append(optionIds, *item.OptionID)
		}
	}

	productNames := map[int64]string{}
	if len(productIds) > 0 {
		products, err := s.productRepo.Query(ctx, &product.QueryProductsModel{Ids: productIds})
		if err != nil {
			return nil, err
		}
		for _, p := range products {
			productNames[p.ID] = p.Name
		}
	}

	optionsByID := map[int64]optionmodel.Option{}
	if len(optionIds) > 0 {
		options, err := s.optionRepo.QueryByIds(ctx, optionIds)
		if err != nil {
			return nil, err
		}
		for _, opt := range options {
			optionsByID[opt.ID] = opt
		}
	}

	details := make([]order.LineItemView, len(items))
	for i, item := range items {
		line := order.LineItemView{
			ID:            item.ID,
			ProductID:     item.ProductID,
			ProductName:   productNames[item.ProductID],
			Quantity:      item.Quantity,
			PriceCents:    item.PriceCents,
			PriceCurrency: item.PriceCurrency,
		}
		if item.OptionID != nil {
			if opt, ok := optionsByID[*item.OptionID]; ok {
				line.Option = &opt
			}
		}
		details[i] = line
	}

	return &order.View{
		GeneralInformation: order.GeneralInformation{
			ID:                 o.ID,
			User:               usr,
			TotalPriceCents:    o.TotalPriceCents,
			TotalPriceCurrency: o.TotalPriceCurrency,
			Status:             o.Status,
			CreatedAt:          o.CreatedAt,
			UpdatedAt:          o.UpdatedAt,
		},
		Details: details,
	}, nil
}
