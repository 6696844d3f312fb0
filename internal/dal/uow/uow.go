package uow

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	iorder "github.com/ngocdai99/furniture-backend/internal/dal/interfaces/order"
	iorderitem "github.com/ngocdai99/furniture-backend/internal/dal/interfaces/orderitem"
	"github.com/ngocdai99/furniture-backend/internal/dal/interfaces/ioutboxrepo"
	"github.com/ngocdai99/furniture-backend/internal/dal/postgres"
	orderrepo "github.com/ngocdai99/furniture-backend/internal/dal/repositories/order/postgres"
	orderitemrepo "github.com/ngocdai99/furniture-backend/internal/dal/repositories/orderitem/postgres"
	outboxrepo "github.com/ngocdai99/furniture-backend/internal/dal/repositories/outbox/postgres"
)

// unitOfWork scopes the order, order item and outbox repositories to one
// transaction. Until Begin is called the repositories run directly on the
// pool.
type unitOfWork struct {
	client *postgres.Client
	tx     pgx.Tx

	orderRepo     iorder.PostgresRepository
	orderItemRepo iorderitem.PostgresRepository
	outboxRepo    ioutboxrepo.IOutboxRepository
}

func NewUnitOfWork(client *postgres.Client) *unitOfWork {
	return &unitOfWork{
		client:        client,
		orderRepo:     orderrepo.NewPostgresOrderRepository(client.Pool()),
		orderItemRepo: orderitemrepo.NewPostgresOrderItemRepository(client.Pool()),
		outboxRepo:    outboxrepo.NewPostgresOutboxRepository(client.Pool()),
	}
}

func (u *unitOfWork) OrderRepository() iorder.PostgresRepository {
	return u.orderRepo
}

func (u *unitOfWork) OrderItemRepository() iorderitem.PostgresRepository {
	return u.orderItemRepo
}

func (u *unitOfWork) OutboxRepository() ioutboxrepo.IOutboxRepository {
	return u.outboxRepo
}

// Begin opens a transaction and rebinds the repositories to it.
func (u *unitOfWork) Begin(ctx context.Context) error {
	tx, err := u.client.Pool().Begin(ctx)
	if err != nil {
		return err
	}

	u.tx = tx
	u.orderRepo = orderrepo.NewPostgresOrderRepository(tx)
	u.orderItemRepo = orderitemrepo.NewPostgresOrderItemRepository(tx)
	u.outboxRepo = outboxrepo.NewPostgresOutboxRepository(tx)

	return nil
}

func (u *unitOfWork) Commit(ctx context.Context) error {
	if u.tx == nil {
		return nil
	}
	return u.tx.Commit(ctx)
}

// Rollback aborts the transaction. Calling it after a successful commit is a
// no-op, which makes it safe to defer.
func (u *unitOfWork) Rollback(ctx context.Context) error {
	if u.tx == nil {
		return nil
	}
	if err := u.tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		return err
	}
	return nil
}
