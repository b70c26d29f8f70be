package pgdb

import (
	"context"
	"errors"
	"fmt"

	"github.com/DRSN-tech/storefront/internal/domain"
	"github.com/DRSN-tech/storefront/internal/repository/pgdb/converter"
	"github.com/DRSN-tech/storefront/pkg/e"
	"github.com/DRSN-tech/storefront/pkg/tr"
	transaction "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jimlawless/whereami"
)

// TxBeginner - часть пула соединений, нужная для открытия транзакций.
// Ему удовлетворяют *pgxpool.Pool и пул pgxmock.
type TxBeginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
}

// OrderRepo ведёт журнал оформленных заказов в PostgreSQL.
type OrderRepo struct {
	db TxBeginner
}

func NewOrderRepo(db TxBeginner) *OrderRepo {
	return &OrderRepo{db: db}
}

// Create записывает заказ и его позиции в одной транзакции.
func (o *OrderRepo) Create(ctx context.Context, order *domain.Order) (err error) {
	const op = "OrderRepo.Create"

	ctx, tx, err := transaction.NewTransaction(ctx, pgx.TxOptions{}, o.db)
	if err != nil {
		return e.Wrap(op, err)
	}
	defer func() {
		if err != nil && tx.IsActive() {
			_ = tx.Rollback(ctx)
		}
	}()

	pgxTx, ok := tx.Transaction().(pgx.Tx)
	if !ok {
		return e.Wrap(op, e.ErrTransactionNotFound)
	}
	ctx = tr.WithTx(ctx, pgxTx)

	if err = o.insertOrder(ctx, converter.ToOrderModel(order)); err != nil {
		return e.Wrap(op, err)
	}

	if err = o.insertLines(ctx, converter.ToOrderLineModels(order)); err != nil {
		return e.Wrap(op, err)
	}

	if err = tx.Commit(ctx); err != nil {
		return e.Wrap(op, err)
	}

	return nil
}

func (o *OrderRepo) insertOrder(ctx context.Context, model *converter.OrderModel) error {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	query := `
		INSERT INTO orders (
			id,
			visitor_id,
			total,
			currency,
			placed_at
		) VALUES ($1, $2, $3, $4, $5);
	`

	if _, err := tx.Exec(ctx, query,
		model.ID,
		model.VisitorID,
		model.Total,
		model.Currency,
		model.PlacedAt,
	); err != nil {
		if postgresDuplicate(err) {
			return fmt.Errorf("%s: order with id %s: %w", whereami.WhereAmI(), model.ID, e.ErrOrderExists)
		}

		return fmt.Errorf("%s: failed to insert order: %w", whereami.WhereAmI(), err)
	}

	return nil
}

func (o *OrderRepo) insertLines(ctx context.Context, models []*converter.OrderLineModel) error {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	query := `
		INSERT INTO order_lines (
			order_id,
			position,
			product_id,
			title,
			size,
			color,
			unit_price,
			quantity
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`

	for _, model := range models {
		if _, err := tx.Exec(ctx, query,
			model.OrderID,
			model.Position,
			model.ProductID,
			model.Title,
			model.Size,
			model.Color,
			model.UnitPrice,
			model.Quantity,
		); err != nil {
			return fmt.Errorf("%s: failed to insert line %d: %w", whereami.WhereAmI(), model.Position, err)
		}
	}

	return nil
}

// postgresDuplicate сообщает о нарушении уникальности (SQLSTATE 23505).
func postgresDuplicate(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
