package pgdb

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DRSN-tech/storefront/internal/domain"
	"github.com/DRSN-tech/storefront/pkg/e"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const orderID = "0b4f7a4e-77a4-4f1c-9df5-3c2f5f3b6b10"

func testOrder() *domain.Order {
	lines := domain.Cart{
		{ID: "a", Title: "Akra Jacket", Price: decimal.NewFromInt(100), Color: "Black", Size: "M", Quantity: 2},
		{ID: "b", Title: "Thunderbolt Jacket", Price: decimal.RequireFromString("49.5"), Color: "Gray", Quantity: 1},
	}
	return domain.NewOrder(orderID, "visitor-1", lines, lines.Subtotal(), time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC))
}

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)

	return mock
}

func anyArgs(n int) []any {
	args := make([]any, n)
	for i := range args {
		args[i] = pgxmock.AnyArg()
	}
	return args
}

func TestOrderRepoCreate(t *testing.T) {
	mock := newMock(t)
	repo := NewOrderRepo(mock)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO orders").
		WithArgs(orderID, "visitor-1", "249.50", "NOK", pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec("INSERT INTO order_lines").
		WithArgs(orderID, 0, "a", "Akra Jacket", "M", "Black", "100.00", 2).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec("INSERT INTO order_lines").
		WithArgs(orderID, 1, "b", "Thunderbolt Jacket", "", "Gray", "49.50", 1).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()

	require.NoError(t, repo.Create(context.Background(), testOrder()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderRepoCreateRollsBackOnLineFailure(t *testing.T) {
	mock := newMock(t)
	repo := NewOrderRepo(mock)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO orders").
		WithArgs(anyArgs(5)...).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec("INSERT INTO order_lines").
		WithArgs(anyArgs(8)...).
		WillReturnError(errors.New("check constraint violated"))
	mock.ExpectRollback()

	err := repo.Create(context.Background(), testOrder())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to insert line 0")
	assert.Contains(t, err.Error(), "check constraint violated")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderRepoCreateDuplicate(t *testing.T) {
	mock := newMock(t)
	repo := NewOrderRepo(mock)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO orders").
		WithArgs(anyArgs(5)...).
		WillReturnError(&pgconn.PgError{Code: "23505"})
	mock.ExpectRollback()

	err := repo.Create(context.Background(), testOrder())
	require.Error(t, err)
	assert.ErrorIs(t, err, e.ErrOrderExists)
	assert.Contains(t, err.Error(), orderID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderRepoCreateBeginFailure(t *testing.T) {
	mock := newMock(t)
	repo := NewOrderRepo(mock)

	mock.ExpectBegin().WillReturnError(errors.New("too many connections"))

	err := repo.Create(context.Background(), testOrder())
	require.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
