package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/DRSN-tech/storefront/internal/domain"
	"github.com/DRSN-tech/storefront/pkg/e"
	"github.com/DRSN-tech/storefront/pkg/logger"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeOrderRepo struct {
	err    error
	orders []*domain.Order
}

func (f *fakeOrderRepo) Create(_ context.Context, order *domain.Order) error {
	if f.err != nil {
		return f.err
	}
	f.orders = append(f.orders, order)
	return nil
}

type fakeProducer struct {
	mu     sync.Mutex
	err    error
	events []*OrderPlacedEvent
}

func (f *fakeProducer) PublishOrderPlaced(_ context.Context, event *OrderPlacedEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, event)
	return f.err
}

func seedCart(t *testing.T, store *CartStore) {
	t.Helper()
	ctx := context.Background()

	_, err := store.AddItem(ctx, visitor, testProduct("a", "100"), "")
	require.NoError(t, err)
	_, err = store.AddItem(ctx, visitor, testProduct("a", "100"), "")
	require.NoError(t, err)
	_, err = store.AddItem(ctx, visitor, testProduct("b", "50"), "")
	require.NoError(t, err)
}

func TestPlaceOrderValidation(t *testing.T) {
	tests := map[string]struct {
		details     PaymentDetails
		wantMissing []string
	}{
		"all blank": {
			details:     NewPaymentDetails("", "", ""),
			wantMissing: []string{FieldCardNumber, FieldExpiration, FieldSecurity},
		},
		"whitespace only card": {
			details:     NewPaymentDetails("   ", "12/29", "123"),
			wantMissing: []string{FieldCardNumber},
		},
		"missing expiration": {
			details:     NewPaymentDetails("4111", "", "123"),
			wantMissing: []string{FieldExpiration},
		},
		"missing security": {
			details:     NewPaymentDetails("4111", "12/29", "\t"),
			wantMissing: []string{FieldSecurity},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			store, storage := newTestCartStore(t)
			seedCart(t, store)
			before, _, err := storage.GetItem(ctx, visitor, CartKey)
			require.NoError(t, err)

			uc := NewCheckoutUC(store, nil, nil, logger.NewNopLogger())
			order, err := uc.PlaceOrder(ctx, visitor, tt.details)
			require.Error(t, err)
			assert.Nil(t, order)
			assert.ErrorIs(t, err, e.ErrPaymentDetailsRequired)

			var vErr *ValidationError
			require.True(t, errors.As(err, &vErr))
			assert.Equal(t, tt.wantMissing, vErr.Missing)

			after, _, err := storage.GetItem(ctx, visitor, CartKey)
			require.NoError(t, err)
			assert.Equal(t, before, after, "cart must be untouched")

			_, ok, err := storage.GetItem(ctx, visitor, OrderTotalKey)
			require.NoError(t, err)
			assert.False(t, ok, "order total must not be set")
		})
	}
}

func TestPlaceOrderSuccess(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestCartStore(t)
	seedCart(t, store)

	repo := &fakeOrderRepo{}
	producer := &fakeProducer{}
	uc := NewCheckoutUC(store, repo, producer, logger.NewNopLogger())
	uc.now = func() time.Time { return time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC) }

	order, err := uc.PlaceOrder(ctx, visitor, NewPaymentDetails("4111 1111 1111 1111", "12/29", "123"))
	require.NoError(t, err)
	require.NotNil(t, order)
	assert.True(t, order.Total.Equal(decimal.NewFromInt(250)))
	assert.Len(t, order.Lines, 2)

	cart, err := store.ReadCart(ctx, visitor)
	require.NoError(t, err)
	assert.Empty(t, cart, "cart is cleared after checkout")

	total, ok, err := store.TakeOrderTotal(ctx, visitor)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.True(t, total.Equal(decimal.NewFromInt(250)), "order total equals subtotal before clear")

	require.Len(t, repo.orders, 1)
	assert.Equal(t, order.ID, repo.orders[0].ID)

	require.NoError(t, uc.WaitForPublishing(ctx))
	producer.mu.Lock()
	defer producer.mu.Unlock()
	require.Len(t, producer.events, 1)
	event := producer.events[0]
	assert.Equal(t, order.ID, event.OrderID)
	assert.Equal(t, "250.00", event.Total)
	assert.Equal(t, "NOK", event.Currency)
	assert.Equal(t, time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC), event.OccurredAt)
	require.Len(t, event.Lines, 2)
	assert.Equal(t, 2, event.Lines[0].Quantity)
}

func TestPlaceOrderSideEffectFailuresDoNotFailCheckout(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestCartStore(t)
	seedCart(t, store)

	repo := &fakeOrderRepo{err: errors.New("db down")}
	producer := &fakeProducer{err: errors.New("broker not available")}
	uc := NewCheckoutUC(store, repo, producer, logger.NewNopLogger())

	order, err := uc.PlaceOrder(ctx, visitor, NewPaymentDetails("4111", "12/29", "123"))
	require.NoError(t, err)
	assert.True(t, order.Total.Equal(decimal.NewFromInt(250)))
	require.NoError(t, uc.WaitForPublishing(ctx))

	cart, err := store.ReadCart(ctx, visitor)
	require.NoError(t, err)
	assert.Empty(t, cart)
}

func TestPlaceOrderEmptyCart(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestCartStore(t)
	uc := NewCheckoutUC(store, nil, nil, logger.NewNopLogger())

	order, err := uc.PlaceOrder(ctx, visitor, NewPaymentDetails("4111", "12/29", "123"))
	require.NoError(t, err)
	assert.True(t, order.Total.IsZero())

	total, ok, err := store.TakeOrderTotal(ctx, visitor)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.True(t, total.IsZero())
}
