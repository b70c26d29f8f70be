package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/DRSN-tech/storefront/internal/domain"
	"github.com/DRSN-tech/storefront/internal/repository/memory"
	"github.com/DRSN-tech/storefront/pkg/e"
	"github.com/DRSN-tech/storefront/pkg/logger"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const visitor = "visitor-1"

func newTestCartStore(t *testing.T) (*CartStore, *memory.LocalStorageRepo) {
	t.Helper()
	storage := memory.NewLocalStorageRepo()
	return NewCartStore(storage, logger.NewNopLogger()), storage
}

func testProduct(id string, price string, sizes ...string) *domain.Product {
	return &domain.Product{
		ID:        id,
		Title:     "Jacket " + id,
		Price:     decimal.RequireFromString(price),
		Image:     domain.NewImage("https://img/"+id+".jpg", "jacket "+id),
		Gender:    domain.GenderFemale,
		Sizes:     sizes,
		BaseColor: "Black",
	}
}

func TestReadCartEmptyWhenAbsent(t *testing.T) {
	store, _ := newTestCartStore(t)

	cart, err := store.ReadCart(context.Background(), visitor)
	require.NoError(t, err)
	assert.NotNil(t, cart)
	assert.Empty(t, cart)
}

func TestReadCartEmptyWhenUnparsable(t *testing.T) {
	tests := map[string]string{
		"not json":           "{oops",
		"wrong shape":        `{"id":"a"}`,
		"zero quantity":      `[{"id":"a","title":"A","price":"10","quantity":0}]`,
		"missing id":         `[{"title":"A","price":"10","quantity":1}]`,
		"negative price":     `[{"id":"a","price":"-1","quantity":1}]`,
		"duplicate line key": `[{"id":"a","size":"M","price":"1","quantity":1},{"id":"a","size":"M","price":"1","quantity":2}]`,
	}

	for name, raw := range tests {
		t.Run(name, func(t *testing.T) {
			store, storage := newTestCartStore(t)
			require.NoError(t, storage.SetItem(context.Background(), visitor, CartKey, raw))

			cart, err := store.ReadCart(context.Background(), visitor)
			require.NoError(t, err)
			assert.Empty(t, cart)
		})
	}
}

func TestAddItemSameKeyIncrementsQuantity(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestCartStore(t)
	product := testProduct("a", "100", "S", "M")

	const calls = 5
	for i := 0; i < calls; i++ {
		_, err := store.AddItem(ctx, visitor, product, "M")
		require.NoError(t, err)
	}

	cart, err := store.ReadCart(ctx, visitor)
	require.NoError(t, err)
	require.Len(t, cart, 1, "same (id, size) must never be duplicated")
	assert.Equal(t, calls, cart[0].Quantity)
}

func TestAddItemNewKeyAppendsOneLine(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestCartStore(t)
	product := testProduct("a", "100", "S", "M")

	_, err := store.AddItem(ctx, visitor, product, "S")
	require.NoError(t, err)

	item, err := store.AddItem(ctx, visitor, product, "M")
	require.NoError(t, err)
	assert.Equal(t, 1, item.Quantity)

	item, err = store.AddItem(ctx, visitor, testProduct("b", "50"), "")
	require.NoError(t, err)
	assert.Equal(t, 1, item.Quantity)

	cart, err := store.ReadCart(ctx, visitor)
	require.NoError(t, err)
	require.Len(t, cart, 3)
	assert.Equal(t, "S", cart[0].Size)
	assert.Equal(t, "M", cart[1].Size)
	assert.Equal(t, "b", cart[2].ID)
	assert.Equal(t, "", cart[2].Size)
	assert.Equal(t, "Black", cart[2].Color)
}

func TestAddItemSnapshotsPriceAtAddTime(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestCartStore(t)

	_, err := store.AddItem(ctx, visitor, testProduct("a", "100"), "")
	require.NoError(t, err)

	// цена в каталоге изменилась, но существующая позиция хранит прежнюю
	_, err = store.AddItem(ctx, visitor, testProduct("a", "120"), "")
	require.NoError(t, err)

	cart, err := store.ReadCart(ctx, visitor)
	require.NoError(t, err)
	require.Len(t, cart, 1)
	assert.Equal(t, 2, cart[0].Quantity)
	assert.True(t, cart[0].Price.Equal(decimal.NewFromInt(100)))
}

func TestAddItemRequiresProduct(t *testing.T) {
	store, _ := newTestCartStore(t)

	_, err := store.AddItem(context.Background(), visitor, nil, "")
	assert.ErrorIs(t, err, e.ErrMissingProductID)
}

func TestRemoveItemPreservesOrder(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestCartStore(t)

	for _, id := range []string{"a", "b", "c", "d"} {
		_, err := store.AddItem(ctx, visitor, testProduct(id, "10"), "")
		require.NoError(t, err)
	}

	require.NoError(t, store.RemoveItem(ctx, visitor, 1))

	cart, err := store.ReadCart(ctx, visitor)
	require.NoError(t, err)

	ids := make([]string, 0, len(cart))
	for _, item := range cart {
		ids = append(ids, item.ID)
	}
	assert.Equal(t, []string{"a", "c", "d"}, ids)
}

func TestRemoveItemOutOfRange(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestCartStore(t)

	_, err := store.AddItem(ctx, visitor, testProduct("a", "10"), "")
	require.NoError(t, err)

	assert.ErrorIs(t, store.RemoveItem(ctx, visitor, 1), e.ErrLineItemNotFound)
	assert.ErrorIs(t, store.RemoveItem(ctx, visitor, -1), e.ErrLineItemNotFound)
}

func TestSetQuantity(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestCartStore(t)

	_, err := store.AddItem(ctx, visitor, testProduct("a", "10"), "")
	require.NoError(t, err)

	require.NoError(t, store.SetQuantity(ctx, visitor, 0, 7))

	cart, err := store.ReadCart(ctx, visitor)
	require.NoError(t, err)
	assert.Equal(t, 7, cart[0].Quantity)

	t.Run("below minimum is rejected and cart unchanged", func(t *testing.T) {
		for _, q := range []int{0, -3} {
			err := store.SetQuantity(ctx, visitor, 0, q)
			assert.ErrorIs(t, err, e.ErrInvalidQuantity)
		}

		cart, err := store.ReadCart(ctx, visitor)
		require.NoError(t, err)
		assert.Equal(t, 7, cart[0].Quantity)
	})

	t.Run("unknown index", func(t *testing.T) {
		assert.ErrorIs(t, store.SetQuantity(ctx, visitor, 3, 1), e.ErrLineItemNotFound)
	})
}

func TestClear(t *testing.T) {
	ctx := context.Background()
	store, storage := newTestCartStore(t)

	_, err := store.AddItem(ctx, visitor, testProduct("a", "10"), "")
	require.NoError(t, err)

	require.NoError(t, store.Clear(ctx, visitor))

	_, ok, err := storage.GetItem(ctx, visitor, CartKey)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestComputeSubtotal(t *testing.T) {
	store, _ := newTestCartStore(t)

	assert.True(t, store.ComputeSubtotal(domain.Cart{}).IsZero())

	cart := domain.Cart{
		{ID: "a", Price: decimal.NewFromInt(100), Quantity: 2},
		{ID: "b", Price: decimal.NewFromInt(50), Quantity: 1},
	}
	assert.True(t, store.ComputeSubtotal(cart).Equal(decimal.NewFromInt(250)))
}

func TestOrderTotalIsSingleUse(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestCartStore(t)

	total, ok, err := store.TakeOrderTotal(ctx, visitor)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.True(t, total.IsZero())

	require.NoError(t, store.SaveOrderTotal(ctx, visitor, decimal.RequireFromString("250.5")))

	total, ok, err = store.TakeOrderTotal(ctx, visitor)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.True(t, total.Equal(decimal.RequireFromString("250.5")))

	_, ok, err = store.TakeOrderTotal(ctx, visitor)
	require.NoError(t, err)
	assert.False(t, ok)
}

type failingStorage struct {
	memory.LocalStorageRepo
}

func (f *failingStorage) GetItem(context.Context, string, string) (string, bool, error) {
	return "", false, errors.New("connection refused")
}

func TestReadCartStorageFailure(t *testing.T) {
	store := NewCartStore(&failingStorage{}, logger.NewNopLogger())

	_, err := store.ReadCart(context.Background(), visitor)
	assert.Error(t, err)
}

func TestEncodeDecodeCart(t *testing.T) {
	cart := domain.Cart{
		{ID: "a", Title: "A", Price: decimal.RequireFromString("129.99"), Quantity: 2, Size: "M", Color: "Red"},
		{ID: "b", Title: "B", Price: decimal.NewFromInt(50), Quantity: 1},
	}

	raw, err := EncodeCart(cart)
	require.NoError(t, err)

	decoded, err := DecodeCart(raw)
	require.NoError(t, err)
	require.Len(t, decoded, 2)
	assert.True(t, decoded.Subtotal().Equal(cart.Subtotal()))
	assert.Equal(t, "M", decoded[0].Size)

	empty, err := EncodeCart(nil)
	require.NoError(t, err)
	assert.Equal(t, "[]", empty)

	// числовые цены из исходного формата localStorage тоже читаются
	legacy, err := DecodeCart(`[{"id":"a","title":"A","price":100,"image":{"url":"u","alt":"a"},"color":"Red","quantity":2}]`)
	require.NoError(t, err)
	assert.True(t, legacy.Subtotal().Equal(decimal.NewFromInt(200)))
}

func TestDecodeCartMalformed(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{name: "invalid json", raw: `[{"id":`},
		{name: "not an array", raw: `{"id":"a"}`},
		{name: "empty id", raw: `[{"id":"","price":"1","quantity":1}]`},
		{name: "zero quantity", raw: `[{"id":"a","price":"1","quantity":0}]`},
		{name: "negative price", raw: `[{"id":"a","price":"-1","quantity":1}]`},
		{name: "duplicate line", raw: `[{"id":"a","price":"1","quantity":1},{"id":"a","price":"1","quantity":2}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeCart(tt.raw)
			require.Error(t, err)
			assert.ErrorIs(t, err, e.ErrMalformedCart)
		})
	}
}
