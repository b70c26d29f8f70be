package usecase

import (
	"context"
	"testing"

	"github.com/DRSN-tech/storefront/internal/domain"
	"github.com/DRSN-tech/storefront/pkg/e"
	"github.com/DRSN-tech/storefront/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCatalogClient struct {
	products []domain.Product
	err      error
	calls    int
}

func (f *fakeCatalogClient) FetchCatalog(context.Context) ([]domain.Product, error) {
	f.calls++
	return f.products, f.err
}

func TestGetProduct(t *testing.T) {
	client := &fakeCatalogClient{products: []domain.Product{*testProduct("a", "10"), *testProduct("b", "20")}}
	uc := NewCatalogUC(client, logger.NewNopLogger())

	product, err := uc.GetProduct(context.Background(), "b")
	require.NoError(t, err)
	assert.Equal(t, "b", product.ID)

	_, err = uc.GetProduct(context.Background(), "zzz")
	assert.ErrorIs(t, err, e.ErrProductNotFound)

	_, err = uc.GetProduct(context.Background(), " ")
	assert.ErrorIs(t, err, e.ErrMissingProductID)

	assert.Equal(t, 2, client.calls, "every lookup fetches a fresh catalog")
}

func TestListProductsPropagatesFetchError(t *testing.T) {
	client := &fakeCatalogClient{err: e.ErrCatalogUnavailable}
	uc := NewCatalogUC(client, logger.NewNopLogger())

	_, err := uc.ListProducts(context.Background())
	assert.ErrorIs(t, err, e.ErrCatalogUnavailable)

	_, err = uc.GetProduct(context.Background(), "a")
	assert.ErrorIs(t, err, e.ErrCatalogUnavailable)
}
