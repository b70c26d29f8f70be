package usecase

import (
	"context"
	"strings"

	"github.com/DRSN-tech/storefront/internal/domain"
	"github.com/DRSN-tech/storefront/pkg/e"
	"github.com/DRSN-tech/storefront/pkg/logger"
)

// CatalogUseCase отдаёт товары внешнего каталога. Каждый вызов - новый запрос, без кэша.
type CatalogUseCase struct {
	client CatalogClient
	logger logger.Logger
}

func NewCatalogUC(client CatalogClient, logger logger.Logger) *CatalogUseCase {
	return &CatalogUseCase{
		client: client,
		logger: logger,
	}
}

// ListProducts возвращает весь каталог.
func (c *CatalogUseCase) ListProducts(ctx context.Context) ([]domain.Product, error) {
	const op = "CatalogUseCase.ListProducts"

	products, err := c.client.FetchCatalog(ctx)
	if err != nil {
		c.logger.Warnf("Catalog fetch failed: %v", e.Wrap(op, err))
		return nil, e.Wrap(op, err)
	}

	return products, nil
}

// GetProduct ищет товар по идентификатору среди свежезагруженного каталога.
func (c *CatalogUseCase) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	const op = "CatalogUseCase.GetProduct"

	if strings.TrimSpace(id) == "" {
		return nil, e.Wrap(op, e.ErrMissingProductID)
	}

	products, err := c.ListProducts(ctx)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	product, ok := domain.FindProduct(products, id)
	if !ok {
		return nil, e.Wrap(op, e.ErrProductNotFound)
	}

	return product, nil
}
