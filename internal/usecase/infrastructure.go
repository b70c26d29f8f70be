package usecase

import (
	"context"

	"github.com/DRSN-tech/storefront/internal/domain"
)

// CatalogClient получает список товаров из внешнего каталога.
type CatalogClient interface {
	FetchCatalog(ctx context.Context) ([]domain.Product, error)
}

// OrderEventProducer публикует события об оформленных заказах.
type OrderEventProducer interface {
	PublishOrderPlaced(ctx context.Context, event *OrderPlacedEvent) error
}
