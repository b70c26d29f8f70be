package usecase

import (
	"context"

	"github.com/DRSN-tech/storefront/internal/domain"
	"github.com/shopspring/decimal"
)

type CatalogUC interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
	GetProduct(ctx context.Context, id string) (*domain.Product, error)
}

type CartUC interface {
	ReadCart(ctx context.Context, visitorID string) (domain.Cart, error)
	AddItem(ctx context.Context, visitorID string, product *domain.Product, size string) (*domain.CartLineItem, error)
	SetQuantity(ctx context.Context, visitorID string, index int, quantity int) error
	RemoveItem(ctx context.Context, visitorID string, index int) error
	Clear(ctx context.Context, visitorID string) error
	ComputeSubtotal(cart domain.Cart) decimal.Decimal
	SaveOrderTotal(ctx context.Context, visitorID string, total decimal.Decimal) error
	TakeOrderTotal(ctx context.Context, visitorID string) (decimal.Decimal, bool, error)
}

type CheckoutUC interface {
	PlaceOrder(ctx context.Context, visitorID string, details PaymentDetails) (*domain.Order, error)
}
