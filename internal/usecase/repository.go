package usecase

import (
	"context"

	"github.com/DRSN-tech/storefront/internal/domain"
)

// LocalStorage - строковое key-value хранилище посетителя, аналог localStorage браузера.
// Значения непрозрачны для хранилища (JSON), версии и миграции не поддерживаются.
type LocalStorage interface {
	// GetItem возвращает значение и признак его наличия.
	GetItem(ctx context.Context, visitorID, key string) (string, bool, error)
	SetItem(ctx context.Context, visitorID, key, value string) error
	RemoveItem(ctx context.Context, visitorID, key string) error
	// TakeItem атомарно читает и удаляет значение.
	TakeItem(ctx context.Context, visitorID, key string) (string, bool, error)
}

// OrderRepository - журнал оформленных заказов.
type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order) error
}
