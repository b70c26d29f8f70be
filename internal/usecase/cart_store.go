package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"

	"github.com/DRSN-tech/storefront/internal/domain"
	"github.com/DRSN-tech/storefront/pkg/e"
	"github.com/DRSN-tech/storefront/pkg/logger"
	"github.com/shopspring/decimal"
)

// Ключи локального хранилища посетителя.
const (
	CartKey       = "cart"
	OrderTotalKey = "lastOrderTotal"
)

// CartStore - единственный писатель ключа корзины. Каждая операция -
// read-modify-write всей коллекции; при конкурентной записи побеждает последний.
type CartStore struct {
	storage LocalStorage
	logger  logger.Logger
}

func NewCartStore(storage LocalStorage, logger logger.Logger) *CartStore {
	return &CartStore{
		storage: storage,
		logger:  logger,
	}
}

// ReadCart возвращает корзину посетителя. Отсутствующее или нечитаемое значение
// трактуется как пустая корзина, ошибка возвращается только при сбое хранилища.
func (c *CartStore) ReadCart(ctx context.Context, visitorID string) (domain.Cart, error) {
	const op = "CartStore.ReadCart"

	raw, ok, err := c.storage.GetItem(ctx, visitorID, CartKey)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	if !ok {
		return domain.Cart{}, nil
	}

	cart, err := DecodeCart(raw)
	if err != nil {
		c.logger.Warnf("Discarding unreadable cart, visitor: %s, error: %v", visitorID, e.Wrap(op, err))
		return domain.Cart{}, nil
	}

	return cart, nil
}

// AddItem увеличивает количество позиции (id, size) или добавляет новую с количеством 1.
func (c *CartStore) AddItem(ctx context.Context, visitorID string, product *domain.Product, size string) (*domain.CartLineItem, error) {
	const op = "CartStore.AddItem"

	if product == nil || product.ID == "" {
		return nil, e.Wrap(op, e.ErrMissingProductID)
	}

	cart, err := c.ReadCart(ctx, visitorID)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	idx := cart.Find(product.ID, size)
	if idx >= 0 {
		cart[idx].Quantity++
	} else {
		cart = append(cart, domain.NewCartLineItem(product, size))
		idx = len(cart) - 1
	}

	if err := c.writeCart(ctx, visitorID, cart); err != nil {
		return nil, e.Wrap(op, err)
	}

	item := cart[idx]
	return &item, nil
}

// SetQuantity заменяет количество позиции с индексом index.
// Количество меньше 1 отклоняется, корзина при этом не меняется.
func (c *CartStore) SetQuantity(ctx context.Context, visitorID string, index int, quantity int) error {
	const op = "CartStore.SetQuantity"

	if quantity < 1 {
		return e.Wrap(op, e.ErrInvalidQuantity)
	}

	cart, err := c.ReadCart(ctx, visitorID)
	if err != nil {
		return e.Wrap(op, err)
	}

	if index < 0 || index >= len(cart) {
		return e.Wrap(fmt.Sprintf("%s: index %d", op, index), e.ErrLineItemNotFound)
	}

	cart[index].Quantity = quantity

	if err := c.writeCart(ctx, visitorID, cart); err != nil {
		return e.Wrap(op, err)
	}

	return nil
}

// RemoveItem удаляет позицию, порядок остальных сохраняется.
func (c *CartStore) RemoveItem(ctx context.Context, visitorID string, index int) error {
	const op = "CartStore.RemoveItem"

	cart, err := c.ReadCart(ctx, visitorID)
	if err != nil {
		return e.Wrap(op, err)
	}

	if index < 0 || index >= len(cart) {
		return e.Wrap(fmt.Sprintf("%s: index %d", op, index), e.ErrLineItemNotFound)
	}

	cart = slices.Delete(cart, index, index+1)

	if err := c.writeCart(ctx, visitorID, cart); err != nil {
		return e.Wrap(op, err)
	}

	return nil
}

// Clear очищает корзину посетителя.
func (c *CartStore) Clear(ctx context.Context, visitorID string) error {
	const op = "CartStore.Clear"

	if err := c.storage.RemoveItem(ctx, visitorID, CartKey); err != nil {
		return e.Wrap(op, err)
	}

	return nil
}

// ComputeSubtotal - сумма price × quantity по всем позициям.
func (c *CartStore) ComputeSubtotal(cart domain.Cart) decimal.Decimal {
	return cart.Subtotal()
}

// SaveOrderTotal сохраняет сумму заказа до показа страницы подтверждения.
func (c *CartStore) SaveOrderTotal(ctx context.Context, visitorID string, total decimal.Decimal) error {
	const op = "CartStore.SaveOrderTotal"

	if err := c.storage.SetItem(ctx, visitorID, OrderTotalKey, total.String()); err != nil {
		return e.Wrap(op, err)
	}

	return nil
}

// TakeOrderTotal читает и удаляет сумму заказа. Значение выдаётся один раз;
// при отсутствии или нечитаемом значении возвращается ноль и false.
func (c *CartStore) TakeOrderTotal(ctx context.Context, visitorID string) (decimal.Decimal, bool, error) {
	const op = "CartStore.TakeOrderTotal"

	raw, ok, err := c.storage.TakeItem(ctx, visitorID, OrderTotalKey)
	if err != nil {
		return decimal.Zero, false, e.Wrap(op, err)
	}

	if !ok {
		return decimal.Zero, false, nil
	}

	total, err := decimal.NewFromString(raw)
	if err != nil {
		c.logger.Warnf("Discarding unreadable order total, visitor: %s, error: %v", visitorID, e.Wrap(op, err))
		return decimal.Zero, false, nil
	}

	return total, true, nil
}

// writeCart сериализует корзину и записывает её целиком.
func (c *CartStore) writeCart(ctx context.Context, visitorID string, cart domain.Cart) error {
	data, err := EncodeCart(cart)
	if err != nil {
		return err
	}

	return c.storage.SetItem(ctx, visitorID, CartKey, data)
}

// EncodeCart сериализует корзину в JSON.
func EncodeCart(cart domain.Cart) (string, error) {
	if cart == nil {
		cart = domain.Cart{}
	}

	data, err := json.Marshal(cart)
	if err != nil {
		return "", err
	}

	return string(data), nil
}

// DecodeCart разбирает сохранённую корзину и проверяет каждую позицию.
func DecodeCart(raw string) (domain.Cart, error) {
	var cart domain.Cart
	if err := json.Unmarshal([]byte(raw), &cart); err != nil {
		return nil, fmt.Errorf("%w: %v", e.ErrMalformedCart, err)
	}

	if cart == nil {
		return domain.Cart{}, nil
	}

	seen := make(map[[2]string]struct{}, len(cart))
	for i, item := range cart {
		switch {
		case item.ID == "":
			return nil, fmt.Errorf("line %d: empty id: %w", i, e.ErrMalformedCart)
		case item.Quantity < 1:
			return nil, fmt.Errorf("line %d: quantity %d: %w", i, item.Quantity, e.ErrMalformedCart)
		case item.Price.IsNegative():
			return nil, fmt.Errorf("line %d: negative price: %w", i, e.ErrMalformedCart)
		}

		key := [2]string{item.ID, item.Size}
		if _, dup := seen[key]; dup {
			return nil, fmt.Errorf("line %d: duplicate (%s, %s): %w", i, item.ID, item.Size, e.ErrMalformedCart)
		}
		seen[key] = struct{}{}
	}

	return cart, nil
}
