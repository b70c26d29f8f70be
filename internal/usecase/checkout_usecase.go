package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/DRSN-tech/storefront/internal/domain"
	"github.com/DRSN-tech/storefront/pkg/e"
	"github.com/DRSN-tech/storefront/pkg/logger"
	"github.com/google/uuid"
)

// CheckoutUseCase оформляет заказ: проверяет платёжную форму, передаёт сумму
// странице подтверждения и очищает корзину. Журнал заказов и публикация событий
// необязательны (nil отключает) и на результат оформления не влияют.
type CheckoutUseCase struct {
	cart           CartUC
	orderRepo      OrderRepository
	producer       OrderEventProducer
	logger         logger.Logger
	publishTimeout time.Duration
	now            func() time.Time
	wg             sync.WaitGroup
}

func NewCheckoutUC(
	cart CartUC,
	orderRepo OrderRepository,
	producer OrderEventProducer,
	logger logger.Logger,
) *CheckoutUseCase {
	const defaultPublishTimeout = 30 * time.Second

	return &CheckoutUseCase{
		cart:           cart,
		orderRepo:      orderRepo,
		producer:       producer,
		logger:         logger,
		publishTimeout: defaultPublishTimeout,
		now:            time.Now,
	}
}

// PlaceOrder оформляет заказ посетителя.
// При незаполненных полях возвращает *ValidationError, корзина и сумма не трогаются.
func (c *CheckoutUseCase) PlaceOrder(ctx context.Context, visitorID string, details PaymentDetails) (*domain.Order, error) {
	const op = "CheckoutUseCase.PlaceOrder"

	if missing := details.MissingFields(); len(missing) > 0 {
		return nil, &ValidationError{Missing: missing}
	}

	cart, err := c.cart.ReadCart(ctx, visitorID)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	// Сумма считается до очистки корзины
	total := c.cart.ComputeSubtotal(cart)

	if err := c.cart.SaveOrderTotal(ctx, visitorID, total); err != nil {
		return nil, e.Wrap(op, err)
	}

	if err := c.cart.Clear(ctx, visitorID); err != nil {
		return nil, e.Wrap(op, err)
	}

	order := domain.NewOrder(uuid.NewString(), visitorID, cart, total, c.now().UTC())
	c.logger.Infof("Order placed, order_id: %s, lines: %d, total: %s", order.ID, len(cart), domain.FormatPrice(total))

	if c.orderRepo != nil {
		if err := c.orderRepo.Create(ctx, order); err != nil {
			c.logger.Warnf("Failed to journal order %s: %v", order.ID, e.Wrap(op, err))
		}
	}

	if c.producer != nil {
		c.publishInBackground(order)
	}

	return order, nil
}

// publishInBackground отправляет событие о заказе, не задерживая ответ посетителю.
func (c *CheckoutUseCase) publishInBackground(order *domain.Order) {
	const op = "CheckoutUseCase.publishInBackground"

	event := NewOrderPlacedEvent(order)

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()

		bgCtx, cancel := context.WithTimeout(context.Background(), c.publishTimeout)
		defer cancel()

		if err := c.producer.PublishOrderPlaced(bgCtx, event); err != nil {
			c.logger.Warnf("Failed to publish order event in background: %v", e.Wrap(op, err))
		}
	}()
}

// WaitForPublishing ожидает отправки фоновых событий с учётом таймаута завершения приложения.
func (c *CheckoutUseCase) WaitForPublishing(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		c.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("order events still publishing during shutdown: %w", ctx.Err())
	}
}
