package usecase

import (
	"fmt"
	"strings"
	"time"

	"github.com/DRSN-tech/storefront/internal/domain"
	"github.com/DRSN-tech/storefront/pkg/e"
	"github.com/google/uuid"
)

// CHECKOUT

// Названия полей платёжной формы.
const (
	FieldCardNumber = "cardNumber"
	FieldExpiration = "expiration"
	FieldSecurity   = "security"
)

// PaymentDetails - поля платёжной формы. Проверяется только их наличие.
type PaymentDetails struct {
	CardNumber string
	Expiration string
	Security   string
}

// MissingFields возвращает имена незаполненных полей (пробелы не считаются значением).
func (p PaymentDetails) MissingFields() []string {
	missing := make([]string, 0, 3)
	if strings.TrimSpace(p.CardNumber) == "" {
		missing = append(missing, FieldCardNumber)
	}
	if strings.TrimSpace(p.Expiration) == "" {
		missing = append(missing, FieldExpiration)
	}
	if strings.TrimSpace(p.Security) == "" {
		missing = append(missing, FieldSecurity)
	}

	return missing
}

// ValidationError сообщает, какие поля формы не заполнены.
type ValidationError struct {
	Missing []string
}

func (v *ValidationError) Error() string {
	return fmt.Sprintf("%s: missing %s", e.ErrPaymentDetailsRequired.Error(), strings.Join(v.Missing, ", "))
}

func (v *ValidationError) Unwrap() error {
	return e.ErrPaymentDetailsRequired
}

// EVENTS

// OrderPlacedEvent - событие об оформленном заказе, уходит в Kafka.
type OrderPlacedEvent struct {
	EventID    string            `json:"event_id"`
	OrderID    string            `json:"order_id"`
	VisitorID  string            `json:"visitor_id"`
	Total      string            `json:"total"`
	Currency   string            `json:"currency"`
	Lines      []OrderPlacedLine `json:"lines"`
	OccurredAt time.Time         `json:"occurred_at"`
}

// OrderPlacedLine - позиция заказа в событии.
type OrderPlacedLine struct {
	ProductID string `json:"product_id"`
	Title     string `json:"title"`
	Size      string `json:"size,omitempty"`
	Quantity  int    `json:"quantity"`
	Price     string `json:"price"`
}

// MAPPERS

func NewPaymentDetails(cardNumber string, expiration string, security string) PaymentDetails {
	return PaymentDetails{
		CardNumber: cardNumber,
		Expiration: expiration,
		Security:   security,
	}
}

func NewOrderPlacedEvent(order *domain.Order) *OrderPlacedEvent {
	lines := make([]OrderPlacedLine, 0, len(order.Lines))
	for _, item := range order.Lines {
		lines = append(lines, OrderPlacedLine{
			ProductID: item.ID,
			Title:     item.Title,
			Size:      item.Size,
			Quantity:  item.Quantity,
			Price:     item.Price.StringFixed(2),
		})
	}

	return &OrderPlacedEvent{
		EventID:    uuid.NewString(),
		OrderID:    order.ID,
		VisitorID:  order.VisitorID,
		Total:      order.Total.StringFixed(2),
		Currency:   domain.Currency,
		Lines:      lines,
		OccurredAt: order.PlacedAt,
	}
}
