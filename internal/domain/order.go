package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order описывает оформленный заказ: снимок корзины в момент оплаты
type Order struct {
	ID        string // uuid
	VisitorID string
	Lines     Cart
	Total     decimal.Decimal
	PlacedAt  time.Time
}

func NewOrder(id string, visitorID string, lines Cart, total decimal.Decimal, placedAt time.Time) *Order {
	return &Order{
		ID:        id,
		VisitorID: visitorID,
		Lines:     lines,
		Total:     total,
		PlacedAt:  placedAt,
	}
}
