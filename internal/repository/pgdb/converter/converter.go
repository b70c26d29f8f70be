package converter

import (
	"github.com/DRSN-tech/storefront/internal/domain"
)

// ToOrderModel переводит заказ в строку таблицы orders. Суммы хранятся как numeric(12,2).
func ToOrderModel(order *domain.Order) *OrderModel {
	return &OrderModel{
		ID:        order.ID,
		VisitorID: order.VisitorID,
		Total:     order.Total.StringFixed(2),
		Currency:  domain.Currency,
		PlacedAt:  order.PlacedAt.UTC(),
	}
}

// ToOrderLineModels сохраняет порядок позиций корзины в поле position.
func ToOrderLineModels(order *domain.Order) []*OrderLineModel {
	models := make([]*OrderLineModel, 0, len(order.Lines))
	for i, line := range order.Lines {
		models = append(models, &OrderLineModel{
			OrderID:   order.ID,
			Position:  i,
			ProductID: line.ID,
			Title:     line.Title,
			Size:      line.Size,
			Color:     line.Color,
			UnitPrice: line.Price.StringFixed(2),
			Quantity:  line.Quantity,
		})
	}

	return models
}
