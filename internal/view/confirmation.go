package view

import (
	"github.com/DRSN-tech/storefront/internal/domain"
	"github.com/shopspring/decimal"
)

type ConfirmationView struct {
	Amount string
}

// RenderConfirmation показывает сумму заказа; при отсутствии суммы показывается ноль.
func RenderConfirmation(total decimal.Decimal, ok bool) ConfirmationView {
	if !ok {
		total = decimal.Zero
	}

	return ConfirmationView{Amount: domain.FormatPrice(total)}
}
