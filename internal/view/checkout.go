package view

import "github.com/DRSN-tech/storefront/internal/domain"

type CheckoutView struct {
	Rows     []CartRow
	Subtotal string
	Total    string
	Bindings []Binding
}

// RenderCheckout показывает сводку заказа только для чтения и форму оплаты.
func RenderCheckout(cart domain.Cart) CheckoutView {
	amount := domain.FormatPrice(cart.Subtotal())

	return CheckoutView{
		Rows:     newCartRows(cart),
		Subtotal: "Subtotal: " + amount,
		Total:    "Total: " + amount,
		Bindings: []Binding{{
			Element: "payment-form",
			Event:   EventSubmit,
			Action:  ActionPay,
		}},
	}
}
