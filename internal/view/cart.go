package view

import (
	"strconv"

	"github.com/DRSN-tech/storefront/internal/domain"
)

type CartRow struct {
	Index     int
	ProductID string
	Title     string
	ImageURL  string
	ImageAlt  string
	Color     string
	Size      string
	Quantity  int
	Price     string
	LineTotal string
}

type CartView struct {
	Empty    bool
	Message  string
	Rows     []CartRow
	Subtotal string
	Total    string
	Bindings []Binding
}

func newCartRows(cart domain.Cart) []CartRow {
	rows := make([]CartRow, 0, len(cart))
	for i, item := range cart {
		rows = append(rows, CartRow{
			Index:     i,
			ProductID: item.ID,
			Title:     item.Title,
			ImageURL:  item.Image.URL,
			ImageAlt:  item.Image.Alt,
			Color:     item.Color,
			Size:      item.Size,
			Quantity:  item.Quantity,
			Price:     domain.FormatPrice(item.Price),
			LineTotal: domain.FormatPrice(item.LineTotal()),
		})
	}

	return rows
}

// RenderCart показывает позиции корзины с изменением количества и удалением.
// Промежуточный итог и итог совпадают: налогов и доставки нет.
func RenderCart(cart domain.Cart) CartView {
	subtotal := domain.FormatPrice(cart.Subtotal())

	v := CartView{
		Subtotal: subtotal,
		Total:    subtotal,
	}

	if len(cart) == 0 {
		v.Empty = true
		v.Message = MsgCartEmpty
		return v
	}

	v.Rows = newCartRows(cart)
	v.Bindings = make([]Binding, 0, 2*len(cart))
	for i, item := range cart {
		idx := strconv.Itoa(i)
		v.Bindings = append(v.Bindings,
			Binding{
				Element:   "quantity-" + idx,
				Event:     EventChange,
				Action:    ActionChangeQuantity,
				ProductID: item.ID,
				Size:      item.Size,
				Index:     i,
			},
			Binding{
				Element:   "remove-" + idx,
				Event:     EventClick,
				Action:    ActionRemoveItem,
				ProductID: item.ID,
				Size:      item.Size,
				Index:     i,
			},
		)
	}

	return v
}
