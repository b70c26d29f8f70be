package domain

import (
	"github.com/shopspring/decimal"
)

// CartLineItem - позиция корзины. Цена, название, изображение и цвет
// фиксируются в момент добавления товара.
type CartLineItem struct {
	ID       string          `json:"id"`
	Title    string          `json:"title"`
	Price    decimal.Decimal `json:"price"`
	Image    Image           `json:"image"`
	Color    string          `json:"color"`
	Size     string          `json:"size,omitempty"` // пустая строка - размер не выбран
	Quantity int             `json:"quantity"`
}

// NewCartLineItem создаёт позицию с количеством 1 из текущего состояния товара.
func NewCartLineItem(product *Product, size string) CartLineItem {
	return CartLineItem{
		ID:       product.ID,
		Title:    product.Title,
		Price:    product.Price,
		Image:    product.Image,
		Color:    product.BaseColor,
		Size:     size,
		Quantity: 1,
	}
}

// LineTotal возвращает price × quantity.
func (i CartLineItem) LineTotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Cart - упорядоченный список позиций. На каждую пару (id, size) приходится не более одной позиции.
type Cart []CartLineItem

// Find возвращает индекс позиции с ключом (id, size) или -1.
func (c Cart) Find(id string, size string) int {
	for i, item := range c {
		if item.ID == id && item.Size == size {
			return i
		}
	}

	return -1
}

// Subtotal - сумма price × quantity по всем позициям, для пустой корзины ноль.
func (c Cart) Subtotal() decimal.Decimal {
	total := decimal.Zero
	for _, item := range c {
		total = total.Add(item.LineTotal())
	}

	return total
}

// Len возвращает количество позиций.
func (c Cart) Len() int {
	return len(c)
}

// TotalQuantity возвращает количество единиц товара во всех позициях.
func (c Cart) TotalQuantity() int {
	n := 0
	for _, item := range c {
		n += item.Quantity
	}

	return n
}
