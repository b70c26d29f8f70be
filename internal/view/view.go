// Package view содержит чистые функции отображения страниц магазина.
// Функции не выполняют ввод-вывод: на вход получают товары каталога или корзину,
// на выходе отдают структуру страницы и декларативный список привязок действий,
// которые контроллер превращает в HTML-формы.
package view

import (
	"net/url"

	"github.com/DRSN-tech/storefront/internal/domain"
)

// Тексты, которые видит посетитель.
const (
	MsgProductNotFound = "Product not found."
	MsgCartEmpty       = "Your cart is empty."
	MsgFetchFailed     = "Failed to load products. Please try again later."
	MsgGenericFailure  = "Something went wrong, please try again later."
)

// Event - событие элемента страницы.
type Event string

const (
	EventClick  Event = "click"
	EventChange Event = "change"
	EventSubmit Event = "submit"
)

// Action - операция, которую контроллер выполняет по событию.
type Action string

const (
	ActionAddToCart      Action = "add-to-cart"
	ActionSelectSize     Action = "select-size"
	ActionAddToBag       Action = "add-to-bag"
	ActionChangeQuantity Action = "change-quantity"
	ActionRemoveItem     Action = "remove-item"
	ActionPay            Action = "pay"
)

// Binding связывает элемент страницы, событие и действие с его аргументами.
// Index имеет смысл только для действий над позициями корзины.
type Binding struct {
	Element   string
	Event     Event
	Action    Action
	ProductID string
	Size      string
	Index     int
}

// ProductCard - карточка товара в списках.
type ProductCard struct {
	ID       string
	Title    string
	Price    string
	ImageURL string
	ImageAlt string
	Href     string
}

func newProductCard(p *domain.Product) ProductCard {
	return ProductCard{
		ID:       p.ID,
		Title:    p.Title,
		Price:    domain.FormatPrice(p.Price),
		ImageURL: p.Image.URL,
		ImageAlt: p.Image.Alt,
		Href:     DetailHref(p.ID, ""),
	}
}

// DetailHref строит ссылку на страницу товара с необязательным выбранным размером.
func DetailHref(id, size string) string {
	q := url.Values{}
	q.Set("id", id)
	if size != "" {
		q.Set("size", size)
	}

	return "/product?" + q.Encode()
}
