package http

import (
	"fmt"
	"net/http"

	"github.com/DRSN-tech/storefront/internal/view"
)

// Источник добавления в корзину.
const (
	sourceHome   = "home"
	sourceDetail = "detail"
)

type Field struct {
	Name  string
	Value string
}

// Form - HTML-форма, в которую превращается привязка действия.
type Form struct {
	Element string
	Method  string
	Action  string
	Fields  []Field
}

// formFor переводит привязку в форму. Для неизвестного действия возвращает nil.
func formFor(b view.Binding) *Form {
	f := &Form{Element: b.Element, Method: http.MethodPost}

	switch b.Action {
	case view.ActionAddToCart:
		f.Action = "/cart/items"
		f.Fields = []Field{{"id", b.ProductID}, {"size", ""}, {"source", sourceHome}}
	case view.ActionAddToBag:
		f.Action = "/cart/items"
		f.Fields = []Field{{"id", b.ProductID}, {"size", b.Size}, {"source", sourceDetail}}
	case view.ActionSelectSize:
		// выбранный размер живёт в адресе страницы, а не в хранилище
		f.Method = http.MethodGet
		f.Action = "/product"
		f.Fields = []Field{{"id", b.ProductID}, {"size", b.Size}}
	case view.ActionChangeQuantity:
		f.Action = fmt.Sprintf("/cart/items/%d/quantity", b.Index)
	case view.ActionRemoveItem:
		f.Action = fmt.Sprintf("/cart/items/%d/remove", b.Index)
	case view.ActionPay:
		f.Action = "/checkout"
	default:
		return nil
	}

	return f
}

// formsFor индексирует формы по идентификатору элемента для шаблонов.
func formsFor(bindings []view.Binding) map[string]*Form {
	forms := make(map[string]*Form, len(bindings))
	for _, b := range bindings {
		if f := formFor(b); f != nil {
			forms[b.Element] = f
		}
	}

	return forms
}
