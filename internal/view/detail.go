package view

import "github.com/DRSN-tech/storefront/internal/domain"

// DetailState - состояние страницы товара, которое живёт только в пределах просмотра.
type DetailState struct {
	SelectedSize string
}

type SizeOption struct {
	Value  string
	Active bool
	Href   string
}

type DetailView struct {
	Found        bool
	Message      string
	Product      ProductCard
	Description  string
	Color        string
	Sizes        []SizeOption
	SelectedSize string
	// NeedsSize - у товара есть размеры, а размер ещё не выбран.
	NeedsSize bool
	Bindings  []Binding
}

// RenderDetail показывает товар с выбором размера. Для nil возвращает
// сообщение "Product not found." без привязок.
func RenderDetail(product *domain.Product, state DetailState) DetailView {
	if product == nil {
		return DetailView{Message: MsgProductNotFound}
	}

	// неизвестный размер из запроса не считается выбранным
	selected := ""
	if product.OffersSize(state.SelectedSize) {
		selected = state.SelectedSize
	}

	v := DetailView{
		Found:        true,
		Product:      newProductCard(product),
		Description:  product.Description,
		Color:        product.BaseColor,
		Sizes:        make([]SizeOption, 0, len(product.Sizes)),
		SelectedSize: selected,
		NeedsSize:    product.HasSizes() && selected == "",
	}

	for _, size := range product.Sizes {
		v.Sizes = append(v.Sizes, SizeOption{
			Value:  size,
			Active: size == selected,
			Href:   DetailHref(product.ID, size),
		})
		v.Bindings = append(v.Bindings, Binding{
			Element:   "size-" + size,
			Event:     EventClick,
			Action:    ActionSelectSize,
			ProductID: product.ID,
			Size:      size,
		})
	}

	v.Bindings = append(v.Bindings, Binding{
		Element:   "add-to-bag",
		Event:     EventClick,
		Action:    ActionAddToBag,
		ProductID: product.ID,
		Size:      selected,
	})

	return v
}
