package view

import "github.com/DRSN-tech/storefront/internal/domain"

type HomeView struct {
	Products []ProductCard
	Bindings []Binding
}

// RenderHome показывает все товары каталога с кнопкой добавления в корзину без размера.
func RenderHome(products []domain.Product) HomeView {
	v := HomeView{
		Products: make([]ProductCard, 0, len(products)),
		Bindings: make([]Binding, 0, len(products)),
	}

	for i := range products {
		p := &products[i]
		v.Products = append(v.Products, newProductCard(p))
		v.Bindings = append(v.Bindings, Binding{
			Element:   "add-to-cart-" + p.ID,
			Event:     EventClick,
			Action:    ActionAddToCart,
			ProductID: p.ID,
		})
	}

	return v
}
