package view

import "github.com/DRSN-tech/storefront/internal/domain"

type ListingView struct {
	Women []ProductCard
	Men   []ProductCard
}

// RenderListing раскладывает товары по спискам women и men.
// Товары с другим значением gender не попадают ни в один список.
func RenderListing(products []domain.Product) ListingView {
	v := ListingView{
		Women: []ProductCard{},
		Men:   []ProductCard{},
	}

	for i := range products {
		p := &products[i]
		switch p.Gender {
		case domain.GenderFemale:
			v.Women = append(v.Women, newProductCard(p))
		case domain.GenderMale:
			v.Men = append(v.Men, newProductCard(p))
		}
	}

	return v
}
