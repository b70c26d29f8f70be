package domain

import "github.com/shopspring/decimal"

// Gender - значение поля gender в каталоге.
type Gender string

const (
	GenderFemale Gender = "Female"
	GenderMale   Gender = "Male"
	GenderOther  Gender = "Other"
)

// Product описывает товар из внешнего каталога (только для чтения)
type Product struct {
	ID          string
	Title       string
	Price       decimal.Decimal // неотрицательная цена в NOK
	Image       Image
	Description string
	Gender      Gender
	Sizes       []string // порядок как в каталоге, может быть пустым
	BaseColor   string
}

// HasSizes сообщает, предлагает ли товар выбор размера.
func (p *Product) HasSizes() bool {
	return len(p.Sizes) > 0
}

// OffersSize проверяет, что размер присутствует в списке размеров товара.
func (p *Product) OffersSize(size string) bool {
	for _, s := range p.Sizes {
		if s == size {
			return true
		}
	}

	return false
}

// FindProduct ищет товар по идентификатору.
func FindProduct(products []Product, id string) (*Product, bool) {
	for i := range products {
		if products[i].ID == id {
			return &products[i], true
		}
	}

	return nil, false
}
