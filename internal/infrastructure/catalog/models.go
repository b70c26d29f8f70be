package catalog

import (
	"github.com/shopspring/decimal"
)

// catalogResponse - конверт ответа каталога: { "data": [...] }.
type catalogResponse struct {
	Data []productModel `json:"data"`
}

// productModel - товар в том виде, в котором его отдаёт API каталога.
type productModel struct {
	ID          string              `json:"id"`
	Title       string              `json:"title"`
	Price       decimal.NullDecimal `json:"price"`
	Image       *imageModel         `json:"image"`
	Description string              `json:"description"`
	Gender      string              `json:"gender"`
	Sizes       []string            `json:"sizes"`
	BaseColor   string              `json:"baseColor"`
}

type imageModel struct {
	URL string `json:"url"`
	Alt string `json:"alt"`
}
