package converter

import "time"

// OrderModel представляет запись таблицы orders в PostgreSQL.
type OrderModel struct {
	ID        string    `db:"id"`
	VisitorID string    `db:"visitor_id"`
	Total     string    `db:"total"`
	Currency  string    `db:"currency"`
	PlacedAt  time.Time `db:"placed_at"`
}

// OrderLineModel представляет запись таблицы order_lines в PostgreSQL.
type OrderLineModel struct {
	OrderID   string `db:"order_id"`
	Position  int    `db:"position"`
	ProductID string `db:"product_id"`
	Title     string `db:"title"`
	Size      string `db:"size"`
	Color     string `db:"color"`
	UnitPrice string `db:"unit_price"`
	Quantity  int    `db:"quantity"`
}
