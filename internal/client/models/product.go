package models

import "fmt"

type Product struct {
	ID          string
	Name        string
	PriceCents  int64
	Category    string
	Description string
	ImagePath   string
	ImageURL    string
}

// Price formats PriceCents as a decimal amount, e.g. 1299 -> "12.99".
func (p Product) Price() string {
	sign := ""
	c := p.PriceCents
	if c < 0 {
		sign = "-"
		c = -c
	}
	return fmt.Sprintf("%s%d.%02d", sign, c/100, c%100)
}

// FavoriteRow is one favorites relation as returned by the joined fetch.
// Product is nil when the relation points at a product that no longer exists.
type FavoriteRow struct {
	UserID    string
	ProductID string
	Product   *Product
}
