package models

// Product is a catalog row. ImageURL is not stored; services fill it with a
// presigned GET URL for ImagePath when object storage is configured.
type Product struct {
	ID          string
	Name        string
	PriceCents  int64
	Category    string
	Description string
	ImagePath   string
	ImageURL    string
}

// Favorite is one favorites row joined with its product. Product is nil when
// the referenced product no longer exists.
type Favorite struct {
	UserID    string
	ProductID string
	Product   *Product
}
