package rpc

type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type Product struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	PriceCents  int64  `json:"price_cents"`
	Category    string `json:"category,omitempty"`
	Description string `json:"description,omitempty"`
	ImagePath   string `json:"image_path,omitempty"`
	ImageURL    string `json:"image_url,omitempty"`
}

type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SignInResponse struct {
	User        User   `json:"user"`
	AccessToken string `json:"access_token"`
}

type FindUserByEmailRequest struct {
	Email string `json:"email"`
}

type FindUserByEmailResponse struct {
	Found bool  `json:"found"`
	User  *User `json:"user,omitempty"`
}

type InsertUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type InsertUserResponse struct {
	User User `json:"user"`
}

type GetUserRequest struct {
	ID string `json:"id"`
}

type GetUserResponse struct {
	User User `json:"user"`
}

// UpdateUserRequest changes only the fields that are non-nil.
type UpdateUserRequest struct {
	ID       string  `json:"id"`
	Name     *string `json:"name,omitempty"`
	Password *string `json:"password,omitempty"`
}

type UpdateUserResponse struct {
	User User `json:"user"`
}

type ListProductsRequest struct {
	Category string `json:"category,omitempty"`
}

type ListProductsResponse struct {
	Products []Product `json:"products"`
}

type GetProductRequest struct {
	ID string `json:"id"`
}

type GetProductResponse struct {
	Product Product `json:"product"`
}

type FavoriteRequest struct {
	UserID    string `json:"user_id"`
	ProductID string `json:"product_id"`
}

type FavoriteResponse struct{}

type ListFavoritesRequest struct {
	UserID string `json:"user_id"`
}

// FavoriteRow is one favorites relation joined with its product. Product is
// nil when the referenced product no longer exists.
type FavoriteRow struct {
	UserID    string   `json:"user_id"`
	ProductID string   `json:"product_id"`
	Product   *Product `json:"product,omitempty"`
}

type ListFavoritesResponse struct {
	Favorites []FavoriteRow `json:"favorites"`
}
