package transport

import "github.com/Skotchmaster/foodcourt-admin/internal/models"

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Message string `json:"message"`
	Email   string `json:"email"`
}

type CategoryPayload struct {
	Name      string  `json:"name" validate:"required"`
	Slug      string  `json:"slug" validate:"required,slug"`
	Image     *string `json:"image,omitempty"`
	SortOrder int     `json:"sortOrder" validate:"gte=0"`
}

// CategoryPatch carries a partial update; nil fields are left untouched.
type CategoryPatch struct {
	Name      *string `json:"name,omitempty" validate:"omitempty,min=1"`
	Slug      *string `json:"slug,omitempty" validate:"omitempty,slug"`
	Image     *string `json:"image,omitempty"`
	SortOrder *int    `json:"sortOrder,omitempty" validate:"omitempty,gte=0"`
}

type PortionPayload struct {
	Label string  `json:"label" validate:"required"`
	Price float64 `json:"price" validate:"gte=0"`
}

type FoodItemPayload struct {
	Name        string           `json:"name" validate:"required"`
	Title       string           `json:"title" validate:"required"`
	Description string           `json:"description"`
	Price       float64          `json:"price" validate:"gte=0"`
	Image       *string          `json:"image,omitempty"`
	IsPopular   bool             `json:"isPopular"`
	Portions    []PortionPayload `json:"portions,omitempty" validate:"omitempty,dive"`
	SortOrder   int              `json:"sortOrder" validate:"gte=0"`
	CategoryID  string           `json:"categoryId" validate:"required"`
}

type FoodItemPatch struct {
	Name        *string          `json:"name,omitempty" validate:"omitempty,min=1"`
	Title       *string          `json:"title,omitempty" validate:"omitempty,min=1"`
	Description *string          `json:"description,omitempty"`
	Price       *float64         `json:"price,omitempty" validate:"omitempty,gte=0"`
	Image       *string          `json:"image,omitempty"`
	IsPopular   *bool            `json:"isPopular,omitempty"`
	Portions    []PortionPayload `json:"portions,omitempty" validate:"omitempty,dive"`
	SortOrder   *int             `json:"sortOrder,omitempty" validate:"omitempty,gte=0"`
	CategoryID  *string          `json:"categoryId,omitempty" validate:"omitempty,min=1"`
}

type StatusPayload struct {
	Status models.OrderStatus `json:"status" validate:"required"`
}

// CreateOrderRequest is the customer-side order intake accepted by the backend.
type CreateOrderRequest struct {
	Name    string             `json:"name" validate:"required"`
	Phone   string             `json:"phone" validate:"required"`
	Address string             `json:"address" validate:"required"`
	Comment *string            `json:"comment,omitempty"`
	Items   []models.OrderItem `json:"items" validate:"required,min=1,dive"`
}
