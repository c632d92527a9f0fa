package models

import "time"

// Admin is the identity of the currently authenticated staff member.
// It exists only while the upstream session is valid.
type Admin struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

type Category struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	Image     *string   `json:"image"`
	SortOrder int       `json:"sortOrder"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CategoryRef is the short form embedded into food items.
type CategoryRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type Portion struct {
	Label string  `json:"label"`
	Price float64 `json:"price"`
}

type FoodItem struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Price       float64     `json:"price"`
	Image       *string     `json:"image"`
	IsPopular   bool        `json:"isPopular"`
	Portions    []Portion   `json:"portions"`
	SortOrder   int         `json:"sortOrder"`
	CategoryID  string      `json:"categoryId"`
	Category    CategoryRef `json:"category"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

type OrderStatus string

const (
	OrderStatusNew        OrderStatus = "NEW"
	OrderStatusInProgress OrderStatus = "IN_PROGRESS"
	OrderStatusDone       OrderStatus = "DONE"
	OrderStatusCancelled  OrderStatus = "CANCELLED"
)

// OrderStatuses lists every status an order can carry, in lifecycle order.
var OrderStatuses = []OrderStatus{
	OrderStatusNew,
	OrderStatusInProgress,
	OrderStatusDone,
	OrderStatusCancelled,
}

// ValidStatus reports whether s is one of the known order statuses. Staff may
// move an order between any two statuses, so this is the only check applied.
func ValidStatus(s OrderStatus) bool {
	for _, known := range OrderStatuses {
		if s == known {
			return true
		}
	}
	return false
}

type OrderItem struct {
	FoodItemID string  `json:"foodItemId"`
	Name       string  `json:"name"`
	Quantity   int     `json:"quantity"`
	Price      float64 `json:"price"`
	Portion    string  `json:"portion,omitempty"`
}

type Order struct {
	ID        string      `json:"id"`
	Name      string      `json:"name"`
	Phone     string      `json:"phone"`
	Address   string      `json:"address"`
	Comment   *string     `json:"comment"`
	Status    OrderStatus `json:"status"`
	Items     []OrderItem `json:"items"`
	Total     float64     `json:"total"`
	CreatedAt time.Time   `json:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt"`
}

type UploadResult struct {
	URL string `json:"url"`
}
