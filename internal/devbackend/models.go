package devbackend

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Skotchmaster/foodcourt-admin/internal/models"
)

type Admin struct {
	ID           string `gorm:"primaryKey"       json:"id"`
	Email        string `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"not null"         json:"-"`
}

type Category struct {
	ID        string    `gorm:"primaryKey"           json:"id"`
	Name      string    `gorm:"not null"             json:"name"`
	Slug      string    `gorm:"uniqueIndex;not null" json:"slug"`
	Image     *string   `json:"image"`
	SortOrder int       `gorm:"default:0"            json:"sortOrder"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type FoodItem struct {
	ID          string      `gorm:"primaryKey"      json:"id"`
	Name        string      `gorm:"not null"        json:"name"`
	Title       string      `gorm:"not null"        json:"title"`
	Description string      `json:"description"`
	Price       float64     `gorm:"not null"        json:"price"`
	Image       *string     `json:"image"`
	IsPopular   bool        `gorm:"default:false"   json:"isPopular"`
	Portions    PortionList `gorm:"type:text"       json:"portions"`
	SortOrder   int         `gorm:"default:0"       json:"sortOrder"`
	CategoryID  string      `gorm:"index;not null"  json:"categoryId"`
	Category    Category    `gorm:"foreignKey:CategoryID" json:"category"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

type Order struct {
	ID        string        `gorm:"primaryKey"     json:"id"`
	Name      string        `gorm:"not null"       json:"name"`
	Phone     string        `gorm:"not null"       json:"phone"`
	Address   string        `gorm:"not null"       json:"address"`
	Comment   *string       `json:"comment"`
	Status    string        `gorm:"index;not null" json:"status"`
	Items     OrderItemList `gorm:"type:text"      json:"items"`
	Total     float64       `gorm:"not null"       json:"total"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`
}

// PortionList stores portions as a JSON text column; both sqlite and
// postgres take it as-is.
type PortionList []models.Portion

func (p PortionList) Value() (driver.Value, error) {
	if p == nil {
		return nil, nil
	}
	return json.Marshal(p)
}

func (p *PortionList) Scan(value any) error {
	return scanJSON(value, p)
}

type OrderItemList []models.OrderItem

func (o OrderItemList) Value() (driver.Value, error) {
	if o == nil {
		return nil, nil
	}
	return json.Marshal(o)
}

func (o *OrderItemList) Scan(value any) error {
	return scanJSON(value, o)
}

func scanJSON(value, dst any) error {
	if value == nil {
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, dst)
	case string:
		return json.Unmarshal([]byte(v), dst)
	}
	return fmt.Errorf("unsupported column type %T", value)
}
