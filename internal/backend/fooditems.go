package backend

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/Skotchmaster/foodcourt-admin/internal/models"
	"github.com/Skotchmaster/foodcourt-admin/internal/transport"
)

// FoodItemFilter narrows a food item listing. The zero value means the whole
// collection.
type FoodItemFilter struct {
	CategoryID string
	Popular    *bool
}

// Query renders the filter as canonical (sorted) query parameters, so equal
// filters always produce equal strings. Cache keys depend on that.
func (f FoodItemFilter) Query() url.Values {
	q := url.Values{}
	if f.CategoryID != "" {
		q.Set("categoryId", f.CategoryID)
	}
	if f.Popular != nil {
		q.Set("popular", strconv.FormatBool(*f.Popular))
	}
	return q
}

func (c *Client) ListFoodItems(ctx context.Context, filter FoodItemFilter) ([]models.FoodItem, error) {
	var out []models.FoodItem
	if err := c.do(ctx, http.MethodGet, "/food-items", filter.Query(), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetFoodItem(ctx context.Context, id string) (*models.FoodItem, error) {
	var out models.FoodItem
	if err := c.do(ctx, http.MethodGet, "/food-items/"+id, nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateFoodItem(ctx context.Context, payload transport.FoodItemPayload) (*models.FoodItem, error) {
	var out models.FoodItem
	if err := c.do(ctx, http.MethodPost, "/food-items", nil, payload, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateFoodItem(ctx context.Context, id string, patch transport.FoodItemPatch) (*models.FoodItem, error) {
	var out models.FoodItem
	if err := c.do(ctx, http.MethodPatch, "/food-items/"+id, nil, patch, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteFoodItem(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/food-items/"+id, nil, nil, nil)
}
