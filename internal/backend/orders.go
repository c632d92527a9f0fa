package backend

import (
	"context"
	"net/http"
	"net/url"

	"github.com/Skotchmaster/foodcourt-admin/internal/models"
	"github.com/Skotchmaster/foodcourt-admin/internal/transport"
)

// ListOrders lists orders, optionally filtered by status. An empty status
// means all orders.
func (c *Client) ListOrders(ctx context.Context, status models.OrderStatus) ([]models.Order, error) {
	var q url.Values
	if status != "" {
		q = url.Values{"status": []string{string(status)}}
	}
	var out []models.Order
	if err := c.do(ctx, http.MethodGet, "/orders", q, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetOrder(ctx context.Context, id string) (*models.Order, error) {
	var out models.Order
	if err := c.do(ctx, http.MethodGet, "/orders/"+id, nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateOrderStatus moves an order to the given status. Any transition is
// allowed here; staff use it to correct mistakes, so legality is left to the
// backend.
func (c *Client) UpdateOrderStatus(ctx context.Context, id string, status models.OrderStatus) (*models.Order, error) {
	var out models.Order
	payload := transport.StatusPayload{Status: status}
	if err := c.do(ctx, http.MethodPatch, "/orders/"+id+"/status", nil, payload, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteOrder(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/orders/"+id, nil, nil, nil)
}
