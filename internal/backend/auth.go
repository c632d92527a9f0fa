package backend

import (
	"context"
	"net/http"

	"github.com/Skotchmaster/foodcourt-admin/internal/models"
	"github.com/Skotchmaster/foodcourt-admin/internal/transport"
)

// Login submits staff credentials. On success the backend sets the session
// cookie, which the client's jar picks up for every following request.
func (c *Client) Login(ctx context.Context, email, password string) (*transport.LoginResponse, error) {
	var res transport.LoginResponse
	req := transport.LoginRequest{Email: email, Password: password}
	if err := c.do(ctx, http.MethodPost, "/auth/login", nil, req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/auth/logout", nil, nil, nil)
}

// Me asks the backend who, if anyone, currently holds a valid session.
func (c *Client) Me(ctx context.Context) (*models.Admin, error) {
	var admin models.Admin
	if err := c.do(ctx, http.MethodGet, "/auth/me", nil, nil, &admin); err != nil {
		return nil, err
	}
	return &admin, nil
}
