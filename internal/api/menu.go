package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/Rutikrtr/restaurent/internal/models"
	"github.com/shopspring/decimal"
)

// ManagerData fetches the owner's restaurant, menu and categories for the
// management page.
func (c *Client) ManagerData(ctx context.Context, token string) (*models.Restaurant, error) {
	var data models.Restaurant
	if err := c.do(ctx, http.MethodGet, "/manager", token, nil, &data); err != nil {
		return nil, err
	}
	return &data, nil
}

type MenuItemInput struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Category    string          `json:"category"`
	Image       string          `json:"image"`
}

func (c *Client) AddMenuItem(ctx context.Context, token string, in MenuItemInput) (*models.MenuItem, error) {
	var data models.MenuItem
	if err := c.do(ctx, http.MethodPost, "/menu", token, in, &data); err != nil {
		return nil, err
	}
	return &data, nil
}

func (c *Client) UpdateMenuItem(ctx context.Context, token, itemID string, in MenuItemInput) (*models.MenuItem, error) {
	var data models.MenuItem
	if err := c.do(ctx, http.MethodPut, "/menu/"+url.PathEscape(itemID), token, in, &data); err != nil {
		return nil, err
	}
	return &data, nil
}

func (c *Client) DeleteMenuItem(ctx context.Context, token, itemID string) error {
	return c.do(ctx, http.MethodDelete, "/menu/"+url.PathEscape(itemID), token, nil, nil)
}

func (c *Client) AddCategory(ctx context.Context, token, name string) error {
	body := map[string]string{"category": name}
	return c.do(ctx, http.MethodPost, "/menu/category", token, body, nil)
}

func (c *Client) DeleteCategory(ctx context.Context, token, name string) error {
	return c.do(ctx, http.MethodDelete, "/menu/category/"+url.PathEscape(name), token, nil, nil)
}
