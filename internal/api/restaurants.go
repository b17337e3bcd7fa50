package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/Rutikrtr/restaurent/internal/models"
)

// ListRestaurants fetches the public restaurant directory for the homepage.
func (c *Client) ListRestaurants(ctx context.Context) ([]models.Restaurant, error) {
	var data []models.Restaurant
	if err := c.do(ctx, http.MethodGet, "/restaurants", "", nil, &data); err != nil {
		return nil, err
	}
	return data, nil
}

// GetRestaurant fetches one restaurant together with its menu.
func (c *Client) GetRestaurant(ctx context.Context, id string) (*models.Restaurant, error) {
	var data models.Restaurant
	if err := c.do(ctx, http.MethodGet, "/"+url.PathEscape(id), "", nil, &data); err != nil {
		return nil, err
	}
	return &data, nil
}
