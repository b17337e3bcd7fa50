package api

import (
	"context"
	"net/http"

	"github.com/Rutikrtr/restaurent/internal/models"
)

// OrderInput is the create-order payload. Prices are deliberately absent:
// the server re-derives authoritative pricing from the menu item ids.
type OrderInput struct {
	RestaurantID        string           `json:"restaurantId"`
	Items               []OrderItemInput `json:"items"`
	OrderType           string           `json:"orderType"`
	ParkingRequired     bool             `json:"parkingRequired"`
	PaymentMethod       string           `json:"paymentMethod"`
	DeliveryAddress     string           `json:"deliveryAddress"`
	TableNumber         *int             `json:"tableNumber"`
	SpecialInstructions string           `json:"specialInstructions"`
}

type OrderItemInput struct {
	MenuItemID string `json:"menuItemId"`
	Quantity   int    `json:"quantity"`
}

// PlaceOrder issues the single create-order request.
func (c *Client) PlaceOrder(ctx context.Context, token string, in OrderInput) (*models.Order, error) {
	var data models.Order
	if err := c.do(ctx, http.MethodPost, "/order", token, in, &data); err != nil {
		return nil, err
	}
	return &data, nil
}

// ListCustomerOrders fetches the caller's order history.
func (c *Client) ListCustomerOrders(ctx context.Context, token string) ([]models.Order, error) {
	var data []models.Order
	if err := c.do(ctx, http.MethodGet, "/order/customer", token, nil, &data); err != nil {
		return nil, err
	}
	return data, nil
}
