package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// User is the authenticated identity as returned by the account API.
// Role is either "customer" or "restaurant".
type User struct {
	ID    string `json:"_id"`
	Name  string `json:"fullname"`
	Email string `json:"email"`
	Role  string `json:"accountType"`
}

const (
	RoleCustomer   = "customer"
	RoleRestaurant = "restaurant"
)

// Tokens holds the credential pair issued at login.
type Tokens struct {
	Access  string `json:"accessToken"`
	Refresh string `json:"refreshToken"`
}

type Restaurant struct {
	ID           string     `json:"_id"`
	Name         string     `json:"name"`
	Introduction string     `json:"introduction"`
	OpeningTime  string     `json:"openingTime"`
	ClosingTime  string     `json:"closingTime"`
	Location     string     `json:"location"`
	Image        string     `json:"image"`
	Rating       float64    `json:"rating"`
	Categories   []string   `json:"categories"`
	Menu         []MenuItem `json:"menu"`
}

type MenuItem struct {
	ID          string          `json:"_id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Category    string          `json:"category"`
	Image       string          `json:"image"`
}

// Order is a placed order as reported by the API. Pricing fields are
// authoritative server values, never recomputed locally.
type Order struct {
	ID                  string          `json:"_id"`
	RestaurantID        string          `json:"restaurantId"`
	Items               []OrderItem     `json:"items"`
	Status              string          `json:"status"`
	OrderType           string          `json:"orderType"`
	PaymentMethod       string          `json:"paymentMethod"`
	ParkingRequired     bool            `json:"parkingRequired"`
	DeliveryAddress     string          `json:"deliveryAddress"`
	TableNumber         *int            `json:"tableNumber"`
	SpecialInstructions string          `json:"specialInstructions"`
	TotalAmount         decimal.Decimal `json:"totalAmount"`
	CreatedAt           time.Time       `json:"createdAt"`
}

type OrderItem struct {
	MenuItemID string          `json:"menuItemId"`
	Name       string          `json:"name"`
	Quantity   int             `json:"quantity"`
	Price      decimal.Decimal `json:"price"`
}

// ActiveStatuses are the order states the "pending" filter on the order
// history page buckets together.
var ActiveStatuses = []string{"pending", "approved", "preparing", "ready"}
