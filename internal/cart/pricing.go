package cart

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Mode is the fulfillment mode, as the lowercase token the order API expects.
type Mode string

const (
	ModeDineIn   Mode = "dine-in"
	ModeTakeaway Mode = "takeaway"
	ModeDelivery Mode = "delivery"
)

// ParseMode normalizes user input ("Dine-In", "TAKEAWAY", ...) to a Mode.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case ModeDineIn:
		return ModeDineIn, nil
	case ModeTakeaway:
		return ModeTakeaway, nil
	case ModeDelivery:
		return ModeDelivery, nil
	}
	return "", fmt.Errorf("unknown fulfillment mode %q", s)
}

var (
	// deliveryFee is the flat surcharge applied to delivery orders only.
	deliveryFee = decimal.NewFromInt(30)
	// taxRate is applied to the subtotal of every order.
	taxRate = decimal.NewFromFloat(0.08)
)

// Draft is the priced projection of a cart for a given fulfillment mode.
// It is derived on every read and never stored; the server re-prices the
// order authoritatively on submission.
type Draft struct {
	Mode        Mode
	Subtotal    decimal.Decimal
	DeliveryFee decimal.Decimal
	Tax         decimal.Decimal
	Total       decimal.Decimal
}

// Quote prices the cart for display: subtotal, the delivery surcharge when
// applicable, tax, and the grand total.
func Quote(c Cart, mode Mode) Draft {
	subtotal := c.Total()
	fee := decimal.Zero
	if mode == ModeDelivery {
		fee = deliveryFee
	}
	tax := subtotal.Mul(taxRate)
	return Draft{
		Mode:        mode,
		Subtotal:    subtotal,
		DeliveryFee: fee,
		Tax:         tax,
		Total:       subtotal.Add(fee).Add(tax),
	}
}
