package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/Rutikrtr/restaurent/internal/api"
	"github.com/Rutikrtr/restaurent/internal/cart"
	"github.com/Rutikrtr/restaurent/internal/session"
	"github.com/gorilla/csrf"
	"github.com/shopspring/decimal"
)

type CartHandler struct {
	API       *api.Client
	Sessions  *session.Manager
	Templates *TemplateCache
}

func parsePrice(s string) (decimal.Decimal, error) {
	price, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, err
	}
	if price.IsNegative() {
		return decimal.Zero, errors.New("negative price")
	}
	return price, nil
}

// View renders the cart with a priced draft for the selected fulfillment
// mode. The draft is recomputed on every render, never stored.
func (h *CartHandler) View(w http.ResponseWriter, r *http.Request) {
	c := h.Sessions.Cart(r)

	mode := cart.ModeDineIn
	if m, err := cart.ParseMode(r.URL.Query().Get("mode")); err == nil {
		mode = m
	}

	tmpl := h.Templates.Get("cart.html")
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}

	user, loggedIn := h.Sessions.Current(r)
	data := map[string]interface{}{
		"Cart":      c,
		"Draft":     cart.Quote(c, mode),
		"Mode":      mode,
		"User":      user,
		"LoggedIn":  loggedIn,
		"CartCount": c.Count(),
		"CsrfField": csrf.TemplateField(r),
		"Flashes":   h.Sessions.Flashes(w, r),
	}
	tmpl.Execute(w, data)
}

// UpdateQuantity applies SetQuantity; zero or less removes the line.
func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	itemID := r.FormValue("item_id")
	quantity, err := strconv.Atoi(r.FormValue("quantity"))
	if itemID == "" || err != nil {
		http.Error(w, "Invalid quantity", http.StatusBadRequest)
		return
	}

	updated := cart.Reduce(h.Sessions.Cart(r), cart.SetQuantity{ItemID: itemID, Quantity: quantity})
	if err := h.Sessions.SaveCart(w, r, updated); err != nil {
		http.Error(w, "Failed to save cart", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/cart", http.StatusSeeOther)
}

// Remove deletes a line; removing an absent line is not an error.
func (h *CartHandler) Remove(w http.ResponseWriter, r *http.Request) {
	updated := cart.Reduce(h.Sessions.Cart(r), cart.RemoveItem{ItemID: r.FormValue("item_id")})
	if err := h.Sessions.SaveCart(w, r, updated); err != nil {
		http.Error(w, "Failed to save cart", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/cart", http.StatusSeeOther)
}

// Checkout builds the order payload and issues the single create-order
// request. Success clears the cart and shows the confirmation page, which
// returns to the landing page after a short delay. Failure leaves the cart
// untouched so the visitor can retry.
func (h *CartHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	token, ok := h.Sessions.AccessToken(r)
	if _, logged := h.Sessions.Current(r); !logged || !ok {
		h.Sessions.RememberNext(w, r, "/cart")
		h.Sessions.AddFlash(w, r, "error", "Please log in to place an order.")
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	c := h.Sessions.Cart(r)
	if c.IsEmpty() {
		h.Sessions.AddFlash(w, r, "error", "Your cart is empty.")
		http.Redirect(w, r, "/cart", http.StatusSeeOther)
		return
	}

	if err := r.ParseForm(); err != nil {
		h.Sessions.AddFlash(w, r, "error", "Invalid form data.")
		http.Redirect(w, r, "/cart", http.StatusSeeOther)
		return
	}

	mode, err := cart.ParseMode(r.FormValue("order_type"))
	if err != nil {
		h.Sessions.AddFlash(w, r, "error", "Please choose how you want your order.")
		http.Redirect(w, r, "/cart", http.StatusSeeOther)
		return
	}

	paymentMethod := r.FormValue("payment_method")
	if paymentMethod != "cash" && paymentMethod != "card" {
		h.Sessions.AddFlash(w, r, "error", "Please choose a payment method.")
		http.Redirect(w, r, "/cart", http.StatusSeeOther)
		return
	}

	input := api.OrderInput{
		RestaurantID: c.RestaurantID(),
		OrderType:    string(mode),
		// Parking counts only when it was both requested and confirmed.
		ParkingRequired:     r.FormValue("wants_parking") == "on" && r.FormValue("confirm_parking") == "on",
		PaymentMethod:       paymentMethod,
		SpecialInstructions: r.FormValue("special_instructions"),
	}
	for _, l := range c.Lines {
		input.Items = append(input.Items, api.OrderItemInput{MenuItemID: l.ItemID, Quantity: l.Quantity})
	}

	switch mode {
	case cart.ModeDelivery:
		input.DeliveryAddress = r.FormValue("delivery_address")
		if input.DeliveryAddress == "" {
			h.Sessions.AddFlash(w, r, "error", "A delivery address is required for delivery orders.")
			http.Redirect(w, r, "/cart", http.StatusSeeOther)
			return
		}
	case cart.ModeDineIn:
		if table, err := strconv.Atoi(r.FormValue("table_number")); err == nil {
			input.TableNumber = &table
		}
	}

	order, err := h.API.PlaceOrder(r.Context(), token, input)
	if err != nil {
		slog.Error("Order submission failed", "error", err, "restaurant", input.RestaurantID)
		h.Sessions.AddFlash(w, r, "error", checkoutFailureMessage(err))
		http.Redirect(w, r, "/cart", http.StatusSeeOther)
		return
	}

	if err := h.Sessions.SaveCart(w, r, cart.Reduce(c, cart.Clear{})); err != nil {
		slog.Error("Failed to clear cart after order", "error", err)
	}

	tmpl := h.Templates.Get("order_placed.html")
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}
	tmpl.Execute(w, map[string]interface{}{
		"Order": order,
		// The confirmation page redirects home after this many seconds.
		"RedirectSeconds": 3,
	})
}

func checkoutFailureMessage(err error) string {
	switch {
	case api.IsUnauthorized(err):
		return "Your session has expired. Please log in again."
	case api.IsServer(err):
		return "The kitchen is having trouble right now. Please try again later."
	default:
		return api.Message(err, "Failed to place order. Please try again.")
	}
}
