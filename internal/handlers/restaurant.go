package handlers

import (
	"net/http"
	"strconv"

	"github.com/Rutikrtr/restaurent/internal/api"
	"github.com/Rutikrtr/restaurent/internal/cart"
	"github.com/Rutikrtr/restaurent/internal/models"
	"github.com/Rutikrtr/restaurent/internal/session"
	"github.com/gorilla/csrf"
)

type RestaurantHandler struct {
	API       *api.Client
	Sessions  *session.Manager
	Templates *TemplateCache
}

// Detail renders one restaurant with its menu grouped by category.
func (h *RestaurantHandler) Detail(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		http.Error(w, "Missing restaurant ID", http.StatusBadRequest)
		return
	}

	restaurant, err := h.API.GetRestaurant(r.Context(), id)
	if err != nil {
		h.Sessions.AddFlash(w, r, "error", api.Message(err, "Restaurant not found."))
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	// Group the menu by category, preserving first-seen order.
	var categories []string
	byCategory := make(map[string][]models.MenuItem)
	for _, item := range restaurant.Menu {
		if _, seen := byCategory[item.Category]; !seen {
			categories = append(categories, item.Category)
		}
		byCategory[item.Category] = append(byCategory[item.Category], item)
	}

	tmpl := h.Templates.Get("restaurant.html")
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}

	user, loggedIn := h.Sessions.Current(r)
	data := map[string]interface{}{
		"Restaurant": restaurant,
		"Categories": categories,
		"Menu":       byCategory,
		"User":       user,
		"LoggedIn":   loggedIn,
		"CartCount":  h.Sessions.Cart(r).Count(),
		"CsrfField":  csrf.TemplateField(r),
		"Flashes":    h.Sessions.Flashes(w, r),
	}
	tmpl.Execute(w, data)
}

// AddToCart applies an AddItem transition and returns to the menu. No
// network call happens here; the cart is purely local until checkout.
func (h *RestaurantHandler) AddToCart(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}

	itemID := r.FormValue("item_id")
	restaurantID := r.FormValue("restaurant_id")
	if itemID == "" || restaurantID == "" {
		http.Error(w, "Missing item", http.StatusBadRequest)
		return
	}

	price, err := parsePrice(r.FormValue("price"))
	if err != nil {
		http.Error(w, "Invalid price", http.StatusBadRequest)
		return
	}

	quantity := 1
	if q, err := strconv.Atoi(r.FormValue("quantity")); err == nil && q > 0 {
		quantity = q
	}

	line := cart.Line{
		ItemID:       itemID,
		Name:         r.FormValue("name"),
		UnitPrice:    price,
		Quantity:     quantity,
		RestaurantID: restaurantID,
	}

	updated := cart.Reduce(h.Sessions.Cart(r), cart.AddItem{Line: line})
	if err := h.Sessions.SaveCart(w, r, updated); err != nil {
		http.Error(w, "Failed to save cart", http.StatusInternalServerError)
		return
	}

	h.Sessions.AddFlash(w, r, "success", line.Name+" added to cart.")
	http.Redirect(w, r, "/restaurant/"+restaurantID, http.StatusSeeOther)
}
