package handlers

import (
	"net/http"
	"slices"
	"strings"

	"github.com/Rutikrtr/restaurent/internal/api"
	"github.com/Rutikrtr/restaurent/internal/models"
	"github.com/Rutikrtr/restaurent/internal/session"
)

type OrderHandler struct {
	API       *api.Client
	Sessions  *session.Manager
	Templates *TemplateCache
}

// MyOrders lists the customer's order history, bucketed by the same status
// filter the order page always had: pending (anything still in flight),
// completed, or all.
func (h *OrderHandler) MyOrders(w http.ResponseWriter, r *http.Request) {
	token, _ := h.Sessions.AccessToken(r)

	orders, err := h.API.ListCustomerOrders(r.Context(), token)
	if err != nil {
		if api.IsUnauthorized(err) {
			h.Sessions.Clear(w, r)
			h.Sessions.AddFlash(w, r, "error", "Your session has expired. Please log in again.")
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		h.Sessions.AddFlash(w, r, "error", api.Message(err, "Failed to fetch orders"))
	}

	filter := r.URL.Query().Get("filter")
	if filter != "completed" && filter != "all" {
		filter = "pending"
	}

	var filtered []models.Order
	for _, o := range orders {
		status := strings.ToLower(o.Status)
		switch filter {
		case "pending":
			if slices.Contains(models.ActiveStatuses, status) {
				filtered = append(filtered, o)
			}
		case "completed":
			if status == "completed" {
				filtered = append(filtered, o)
			}
		default:
			filtered = append(filtered, o)
		}
	}

	tmpl := h.Templates.Get("my_orders.html")
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}

	user, loggedIn := h.Sessions.Current(r)
	tmpl.Execute(w, map[string]interface{}{
		"Orders":    filtered,
		"Filter":    filter,
		"User":      user,
		"LoggedIn":  loggedIn,
		"CartCount": h.Sessions.Cart(r).Count(),
		"Flashes":   h.Sessions.Flashes(w, r),
	})
}
