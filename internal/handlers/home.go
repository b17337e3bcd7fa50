package handlers

import (
	"log/slog"
	"net/http"

	"github.com/Rutikrtr/restaurent/internal/api"
	"github.com/Rutikrtr/restaurent/internal/session"
)

type HomeHandler struct {
	API       *api.Client
	Sessions  *session.Manager
	Templates *TemplateCache
}

func (h *HomeHandler) Index(w http.ResponseWriter, r *http.Request) {
	restaurants, err := h.API.ListRestaurants(r.Context())
	if err != nil {
		slog.Error("Failed to fetch restaurants", "error", err)
		h.Sessions.AddFlash(w, r, "error", api.Message(err, "Could not load restaurants. Please try again later."))
	}

	tmpl := h.Templates.Get("home.html")
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}

	user, loggedIn := h.Sessions.Current(r)
	data := map[string]interface{}{
		"Restaurants": restaurants,
		"User":        user,
		"LoggedIn":    loggedIn,
		"CartCount":   h.Sessions.Cart(r).Count(),
		"Flashes":     h.Sessions.Flashes(w, r),
	}
	tmpl.Execute(w, data)
}
