package handlers

import (
	"net/http"
	"strings"

	"github.com/Rutikrtr/restaurent/internal/api"
	"github.com/Rutikrtr/restaurent/internal/models"
	"github.com/Rutikrtr/restaurent/internal/session"
	"github.com/gorilla/csrf"
)

// ManageHandler is the restaurant owner's menu management surface. Every
// operation is a thin pass-through to the menu API; the page re-fetches
// manager data on each render, so there is no local copy to drift.
type ManageHandler struct {
	API       *api.Client
	Sessions  *session.Manager
	Templates *TemplateCache
}

func (h *ManageHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	token, _ := h.Sessions.AccessToken(r)

	restaurant, err := h.API.ManagerData(r.Context(), token)
	if err != nil {
		if api.IsUnauthorized(err) {
			h.Sessions.Clear(w, r)
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		h.Sessions.AddFlash(w, r, "error", api.Message(err, "Could not load your restaurant."))
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	byCategory := make(map[string][]models.MenuItem)
	for _, item := range restaurant.Menu {
		byCategory[item.Category] = append(byCategory[item.Category], item)
	}

	tmpl := h.Templates.Get("manage.html")
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}

	user, _ := h.Sessions.Current(r)
	tmpl.Execute(w, map[string]interface{}{
		"Restaurant": restaurant,
		"Menu":       byCategory,
		"User":       user,
		"LoggedIn":   true,
		"CsrfField":  csrf.TemplateField(r),
		"Flashes":    h.Sessions.Flashes(w, r),
	})
}

func (h *ManageHandler) menuItemFromForm(r *http.Request) (api.MenuItemInput, error) {
	price, err := parsePrice(r.FormValue("price"))
	if err != nil {
		return api.MenuItemInput{}, err
	}
	return api.MenuItemInput{
		Name:        strings.TrimSpace(r.FormValue("name")),
		Description: strings.TrimSpace(r.FormValue("description")),
		Price:       price,
		Category:    r.FormValue("category"),
		Image:       strings.TrimSpace(r.FormValue("image")),
	}, nil
}

func (h *ManageHandler) CreateItem(w http.ResponseWriter, r *http.Request) {
	token, _ := h.Sessions.AccessToken(r)

	input, err := h.menuItemFromForm(r)
	if err != nil {
		h.Sessions.AddFlash(w, r, "error", "Please enter a valid price.")
		http.Redirect(w, r, "/manage", http.StatusSeeOther)
		return
	}
	if input.Name == "" || input.Category == "" {
		h.Sessions.AddFlash(w, r, "error", "Item name and category are required.")
		http.Redirect(w, r, "/manage", http.StatusSeeOther)
		return
	}

	if _, err := h.API.AddMenuItem(r.Context(), token, input); err != nil {
		h.Sessions.AddFlash(w, r, "error", api.Message(err, "Failed to add menu item."))
	} else {
		h.Sessions.AddFlash(w, r, "success", input.Name+" added to the menu.")
	}
	http.Redirect(w, r, "/manage", http.StatusSeeOther)
}

func (h *ManageHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	token, _ := h.Sessions.AccessToken(r)

	itemID := r.FormValue("item_id")
	if itemID == "" {
		http.Error(w, "Missing item ID", http.StatusBadRequest)
		return
	}
	input, err := h.menuItemFromForm(r)
	if err != nil {
		h.Sessions.AddFlash(w, r, "error", "Please enter a valid price.")
		http.Redirect(w, r, "/manage", http.StatusSeeOther)
		return
	}

	if _, err := h.API.UpdateMenuItem(r.Context(), token, itemID, input); err != nil {
		h.Sessions.AddFlash(w, r, "error", api.Message(err, "Failed to update menu item."))
	} else {
		h.Sessions.AddFlash(w, r, "success", "Menu item updated.")
	}
	http.Redirect(w, r, "/manage", http.StatusSeeOther)
}

func (h *ManageHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	token, _ := h.Sessions.AccessToken(r)

	itemID := r.FormValue("item_id")
	if itemID == "" {
		http.Error(w, "Missing item ID", http.StatusBadRequest)
		return
	}

	if err := h.API.DeleteMenuItem(r.Context(), token, itemID); err != nil {
		h.Sessions.AddFlash(w, r, "error", api.Message(err, "Failed to delete menu item."))
	} else {
		h.Sessions.AddFlash(w, r, "success", "Menu item deleted.")
	}
	http.Redirect(w, r, "/manage", http.StatusSeeOther)
}

func (h *ManageHandler) AddCategory(w http.ResponseWriter, r *http.Request) {
	token, _ := h.Sessions.AccessToken(r)

	name := strings.TrimSpace(r.FormValue("category"))
	if name == "" {
		h.Sessions.AddFlash(w, r, "error", "Category name is required.")
		http.Redirect(w, r, "/manage", http.StatusSeeOther)
		return
	}

	if err := h.API.AddCategory(r.Context(), token, name); err != nil {
		h.Sessions.AddFlash(w, r, "error", api.Message(err, "Failed to add category."))
	} else {
		h.Sessions.AddFlash(w, r, "success", "Category \""+name+"\" added.")
	}
	http.Redirect(w, r, "/manage", http.StatusSeeOther)
}

// DeleteCategory refuses to drop a category that still has items, matching
// the management page's long-standing guard.
func (h *ManageHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	token, _ := h.Sessions.AccessToken(r)

	name := r.FormValue("category")
	if name == "" {
		http.Error(w, "Missing category", http.StatusBadRequest)
		return
	}

	restaurant, err := h.API.ManagerData(r.Context(), token)
	if err == nil {
		for _, item := range restaurant.Menu {
			if item.Category == name {
				h.Sessions.AddFlash(w, r, "error", "Cannot delete a category with existing items. Remove its items first.")
				http.Redirect(w, r, "/manage", http.StatusSeeOther)
				return
			}
		}
	}

	if err := h.API.DeleteCategory(r.Context(), token, name); err != nil {
		h.Sessions.AddFlash(w, r, "error", api.Message(err, "Failed to delete category."))
	} else {
		h.Sessions.AddFlash(w, r, "success", "Category \""+name+"\" deleted.")
	}
	http.Redirect(w, r, "/manage", http.StatusSeeOther)
}
