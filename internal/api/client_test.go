package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestLogin_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/login" {
			t.Fatalf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		var body map[string]string
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		if body["email"] != "jo@example.com" || body["password"] != "secret123" {
			t.Fatalf("unexpected credentials: %+v", body)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"data": map[string]any{
				"accessToken":  "acc-token",
				"refreshToken": "ref-token",
				"user": map[string]any{
					"_id":         "u1",
					"fullname":    "Jo",
					"email":       "jo@example.com",
					"accountType": "customer",
				},
			},
		})
	}))
	defer srv.Close()

	c := New(srv.URL, time.Second)
	result, err := c.Login(context.Background(), "jo@example.com", "secret123")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if result.Tokens.Access != "acc-token" || result.Tokens.Refresh != "ref-token" {
		t.Fatalf("unexpected tokens: %+v", result.Tokens)
	}
	if result.User.ID != "u1" || result.User.Role != "customer" {
		t.Fatalf("unexpected user: %+v", result.User)
	}
}

func TestLogin_InvalidCredentials(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]any{"success": false, "message": "Invalid credentials"})
	}))
	defer srv.Close()

	c := New(srv.URL, time.Second)
	_, err := c.Login(context.Background(), "jo@example.com", "wrong")
	if err == nil {
		t.Fatal("expected error")
	}
	if !IsUnauthorized(err) {
		t.Fatalf("expected unauthorized classification, got %v", err)
	}
	if got := Message(err, "fallback"); got != "Invalid credentials" {
		t.Fatalf("expected server message, got %q", got)
	}
}

func TestDo_SuccessFalseWithOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"success": false, "message": "email already registered"})
	}))
	defer srv.Close()

	c := New(srv.URL, time.Second)
	_, err := c.Signup(context.Background(), SignupInput{Email: "jo@example.com"})
	if err == nil {
		t.Fatal("expected error when success=false")
	}
	if got := Message(err, "fallback"); got != "email already registered" {
		t.Fatalf("expected structured message, got %q", got)
	}
}

func TestDo_TransportFailureHasNoStructuredMessage(t *testing.T) {
	// Point at a server that is already closed.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	c := New(srv.URL, 500*time.Millisecond)
	_, err := c.ListRestaurants(context.Background())
	if err == nil {
		t.Fatal("expected transport error")
	}
	if IsUnauthorized(err) || IsServer(err) {
		t.Fatalf("transport failure misclassified: %v", err)
	}
	if got := Message(err, "generic failure"); got != "generic failure" {
		t.Fatalf("expected fallback message, got %q", got)
	}
}

func TestErrorClassification(t *testing.T) {
	cases := []struct {
		status int
		check  func(error) bool
	}{
		{http.StatusUnauthorized, IsUnauthorized},
		{http.StatusForbidden, IsForbidden},
		{http.StatusConflict, IsConflict},
		{http.StatusInternalServerError, IsServer},
		{http.StatusBadGateway, IsServer},
	}
	for _, tc := range cases {
		err := error(&Error{Status: tc.status, Message: "x"})
		if !tc.check(err) {
			t.Fatalf("status %d not classified", tc.status)
		}
	}
	if IsServer(&Error{Status: http.StatusConflict}) {
		t.Fatal("409 must not classify as server error")
	}
}

func TestPlaceOrder_PayloadShape(t *testing.T) {
	var captured map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/order" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer tok-1" {
			t.Fatalf("missing bearer token, got %q", got)
		}
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			t.Fatalf("decode: %v", err)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"data":    map[string]any{"_id": "o1", "status": "pending"},
		})
	}))
	defer srv.Close()

	table := 4
	c := New(srv.URL, time.Second)
	order, err := c.PlaceOrder(context.Background(), "tok-1", OrderInput{
		RestaurantID:        "r1",
		Items:               []OrderItemInput{{MenuItemID: "m1", Quantity: 2}},
		OrderType:           "dine-in",
		ParkingRequired:     true,
		PaymentMethod:       "cash",
		TableNumber:         &table,
		SpecialInstructions: "no onions",
	})
	if err != nil {
		t.Fatalf("PlaceOrder failed: %v", err)
	}
	if order.ID != "o1" || order.Status != "pending" {
		t.Fatalf("unexpected order: %+v", order)
	}

	items := captured["items"].([]any)
	item := items[0].(map[string]any)
	if item["menuItemId"] != "m1" || item["quantity"] != float64(2) {
		t.Fatalf("unexpected item payload: %+v", item)
	}
	// Authoritative pricing is server-side: no price may be sent.
	if _, ok := item["price"]; ok {
		t.Fatal("order item payload must not carry a price")
	}
	if captured["orderType"] != "dine-in" || captured["parkingRequired"] != true {
		t.Fatalf("unexpected payload: %+v", captured)
	}
	if captured["tableNumber"] != float64(4) {
		t.Fatalf("expected tableNumber 4, got %v", captured["tableNumber"])
	}
}

func TestMenuCRUD_PathsAndMethods(t *testing.T) {
	type call struct{ method, path string }
	var calls []call
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls = append(calls, call{r.Method, r.URL.Path})
		json.NewEncoder(w).Encode(map[string]any{"success": true})
	}))
	defer srv.Close()

	c := New(srv.URL, time.Second)
	ctx := context.Background()
	in := MenuItemInput{Name: "Pad Thai", Price: decimal.NewFromInt(120), Category: "Mains"}

	if _, err := c.AddMenuItem(ctx, "tok", in); err != nil {
		t.Fatalf("AddMenuItem: %v", err)
	}
	if _, err := c.UpdateMenuItem(ctx, "tok", "m1", in); err != nil {
		t.Fatalf("UpdateMenuItem: %v", err)
	}
	if err := c.DeleteMenuItem(ctx, "tok", "m1"); err != nil {
		t.Fatalf("DeleteMenuItem: %v", err)
	}
	if err := c.AddCategory(ctx, "tok", "Desserts"); err != nil {
		t.Fatalf("AddCategory: %v", err)
	}
	if err := c.DeleteCategory(ctx, "tok", "Desserts"); err != nil {
		t.Fatalf("DeleteCategory: %v", err)
	}

	want := []call{
		{http.MethodPost, "/menu"},
		{http.MethodPut, "/menu/m1"},
		{http.MethodDelete, "/menu/m1"},
		{http.MethodPost, "/menu/category"},
		{http.MethodDelete, "/menu/category/Desserts"},
	}
	if len(calls) != len(want) {
		t.Fatalf("expected %d calls, got %d", len(want), len(calls))
	}
	for i := range want {
		if calls[i] != want[i] {
			t.Fatalf("call %d = %+v, want %+v", i, calls[i], want[i])
		}
	}
}
