package session

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Rutikrtr/restaurent/internal/cart"
	"github.com/Rutikrtr/restaurent/internal/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/sessions"
	"github.com/shopspring/decimal"
)

func newTestManager() *Manager {
	store := sessions.NewCookieStore([]byte("0123456789abcdef0123456789abcdef"))
	store.Options.Path = "/"
	return NewManager(store, false, "")
}

// roundTrip builds the follow-up request a browser would send after
// receiving rec's cookies.
func roundTrip(rec *httptest.ResponseRecorder) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range rec.Result().Cookies() {
		if c.MaxAge >= 0 {
			req.AddCookie(c)
		}
	}
	return req
}

func testUser() models.User {
	return models.User{ID: "u1", Name: "Jo", Email: "jo@example.com", Role: models.RoleCustomer}
}

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "u1",
		"exp": exp.Unix(),
	})
	s, err := tok.SignedString([]byte("server-side-secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return s
}

func TestEstablishThenCurrent(t *testing.T) {
	m := newTestManager()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/login", nil)

	tokens := models.Tokens{Access: signedToken(t, time.Now().Add(time.Hour)), Refresh: "ref"}
	if err := m.Establish(rec, req, testUser(), tokens); err != nil {
		t.Fatalf("Establish: %v", err)
	}

	req2 := roundTrip(rec)
	user, ok := m.Current(req2)
	if !ok {
		t.Fatal("expected established session")
	}
	if user.ID != "u1" || user.Role != models.RoleCustomer {
		t.Fatalf("unexpected user: %+v", user)
	}
	if tok, ok := m.AccessToken(req2); !ok || tok != tokens.Access {
		t.Fatalf("access token not persisted")
	}
}

func TestCurrent_NoTokenMeansUnauthenticated(t *testing.T) {
	m := newTestManager()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if _, ok := m.Current(req); ok {
		t.Fatal("expected unauthenticated without token cookie")
	}
}

func TestCurrent_ExpiredTokenIsRejected(t *testing.T) {
	m := newTestManager()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/login", nil)

	expired := models.Tokens{Access: signedToken(t, time.Now().Add(-time.Minute)), Refresh: "ref"}
	if err := m.Establish(rec, req, testUser(), expired); err != nil {
		t.Fatalf("Establish: %v", err)
	}

	if _, ok := m.Current(roundTrip(rec)); ok {
		t.Fatal("expected expired token to be rejected")
	}
}

func TestCurrent_OpaqueTokenFallsBackToCookieExpiry(t *testing.T) {
	m := newTestManager()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/login", nil)

	// Not a JWT: the cookie's own expiry is the only bound.
	if err := m.Establish(rec, req, testUser(), models.Tokens{Access: "opaque-token", Refresh: "r"}); err != nil {
		t.Fatalf("Establish: %v", err)
	}
	if _, ok := m.Current(roundTrip(rec)); !ok {
		t.Fatal("opaque token should still hydrate the session")
	}
}

func TestClear_IsIdempotent(t *testing.T) {
	m := newTestManager()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/login", nil)

	if err := m.Establish(rec, req, testUser(), models.Tokens{Access: "tok", Refresh: "ref"}); err != nil {
		t.Fatalf("Establish: %v", err)
	}

	// Logout once.
	req2 := roundTrip(rec)
	rec2 := httptest.NewRecorder()
	m.Clear(rec2, req2)

	dropped := map[string]bool{}
	for _, c := range rec2.Result().Cookies() {
		if c.MaxAge < 0 {
			dropped[c.Name] = true
		}
	}
	if !dropped["accessToken"] || !dropped["refreshToken"] {
		t.Fatalf("expected both token cookies dropped, got %v", dropped)
	}

	req3 := roundTrip(rec2)
	if _, ok := m.Current(req3); ok {
		t.Fatal("expected unauthenticated after logout")
	}

	// Logout again while already logged out: must be safe.
	rec3 := httptest.NewRecorder()
	m.Clear(rec3, req3)
	if _, ok := m.Current(roundTrip(rec3)); ok {
		t.Fatal("expected unauthenticated after repeated logout")
	}
}

func TestCartRoundTrip(t *testing.T) {
	m := newTestManager()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/cart/add", nil)

	c := cart.Reduce(cart.Cart{}, cart.AddItem{Line: cart.Line{
		ItemID:       "m1",
		Name:         "Pad Thai",
		UnitPrice:    decimal.NewFromInt(120),
		Quantity:     2,
		RestaurantID: "r1",
	}})
	if err := m.SaveCart(rec, req, c); err != nil {
		t.Fatalf("SaveCart: %v", err)
	}

	got := m.Cart(roundTrip(rec))
	if len(got.Lines) != 1 {
		t.Fatalf("expected one line, got %+v", got.Lines)
	}
	l := got.Lines[0]
	if l.ItemID != "m1" || l.Quantity != 2 || !l.UnitPrice.Equal(decimal.NewFromInt(120)) {
		t.Fatalf("cart did not survive the cookie round trip: %+v", l)
	}
}

func TestRememberAndConsumeNext(t *testing.T) {
	m := newTestManager()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/my-orders", nil)

	m.RememberNext(rec, req, "/my-orders?filter=all")

	req2 := roundTrip(rec)
	rec2 := httptest.NewRecorder()
	if got := m.ConsumeNext(rec2, req2); got != "/my-orders?filter=all" {
		t.Fatalf("ConsumeNext = %q", got)
	}

	// Consumed: the follow-up falls back to the landing page.
	if got := m.ConsumeNext(httptest.NewRecorder(), roundTrip(rec2)); got != "/" {
		t.Fatalf("expected consumed destination, got %q", got)
	}
}

func TestFlashes_DrainOnce(t *testing.T) {
	m := newTestManager()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	m.AddFlash(rec, req, "success", "Order placed")

	req2 := roundTrip(rec)
	rec2 := httptest.NewRecorder()
	flashes := m.Flashes(rec2, req2)
	if len(flashes) != 1 || flashes[0].Message != "Order placed" || flashes[0].Type != "success" {
		t.Fatalf("unexpected flashes: %+v", flashes)
	}

	if again := m.Flashes(httptest.NewRecorder(), roundTrip(rec2)); len(again) != 0 {
		t.Fatalf("flashes must drain, got %+v", again)
	}
}
