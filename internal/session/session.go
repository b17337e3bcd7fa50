// Package session owns the client-held identity: the persisted token
// cookies, the cached user payload, the cookie-backed cart snapshot and the
// two-phase registration state. It is the single writer for all of them;
// handlers receive a *Manager instead of reaching for globals.
package session

import (
	"encoding/gob"
	"net/http"
	"time"

	"github.com/Rutikrtr/restaurent/internal/cart"
	"github.com/Rutikrtr/restaurent/internal/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/sessions"
)

const (
	sessionName = "restaurent-session"

	accessCookie  = "accessToken"
	refreshCookie = "refreshToken"

	accessTTL  = 7 * 24 * time.Hour
	refreshTTL = 30 * 24 * time.Hour

	userKey  = "user"
	cartKey  = "cart"
	nextKey  = "next"
	regKey   = "registration"
	flashKey = "_flash_typed"
)

// Register types for gob encoding (used by the cookie session).
func init() {
	gob.Register(models.User{})
	gob.Register(cart.Cart{})
	gob.Register(Registration{})
	gob.Register(Flash{})
}

// Flash is a one-shot message surfaced on the next rendered page.
type Flash struct {
	Type    string // "success" or "error"
	Message string
}

type Manager struct {
	store  *sessions.CookieStore
	secure bool
	domain string
}

func NewManager(store *sessions.CookieStore, secure bool, domain string) *Manager {
	return &Manager{store: store, secure: secure, domain: domain}
}

func (m *Manager) session(r *http.Request) *sessions.Session {
	// Get never fails fatally for cookie stores; a bad cookie yields a
	// fresh session, which is the behavior we want.
	s, _ := m.store.Get(r, sessionName)
	return s
}

func (m *Manager) tokenCookie(name, value string, ttl time.Duration) *http.Cookie {
	c := &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		Domain:   m.domain,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteStrictMode,
	}
	if value == "" {
		c.MaxAge = -1
	} else {
		c.Expires = time.Now().Add(ttl)
	}
	return c
}

// Establish persists the token pair and caches the user payload after a
// successful login.
func (m *Manager) Establish(w http.ResponseWriter, r *http.Request, user models.User, tok models.Tokens) error {
	http.SetCookie(w, m.tokenCookie(accessCookie, tok.Access, accessTTL))
	http.SetCookie(w, m.tokenCookie(refreshCookie, tok.Refresh, refreshTTL))

	s := m.session(r)
	s.Values[userKey] = user
	return s.Save(r, w)
}

// Clear drops both token cookies and the cached identity. Unconditional and
// idempotent: calling it while logged out is safe.
func (m *Manager) Clear(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, m.tokenCookie(accessCookie, "", 0))
	http.SetCookie(w, m.tokenCookie(refreshCookie, "", 0))

	s := m.session(r)
	delete(s.Values, userKey)
	s.Save(r, w)
}

// Current re-hydrates the identity cached at login. It reports false when no
// access token cookie is held or the token's exp claim has passed; the user
// payload itself is trusted without a server round-trip (the token is only
// inspected locally, never verified - re-validation on every request is a
// deliberate non-goal, see DESIGN.md).
func (m *Manager) Current(r *http.Request) (models.User, bool) {
	token, ok := m.AccessToken(r)
	if !ok {
		return models.User{}, false
	}
	if tokenExpired(token) {
		return models.User{}, false
	}
	user, ok := m.session(r).Values[userKey].(models.User)
	return user, ok
}

// AccessToken returns the persisted bearer token, if any.
func (m *Manager) AccessToken(r *http.Request) (string, bool) {
	c, err := r.Cookie(accessCookie)
	if err != nil || c.Value == "" {
		return "", false
	}
	return c.Value, true
}

// tokenExpired inspects the access token's exp claim without verifying the
// signature (the frontend does not hold the signing key). Tokens that are
// not parseable JWTs, or carry no exp, fall back to the cookie's own expiry.
func tokenExpired(token string) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(time.Now())
}

// Cart returns the cookie-held cart snapshot; absent means empty.
func (m *Manager) Cart(r *http.Request) cart.Cart {
	c, _ := m.session(r).Values[cartKey].(cart.Cart)
	return c
}

// SaveCart writes back a cart snapshot produced by cart.Reduce.
func (m *Manager) SaveCart(w http.ResponseWriter, r *http.Request, c cart.Cart) error {
	s := m.session(r)
	if c.IsEmpty() {
		delete(s.Values, cartKey)
	} else {
		s.Values[cartKey] = c
	}
	return s.Save(r, w)
}

// RememberNext records the destination an unauthenticated visitor was
// heading for, so login can resume it.
func (m *Manager) RememberNext(w http.ResponseWriter, r *http.Request, path string) {
	s := m.session(r)
	s.Values[nextKey] = path
	s.Save(r, w)
}

// ConsumeNext pops the remembered destination, defaulting to the landing page.
func (m *Manager) ConsumeNext(w http.ResponseWriter, r *http.Request) string {
	s := m.session(r)
	next, ok := s.Values[nextKey].(string)
	if !ok || next == "" {
		return "/"
	}
	delete(s.Values, nextKey)
	s.Save(r, w)
	return next
}

// AddFlash queues a one-shot message for the next page render.
func (m *Manager) AddFlash(w http.ResponseWriter, r *http.Request, kind, message string) {
	s := m.session(r)
	s.AddFlash(Flash{Type: kind, Message: message}, flashKey)
	s.Save(r, w)
}

// Flashes drains the queued messages.
func (m *Manager) Flashes(w http.ResponseWriter, r *http.Request) []Flash {
	s := m.session(r)
	raw := s.Flashes(flashKey)
	if len(raw) > 0 {
		s.Save(r, w)
	}
	var out []Flash
	for _, f := range raw {
		if fl, ok := f.(Flash); ok {
			out = append(out, fl)
		}
	}
	return out
}
