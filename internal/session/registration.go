package session

import (
	"errors"
	"net/http"

	"github.com/Rutikrtr/restaurent/internal/api"
)

// Registration tracks the two-phase signup between requests. No session is
// established until the emailed code has been verified; until then the
// pending identity rides in the cookie session.
//
// States: Idle -> AwaitingCode (phase 1 accepted) -> Verified (phase 2
// accepted). A rejected phase 1 stays Idle; resending the code keeps
// AwaitingCode. There is no failure terminal - the visitor may retry the
// code indefinitely or abandon the flow.
type RegState int

const (
	StateIdle RegState = iota
	StateAwaitingCode
	StateVerified
)

var (
	ErrNoPendingSignup = errors.New("no signup awaiting verification")
	ErrAlreadyVerified = errors.New("signup already verified")
)

type Registration struct {
	State   RegState
	UserID  string
	Email   string
	Role    string
	Profile *api.RestaurantProfile // restaurant signups only
}

// BeginRegistration enters AwaitingCode after the server accepted phase 1.
// Starting over from a previous pending signup is allowed.
func BeginRegistration(userID, email, role string, profile *api.RestaurantProfile) Registration {
	return Registration{
		State:   StateAwaitingCode,
		UserID:  userID,
		Email:   email,
		Role:    role,
		Profile: profile,
	}
}

// Resend validates that re-issuing the code is legal. It never transitions.
func (reg Registration) Resend() error {
	switch reg.State {
	case StateAwaitingCode:
		return nil
	case StateVerified:
		return ErrAlreadyVerified
	default:
		return ErrNoPendingSignup
	}
}

// Verify transitions to Verified once the server accepted the code.
func (reg *Registration) Verify() error {
	if reg.State != StateAwaitingCode {
		return ErrNoPendingSignup
	}
	reg.State = StateVerified
	return nil
}

// Registration returns the pending signup carried in the session.
func (m *Manager) Registration(r *http.Request) (Registration, bool) {
	reg, ok := m.session(r).Values[regKey].(Registration)
	return reg, ok
}

func (m *Manager) SaveRegistration(w http.ResponseWriter, r *http.Request, reg Registration) error {
	s := m.session(r)
	s.Values[regKey] = reg
	return s.Save(r, w)
}

func (m *Manager) ClearRegistration(w http.ResponseWriter, r *http.Request) {
	s := m.session(r)
	delete(s.Values, regKey)
	s.Save(r, w)
}
