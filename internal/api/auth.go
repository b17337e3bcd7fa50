package api

import (
	"context"
	"net/http"

	"github.com/Rutikrtr/restaurent/internal/models"
)

// LoginResult is the credential pair plus the user payload from a
// successful login.
type LoginResult struct {
	Tokens models.Tokens
	User   models.User
}

func (c *Client) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	body := map[string]string{"email": email, "password": password}
	var data struct {
		AccessToken  string      `json:"accessToken"`
		RefreshToken string      `json:"refreshToken"`
		User         models.User `json:"user"`
	}
	if err := c.do(ctx, http.MethodPost, "/login", "", body, &data); err != nil {
		return nil, err
	}
	return &LoginResult{
		Tokens: models.Tokens{Access: data.AccessToken, Refresh: data.RefreshToken},
		User:   data.User,
	}, nil
}

// SignupInput is the phase-1 payload for a customer account.
type SignupInput struct {
	Fullname    string `json:"fullname"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	AccountType string `json:"accountType"`
}

// Signup starts customer registration. The server emails a one-time code
// and returns the pending user id the code must be verified against.
func (c *Client) Signup(ctx context.Context, in SignupInput) (string, error) {
	var data struct {
		UserID string `json:"userId"`
	}
	if err := c.do(ctx, http.MethodPost, "/signup", "", in, &data); err != nil {
		return "", err
	}
	return data.UserID, nil
}

// RestaurantProfile is the business payload a restaurant account carries at
// phase 1 and re-confirms at phase 2.
type RestaurantProfile struct {
	Name         string `json:"name"`
	Introduction string `json:"introduction"`
	OpeningTime  string `json:"openingTime"`
	ClosingTime  string `json:"closingTime"`
	Location     string `json:"location"`
	Image        string `json:"image"`
}

type RestaurantSignupInput struct {
	SignupInput
	RestaurantProfile
}

type restaurantSignupResult struct {
	UserID         string             `json:"userId"`
	RestaurantData *RestaurantProfile `json:"restaurantData"`
}

// RegisterRestaurant starts restaurant registration. The echoed profile must
// be handed back on verification.
func (c *Client) RegisterRestaurant(ctx context.Context, in RestaurantSignupInput) (string, *RestaurantProfile, error) {
	var data restaurantSignupResult
	if err := c.do(ctx, http.MethodPost, "/register", "", in, &data); err != nil {
		return "", nil, err
	}
	profile := data.RestaurantData
	if profile == nil {
		profile = &in.RestaurantProfile
	}
	return data.UserID, profile, nil
}

// VerifyEmail finalizes a customer account with the emailed code.
func (c *Client) VerifyEmail(ctx context.Context, userID, otp string) error {
	body := map[string]string{"userId": userID, "otp": otp}
	return c.do(ctx, http.MethodPost, "/verify-email", "", body, nil)
}

// VerifyRestaurant finalizes a restaurant account, re-confirming the
// business profile captured at signup.
func (c *Client) VerifyRestaurant(ctx context.Context, userID, otp string, profile *RestaurantProfile) error {
	body := map[string]any{"userId": userID, "otp": otp}
	if profile != nil {
		body["restaurantData"] = profile
	}
	return c.do(ctx, http.MethodPost, "/verify-restaurant", "", body, nil)
}

// ResendOTP re-triggers code issuance for a pending customer signup.
func (c *Client) ResendOTP(ctx context.Context, userID string) error {
	return c.do(ctx, http.MethodPost, "/resend-otp", "", map[string]string{"userId": userID}, nil)
}

// ResendRestaurantOTP re-triggers code issuance for a pending restaurant signup.
func (c *Client) ResendRestaurantOTP(ctx context.Context, userID string) error {
	return c.do(ctx, http.MethodPost, "/resend-restaurant-otp", "", map[string]string{"userId": userID}, nil)
}
