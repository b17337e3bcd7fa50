package handlers

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"log/slog"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/Rutikrtr/restaurent/internal/api"
	"github.com/Rutikrtr/restaurent/internal/models"
	"github.com/Rutikrtr/restaurent/internal/session"
	"github.com/gorilla/csrf"
	"github.com/nfnt/resize"
)

type AuthHandler struct {
	API       *api.Client
	Sessions  *session.Manager
	Templates *TemplateCache
}

func (h *AuthHandler) render(w http.ResponseWriter, r *http.Request, name string, data map[string]interface{}) {
	tmpl := h.Templates.Get(name)
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}
	if data == nil {
		data = map[string]interface{}{}
	}
	data["CsrfField"] = csrf.TemplateField(r)
	data["Flashes"] = h.Sessions.Flashes(w, r)
	tmpl.Execute(w, data)
}

func (h *AuthHandler) LoginGet(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.Sessions.Current(r); ok {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	h.render(w, r, "login.html", nil)
}

func (h *AuthHandler) LoginPost(w http.ResponseWriter, r *http.Request) {
	email := strings.TrimSpace(r.FormValue("email"))
	password := r.FormValue("password")

	result, err := h.API.Login(r.Context(), email, password)
	if err != nil {
		msg := "Login failed. Please try again."
		switch {
		case api.IsUnauthorized(err):
			msg = "Invalid email or password"
		case api.IsServer(err):
			msg = "Server error. Please try again later."
		default:
			msg = api.Message(err, msg)
		}
		h.Sessions.AddFlash(w, r, "error", msg)
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	if err := h.Sessions.Establish(w, r, result.User, result.Tokens); err != nil {
		slog.Error("Failed to establish session", "error", err)
		http.Error(w, "Failed to save session", http.StatusInternalServerError)
		return
	}

	slog.Info("Login successful", "user", result.User.ID, "role", result.User.Role)
	http.Redirect(w, r, h.Sessions.ConsumeNext(w, r), http.StatusSeeOther)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.Sessions.Clear(w, r)
	h.Sessions.AddFlash(w, r, "success", "Logged out successfully!")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *AuthHandler) RegisterGet(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.Sessions.Current(r); ok {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	h.render(w, r, "register.html", nil)
}

// Basic email validation regex
var emailRegex = regexp.MustCompile(`^[a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,}$`)

// RegisterPost is phase 1 of the two-phase signup. Nothing reaches the
// server until the local checks pass; on acceptance the pending identity is
// parked in the session and the visitor is sent to the code form.
func (h *AuthHandler) RegisterPost(w http.ResponseWriter, r *http.Request) {
	// Restaurant signups may carry a profile image file.
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		if err := r.ParseForm(); err != nil {
			h.Sessions.AddFlash(w, r, "error", "Invalid form data.")
			http.Redirect(w, r, "/register", http.StatusSeeOther)
			return
		}
	}

	name := strings.TrimSpace(r.FormValue("fullname"))
	email := strings.ToLower(strings.TrimSpace(r.FormValue("email")))
	password := r.FormValue("password")
	confirm := r.FormValue("confirm_password")
	role := r.FormValue("role")

	// Client-side validation: rejected before any network call.
	var problems []string
	if name == "" {
		problems = append(problems, "Your name is required.")
	}
	if !emailRegex.MatchString(email) {
		problems = append(problems, "Please enter a valid email address.")
	}
	if len(password) < 8 {
		problems = append(problems, "Password must be at least 8 characters.")
	}
	if password != confirm {
		problems = append(problems, "Passwords do not match")
	}
	if role != models.RoleCustomer && role != models.RoleRestaurant {
		problems = append(problems, "Please choose an account type.")
	}
	if len(problems) > 0 {
		for _, p := range problems {
			h.Sessions.AddFlash(w, r, "error", p)
		}
		http.Redirect(w, r, "/register", http.StatusSeeOther)
		return
	}

	signup := api.SignupInput{
		Fullname:    name,
		Email:       email,
		Password:    password,
		AccountType: role,
	}

	var (
		userID  string
		profile *api.RestaurantProfile
		err     error
	)
	if role == models.RoleRestaurant {
		profile, err = h.restaurantProfileFromForm(r)
		if err != nil {
			h.Sessions.AddFlash(w, r, "error", err.Error())
			http.Redirect(w, r, "/register", http.StatusSeeOther)
			return
		}
		userID, profile, err = h.API.RegisterRestaurant(r.Context(), api.RestaurantSignupInput{
			SignupInput:       signup,
			RestaurantProfile: *profile,
		})
	} else {
		userID, err = h.API.Signup(r.Context(), signup)
	}

	if err != nil {
		h.Sessions.AddFlash(w, r, "error", signupFailureMessage(err))
		http.Redirect(w, r, "/register", http.StatusSeeOther)
		return
	}

	reg := session.BeginRegistration(userID, email, role, profile)
	if err := h.Sessions.SaveRegistration(w, r, reg); err != nil {
		slog.Error("Failed to save pending signup", "error", err)
		http.Error(w, "Failed to save session", http.StatusInternalServerError)
		return
	}

	h.Sessions.AddFlash(w, r, "success", "We emailed a verification code to "+email+".")
	http.Redirect(w, r, "/verify", http.StatusSeeOther)
}

func signupFailureMessage(err error) string {
	switch {
	case api.IsForbidden(err):
		return "Only restaurant accounts can register restaurants"
	case api.IsConflict(err):
		return "An account with these details already exists."
	case api.IsServer(err):
		return "Server error. Please try again later."
	default:
		return api.Message(err, "Registration failed. Please try again.")
	}
}

// restaurantProfileFromForm reads the business fields and the optional
// profile image upload (resized and inlined as a data URL; an image URL
// field is accepted as the fallback).
func (h *AuthHandler) restaurantProfileFromForm(r *http.Request) (*api.RestaurantProfile, error) {
	profile := &api.RestaurantProfile{
		Name:         strings.TrimSpace(r.FormValue("restaurant_name")),
		Introduction: strings.TrimSpace(r.FormValue("introduction")),
		OpeningTime:  r.FormValue("opening_time"),
		ClosingTime:  r.FormValue("closing_time"),
		Location:     strings.TrimSpace(r.FormValue("location")),
		Image:        strings.TrimSpace(r.FormValue("image_url")),
	}

	if file, header, err := r.FormFile("image_file"); err == nil {
		defer file.Close()
		dataURL, err := encodeProfileImage(file, header)
		if err != nil {
			return nil, err
		}
		profile.Image = dataURL
	}

	if profile.Name == "" || profile.Introduction == "" || profile.OpeningTime == "" ||
		profile.ClosingTime == "" || profile.Location == "" || profile.Image == "" {
		return nil, fmt.Errorf("please fill in all restaurant details")
	}
	return profile, nil
}

func encodeProfileImage(file multipart.File, header *multipart.FileHeader) (string, error) {
	var img image.Image
	var err error
	switch ext := strings.ToLower(filepath.Ext(header.Filename)); ext {
	case ".png":
		img, err = png.Decode(file)
	case ".jpg", ".jpeg":
		img, err = jpeg.Decode(file)
	default:
		return "", fmt.Errorf("unsupported image format %q", ext)
	}
	if err != nil {
		return "", fmt.Errorf("could not read image: %w", err)
	}

	resized := resize.Resize(800, 0, img, resize.Lanczos3)
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, resized, &jpeg.Options{Quality: 80}); err != nil {
		return "", fmt.Errorf("could not encode image: %w", err)
	}
	return "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

func (h *AuthHandler) VerifyGet(w http.ResponseWriter, r *http.Request) {
	reg, ok := h.Sessions.Registration(r)
	if !ok || reg.State != session.StateAwaitingCode {
		h.Sessions.AddFlash(w, r, "error", "No signup awaiting verification.")
		http.Redirect(w, r, "/register", http.StatusSeeOther)
		return
	}
	h.render(w, r, "verify.html", map[string]interface{}{"Email": reg.Email})
}

var otpRegex = regexp.MustCompile(`^[0-9]{6}$`)

// VerifyPost is phase 2: the emailed code against the pending identity.
// Only a server-accepted code moves the signup to Verified.
func (h *AuthHandler) VerifyPost(w http.ResponseWriter, r *http.Request) {
	reg, ok := h.Sessions.Registration(r)
	if !ok || reg.State != session.StateAwaitingCode {
		h.Sessions.AddFlash(w, r, "error", "No signup awaiting verification.")
		http.Redirect(w, r, "/register", http.StatusSeeOther)
		return
	}

	otp := strings.TrimSpace(r.FormValue("otp"))
	if !otpRegex.MatchString(otp) {
		h.Sessions.AddFlash(w, r, "error", "Please enter the 6-digit code from your email.")
		http.Redirect(w, r, "/verify", http.StatusSeeOther)
		return
	}

	var err error
	if reg.Role == models.RoleRestaurant {
		err = h.API.VerifyRestaurant(r.Context(), reg.UserID, otp, reg.Profile)
	} else {
		err = h.API.VerifyEmail(r.Context(), reg.UserID, otp)
	}
	if err != nil {
		// Stay in AwaitingCode: the visitor may re-enter or resend.
		h.Sessions.AddFlash(w, r, "error", api.Message(err, "Verification failed. Please try again."))
		http.Redirect(w, r, "/verify", http.StatusSeeOther)
		return
	}

	if err := reg.Verify(); err != nil {
		slog.Error("Registration state out of sync", "error", err)
	}
	h.Sessions.ClearRegistration(w, r)

	msg := "Account verified! You can log in now."
	if reg.Role == models.RoleRestaurant {
		msg = "Restaurant registered! Your listing is pending approval; you can log in now."
	}
	h.Sessions.AddFlash(w, r, "success", msg)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// Resend re-triggers code issuance. The signup stays in AwaitingCode.
func (h *AuthHandler) Resend(w http.ResponseWriter, r *http.Request) {
	reg, ok := h.Sessions.Registration(r)
	if !ok {
		h.Sessions.AddFlash(w, r, "error", "No signup awaiting verification.")
		http.Redirect(w, r, "/register", http.StatusSeeOther)
		return
	}
	if err := reg.Resend(); err != nil {
		h.Sessions.AddFlash(w, r, "error", err.Error())
		http.Redirect(w, r, "/register", http.StatusSeeOther)
		return
	}

	var err error
	if reg.Role == models.RoleRestaurant {
		err = h.API.ResendRestaurantOTP(r.Context(), reg.UserID)
	} else {
		err = h.API.ResendOTP(r.Context(), reg.UserID)
	}
	if err != nil {
		h.Sessions.AddFlash(w, r, "error", api.Message(err, "Could not resend the code. Please try again."))
	} else {
		h.Sessions.AddFlash(w, r, "success", "A new code is on its way to "+reg.Email+".")
	}
	http.Redirect(w, r, "/verify", http.StatusSeeOther)
}
