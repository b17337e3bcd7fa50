package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Rutikrtr/restaurent/internal/api"
	"github.com/Rutikrtr/restaurent/internal/config"
	"github.com/Rutikrtr/restaurent/internal/handlers"
	"github.com/Rutikrtr/restaurent/internal/session"
	"github.com/gorilla/csrf"
	"github.com/gorilla/sessions"
)

func main() {
	// Configure slog to output DEBUG level messages
	// This should be done as early as possible in main
	handlerOpts := &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}
	// Using TextHandler for console readability; for production JSONHandler might be preferred.
	logger := slog.New(slog.NewTextHandler(os.Stdout, handlerOpts))
	slog.SetDefault(logger)

	// 1. Load Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	// 2. External API client - the only place network calls originate.
	apiClient := api.New(cfg.APIBaseURL, cfg.APITimeout)

	// 3. Session Setup
	cookieStore := sessions.NewCookieStore(cfg.SessionKey)
	cookieStore.Options.HttpOnly = true
	cookieStore.Options.Secure = cfg.CookieSecure // Configurable for production
	cookieStore.Options.SameSite = http.SameSiteStrictMode
	cookieStore.Options.Path = "/"
	if cfg.CookieDomain != "" {
		cookieStore.Options.Domain = cfg.CookieDomain
	}
	sessionManager := session.NewManager(cookieStore, cfg.CookieSecure, cfg.CookieDomain)

	// 4. Init Templates
	templates := handlers.NewTemplateCache()
	if err := templates.Load("templates"); err != nil {
		slog.Error("Failed to load templates", "error", err)
		os.Exit(1)
	}

	// 5. Setup Handlers
	homeHandler := &handlers.HomeHandler{
		API:       apiClient,
		Sessions:  sessionManager,
		Templates: templates,
	}
	restaurantHandler := &handlers.RestaurantHandler{
		API:       apiClient,
		Sessions:  sessionManager,
		Templates: templates,
	}
	cartHandler := &handlers.CartHandler{
		API:       apiClient,
		Sessions:  sessionManager,
		Templates: templates,
	}
	authHandler := &handlers.AuthHandler{
		API:       apiClient,
		Sessions:  sessionManager,
		Templates: templates,
	}
	orderHandler := &handlers.OrderHandler{
		API:       apiClient,
		Sessions:  sessionManager,
		Templates: templates,
	}
	manageHandler := &handlers.ManageHandler{
		API:       apiClient,
		Sessions:  sessionManager,
		Templates: templates,
	}

	mux := http.NewServeMux()

	// Static Files
	fileServer := http.FileServer(http.Dir("./static"))
	mux.Handle("/static/", http.StripPrefix("/static", fileServer))

	// Checkout double-submit guard: one attempt per window and IP.
	checkoutLimiter := handlers.NewRateLimiter(5 * time.Second)
	signupLimiter := handlers.NewRateLimiter(30 * time.Second)

	// Public Routes
	mux.HandleFunc("/{$}", homeHandler.Index)
	mux.HandleFunc("/restaurant/{id}", restaurantHandler.Detail)
	mux.HandleFunc("POST /cart/add", restaurantHandler.AddToCart)

	// Cart
	mux.HandleFunc("/cart", cartHandler.View)
	mux.HandleFunc("POST /cart/update", cartHandler.UpdateQuantity)
	mux.HandleFunc("POST /cart/remove", cartHandler.Remove)
	mux.HandleFunc("POST /cart/checkout", checkoutLimiter.Middleware(cartHandler.Checkout))

	// Authentication & Registration
	mux.HandleFunc("/login", authHandler.LoginGet)
	mux.HandleFunc("POST /login", authHandler.LoginPost)
	mux.HandleFunc("/logout", authHandler.Logout)
	mux.HandleFunc("/register", authHandler.RegisterGet)
	mux.HandleFunc("POST /register", signupLimiter.Middleware(authHandler.RegisterPost))
	mux.HandleFunc("/verify", authHandler.VerifyGet)
	mux.HandleFunc("POST /verify", authHandler.VerifyPost)
	mux.HandleFunc("POST /verify/resend", signupLimiter.Middleware(authHandler.Resend))

	// Protected Routes
	mux.HandleFunc("/my-orders", handlers.RequireAuth(sessionManager, orderHandler.MyOrders))
	mux.HandleFunc("/manage", handlers.RequireRestaurant(sessionManager, manageHandler.Dashboard))
	mux.HandleFunc("POST /manage/items", handlers.RequireRestaurant(sessionManager, manageHandler.CreateItem))
	mux.HandleFunc("POST /manage/items/update", handlers.RequireRestaurant(sessionManager, manageHandler.UpdateItem))
	mux.HandleFunc("POST /manage/items/delete", handlers.RequireRestaurant(sessionManager, manageHandler.DeleteItem))
	mux.HandleFunc("POST /manage/categories", handlers.RequireRestaurant(sessionManager, manageHandler.AddCategory))
	mux.HandleFunc("POST /manage/categories/delete", handlers.RequireRestaurant(sessionManager, manageHandler.DeleteCategory))

	// 6. Middleware Setup
	CSRF := csrf.Protect(
		cfg.CSRFKey,
		csrf.Secure(cfg.CookieSecure), // Configurable for production
		csrf.TrustedOrigins([]string{"localhost:" + cfg.Port, "127.0.0.1:" + cfg.Port, "localhost", "127.0.0.1"}),
	)

	// Wrap the router with middleware chain
	// Chain: Logger -> Security Headers -> CSRF -> Mux
	handler := handlers.LoggingMiddleware(
		handlers.SecurityHeadersMiddleware(
			CSRF(mux),
		),
	)

	// 7. Start Server with Graceful Shutdown
	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: handler,
	}

	// Create a channel to listen for OS signals
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	// Goroutine to start the server
	go func() {
		slog.Info("Server starting", "port", cfg.Port, "api", cfg.APIBaseURL)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to listen and serve", "error", err)
			os.Exit(1)
		}
	}()

	// Block until a signal is received
	<-stop

	slog.Info("Shutting down server gracefully...")

	// Create a deadline to wait for.
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		slog.Error("Server shutdown failed", "error", err)
		os.Exit(1)
	}

	slog.Info("Server exited gracefully.")
}
