package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/demomarket/marketplace/internal/config"
	"github.com/demomarket/marketplace/internal/handlers"
	"github.com/demomarket/marketplace/internal/payments"
	"github.com/demomarket/marketplace/internal/store"
	"github.com/gorilla/csrf"
	"github.com/gorilla/sessions"
	"github.com/joho/godotenv"
)

func main() {
	// Configure slog as early as possible in main.
	handlerOpts := &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}
	// Using TextHandler for console readability; for production JSONHandler might be preferred.
	logger := slog.New(slog.NewTextHandler(os.Stdout, handlerOpts))
	slog.SetDefault(logger)

	// .env is optional; real deployments set the environment directly.
	if err := godotenv.Load(); err == nil {
		slog.Info("Loaded environment from .env file")
	}

	// 1. Load Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	// 2. Run migrations, then open the store
	if err := store.RunMigrations(cfg.DatabaseURL, "migrations"); err != nil {
		slog.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}
	db, err := store.NewStore(cfg.DatabaseURL)
	if err != nil {
		slog.Error("Failed to initialize store", "error", err)
		os.Exit(1)
	}

	// 3. Session Setup
	sessionStore := sessions.NewCookieStore(cfg.SessionKey)
	sessionStore.Options.HttpOnly = true
	sessionStore.Options.Secure = cfg.CookieSecure
	sessionStore.Options.SameSite = http.SameSiteLaxMode
	sessionStore.Options.Path = "/"
	if cfg.CookieDomain != "" {
		sessionStore.Options.Domain = cfg.CookieDomain
	}

	// 4. Payment processor client
	stripeClient := payments.NewStripeClient(cfg.StripeSecretKey)

	// 5. Setup Handlers
	authHandler := &handlers.AuthHandler{
		Store:        db,
		SessionStore: sessionStore,
	}
	registerHandler := &handlers.RegisterHandler{Store: db}
	catalogHandler := &handlers.CatalogHandler{Store: db}
	cartHandler := &handlers.CartHandler{Store: db}
	checkoutHandler := &handlers.CheckoutHandler{
		Store:    db,
		Payments: stripeClient,
		Currency: cfg.Currency,
	}
	adminHandler := &handlers.AdminProductHandler{Store: db}
	orderHandler := &handlers.OrderHandler{Store: db}

	mux := http.NewServeMux()

	// Rate limiter for the registration endpoints
	rateLimiter := handlers.NewRateLimiter(1 * time.Minute)

	// Public Routes
	mux.HandleFunc("GET /{$}", handlers.Welcome)
	mux.HandleFunc("POST /login", authHandler.Login)
	mux.HandleFunc("GET /catalog", catalogHandler.List)
	mux.HandleFunc("POST /register", rateLimiter.Middleware(registerHandler.Register))
	mux.HandleFunc("POST /admin_register", rateLimiter.Middleware(registerHandler.AdminRegister))

	// Authenticated Routes
	mux.HandleFunc("GET /logout", authHandler.RequireAuth(authHandler.Logout))
	mux.HandleFunc("GET /orders", authHandler.RequireAuth(orderHandler.ListOrders))

	// Shopper Routes (authenticated, non-admin)
	mux.HandleFunc("GET /cart", authHandler.RequireAuth(handlers.RequireShopper(cartHandler.GetCart)))
	mux.HandleFunc("POST /add_to_cart", authHandler.RequireAuth(handlers.RequireShopper(cartHandler.AddToCart)))
	mux.HandleFunc("POST /remove_from_cart/{cart_id}", authHandler.RequireAuth(handlers.RequireShopper(cartHandler.RemoveFromCart)))
	mux.HandleFunc("POST /checkout", authHandler.RequireAuth(handlers.RequireShopper(checkoutHandler.Checkout)))

	// Admin Routes
	mux.HandleFunc("POST /add_product", authHandler.RequireAuth(handlers.RequireAdmin(adminHandler.AddProduct)))
	mux.HandleFunc("POST /remove_product/{product_id}", authHandler.RequireAuth(handlers.RequireAdmin(adminHandler.RemoveProduct)))

	// 6. Middleware Setup
	var handler http.Handler = mux
	if cfg.CSRFEnabled {
		CSRF := csrf.Protect(
			cfg.CSRFKey,
			csrf.Secure(cfg.CookieSecure),
			csrf.Path("/"),
			csrf.TrustedOrigins([]string{"localhost:" + cfg.Port, "127.0.0.1:" + cfg.Port}),
		)
		handler = CSRF(handler)
	}

	// Chain: Logger -> Security Headers -> (CSRF) -> Mux
	handler = handlers.LoggingMiddleware(
		handlers.SecurityHeadersMiddleware(
			handler,
		),
	)

	// 7. Start Server with Graceful Shutdown
	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: handler,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("Server starting", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to listen and serve", "error", err)
			os.Exit(1)
		}
	}()

	<-stop

	slog.Info("Shutting down server gracefully...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		slog.Error("Server shutdown failed", "error", err)
		os.Exit(1)
	}

	slog.Info("Server exited gracefully.")
}
