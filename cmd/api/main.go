package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"github.com/sokoline/sokoline-backend/internal/modules/auth"
	"github.com/sokoline/sokoline-backend/internal/modules/notification"
	"github.com/sokoline/sokoline-backend/internal/modules/order"
	"github.com/sokoline/sokoline-backend/internal/modules/payment"
	"github.com/sokoline/sokoline-backend/internal/modules/payout"
	"github.com/sokoline/sokoline-backend/internal/modules/post"
	"github.com/sokoline/sokoline-backend/internal/modules/product"
	"github.com/sokoline/sokoline-backend/internal/modules/user"
	"github.com/sokoline/sokoline-backend/internal/storage"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file, using process environment")
	}

	db, err := sql.Open("postgres", os.Getenv("DATABASE_URL"))
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatal(err)
	}
	fmt.Println("Successfully connected to the database!")

	if err := storage.RunMigrations(context.Background(), db); err != nil {
		log.Fatal(err)
	}

	jwtSecret := []byte(os.Getenv("JWT_SECRET"))
	if len(jwtSecret) == 0 {
		log.Fatal("JWT_SECRET is required")
	}

	// ── Router ──────────────────────────────────────────────
	router := chi.NewRouter()
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.RequestID)

	// ── Identity ────────────────────────────────────────────
	userRepo := user.NewPostgresRepository(db)
	userService := user.NewService(userRepo)
	userHandler := user.NewHandler(userService)
	userHandler.RegisterRoutes(router)

	authService := auth.NewService(userRepo, jwtSecret)
	auth.NewHandler(authService).RegisterRoutes(router)

	// ── Notifications (hub + email) ─────────────────────────
	hub := notification.NewHub()
	go hub.Run(context.Background())

	mailer := notification.NewMailer(os.Getenv("POSTMARK_API_TOKEN"), os.Getenv("EMAIL_SENDER"))
	notificationRepo := notification.NewPostgresRepository(db)
	notificationService := notification.NewService(notificationRepo, hub)
	notificationHandler := notification.NewHandler(notificationService, hub)
	events := notification.NewEvents(notificationService, mailer, userRepo)

	// ── Marketplace ─────────────────────────────────────────
	productRepo := product.NewPostgresRepository(db)
	productService := product.NewService(productRepo)
	productHandler := product.NewHandler(productService)
	productHandler.RegisterRoutes(router)

	orderRepo := order.NewPostgresRepository(db)
	orderService := order.NewService(orderRepo, events)
	orderHandler := order.NewHandler(orderService)

	payoutRepo := payout.NewPostgresRepository(db)
	payoutService := payout.NewService(payoutRepo, events)
	payoutHandler := payout.NewHandler(payoutService)

	// ── Payment bridge ──────────────────────────────────────
	gateways := payment.GatewayRegistry{
		payment.ProviderPaystack: payment.NewPaystackGateway(
			os.Getenv("PAYSTACK_SECRET_KEY"),
			os.Getenv("PAYSTACK_BASE_URL"),
		),
		payment.ProviderStripe: payment.NewStripeGateway(
			os.Getenv("STRIPE_SECRET_KEY"),
			os.Getenv("STRIPE_BASE_URL"),
		),
	}
	paymentRepo := payment.NewPostgresRepository(db)
	orderParties := func(ctx context.Context, orderID string) (uuid.UUID, uuid.UUID, error) {
		o, err := orderRepo.GetOrderByID(ctx, orderID)
		if err != nil {
			return uuid.Nil, uuid.Nil, err
		}
		return o.BuyerID, o.SellerID, nil
	}
	paymentService := payment.NewService(paymentRepo, gateways, orderParties)
	paymentHandler := payment.NewHandler(paymentService)

	// ── Social feed ─────────────────────────────────────────
	postRepo := post.NewPostgresRepository(db)
	postService := post.NewService(postRepo)
	postHandler := post.NewHandler(postService)
	postHandler.RegisterRoutes(router)

	// ── Protected routes ────────────────────────────────────
	router.Group(func(r chi.Router) {
		r.Use(auth.RequireAuth(jwtSecret))
		userHandler.RegisterProtectedRoutes(r)
		productHandler.RegisterProtectedRoutes(r)
		orderHandler.RegisterProtectedRoutes(r)
		payoutHandler.RegisterProtectedRoutes(r)
		paymentHandler.RegisterProtectedRoutes(r)
		notificationHandler.RegisterProtectedRoutes(r)
		postHandler.RegisterProtectedRoutes(r)
	})

	// ── Start Server ─────────────────────────────────────────
	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}
	fmt.Printf("Sokoline API server starting on :%s\n", port)
	log.Fatal(http.ListenAndServe(":"+port, router))
}
