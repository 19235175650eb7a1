package main

import (
	"context"
	"log"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/naturevita/naturevita-backend/internal/database"
	"github.com/naturevita/naturevita-backend/internal/modules/auth"
	"github.com/naturevita/naturevita-backend/internal/modules/cart"
	"github.com/naturevita/naturevita-backend/internal/modules/catalog"
	"github.com/naturevita/naturevita-backend/internal/modules/dashboard"
	"github.com/naturevita/naturevita-backend/internal/modules/message"
	"github.com/naturevita/naturevita-backend/internal/modules/order"
	"github.com/naturevita/naturevita-backend/internal/modules/review"
	"github.com/naturevita/naturevita-backend/internal/modules/upload"
	"github.com/naturevita/naturevita-backend/internal/modules/user"
)

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file, using process environment")
	}

	db, err := database.Open(os.Getenv("DATABASE_URL"))
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	if err := database.Migrate(db, getEnv("MIGRATIONS_PATH", "./migrations")); err != nil {
		log.Fatal(err)
	}
	log.Println("database migrations completed")

	// ── Session cart storage ─────────────────────────────────
	var storage cart.Storage
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		client := redis.NewClient(&redis.Options{Addr: addr})
		storage = cart.NewRedisStorage(client)
		log.Printf("cart storage: redis at %s", addr)
	} else {
		fileStorage, err := cart.NewFileStorage(getEnv("CART_DATA_DIR", "./data/cart"))
		if err != nil {
			log.Fatal(err)
		}
		storage = fileStorage
		log.Println("cart storage: local files")
	}
	sessions := cart.NewSessions(storage)

	// ── Admin account & auth ─────────────────────────────────
	userRepo := user.NewPostgresRepository(db)
	if email := os.Getenv("ADMIN_EMAIL"); email != "" {
		err := user.EnsureAdmin(context.Background(), userRepo, email, os.Getenv("ADMIN_PASSWORD"), "NatureVita Admin")
		if err != nil {
			log.Fatal(err)
		}
	}

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		log.Fatal("JWT_SECRET is required")
	}
	authService := auth.NewService(userRepo, []byte(secret))
	adminOnly := auth.Middleware(authService)

	// ── Router ───────────────────────────────────────────────
	router := chi.NewRouter()
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.RequestID)

	auth.NewHandler(authService).RegisterRoutes(router)
	cart.NewHandler(sessions).RegisterRoutes(router)

	catalogRepo := catalog.NewPostgresRepository(db)
	catalog.NewHandler(catalog.NewService(catalogRepo)).RegisterRoutes(router, adminOnly)

	orderRepo := order.NewPostgresRepository(db)
	order.NewHandler(order.NewService(orderRepo), sessions).RegisterRoutes(router, adminOnly)

	reviewRepo := review.NewPostgresRepository(db)
	review.NewHandler(review.NewService(reviewRepo)).RegisterRoutes(router, adminOnly)

	mailer := message.NewSendGridMailer(os.Getenv("SENDGRID_API_KEY"), getEnv("MAIL_FROM", "contact@naturevita.sn"))
	messageRepo := message.NewPostgresRepository(db)
	message.NewHandler(message.NewService(messageRepo, mailer)).RegisterRoutes(router, adminOnly)

	dashboard.NewHandler(dashboard.NewPostgresRepository(db)).RegisterRoutes(router, adminOnly)

	uploads, err := upload.NewHandler(getEnv("UPLOAD_DIR", "./data/uploads"), "/uploads")
	if err != nil {
		log.Fatal(err)
	}
	uploads.RegisterRoutes(router, adminOnly)

	// ── Start server ─────────────────────────────────────────
	port := getEnv("APP_PORT", "8080")
	log.Printf("NatureVita API server starting on :%s", port)
	log.Fatal(http.ListenAndServe(":"+port, router))
}
