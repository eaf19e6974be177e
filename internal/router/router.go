// Package router wires the HTTP surface: public storefront endpoints,
// JWT-protected admin endpoints, static uploads and the dashboard
// websocket.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sandrine-beauty/kika-shop/internal/config"
	"github.com/sandrine-beauty/kika-shop/internal/database"
	"github.com/sandrine-beauty/kika-shop/internal/handler"
	mw "github.com/sandrine-beauty/kika-shop/internal/middleware"
	"github.com/sandrine-beauty/kika-shop/internal/service"
	"github.com/sandrine-beauty/kika-shop/internal/ws"
)

// New creates a Chi router with all application routes wired up.
func New(cfg *config.Config, queries *database.Queries, pool *pgxpool.Pool, hub *ws.Hub) chi.Router {
	r := chi.NewRouter()

	// Standard middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300, // 5 minutes
	}))

	newOrderStore := func(db database.DBTX) service.OrderStore {
		return database.New(db)
	}
	orderService := service.NewOrderService(pool, newOrderStore, hub)

	orderHandler := handler.NewOrderHandler(queries, orderService, cfg.WhatsAppNumber)
	productHandler := handler.NewProductHandler(queries)
	contentHandler := handler.NewSiteContentHandler(queries)
	authHandler := handler.NewAuthHandler(queries, cfg.JWTSecret)
	uploadHandler := handler.NewUploadHandler(cfg.UploadDir)

	// Public routes
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Post("/api/orders", orderHandler.Create)
	r.Get("/api/products", productHandler.List)
	r.Get("/api/products/{id}", productHandler.Get)
	r.Get("/api/site-content", contentHandler.Get)
	r.Post("/api/auth/login", authHandler.Login)

	// Uploaded product images
	fs := http.StripPrefix("/uploads/", http.FileServer(http.Dir(cfg.UploadDir)))
	r.Get("/uploads/*", fs.ServeHTTP)

	// WebSocket route (handles auth internally via query param)
	r.Get("/ws/orders", func(w http.ResponseWriter, r *http.Request) {
		ws.ServeWS(hub, cfg.JWTSecret, w, r)
	})

	// Protected routes (require authentication)
	r.Group(func(r chi.Router) {
		r.Use(mw.Authenticate(cfg.JWTSecret))

		r.Get("/api/orders", orderHandler.List)
		r.Get("/api/orders/stats", orderHandler.Stats)
		r.Get("/api/orders/export", orderHandler.Export)
		r.Get("/api/orders/{id}", orderHandler.Get)
		r.Put("/api/orders/{id}", orderHandler.UpdateStatus)
		r.Delete("/api/orders/{id}", orderHandler.Delete)

		r.Post("/api/products", productHandler.Create)
		r.Put("/api/products/{id}", productHandler.Update)
		r.Delete("/api/products/{id}", productHandler.Delete)

		r.Post("/api/site-content", contentHandler.Upsert)
		r.Post("/api/upload", uploadHandler.Upload)
		r.Post("/api/auth/change-password", authHandler.ChangePassword)
	})

	return r
}
