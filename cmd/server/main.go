package main

import (
	"log"
	"net/http"
	"os"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"github.com/codereview/backend/internal/auth"
	"github.com/codereview/backend/internal/database"
	"github.com/codereview/backend/internal/feedback"
	"github.com/codereview/backend/internal/middleware"
	"github.com/codereview/backend/internal/review"
)

func main() {
	// Initialize database
	db, err := database.Connect()
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize handlers
	authHandler := auth.NewHandler(db)

	llm := feedback.NewClient()
	store := review.NewStore(db)
	reviewHandler := review.NewHandler(review.NewService(llm, store), store)

	// Setup router
	r := mux.NewRouter()
	api := r.PathPrefix("/api/v1").Subrouter()

	// Public routes
	api.HandleFunc("/auth/register", authHandler.Register).Methods("POST")
	api.HandleFunc("/auth/login", authHandler.Login).Methods("POST")

	// Review submission works anonymously; a valid token attaches history.
	submit := api.PathPrefix("").Subrouter()
	submit.Use(middleware.OptionalAuth)
	submit.HandleFunc("/code-review", reviewHandler.ReviewCode).Methods("POST")
	submit.HandleFunc("/upload-code", reviewHandler.UploadCode).Methods("POST")

	// Protected routes
	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.AuthMiddleware)
	protected.HandleFunc("/auth/me", authHandler.GetCurrentUser).Methods("GET")
	protected.HandleFunc("/reviews", reviewHandler.ListReviews).Methods("GET")
	protected.HandleFunc("/reviews/stats", reviewHandler.GetStats).Methods("GET")
	protected.HandleFunc("/reviews/{id:[0-9]+}", reviewHandler.GetReview).Methods("GET")

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	r.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"message":"AI code review service","endpoints":["/api/v1/code-review","/api/v1/upload-code","/api/v1/reviews","/health"]}`))
	}).Methods("GET")

	// CORS
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	handler := c.Handler(r)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Server starting on :%s", port)
	if err := http.ListenAndServe(":"+port, handler); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
