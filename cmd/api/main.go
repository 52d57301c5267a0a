package main

import (
	"context"
	"log"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/brickmint/lead-intake/internal/infra/database"
	"github.com/brickmint/lead-intake/internal/infra/http/handlers"
	"github.com/brickmint/lead-intake/internal/infra/http/middleware"
	"github.com/brickmint/lead-intake/internal/infra/mail"
	"github.com/brickmint/lead-intake/internal/infra/queue"
	"github.com/brickmint/lead-intake/internal/infra/worker"
	"github.com/brickmint/lead-intake/internal/usecase"
)

func main() {
	godotenv.Load()

	db, err := database.NewDBConnection(os.Getenv("DATABASE_URL"))
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	rabbitMQ, err := queue.NewRabbitMQ(
		envOr("RABBITMQ_USER", "guest"),
		envOr("RABBITMQ_PASS", "guest"),
		envOr("RABBITMQ_HOST", "localhost"),
		envOr("RABBITMQ_PORT", "5672"),
	)
	if err != nil {
		log.Fatal(err)
	}
	defer rabbitMQ.Conn.Close()
	defer rabbitMQ.Ch.Close()

	// 1. Repositories
	leadRepo := database.NewLeadRepository(db)
	auditRepo := database.NewAuditRepository(db)

	// 2. Producer and notifier
	producer := queue.NewProducer(rabbitMQ.Conn, rabbitMQ.Ch)
	mailSender := mail.NewEmailSender(
		os.Getenv("MAIL_HOST"), 587, os.Getenv("MAIL_USER"), os.Getenv("MAIL_PASS"),
		envOr("NOTIFY_EMAIL", "sales@brickmint.in"),
	)

	// 3. Workers (email alerts from the queue, gauge refresh from a timer)
	notifyWorker := queue.NewWorker(rabbitMQ.Ch, mailSender)
	go notifyWorker.Start(queue.QueueName)

	gaugeWorker := worker.NewStatusGaugeWorker(db)
	go gaugeWorker.Start(context.Background())

	// 4. UseCases
	createUC := usecase.NewCreateLeadUseCase(leadRepo, producer)
	updateUC := usecase.NewUpdateLeadUseCase(leadRepo)
	deleteUC := usecase.NewDeleteLeadUseCase(leadRepo)
	importUC := usecase.NewImportLeadsUseCase(leadRepo, producer)

	// 5. Handlers
	leadHandler := handlers.NewLeadHandler(createUC, updateUC, deleteUC, leadRepo, auditRepo)
	importHandler := handlers.NewImportHandler(importUC)
	exportHandler := handlers.NewExportHandler(leadRepo)
	healthHandler := handlers.NewHealthHandler(db, rabbitMQ.Conn)

	// 6. Router
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"http://localhost:5173", "*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "X-Actor-Id"},
	}))
	r.Use(middleware.Actor)

	r.Route("/buyers", func(r chi.Router) {
		r.Post("/", leadHandler.Create)
		r.Get("/", leadHandler.List)
		r.Get("/meta", handlers.Meta)
		r.Get("/export", exportHandler.Handle)
		r.Post("/import", importHandler.Handle)
		r.Get("/{id}", leadHandler.Get)
		r.Put("/{id}", leadHandler.Update)
		r.Delete("/{id}", leadHandler.Delete)
	})
	r.Get("/health", healthHandler.Handle)
	r.Handle("/metrics", promhttp.Handler())

	port := ":" + envOr("PORT", "8080")
	log.Printf("🔥 lead-intake API listening on %s", port)
	http.ListenAndServe(port, r)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
