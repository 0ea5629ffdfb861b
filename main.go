package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"bankist-api/config"
	"bankist-api/handler"
	"bankist-api/session"
	"bankist-api/storage"

	"github.com/gorilla/mux"
)

func main() {
	// Setup signal handling for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.Load()

	// Build the in-memory account directory from the fixed seed set
	directory, err := storage.NewDirectory(storage.Seed())
	if err != nil {
		log.Fatalf("Failed to build account directory: %v", err)
	}
	log.Printf("Account directory seeded with %d accounts", directory.Len())

	// The session controller mediates every state-changing operation
	bank := session.NewController(directory, cfg.SessionCountdown)

	// Initialize handlers
	sessionHandler := handler.NewSessionHandler(bank)
	transferHandler := handler.NewTransferHandler(bank)

	// Setup router
	r := mux.NewRouter()
	r.HandleFunc("/login", sessionHandler.LoginHandler).Methods("POST")
	r.HandleFunc("/session", sessionHandler.GetSessionHandler).Methods("GET")
	r.HandleFunc("/session/sort", sessionHandler.ToggleSortHandler).Methods("POST")
	r.HandleFunc("/close", sessionHandler.CloseAccountHandler).Methods("POST")
	r.HandleFunc("/transfers", transferHandler.CreateTransferHandler).Methods("POST")
	r.HandleFunc("/loans", transferHandler.CreateLoanHandler).Methods("POST")
	r.HandleFunc("/currencies", sessionHandler.CurrenciesHandler).Methods("GET")

	// Create and start server
	server := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: r,
	}

	go func() {
		log.Printf("Starting server on %s", cfg.ListenAddr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("ListenAndServe error: %v", err)
		}
	}()

	// Wait for shutdown signal
	<-ctx.Done()
	log.Println("Shutting down server...")

	// Create a context for shutdown with a timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server shutdown failed: %v", err)
	}

	log.Println("Server gracefully stopped")
}
