package main

import (
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	addr := flag.String("addr", ":8080", "HTTP listen address")
	dbPath := flag.String("db", "invaders.db", "Path to the SQLite database (empty disables accounts and scores)")
	tuningPath := flag.String("tuning", "", "Path to a tuning YAML file (default: embedded)")
	questionsPath := flag.String("questions", "", "Path to a question bank YAML file (default: embedded)")
	publicURL := flag.String("public-url", "http://localhost:8080", "Base URL used in session QR codes")
	flag.Parse()

	tuning, err := LoadTuning(*tuningPath)
	if err != nil {
		log.Fatalf("tuning: %v", err)
	}
	bank, err := LoadQuestionBank(*questionsPath)
	if err != nil {
		log.Fatalf("questions: %v", err)
	}

	var db *DB
	if *dbPath != "" {
		db, err = OpenDB(*dbPath)
		if err != nil {
			log.Fatalf("database: %v", err)
		}
		log.Printf("Database opened at %s", *dbPath)
	}

	hub := NewHub(HubConfig{
		DB:        db,
		Tuning:    *tuning,
		Bank:      bank,
		PublicURL: *publicURL,
	})
	go hub.Run()

	mux := SetupRoutes(hub)

	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	server := &http.Server{Addr: *addr, Handler: mux}

	go func() {
		log.Printf("Server starting on %s", *addr)
		log.Printf("Loaded %d questions, boss health %d", len(bank.Questions), tuning.Boss.MaxHealth)
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			log.Fatalf("ListenAndServe: %v", err)
		}
	}()

	<-stop
	log.Println("Shutting down...")
	server.Close()
	hub.Shutdown()
	if db != nil {
		if err := db.Close(); err != nil {
			log.Printf("database close error: %v", err)
		}
	}
}
