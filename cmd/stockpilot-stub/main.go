// Command stockpilot-stub runs a local catering backend with seeded
// flights and a supplier catalog, for developing the dashboard without
// the warehouse systems.
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"stockpilot/infrastructure/sqlite"
	"stockpilot/stub"
)

func main() {
	addr := getenv("STUB_ADDR", ":8000")
	dbPath := getenv("STUB_SQLITE_PATH", "stockpilot-stub.db")

	db, err := sqlite.OpenDB(dbPath)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	defer db.Close()

	if err := sqlite.ApplyMigrations(context.Background(), db); err != nil {
		log.Fatalf("apply migrations: %v", err)
	}

	server := &http.Server{
		Addr:    addr,
		Handler: stub.NewServer(stub.NewStore(db)).Handler(),
	}
	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("serve: %v", err)
		}
	}()
	log.Printf("stockpilot-stub listening on %s, db %s", addr, dbPath)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("graceful shutdown error: %v", err)
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
