package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"stockpilot/frontend/flights"
	"stockpilot/frontend/pick"
	"stockpilot/infrastructure/argon"
	"stockpilot/infrastructure/backend"
	"stockpilot/infrastructure/cache"
	httpserver "stockpilot/infrastructure/http"
)

func main() {
	addr := getenv("APP_ADDR", ":8080")
	backendURL := getenv("BACKEND_URL", "http://localhost:8000")
	demoFallback := getenv("DEMO_FALLBACK", "1") != "0"

	accessCode := getenv("OPERATOR_ACCESS_CODE", "ops-2026")
	accessCodeHash := accessCode
	if !argon.IsEncodedHash(accessCodeHash) {
		hashed, err := argon.HashAccessCode(accessCode)
		if err != nil {
			log.Fatalf("hash access code: %v", err)
		}
		accessCodeHash = hashed
	}

	api := backend.New(backendURL)
	flightSvc := flights.NewService(api, demoFallback)
	tracker := pick.NewTracker(api)
	sessionCache := cache.NewOperatorSessionCache()

	server := httpserver.NewServer(addr, api, flightSvc, tracker, sessionCache, accessCodeHash)
	if err := server.Start(); err != nil {
		log.Fatalf("start server: %v", err)
	}
	log.Printf("stockpilot listening on %s, backend %s", addr, backendURL)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	if err := server.Stop(); err != nil {
		log.Printf("graceful shutdown error: %v", err)
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
