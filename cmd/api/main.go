package main

import (
	"log"

	"skillbridge-backend/internal/bootstrap"
	"skillbridge-backend/internal/shared/config"
	"skillbridge-backend/internal/shared/server"
)

func main() {
	cfg := config.Load()

	app, err := bootstrap.Build(cfg)
	if err != nil {
		log.Fatalf("bootstrap failed: %v", err)
	}

	srv := server.NewHTTPServer(cfg, app.Router)
	log.Printf("Starting API server on %s", srv.Addr)

	if err := srv.ListenAndServe(); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
