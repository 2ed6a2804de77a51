package main

import (
	"log"
	"net/http"
	"os"

	"trailgen.dev/internal/config"
	"trailgen.dev/internal/handlers"
)

func main() {
	dataPath := "data"
	if len(os.Args) > 1 {
		dataPath = os.Args[1]
	}

	cfg, err := config.Load(dataPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	router, err := handlers.SetupRoutes(cfg)
	if err != nil {
		log.Fatalf("Failed to start generator: %v", err)
	}

	log.Printf("Listening on %s (biome %q, seed %q)", cfg.ServerAddr, cfg.Generation.Biome, cfg.Generation.Seed)
	if err := http.ListenAndServe(cfg.ServerAddr, router); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
