package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"island-discovery/internal/server"
	"island-discovery/pkg/terrain"
)

func main() {
	port := flag.String("port", "30000", "Server port")
	dbPath := flag.String("db", "data/islands.db", "Run history database path")
	size := flag.Int("size", terrain.DefaultSize, "Default grid size")
	ratio := flag.Int("ratio", terrain.DefaultLandRatio, "Default land ratio percent")
	maxSize := flag.Int("max-size", 400, "Largest grid size a client may request")
	flag.Parse()

	// Use PORT env var if set (required for Render.com and similar platforms)
	actualPort := *port
	if envPort := os.Getenv("PORT"); envPort != "" {
		actualPort = envPort
		log.Printf("Using PORT from environment: %s", actualPort)
	}

	// Use DB_PATH env var if set, for cloud deployments with persistent disks
	actualDBPath := *dbPath
	if envDBPath := os.Getenv("DB_PATH"); envDBPath != "" {
		actualDBPath = envDBPath
		log.Printf("Using DB_PATH from environment: %s", actualDBPath)
	}

	if *ratio < 0 || *ratio > 100 {
		log.Fatalf("Invalid -ratio %d: %v", *ratio, terrain.ErrInvalidRatio)
	}

	cfg := server.Config{
		Addr:      ":" + actualPort,
		DBPath:    actualDBPath,
		Size:      *size,
		LandRatio: *ratio,
		MaxSize:   *maxSize,
	}

	srv, err := server.New(cfg)
	if err != nil {
		log.Fatalf("Failed to create server: %v", err)
	}

	// Handle shutdown gracefully
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		if err := srv.Start(); err != nil {
			log.Printf("Server error: %v", err)
		}
	}()

	log.Printf("Island Discovery Server running on %s", cfg.Addr)
	log.Printf("Grid defaults: %dx%d, land ratio %d%%", cfg.Size, cfg.Size, cfg.LandRatio)

	<-done
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Stop(ctx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}

	log.Println("Server stopped")
}
