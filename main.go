package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"

	"Userdeck/config"
	"Userdeck/database"
	"Userdeck/handlers"
	"Userdeck/logger"
	"Userdeck/session"
	"Userdeck/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Invalid configuration: ", err)
	}

	logger.Init(cfg.Environment, cfg.Debug)

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database: ", err)
	}
	defer db.Close()

	if err := database.RunMigrations(db); err != nil {
		log.Fatal("Failed to run migrations: ", err)
	}

	users := store.NewPostgres(db)

	// Demo accounts exist in development only.
	if !cfg.IsProduction() {
		if err := database.SeedDefaultUsers(context.Background(), users); err != nil {
			log.Fatal("Failed to seed default users: ", err)
		}
	}

	sessions := session.NewManager(cfg, users)

	h, err := handlers.New(users, sessions)
	if err != nil {
		log.Fatal("Failed to initialize handlers: ", err)
	}

	addr := ":" + cfg.ServerPort
	slog.Info("Userdeck starting", "addr", addr, "env", cfg.Environment)

	if err := http.ListenAndServe(addr, h.Routes()); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
