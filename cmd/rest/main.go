package main

import (
	"context"
	"log"

	"smart-librarian-be/internal/bootstrap"
	"smart-librarian-be/internal/config"
	"smart-librarian-be/internal/model"
	"smart-librarian-be/internal/server"
	"smart-librarian-be/internal/tracer"
	"smart-librarian-be/pkg/database"
)

func main() {
	// 0. Initialize Tracer (no-op unless OTEL_ENABLED=true)
	shutdownTracer := tracer.InitTracer()
	defer shutdownTracer(context.Background())

	// 1. Load Configuration
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// 2. Initialize Database
	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Panicf("Unable to connect to GORM DB: %v", err)
	}
	if err := database.Migrate(gormDB, &model.BookEmbedding{}); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	// 3. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(gormDB, cfg)

	// 4. Reconcile the vector index with the catalog before serving
	if err := container.IndexService.Sync(context.Background()); err != nil {
		log.Fatalf("Vector index sync failed: %v", err)
	}

	// 5. Start Background Services
	if err := container.ConsumerService.StartConsume(context.Background()); err != nil {
		log.Printf("Background Consumer Error: %v", err)
	}

	// 6. Run Server
	srv := server.New(cfg, container)
	log.Fatal(srv.Run())
}
