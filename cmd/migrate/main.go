package main

import (
	"log"
	"os"

	"smart-librarian-be/internal/model"
	"smart-librarian-be/pkg/database"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	log.Println("Running GORM migration...")
	if err := database.Migrate(db, &model.BookEmbedding{}); err != nil {
		log.Fatal("Error: Migration failed:", err)
	}
	log.Println("✅ Migration complete")
}
