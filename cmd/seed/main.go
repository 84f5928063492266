package main

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/explorea/countries-api/config"
	"github.com/explorea/countries-api/internal/domain/entity"
	"github.com/explorea/countries-api/pkg/helpers"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	dsn := cfg.PostgresDSN()
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	email := "demo@example.com"
	password := "password123"
	hash, err := helpers.HashPassword(password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	favorites := []entity.Favorite{
		{
			CountryName: "Finland",
			Flag:        "https://flagcdn.com/w320/fi.png",
			Capital:     "Helsinki",
			Region:      "Europe",
		},
		{
			CountryName: "Japan",
			Flag:        "https://flagcdn.com/w320/jp.png",
			Capital:     "Tokyo",
			Region:      "Asia",
		},
	}
	favs, err := json.Marshal(favorites)
	if err != nil {
		log.Fatalf("failed to marshal favorites: %v", err)
	}

	var id string
	err = db.QueryRow(`
		INSERT INTO users (email, password_hash, favorites)
		VALUES ($1, $2, $3)
		ON CONFLICT (email) DO UPDATE SET favorites = EXCLUDED.favorites
		RETURNING id
	`, email, hash, favs).Scan(&id)
	if err != nil {
		log.Fatalf("failed to seed user: %v", err)
	}
	fmt.Printf("seeded user: id=%s email=%s password=%s favorites=%d\n", id, email, password, len(favorites))
}
