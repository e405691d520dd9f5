package main

import (
	"database/sql"
	"fmt"
	"log"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/goidm/identity-backend/config"
	"github.com/goidm/identity-backend/internal/domain/entity"
	"github.com/goidm/identity-backend/internal/domain/valueobject"
)

// Seeds a pre-activated demo account for local development.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	email, err := valueobject.NewEmail("demo@example.com")
	if err != nil {
		log.Fatalf("bad email: %v", err)
	}
	password, err := valueobject.NewPassword("Demo1234!")
	if err != nil {
		log.Fatalf("bad password: %v", err)
	}
	user, err := entity.NewUser("demo", email, password)
	if err != nil {
		log.Fatalf("bad user: %v", err)
	}
	user.Activate()

	var id string
	err = db.QueryRow(`
		INSERT INTO users (id, username, email, password_hash, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT ((lower(email))) DO UPDATE SET is_active = true, updated_at = now()
		RETURNING id
	`, user.ID, user.Username, user.Email.Value(), user.Password.Hash(), user.IsActive, user.CreatedAt, user.UpdatedAt).Scan(&id)
	if err != nil {
		log.Fatalf("failed to seed user: %v", err)
	}
	fmt.Printf("seeded user: id=%s email=%s password=Demo1234!\n", id, user.Email.Value())
}
