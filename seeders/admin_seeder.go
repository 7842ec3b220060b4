package seeders

import (
	"context"
	"log"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"
)

// SeedAdminUser crea la cuenta inicial del personal a partir de
// ADMIN_EMAIL / ADMIN_PASSWORD / ADMIN_NOMBRE. Sin ADMIN_PASSWORD no se
// crea nada: nunca se siembra una contraseña por defecto.
func SeedAdminUser(db *pgxpool.Pool) {
	email := os.Getenv("ADMIN_EMAIL")
	password := os.Getenv("ADMIN_PASSWORD")
	nombre := os.Getenv("ADMIN_NOMBRE")

	if email == "" || password == "" {
		log.Println("⚠️  ADMIN_EMAIL o ADMIN_PASSWORD no definidos; se omite la cuenta inicial.")
		return
	}
	if nombre == "" {
		nombre = "Administrador"
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Error al calcular el hash de la contraseña: %v", err)
	}

	query := `INSERT INTO users (email, txt_nombre, password_hash) VALUES ($1, $2, $3)
			  ON CONFLICT (email) DO NOTHING;`

	if _, err := db.Exec(context.Background(), query, email, nombre, string(hash)); err != nil {
		log.Fatalf("Error al crear la cuenta inicial: %v", err)
	}

	log.Printf("✅ Cuenta inicial verificada/creada: %s", email)
}
