package main

import (
	"database/sql"
	"flag"
	"log"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"sisdna-portal/migrations"
	"sisdna-portal/pkg/config"
)

func main() {
	command := flag.String("command", "up", "Comando goose a ejecutar: up, down o status")
	flag.Parse()

	cfg := config.New()

	db, err := sql.Open("pgx", cfg.Postgres.DSN)
	if err != nil {
		log.Fatalf("Error al abrir la conexión: %v", err)
	}
	defer db.Close()

	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("postgres"); err != nil {
		log.Fatalf("Error al configurar el dialecto: %v", err)
	}

	switch *command {
	case "up":
		err = goose.Up(db, ".")
	case "down":
		err = goose.Down(db, ".")
	case "status":
		err = goose.Status(db, ".")
	default:
		log.Fatalf("Comando desconocido: %q", *command)
	}
	if err != nil {
		log.Fatalf("Error al ejecutar las migraciones: %v", err)
	}
}
