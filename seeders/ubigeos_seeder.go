package seeders

import (
	"context"
	"encoding/csv"
	"io"
	"log"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"

	"sisdna-portal/pkg/ubigeo"
)

// SeedUbigeos carga el catálogo territorial desde un CSV oficial con las
// columnas codigo,nombre. El nivel y el código padre se derivan del propio
// código, así que el archivo solo necesita las dos columnas.
func SeedUbigeos(db *pgxpool.Pool, path string) {
	f, err := os.Open(path)
	if err != nil {
		log.Fatalf("Error al abrir el CSV de ubigeos: %v", err)
	}
	defer f.Close()

	ctx := context.Background()
	tx, err := db.Begin(ctx)
	if err != nil {
		log.Fatalf("Error al iniciar la transacción: %v", err)
	}
	defer tx.Rollback(ctx)

	query := `INSERT INTO ubigeos (codigo, txt_nombre, nivel, codigo_padre) VALUES ($1, $2, $3, $4)
			  ON CONFLICT (codigo) DO NOTHING;`

	reader := csv.NewReader(f)
	total := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			log.Fatalf("Error al leer el CSV de ubigeos: %v", err)
		}
		if len(record) < 2 || record[0] == "codigo" {
			continue
		}

		codigo, nombre := record[0], record[1]
		if len(codigo) != ubigeo.Width {
			log.Printf("⚠️  Código de ubigeo inválido, se omite: %q", codigo)
			continue
		}
		nivel, padre := classify(codigo)

		if _, err := tx.Exec(ctx, query, codigo, nombre, nivel, padre); err != nil {
			log.Fatalf("Error al insertar el ubigeo %s: %v", codigo, err)
		}
		total++
	}

	if err := tx.Commit(ctx); err != nil {
		log.Fatalf("Error al confirmar la carga de ubigeos: %v", err)
	}
	log.Printf("✅ Catálogo territorial cargado: %d filas procesadas.", total)
}

func classify(codigo string) (nivel string, padre interface{}) {
	switch ubigeo.LevelOf(codigo) {
	case ubigeo.LevelDepartment:
		return "departamento", nil
	case ubigeo.LevelProvince:
		return "provincia", ubigeo.DepartmentCode(codigo)
	default:
		return "distrito", ubigeo.ProvinceCode(codigo)
	}
}
