package main

import (
	"flag"
	"log"

	"sisdna-portal/pkg/config"
	"sisdna-portal/pkg/database/postgresql"
	"sisdna-portal/seeders"
)

func main() {
	runDictionaries := flag.Bool("dictionaries", false, "Cargar los catálogos (características, modalidades, estados, tipos de cierre)")
	runAdmin := flag.Bool("admin", false, "Crear la cuenta inicial del personal (ADMIN_EMAIL / ADMIN_PASSWORD)")
	ubigeosCSV := flag.String("ubigeos", "", "Ruta del CSV oficial de ubigeos a cargar")
	runAll := flag.Bool("all", false, "Ejecutar todos los seeders (requiere -ubigeos para el catálogo territorial)")

	flag.Parse()

	if !*runDictionaries && !*runAdmin && *ubigeosCSV == "" && !*runAll {
		log.Println("❌ No se seleccionó ningún seeder.")
		log.Println("")
		flag.PrintDefaults()
		log.Println("")
		log.Println("Ejemplos:")
		log.Println("  go run ./seeders/cmd/seed -dictionaries")
		log.Println("  go run ./seeders/cmd/seed -ubigeos data/ubigeos.csv")
		log.Println("  go run ./seeders/cmd/seed -all -ubigeos data/ubigeos.csv")
		return
	}

	cfg := config.New()
	dbPool := postgresql.ConnectDB(cfg.Postgres.DSN)
	defer dbPool.Close()

	if *runAll || *ubigeosCSV != "" {
		if *ubigeosCSV == "" {
			log.Println("⚠️  Sin -ubigeos no se carga el catálogo territorial.")
		} else {
			seeders.SeedUbigeos(dbPool, *ubigeosCSV)
		}
	}

	if *runAll || *runDictionaries {
		seeders.SeedDictionaries(dbPool)
	}

	if *runAll || *runAdmin {
		seeders.SeedAdminUser(dbPool)
	}

	log.Println("✅ Operaciones de sembrado finalizadas.")
}
