package seeders

import (
	"context"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
)

var caracteristicasData = []struct {
	Clave string
	Valor string
}{
	{"t1", "Municipal"},
	{"t2", "Comunal"},
	{"t3", "Parroquial"},
	{"t4", "Escolar"},
	{"a", "No Operativa"},
	{"b", "Acreditada"},
	{"c", "No Acreditada"},
}

var modalidadesData = []struct {
	Nid    uint64
	Nombre string
}{
	{1, "Presencial"},
	{2, "Virtual"},
}

var sincronizacionEstadosData = []struct {
	Nid    string
	Nombre string
}{
	{"1", "ACTUALIZADA"},
	{"2", "NO ACTUALIZADA"},
	{"3", "FALTANTE"},
}

var cierreTiposData = []struct {
	Codigo uint64
	Nombre string
}{
	{1, "Informe"},
	{2, "Proveído"},
	{3, "Oficio"},
}

// SeedDictionaries carga los catálogos que la aplicación resuelve por clave.
// Las filas existentes se conservan tal cual.
func SeedDictionaries(db *pgxpool.Pool) {
	ctx := context.Background()

	if err := seedCaracteristicas(ctx, db); err != nil {
		log.Fatalf("Error al poblar defensorias_caracteristicas: %v", err)
	}
	if err := seedModalidades(ctx, db); err != nil {
		log.Fatalf("Error al poblar supervision_modalidades: %v", err)
	}
	if err := seedSincronizacionEstados(ctx, db); err != nil {
		log.Fatalf("Error al poblar sincronizacion_estados: %v", err)
	}
	if err := seedCierreTipos(ctx, db); err != nil {
		log.Fatalf("Error al poblar seguimiento_cierre_tipos: %v", err)
	}

	log.Println("✅ Catálogos verificados/creados.")
}

func seedCaracteristicas(ctx context.Context, db *pgxpool.Pool) error {
	log.Println("  - Poblando 'defensorias_caracteristicas'...")

	query := `INSERT INTO defensorias_caracteristicas (clave, txt_valor) VALUES ($1, $2)
			  ON CONFLICT (clave) DO NOTHING;`

	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for _, c := range caracteristicasData {
		if _, err := tx.Exec(ctx, query, c.Clave, c.Valor); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

func seedModalidades(ctx context.Context, db *pgxpool.Pool) error {
	log.Println("  - Poblando 'supervision_modalidades'...")

	query := `INSERT INTO supervision_modalidades (nid, txt_nombre) VALUES ($1, $2)
			  ON CONFLICT (nid) DO NOTHING;`

	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for _, m := range modalidadesData {
		if _, err := tx.Exec(ctx, query, m.Nid, m.Nombre); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

func seedSincronizacionEstados(ctx context.Context, db *pgxpool.Pool) error {
	log.Println("  - Poblando 'sincronizacion_estados'...")

	query := `INSERT INTO sincronizacion_estados (nid, txt_nombre) VALUES ($1, $2)
			  ON CONFLICT (nid) DO NOTHING;`

	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for _, e := range sincronizacionEstadosData {
		if _, err := tx.Exec(ctx, query, e.Nid, e.Nombre); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

func seedCierreTipos(ctx context.Context, db *pgxpool.Pool) error {
	log.Println("  - Poblando 'seguimiento_cierre_tipos'...")

	query := `INSERT INTO seguimiento_cierre_tipos (codigo, txt_nombre) VALUES ($1, $2)
			  ON CONFLICT (codigo) DO NOTHING;`

	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for _, t := range cierreTiposData {
		if _, err := tx.Exec(ctx, query, t.Codigo, t.Nombre); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}
