package services

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"sisdna-portal/internal/entities"
	apperrors "sisdna-portal/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type supervisionFixture struct {
	supRepo  *mockSupervisionRepo
	defRepo  *mockDefensoriaRepo
	segRepo  *mockSeguimientoRepo
	fichRepo *mockFichaRepo
	svRepo   *mockSupervisorRepo
	modRepo  *mockModalidadRepo
	ctRepo   *mockCierreTipoRepo
	ubiRepo  *mockUbigeoRepo
}

func newSupervisionFixture() *supervisionFixture {
	return &supervisionFixture{
		supRepo:  &mockSupervisionRepo{},
		defRepo:  &mockDefensoriaRepo{byCodigo: map[string]entities.Defensoria{}},
		segRepo:  &mockSeguimientoRepo{},
		fichRepo: &mockFichaRepo{},
		svRepo:   &mockSupervisorRepo{},
		modRepo:  &mockModalidadRepo{},
		ctRepo:   &mockCierreTipoRepo{},
		ubiRepo:  &mockUbigeoRepo{},
	}
}

func (f *supervisionFixture) service() SupervisionServiceInterface {
	return NewSupervisionService(
		f.supRepo, f.defRepo, f.segRepo, f.fichRepo, f.svRepo, f.modRepo, f.ctRepo, f.ubiRepo,
		newMissDictionaryCache(), testSisdnaCfg, zap.NewNop(),
	)
}

func TestSupervisionSearchRejectsInvertedDateRange(t *testing.T) {
	f := newSupervisionFixture()
	svc := f.service()

	desde := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	hasta := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	_, _, err := svc.Search(context.Background(), entities.SupervisionFilter{FechaDesde: &desde, FechaHasta: &hasta})

	require.Error(t, err)
	var invalid *apperrors.InvalidInputError
	assert.ErrorAs(t, err, &invalid)
	assert.Zero(t, f.supRepo.countCalls)
}

func TestSupervisionSearchEmptyUbigeoMatchShortCircuits(t *testing.T) {
	f := newSupervisionFixture()
	f.defRepo.codigosByUbigeo = map[string][]string{}
	svc := f.service()

	page, total, err := svc.Search(context.Background(), entities.SupervisionFilter{Ubigeo: "990101"})
	require.NoError(t, err)
	assert.Empty(t, page)
	assert.Zero(t, total)
	assert.Zero(t, f.supRepo.countCalls)
}

func TestSupervisionSearchDenormalizesPage(t *testing.T) {
	f := newSupervisionFixture()
	fecha := time.Date(2025, 4, 15, 0, 0, 0, 0, time.UTC)
	cierre := time.Date(2025, 5, 2, 0, 0, 0, 0, time.UTC)

	f.supRepo.total = 1
	f.supRepo.supervisiones = []entities.Supervision{{
		NidSupervision:   42,
		CodigoDNA:        "15001",
		Fecha:            fecha,
		CodigoSupervisor: sql.NullInt64{Int64: 7, Valid: true},
		NidModalidad:     sql.NullInt64{Int64: 2, Valid: true},
	}}
	f.defRepo.byCodigo["15001"] = entities.Defensoria{CodigoDNA: "15001", Nombre: "DEMUNA LIMA", UbigeoCodigo: "150101"}
	f.svRepo.supervisores = []entities.Supervisor{{Codigo: 7, Nombre: "J. Torres"}}
	f.modRepo.modalidades = []entities.Modalidad{{Nid: 2, Nombre: "Virtual"}}
	f.ctRepo.tipos = []entities.CierreTipo{{Codigo: 3, Nombre: "Oficio"}}
	f.ubiRepo.nombres = map[string]string{"150000": "Lima", "150100": "Lima", "150101": "Lima Cercado"}
	f.fichRepo.urls = map[uint64]string{42: "https://files.example/ficha-42.pdf"}
	f.segRepo.seguimientos = []entities.Seguimiento{{
		NidSupervision:     42,
		InformeSeguimiento: sql.NullString{String: "INF-001", Valid: true},
		Subsanacion:        sql.NullBool{Bool: true, Valid: true},
		FechaCierre:        sql.NullTime{Time: cierre, Valid: true},
		NidModalidadCierre: sql.NullInt64{Int64: 3, Valid: true},
	}}

	page, total, err := f.service().Search(context.Background(), entities.SupervisionFilter{})
	require.NoError(t, err)
	assert.Equal(t, uint64(1), total)
	require.Len(t, page, 1)

	row := page[0]
	assert.Equal(t, "2025-04-15", row.Fecha)
	assert.Equal(t, "J. Torres", row.Supervisor)
	assert.Equal(t, "Virtual", row.Modalidad)
	assert.Equal(t, "DEMUNA LIMA", row.NombreDemuna)
	assert.Equal(t, "Lima Cercado", row.Distrito)
	assert.Equal(t, "https://files.example/ficha-42.pdf", row.Ficha.String)
	assert.Equal(t, "INF-001", row.DocSeguimiento.String)
	assert.True(t, row.Subsanacion.Bool)
	assert.Equal(t, "2025-05-02", row.FechaCierre.String)
	assert.Equal(t, "Oficio", row.TipoCierre.String)
	assert.Contains(t, row.SisdnaURL, "codigoDna=15001")
}

func TestSupervisionSearchFallbacksWithoutAssignments(t *testing.T) {
	f := newSupervisionFixture()
	f.supRepo.total = 1
	f.supRepo.supervisiones = []entities.Supervision{{
		NidSupervision: 9,
		CodigoDNA:      "02001",
		Fecha:          time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC),
	}}

	page, _, err := f.service().Search(context.Background(), entities.SupervisionFilter{})
	require.NoError(t, err)
	require.Len(t, page, 1)

	row := page[0]
	assert.Equal(t, "No asignado", row.Supervisor)
	assert.Equal(t, "No especificado", row.Modalidad)
	assert.Equal(t, "Desconocido", row.Departamento)
	assert.False(t, row.Ficha.Valid)
	assert.False(t, row.Subsanacion.Valid)
	assert.False(t, row.TipoCierre.Valid)
}

func TestSupervisionListSupervisoresFallsThroughToRepo(t *testing.T) {
	f := newSupervisionFixture()
	f.svRepo.supervisores = []entities.Supervisor{{Codigo: 1, Nombre: "A. Rojas"}}

	supervisores, err := f.service().ListSupervisores(context.Background())
	require.NoError(t, err)
	require.Len(t, supervisores, 1)
	assert.Equal(t, "A. Rojas", supervisores[0].Nombre)
}

func TestSupervisionFindByNid(t *testing.T) {
	f := newSupervisionFixture()
	f.supRepo.supervisiones = []entities.Supervision{{
		NidSupervision:   42,
		CodigoDNA:        "15001",
		Fecha:            time.Date(2025, 4, 15, 0, 0, 0, 0, time.UTC),
		CodigoSupervisor: sql.NullInt64{Int64: 7, Valid: true},
	}}
	f.defRepo.byCodigo["15001"] = entities.Defensoria{CodigoDNA: "15001", Nombre: "DEMUNA LIMA", UbigeoCodigo: "150101"}
	f.svRepo.supervisores = []entities.Supervisor{{Codigo: 7, Nombre: "J. Torres"}}
	svc := f.service()

	row, err := svc.FindByNid(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, uint64(42), row.NidSupervision)
	assert.Equal(t, "J. Torres", row.Supervisor)
	assert.Equal(t, "DEMUNA LIMA", row.NombreDemuna)

	_, err = svc.FindByNid(context.Background(), 999)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestSupervisionSearchPageBeyondLastIsEmptyNotError(t *testing.T) {
	f := newSupervisionFixture()
	f.supRepo.total = 2
	svc := f.service()

	page, total, err := svc.Search(context.Background(), entities.SupervisionFilter{Page: 50})
	require.NoError(t, err)
	assert.Equal(t, uint64(2), total)
	assert.Empty(t, page)
	assert.Equal(t, 1, f.supRepo.listCalls)
}
