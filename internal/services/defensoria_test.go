package services

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"sisdna-portal/internal/entities"
	"sisdna-portal/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var testSisdnaCfg = &config.SisdnaConfig{CaseURL: "https://sisdna.example.gob.pe/dna"}

func newDefensoriaServiceForTest(defRepo *mockDefensoriaRepo, respRepo *mockResponsableRepo, carRepo *mockCaracteristicaRepo, ubiRepo *mockUbigeoRepo) DefensoriaServiceInterface {
	return NewDefensoriaService(defRepo, respRepo, carRepo, ubiRepo, testSisdnaCfg, zap.NewNop())
}

func sampleDefensoria() entities.Defensoria {
	return entities.Defensoria{
		CodigoDNA:    "15001",
		Nombre:       "DEMUNA LIMA",
		TipoCodigo:   "t1",
		UbigeoCodigo: "150101",
		Direccion:    sql.NullString{String: "Av. Principal 100", Valid: true},
		EstadoCodigo: "b",
	}
}

func TestDefensoriaSearchCountErrorPropagates(t *testing.T) {
	defRepo := &mockDefensoriaRepo{countErr: errors.New("connection refused")}
	svc := newDefensoriaServiceForTest(defRepo, &mockResponsableRepo{}, &mockCaracteristicaRepo{}, &mockUbigeoRepo{})

	_, _, err := svc.Search(context.Background(), entities.DefensoriaFilter{}, false)
	require.Error(t, err)
	assert.Zero(t, defRepo.listCalls)
}

func TestDefensoriaSearchZeroTotalShortCircuits(t *testing.T) {
	defRepo := &mockDefensoriaRepo{total: 0}
	svc := newDefensoriaServiceForTest(defRepo, &mockResponsableRepo{}, &mockCaracteristicaRepo{}, &mockUbigeoRepo{})

	page, total, err := svc.Search(context.Background(), entities.DefensoriaFilter{Ubigeo: "990101"}, false)
	require.NoError(t, err)
	assert.Empty(t, page)
	assert.Zero(t, total)
	assert.Zero(t, defRepo.listCalls)
}

func TestDefensoriaSearchDenormalizesPage(t *testing.T) {
	defRepo := &mockDefensoriaRepo{total: 1, defensorias: []entities.Defensoria{sampleDefensoria()}}
	carRepo := &mockCaracteristicaRepo{valores: map[string]string{"t1": "Municipal", "b": "Acreditada"}}
	ubiRepo := &mockUbigeoRepo{nombres: map[string]string{
		"150000": "Lima",
		"150100": "Lima",
		"150101": "Lima Cercado",
	}}
	svc := newDefensoriaServiceForTest(defRepo, &mockResponsableRepo{}, carRepo, ubiRepo)

	page, total, err := svc.Search(context.Background(), entities.DefensoriaFilter{}, false)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), total)
	require.Len(t, page, 1)

	row := page[0]
	assert.Equal(t, "Municipal", row.TipoDemuna)
	assert.Equal(t, "Acreditada", row.EstadoAcreditacion)
	assert.Equal(t, "Lima", row.Departamento)
	assert.Equal(t, "Lima", row.Provincia)
	assert.Equal(t, "Lima Cercado", row.Distrito)
	assert.Equal(t, "Av. Principal 100", row.Direccion)
	assert.Empty(t, row.SisdnaURL)
}

func TestDefensoriaSearchStaffGetsSisdnaURL(t *testing.T) {
	defRepo := &mockDefensoriaRepo{total: 1, defensorias: []entities.Defensoria{sampleDefensoria()}}
	svc := newDefensoriaServiceForTest(defRepo, &mockResponsableRepo{}, &mockCaracteristicaRepo{}, &mockUbigeoRepo{})

	page, _, err := svc.Search(context.Background(), entities.DefensoriaFilter{}, true)
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, "https://sisdna.example.gob.pe/dna?codigoDna=15001", page[0].SisdnaURL)
}

func TestDefensoriaSearchDegradesOnLookupFailure(t *testing.T) {
	defRepo := &mockDefensoriaRepo{total: 1, defensorias: []entities.Defensoria{sampleDefensoria()}}
	carRepo := &mockCaracteristicaRepo{err: errors.New("timeout")}
	ubiRepo := &mockUbigeoRepo{err: errors.New("timeout")}
	svc := newDefensoriaServiceForTest(defRepo, &mockResponsableRepo{}, carRepo, ubiRepo)

	page, _, err := svc.Search(context.Background(), entities.DefensoriaFilter{}, false)
	require.NoError(t, err)
	require.Len(t, page, 1)

	row := page[0]
	assert.Equal(t, "No especificado", row.TipoDemuna)
	assert.Equal(t, "No especificado", row.EstadoAcreditacion)
	assert.Equal(t, "Desconocido", row.Departamento)
	assert.Equal(t, "Desconocido", row.Distrito)
}

func TestDefensoriaSearchUnknownCodesFallBack(t *testing.T) {
	d := sampleDefensoria()
	d.TipoCodigo = "zz"
	d.Direccion = sql.NullString{}
	defRepo := &mockDefensoriaRepo{total: 1, defensorias: []entities.Defensoria{d}}
	svc := newDefensoriaServiceForTest(defRepo, &mockResponsableRepo{}, &mockCaracteristicaRepo{valores: map[string]string{}}, &mockUbigeoRepo{nombres: map[string]string{}})

	page, _, err := svc.Search(context.Background(), entities.DefensoriaFilter{}, false)
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, "No especificado", page[0].TipoDemuna)
	assert.Equal(t, "No especificada", page[0].Direccion)
	assert.Equal(t, "Desconocido", page[0].Departamento)
}

func TestDefensoriaSearchWarmCacheSkipsLookups(t *testing.T) {
	defRepo := &mockDefensoriaRepo{total: 1, defensorias: []entities.Defensoria{sampleDefensoria()}}
	carRepo := &mockCaracteristicaRepo{valores: map[string]string{"t1": "Municipal", "b": "Acreditada"}}
	ubiRepo := &mockUbigeoRepo{nombres: map[string]string{"150000": "Lima", "150100": "Lima", "150101": "Lima Cercado"}}
	svc := newDefensoriaServiceForTest(defRepo, &mockResponsableRepo{}, carRepo, ubiRepo)

	_, _, err := svc.Search(context.Background(), entities.DefensoriaFilter{}, false)
	require.NoError(t, err)
	first, firstUbi := carRepo.fetchCalls, ubiRepo.fetchCalls

	_, _, err = svc.Search(context.Background(), entities.DefensoriaFilter{}, false)
	require.NoError(t, err)
	assert.Equal(t, first, carRepo.fetchCalls)
	assert.Equal(t, firstUbi, ubiRepo.fetchCalls)
}

func TestLoadResponsablesMissingOfficeIsNil(t *testing.T) {
	designada := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	respRepo := &mockResponsableRepo{responsables: []entities.Responsable{{
		CodigoDNA:      "15001",
		Nombres:        "Maria",
		Apellidos:      "Quispe",
		FecDesignacion: sql.NullTime{Time: designada, Valid: true},
	}}}
	svc := newDefensoriaServiceForTest(&mockDefensoriaRepo{}, respRepo, &mockCaracteristicaRepo{}, &mockUbigeoRepo{})

	byCodigo, err := svc.LoadResponsables(context.Background(), []string{"15001", "15002"})
	require.NoError(t, err)
	require.Len(t, byCodigo, 2)

	require.NotNil(t, byCodigo["15001"])
	assert.Equal(t, "Maria", byCodigo["15001"].Nombres)
	assert.Equal(t, "2024-03-01", byCodigo["15001"].FecDesignacion)
	assert.Nil(t, byCodigo["15002"])
}

func TestLoadResponsablesErrorPropagates(t *testing.T) {
	respRepo := &mockResponsableRepo{err: errors.New("connection reset")}
	svc := newDefensoriaServiceForTest(&mockDefensoriaRepo{}, respRepo, &mockCaracteristicaRepo{}, &mockUbigeoRepo{})

	_, err := svc.LoadResponsables(context.Background(), []string{"15001"})
	assert.Error(t, err)
}

func TestDefensoriaSearchPageBeyondLastIsEmptyNotError(t *testing.T) {
	defRepo := &mockDefensoriaRepo{total: 3, defensorias: nil}
	svc := newDefensoriaServiceForTest(defRepo, &mockResponsableRepo{}, &mockCaracteristicaRepo{}, &mockUbigeoRepo{})

	page, total, err := svc.Search(context.Background(), entities.DefensoriaFilter{Page: 99, PageSize: 25}, false)
	require.NoError(t, err)
	assert.Equal(t, uint64(3), total)
	assert.Empty(t, page)
	assert.Equal(t, 1, defRepo.listCalls)
}
