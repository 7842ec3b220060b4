package services

import (
	"context"
	"strconv"
	"time"

	"sisdna-portal/internal/cache"
	"sisdna-portal/internal/entities"
	apperrors "sisdna-portal/pkg/errors"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// newMissDictionaryCache builds a DictionaryCache against an unreachable
// redis, so every Get is a miss and every Set a logged no-op.
func newMissDictionaryCache() *cache.DictionaryCache {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 10 * time.Millisecond,
	})
	return cache.NewDictionaryCache(client, zap.NewNop(), time.Minute)
}

type mockDefensoriaRepo struct {
	countCalls int
	listCalls  int

	total       uint64
	countErr    error
	defensorias []entities.Defensoria
	listErr     error

	codigosByUbigeo map[string][]string
	byCodigo        map[string]entities.Defensoria
}

func (m *mockDefensoriaRepo) Count(ctx context.Context, filter entities.DefensoriaFilter) (uint64, error) {
	m.countCalls++
	return m.total, m.countErr
}

func (m *mockDefensoriaRepo) List(ctx context.Context, filter entities.DefensoriaFilter, limit, offset uint64) ([]entities.Defensoria, error) {
	m.listCalls++
	return m.defensorias, m.listErr
}

func (m *mockDefensoriaRepo) FindByCodigo(ctx context.Context, codigoDNA string) (*entities.Defensoria, error) {
	d, ok := m.byCodigo[codigoDNA]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &d, nil
}

func (m *mockDefensoriaRepo) ListByCodigos(ctx context.Context, codigosDNA []string) ([]entities.Defensoria, error) {
	defensorias := make([]entities.Defensoria, 0, len(codigosDNA))
	for _, codigo := range codigosDNA {
		if d, ok := m.byCodigo[codigo]; ok {
			defensorias = append(defensorias, d)
		}
	}
	return defensorias, nil
}

func (m *mockDefensoriaRepo) ListCodigosByUbigeo(ctx context.Context, ubigeoCode string) ([]string, error) {
	return m.codigosByUbigeo[ubigeoCode], nil
}

type mockResponsableRepo struct {
	responsables []entities.Responsable
	err          error
}

func (m *mockResponsableRepo) ListLatestByCodigos(ctx context.Context, codigosDNA []string) ([]entities.Responsable, error) {
	return m.responsables, m.err
}

type mockCaracteristicaRepo struct {
	fetchCalls int
	valores    map[string]string
	err        error
}

func (m *mockCaracteristicaRepo) GetByClaves(ctx context.Context, claves []string) ([]entities.Caracteristica, error) {
	m.fetchCalls++
	if m.err != nil {
		return nil, m.err
	}
	caracteristicas := make([]entities.Caracteristica, 0, len(claves))
	for _, clave := range claves {
		if valor, ok := m.valores[clave]; ok {
			caracteristicas = append(caracteristicas, entities.Caracteristica{Clave: clave, Valor: valor})
		}
	}
	return caracteristicas, nil
}

type mockUbigeoRepo struct {
	fetchCalls int
	nombres    map[string]string
	porNivel   map[string][]entities.Ubigeo
	err        error
}

func (m *mockUbigeoRepo) GetByCodes(ctx context.Context, codes []string) ([]entities.Ubigeo, error) {
	m.fetchCalls++
	if m.err != nil {
		return nil, m.err
	}
	ubigeos := make([]entities.Ubigeo, 0, len(codes))
	for _, code := range codes {
		if nombre, ok := m.nombres[code]; ok {
			ubigeos = append(ubigeos, entities.Ubigeo{Codigo: code, Nombre: nombre})
		}
	}
	return ubigeos, nil
}

func (m *mockUbigeoRepo) ListByLevel(ctx context.Context, nivel string) ([]entities.Ubigeo, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.porNivel[nivel], nil
}

func (m *mockUbigeoRepo) ListByParent(ctx context.Context, nivel string, codigoPadre string) ([]entities.Ubigeo, error) {
	if m.err != nil {
		return nil, m.err
	}
	filtered := make([]entities.Ubigeo, 0)
	for _, u := range m.porNivel[nivel] {
		if u.CodigoPadre == codigoPadre {
			filtered = append(filtered, u)
		}
	}
	return filtered, nil
}

func (m *mockUbigeoRepo) FindByCodigo(ctx context.Context, codigo string) (*entities.Ubigeo, error) {
	if nombre, ok := m.nombres[codigo]; ok {
		return &entities.Ubigeo{Codigo: codigo, Nombre: nombre}, nil
	}
	return nil, apperrors.ErrNotFound
}

type mockSupervisionRepo struct {
	total         uint64
	countErr      error
	supervisiones []entities.Supervision
	listErr       error

	countCalls int
	listCalls  int
}

func (m *mockSupervisionRepo) Count(ctx context.Context, filter entities.SupervisionFilter, codigosDNA []string) (uint64, error) {
	m.countCalls++
	return m.total, m.countErr
}

func (m *mockSupervisionRepo) List(ctx context.Context, filter entities.SupervisionFilter, codigosDNA []string, limit, offset uint64) ([]entities.Supervision, error) {
	m.listCalls++
	return m.supervisiones, m.listErr
}

func (m *mockSupervisionRepo) FindByNid(ctx context.Context, nid uint64) (*entities.Supervision, error) {
	for _, sv := range m.supervisiones {
		if sv.NidSupervision == nid {
			return &sv, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

type mockSeguimientoRepo struct {
	seguimientos []entities.Seguimiento
	err          error
}

func (m *mockSeguimientoRepo) ListByNids(ctx context.Context, nids []uint64) ([]entities.Seguimiento, error) {
	return m.seguimientos, m.err
}

type mockFichaRepo struct {
	urls map[uint64]string
	err  error
}

func (m *mockFichaRepo) ListURLsByNids(ctx context.Context, nids []uint64) (map[uint64]string, error) {
	return m.urls, m.err
}

type mockSupervisorRepo struct {
	supervisores []entities.Supervisor
	err          error
}

func (m *mockSupervisorRepo) List(ctx context.Context) ([]entities.Supervisor, error) {
	return m.supervisores, m.err
}

func (m *mockSupervisorRepo) GetByCodigos(ctx context.Context, codigos []uint64) ([]entities.Supervisor, error) {
	if m.err != nil {
		return nil, m.err
	}
	filtered := make([]entities.Supervisor, 0, len(codigos))
	for _, codigo := range codigos {
		for _, s := range m.supervisores {
			if s.Codigo == codigo {
				filtered = append(filtered, s)
			}
		}
	}
	return filtered, nil
}

type mockModalidadRepo struct {
	modalidades []entities.Modalidad
	err         error
}

func (m *mockModalidadRepo) List(ctx context.Context) ([]entities.Modalidad, error) {
	return m.modalidades, m.err
}

func (m *mockModalidadRepo) GetByNids(ctx context.Context, nids []uint64) ([]entities.Modalidad, error) {
	if m.err != nil {
		return nil, m.err
	}
	filtered := make([]entities.Modalidad, 0, len(nids))
	for _, nid := range nids {
		for _, mo := range m.modalidades {
			if mo.Nid == nid {
				filtered = append(filtered, mo)
			}
		}
	}
	return filtered, nil
}

type mockSyncEstadoRepo struct {
	estados []entities.SyncEstado
	err     error
}

func (m *mockSyncEstadoRepo) List(ctx context.Context) ([]entities.SyncEstado, error) {
	return m.estados, m.err
}

type mockCierreTipoRepo struct {
	tipos []entities.CierreTipo
	err   error
}

func (m *mockCierreTipoRepo) GetByCodigos(ctx context.Context, codigos []uint64) ([]entities.CierreTipo, error) {
	if m.err != nil {
		return nil, m.err
	}
	filtered := make([]entities.CierreTipo, 0, len(codigos))
	for _, codigo := range codigos {
		for _, t := range m.tipos {
			if t.Codigo == codigo {
				filtered = append(filtered, t)
			}
		}
	}
	return filtered, nil
}

type mockReporteRepo struct {
	total     uint64
	porEstado map[string]uint64
	porDepto  map[string]uint64
	porTipo   map[string]uint64
	err       error
}

func (m *mockReporteRepo) CountTotal(ctx context.Context, filter entities.DefensoriaFilter) (uint64, error) {
	return m.total, m.err
}

func (m *mockReporteRepo) CountByEstado(ctx context.Context, filter entities.DefensoriaFilter) (map[string]uint64, error) {
	return m.porEstado, m.err
}

func (m *mockReporteRepo) CountByDepartamento(ctx context.Context, filter entities.DefensoriaFilter) (map[string]uint64, error) {
	return m.porDepto, m.err
}

func (m *mockReporteRepo) CountByTipo(ctx context.Context, filter entities.DefensoriaFilter) (map[string]uint64, error) {
	return m.porTipo, m.err
}

type mockUserRepo struct {
	users map[string]entities.User
}

func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) (*entities.User, error) {
	u, ok := m.users[email]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &u, nil
}

func (m *mockUserRepo) FindByID(ctx context.Context, id uint64) (*entities.User, error) {
	for _, u := range m.users {
		if u.ID == id {
			return &u, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

// mockCacheRepo is an in-memory stand-in for the redis counter store.
type mockCacheRepo struct {
	values map[string]string
	counts map[string]int64
}

func newMockCacheRepo() *mockCacheRepo {
	return &mockCacheRepo{values: map[string]string{}, counts: map[string]int64{}}
}

func (m *mockCacheRepo) Get(ctx context.Context, key string) (string, error) {
	if v, ok := m.values[key]; ok {
		return v, nil
	}
	return "", redis.Nil
}

func (m *mockCacheRepo) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	m.values[key] = value.(string)
	return nil
}

func (m *mockCacheRepo) Del(ctx context.Context, keys ...string) error {
	for _, key := range keys {
		delete(m.values, key)
		delete(m.counts, key)
	}
	return nil
}

func (m *mockCacheRepo) Incr(ctx context.Context, key string) (int64, error) {
	m.counts[key]++
	m.values[key] = strconv.FormatInt(m.counts[key], 10)
	return m.counts[key], nil
}

func (m *mockCacheRepo) Expire(ctx context.Context, key string, expiration time.Duration) (bool, error) {
	return true, nil
}
