package services

import (
	"context"
	"database/sql"
	"strconv"
	"strings"
	"sync"
	"time"

	"sisdna-portal/internal/cache"
	"sisdna-portal/internal/dto"
	"sisdna-portal/internal/entities"
	"sisdna-portal/internal/repositories"
	"sisdna-portal/pkg/utils"

	"go.uber.org/zap"
)

// Display fallbacks when a row carries no sync state. The office screen
// historically shows the uppercase registry label, the supervision screen
// the generic one.
const (
	fallbackEstadoSyncDefensoria  = "NO ACTUALIZADA"
	fallbackEstadoSyncSupervision = "No especificado"
)

const supervisorDictTimeout = 3 * time.Second

// estadosRespaldo stands in when the sync-state table is unreachable.
var estadosRespaldo = []entities.SyncEstado{
	{Nid: "1", Nombre: "ACTUALIZADA"},
	{Nid: "2", Nombre: "NO ACTUALIZADA"},
	{Nid: "3", Nombre: "FALTANTE"},
}

// parseCampos splits the registry's comma-joined outdated-field annotation
// once, at the service boundary. Renderers receive a clean slice.
func parseCampos(raw sql.NullString) []string {
	if !raw.Valid || raw.String == "" {
		return []string{}
	}
	parts := strings.Split(raw.String, ",")
	campos := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			campos = append(campos, trimmed)
		}
	}
	return campos
}

type SyncDefensoriaServiceInterface interface {
	Search(ctx context.Context, filter entities.DefensoriaFilter) ([]dto.DefensoriaSyncDTO, uint64, error)
	ListEstados(ctx context.Context) ([]entities.SyncEstado, error)
}

type SyncDefensoriaService struct {
	defensoriaRepository repositories.DefensoriaRepositoryInterface
	syncEstadoRepository repositories.SyncEstadoRepositoryInterface
	regions              *regionResolver
	estados              *cache.LookupCache
	dictionaries         *cache.DictionaryCache
	logger               *zap.Logger
}

func NewSyncDefensoriaService(
	defensoriaRepository repositories.DefensoriaRepositoryInterface,
	syncEstadoRepository repositories.SyncEstadoRepositoryInterface,
	ubigeoRepository repositories.UbigeoRepositoryInterface,
	dictionaries *cache.DictionaryCache,
	logger *zap.Logger,
) SyncDefensoriaServiceInterface {
	return &SyncDefensoriaService{
		defensoriaRepository: defensoriaRepository,
		syncEstadoRepository: syncEstadoRepository,
		regions:              newRegionResolver(ubigeoRepository),
		estados:              cache.NewLookupCache(),
		dictionaries:         dictionaries,
		logger:               logger,
	}
}

func (s *SyncDefensoriaService) Search(ctx context.Context, filter entities.DefensoriaFilter) ([]dto.DefensoriaSyncDTO, uint64, error) {
	filter.Page, filter.PageSize = clampPaging(filter.Page, filter.PageSize)

	total, err := s.defensoriaRepository.Count(ctx, filter)
	if err != nil {
		s.logger.Error("sync defensorias count failed", zap.Error(err))
		return nil, 0, err
	}
	if total == 0 {
		return []dto.DefensoriaSyncDTO{}, 0, nil
	}

	limit := uint64(filter.PageSize)
	offset := uint64((filter.Page - 1) * filter.PageSize)
	defensorias, err := s.defensoriaRepository.List(ctx, filter, limit, offset)
	if err != nil {
		s.logger.Error("sync defensorias list failed", zap.Error(err))
		return nil, 0, err
	}

	districtCodes := make([]string, 0, len(defensorias))
	for _, d := range defensorias {
		districtCodes = append(districtCodes, d.UbigeoCodigo)
	}

	var (
		wg           sync.WaitGroup
		regions      map[string]Region
		estadoLabels map[string]string
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		var err error
		regions, err = s.regions.RegionsFor(ctx, districtCodes)
		if err != nil {
			s.logger.Warn("ubigeo lookup degraded", zap.Error(err))
		}
	}()
	go func() {
		defer wg.Done()
		var err error
		estadoLabels, err = s.resolveEstados(ctx)
		if err != nil {
			s.logger.Warn("sync estados lookup degraded", zap.Error(err))
		}
	}()
	wg.Wait()

	page := make([]dto.DefensoriaSyncDTO, 0, len(defensorias))
	for _, d := range defensorias {
		region, ok := regions[d.UbigeoCodigo]
		if !ok {
			region = Region{Departamento: fallbackRegion, Provincia: fallbackRegion, Distrito: fallbackRegion}
		}
		page = append(page, dto.DefensoriaSyncDTO{
			CodigoDNA:             d.CodigoDNA,
			Nombre:                d.Nombre,
			UbigeoCodigo:          d.UbigeoCodigo,
			Direccion:             stringOr(utils.NullStringToString(d.Direccion), fallbackDireccion),
			Telefono:              utils.NullStringToString(d.Telefono),
			Correo:                utils.NullStringToString(d.Correo),
			Departamento:          region.Departamento,
			Provincia:             region.Provincia,
			Distrito:              region.Distrito,
			EstadoSisdna:          nameOr(estadoLabels, utils.NullStringToString(d.EstadoSisdnaCodigo), fallbackEstadoSyncDefensoria),
			CamposDesactualizados: parseCampos(d.CamposDesactualizados),
		})
	}
	return page, total, nil
}

func (s *SyncDefensoriaService) resolveEstados(ctx context.Context) (map[string]string, error) {
	estados, err := s.ListEstados(ctx)
	if err != nil {
		return nil, err
	}
	labels := make(map[string]string, len(estados))
	for _, e := range estados {
		labels[e.Nid] = e.Nombre
	}
	return labels, nil
}

// ListEstados serves the sync-state filter dropdown. The table is tiny and
// nearly static, so it lives in the shared dictionary cache; when both the
// cache and the table are unreachable the fixed fallback list keeps the
// screen usable.
func (s *SyncDefensoriaService) ListEstados(ctx context.Context) ([]entities.SyncEstado, error) {
	const key = "dict:sincronizacion_estados"
	var estados []entities.SyncEstado
	if s.dictionaries.Get(ctx, key, &estados) {
		return estados, nil
	}
	estados, err := s.syncEstadoRepository.List(ctx)
	if err != nil {
		s.logger.Warn("sync estados table unreachable, using fallback list", zap.Error(err))
		return estadosRespaldo, nil
	}
	s.dictionaries.Set(ctx, key, estados)
	return estados, nil
}

type SyncSupervisionServiceInterface interface {
	Search(ctx context.Context, filter entities.SupervisionFilter) ([]dto.SupervisionSyncDTO, uint64, error)
}

type SyncSupervisionService struct {
	supervisionRepository repositories.SupervisionRepositoryInterface
	defensoriaRepository  repositories.DefensoriaRepositoryInterface
	supervisorRepository  repositories.SupervisorRepositoryInterface
	modalidadRepository   repositories.ModalidadRepositoryInterface
	syncDefensorias       SyncDefensoriaServiceInterface

	regions      *regionResolver
	supervisores *cache.LookupCache
	modalidades  *cache.LookupCache
	logger       *zap.Logger
}

func NewSyncSupervisionService(
	supervisionRepository repositories.SupervisionRepositoryInterface,
	defensoriaRepository repositories.DefensoriaRepositoryInterface,
	supervisorRepository repositories.SupervisorRepositoryInterface,
	modalidadRepository repositories.ModalidadRepositoryInterface,
	ubigeoRepository repositories.UbigeoRepositoryInterface,
	syncDefensorias SyncDefensoriaServiceInterface,
	logger *zap.Logger,
) SyncSupervisionServiceInterface {
	return &SyncSupervisionService{
		supervisionRepository: supervisionRepository,
		defensoriaRepository:  defensoriaRepository,
		supervisorRepository:  supervisorRepository,
		modalidadRepository:   modalidadRepository,
		syncDefensorias:       syncDefensorias,
		regions:               newRegionResolver(ubigeoRepository),
		supervisores:          cache.NewLookupCache(),
		modalidades:           cache.NewLookupCache(),
		logger:                logger,
	}
}

func (s *SyncSupervisionService) Search(ctx context.Context, filter entities.SupervisionFilter) ([]dto.SupervisionSyncDTO, uint64, error) {
	if err := validateFechaRange(filter); err != nil {
		return nil, 0, err
	}
	filter.Page, filter.PageSize = clampPaging(filter.Page, filter.PageSize)

	var codigosDNA []string
	if filter.Ubigeo != "" {
		codigos, err := s.defensoriaRepository.ListCodigosByUbigeo(ctx, filter.Ubigeo)
		if err != nil {
			s.logger.Error("ubigeo office lookup failed", zap.Error(err))
			return nil, 0, err
		}
		if len(codigos) == 0 {
			return []dto.SupervisionSyncDTO{}, 0, nil
		}
		codigosDNA = codigos
	}

	total, err := s.supervisionRepository.Count(ctx, filter, codigosDNA)
	if err != nil {
		s.logger.Error("sync supervisiones count failed", zap.Error(err))
		return nil, 0, err
	}
	if total == 0 {
		return []dto.SupervisionSyncDTO{}, 0, nil
	}

	limit := uint64(filter.PageSize)
	offset := uint64((filter.Page - 1) * filter.PageSize)
	supervisiones, err := s.supervisionRepository.List(ctx, filter, codigosDNA, limit, offset)
	if err != nil {
		s.logger.Error("sync supervisiones list failed", zap.Error(err))
		return nil, 0, err
	}

	return s.denormalize(ctx, supervisiones), total, nil
}

func (s *SyncSupervisionService) denormalize(ctx context.Context, supervisiones []entities.Supervision) []dto.SupervisionSyncDTO {
	supervisorSet := make(map[string]bool)
	modalidadSet := make(map[string]bool)
	codigoSet := make(map[string]bool)
	for _, sv := range supervisiones {
		if sv.CodigoSupervisor.Valid {
			supervisorSet[strconv.FormatInt(sv.CodigoSupervisor.Int64, 10)] = true
		}
		if sv.NidModalidad.Valid {
			modalidadSet[strconv.FormatInt(sv.NidModalidad.Int64, 10)] = true
		}
		codigoSet[sv.CodigoDNA] = true
	}

	var (
		wg           sync.WaitGroup
		supervisores map[string]string
		modalidades  map[string]string
		nombres      map[string]string
		regions      map[string]Region
		estadoLabels map[string]string
	)
	wg.Add(4)
	go func() {
		defer wg.Done()
		var err error
		supervisores, err = s.resolveSupervisores(ctx, keysOf(supervisorSet))
		if err != nil {
			s.logger.Warn("supervisores lookup degraded", zap.Error(err))
		}
	}()
	go func() {
		defer wg.Done()
		var err error
		modalidades, err = s.resolveModalidades(ctx, keysOf(modalidadSet))
		if err != nil {
			s.logger.Warn("modalidades lookup degraded", zap.Error(err))
		}
	}()
	go func() {
		defer wg.Done()
		var err error
		nombres, regions, err = resolveOffices(ctx, s.defensoriaRepository, s.regions, keysOf(codigoSet))
		if err != nil {
			s.logger.Warn("offices lookup degraded", zap.Error(err))
		}
	}()
	go func() {
		defer wg.Done()
		estados, err := s.syncDefensorias.ListEstados(ctx)
		if err != nil {
			s.logger.Warn("sync estados lookup degraded", zap.Error(err))
			estados = estadosRespaldo
		}
		estadoLabels = make(map[string]string, len(estados))
		for _, e := range estados {
			estadoLabels[e.Nid] = e.Nombre
		}
	}()
	wg.Wait()

	page := make([]dto.SupervisionSyncDTO, 0, len(supervisiones))
	for _, sv := range supervisiones {
		region, ok := regions[sv.CodigoDNA]
		if !ok {
			region = Region{Departamento: fallbackRegion, Provincia: fallbackRegion, Distrito: fallbackRegion}
		}
		row := dto.SupervisionSyncDTO{
			NidSupervision:        sv.NidSupervision,
			CodigoDNA:             sv.CodigoDNA,
			Fecha:                 sv.Fecha.Format("2006-01-02"),
			Supervisor:            fallbackSupervisor,
			Modalidad:             fallbackGenerico,
			NombreDemuna:          nameOr(nombres, sv.CodigoDNA, fallbackGenerico),
			Ubicacion:             region.Ubicacion(),
			EstadoSisdna:          nameOr(estadoLabels, utils.NullStringToString(sv.EstadoSisdnaCodigo), fallbackEstadoSyncSupervision),
			CamposDesactualizados: parseCampos(sv.CamposDesactualizados),
		}
		if sv.CodigoSupervisor.Valid {
			row.Supervisor = nameOr(supervisores, strconv.FormatInt(sv.CodigoSupervisor.Int64, 10), fallbackSupervisor)
		}
		if sv.NidModalidad.Valid {
			row.Modalidad = nameOr(modalidades, strconv.FormatInt(sv.NidModalidad.Int64, 10), fallbackGenerico)
		}
		page = append(page, row)
	}
	return page
}

// resolveSupervisores bounds the dictionary fetch: supervisors come from a
// foreign schema that has been observed to hang, so the lookup gets its own
// timeout and degrades to fallback labels when it expires.
func (s *SyncSupervisionService) resolveSupervisores(ctx context.Context, codigos []string) (map[string]string, error) {
	ctx, cancel := context.WithTimeout(ctx, supervisorDictTimeout)
	defer cancel()

	return s.supervisores.Resolve(ctx, codigos, func(ctx context.Context, missing []string) (map[string]string, error) {
		ids := make([]uint64, 0, len(missing))
		for _, raw := range missing {
			if id, err := strconv.ParseUint(raw, 10, 64); err == nil {
				ids = append(ids, id)
			}
		}
		supervisores, err := s.supervisorRepository.GetByCodigos(ctx, ids)
		if err != nil {
			return nil, err
		}
		fetched := make(map[string]string, len(supervisores))
		for _, sup := range supervisores {
			fetched[strconv.FormatUint(sup.Codigo, 10)] = sup.Nombre
		}
		return fetched, nil
	})
}

func (s *SyncSupervisionService) resolveModalidades(ctx context.Context, nids []string) (map[string]string, error) {
	return s.modalidades.Resolve(ctx, nids, func(ctx context.Context, missing []string) (map[string]string, error) {
		ids := make([]uint64, 0, len(missing))
		for _, raw := range missing {
			if id, err := strconv.ParseUint(raw, 10, 64); err == nil {
				ids = append(ids, id)
			}
		}
		modalidades, err := s.modalidadRepository.GetByNids(ctx, ids)
		if err != nil {
			return nil, err
		}
		fetched := make(map[string]string, len(modalidades))
		for _, m := range modalidades {
			fetched[strconv.FormatUint(m.Nid, 10)] = m.Nombre
		}
		return fetched, nil
	})
}
