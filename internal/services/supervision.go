package services

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"sisdna-portal/internal/cache"
	"sisdna-portal/internal/dto"
	"sisdna-portal/internal/entities"
	"sisdna-portal/internal/repositories"
	"sisdna-portal/pkg/config"
	"sisdna-portal/pkg/utils"

	"github.com/aarondl/null/v8"
	"go.uber.org/zap"
)

type SupervisionServiceInterface interface {
	Search(ctx context.Context, filter entities.SupervisionFilter) ([]dto.SupervisionDTO, uint64, error)
	FindByNid(ctx context.Context, nid uint64) (*dto.SupervisionDTO, error)
	ListSupervisores(ctx context.Context) ([]entities.Supervisor, error)
	ListModalidades(ctx context.Context) ([]entities.Modalidad, error)
}

type SupervisionService struct {
	supervisionRepository repositories.SupervisionRepositoryInterface
	defensoriaRepository  repositories.DefensoriaRepositoryInterface
	seguimientoRepository repositories.SeguimientoRepositoryInterface
	fichaRepository       repositories.FichaRepositoryInterface
	supervisorRepository  repositories.SupervisorRepositoryInterface
	modalidadRepository   repositories.ModalidadRepositoryInterface
	cierreTipoRepository  repositories.CierreTipoRepositoryInterface

	regions      *regionResolver
	supervisores *cache.LookupCache
	modalidades  *cache.LookupCache
	cierreTipos  *cache.LookupCache
	dictionaries *cache.DictionaryCache

	sisdnaCfg *config.SisdnaConfig
	logger    *zap.Logger
}

func NewSupervisionService(
	supervisionRepository repositories.SupervisionRepositoryInterface,
	defensoriaRepository repositories.DefensoriaRepositoryInterface,
	seguimientoRepository repositories.SeguimientoRepositoryInterface,
	fichaRepository repositories.FichaRepositoryInterface,
	supervisorRepository repositories.SupervisorRepositoryInterface,
	modalidadRepository repositories.ModalidadRepositoryInterface,
	cierreTipoRepository repositories.CierreTipoRepositoryInterface,
	ubigeoRepository repositories.UbigeoRepositoryInterface,
	dictionaries *cache.DictionaryCache,
	sisdnaCfg *config.SisdnaConfig,
	logger *zap.Logger,
) SupervisionServiceInterface {
	return &SupervisionService{
		supervisionRepository: supervisionRepository,
		defensoriaRepository:  defensoriaRepository,
		seguimientoRepository: seguimientoRepository,
		fichaRepository:       fichaRepository,
		supervisorRepository:  supervisorRepository,
		modalidadRepository:   modalidadRepository,
		cierreTipoRepository:  cierreTipoRepository,
		regions:               newRegionResolver(ubigeoRepository),
		supervisores:          cache.NewLookupCache(),
		modalidades:           cache.NewLookupCache(),
		cierreTipos:           cache.NewLookupCache(),
		dictionaries:          dictionaries,
		sisdnaCfg:             sisdnaCfg,
		logger:                logger,
	}
}

// Search validates the date range, resolves an active location filter into
// office codes, then runs the count-and-page sequence. An office-code set
// that resolves empty short-circuits to an empty result without touching
// the supervisions table.
func (s *SupervisionService) Search(ctx context.Context, filter entities.SupervisionFilter) ([]dto.SupervisionDTO, uint64, error) {
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
			return []dto.SupervisionDTO{}, 0, nil
		}
		codigosDNA = codigos
	}

	total, err := s.supervisionRepository.Count(ctx, filter, codigosDNA)
	if err != nil {
		s.logger.Error("supervisiones count failed", zap.Error(err))
		return nil, 0, err
	}
	if total == 0 {
		return []dto.SupervisionDTO{}, 0, nil
	}

	limit := uint64(filter.PageSize)
	offset := uint64((filter.Page - 1) * filter.PageSize)
	supervisiones, err := s.supervisionRepository.List(ctx, filter, codigosDNA, limit, offset)
	if err != nil {
		s.logger.Error("supervisiones list failed", zap.Error(err))
		return nil, 0, err
	}

	return s.denormalize(ctx, supervisiones), total, nil
}

// FindByNid loads a single supervision with the same denormalization as a
// search page.
func (s *SupervisionService) FindByNid(ctx context.Context, nid uint64) (*dto.SupervisionDTO, error) {
	sv, err := s.supervisionRepository.FindByNid(ctx, nid)
	if err != nil {
		return nil, err
	}
	page := s.denormalize(ctx, []entities.Supervision{*sv})
	return &page[0], nil
}

// pageLookups holds every batch resolved for one page of supervisions.
type pageLookups struct {
	supervisores map[string]string
	modalidades  map[string]string
	cierreTipos  map[string]string
	nombres      map[string]string
	regions      map[string]Region
	seguimientos map[uint64]entities.Seguimiento
	fichas       map[uint64]string
}

func (s *SupervisionService) denormalize(ctx context.Context, supervisiones []entities.Supervision) []dto.SupervisionDTO {
	nids := make([]uint64, 0, len(supervisiones))
	supervisorSet := make(map[string]bool)
	modalidadSet := make(map[string]bool)
	codigoSet := make(map[string]bool)
	for _, sv := range supervisiones {
		nids = append(nids, sv.NidSupervision)
		if sv.CodigoSupervisor.Valid {
			supervisorSet[strconv.FormatInt(sv.CodigoSupervisor.Int64, 10)] = true
		}
		if sv.NidModalidad.Valid {
			modalidadSet[strconv.FormatInt(sv.NidModalidad.Int64, 10)] = true
		}
		codigoSet[sv.CodigoDNA] = true
	}
	codigosDNA := keysOf(codigoSet)

	lookups := pageLookups{}
	var wg sync.WaitGroup
	run := func(name string, fn func() error) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := fn(); err != nil {
				s.logger.Warn("supervision lookup degraded", zap.String("lookup", name), zap.Error(err))
			}
		}()
	}

	run("supervisores", func() error {
		var err error
		lookups.supervisores, err = s.resolveSupervisores(ctx, keysOf(supervisorSet))
		return err
	})
	run("modalidades", func() error {
		var err error
		lookups.modalidades, err = s.resolveModalidades(ctx, keysOf(modalidadSet))
		return err
	})
	run("seguimientos", func() error {
		seguimientos, err := s.seguimientoRepository.ListByNids(ctx, nids)
		if err != nil {
			return err
		}
		lookups.seguimientos = make(map[uint64]entities.Seguimiento, len(seguimientos))
		for _, sg := range seguimientos {
			lookups.seguimientos[sg.NidSupervision] = sg
		}
		return nil
	})
	run("fichas", func() error {
		var err error
		lookups.fichas, err = s.fichaRepository.ListURLsByNids(ctx, nids)
		return err
	})
	run("defensorias", func() error {
		var err error
		lookups.nombres, lookups.regions, err = resolveOffices(ctx, s.defensoriaRepository, s.regions, codigosDNA)
		return err
	})
	wg.Wait()

	// Closure types only become resolvable once the seguimientos are in.
	cierreSet := make(map[string]bool)
	for _, sg := range lookups.seguimientos {
		if sg.NidModalidadCierre.Valid {
			cierreSet[strconv.FormatInt(sg.NidModalidadCierre.Int64, 10)] = true
		}
	}
	var err error
	lookups.cierreTipos, err = s.resolveCierreTipos(ctx, keysOf(cierreSet))
	if err != nil {
		s.logger.Warn("supervision lookup degraded", zap.String("lookup", "cierre_tipos"), zap.Error(err))
	}

	page := make([]dto.SupervisionDTO, 0, len(supervisiones))
	for _, sv := range supervisiones {
		page = append(page, s.toDTO(sv, lookups))
	}
	return page
}

func (s *SupervisionService) toDTO(sv entities.Supervision, lookups pageLookups) dto.SupervisionDTO {
	row := dto.SupervisionDTO{
		NidSupervision: sv.NidSupervision,
		CodigoDNA:      sv.CodigoDNA,
		Fecha:          sv.Fecha.Format("2006-01-02"),
		Supervisor:     fallbackSupervisor,
		Modalidad:      fallbackGenerico,
		NombreDemuna:   nameOr(lookups.nombres, sv.CodigoDNA, fallbackGenerico),
		SisdnaURL:      fmt.Sprintf("%s?codigoDna=%s", s.sisdnaCfg.CaseURL, sv.CodigoDNA),
	}

	if sv.CodigoSupervisor.Valid {
		row.Supervisor = nameOr(lookups.supervisores, strconv.FormatInt(sv.CodigoSupervisor.Int64, 10), fallbackSupervisor)
	}
	if sv.NidModalidad.Valid {
		row.Modalidad = nameOr(lookups.modalidades, strconv.FormatInt(sv.NidModalidad.Int64, 10), fallbackGenerico)
	}

	region, ok := lookups.regions[sv.CodigoDNA]
	if !ok {
		region = Region{Departamento: fallbackRegion, Provincia: fallbackRegion, Distrito: fallbackRegion}
	}
	row.Departamento = region.Departamento
	row.Provincia = region.Provincia
	row.Distrito = region.Distrito

	if url, ok := lookups.fichas[sv.NidSupervision]; ok {
		row.Ficha = null.StringFrom(url)
	}
	if sg, ok := lookups.seguimientos[sv.NidSupervision]; ok {
		row.DocSeguimiento = null.StringFromPtr(utils.NullStringToPtr(sg.InformeSeguimiento))
		row.Subsanacion = null.BoolFromPtr(utils.NullBoolToPtr(sg.Subsanacion))
		row.DocReiterativo = null.StringFromPtr(utils.NullStringToPtr(sg.OficioReiterativo))
		row.DocOCI = null.StringFromPtr(utils.NullStringToPtr(sg.OficioOCI))
		if sg.FechaCierre.Valid {
			row.FechaCierre = null.StringFrom(sg.FechaCierre.Time.Format("2006-01-02"))
		}
		row.DocCierre = null.StringFromPtr(utils.NullStringToPtr(sg.ProveidoCierre))
		if sg.NidModalidadCierre.Valid {
			tipo := nameOr(lookups.cierreTipos, strconv.FormatInt(sg.NidModalidadCierre.Int64, 10), fallbackGenerico)
			row.TipoCierre = null.StringFrom(tipo)
		}
	}
	return row
}

func (s *SupervisionService) resolveSupervisores(ctx context.Context, codigos []string) (map[string]string, error) {
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

func (s *SupervisionService) resolveModalidades(ctx context.Context, nids []string) (map[string]string, error) {
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

func (s *SupervisionService) resolveCierreTipos(ctx context.Context, codigos []string) (map[string]string, error) {
	return s.cierreTipos.Resolve(ctx, codigos, func(ctx context.Context, missing []string) (map[string]string, error) {
		ids := make([]uint64, 0, len(missing))
		for _, raw := range missing {
			if id, err := strconv.ParseUint(raw, 10, 64); err == nil {
				ids = append(ids, id)
			}
		}
		tipos, err := s.cierreTipoRepository.GetByCodigos(ctx, ids)
		if err != nil {
			return nil, err
		}
		fetched := make(map[string]string, len(tipos))
		for _, t := range tipos {
			fetched[strconv.FormatUint(t.Codigo, 10)] = t.Nombre
		}
		return fetched, nil
	})
}

// ListSupervisores serves the filter dropdown, cached as a whole dictionary.
func (s *SupervisionService) ListSupervisores(ctx context.Context) ([]entities.Supervisor, error) {
	const key = "dict:supervisores"
	var supervisores []entities.Supervisor
	if s.dictionaries.Get(ctx, key, &supervisores) {
		return supervisores, nil
	}
	supervisores, err := s.supervisorRepository.List(ctx)
	if err != nil {
		return nil, err
	}
	s.dictionaries.Set(ctx, key, supervisores)
	return supervisores, nil
}

func (s *SupervisionService) ListModalidades(ctx context.Context) ([]entities.Modalidad, error) {
	const key = "dict:modalidades"
	var modalidades []entities.Modalidad
	if s.dictionaries.Get(ctx, key, &modalidades) {
		return modalidades, nil
	}
	modalidades, err := s.modalidadRepository.List(ctx)
	if err != nil {
		return nil, err
	}
	s.dictionaries.Set(ctx, key, modalidades)
	return modalidades, nil
}

func keysOf(set map[string]bool) []string {
	keys := make([]string, 0, len(set))
	for key := range set {
		keys = append(keys, key)
	}
	return keys
}
