package services

import (
	"context"
	"time"

	"sisdna-portal/internal/cache"
	"sisdna-portal/internal/entities"
	"sisdna-portal/internal/repositories"
	apperrors "sisdna-portal/pkg/errors"
	"sisdna-portal/pkg/ubigeo"

	"go.uber.org/zap"
)

// Cascading selector levels as stored in the ubigeos table.
const (
	nivelDepartamento = "departamento"
	nivelProvincia    = "provincia"
	nivelDistrito     = "distrito"
)

const ubigeoQueryTimeout = 5 * time.Second

type UbigeoServiceInterface interface {
	ListDepartamentos(ctx context.Context) ([]entities.Ubigeo, error)
	ListProvincias(ctx context.Context, departamento string) ([]entities.Ubigeo, error)
	ListDistritos(ctx context.Context, provincia string) ([]entities.Ubigeo, error)
	RegionInfo(ctx context.Context, codigo string) (*Region, error)
}

type UbigeoService struct {
	ubigeoRepository repositories.UbigeoRepositoryInterface
	regions          *regionResolver
	dictionaries     *cache.DictionaryCache
	logger           *zap.Logger
}

func NewUbigeoService(
	ubigeoRepository repositories.UbigeoRepositoryInterface,
	dictionaries *cache.DictionaryCache,
	logger *zap.Logger,
) UbigeoServiceInterface {
	return &UbigeoService{
		ubigeoRepository: ubigeoRepository,
		regions:          newRegionResolver(ubigeoRepository),
		dictionaries:     dictionaries,
		logger:           logger,
	}
}

// ListDepartamentos serves the top of the cascading selector. The list is
// national and static, so it sits in the shared dictionary cache.
func (s *UbigeoService) ListDepartamentos(ctx context.Context) ([]entities.Ubigeo, error) {
	ctx, cancel := context.WithTimeout(ctx, ubigeoQueryTimeout)
	defer cancel()

	const key = "dict:departamentos"
	var departamentos []entities.Ubigeo
	if s.dictionaries.Get(ctx, key, &departamentos) {
		return departamentos, nil
	}
	departamentos, err := s.ubigeoRepository.ListByLevel(ctx, nivelDepartamento)
	if err != nil {
		s.logger.Error("departamentos list failed", zap.Error(err))
		return nil, err
	}
	s.dictionaries.Set(ctx, key, departamentos)
	return departamentos, nil
}

func (s *UbigeoService) ListProvincias(ctx context.Context, departamento string) ([]entities.Ubigeo, error) {
	if ubigeo.LevelOf(departamento) != ubigeo.LevelDepartment {
		return nil, apperrors.NewInvalidInputError("codigo de departamento invalido: %q", departamento)
	}
	ctx, cancel := context.WithTimeout(ctx, ubigeoQueryTimeout)
	defer cancel()

	return s.ubigeoRepository.ListByParent(ctx, nivelProvincia, departamento)
}

func (s *UbigeoService) ListDistritos(ctx context.Context, provincia string) ([]entities.Ubigeo, error) {
	if ubigeo.LevelOf(provincia) != ubigeo.LevelProvince {
		return nil, apperrors.NewInvalidInputError("codigo de provincia invalido: %q", provincia)
	}
	ctx, cancel := context.WithTimeout(ctx, ubigeoQueryTimeout)
	defer cancel()

	return s.ubigeoRepository.ListByParent(ctx, nivelDistrito, provincia)
}

// RegionInfo resolves the full region triple of any code; names the code
// does not reach (a department code has no province or district) come back
// as the unknown label.
func (s *UbigeoService) RegionInfo(ctx context.Context, codigo string) (*Region, error) {
	ctx, cancel := context.WithTimeout(ctx, ubigeoQueryTimeout)
	defer cancel()

	level := ubigeo.LevelOf(codigo)
	codes := []string{ubigeo.DepartmentCode(codigo)}
	if level >= ubigeo.LevelProvince {
		codes = append(codes, ubigeo.ProvinceCode(codigo))
	}
	if level == ubigeo.LevelDistrict {
		codes = append(codes, codigo)
	}

	names, err := s.regions.resolveNames(ctx, codes)
	if err != nil {
		s.logger.Error("region info lookup failed", zap.String("codigo", codigo), zap.Error(err))
		return nil, err
	}
	if len(names) == 0 {
		return nil, apperrors.ErrNotFound
	}

	region := Region{Departamento: fallbackRegion, Provincia: fallbackRegion, Distrito: fallbackRegion}
	region.Departamento = nameOr(names, ubigeo.DepartmentCode(codigo), fallbackRegion)
	if level >= ubigeo.LevelProvince {
		region.Provincia = nameOr(names, ubigeo.ProvinceCode(codigo), fallbackRegion)
	}
	if level == ubigeo.LevelDistrict {
		region.Distrito = nameOr(names, codigo, fallbackRegion)
	}
	return &region, nil
}
