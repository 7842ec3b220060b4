package services

import (
	"context"
	"encoding/json"
	"testing"

	"sisdna-portal/internal/entities"
	apperrors "sisdna-portal/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newUbigeoServiceForTest(ubiRepo *mockUbigeoRepo) UbigeoServiceInterface {
	return NewUbigeoService(ubiRepo, newMissDictionaryCache(), zap.NewNop())
}

func TestUbigeoCascadingLists(t *testing.T) {
	ubiRepo := &mockUbigeoRepo{porNivel: map[string][]entities.Ubigeo{
		"departamento": {{Codigo: "150000", Nombre: "Lima"}},
		"provincia":    {{Codigo: "150100", Nombre: "Lima", CodigoPadre: "150000"}},
		"distrito":     {{Codigo: "150101", Nombre: "Lima Cercado", CodigoPadre: "150100"}},
	}}
	svc := newUbigeoServiceForTest(ubiRepo)

	departamentos, err := svc.ListDepartamentos(context.Background())
	require.NoError(t, err)
	require.Len(t, departamentos, 1)

	provincias, err := svc.ListProvincias(context.Background(), "150000")
	require.NoError(t, err)
	require.Len(t, provincias, 1)
	assert.Equal(t, "150100", provincias[0].Codigo)

	distritos, err := svc.ListDistritos(context.Background(), "150100")
	require.NoError(t, err)
	require.Len(t, distritos, 1)
	assert.Equal(t, "Lima Cercado", distritos[0].Nombre)
}

func TestUbigeoListRejectsWrongLevel(t *testing.T) {
	svc := newUbigeoServiceForTest(&mockUbigeoRepo{})

	_, err := svc.ListProvincias(context.Background(), "150100")
	var invalid *apperrors.InvalidInputError
	assert.ErrorAs(t, err, &invalid)

	_, err = svc.ListDistritos(context.Background(), "150000")
	assert.ErrorAs(t, err, &invalid)
}

func TestUbigeoRegionInfoByLevel(t *testing.T) {
	ubiRepo := &mockUbigeoRepo{nombres: map[string]string{
		"150000": "Lima",
		"150100": "Lima",
		"150101": "Lima Cercado",
	}}
	svc := newUbigeoServiceForTest(ubiRepo)

	region, err := svc.RegionInfo(context.Background(), "150000")
	require.NoError(t, err)
	assert.Equal(t, "Lima", region.Departamento)
	assert.Equal(t, "Desconocido", region.Provincia)
	assert.Equal(t, "Desconocido", region.Distrito)

	region, err = svc.RegionInfo(context.Background(), "150101")
	require.NoError(t, err)
	assert.Equal(t, "Lima Cercado", region.Distrito)
}

func TestUbigeoRegionInfoMarshalsLowercaseKeys(t *testing.T) {
	ubiRepo := &mockUbigeoRepo{nombres: map[string]string{
		"150000": "Lima",
		"150100": "Lima",
		"150101": "Lima Cercado",
	}}
	svc := newUbigeoServiceForTest(ubiRepo)

	region, err := svc.RegionInfo(context.Background(), "150101")
	require.NoError(t, err)

	payload, err := json.Marshal(region)
	require.NoError(t, err)
	assert.JSONEq(t, `{"departamento":"Lima","provincia":"Lima","distrito":"Lima Cercado"}`, string(payload))
}

func TestUbigeoRegionInfoUnknownCode(t *testing.T) {
	svc := newUbigeoServiceForTest(&mockUbigeoRepo{nombres: map[string]string{}})

	_, err := svc.RegionInfo(context.Background(), "990101")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
