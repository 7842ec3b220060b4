package repositories

import (
	"strings"
	"testing"
	"time"

	"sisdna-portal/internal/entities"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// whereOf extracts the WHERE clause and args of a built query so the count
// and data variants can be compared predicate for predicate.
func whereOf(t *testing.T, query string, args []interface{}) (string, []interface{}) {
	t.Helper()
	idx := strings.Index(query, "WHERE")
	if idx < 0 {
		return "", args
	}
	clause := query[idx:]
	if cut := strings.Index(clause, " ORDER BY"); cut >= 0 {
		clause = clause[:cut]
	}
	if cut := strings.Index(clause, " LIMIT"); cut >= 0 {
		clause = clause[:cut]
	}
	return clause, args
}

func TestDefensoriaCountAndListShareWhereClause(t *testing.T) {
	filter := entities.DefensoriaFilter{
		Ubigeo:       "150100",
		CodigoDNA:    "15",
		Estado:       "b",
		EstadoSisdna: "1",
	}

	countQuery, countArgs, err := applyPredicates(psql.Select("COUNT(*)").From(defensoriaTable), defensoriaPredicates(filter)).ToSql()
	require.NoError(t, err)

	listQuery, listArgs, err := applyPredicates(
		psql.Select(strings.Split(defensoriaFields, ", ")...).From(defensoriaTable),
		defensoriaPredicates(filter),
	).OrderBy("codigo_dna").Limit(25).Offset(0).ToSql()
	require.NoError(t, err)

	countWhere, _ := whereOf(t, countQuery, countArgs)
	listWhere, _ := whereOf(t, listQuery, listArgs)

	assert.Equal(t, countWhere, listWhere)
	assert.Equal(t, countArgs, listArgs)
}

func TestDefensoriaPredicatesSkipEmptyAndAll(t *testing.T) {
	preds := defensoriaPredicates(entities.DefensoriaFilter{Estado: FilterAll, EstadoSisdna: ""})
	assert.Empty(t, preds)

	query, args, err := applyPredicates(psql.Select("COUNT(*)").From(defensoriaTable), preds).ToSql()
	require.NoError(t, err)
	assert.Equal(t, "SELECT COUNT(*) FROM defensorias", query)
	assert.Empty(t, args)
}

func TestDefensoriaPredicatesUbigeoGranularity(t *testing.T) {
	cases := []struct {
		ubigeo   string
		wantFrag string
		wantArg  interface{}
	}{
		{"150000", "nid_ubigeo LIKE $1", "15%"},
		{"150100", "nid_ubigeo LIKE $1", "1501%"},
		{"150101", "nid_ubigeo = $1", "150101"},
	}
	for _, tc := range cases {
		query, args, err := applyPredicates(
			psql.Select("COUNT(*)").From(defensoriaTable),
			defensoriaPredicates(entities.DefensoriaFilter{Ubigeo: tc.ubigeo}),
		).ToSql()
		require.NoError(t, err)
		assert.Contains(t, query, tc.wantFrag, "ubigeo %s", tc.ubigeo)
		require.Len(t, args, 1)
		assert.Equal(t, tc.wantArg, args[0])
	}
}

func TestSupervisionCountAndListShareWhereClause(t *testing.T) {
	desde := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	hasta := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)
	filter := entities.SupervisionFilter{
		CodigoDNA:    "020",
		Supervisor:   "7",
		FechaDesde:   &desde,
		FechaHasta:   &hasta,
		EstadoSisdna: "2",
	}
	codigos := []string{"02001", "02002"}

	countQuery, countArgs, err := applyPredicates(psql.Select("COUNT(*)").From(supervisionTable), supervisionPredicates(filter, codigos)).ToSql()
	require.NoError(t, err)

	listQuery, listArgs, err := applyPredicates(
		psql.Select(strings.Split(supervisionFields, ", ")...).From(supervisionTable),
		supervisionPredicates(filter, codigos),
	).OrderBy("fecha DESC", "nid_supervision DESC").Limit(25).Offset(0).ToSql()
	require.NoError(t, err)

	countWhere, _ := whereOf(t, countQuery, countArgs)
	listWhere, _ := whereOf(t, listQuery, listArgs)

	assert.Equal(t, countWhere, listWhere)
	assert.Equal(t, countArgs, listArgs)
}

func TestSupervisionPredicatesCodigoSet(t *testing.T) {
	// nil set: location filter inactive, no IN clause at all.
	preds := supervisionPredicates(entities.SupervisionFilter{}, nil)
	assert.Empty(t, preds)

	query, _, err := applyPredicates(
		psql.Select("COUNT(*)").From(supervisionTable),
		supervisionPredicates(entities.SupervisionFilter{}, []string{"02001"}),
	).ToSql()
	require.NoError(t, err)
	assert.Contains(t, query, "codigo_dna IN ($1)")
}

func TestPageRange(t *testing.T) {
	limit, offset := pageRange(1, 25)
	assert.Equal(t, uint64(25), limit)
	assert.Equal(t, uint64(0), offset)

	limit, offset = pageRange(3, 10)
	assert.Equal(t, uint64(10), limit)
	assert.Equal(t, uint64(20), offset)

	_, offset = pageRange(0, 25)
	assert.Equal(t, uint64(0), offset)
}

func TestDefensoriaPredicatesLayerAndClear(t *testing.T) {
	byDept := defensoriaPredicates(entities.DefensoriaFilter{Ubigeo: "150000"})
	require.Len(t, byDept, 1)

	byDeptAndEstado := defensoriaPredicates(entities.DefensoriaFilter{Ubigeo: "150000", Estado: "b"})
	require.Len(t, byDeptAndEstado, 2)

	query, args, err := applyPredicates(psql.Select("COUNT(*)").From(defensoriaTable), byDeptAndEstado).ToSql()
	require.NoError(t, err)
	assert.Contains(t, query, "nid_ubigeo LIKE $1")
	assert.Contains(t, query, "nid_estado = $2")
	assert.Equal(t, []interface{}{"15%", "b"}, args)

	cleared := defensoriaPredicates(entities.DefensoriaFilter{})
	assert.Empty(t, cleared)
}
