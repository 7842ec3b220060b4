package repositories

import (
	"context"
	"errors"
	"strings"

	"sisdna-portal/internal/entities"
	apperrors "sisdna-portal/pkg/errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	supervisionTable  = "supervisiones"
	supervisionFields = "nid_supervision, codigo_dna, fecha, codigo_supervisor, nid_modalidad, nid_estado_sisdna, txt_campos_desactualizados"
)

type SupervisionRepositoryInterface interface {
	Count(ctx context.Context, filter entities.SupervisionFilter, codigosDNA []string) (uint64, error)
	List(ctx context.Context, filter entities.SupervisionFilter, codigosDNA []string, limit, offset uint64) ([]entities.Supervision, error)
	FindByNid(ctx context.Context, nid uint64) (*entities.Supervision, error)
}

type supervisionRepository struct{ storage *pgxpool.Pool }

func NewSupervisionRepository(storage *pgxpool.Pool) SupervisionRepositoryInterface {
	return &supervisionRepository{storage: storage}
}

func (r *supervisionRepository) Count(ctx context.Context, filter entities.SupervisionFilter, codigosDNA []string) (uint64, error) {
	query, args, err := applyPredicates(psql.Select("COUNT(*)").From(supervisionTable), supervisionPredicates(filter, codigosDNA)).ToSql()
	if err != nil {
		return 0, err
	}
	var total uint64
	if err := r.storage.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

func (r *supervisionRepository) List(ctx context.Context, filter entities.SupervisionFilter, codigosDNA []string, limit, offset uint64) ([]entities.Supervision, error) {
	builder := applyPredicates(
		psql.Select(strings.Split(supervisionFields, ", ")...).From(supervisionTable),
		supervisionPredicates(filter, codigosDNA),
	).OrderBy("fecha DESC", "nid_supervision DESC").Limit(limit).Offset(offset)

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	supervisiones := make([]entities.Supervision, 0)
	for rows.Next() {
		var s entities.Supervision
		if err := rows.Scan(&s.NidSupervision, &s.CodigoDNA, &s.Fecha, &s.CodigoSupervisor, &s.NidModalidad, &s.EstadoSisdnaCodigo, &s.CamposDesactualizados); err != nil {
			return nil, err
		}
		supervisiones = append(supervisiones, s)
	}
	return supervisiones, rows.Err()
}

func (r *supervisionRepository) FindByNid(ctx context.Context, nid uint64) (*entities.Supervision, error) {
	query, args, err := psql.Select(strings.Split(supervisionFields, ", ")...).
		From(supervisionTable).
		Where(sq.Eq{"nid_supervision": nid}).
		ToSql()
	if err != nil {
		return nil, err
	}

	var s entities.Supervision
	err = r.storage.QueryRow(ctx, query, args...).Scan(&s.NidSupervision, &s.CodigoDNA, &s.Fecha, &s.CodigoSupervisor, &s.NidModalidad, &s.EstadoSisdnaCodigo, &s.CamposDesactualizados)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}
