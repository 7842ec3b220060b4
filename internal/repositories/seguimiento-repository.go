package repositories

import (
	"context"
	"strings"

	"sisdna-portal/internal/entities"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	seguimientoTable  = "supervision_seguimientos"
	seguimientoFields = "nid_supervision, txt_informe_seguimiento, flg_subsanacion, txt_oficio_reiterativo, txt_oficio_oci, fec_cierre, txt_proveido_cierre, nid_modalidad_cierre"

	fichaTable = "supervision_ficha_datos"
)

type SeguimientoRepositoryInterface interface {
	ListByNids(ctx context.Context, nids []uint64) ([]entities.Seguimiento, error)
}

type seguimientoRepository struct{ storage *pgxpool.Pool }

func NewSeguimientoRepository(storage *pgxpool.Pool) SeguimientoRepositoryInterface {
	return &seguimientoRepository{storage: storage}
}

func (r *seguimientoRepository) ListByNids(ctx context.Context, nids []uint64) ([]entities.Seguimiento, error) {
	if len(nids) == 0 {
		return []entities.Seguimiento{}, nil
	}

	query, args, err := psql.Select(strings.Split(seguimientoFields, ", ")...).
		From(seguimientoTable).
		Where(sq.Eq{"nid_supervision": nids}).
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	seguimientos := make([]entities.Seguimiento, 0, len(nids))
	for rows.Next() {
		var s entities.Seguimiento
		if err := rows.Scan(&s.NidSupervision, &s.InformeSeguimiento, &s.Subsanacion, &s.OficioReiterativo, &s.OficioOCI, &s.FechaCierre, &s.ProveidoCierre, &s.NidModalidadCierre); err != nil {
			return nil, err
		}
		seguimientos = append(seguimientos, s)
	}
	return seguimientos, rows.Err()
}

type FichaRepositoryInterface interface {
	ListURLsByNids(ctx context.Context, nids []uint64) (map[uint64]string, error)
}

type fichaRepository struct{ storage *pgxpool.Pool }

func NewFichaRepository(storage *pgxpool.Pool) FichaRepositoryInterface {
	return &fichaRepository{storage: storage}
}

func (r *fichaRepository) ListURLsByNids(ctx context.Context, nids []uint64) (map[uint64]string, error) {
	if len(nids) == 0 {
		return map[uint64]string{}, nil
	}

	query, args, err := psql.Select("nid_supervision", "txt_url_ficha").
		From(fichaTable).
		Where(sq.Eq{"nid_supervision": nids}).
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	urls := make(map[uint64]string, len(nids))
	for rows.Next() {
		var nid uint64
		var url string
		if err := rows.Scan(&nid, &url); err != nil {
			return nil, err
		}
		urls[nid] = url
	}
	return urls, rows.Err()
}
