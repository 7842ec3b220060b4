package repositories

import (
	"context"

	"sisdna-portal/internal/entities"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
)

const responsableTable = "defensoria_personas"

// codigoFuncionResponsable marks the person registered as head of office.
const codigoFuncionResponsable = 1

type ResponsableRepositoryInterface interface {
	ListLatestByCodigos(ctx context.Context, codigosDNA []string) ([]entities.Responsable, error)
}

type responsableRepository struct{ storage *pgxpool.Pool }

func NewResponsableRepository(storage *pgxpool.Pool) ResponsableRepositoryInterface {
	return &responsableRepository{storage: storage}
}

// ListLatestByCodigos returns at most one row per office: the designation
// with the newest fec_designacion. Rows without a designation date sort
// last, so a dated designation always wins over an undated one.
func (r *responsableRepository) ListLatestByCodigos(ctx context.Context, codigosDNA []string) ([]entities.Responsable, error) {
	if len(codigosDNA) == 0 {
		return []entities.Responsable{}, nil
	}

	query, args, err := psql.Select(
		"DISTINCT ON (codigo_dna) codigo_dna",
		"txt_nombres", "txt_apellidos", "txt_correo", "txt_telefono", "fec_designacion",
	).
		From(responsableTable).
		Where(sq.Eq{"codigo_dna": codigosDNA}).
		Where(sq.Eq{"codigo_funcion": codigoFuncionResponsable}).
		OrderBy("codigo_dna", "fec_designacion DESC NULLS LAST").
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	responsables := make([]entities.Responsable, 0, len(codigosDNA))
	for rows.Next() {
		var p entities.Responsable
		if err := rows.Scan(&p.CodigoDNA, &p.Nombres, &p.Apellidos, &p.Correo, &p.Telefono, &p.FecDesignacion); err != nil {
			return nil, err
		}
		responsables = append(responsables, p)
	}
	return responsables, rows.Err()
}
