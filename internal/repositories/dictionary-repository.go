package repositories

import (
	"context"

	"sisdna-portal/internal/entities"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	supervisorTable = "supervisores"
	modalidadTable  = "supervision_modalidades"
	syncEstadoTable = "sincronizacion_estados"
	cierreTipoTable = "seguimiento_cierre_tipos"
)

type SupervisorRepositoryInterface interface {
	List(ctx context.Context) ([]entities.Supervisor, error)
	GetByCodigos(ctx context.Context, codigos []uint64) ([]entities.Supervisor, error)
}

type supervisorRepository struct{ storage *pgxpool.Pool }

func NewSupervisorRepository(storage *pgxpool.Pool) SupervisorRepositoryInterface {
	return &supervisorRepository{storage: storage}
}

func (r *supervisorRepository) List(ctx context.Context) ([]entities.Supervisor, error) {
	return r.query(ctx, psql.Select("codigo", "txt_nombre").From(supervisorTable).OrderBy("txt_nombre"))
}

func (r *supervisorRepository) GetByCodigos(ctx context.Context, codigos []uint64) ([]entities.Supervisor, error) {
	if len(codigos) == 0 {
		return []entities.Supervisor{}, nil
	}
	return r.query(ctx, psql.Select("codigo", "txt_nombre").From(supervisorTable).Where(sq.Eq{"codigo": codigos}))
}

func (r *supervisorRepository) query(ctx context.Context, builder sq.SelectBuilder) ([]entities.Supervisor, error) {
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	supervisores := make([]entities.Supervisor, 0)
	for rows.Next() {
		var s entities.Supervisor
		if err := rows.Scan(&s.Codigo, &s.Nombre); err != nil {
			return nil, err
		}
		supervisores = append(supervisores, s)
	}
	return supervisores, rows.Err()
}

type ModalidadRepositoryInterface interface {
	List(ctx context.Context) ([]entities.Modalidad, error)
	GetByNids(ctx context.Context, nids []uint64) ([]entities.Modalidad, error)
}

type modalidadRepository struct{ storage *pgxpool.Pool }

func NewModalidadRepository(storage *pgxpool.Pool) ModalidadRepositoryInterface {
	return &modalidadRepository{storage: storage}
}

func (r *modalidadRepository) List(ctx context.Context) ([]entities.Modalidad, error) {
	return r.query(ctx, psql.Select("nid", "txt_nombre").From(modalidadTable).OrderBy("nid"))
}

func (r *modalidadRepository) GetByNids(ctx context.Context, nids []uint64) ([]entities.Modalidad, error) {
	if len(nids) == 0 {
		return []entities.Modalidad{}, nil
	}
	return r.query(ctx, psql.Select("nid", "txt_nombre").From(modalidadTable).Where(sq.Eq{"nid": nids}))
}

func (r *modalidadRepository) query(ctx context.Context, builder sq.SelectBuilder) ([]entities.Modalidad, error) {
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	modalidades := make([]entities.Modalidad, 0)
	for rows.Next() {
		var m entities.Modalidad
		if err := rows.Scan(&m.Nid, &m.Nombre); err != nil {
			return nil, err
		}
		modalidades = append(modalidades, m)
	}
	return modalidades, rows.Err()
}

type SyncEstadoRepositoryInterface interface {
	List(ctx context.Context) ([]entities.SyncEstado, error)
}

type syncEstadoRepository struct{ storage *pgxpool.Pool }

func NewSyncEstadoRepository(storage *pgxpool.Pool) SyncEstadoRepositoryInterface {
	return &syncEstadoRepository{storage: storage}
}

func (r *syncEstadoRepository) List(ctx context.Context) ([]entities.SyncEstado, error) {
	query, args, err := psql.Select("nid", "txt_nombre").From(syncEstadoTable).OrderBy("nid").ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	estados := make([]entities.SyncEstado, 0)
	for rows.Next() {
		var e entities.SyncEstado
		if err := rows.Scan(&e.Nid, &e.Nombre); err != nil {
			return nil, err
		}
		estados = append(estados, e)
	}
	return estados, rows.Err()
}

type CierreTipoRepositoryInterface interface {
	GetByCodigos(ctx context.Context, codigos []uint64) ([]entities.CierreTipo, error)
}

type cierreTipoRepository struct{ storage *pgxpool.Pool }

func NewCierreTipoRepository(storage *pgxpool.Pool) CierreTipoRepositoryInterface {
	return &cierreTipoRepository{storage: storage}
}

func (r *cierreTipoRepository) GetByCodigos(ctx context.Context, codigos []uint64) ([]entities.CierreTipo, error) {
	if len(codigos) == 0 {
		return []entities.CierreTipo{}, nil
	}
	query, args, err := psql.Select("codigo", "txt_nombre").From(cierreTipoTable).Where(sq.Eq{"codigo": codigos}).ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tipos := make([]entities.CierreTipo, 0, len(codigos))
	for rows.Next() {
		var t entities.CierreTipo
		if err := rows.Scan(&t.Codigo, &t.Nombre); err != nil {
			return nil, err
		}
		tipos = append(tipos, t)
	}
	return tipos, rows.Err()
}
