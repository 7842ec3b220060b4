package entities

import (
	"database/sql"
	"time"
)

type Supervision struct {
	NidSupervision   uint64
	CodigoDNA        string
	Fecha            time.Time
	CodigoSupervisor sql.NullInt64
	NidModalidad     sql.NullInt64

	EstadoSisdnaCodigo    sql.NullString
	CamposDesactualizados sql.NullString
}

// Seguimiento is the optional follow-up record of a supervision: remediation
// report, reiterative/oversight office letters and the closure data.
type Seguimiento struct {
	NidSupervision     uint64
	InformeSeguimiento sql.NullString
	Subsanacion        sql.NullBool
	OficioReiterativo  sql.NullString
	OficioOCI          sql.NullString
	FechaCierre        sql.NullTime
	ProveidoCierre     sql.NullString
	NidModalidadCierre sql.NullInt64
}

type SupervisionFilter struct {
	Ubigeo       string
	CodigoDNA    string
	Supervisor   string
	FechaDesde   *time.Time
	FechaHasta   *time.Time
	EstadoSisdna string
	Page         int
	PageSize     int
}
