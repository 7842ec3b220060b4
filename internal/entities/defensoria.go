package entities

import (
	"database/sql"
	"time"
)

// Defensoria is a raw office row as stored by the registry. The type and
// accreditation state fields hold lookup codes resolved through the
// caracteristicas table; the location field holds a district-level ubigeo.
type Defensoria struct {
	CodigoDNA    string
	Nombre       string
	TipoCodigo   string
	UbigeoCodigo string
	Direccion    sql.NullString
	Telefono     sql.NullString
	Correo       sql.NullString
	EstadoCodigo string

	// Sync annotation against the external system of record.
	EstadoSisdnaCodigo    sql.NullString
	CamposDesactualizados sql.NullString
}

// DefensoriaFilter carries the active search criteria. Empty and the "all"
// sentinel mean "not filtered". Page and PageSize are clamped by the service.
type DefensoriaFilter struct {
	Ubigeo       string
	CodigoDNA    string
	Estado       string
	EstadoSisdna string
	Page         int
	PageSize     int
}

// Responsable is the staff-entered contact person for an office. The most
// recently designated record is the authoritative one.
type Responsable struct {
	CodigoDNA      string
	Nombres        string
	Apellidos      string
	Correo         sql.NullString
	Telefono       sql.NullString
	FecDesignacion sql.NullTime
}

// User is a portal staff account.
type User struct {
	ID           uint64
	Email        string
	Nombre       string
	PasswordHash string
	CreatedAt    time.Time
}
