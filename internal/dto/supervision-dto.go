package dto

import "github.com/aarondl/null/v8"

type SupervisionDTO struct {
	NidSupervision uint64 `json:"nid_supervision"`
	CodigoDNA      string `json:"codigo_dna"`
	Fecha          string `json:"fecha"`
	Supervisor     string `json:"supervisor"`
	Modalidad      string `json:"modalidad"`

	Ficha          null.String `json:"ficha"`
	DocSeguimiento null.String `json:"doc_seguimiento"`
	Subsanacion    null.Bool   `json:"subsanacion"`
	DocReiterativo null.String `json:"doc_reiterativo"`
	DocOCI         null.String `json:"doc_oci"`
	FechaCierre    null.String `json:"fecha_cierre"`
	DocCierre      null.String `json:"doc_cierre"`
	TipoCierre     null.String `json:"tipo_cierre"`

	NombreDemuna string `json:"nombre_demuna"`
	Departamento string `json:"departamento"`
	Provincia    string `json:"provincia"`
	Distrito     string `json:"distrito"`

	SisdnaURL string `json:"sisdna_url,omitempty"`
}
