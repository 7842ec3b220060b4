package entities

// Ubigeo is one node of the administrative-division hierarchy.
type Ubigeo struct {
	Codigo      string `json:"codigo_ubigeo"`
	Nombre      string `json:"txt_nombre"`
	Nivel       string `json:"txt_nivel"`
	CodigoPadre string `json:"codigo_padre,omitempty"`
}

// Caracteristica resolves an opaque short code (office type, accreditation
// state, ...) to its display string.
type Caracteristica struct {
	Clave string `json:"clave_caracteristica"`
	Valor string `json:"valor_caracteristica"`
}

type Supervisor struct {
	Codigo uint64 `json:"codigo_supervisor"`
	Nombre string `json:"nombre_supervisor"`
}

type Modalidad struct {
	Nid    uint64 `json:"nid_modalidad"`
	Nombre string `json:"nombre_modalidad"`
}

// SyncEstado is a synchronization state against the external system of
// record (ACTUALIZADA, NO ACTUALIZADA, FALTANTE).
type SyncEstado struct {
	Nid    string `json:"nid_estado"`
	Nombre string `json:"nombre_estado"`
}

type CierreTipo struct {
	Codigo uint64 `json:"cod_tipo_cierre"`
	Nombre string `json:"txt_nombre"`
}
