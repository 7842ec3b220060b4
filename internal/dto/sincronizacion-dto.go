package dto

// DefensoriaSyncDTO annotates a directory row with its synchronization state
// against the external system of record. CamposDesactualizados is parsed once
// at this boundary; renderers never re-split the raw comma-joined string.
type DefensoriaSyncDTO struct {
	CodigoDNA    string `json:"codigo_dna"`
	Nombre       string `json:"txt_nombre"`
	UbigeoCodigo string `json:"nid_ubigeo"`
	Direccion    string `json:"txt_direccion"`
	Telefono     string `json:"txt_telefono"`
	Correo       string `json:"txt_correo"`
	Departamento string `json:"departamento"`
	Provincia    string `json:"provincia"`
	Distrito     string `json:"distrito"`

	EstadoSisdna          string   `json:"estado_sisdna"`
	CamposDesactualizados []string `json:"campos_desactualizados"`
}

type SupervisionSyncDTO struct {
	NidSupervision uint64 `json:"nid_supervision"`
	CodigoDNA      string `json:"codigo_dna"`
	Fecha          string `json:"fecha"`
	Supervisor     string `json:"supervisor"`
	Modalidad      string `json:"modalidad"`
	NombreDemuna   string `json:"nombre_demuna"`
	Ubicacion      string `json:"ubicacion"`

	EstadoSisdna          string   `json:"estado_sisdna"`
	CamposDesactualizados []string `json:"campos_desactualizados"`
}
