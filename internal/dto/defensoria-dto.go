package dto

// DefensoriaDTO is a display-ready office record: every lookup code has been
// resolved to its display name and the region triple derived from the
// district ubigeo.
type DefensoriaDTO struct {
	CodigoDNA          string `json:"codigo_dna"`
	Nombre             string `json:"txt_nombre"`
	TipoDemuna         string `json:"tipo_demuna"`
	UbigeoCodigo       string `json:"nid_ubigeo"`
	Direccion          string `json:"txt_direccion"`
	Telefono           string `json:"txt_telefono"`
	Correo             string `json:"txt_correo"`
	EstadoAcreditacion string `json:"estado_acreditacion"`
	Departamento       string `json:"departamento"`
	Provincia          string `json:"provincia"`
	Distrito           string `json:"distrito"`

	// Outbound navigation link to the external case-management UI. Only
	// rendered on the staff surface.
	SisdnaURL string `json:"sisdna_url,omitempty"`
}

type ResponsableDTO struct {
	Nombres        string `json:"txt_nombres"`
	Apellidos      string `json:"txt_apellidos"`
	Correo         string `json:"txt_correo"`
	Telefono       string `json:"txt_telefono"`
	FecDesignacion string `json:"fec_designacion,omitempty"`
}
