package dto

// Search query payloads bound from the URL. Paging is parsed separately by
// the shared filter parser; these carry only the domain criteria, so the
// custom validation rules run before any query is built.

type DefensoriaQueryDTO struct {
	Ubigeo       string `query:"ubigeo" validate:"ubigeo_code"`
	CodigoDNA    string `query:"codigo_dna" validate:"dna_code"`
	Estado       string `query:"estado"`
	EstadoSisdna string `query:"estado_sisdna"`
}

type SupervisionQueryDTO struct {
	Ubigeo       string `query:"ubigeo" validate:"ubigeo_code"`
	CodigoDNA    string `query:"codigo_dna" validate:"dna_code"`
	Supervisor   string `query:"supervisor"`
	FechaDesde   string `query:"fecha_desde" validate:"omitempty,datetime=2006-01-02"`
	FechaHasta   string `query:"fecha_hasta" validate:"omitempty,datetime=2006-01-02"`
	EstadoSisdna string `query:"estado_sisdna"`
}

type ResponsablesQueryDTO struct {
	Codigos string `query:"codigos" validate:"required"`
}
