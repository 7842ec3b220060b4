package dto

type DnaStatsDTO struct {
	TotalDefensorias uint64 `json:"total_defensorias"`
	Acreditadas      uint64 `json:"acreditadas"`
	NoAcreditadas    uint64 `json:"no_acreditadas"`
	NoOperativas     uint64 `json:"no_operativas"`

	PorDepartamento []DepartamentoStatDTO `json:"por_departamento"`
	PorEstado       []EstadoStatDTO       `json:"por_estado"`
	PorTipo         []TipoStatDTO         `json:"por_tipo"`
}

type DepartamentoStatDTO struct {
	Departamento string  `json:"departamento"`
	Cantidad     uint64  `json:"cantidad"`
	Porcentaje   float64 `json:"porcentaje"`
}

type EstadoStatDTO struct {
	Estado     string  `json:"estado"`
	Cantidad   uint64  `json:"cantidad"`
	Porcentaje float64 `json:"porcentaje"`
}

type TipoStatDTO struct {
	Tipo       string  `json:"tipo"`
	Cantidad   uint64  `json:"cantidad"`
	Porcentaje float64 `json:"porcentaje"`
}

type ReporteFilterDTO struct {
	Ubigeo string `query:"ubigeo" validate:"ubigeo_code"`
	Estado string `query:"estado"`
}
