package cupom

type criarCupomRequest struct {
	Codigo       string `json:"codigo" validate:"required"`
	EmbaixadorID uint   `json:"embaixadorId" validate:"required"`
	MecanicaID   uint   `json:"mecanicaId" validate:"required"`
}

// CupomResumo aparece nas listagens, com a contagem de indicações do cupom.
type CupomResumo struct {
	Cupom
	TotalIndicacoes int64 `json:"totalIndicacoes"`
}
