package embaixador

type criarEmbaixadorRequest struct {
	Nome     string `json:"nome" validate:"required"`
	CPF      string `json:"cpf" validate:"required,cpf"`
	Telefone string `json:"telefone" validate:"required"`
	Email    string `json:"email" validate:"omitempty,email"`
}

type atualizarEmbaixadorRequest struct {
	Nome     *string `json:"nome"`
	CPF      *string `json:"cpf" validate:"omitempty,cpf"`
	Telefone *string `json:"telefone"`
	Email    *string `json:"email" validate:"omitempty,email"`
}

// EmbaixadorResumo aparece nas listagens, com a contagem de cupons emitidos.
type EmbaixadorResumo struct {
	Embaixador
	TotalCupons int64 `json:"totalCupons"`
}
