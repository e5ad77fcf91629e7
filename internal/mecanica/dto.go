package mecanica

// datas no formato 2006-01-02
type criarMecanicaRequest struct {
	Nome                string `json:"nome" validate:"required"`
	Descricao           string `json:"descricao"`
	BeneficioEmbaixador string `json:"beneficioEmbaixador" validate:"required"`
	BeneficioCliente    string `json:"beneficioCliente" validate:"required"`
	MetaValidacoes      int    `json:"metaValidacoes" validate:"required,min=1"`
	LimiteCupons        int    `json:"limiteCupons" validate:"required,min=1"`
	DataInicio          string `json:"dataInicio" validate:"required"`
	DataFim             string `json:"dataFim" validate:"required"`
}

type atualizarMecanicaRequest struct {
	Nome                *string `json:"nome"`
	Descricao           *string `json:"descricao"`
	BeneficioEmbaixador *string `json:"beneficioEmbaixador"`
	BeneficioCliente    *string `json:"beneficioCliente"`
	MetaValidacoes      *int    `json:"metaValidacoes" validate:"omitempty,min=1"`
	LimiteCupons        *int    `json:"limiteCupons" validate:"omitempty,min=1"`
	DataInicio          *string `json:"dataInicio"`
	DataFim             *string `json:"dataFim"`
}

// MecanicaResumo aparece nas listagens com os agregados de cupons e indicações.
type MecanicaResumo struct {
	Mecanica
	TotalCupons     int64 `json:"totalCupons"`
	TotalValidacoes int64 `json:"totalValidacoes"`
}
