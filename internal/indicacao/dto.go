package indicacao

import (
	"math"
	"time"
)

// CriarIndicacaoRequest é o payload de validação de um cupom no balcão.
type CriarIndicacaoRequest struct {
	CupomID          uint    `json:"cupomId" validate:"required"`
	NomeIndicado     string  `json:"nomeIndicado" validate:"required"`
	CPFIndicado      string  `json:"cpfIndicado" validate:"omitempty,cpf"`
	TelefoneIndicado string  `json:"telefoneIndicado"`
	Servico          string  `json:"servico"`
	ValorServico     float64 `json:"valorServico" validate:"omitempty,min=0"`
	Observacoes      string  `json:"observacoes"`
}

// ResumoEmbaixadorDTO identifica o dono dos cupons no histórico.
type ResumoEmbaixadorDTO struct {
	ID   uint   `json:"id"`
	Nome string `json:"nome"`
	CPF  string `json:"cpf"`
}

// ProgressoCupomDTO mostra quanto falta para a meta de um cupom.
type ProgressoCupomDTO struct {
	CupomID             uint        `json:"cupomId"`
	Codigo              string      `json:"codigo"`
	Ativo               bool        `json:"ativo"`
	MecanicaID          uint        `json:"mecanicaId"`
	MecanicaNome        string      `json:"mecanicaNome"`
	BeneficioEmbaixador string      `json:"beneficioEmbaixador"`
	BeneficioCliente    string      `json:"beneficioCliente"`
	DataInicio          time.Time   `json:"dataInicio"`
	DataFim             time.Time   `json:"dataFim"`
	Indicacoes          []Indicacao `json:"indicacoes"`
	TotalIndicacoes     int         `json:"totalIndicacoes"`
	Validadas           int         `json:"validadas"`
	Meta                int         `json:"meta"`
	Progresso           int         `json:"progresso"`
}

// HistoricoDTO é a resposta da consulta de progresso do embaixador.
type HistoricoDTO struct {
	Embaixador ResumoEmbaixadorDTO `json:"embaixador"`
	Cupons     []ProgressoCupomDTO `json:"cupons"`
}

// CalcularProgresso devolve o percentual de validações rumo à meta,
// arredondado e limitado a 100 para exibição. As contagens brutas
// continuam disponíveis nos campos Validadas/Meta.
func CalcularProgresso(validadas, meta int) int {
	if meta < 1 {
		return 0
	}
	p := int(math.Round(float64(validadas) / float64(meta) * 100))
	if p > 100 {
		p = 100
	}
	return p
}
