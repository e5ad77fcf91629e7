package relatorio

import (
	"time"

	"github.com/box73oficina/api-embaixador/internal/indicacao"
)

// DashboardDTO resume os números da campanha para a tela inicial.
type DashboardDTO struct {
	TotalEmbaixadores   int64                 `json:"totalEmbaixadores"`
	MecanicasAtivas     int64                 `json:"mecanicasAtivas"`
	TotalCupons         int64                 `json:"totalCupons"`
	IndicacoesValidadas int64                 `json:"indicacoesValidadas"`
	IndicacoesRecentes  []indicacao.Indicacao `json:"indicacoesRecentes"`
}

// VencedorDTO é a linha da lista de vencedores: progresso de um cupom
// rumo à meta da mecânica, com o momento em que a meta foi batida.
type VencedorDTO struct {
	CupomID        uint       `json:"cupomId"`
	Codigo         string     `json:"codigo"`
	EmbaixadorNome string     `json:"embaixadorNome"`
	MecanicaNome   string     `json:"mecanicaNome"`
	Meta           int        `json:"meta"`
	Validadas      int        `json:"validadas"`
	Progresso      int        `json:"progresso"`
	MetaAtingida   bool       `json:"metaAtingida"`
	MetaAtingidaEm *time.Time `json:"metaAtingidaEm"`
}
