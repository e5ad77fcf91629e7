package mecanica

import (
	"time"

	"gorm.io/gorm"
)

// Status possíveis de uma mecânica
const (
	StatusAtiva     = "ATIVA"
	StatusPausada   = "PAUSADA"
	StatusEncerrada = "ENCERRADA"
)

// Mecanica é a regra promocional: recompensas, meta de validações,
// limite de emissão de cupons e janela de vigência.
type Mecanica struct {
	gorm.Model
	Nome                string    `json:"nome"`
	Descricao           string    `json:"descricao"`
	BeneficioEmbaixador string    `json:"beneficioEmbaixador"`
	BeneficioCliente    string    `json:"beneficioCliente"`
	MetaValidacoes      int       `json:"metaValidacoes"`
	LimiteCupons        int       `json:"limiteCupons"`
	CuponsEmitidos      int       `json:"cuponsEmitidos" gorm:"default:0"`
	DataInicio          time.Time `json:"dataInicio"`
	DataFim             time.Time `json:"dataFim"`
	Status              string    `json:"status" gorm:"default:ATIVA"`
	CriadoPorID         uint      `json:"criadoPorId"`
}

func (Mecanica) TableName() string {
	return "mecanicas"
}

// Usavel diz se a mecânica pode emitir cupom agora: ativa, dentro da
// vigência e abaixo do limite de emissão.
func (m *Mecanica) Usavel(agora time.Time) bool {
	return m.Status == StatusAtiva &&
		!agora.Before(m.DataInicio) &&
		!agora.After(m.DataFim) &&
		m.CuponsEmitidos < m.LimiteCupons
}
