package indicacao

import (
	"gorm.io/gorm"

	"github.com/box73oficina/api-embaixador/internal/cupom"
)

// Status possíveis de uma indicação
const (
	StatusValidado  = "VALIDADO"
	StatusCancelado = "CANCELADO"
)

// Indicacao registra o uso de um cupom por um cliente indicado.
type Indicacao struct {
	gorm.Model
	CupomID          uint        `json:"cupomId"`
	Cupom            cupom.Cupom `json:"cupom" gorm:"foreignKey:CupomID"`
	NomeIndicado     string      `json:"nomeIndicado"`
	CPFIndicado      string      `json:"cpfIndicado"` // opcional, só dígitos
	TelefoneIndicado string      `json:"telefoneIndicado"`
	Servico          string      `json:"servico"`
	ValorServico     float64     `json:"valorServico"`
	Observacoes      string      `json:"observacoes"`
	CodigoUsado      string      `json:"codigoUsado"` // snapshot do código no momento da validação
	Status           string      `json:"status" gorm:"default:VALIDADO"`
	ValidadoPorID    uint        `json:"validadoPorId"`
}

func (Indicacao) TableName() string {
	return "indicacoes"
}
