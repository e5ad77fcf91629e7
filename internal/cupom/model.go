package cupom

import (
	"gorm.io/gorm"

	"github.com/box73oficina/api-embaixador/internal/embaixador"
	"github.com/box73oficina/api-embaixador/internal/mecanica"
)

// Cupom vincula um embaixador a uma mecânica através de um código único.
type Cupom struct {
	gorm.Model
	Codigo       string                `json:"codigo" gorm:"unique"` // sempre maiúsculo
	EmbaixadorID uint                  `json:"embaixadorId"`
	Embaixador   embaixador.Embaixador `json:"embaixador" gorm:"foreignKey:EmbaixadorID"`
	MecanicaID   uint                  `json:"mecanicaId"`
	Mecanica     mecanica.Mecanica     `json:"mecanica" gorm:"foreignKey:MecanicaID"`
	Ativo        bool                  `json:"ativo" gorm:"default:true"`
	CriadoPorID  uint                  `json:"criadoPorId"`
}

func (Cupom) TableName() string {
	return "cupons"
}
