package embaixador

import (
	"gorm.io/gorm"
)

// Embaixador é o cliente indicador: dono de cupons vinculados às mecânicas.
type Embaixador struct {
	gorm.Model
	Nome     string `json:"nome"`
	CPF      string `json:"cpf" gorm:"unique"` // armazenado só com dígitos
	Telefone string `json:"telefone"`
	Email    string `json:"email"`
	Ativo    bool   `json:"ativo" gorm:"default:true"`
}

func (Embaixador) TableName() string {
	return "embaixadores"
}
