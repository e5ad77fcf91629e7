package usuario

import (
	"time"

	"gorm.io/gorm"
)

// Usuario é a conta de operador da oficina (quem emite e valida cupons).
type Usuario struct {
	gorm.Model
	Nome         string     `json:"nome"`
	Email        string     `json:"email" gorm:"unique"`
	Senha        string     `json:"-"`
	Papel        string     `json:"papel" gorm:"default:ATENDENTE"`
	Ativo        bool       `json:"ativo" gorm:"default:true"`
	UltimoAcesso *time.Time `json:"ultimoAcesso"`
}

func (Usuario) TableName() string {
	return "usuarios"
}
