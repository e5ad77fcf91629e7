package audit

import "gorm.io/gorm"

// RegistroAuditoria é o rastro imutável de cada mutação feita por um operador.
type RegistroAuditoria struct {
	gorm.Model
	UsuarioID  *uint  `json:"usuarioId"`
	Acao       string `json:"acao"`
	Entidade   string `json:"entidade"`
	EntidadeID *uint  `json:"entidadeId"`
	Detalhes   string `json:"detalhes"` // JSON serializado
	IP         string `json:"ip"`
	UserAgent  string `json:"userAgent"`
}

func (RegistroAuditoria) TableName() string {
	return "registros_auditoria"
}
