package audit

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/box73oficina/api-embaixador/internal/auth"
	"github.com/box73oficina/api-embaixador/internal/utils"
)

// Entrada descreve uma mutação a auditar.
type Entrada struct {
	UsuarioID  *uint
	Acao       string
	Entidade   string
	EntidadeID *uint
	Detalhes   map[string]interface{}
	IP         string
	UserAgent  string
}

// Registrador grava o rastro de auditoria. A gravação nunca falha a
// operação principal: erro aqui é apenas logado.
type Registrador interface {
	Registrar(db *gorm.DB, e Entrada)
}

type registradorGorm struct {
	log *zap.Logger
}

func NewRegistrador(log *zap.Logger) Registrador {
	return &registradorGorm{log: log}
}

func (r *registradorGorm) Registrar(db *gorm.DB, e Entrada) {
	var detalhes string
	if e.Detalhes != nil {
		if b, err := json.Marshal(e.Detalhes); err == nil {
			detalhes = string(b)
		}
	}

	registro := RegistroAuditoria{
		UsuarioID:  e.UsuarioID,
		Acao:       e.Acao,
		Entidade:   e.Entidade,
		EntidadeID: e.EntidadeID,
		Detalhes:   detalhes,
		IP:         e.IP,
		UserAgent:  e.UserAgent,
	}
	if err := db.Create(&registro).Error; err != nil {
		r.log.Warn("falha ao gravar auditoria",
			zap.String("acao", e.Acao),
			zap.String("entidade", e.Entidade),
			zap.Error(err),
		)
	}
}

// EntradaDaRequisicao monta a Entrada com o operador e os metadados do request.
func EntradaDaRequisicao(r *http.Request, acao, entidade string, entidadeID uint, detalhes map[string]interface{}) Entrada {
	e := Entrada{
		Acao:      acao,
		Entidade:  entidade,
		Detalhes:  detalhes,
		IP:        r.RemoteAddr,
		UserAgent: r.UserAgent(),
	}
	if id := auth.UsuarioDoContexto(r.Context()); id != 0 {
		e.UsuarioID = &id
	}
	if entidadeID != 0 {
		e.EntidadeID = &entidadeID
	}
	return e
}

// ListarPaginado devolve os registros mais recentes, com filtros opcionais.
func ListarPaginado(db *gorm.DB, page int, usuarioID uint, entidade string) ([]RegistroAuditoria, int64, error) {
	query := db.Model(&RegistroAuditoria{})
	if usuarioID != 0 {
		query = query.Where("usuario_id = ?", usuarioID)
	}
	if entidade != "" {
		query = query.Where("entidade = ?", entidade)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var registros []RegistroAuditoria
	err := query.
		Order("created_at DESC").
		Limit(utils.LimitePagina).
		Offset((page - 1) * utils.LimitePagina).
		Find(&registros).Error
	return registros, total, err
}
