package mecanica

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/box73oficina/api-embaixador/internal/apperr"
	"github.com/box73oficina/api-embaixador/internal/utils"
)

// CamposAtualizacao carrega os campos opcionais de um PATCH já convertidos.
type CamposAtualizacao struct {
	Nome                *string
	Descricao           *string
	BeneficioEmbaixador *string
	BeneficioCliente    *string
	MetaValidacoes      *int
	LimiteCupons        *int
	DataInicio          *time.Time
	DataFim             *time.Time
}

type Repository interface {
	Criar(db *gorm.DB, m *Mecanica) error
	ListarPaginado(db *gorm.DB, page int, status string) ([]MecanicaResumo, int64, error)
	BuscarPorID(db *gorm.DB, id uint) (*Mecanica, error)
	ListarValidas(db *gorm.DB, agora time.Time) ([]Mecanica, error)
	AlternarStatus(db *gorm.DB, id uint) (*Mecanica, error)
	Atualizar(db *gorm.DB, id uint, campos *CamposAtualizacao) (*Mecanica, error)
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) Criar(db *gorm.DB, m *Mecanica) error {
	if m.MetaValidacoes < 1 {
		return apperr.Validacao("meta de validações deve ser no mínimo 1")
	}
	if m.LimiteCupons < 1 {
		return apperr.Validacao("limite de cupons deve ser no mínimo 1")
	}
	if m.DataFim.Before(m.DataInicio) {
		return apperr.Validacao("data final anterior à data inicial")
	}

	m.CuponsEmitidos = 0
	m.Status = StatusAtiva
	return db.Create(m).Error
}

func (r *repositoryImpl) ListarPaginado(db *gorm.DB, page int, status string) ([]MecanicaResumo, int64, error) {
	query := db.Model(&Mecanica{})
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var resumos []MecanicaResumo
	err := query.
		Select("mecanicas.*, " +
			"(SELECT COUNT(*) FROM cupons WHERE cupons.mecanica_id = mecanicas.id AND cupons.deleted_at IS NULL) AS total_cupons, " +
			"(SELECT COUNT(*) FROM indicacoes WHERE indicacoes.deleted_at IS NULL AND indicacoes.cupom_id IN " +
			"(SELECT id FROM cupons WHERE cupons.mecanica_id = mecanicas.id AND cupons.deleted_at IS NULL)) AS total_validacoes").
		Order("created_at DESC").
		Limit(utils.LimitePagina).
		Offset((page - 1) * utils.LimitePagina).
		Find(&resumos).Error
	return resumos, total, err
}

func (r *repositoryImpl) BuscarPorID(db *gorm.DB, id uint) (*Mecanica, error) {
	var m Mecanica
	if err := db.First(&m, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NaoEncontrado("mecânica não encontrada")
		}
		return nil, err
	}
	return &m, nil
}

// ListarValidas devolve as mecânicas aptas a emitir cupom agora. Alimenta
// a escolha de mecânica na emissão.
func (r *repositoryImpl) ListarValidas(db *gorm.DB, agora time.Time) ([]Mecanica, error) {
	var mecanicas []Mecanica
	err := db.
		Where("status = ?", StatusAtiva).
		Where("data_inicio <= ? AND data_fim >= ?", agora, agora).
		Where("cupons_emitidos < limite_cupons").
		Find(&mecanicas).Error
	return mecanicas, err
}

// AlternarStatus alterna ATIVA<->PAUSADA. Mecânica encerrada não volta.
func (r *repositoryImpl) AlternarStatus(db *gorm.DB, id uint) (*Mecanica, error) {
	m, err := r.BuscarPorID(db, id)
	if err != nil {
		return nil, err
	}
	if m.Status == StatusEncerrada {
		return nil, apperr.Validacao("mecânica encerrada não pode ser reativada")
	}

	if m.Status == StatusAtiva {
		m.Status = StatusPausada
	} else {
		m.Status = StatusAtiva
	}
	if err := db.Model(&Mecanica{}).Where("id = ?", id).Update("status", m.Status).Error; err != nil {
		return nil, err
	}
	return m, nil
}

func (r *repositoryImpl) Atualizar(db *gorm.DB, id uint, campos *CamposAtualizacao) (*Mecanica, error) {
	existente, err := r.BuscarPorID(db, id)
	if err != nil {
		return nil, err
	}

	if campos.Nome != nil {
		existente.Nome = *campos.Nome
	}
	if campos.Descricao != nil {
		existente.Descricao = *campos.Descricao
	}
	if campos.BeneficioEmbaixador != nil {
		existente.BeneficioEmbaixador = *campos.BeneficioEmbaixador
	}
	if campos.BeneficioCliente != nil {
		existente.BeneficioCliente = *campos.BeneficioCliente
	}
	if campos.MetaValidacoes != nil {
		if *campos.MetaValidacoes < 1 {
			return nil, apperr.Validacao("meta de validações deve ser no mínimo 1")
		}
		existente.MetaValidacoes = *campos.MetaValidacoes
	}
	if campos.LimiteCupons != nil {
		if *campos.LimiteCupons < 1 {
			return nil, apperr.Validacao("limite de cupons deve ser no mínimo 1")
		}
		existente.LimiteCupons = *campos.LimiteCupons
	}
	if campos.DataInicio != nil {
		existente.DataInicio = *campos.DataInicio
	}
	if campos.DataFim != nil {
		existente.DataFim = *campos.DataFim
	}
	// reavalia a ordem depois do merge
	if existente.DataFim.Before(existente.DataInicio) {
		return nil, apperr.Validacao("data final anterior à data inicial")
	}

	if err := db.Save(existente).Error; err != nil {
		return nil, err
	}
	return existente, nil
}
