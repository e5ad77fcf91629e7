package indicacao

import (
	"errors"

	"gorm.io/gorm"

	"github.com/box73oficina/api-embaixador/internal/apperr"
	"github.com/box73oficina/api-embaixador/internal/cupom"
	"github.com/box73oficina/api-embaixador/internal/embaixador"
	"github.com/box73oficina/api-embaixador/internal/utils"
)

type Repository interface {
	Criar(db *gorm.DB, req *CriarIndicacaoRequest, validadoPorID uint) (*Indicacao, error)
	Cancelar(db *gorm.DB, id uint) (*Indicacao, error)
	ListarPaginado(db *gorm.DB, page int, cupomID uint) ([]Indicacao, int64, error)
	ListarRecentes(db *gorm.DB, limite int) ([]Indicacao, error)
	Historico(db *gorm.DB, cpfEmbaixador string) (*HistoricoDTO, error)
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

// Criar valida o uso do cupom por um cliente. Quando o CPF do indicado é
// informado, só pode haver uma indicação VALIDADO por (cupom, CPF) — a
// regra é por cupom: o mesmo cliente pode usar cupons diferentes.
func (r *repositoryImpl) Criar(db *gorm.DB, req *CriarIndicacaoRequest, validadoPorID uint) (*Indicacao, error) {
	var c cupom.Cupom
	if err := db.First(&c, req.CupomID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NaoEncontrado("cupom não encontrado")
		}
		return nil, err
	}

	cpfLimpo := utils.LimparCPF(req.CPFIndicado)
	if cpfLimpo != "" {
		var count int64
		err := db.Model(&Indicacao{}).
			Where("cupom_id = ? AND cpf_indicado = ? AND status = ?", req.CupomID, cpfLimpo, StatusValidado).
			Count(&count).Error
		if err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, apperr.Conflito("este CPF já foi validado para este cupom")
		}
	}

	ind := Indicacao{
		CupomID:          req.CupomID,
		NomeIndicado:     req.NomeIndicado,
		CPFIndicado:      cpfLimpo,
		TelefoneIndicado: req.TelefoneIndicado,
		Servico:          req.Servico,
		ValorServico:     req.ValorServico,
		Observacoes:      req.Observacoes,
		CodigoUsado:      c.Codigo,
		Status:           StatusValidado,
		ValidadoPorID:    validadoPorID,
	}
	if err := db.Create(&ind).Error; err != nil {
		return nil, err
	}

	if err := db.Preload("Cupom.Embaixador").First(&ind, ind.ID).Error; err != nil {
		return nil, err
	}
	return &ind, nil
}

// Cancelar vira o status para CANCELADO. Nenhum contador é decrementado:
// o progresso conta apenas linhas VALIDADO na leitura.
func (r *repositoryImpl) Cancelar(db *gorm.DB, id uint) (*Indicacao, error) {
	var ind Indicacao
	if err := db.First(&ind, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NaoEncontrado("indicação não encontrada")
		}
		return nil, err
	}

	ind.Status = StatusCancelado
	if err := db.Model(&Indicacao{}).Where("id = ?", id).Update("status", StatusCancelado).Error; err != nil {
		return nil, err
	}
	return &ind, nil
}

func (r *repositoryImpl) ListarPaginado(db *gorm.DB, page int, cupomID uint) ([]Indicacao, int64, error) {
	query := db.Model(&Indicacao{})
	if cupomID != 0 {
		query = query.Where("cupom_id = ?", cupomID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var indicacoes []Indicacao
	err := query.Preload("Cupom.Embaixador").
		Order("created_at DESC").
		Limit(utils.LimitePagina).
		Offset((page - 1) * utils.LimitePagina).
		Find(&indicacoes).Error
	return indicacoes, total, err
}

func (r *repositoryImpl) ListarRecentes(db *gorm.DB, limite int) ([]Indicacao, error) {
	var indicacoes []Indicacao
	err := db.Preload("Cupom.Embaixador").
		Order("created_at DESC").
		Limit(limite).
		Find(&indicacoes).Error
	return indicacoes, err
}

// Historico resolve o EMBAIXADOR dono do CPF (não o cliente indicado) e
// devolve o progresso de cada cupom dele rumo à meta da mecânica.
func (r *repositoryImpl) Historico(db *gorm.DB, cpfEmbaixador string) (*HistoricoDTO, error) {
	dono, err := embaixador.NewRepository().BuscarPorCPF(db, cpfEmbaixador)
	if err != nil {
		return nil, err
	}

	var cupons []cupom.Cupom
	if err := db.Preload("Mecanica").Where("embaixador_id = ?", dono.ID).Find(&cupons).Error; err != nil {
		return nil, err
	}

	progresso := make([]ProgressoCupomDTO, 0, len(cupons))
	for _, c := range cupons {
		var indicacoes []Indicacao
		err := db.Where("cupom_id = ?", c.ID).Order("created_at DESC").Find(&indicacoes).Error
		if err != nil {
			return nil, err
		}

		validadas := 0
		for _, ind := range indicacoes {
			if ind.Status == StatusValidado {
				validadas++
			}
		}

		progresso = append(progresso, ProgressoCupomDTO{
			CupomID:             c.ID,
			Codigo:              c.Codigo,
			Ativo:               c.Ativo,
			MecanicaID:          c.Mecanica.ID,
			MecanicaNome:        c.Mecanica.Nome,
			BeneficioEmbaixador: c.Mecanica.BeneficioEmbaixador,
			BeneficioCliente:    c.Mecanica.BeneficioCliente,
			DataInicio:          c.Mecanica.DataInicio,
			DataFim:             c.Mecanica.DataFim,
			Indicacoes:          indicacoes,
			TotalIndicacoes:     len(indicacoes),
			Validadas:           validadas,
			Meta:                c.Mecanica.MetaValidacoes,
			Progresso:           CalcularProgresso(validadas, c.Mecanica.MetaValidacoes),
		})
	}

	return &HistoricoDTO{
		Embaixador: ResumoEmbaixadorDTO{ID: dono.ID, Nome: dono.Nome, CPF: dono.CPF},
		Cupons:     progresso,
	}, nil
}
