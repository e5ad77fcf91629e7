package embaixador

import (
	"errors"

	"gorm.io/gorm"

	"github.com/box73oficina/api-embaixador/internal/apperr"
	"github.com/box73oficina/api-embaixador/internal/utils"
)

type Repository interface {
	Criar(db *gorm.DB, e *Embaixador) error
	ListarPaginado(db *gorm.DB, page int, busca string) ([]EmbaixadorResumo, int64, error)
	BuscarPorID(db *gorm.DB, id uint) (*Embaixador, error)
	BuscarPorCPF(db *gorm.DB, cpf string) (*Embaixador, error)
	Atualizar(db *gorm.DB, id uint, novosDados *atualizarEmbaixadorRequest) (*Embaixador, error)
	Desativar(db *gorm.DB, id uint) error
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

// Criar grava o embaixador com o CPF limpo; CPF duplicado é conflito.
func (r *repositoryImpl) Criar(db *gorm.DB, e *Embaixador) error {
	e.CPF = utils.LimparCPF(e.CPF)
	if !utils.ValidarCPF(e.CPF) {
		return apperr.Validacao("CPF inválido")
	}

	var count int64
	if err := db.Model(&Embaixador{}).Where("cpf = ?", e.CPF).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return apperr.Conflito("CPF já cadastrado")
	}

	return db.Create(e).Error
}

func (r *repositoryImpl) ListarPaginado(db *gorm.DB, page int, busca string) ([]EmbaixadorResumo, int64, error) {
	query := db.Model(&Embaixador{}).Where("ativo = ?", true)
	if busca != "" {
		like := "%" + busca + "%"
		buscaLimpa := utils.LimparCPF(busca)
		if buscaLimpa == "" {
			buscaLimpa = busca
		}
		query = query.Where(
			"LOWER(nome) LIKE LOWER(?) OR cpf LIKE ? OR telefone LIKE ?",
			like, "%"+buscaLimpa+"%", like,
		)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var resumos []EmbaixadorResumo
	err := query.
		Select("embaixadores.*, (SELECT COUNT(*) FROM cupons WHERE cupons.embaixador_id = embaixadores.id AND cupons.deleted_at IS NULL) AS total_cupons").
		Order("created_at DESC").
		Limit(utils.LimitePagina).
		Offset((page - 1) * utils.LimitePagina).
		Find(&resumos).Error
	return resumos, total, err
}

func (r *repositoryImpl) BuscarPorID(db *gorm.DB, id uint) (*Embaixador, error) {
	var e Embaixador
	if err := db.First(&e, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NaoEncontrado("embaixador não encontrado")
		}
		return nil, err
	}
	return &e, nil
}

// BuscarPorCPF localiza um embaixador ativo pelo CPF (só dígitos ou formatado).
func (r *repositoryImpl) BuscarPorCPF(db *gorm.DB, cpf string) (*Embaixador, error) {
	var e Embaixador
	err := db.Where("cpf = ? AND ativo = ?", utils.LimparCPF(cpf), true).First(&e).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NaoEncontrado("embaixador não encontrado com este CPF")
		}
		return nil, err
	}
	return &e, nil
}

func (r *repositoryImpl) Atualizar(db *gorm.DB, id uint, novosDados *atualizarEmbaixadorRequest) (*Embaixador, error) {
	existente, err := r.BuscarPorID(db, id)
	if err != nil {
		return nil, err
	}

	if novosDados.Nome != nil {
		existente.Nome = *novosDados.Nome
	}
	if novosDados.CPF != nil {
		cpf := utils.LimparCPF(*novosDados.CPF)
		if cpf != existente.CPF {
			var count int64
			if err := db.Model(&Embaixador{}).Where("cpf = ? AND id <> ?", cpf, id).Count(&count).Error; err != nil {
				return nil, err
			}
			if count > 0 {
				return nil, apperr.Conflito("CPF já cadastrado")
			}
		}
		existente.CPF = cpf
	}
	if novosDados.Telefone != nil {
		existente.Telefone = *novosDados.Telefone
	}
	if novosDados.Email != nil {
		existente.Email = *novosDados.Email
	}

	if err := db.Save(existente).Error; err != nil {
		return nil, err
	}
	return existente, nil
}

// Desativar é a remoção lógica: o cadastro nunca é apagado.
func (r *repositoryImpl) Desativar(db *gorm.DB, id uint) error {
	if _, err := r.BuscarPorID(db, id); err != nil {
		return err
	}
	return db.Model(&Embaixador{}).Where("id = ?", id).Update("ativo", false).Error
}
