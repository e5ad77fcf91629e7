package usuario

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/box73oficina/api-embaixador/internal/apperr"
	"github.com/box73oficina/api-embaixador/internal/utils"
)

type Repository interface {
	Criar(db *gorm.DB, u *Usuario) error
	ListarPaginado(db *gorm.DB, page int, busca string) ([]Usuario, int64, error)
	BuscarPorID(db *gorm.DB, id uint) (*Usuario, error)
	BuscarPorEmail(db *gorm.DB, email string) (*Usuario, error)
	Atualizar(db *gorm.DB, id uint, novosDados *atualizarUsuarioRequest) (*Usuario, error)
	AlternarAtivo(db *gorm.DB, id uint) (*Usuario, error)
	MarcarAcesso(db *gorm.DB, id uint) error
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

// Criar grava o operador; a senha já deve chegar com hash. Email repetido
// é conflito.
func (r *repositoryImpl) Criar(db *gorm.DB, u *Usuario) error {
	var count int64
	if err := db.Model(&Usuario{}).Where("email = ?", u.Email).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return apperr.Conflito("email já cadastrado")
	}
	return db.Create(u).Error
}

func (r *repositoryImpl) ListarPaginado(db *gorm.DB, page int, busca string) ([]Usuario, int64, error) {
	query := db.Model(&Usuario{})
	if busca != "" {
		like := "%" + busca + "%"
		query = query.Where("LOWER(nome) LIKE LOWER(?) OR LOWER(email) LIKE LOWER(?)", like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var usuarios []Usuario
	err := query.
		Order("created_at DESC").
		Limit(utils.LimitePagina).
		Offset((page - 1) * utils.LimitePagina).
		Find(&usuarios).Error
	return usuarios, total, err
}

func (r *repositoryImpl) BuscarPorID(db *gorm.DB, id uint) (*Usuario, error) {
	var u Usuario
	if err := db.First(&u, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NaoEncontrado("usuário não encontrado")
		}
		return nil, err
	}
	return &u, nil
}

func (r *repositoryImpl) BuscarPorEmail(db *gorm.DB, email string) (*Usuario, error) {
	var u Usuario
	if err := db.Where("email = ?", email).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NaoEncontrado("usuário não encontrado")
		}
		return nil, err
	}
	return &u, nil
}

func (r *repositoryImpl) Atualizar(db *gorm.DB, id uint, novosDados *atualizarUsuarioRequest) (*Usuario, error) {
	existente, err := r.BuscarPorID(db, id)
	if err != nil {
		return nil, err
	}

	if novosDados.Nome != nil {
		existente.Nome = *novosDados.Nome
	}
	if novosDados.Email != nil && *novosDados.Email != existente.Email {
		var count int64
		if err := db.Model(&Usuario{}).Where("email = ? AND id <> ?", *novosDados.Email, id).Count(&count).Error; err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, apperr.Conflito("email já cadastrado")
		}
		existente.Email = *novosDados.Email
	}
	if novosDados.Senha != nil {
		hash, err := utils.HashSenha(*novosDados.Senha)
		if err != nil {
			return nil, err
		}
		existente.Senha = hash
	}
	if novosDados.Papel != nil {
		existente.Papel = *novosDados.Papel
	}

	if err := db.Save(existente).Error; err != nil {
		return nil, err
	}
	return existente, nil
}

func (r *repositoryImpl) AlternarAtivo(db *gorm.DB, id uint) (*Usuario, error) {
	existente, err := r.BuscarPorID(db, id)
	if err != nil {
		return nil, err
	}

	existente.Ativo = !existente.Ativo
	if err := db.Model(&Usuario{}).Where("id = ?", id).Update("ativo", existente.Ativo).Error; err != nil {
		return nil, err
	}
	return existente, nil
}

func (r *repositoryImpl) MarcarAcesso(db *gorm.DB, id uint) error {
	agora := time.Now()
	return db.Model(&Usuario{}).Where("id = ?", id).Update("ultimo_acesso", agora).Error
}
