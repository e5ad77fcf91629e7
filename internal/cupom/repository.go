package cupom

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/box73oficina/api-embaixador/internal/apperr"
	"github.com/box73oficina/api-embaixador/internal/embaixador"
	"github.com/box73oficina/api-embaixador/internal/mecanica"
	"github.com/box73oficina/api-embaixador/internal/utils"
)

type Repository interface {
	Criar(db *gorm.DB, embaixadorID, mecanicaID uint, codigo string, criadoPorID uint, agora time.Time) (*Cupom, error)
	BuscarPorCodigo(db *gorm.DB, codigo string) (*CupomResumo, error)
	BuscarPorID(db *gorm.DB, id uint) (*Cupom, error)
	ListarPaginado(db *gorm.DB, page int, embaixadorID, mecanicaID uint) ([]CupomResumo, int64, error)
	ListarPorEmbaixador(db *gorm.DB, embaixadorID uint) ([]CupomResumo, error)
	Desativar(db *gorm.DB, id uint) error
	CodigoExiste(db *gorm.DB, codigo string) (bool, error)
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

// Criar é a emissão do cupom. O código vira maiúsculo, a mecânica precisa
// estar apta (ativa, na vigência, abaixo do limite) e a inserção do cupom
// anda junto com o incremento de cupons_emitidos na mesma transação:
// ou os dois acontecem, ou nenhum.
func (r *repositoryImpl) Criar(db *gorm.DB, embaixadorID, mecanicaID uint, codigo string, criadoPorID uint, agora time.Time) (*Cupom, error) {
	codigo = strings.ToUpper(strings.TrimSpace(codigo))
	if codigo == "" {
		return nil, apperr.Validacao("código do cupom é obrigatório")
	}

	var criado Cupom
	err := db.Transaction(func(tx *gorm.DB) error {
		// unicidade vale para cupons ativos e inativos
		var count int64
		if err := tx.Model(&Cupom{}).Where("codigo = ?", codigo).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return apperr.Conflito("código de cupom já existe")
		}

		var e embaixador.Embaixador
		if err := tx.First(&e, embaixadorID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NaoEncontrado("embaixador não encontrado")
			}
			return err
		}

		var m mecanica.Mecanica
		if err := tx.First(&m, mecanicaID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NaoEncontrado("mecânica não encontrada")
			}
			return err
		}

		if m.Status != mecanica.StatusAtiva || agora.Before(m.DataInicio) || agora.After(m.DataFim) {
			return apperr.Validacao("mecânica não está ativa ou fora do período")
		}
		if m.CuponsEmitidos >= m.LimiteCupons {
			return apperr.Validacao("limite de cupons atingido para esta mecânica")
		}

		criado = Cupom{
			Codigo:       codigo,
			EmbaixadorID: embaixadorID,
			MecanicaID:   mecanicaID,
			Ativo:        true,
			CriadoPorID:  criadoPorID,
		}
		if err := tx.Create(&criado).Error; err != nil {
			return err
		}

		return tx.Model(&mecanica.Mecanica{}).
			Where("id = ?", mecanicaID).
			UpdateColumn("cupons_emitidos", gorm.Expr("cupons_emitidos + 1")).Error
	})
	if err != nil {
		return nil, err
	}

	// recarrega com embaixador e mecânica para a resposta
	if err := db.Preload("Embaixador").Preload("Mecanica").First(&criado, criado.ID).Error; err != nil {
		return nil, err
	}
	return &criado, nil
}

// BuscarPorCodigo é a consulta pública do embaixador: só cupons ativos,
// comparação sem diferenciar maiúsculas.
func (r *repositoryImpl) BuscarPorCodigo(db *gorm.DB, codigo string) (*CupomResumo, error) {
	var c Cupom
	err := db.Preload("Embaixador").Preload("Mecanica").
		Where("codigo = ? AND ativo = ?", strings.ToUpper(strings.TrimSpace(codigo)), true).
		First(&c).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NaoEncontrado("cupom não encontrado")
		}
		return nil, err
	}

	var total int64
	if err := db.Table("indicacoes").Where("cupom_id = ? AND deleted_at IS NULL", c.ID).Count(&total).Error; err != nil {
		return nil, err
	}
	return &CupomResumo{Cupom: c, TotalIndicacoes: total}, nil
}

func (r *repositoryImpl) BuscarPorID(db *gorm.DB, id uint) (*Cupom, error) {
	var c Cupom
	if err := db.Preload("Embaixador").Preload("Mecanica").First(&c, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NaoEncontrado("cupom não encontrado")
		}
		return nil, err
	}
	return &c, nil
}

func (r *repositoryImpl) ListarPaginado(db *gorm.DB, page int, embaixadorID, mecanicaID uint) ([]CupomResumo, int64, error) {
	query := db.Model(&Cupom{})
	if embaixadorID != 0 {
		query = query.Where("embaixador_id = ?", embaixadorID)
	}
	if mecanicaID != 0 {
		query = query.Where("mecanica_id = ?", mecanicaID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var cupons []Cupom
	err := query.Preload("Embaixador").Preload("Mecanica").
		Order("created_at DESC").
		Limit(utils.LimitePagina).
		Offset((page - 1) * utils.LimitePagina).
		Find(&cupons).Error
	if err != nil {
		return nil, 0, err
	}

	resumos, err := anexarContagens(db, cupons)
	return resumos, total, err
}

func (r *repositoryImpl) ListarPorEmbaixador(db *gorm.DB, embaixadorID uint) ([]CupomResumo, error) {
	var cupons []Cupom
	err := db.Preload("Mecanica").
		Where("embaixador_id = ?", embaixadorID).
		Order("created_at DESC").
		Find(&cupons).Error
	if err != nil {
		return nil, err
	}
	return anexarContagens(db, cupons)
}

func (r *repositoryImpl) Desativar(db *gorm.DB, id uint) error {
	var c Cupom
	if err := db.First(&c, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NaoEncontrado("cupom não encontrado")
		}
		return err
	}
	return db.Model(&Cupom{}).Where("id = ?", id).Update("ativo", false).Error
}

// CodigoExiste confere cupons ativos e inativos, sem diferenciar maiúsculas.
func (r *repositoryImpl) CodigoExiste(db *gorm.DB, codigo string) (bool, error) {
	var count int64
	err := db.Model(&Cupom{}).
		Where("UPPER(codigo) = ?", strings.ToUpper(strings.TrimSpace(codigo))).
		Count(&count).Error
	return count > 0, err
}

// anexarContagens agrega as indicações por cupom em uma única consulta.
func anexarContagens(db *gorm.DB, cupons []Cupom) ([]CupomResumo, error) {
	resumos := make([]CupomResumo, 0, len(cupons))
	if len(cupons) == 0 {
		return resumos, nil
	}

	ids := make([]uint, 0, len(cupons))
	for _, c := range cupons {
		ids = append(ids, c.ID)
	}

	type contagem struct {
		CupomID uint
		Total   int64
	}
	var contagens []contagem
	err := db.Table("indicacoes").
		Select("cupom_id, COUNT(*) AS total").
		Where("cupom_id IN ? AND deleted_at IS NULL", ids).
		Group("cupom_id").
		Scan(&contagens).Error
	if err != nil {
		return nil, err
	}

	porCupom := make(map[uint]int64, len(contagens))
	for _, ct := range contagens {
		porCupom[ct.CupomID] = ct.Total
	}
	for _, c := range cupons {
		resumos = append(resumos, CupomResumo{Cupom: c, TotalIndicacoes: porCupom[c.ID]})
	}
	return resumos, nil
}
