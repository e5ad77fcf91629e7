package relatorio

import (
	"sort"

	"gorm.io/gorm"

	"github.com/box73oficina/api-embaixador/internal/cupom"
	"github.com/box73oficina/api-embaixador/internal/embaixador"
	"github.com/box73oficina/api-embaixador/internal/indicacao"
	"github.com/box73oficina/api-embaixador/internal/mecanica"
)

const limiteRecentes = 10

type Repository interface {
	Dashboard(db *gorm.DB) (*DashboardDTO, error)
	Vencedores(db *gorm.DB) ([]VencedorDTO, error)
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) Dashboard(db *gorm.DB) (*DashboardDTO, error) {
	dto := &DashboardDTO{}

	if err := db.Model(&embaixador.Embaixador{}).Where("ativo = ?", true).Count(&dto.TotalEmbaixadores).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&mecanica.Mecanica{}).Where("status = ?", mecanica.StatusAtiva).Count(&dto.MecanicasAtivas).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&cupom.Cupom{}).Count(&dto.TotalCupons).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&indicacao.Indicacao{}).Where("status = ?", indicacao.StatusValidado).Count(&dto.IndicacoesValidadas).Error; err != nil {
		return nil, err
	}

	recentes, err := indicacao.NewRepository().ListarRecentes(db, limiteRecentes)
	if err != nil {
		return nil, err
	}
	dto.IndicacoesRecentes = recentes

	return dto, nil
}

// Vencedores calcula, cupom a cupom, as validações contra a meta da
// mecânica. Quando a meta foi batida, o carimbo é o CreatedAt da N-ésima
// indicação VALIDADO em ordem de criação. Meta batida primeiro, depois
// maior progresso.
func (r *repositoryImpl) Vencedores(db *gorm.DB) ([]VencedorDTO, error) {
	var cupons []cupom.Cupom
	if err := db.Preload("Embaixador").Preload("Mecanica").Find(&cupons).Error; err != nil {
		return nil, err
	}

	vencedores := make([]VencedorDTO, 0, len(cupons))
	for _, c := range cupons {
		var validadas []indicacao.Indicacao
		err := db.Where("cupom_id = ? AND status = ?", c.ID, indicacao.StatusValidado).
			Order("created_at ASC").
			Find(&validadas).Error
		if err != nil {
			return nil, err
		}

		v := VencedorDTO{
			CupomID:        c.ID,
			Codigo:         c.Codigo,
			EmbaixadorNome: c.Embaixador.Nome,
			MecanicaNome:   c.Mecanica.Nome,
			Meta:           c.Mecanica.MetaValidacoes,
			Validadas:      len(validadas),
			Progresso:      indicacao.CalcularProgresso(len(validadas), c.Mecanica.MetaValidacoes),
		}
		if meta := c.Mecanica.MetaValidacoes; meta >= 1 && len(validadas) >= meta {
			v.MetaAtingida = true
			quando := validadas[meta-1].CreatedAt
			v.MetaAtingidaEm = &quando
		}
		vencedores = append(vencedores, v)
	}

	sort.SliceStable(vencedores, func(i, j int) bool {
		if vencedores[i].MetaAtingida != vencedores[j].MetaAtingida {
			return vencedores[i].MetaAtingida
		}
		return vencedores[i].Progresso > vencedores[j].Progresso
	})

	return vencedores, nil
}
