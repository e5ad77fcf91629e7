package cupom

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/box73oficina/api-embaixador/internal/apperr"
	"github.com/box73oficina/api-embaixador/internal/embaixador"
	"github.com/box73oficina/api-embaixador/internal/mecanica"
)

// tabela de indicações usada pelas contagens, sem importar o pacote indicacao
type indicacaoTeste struct {
	gorm.Model
	CupomID uint
	Status  string
}

func (indicacaoTeste) TableName() string {
	return "indicacoes"
}

func setupCupomTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(&embaixador.Embaixador{}, &mecanica.Mecanica{}, &Cupom{}, &indicacaoTeste{})
	require.NoError(t, err)

	return db
}

func criarBase(t *testing.T, db *gorm.DB, limite int) (*embaixador.Embaixador, *mecanica.Mecanica) {
	e := &embaixador.Embaixador{Nome: "João Silva", CPF: "52998224725", Telefone: "11999998888", Ativo: true}
	require.NoError(t, db.Create(e).Error)

	agora := time.Now()
	m := &mecanica.Mecanica{
		Nome:                "Indique e Ganhe",
		BeneficioEmbaixador: "Troca de óleo grátis",
		BeneficioCliente:    "10% de desconto",
		MetaValidacoes:      2,
		LimiteCupons:        limite,
		DataInicio:          agora.Add(-24 * time.Hour),
		DataFim:             agora.Add(24 * time.Hour),
		Status:              mecanica.StatusAtiva,
	}
	require.NoError(t, db.Create(m).Error)
	return e, m
}

func emitidosDe(t *testing.T, db *gorm.DB, mecanicaID uint) int {
	var m mecanica.Mecanica
	require.NoError(t, db.First(&m, mecanicaID).Error)
	return m.CuponsEmitidos
}

func cuponsDe(t *testing.T, db *gorm.DB, mecanicaID uint) int64 {
	var count int64
	require.NoError(t, db.Model(&Cupom{}).Where("mecanica_id = ?", mecanicaID).Count(&count).Error)
	return count
}

func TestCriarCupom(t *testing.T) {
	repo := NewRepository()
	agora := time.Now()

	t.Run("emite e incrementa o contador na mesma transação", func(t *testing.T) {
		db := setupCupomTestDB(t)
		e, m := criarBase(t, db, 5)

		criado, err := repo.Criar(db, e.ID, m.ID, "joao100", 1, agora)
		require.NoError(t, err)
		assert.Equal(t, "JOAO100", criado.Codigo)
		assert.True(t, criado.Ativo)
		assert.Equal(t, "João Silva", criado.Embaixador.Nome)
		assert.Equal(t, "10% de desconto", criado.Mecanica.BeneficioCliente)
		assert.Equal(t, 1, emitidosDe(t, db, m.ID))
	})

	t.Run("código duplicado é conflito mesmo com caixa diferente", func(t *testing.T) {
		db := setupCupomTestDB(t)
		e, m := criarBase(t, db, 5)

		_, err := repo.Criar(db, e.ID, m.ID, "JOAO73", 1, agora)
		require.NoError(t, err)

		_, err = repo.Criar(db, e.ID, m.ID, "joao73", 1, agora)
		assert.True(t, apperr.EhConflito(err))
	})

	t.Run("código duplicado de cupom inativo também é conflito", func(t *testing.T) {
		db := setupCupomTestDB(t)
		e, m := criarBase(t, db, 5)

		criado, err := repo.Criar(db, e.ID, m.ID, "JOAO73", 1, agora)
		require.NoError(t, err)
		require.NoError(t, repo.Desativar(db, criado.ID))

		_, err = repo.Criar(db, e.ID, m.ID, "JOAO73", 1, agora)
		assert.True(t, apperr.EhConflito(err))
	})

	t.Run("mecânica inexistente", func(t *testing.T) {
		db := setupCupomTestDB(t)
		e, _ := criarBase(t, db, 5)

		_, err := repo.Criar(db, e.ID, 999, "JOAO73", 1, agora)
		assert.True(t, apperr.EhNaoEncontrado(err))
	})

	t.Run("embaixador inexistente", func(t *testing.T) {
		db := setupCupomTestDB(t)
		_, m := criarBase(t, db, 5)

		_, err := repo.Criar(db, 999, m.ID, "JOAO73", 1, agora)
		assert.True(t, apperr.EhNaoEncontrado(err))
	})

	t.Run("mecânica pausada não emite", func(t *testing.T) {
		db := setupCupomTestDB(t)
		e, m := criarBase(t, db, 5)
		require.NoError(t, db.Model(m).Update("status", mecanica.StatusPausada).Error)

		_, err := repo.Criar(db, e.ID, m.ID, "JOAO73", 1, agora)
		assert.True(t, apperr.EhValidacao(err))
	})

	t.Run("fora da vigência não emite", func(t *testing.T) {
		db := setupCupomTestDB(t)
		e, m := criarBase(t, db, 5)

		_, err := repo.Criar(db, e.ID, m.ID, "JOAO73", 1, agora.Add(72*time.Hour))
		assert.True(t, apperr.EhValidacao(err))

		_, err = repo.Criar(db, e.ID, m.ID, "JOAO73", 1, agora.Add(-72*time.Hour))
		assert.True(t, apperr.EhValidacao(err))
	})

	t.Run("limite atingido sempre falha e nunca cria cupom", func(t *testing.T) {
		db := setupCupomTestDB(t)
		e, m := criarBase(t, db, 1)

		_, err := repo.Criar(db, e.ID, m.ID, "JOAO73", 1, agora)
		require.NoError(t, err)

		for i := 0; i < 3; i++ {
			_, err = repo.Criar(db, e.ID, m.ID, "OUTRO73", 1, agora)
			assert.True(t, apperr.EhValidacao(err))
		}
		assert.EqualValues(t, 1, cuponsDe(t, db, m.ID))
		assert.Equal(t, 1, emitidosDe(t, db, m.ID))
	})

	t.Run("contador sempre igual ao número de cupons da mecânica", func(t *testing.T) {
		db := setupCupomTestDB(t)
		e, m := criarBase(t, db, 3)

		// sucessos e falhas intercalados
		_, err := repo.Criar(db, e.ID, m.ID, "A73", 1, agora)
		require.NoError(t, err)
		_, _ = repo.Criar(db, e.ID, m.ID, "A73", 1, agora)               // conflito
		_, _ = repo.Criar(db, e.ID, 999, "B73", 1, agora)                // não encontrada
		_, err = repo.Criar(db, e.ID, m.ID, "B73", 1, agora)
		require.NoError(t, err)
		_, _ = repo.Criar(db, e.ID, m.ID, "C73", 1, agora.Add(96*time.Hour)) // fora da vigência

		assert.EqualValues(t, emitidosDe(t, db, m.ID), cuponsDe(t, db, m.ID))
		assert.Equal(t, 2, emitidosDe(t, db, m.ID))
	})
}

func TestBuscarPorCodigo(t *testing.T) {
	repo := NewRepository()
	db := setupCupomTestDB(t)
	e, m := criarBase(t, db, 5)

	criado, err := repo.Criar(db, e.ID, m.ID, "JOAO73", 1, time.Now())
	require.NoError(t, err)

	t.Run("busca sem diferenciar maiúsculas", func(t *testing.T) {
		achado, err := repo.BuscarPorCodigo(db, "joao73")
		require.NoError(t, err)
		assert.Equal(t, criado.ID, achado.ID)
		assert.Equal(t, "João Silva", achado.Embaixador.Nome)
	})

	t.Run("cupom inativo não aparece", func(t *testing.T) {
		require.NoError(t, repo.Desativar(db, criado.ID))
		_, err := repo.BuscarPorCodigo(db, "JOAO73")
		assert.True(t, apperr.EhNaoEncontrado(err))
	})

	t.Run("código desconhecido", func(t *testing.T) {
		_, err := repo.BuscarPorCodigo(db, "NAOEXISTE73")
		assert.True(t, apperr.EhNaoEncontrado(err))
	})
}

func TestCodigoExiste(t *testing.T) {
	repo := NewRepository()
	db := setupCupomTestDB(t)
	e, m := criarBase(t, db, 5)

	_, err := repo.Criar(db, e.ID, m.ID, "MARIA73", 1, time.Now())
	require.NoError(t, err)

	existe, err := repo.CodigoExiste(db, "maria73")
	require.NoError(t, err)
	assert.True(t, existe)

	existe, err = repo.CodigoExiste(db, "PEDRO73")
	require.NoError(t, err)
	assert.False(t, existe)
}

func TestListarPorEmbaixadorComContagens(t *testing.T) {
	repo := NewRepository()
	db := setupCupomTestDB(t)
	e, m := criarBase(t, db, 5)

	c1, err := repo.Criar(db, e.ID, m.ID, "UM73", 1, time.Now())
	require.NoError(t, err)
	_, err = repo.Criar(db, e.ID, m.ID, "DOIS73", 1, time.Now())
	require.NoError(t, err)

	require.NoError(t, db.Create(&indicacaoTeste{CupomID: c1.ID, Status: "VALIDADO"}).Error)
	require.NoError(t, db.Create(&indicacaoTeste{CupomID: c1.ID, Status: "CANCELADO"}).Error)

	resumos, err := repo.ListarPorEmbaixador(db, e.ID)
	require.NoError(t, err)
	require.Len(t, resumos, 2)

	porCodigo := map[string]int64{}
	for _, res := range resumos {
		porCodigo[res.Codigo] = res.TotalIndicacoes
	}
	assert.EqualValues(t, 2, porCodigo["UM73"])
	assert.EqualValues(t, 0, porCodigo["DOIS73"])
}
