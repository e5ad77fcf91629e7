package indicacao

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/box73oficina/api-embaixador/internal/apperr"
	"github.com/box73oficina/api-embaixador/internal/cupom"
	"github.com/box73oficina/api-embaixador/internal/embaixador"
	"github.com/box73oficina/api-embaixador/internal/mecanica"
)

func setupIndicacaoTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(&embaixador.Embaixador{}, &mecanica.Mecanica{}, &cupom.Cupom{}, &Indicacao{})
	require.NoError(t, err)

	return db
}

func criarCupomBase(t *testing.T, db *gorm.DB, meta int) *cupom.Cupom {
	agora := time.Now()
	e := &embaixador.Embaixador{Nome: "João Silva", CPF: "52998224725", Telefone: "11999998888", Ativo: true}
	require.NoError(t, db.Create(e).Error)

	m := &mecanica.Mecanica{
		Nome:                "Indique e Ganhe",
		BeneficioEmbaixador: "Troca de óleo grátis",
		BeneficioCliente:    "10% de desconto",
		MetaValidacoes:      meta,
		LimiteCupons:        5,
		DataInicio:          agora.Add(-24 * time.Hour),
		DataFim:             agora.Add(24 * time.Hour),
		Status:              mecanica.StatusAtiva,
	}
	require.NoError(t, db.Create(m).Error)

	c := &cupom.Cupom{Codigo: "JOAO73", EmbaixadorID: e.ID, MecanicaID: m.ID, Ativo: true}
	require.NoError(t, db.Create(c).Error)
	return c
}

func TestCriarIndicacao(t *testing.T) {
	repo := NewRepository()

	t.Run("valida com snapshot do código e status VALIDADO", func(t *testing.T) {
		db := setupIndicacaoTestDB(t)
		c := criarCupomBase(t, db, 3)

		ind, err := repo.Criar(db, &CriarIndicacaoRequest{
			CupomID:      c.ID,
			NomeIndicado: "Carlos Pereira",
			CPFIndicado:  "111.444.777-35",
			Servico:      "Troca de pastilhas",
			ValorServico: 350,
		}, 9)
		require.NoError(t, err)
		assert.Equal(t, StatusValidado, ind.Status)
		assert.Equal(t, "JOAO73", ind.CodigoUsado)
		assert.Equal(t, "11144477735", ind.CPFIndicado)
		assert.Equal(t, uint(9), ind.ValidadoPorID)
	})

	t.Run("cupom inexistente", func(t *testing.T) {
		db := setupIndicacaoTestDB(t)

		_, err := repo.Criar(db, &CriarIndicacaoRequest{CupomID: 999, NomeIndicado: "x"}, 1)
		assert.True(t, apperr.EhNaoEncontrado(err))
	})

	t.Run("mesmo CPF no mesmo cupom é conflito", func(t *testing.T) {
		db := setupIndicacaoTestDB(t)
		c := criarCupomBase(t, db, 3)

		_, err := repo.Criar(db, &CriarIndicacaoRequest{CupomID: c.ID, NomeIndicado: "Carlos", CPFIndicado: "11144477735"}, 1)
		require.NoError(t, err)

		_, err = repo.Criar(db, &CriarIndicacaoRequest{CupomID: c.ID, NomeIndicado: "Carlos", CPFIndicado: "111.444.777-35"}, 1)
		assert.True(t, apperr.EhConflito(err))
	})

	t.Run("CPF diferente no mesmo cupom passa", func(t *testing.T) {
		db := setupIndicacaoTestDB(t)
		c := criarCupomBase(t, db, 3)

		_, err := repo.Criar(db, &CriarIndicacaoRequest{CupomID: c.ID, NomeIndicado: "Carlos", CPFIndicado: "11144477735"}, 1)
		require.NoError(t, err)

		_, err = repo.Criar(db, &CriarIndicacaoRequest{CupomID: c.ID, NomeIndicado: "Ana", CPFIndicado: "52998224725"}, 1)
		require.NoError(t, err)
	})

	t.Run("mesmo CPF em cupons diferentes passa", func(t *testing.T) {
		db := setupIndicacaoTestDB(t)
		c := criarCupomBase(t, db, 3)
		outro := &cupom.Cupom{Codigo: "MARIA73", EmbaixadorID: c.EmbaixadorID, MecanicaID: c.MecanicaID, Ativo: true}
		require.NoError(t, db.Create(outro).Error)

		_, err := repo.Criar(db, &CriarIndicacaoRequest{CupomID: c.ID, NomeIndicado: "Carlos", CPFIndicado: "11144477735"}, 1)
		require.NoError(t, err)

		_, err = repo.Criar(db, &CriarIndicacaoRequest{CupomID: outro.ID, NomeIndicado: "Carlos", CPFIndicado: "11144477735"}, 1)
		require.NoError(t, err)
	})

	t.Run("sem CPF não há trava de duplicidade", func(t *testing.T) {
		db := setupIndicacaoTestDB(t)
		c := criarCupomBase(t, db, 3)

		_, err := repo.Criar(db, &CriarIndicacaoRequest{CupomID: c.ID, NomeIndicado: "Cliente 1"}, 1)
		require.NoError(t, err)
		_, err = repo.Criar(db, &CriarIndicacaoRequest{CupomID: c.ID, NomeIndicado: "Cliente 2"}, 1)
		require.NoError(t, err)
	})

	t.Run("CPF cancelado libera nova validação", func(t *testing.T) {
		db := setupIndicacaoTestDB(t)
		c := criarCupomBase(t, db, 3)

		ind, err := repo.Criar(db, &CriarIndicacaoRequest{CupomID: c.ID, NomeIndicado: "Carlos", CPFIndicado: "11144477735"}, 1)
		require.NoError(t, err)
		_, err = repo.Cancelar(db, ind.ID)
		require.NoError(t, err)

		_, err = repo.Criar(db, &CriarIndicacaoRequest{CupomID: c.ID, NomeIndicado: "Carlos", CPFIndicado: "11144477735"}, 1)
		require.NoError(t, err)
	})
}

func TestCancelarIndicacao(t *testing.T) {
	repo := NewRepository()
	db := setupIndicacaoTestDB(t)
	c := criarCupomBase(t, db, 3)

	ind, err := repo.Criar(db, &CriarIndicacaoRequest{CupomID: c.ID, NomeIndicado: "Carlos"}, 1)
	require.NoError(t, err)

	t.Run("vira CANCELADO sem apagar o registro", func(t *testing.T) {
		cancelada, err := repo.Cancelar(db, ind.ID)
		require.NoError(t, err)
		assert.Equal(t, StatusCancelado, cancelada.Status)

		var total int64
		require.NoError(t, db.Model(&Indicacao{}).Count(&total).Error)
		assert.EqualValues(t, 1, total)
	})

	t.Run("id inexistente", func(t *testing.T) {
		_, err := repo.Cancelar(db, 999)
		assert.True(t, apperr.EhNaoEncontrado(err))
	})
}

func TestCalcularProgresso(t *testing.T) {
	assert.Equal(t, 67, CalcularProgresso(2, 3))
	assert.Equal(t, 100, CalcularProgresso(3, 3))
	assert.Equal(t, 50, CalcularProgresso(1, 2))
	assert.Equal(t, 0, CalcularProgresso(0, 3))
	assert.Equal(t, 0, CalcularProgresso(5, 0))
	// acima da meta trava em 100 para exibição
	assert.Equal(t, 100, CalcularProgresso(7, 3))
}

func TestHistorico(t *testing.T) {
	repo := NewRepository()
	db := setupIndicacaoTestDB(t)
	c := criarCupomBase(t, db, 3)

	_, err := repo.Criar(db, &CriarIndicacaoRequest{CupomID: c.ID, NomeIndicado: "Carlos", CPFIndicado: "11144477735"}, 1)
	require.NoError(t, err)
	cancelada, err := repo.Criar(db, &CriarIndicacaoRequest{CupomID: c.ID, NomeIndicado: "Ana"}, 1)
	require.NoError(t, err)
	_, err = repo.Cancelar(db, cancelada.ID)
	require.NoError(t, err)
	_, err = repo.Criar(db, &CriarIndicacaoRequest{CupomID: c.ID, NomeIndicado: "Bruno"}, 1)
	require.NoError(t, err)

	t.Run("o CPF identifica o embaixador dono dos cupons", func(t *testing.T) {
		historico, err := repo.Historico(db, "529.982.247-25")
		require.NoError(t, err)
		assert.Equal(t, "João Silva", historico.Embaixador.Nome)
		require.Len(t, historico.Cupons, 1)

		progresso := historico.Cupons[0]
		assert.Equal(t, "JOAO73", progresso.Codigo)
		assert.Equal(t, 3, progresso.TotalIndicacoes)
		assert.Equal(t, 2, progresso.Validadas) // cancelada não conta
		assert.Equal(t, 3, progresso.Meta)
		assert.Equal(t, 67, progresso.Progresso)
	})

	t.Run("CPF sem embaixador", func(t *testing.T) {
		_, err := repo.Historico(db, "11144477735")
		assert.True(t, apperr.EhNaoEncontrado(err))
	})
}
