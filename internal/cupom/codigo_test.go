package cupom

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func existeEm(codigos ...string) func(string) bool {
	set := make(map[string]bool, len(codigos))
	for _, c := range codigos {
		set[c] = true
	}
	return func(c string) bool { return set[c] }
}

func TestGerarCodigo(t *testing.T) {
	t.Run("nome simples", func(t *testing.T) {
		assert.Equal(t, "JOAO73", GerarCodigo("João", existeEm()))
	})

	t.Run("remove acentos e corta em dez letras", func(t *testing.T) {
		assert.Equal(t, "JOSEANTONI73", GerarCodigo("José Antônio da Silva", existeEm()))
	})

	t.Run("colisão recebe contador incremental", func(t *testing.T) {
		assert.Equal(t, "JOAO731", GerarCodigo("João", existeEm("JOAO73")))
		assert.Equal(t, "JOAO732", GerarCodigo("João", existeEm("JOAO73", "JOAO731")))
	})

	t.Run("nome sem letras cai no prefixo padrão", func(t *testing.T) {
		assert.Equal(t, "BOX73", GerarCodigo("", existeEm()))
		assert.Equal(t, "BOX73", GerarCodigo("12345 !!!", existeEm()))
		assert.Equal(t, "BOX731", GerarCodigo("", existeEm("BOX73")))
	})

	t.Run("nunca devolve código já existente", func(t *testing.T) {
		existentes := map[string]bool{}
		existe := func(c string) bool { return existentes[c] }
		for i := 0; i < 5; i++ {
			codigo := GerarCodigo("Maria", existe)
			assert.False(t, existentes[codigo])
			existentes[codigo] = true
		}
		assert.Len(t, existentes, 5)
	})

	t.Run("determinístico para o mesmo estado", func(t *testing.T) {
		assert.Equal(t,
			GerarCodigo("Pedro", existeEm("PEDRO73")),
			GerarCodigo("Pedro", existeEm("PEDRO73")),
		)
	})
}
