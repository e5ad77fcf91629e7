package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLimparCPF(t *testing.T) {
	assert.Equal(t, "52998224725", LimparCPF("529.982.247-25"))
	assert.Equal(t, "52998224725", LimparCPF("52998224725"))
	assert.Equal(t, "", LimparCPF("abc"))
}

func TestValidarCPF(t *testing.T) {
	t.Run("aceita CPF válido", func(t *testing.T) {
		assert.True(t, ValidarCPF("52998224725"))
		assert.True(t, ValidarCPF("529.982.247-25"))
	})

	t.Run("rejeita dígito verificador errado", func(t *testing.T) {
		assert.False(t, ValidarCPF("12345678900"))
		assert.False(t, ValidarCPF("52998224726"))
	})

	t.Run("rejeita todos os dígitos iguais", func(t *testing.T) {
		for _, cpf := range []string{"00000000000", "11111111111", "99999999999"} {
			assert.False(t, ValidarCPF(cpf), cpf)
		}
	})

	t.Run("rejeita tamanho errado", func(t *testing.T) {
		assert.False(t, ValidarCPF(""))
		assert.False(t, ValidarCPF("5299822472"))
		assert.False(t, ValidarCPF("529982247250"))
	})
}
