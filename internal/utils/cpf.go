package utils

import "strings"

// LimparCPF remove tudo que não for dígito.
func LimparCPF(cpf string) string {
	var b strings.Builder
	for _, r := range cpf {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ValidarCPF confere o CPF pelo algoritmo oficial: 11 dígitos, não todos
// iguais, e os dois dígitos verificadores batendo com a soma ponderada
// módulo 11 (pesos 10..2 e 11..2; resto < 2 vira 0, senão 11-resto).
func ValidarCPF(cpf string) bool {
	limpo := LimparCPF(cpf)
	if len(limpo) != 11 {
		return false
	}

	todosIguais := true
	for i := 1; i < 11; i++ {
		if limpo[i] != limpo[0] {
			todosIguais = false
			break
		}
	}
	if todosIguais {
		return false
	}

	digito := func(quantos int) int {
		soma := 0
		for i := 0; i < quantos; i++ {
			soma += int(limpo[i]-'0') * (quantos + 1 - i)
		}
		resto := soma % 11
		if resto < 2 {
			return 0
		}
		return 11 - resto
	}

	if digito(9) != int(limpo[9]-'0') {
		return false
	}
	return digito(10) == int(limpo[10]-'0')
}
