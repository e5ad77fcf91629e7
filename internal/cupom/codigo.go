package cupom

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Todo código termina com o número do box da oficina.
const SufixoCodigo = "73"

// Nomes sem nenhuma letra A-Z caem neste prefixo.
const PrefixoPadrao = "BOX"

var removerAcentos = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

func normalizarNome(nome string) string {
	s, _, err := transform.String(removerAcentos, nome)
	if err != nil {
		s = nome
	}
	s = strings.ToUpper(s)

	var b strings.Builder
	for _, r := range s {
		if r >= 'A' && r <= 'Z' {
			b.WriteRune(r)
		}
	}
	s = b.String()
	if len(s) > 10 {
		s = s[:10]
	}
	if s == "" {
		s = PrefixoPadrao
	}
	return s
}

// GerarCodigo deriva um código de cupom a partir do nome do embaixador:
// remove acentos, mantém só letras, corta em 10 e anexa o sufixo "73".
// Em colisão, acrescenta um contador incremental até achar código livre.
// A função consulta o estado atual a cada chamada via existe.
func GerarCodigo(nome string, existe func(string) bool) string {
	base := normalizarNome(nome)
	codigo := base + SufixoCodigo
	contador := 1
	for existe(codigo) {
		codigo = fmt.Sprintf("%s%s%d", base, SufixoCodigo, contador)
		contador++
	}
	return codigo
}
