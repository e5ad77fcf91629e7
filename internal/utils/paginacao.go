package utils

import (
	"net/http"
	"strconv"
)

// Tamanho fixo de página em todas as listagens.
const LimitePagina = 20

// ListaPaginada é o envelope padrão das respostas de listagem.
type ListaPaginada struct {
	Data  interface{} `json:"data"`
	Total int64       `json:"total"`
	Page  int         `json:"page"`
	Pages int         `json:"pages"`
}

// NovaListaPaginada monta o envelope calculando o total de páginas.
func NovaListaPaginada(data interface{}, total int64, page int) ListaPaginada {
	pages := int((total + LimitePagina - 1) / LimitePagina)
	return ListaPaginada{Data: data, Total: total, Page: page, Pages: pages}
}

// PaginaDaQuery lê o parâmetro ?page= da requisição (mínimo 1).
func PaginaDaQuery(r *http.Request) int {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

// IDOpcionalDaQuery lê um parâmetro numérico opcional (0 quando ausente).
func IDOpcionalDaQuery(r *http.Request, nome string) uint {
	v, err := strconv.Atoi(r.URL.Query().Get(nome))
	if err != nil || v < 0 {
		return 0
	}
	return uint(v)
}
