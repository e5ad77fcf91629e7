package apperr

import (
	"errors"
	"net/http"
)

// Erros de domínio usados por todos os repositórios. A camada HTTP
// converte cada tipo no status correspondente via ResponderHTTP.

type ErroValidacao struct {
	Mensagem string
}

func (e *ErroValidacao) Error() string { return e.Mensagem }

type ErroConflito struct {
	Mensagem string
}

func (e *ErroConflito) Error() string { return e.Mensagem }

type ErroNaoEncontrado struct {
	Mensagem string
}

func (e *ErroNaoEncontrado) Error() string { return e.Mensagem }

func Validacao(msg string) error { return &ErroValidacao{Mensagem: msg} }

func Conflito(msg string) error { return &ErroConflito{Mensagem: msg} }

func NaoEncontrado(msg string) error { return &ErroNaoEncontrado{Mensagem: msg} }

func EhValidacao(err error) bool {
	var e *ErroValidacao
	return errors.As(err, &e)
}

func EhConflito(err error) bool {
	var e *ErroConflito
	return errors.As(err, &e)
}

func EhNaoEncontrado(err error) bool {
	var e *ErroNaoEncontrado
	return errors.As(err, &e)
}

// ResponderHTTP mapeia o erro de domínio para o status HTTP padrão.
func ResponderHTTP(w http.ResponseWriter, err error) {
	switch {
	case EhValidacao(err):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case EhConflito(err):
		http.Error(w, err.Error(), http.StatusConflict)
	case EhNaoEncontrado(err):
		http.Error(w, err.Error(), http.StatusNotFound)
	default:
		http.Error(w, "erro interno", http.StatusInternalServerError)
	}
}
