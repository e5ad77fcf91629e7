package auth

import (
	"context"
	"net/http"
	"strings"
)

type ctxKey string

const (
	CtxUsuarioID ctxKey = "usuarioID"
	CtxNome      ctxKey = "nome"
	CtxPapel     ctxKey = "papel"
)

// Papéis de operador da oficina
const (
	PapelAdmin     = "ADMIN"
	PapelGerente   = "GERENTE"
	PapelAtendente = "ATENDENTE"
)

func MiddlewareAutenticacao(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodOptions {
			next.ServeHTTP(w, r)
			return
		}
		h := r.Header.Get("Authorization")
		if h == "" || !strings.HasPrefix(h, "Bearer ") {
			http.Error(w, "Token ausente", http.StatusUnauthorized)
			return
		}
		raw := strings.TrimPrefix(h, "Bearer ")
		claims, err := ParseAndValidate(raw)
		if err != nil {
			http.Error(w, "Token inválido", http.StatusUnauthorized)
			return
		}
		ctx := context.WithValue(r.Context(), CtxUsuarioID, claims.UsuarioID)
		ctx = context.WithValue(ctx, CtxNome, claims.Nome)
		ctx = context.WithValue(ctx, CtxPapel, claims.Papel)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequirePapeis libera a rota apenas para os papéis listados.
func RequirePapeis(papeis ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			papel, _ := r.Context().Value(CtxPapel).(string)
			for _, p := range papeis {
				if papel == p {
					next.ServeHTTP(w, r)
					return
				}
			}
			http.Error(w, "acesso negado", http.StatusForbidden)
		})
	}
}

// UsuarioDoContexto devolve o ID do operador autenticado (0 se ausente).
func UsuarioDoContexto(ctx context.Context) uint {
	id, _ := ctx.Value(CtxUsuarioID).(uint)
	return id
}
