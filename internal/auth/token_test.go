package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGerarEValidarToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "segredo-de-teste")

	tok, err := GerarToken(7, "Maria", PapelGerente)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	claims, err := ParseAndValidate(tok)
	require.NoError(t, err)
	assert.Equal(t, uint(7), claims.UsuarioID)
	assert.Equal(t, "Maria", claims.Nome)
	assert.Equal(t, PapelGerente, claims.Papel)
	// sub identifica o operador; jti é a unicidade por token
	assert.Equal(t, "7", claims.Subject)
	assert.NotEmpty(t, claims.ID)
}

func TestGerarTokenSemSegredo(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := GerarToken(1, "x", PapelAdmin)
	assert.ErrorIs(t, err, ErrSegredoAusente)
}

func TestParseTokenAdulterado(t *testing.T) {
	t.Setenv("JWT_SECRET", "segredo-de-teste")

	tok, err := GerarToken(1, "x", PapelAdmin)
	require.NoError(t, err)

	_, err = ParseAndValidate(tok + "x")
	assert.Error(t, err)

	t.Setenv("JWT_SECRET", "outro-segredo")
	_, err = ParseAndValidate(tok)
	assert.Error(t, err)
}

func TestMiddlewareAutenticacao(t *testing.T) {
	t.Setenv("JWT_SECRET", "segredo-de-teste")

	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, uint(3), UsuarioDoContexto(r.Context()))
		w.WriteHeader(http.StatusOK)
	})

	t.Run("sem token", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/embaixadores", nil)
		MiddlewareAutenticacao(ok).ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("com token", func(t *testing.T) {
		tok, err := GerarToken(3, "Ana", PapelAtendente)
		require.NoError(t, err)

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/embaixadores", nil)
		req.Header.Set("Authorization", "Bearer "+tok)
		MiddlewareAutenticacao(ok).ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestRequirePapeis(t *testing.T) {
	t.Setenv("JWT_SECRET", "segredo-de-teste")

	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	guard := RequirePapeis(PapelAdmin, PapelGerente)(ok)

	chamar := func(papel string) int {
		tok, err := GerarToken(1, "x", papel)
		require.NoError(t, err)
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/mecanicas", nil)
		req.Header.Set("Authorization", "Bearer "+tok)
		MiddlewareAutenticacao(guard).ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, chamar(PapelAdmin))
	assert.Equal(t, http.StatusOK, chamar(PapelGerente))
	assert.Equal(t, http.StatusForbidden, chamar(PapelAtendente))
}
