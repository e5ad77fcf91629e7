package cupom

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"github.com/box73oficina/api-embaixador/internal/apperr"
	"github.com/box73oficina/api-embaixador/internal/audit"
	"github.com/box73oficina/api-embaixador/internal/auth"
	"github.com/box73oficina/api-embaixador/internal/utils"
)

type Handler struct {
	DB         *gorm.DB
	Repository Repository
	Audit      audit.Registrador
}

func NewHandler(db *gorm.DB, registrador audit.Registrador) *Handler {
	return &Handler{
		DB:         db,
		Repository: NewRepository(),
		Audit:      registrador,
	}
}

// Criar emite um cupom para um embaixador dentro de uma mecânica válida
func (h *Handler) Criar(w http.ResponseWriter, r *http.Request) {
	var req criarCupomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return
	}
	if err := utils.ValidarStruct(req); err != nil {
		apperr.ResponderHTTP(w, err)
		return
	}

	criado, err := h.Repository.Criar(h.DB, req.EmbaixadorID, req.MecanicaID, req.Codigo,
		auth.UsuarioDoContexto(r.Context()), time.Now())
	if err != nil {
		apperr.ResponderHTTP(w, err)
		return
	}

	h.Audit.Registrar(h.DB, audit.EntradaDaRequisicao(r, "criar", "cupom", criado.ID, map[string]interface{}{
		"codigo": criado.Codigo,
	}))

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(criado)
}

// Listar retorna cupons paginados com filtros opcionais
func (h *Handler) Listar(w http.ResponseWriter, r *http.Request) {
	page := utils.PaginaDaQuery(r)
	embaixadorID := utils.IDOpcionalDaQuery(r, "embaixadorId")
	mecanicaID := utils.IDOpcionalDaQuery(r, "mecanicaId")

	resumos, total, err := h.Repository.ListarPaginado(h.DB, page, embaixadorID, mecanicaID)
	if err != nil {
		http.Error(w, "erro ao listar cupons", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(utils.NovaListaPaginada(resumos, total, page))
}

// ListarPorEmbaixador retorna os cupons de um embaixador
func (h *Handler) ListarPorEmbaixador(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}

	resumos, err := h.Repository.ListarPorEmbaixador(h.DB, uint(id))
	if err != nil {
		http.Error(w, "erro ao listar cupons", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resumos)
}

// BuscarPorCodigo consulta um cupom ativo pelo código
func (h *Handler) BuscarPorCodigo(w http.ResponseWriter, r *http.Request) {
	obj, err := h.Repository.BuscarPorCodigo(h.DB, mux.Vars(r)["codigo"])
	if err != nil {
		apperr.ResponderHTTP(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(obj)
}

// SugerirCodigo gera um código livre a partir do nome do embaixador
func (h *Handler) SugerirCodigo(w http.ResponseWriter, r *http.Request) {
	nome := r.URL.Query().Get("nome")

	codigo := GerarCodigo(nome, func(c string) bool {
		existe, err := h.Repository.CodigoExiste(h.DB, c)
		return err == nil && existe
	})

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"codigo": codigo})
}

// Desativar inativa um cupom sem removê-lo
func (h *Handler) Desativar(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}

	if err := h.Repository.Desativar(h.DB, uint(id)); err != nil {
		apperr.ResponderHTTP(w, err)
		return
	}

	h.Audit.Registrar(h.DB, audit.EntradaDaRequisicao(r, "desativar", "cupom", uint(id), nil))

	w.WriteHeader(http.StatusOK)
	w.Write([]byte("cupom desativado com sucesso"))
}
