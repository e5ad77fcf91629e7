package embaixador

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"github.com/box73oficina/api-embaixador/internal/apperr"
	"github.com/box73oficina/api-embaixador/internal/audit"
	"github.com/box73oficina/api-embaixador/internal/utils"
)

// Handler encapsula DB, repository e o registrador de auditoria
type Handler struct {
	DB         *gorm.DB
	Repository Repository
	Audit      audit.Registrador
}

// NewHandler retorna um handler inicializado
func NewHandler(db *gorm.DB, registrador audit.Registrador) *Handler {
	return &Handler{
		DB:         db,
		Repository: NewRepository(),
		Audit:      registrador,
	}
}

// Criar cadastra um novo embaixador
func (h *Handler) Criar(w http.ResponseWriter, r *http.Request) {
	var req criarEmbaixadorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return
	}
	if err := utils.ValidarStruct(req); err != nil {
		apperr.ResponderHTTP(w, err)
		return
	}

	e := Embaixador{
		Nome:     req.Nome,
		CPF:      req.CPF,
		Telefone: req.Telefone,
		Email:    req.Email,
		Ativo:    true,
	}
	if err := h.Repository.Criar(h.DB, &e); err != nil {
		apperr.ResponderHTTP(w, err)
		return
	}

	h.Audit.Registrar(h.DB, audit.EntradaDaRequisicao(r, "criar", "embaixador", e.ID, map[string]interface{}{
		"nome": e.Nome,
	}))

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(e)
}

// Listar retorna embaixadores ativos paginados, com busca por nome/CPF/telefone
func (h *Handler) Listar(w http.ResponseWriter, r *http.Request) {
	page := utils.PaginaDaQuery(r)
	busca := r.URL.Query().Get("busca")

	resumos, total, err := h.Repository.ListarPaginado(h.DB, page, busca)
	if err != nil {
		http.Error(w, "erro ao listar embaixadores", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(utils.NovaListaPaginada(resumos, total, page))
}

// BuscarPorID retorna um embaixador pelo ID
func (h *Handler) BuscarPorID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}

	obj, err := h.Repository.BuscarPorID(h.DB, uint(id))
	if err != nil {
		apperr.ResponderHTTP(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(obj)
}

// BuscarPorCPF localiza o embaixador dono do CPF informado
func (h *Handler) BuscarPorCPF(w http.ResponseWriter, r *http.Request) {
	obj, err := h.Repository.BuscarPorCPF(h.DB, mux.Vars(r)["cpf"])
	if err != nil {
		apperr.ResponderHTTP(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(obj)
}

// Atualizar altera dados de um embaixador existente
func (h *Handler) Atualizar(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}

	var req atualizarEmbaixadorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return
	}
	if err := utils.ValidarStruct(req); err != nil {
		apperr.ResponderHTTP(w, err)
		return
	}

	obj, err := h.Repository.Atualizar(h.DB, uint(id), &req)
	if err != nil {
		apperr.ResponderHTTP(w, err)
		return
	}

	h.Audit.Registrar(h.DB, audit.EntradaDaRequisicao(r, "atualizar", "embaixador", obj.ID, nil))

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(obj)
}

// Desativar faz a remoção lógica do embaixador
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

	h.Audit.Registrar(h.DB, audit.EntradaDaRequisicao(r, "desativar", "embaixador", uint(id), nil))

	w.WriteHeader(http.StatusOK)
	w.Write([]byte("embaixador desativado com sucesso"))
}
