package indicacao

import (
	"encoding/json"
	"net/http"
	"strconv"

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

// Criar valida o uso de um cupom por um cliente indicado
func (h *Handler) Criar(w http.ResponseWriter, r *http.Request) {
	var req CriarIndicacaoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return
	}
	if err := utils.ValidarStruct(req); err != nil {
		apperr.ResponderHTTP(w, err)
		return
	}

	criada, err := h.Repository.Criar(h.DB, &req, auth.UsuarioDoContexto(r.Context()))
	if err != nil {
		apperr.ResponderHTTP(w, err)
		return
	}

	h.Audit.Registrar(h.DB, audit.EntradaDaRequisicao(r, "criar", "indicacao", criada.ID, map[string]interface{}{
		"codigoUsado": criada.CodigoUsado,
	}))

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(criada)
}

// Listar retorna indicações paginadas com filtro opcional por cupom
func (h *Handler) Listar(w http.ResponseWriter, r *http.Request) {
	page := utils.PaginaDaQuery(r)
	cupomID := utils.IDOpcionalDaQuery(r, "cupomId")

	indicacoes, total, err := h.Repository.ListarPaginado(h.DB, page, cupomID)
	if err != nil {
		http.Error(w, "erro ao listar indicações", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(utils.NovaListaPaginada(indicacoes, total, page))
}

// ListarRecentes retorna as últimas indicações registradas
func (h *Handler) ListarRecentes(w http.ResponseWriter, r *http.Request) {
	limite, err := strconv.Atoi(r.URL.Query().Get("limite"))
	if err != nil || limite < 1 || limite > 100 {
		limite = utils.LimitePagina
	}

	indicacoes, err := h.Repository.ListarRecentes(h.DB, limite)
	if err != nil {
		http.Error(w, "erro ao listar indicações recentes", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(indicacoes)
}

// Cancelar desfaz uma validação (o registro permanece, só o status muda)
func (h *Handler) Cancelar(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}

	ind, err := h.Repository.Cancelar(h.DB, uint(id))
	if err != nil {
		apperr.ResponderHTTP(w, err)
		return
	}

	h.Audit.Registrar(h.DB, audit.EntradaDaRequisicao(r, "cancelar", "indicacao", ind.ID, nil))

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(ind)
}

// Historico mostra o progresso dos cupons do embaixador dono do CPF
func (h *Handler) Historico(w http.ResponseWriter, r *http.Request) {
	historico, err := h.Repository.Historico(h.DB, mux.Vars(r)["cpf"])
	if err != nil {
		apperr.ResponderHTTP(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(historico)
}
