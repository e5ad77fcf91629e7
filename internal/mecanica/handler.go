package mecanica

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

const formatoData = "2006-01-02"

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

// Criar cadastra uma nova mecânica promocional
func (h *Handler) Criar(w http.ResponseWriter, r *http.Request) {
	var req criarMecanicaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return
	}
	if err := utils.ValidarStruct(req); err != nil {
		apperr.ResponderHTTP(w, err)
		return
	}

	inicio, err := time.Parse(formatoData, req.DataInicio)
	if err != nil {
		http.Error(w, "data de início inválida", http.StatusBadRequest)
		return
	}
	fim, err := time.Parse(formatoData, req.DataFim)
	if err != nil {
		http.Error(w, "data final inválida", http.StatusBadRequest)
		return
	}

	m := Mecanica{
		Nome:                req.Nome,
		Descricao:           req.Descricao,
		BeneficioEmbaixador: req.BeneficioEmbaixador,
		BeneficioCliente:    req.BeneficioCliente,
		MetaValidacoes:      req.MetaValidacoes,
		LimiteCupons:        req.LimiteCupons,
		DataInicio:          inicio,
		DataFim:             fim.Add(24*time.Hour - time.Second), // vigência até o fim do dia
		CriadoPorID:         auth.UsuarioDoContexto(r.Context()),
	}
	if err := h.Repository.Criar(h.DB, &m); err != nil {
		apperr.ResponderHTTP(w, err)
		return
	}

	h.Audit.Registrar(h.DB, audit.EntradaDaRequisicao(r, "criar", "mecanica", m.ID, map[string]interface{}{
		"nome": m.Nome,
	}))

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(m)
}

// Listar retorna mecânicas paginadas com filtro opcional de status
func (h *Handler) Listar(w http.ResponseWriter, r *http.Request) {
	page := utils.PaginaDaQuery(r)
	status := r.URL.Query().Get("status")

	resumos, total, err := h.Repository.ListarPaginado(h.DB, page, status)
	if err != nil {
		http.Error(w, "erro ao listar mecânicas", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(utils.NovaListaPaginada(resumos, total, page))
}

// ListarValidas retorna as mecânicas aptas a emitir cupom hoje
func (h *Handler) ListarValidas(w http.ResponseWriter, r *http.Request) {
	mecanicas, err := h.Repository.ListarValidas(h.DB, time.Now())
	if err != nil {
		http.Error(w, "erro ao listar mecânicas válidas", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(mecanicas)
}

// BuscarPorID retorna uma mecânica pelo ID
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

// AlternarStatus pausa ou reativa uma mecânica
func (h *Handler) AlternarStatus(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}

	obj, err := h.Repository.AlternarStatus(h.DB, uint(id))
	if err != nil {
		apperr.ResponderHTTP(w, err)
		return
	}

	h.Audit.Registrar(h.DB, audit.EntradaDaRequisicao(r, "alternar-status", "mecanica", obj.ID, map[string]interface{}{
		"status": obj.Status,
	}))

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(obj)
}

// Atualizar altera parcialmente uma mecânica existente
func (h *Handler) Atualizar(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}

	var req atualizarMecanicaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return
	}
	if err := utils.ValidarStruct(req); err != nil {
		apperr.ResponderHTTP(w, err)
		return
	}

	campos := CamposAtualizacao{
		Nome:                req.Nome,
		Descricao:           req.Descricao,
		BeneficioEmbaixador: req.BeneficioEmbaixador,
		BeneficioCliente:    req.BeneficioCliente,
		MetaValidacoes:      req.MetaValidacoes,
		LimiteCupons:        req.LimiteCupons,
	}
	if req.DataInicio != nil {
		inicio, err := time.Parse(formatoData, *req.DataInicio)
		if err != nil {
			http.Error(w, "data de início inválida", http.StatusBadRequest)
			return
		}
		campos.DataInicio = &inicio
	}
	if req.DataFim != nil {
		fim, err := time.Parse(formatoData, *req.DataFim)
		if err != nil {
			http.Error(w, "data final inválida", http.StatusBadRequest)
			return
		}
		fimDia := fim.Add(24*time.Hour - time.Second)
		campos.DataFim = &fimDia
	}

	obj, err := h.Repository.Atualizar(h.DB, uint(id), &campos)
	if err != nil {
		apperr.ResponderHTTP(w, err)
		return
	}

	h.Audit.Registrar(h.DB, audit.EntradaDaRequisicao(r, "atualizar", "mecanica", obj.ID, nil))

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(obj)
}
