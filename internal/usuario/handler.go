package usuario

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

// Login gera um JWT para credenciais válidas
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return
	}

	user, err := h.Repository.BuscarPorEmail(h.DB, req.Email)
	if err != nil || !user.Ativo {
		http.Error(w, "credenciais inválidas", http.StatusUnauthorized)
		return
	}

	if !utils.VerificarSenha(user.Senha, req.Senha) {
		http.Error(w, "credenciais inválidas", http.StatusUnauthorized)
		return
	}

	// carimbo de último acesso é melhor esforço
	_ = h.Repository.MarcarAcesso(h.DB, user.ID)

	token, err := auth.GerarToken(user.ID, user.Nome, user.Papel)
	if err != nil {
		http.Error(w, "erro ao gerar token", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"token":   token,
		"usuario": user,
	})
}

// Perfil retorna o operador logado
func (h *Handler) Perfil(w http.ResponseWriter, r *http.Request) {
	user, err := h.Repository.BuscarPorID(h.DB, auth.UsuarioDoContexto(r.Context()))
	if err != nil {
		apperr.ResponderHTTP(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(user)
}

// Criar cadastra um novo operador (somente ADMIN)
func (h *Handler) Criar(w http.ResponseWriter, r *http.Request) {
	var req criarUsuarioRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return
	}
	if err := utils.ValidarStruct(req); err != nil {
		apperr.ResponderHTTP(w, err)
		return
	}

	// sem senha no payload, o operador recebe uma temporária para o
	// primeiro acesso
	senha := req.Senha
	temporaria := senha == ""
	if temporaria {
		gerada, err := utils.GerarSenhaTemporaria()
		if err != nil {
			http.Error(w, "erro ao gerar senha temporária", http.StatusInternalServerError)
			return
		}
		senha = gerada
	}

	hash, err := utils.HashSenha(senha)
	if err != nil {
		http.Error(w, "erro ao processar senha", http.StatusInternalServerError)
		return
	}

	u := Usuario{
		Nome:  req.Nome,
		Email: req.Email,
		Senha: hash,
		Papel: req.Papel,
		Ativo: true,
	}
	if err := h.Repository.Criar(h.DB, &u); err != nil {
		apperr.ResponderHTTP(w, err)
		return
	}

	h.Audit.Registrar(h.DB, audit.EntradaDaRequisicao(r, "criar", "usuario", u.ID, map[string]interface{}{
		"email": u.Email,
		"papel": u.Papel,
	}))

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if temporaria {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"usuario":         u,
			"senhaTemporaria": senha,
		})
		return
	}
	json.NewEncoder(w).Encode(u)
}

// Listar retorna operadores paginados com busca por nome/email
func (h *Handler) Listar(w http.ResponseWriter, r *http.Request) {
	page := utils.PaginaDaQuery(r)
	busca := r.URL.Query().Get("busca")

	usuarios, total, err := h.Repository.ListarPaginado(h.DB, page, busca)
	if err != nil {
		http.Error(w, "erro ao listar usuários", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(utils.NovaListaPaginada(usuarios, total, page))
}

// BuscarPorID retorna um operador pelo ID
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

// Atualizar altera dados de um operador existente
func (h *Handler) Atualizar(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}

	var req atualizarUsuarioRequest
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

	h.Audit.Registrar(h.DB, audit.EntradaDaRequisicao(r, "atualizar", "usuario", obj.ID, nil))

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(obj)
}

// AlternarAtivo ativa ou desativa o acesso de um operador
func (h *Handler) AlternarAtivo(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}

	obj, err := h.Repository.AlternarAtivo(h.DB, uint(id))
	if err != nil {
		apperr.ResponderHTTP(w, err)
		return
	}

	h.Audit.Registrar(h.DB, audit.EntradaDaRequisicao(r, "alternar-ativo", "usuario", obj.ID, map[string]interface{}{
		"ativo": obj.Ativo,
	}))

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(obj)
}
