package audit

import (
	"encoding/json"
	"net/http"

	"gorm.io/gorm"

	"github.com/box73oficina/api-embaixador/internal/utils"
)

type Handler struct {
	DB *gorm.DB
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{DB: db}
}

// Listar retorna o histórico de auditoria paginado (somente ADMIN).
func (h *Handler) Listar(w http.ResponseWriter, r *http.Request) {
	page := utils.PaginaDaQuery(r)
	usuarioID := utils.IDOpcionalDaQuery(r, "usuarioId")
	entidade := r.URL.Query().Get("entidade")

	registros, total, err := ListarPaginado(h.DB, page, usuarioID, entidade)
	if err != nil {
		http.Error(w, "erro ao listar auditoria", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(utils.NovaListaPaginada(registros, total, page))
}
