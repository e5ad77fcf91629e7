package relatorio

import (
	"encoding/json"
	"net/http"

	"gorm.io/gorm"
)

type Handler struct {
	DB         *gorm.DB
	Repository Repository
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{
		DB:         db,
		Repository: NewRepository(),
	}
}

// Dashboard retorna os agregados da campanha
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	dto, err := h.Repository.Dashboard(h.DB)
	if err != nil {
		http.Error(w, "erro ao montar dashboard", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(dto)
}

// Vencedores lista os cupons ordenados por progresso rumo à meta
func (h *Handler) Vencedores(w http.ResponseWriter, r *http.Request) {
	vencedores, err := h.Repository.Vencedores(h.DB)
	if err != nil {
		http.Error(w, "erro ao listar vencedores", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(vencedores)
}
