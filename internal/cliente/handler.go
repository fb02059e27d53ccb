package cliente

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/CristalRio/api-vidracaria/internal/models"
	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

// Handler encapsula DB e repository
type Handler struct {
	DB         *gorm.DB
	Repository *Repository
}

// NewHandler cria um novo handler de clientes
func NewHandler(db *gorm.DB) *Handler {
	return &Handler{DB: db, Repository: NewRepository(db)}
}

type clienteDTO struct {
	Nome     string `json:"nome"`
	Contato  string `json:"contato"`
	Email    string `json:"email"`
	Telefone string `json:"telefone"`
	Endereco string `json:"endereco"`
	CNPJ     string `json:"cnpj"`
}

// Criar trata POST /api/clientes
func (h *Handler) Criar(w http.ResponseWriter, r *http.Request) {
	var dto clienteDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "JSON inválido", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(dto.Nome) == "" {
		http.Error(w, "O campo 'nome' é obrigatório", http.StatusBadRequest)
		return
	}

	c := models.Cliente{
		Nome:     strings.TrimSpace(dto.Nome),
		Contato:  dto.Contato,
		Email:    dto.Email,
		Telefone: dto.Telefone,
		Endereco: dto.Endereco,
		CNPJ:     dto.CNPJ,
	}
	if err := h.Repository.Criar(&c); err != nil {
		http.Error(w, "Erro ao salvar cliente", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(c)
}

// Listar trata GET /api/clientes
func (h *Handler) Listar(w http.ResponseWriter, r *http.Request) {
	list, err := h.Repository.Listar()
	if err != nil {
		http.Error(w, "Erro ao listar clientes", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(list)
}

// BuscarPorID trata GET /api/clientes/{id}
func (h *Handler) BuscarPorID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}
	c, err := h.Repository.BuscarPorID(uint(id))
	if err != nil {
		http.Error(w, "Cliente não encontrado", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(c)
}

// Atualizar trata PUT /api/clientes/{id}
func (h *Handler) Atualizar(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}

	var existente models.Cliente
	if err := h.DB.First(&existente, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			http.Error(w, "Cliente não encontrado", http.StatusNotFound)
			return
		}
		http.Error(w, "Erro ao buscar cliente", http.StatusInternalServerError)
		return
	}

	var dto clienteDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "JSON inválido", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(dto.Nome) == "" {
		http.Error(w, "O campo 'nome' é obrigatório", http.StatusBadRequest)
		return
	}

	existente.Nome = strings.TrimSpace(dto.Nome)
	existente.Contato = dto.Contato
	existente.Email = dto.Email
	existente.Telefone = dto.Telefone
	existente.Endereco = dto.Endereco
	existente.CNPJ = dto.CNPJ

	if err := h.Repository.Atualizar(&existente); err != nil {
		http.Error(w, "Erro ao atualizar cliente", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(existente)
}

// Deletar trata DELETE /api/clientes/{id}
func (h *Handler) Deletar(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}
	var existente models.Cliente
	if err := h.DB.First(&existente, id).Error; err != nil {
		http.Error(w, "Cliente não encontrado", http.StatusNotFound)
		return
	}
	if err := h.Repository.Deletar(uint(id)); err != nil {
		http.Error(w, "Erro ao excluir cliente", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
