package transacao

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/CristalRio/api-vidracaria/internal/models"
	"github.com/CristalRio/api-vidracaria/internal/reconciliacao"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Handler encapsula DB, repository e o motor de reconciliação.
type Handler struct {
	DB         *gorm.DB
	Repository *Repository
	Engine     *reconciliacao.Engine
}

// NewHandler cria um novo handler de transações.
func NewHandler(db *gorm.DB, engine *reconciliacao.Engine) *Handler {
	return &Handler{DB: db, Repository: NewRepository(db), Engine: engine}
}

type criarTransacaoDTO struct {
	ProjetoID uint            `json:"projetoId"`
	Tipo      string          `json:"tipo"`
	Descricao string          `json:"descricao"`
	Valor     decimal.Decimal `json:"valor"`
	Data      string          `json:"data"`
}

// Só descrição, valor e data são editáveis; tipo e projeto são fixos.
type atualizarTransacaoDTO struct {
	Descricao *string          `json:"descricao"`
	Valor     *decimal.Decimal `json:"valor"`
	Data      *string          `json:"data"`
}

// carregarProjeto busca o projeto dono da transação para re-sincronizar.
func (h *Handler) carregarProjeto(projetoID uint) (*models.Projeto, error) {
	var p models.Projeto
	if err := h.DB.First(&p, projetoID).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// Criar trata POST /api/transacoes
func (h *Handler) Criar(w http.ResponseWriter, r *http.Request) {
	var dto criarTransacaoDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "JSON inválido", http.StatusBadRequest)
		return
	}
	if !models.TipoTransacaoValido(dto.Tipo) {
		http.Error(w, "Tipo de transação inválido (use 'receita' ou 'despesa')", http.StatusBadRequest)
		return
	}
	if dto.Valor.IsNegative() {
		http.Error(w, "O campo 'valor' não pode ser negativo", http.StatusBadRequest)
		return
	}

	p, err := h.carregarProjeto(dto.ProjetoID)
	if err != nil {
		http.Error(w, "Projeto não encontrado", http.StatusNotFound)
		return
	}

	t := models.Transacao{
		ProjetoID: dto.ProjetoID,
		Tipo:      dto.Tipo,
		Descricao: strings.TrimSpace(dto.Descricao),
		Valor:     dto.Valor.Round(2),
		Data:      dto.Data,
	}
	if err := h.Repository.Criar(&t); err != nil {
		http.Error(w, "Erro ao salvar transação", http.StatusInternalServerError)
		return
	}

	h.Engine.SincronizarContasProjeto(p)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(t)
}

// Listar trata GET /api/transacoes (aceita ?projetoId=)
func (h *Handler) Listar(w http.ResponseWriter, r *http.Request) {
	var (
		list []models.Transacao
		err  error
	)
	if pid := r.URL.Query().Get("projetoId"); pid != "" {
		id, convErr := strconv.Atoi(pid)
		if convErr != nil {
			http.Error(w, "projetoId inválido", http.StatusBadRequest)
			return
		}
		list, err = h.Repository.ListarPorProjeto(uint(id))
	} else {
		list, err = h.Repository.Listar()
	}
	if err != nil {
		http.Error(w, "Erro ao listar transações", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(list)
}

// BuscarPorID trata GET /api/transacoes/{id}
func (h *Handler) BuscarPorID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}
	t, err := h.Repository.BuscarPorID(uint(id))
	if err != nil {
		http.Error(w, "Transação não encontrada", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(t)
}

// Atualizar trata PATCH /api/transacoes/{id} (merge parcial)
func (h *Handler) Atualizar(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}

	existente, err := h.Repository.BuscarPorID(uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			http.Error(w, "Transação não encontrada", http.StatusNotFound)
			return
		}
		http.Error(w, "Erro ao buscar transação", http.StatusInternalServerError)
		return
	}

	var dto atualizarTransacaoDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "JSON inválido", http.StatusBadRequest)
		return
	}
	if dto.Valor != nil && dto.Valor.IsNegative() {
		http.Error(w, "O campo 'valor' não pode ser negativo", http.StatusBadRequest)
		return
	}

	if dto.Descricao != nil {
		existente.Descricao = strings.TrimSpace(*dto.Descricao)
	}
	if dto.Valor != nil {
		existente.Valor = dto.Valor.Round(2)
	}
	if dto.Data != nil {
		existente.Data = *dto.Data
	}

	if err := h.Repository.Atualizar(existente); err != nil {
		http.Error(w, "Erro ao atualizar transação", http.StatusInternalServerError)
		return
	}

	h.Engine.RessincronizarProjeto(existente.ProjetoID)

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(existente)
}

// Deletar trata DELETE /api/transacoes/{id}
func (h *Handler) Deletar(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}
	existente, err := h.Repository.BuscarPorID(uint(id))
	if err != nil {
		http.Error(w, "Transação não encontrada", http.StatusNotFound)
		return
	}
	if err := h.Repository.Deletar(uint(id)); err != nil {
		http.Error(w, "Erro ao excluir transação", http.StatusInternalServerError)
		return
	}

	h.Engine.RessincronizarProjeto(existente.ProjetoID)

	w.WriteHeader(http.StatusNoContent)
}
