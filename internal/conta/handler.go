package conta

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

// NewHandler cria um novo handler de contas.
func NewHandler(db *gorm.DB, engine *reconciliacao.Engine) *Handler {
	return &Handler{DB: db, Repository: NewRepository(db), Engine: engine}
}

type criarContaDTO struct {
	Tipo       string          `json:"tipo"`
	Descricao  string          `json:"descricao"`
	Valor      decimal.Decimal `json:"valor"`
	Vencimento string          `json:"vencimento"`
	Status     string          `json:"status"`
	ProjetoID  *uint           `json:"projetoId"`
	Data       string          `json:"data"`
}

type atualizarContaDTO struct {
	Tipo       *string          `json:"tipo"`
	Descricao  *string          `json:"descricao"`
	Valor      *decimal.Decimal `json:"valor"`
	Vencimento *string          `json:"vencimento"`
	Status     *string          `json:"status"`
	ProjetoID  *uint            `json:"projetoId"`
	Data       *string          `json:"data"`
}

// Criar trata POST /api/contas.
// O CRUD genérico não impede criar manualmente uma conta tipo=receber
// vinculada a projeto; o motor de reconciliação não guarda contra isso.
func (h *Handler) Criar(w http.ResponseWriter, r *http.Request) {
	var dto criarContaDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "JSON inválido", http.StatusBadRequest)
		return
	}
	if !models.TipoContaValido(dto.Tipo) {
		http.Error(w, "Tipo de conta inválido (use 'receber' ou 'pagar')", http.StatusBadRequest)
		return
	}
	if dto.Status == "" {
		dto.Status = models.ContaPendente
	}
	if !models.StatusContaValido(dto.Status) {
		http.Error(w, "Status de conta inválido (use 'pendente' ou 'pago')", http.StatusBadRequest)
		return
	}
	if dto.Valor.IsNegative() {
		http.Error(w, "O campo 'valor' não pode ser negativo", http.StatusBadRequest)
		return
	}
	if dto.ProjetoID != nil {
		var p models.Projeto
		if err := h.DB.First(&p, *dto.ProjetoID).Error; err != nil {
			http.Error(w, "Projeto não encontrado", http.StatusNotFound)
			return
		}
	}

	c := models.Conta{
		Tipo:       dto.Tipo,
		Descricao:  strings.TrimSpace(dto.Descricao),
		Valor:      dto.Valor.Round(2),
		Vencimento: dto.Vencimento,
		Status:     dto.Status,
		ProjetoID:  dto.ProjetoID,
		Data:       dto.Data,
	}
	if err := h.Repository.Criar(&c); err != nil {
		http.Error(w, "Erro ao salvar conta", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(c)
}

// Listar trata GET /api/contas (aceita ?tipo=&status=&projetoId=)
func (h *Handler) Listar(w http.ResponseWriter, r *http.Request) {
	filtro := Filtro{
		Tipo:   r.URL.Query().Get("tipo"),
		Status: r.URL.Query().Get("status"),
	}
	if pid := r.URL.Query().Get("projetoId"); pid != "" {
		id, err := strconv.Atoi(pid)
		if err != nil {
			http.Error(w, "projetoId inválido", http.StatusBadRequest)
			return
		}
		u := uint(id)
		filtro.ProjetoID = &u
	}
	list, err := h.Repository.Listar(filtro)
	if err != nil {
		http.Error(w, "Erro ao listar contas", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(list)
}

// BuscarPorID trata GET /api/contas/{id}
func (h *Handler) BuscarPorID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}
	c, err := h.Repository.BuscarPorID(uint(id))
	if err != nil {
		http.Error(w, "Conta não encontrada", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(c)
}

// Atualizar trata PATCH /api/contas/{id}. Se o status transitar de
// não-pago para pago, o pagamento é espelhado em uma transação e o projeto
// é re-sincronizado — tudo best-effort, sem falhar a requisição.
func (h *Handler) Atualizar(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}

	existente, err := h.Repository.BuscarPorID(uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			http.Error(w, "Conta não encontrada", http.StatusNotFound)
			return
		}
		http.Error(w, "Erro ao buscar conta", http.StatusInternalServerError)
		return
	}
	statusAnterior := existente.Status

	var dto atualizarContaDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "JSON inválido", http.StatusBadRequest)
		return
	}
	if dto.Tipo != nil && !models.TipoContaValido(*dto.Tipo) {
		http.Error(w, "Tipo de conta inválido (use 'receber' ou 'pagar')", http.StatusBadRequest)
		return
	}
	if dto.Status != nil && !models.StatusContaValido(*dto.Status) {
		http.Error(w, "Status de conta inválido (use 'pendente' ou 'pago')", http.StatusBadRequest)
		return
	}
	if dto.Valor != nil && dto.Valor.IsNegative() {
		http.Error(w, "O campo 'valor' não pode ser negativo", http.StatusBadRequest)
		return
	}

	if dto.Tipo != nil {
		existente.Tipo = *dto.Tipo
	}
	if dto.Descricao != nil {
		existente.Descricao = strings.TrimSpace(*dto.Descricao)
	}
	if dto.Valor != nil {
		existente.Valor = dto.Valor.Round(2)
	}
	if dto.Vencimento != nil {
		existente.Vencimento = *dto.Vencimento
	}
	if dto.Status != nil {
		existente.Status = *dto.Status
	}
	if dto.ProjetoID != nil {
		existente.ProjetoID = dto.ProjetoID
	}
	if dto.Data != nil {
		existente.Data = *dto.Data
	}

	if err := h.Repository.Atualizar(existente); err != nil {
		http.Error(w, "Erro ao atualizar conta", http.StatusInternalServerError)
		return
	}

	h.Engine.AoMarcarContaPaga(existente, statusAnterior)

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(existente)
}

// Deletar trata DELETE /api/contas/{id}
func (h *Handler) Deletar(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}
	if _, err := h.Repository.BuscarPorID(uint(id)); err != nil {
		http.Error(w, "Conta não encontrada", http.StatusNotFound)
		return
	}
	if err := h.Repository.Deletar(uint(id)); err != nil {
		http.Error(w, "Erro ao excluir conta", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GarantirTransacao trata POST /api/contas/{id}/garantir-transacao — o
// caminho de reparo idempotente: devolve a transação espelhada existente ou
// cria uma nova para uma conta já paga.
func (h *Handler) GarantirTransacao(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}
	c, err := h.Repository.BuscarPorID(uint(id))
	if err != nil {
		http.Error(w, "Conta não encontrada", http.StatusNotFound)
		return
	}

	t, err := h.Engine.GarantirTransacaoParaContaPaga(c)
	if err != nil {
		switch {
		case errors.Is(err, reconciliacao.ErrContaNaoPaga):
			http.Error(w, "A conta ainda não está paga", http.StatusConflict)
		case errors.Is(err, reconciliacao.ErrContaSemProjeto):
			http.Error(w, "A conta não está vinculada a um projeto", http.StatusBadRequest)
		default:
			http.Error(w, "Erro ao garantir transação da conta", http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(t)
}
