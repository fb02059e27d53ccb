package orcamento

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/CristalRio/api-vidracaria/internal/cliente"
	"github.com/CristalRio/api-vidracaria/internal/models"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Handler encapsula DB e repositórios.
type Handler struct {
	DB         *gorm.DB
	Repository *Repository
	Clientes   *cliente.Repository
}

// NewHandler cria um novo handler de orçamentos.
func NewHandler(db *gorm.DB) *Handler {
	return &Handler{DB: db, Repository: NewRepository(db), Clientes: cliente.NewRepository(db)}
}

type itemDTO struct {
	Descricao  string          `json:"descricao"`
	Quantidade decimal.Decimal `json:"quantidade"`
	PrecoUnit  decimal.Decimal `json:"precoUnitario"`
}

type orcamentoDTO struct {
	ClienteID uint            `json:"clienteId"`
	Titulo    string          `json:"titulo"`
	Descricao string          `json:"descricao"`
	Desconto  decimal.Decimal `json:"desconto"`
	Data      string          `json:"data"`
	Itens     []itemDTO       `json:"itens"`
}

// respostaOrcamento devolve o orçamento com o total calculado.
type respostaOrcamento struct {
	models.Orcamento
	Subtotal decimal.Decimal `json:"subtotal"`
	Total    decimal.Decimal `json:"total"`
}

func resposta(o *models.Orcamento) respostaOrcamento {
	return respostaOrcamento{Orcamento: *o, Subtotal: o.Subtotal().Round(2), Total: o.Total()}
}

func (dto *orcamentoDTO) validar() string {
	if strings.TrimSpace(dto.Titulo) == "" {
		return "O campo 'titulo' é obrigatório"
	}
	if dto.ClienteID == 0 {
		return "O campo 'clienteId' é obrigatório"
	}
	if dto.Desconto.IsNegative() || dto.Desconto.GreaterThan(decimal.NewFromInt(100)) {
		return "O desconto deve estar entre 0 e 100"
	}
	for _, item := range dto.Itens {
		if strings.TrimSpace(item.Descricao) == "" {
			return "Todo item precisa de descrição"
		}
		if item.Quantidade.IsNegative() || item.PrecoUnit.IsNegative() {
			return "Quantidade e preço unitário não podem ser negativos"
		}
	}
	return ""
}

func (dto *orcamentoDTO) itens() []models.ItemOrcamento {
	itens := make([]models.ItemOrcamento, 0, len(dto.Itens))
	for _, item := range dto.Itens {
		itens = append(itens, models.ItemOrcamento{
			Descricao:  strings.TrimSpace(item.Descricao),
			Quantidade: item.Quantidade,
			PrecoUnit:  item.PrecoUnit,
		})
	}
	return itens
}

// Criar trata POST /api/orcamentos
func (h *Handler) Criar(w http.ResponseWriter, r *http.Request) {
	var dto orcamentoDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "JSON inválido", http.StatusBadRequest)
		return
	}
	if msg := dto.validar(); msg != "" {
		http.Error(w, msg, http.StatusBadRequest)
		return
	}
	if _, err := h.Clientes.BuscarPorID(dto.ClienteID); err != nil {
		http.Error(w, "Cliente não encontrado", http.StatusNotFound)
		return
	}

	o := models.Orcamento{
		ClienteID: dto.ClienteID,
		Titulo:    strings.TrimSpace(dto.Titulo),
		Descricao: dto.Descricao,
		Desconto:  dto.Desconto,
		Data:      dto.Data,
		Itens:     dto.itens(),
	}
	if err := h.Repository.Criar(&o); err != nil {
		http.Error(w, "Erro ao salvar orçamento", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(resposta(&o))
}

// Listar trata GET /api/orcamentos (aceita ?clienteId=)
func (h *Handler) Listar(w http.ResponseWriter, r *http.Request) {
	var (
		list []models.Orcamento
		err  error
	)
	if cid := r.URL.Query().Get("clienteId"); cid != "" {
		id, convErr := strconv.Atoi(cid)
		if convErr != nil {
			http.Error(w, "clienteId inválido", http.StatusBadRequest)
			return
		}
		list, err = h.Repository.ListarPorCliente(uint(id))
	} else {
		list, err = h.Repository.Listar()
	}
	if err != nil {
		http.Error(w, "Erro ao listar orçamentos", http.StatusInternalServerError)
		return
	}

	out := make([]respostaOrcamento, 0, len(list))
	for i := range list {
		out = append(out, resposta(&list[i]))
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(out)
}

// BuscarPorID trata GET /api/orcamentos/{id}
func (h *Handler) BuscarPorID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}
	o, err := h.Repository.BuscarPorID(uint(id))
	if err != nil {
		http.Error(w, "Orçamento não encontrado", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resposta(o))
}

// Atualizar trata PUT /api/orcamentos/{id}: substitui os dados e os itens.
func (h *Handler) Atualizar(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}
	existente, err := h.Repository.BuscarPorID(uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			http.Error(w, "Orçamento não encontrado", http.StatusNotFound)
			return
		}
		http.Error(w, "Erro ao buscar orçamento", http.StatusInternalServerError)
		return
	}

	var dto orcamentoDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "JSON inválido", http.StatusBadRequest)
		return
	}
	if msg := dto.validar(); msg != "" {
		http.Error(w, msg, http.StatusBadRequest)
		return
	}

	existente.ClienteID = dto.ClienteID
	existente.Titulo = strings.TrimSpace(dto.Titulo)
	existente.Descricao = dto.Descricao
	existente.Desconto = dto.Desconto
	existente.Data = dto.Data
	novosItens := dto.itens()
	for i := range novosItens {
		novosItens[i].OrcamentoID = existente.ID
	}
	existente.Itens = novosItens

	if err := h.Repository.Atualizar(existente); err != nil {
		http.Error(w, "Erro ao atualizar orçamento", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resposta(existente))
}

// Deletar trata DELETE /api/orcamentos/{id}
func (h *Handler) Deletar(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}
	if _, err := h.Repository.BuscarPorID(uint(id)); err != nil {
		http.Error(w, "Orçamento não encontrado", http.StatusNotFound)
		return
	}
	if err := h.Repository.Deletar(uint(id)); err != nil {
		http.Error(w, "Erro ao excluir orçamento", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// PDF trata GET /api/orcamentos/{id}/pdf
func (h *Handler) PDF(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}
	o, err := h.Repository.BuscarPorID(uint(id))
	if err != nil {
		http.Error(w, "Orçamento não encontrado", http.StatusNotFound)
		return
	}
	c, err := h.Clientes.BuscarPorID(o.ClienteID)
	if err != nil {
		http.Error(w, "Cliente do orçamento não encontrado", http.StatusNotFound)
		return
	}

	pdf, err := GerarPDF(o, c)
	if err != nil {
		http.Error(w, "Erro ao gerar PDF do orçamento", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `inline; filename="orcamento.pdf"`)
	_, _ = w.Write(pdf)
}
