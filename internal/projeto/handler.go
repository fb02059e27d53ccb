package projeto

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/CristalRio/api-vidracaria/internal/cliente"
	"github.com/CristalRio/api-vidracaria/internal/models"
	"github.com/CristalRio/api-vidracaria/internal/reconciliacao"
	"github.com/CristalRio/api-vidracaria/internal/relatorio"
	"github.com/CristalRio/api-vidracaria/internal/transacao"
	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

// Handler encapsula DB, repositórios e o motor de reconciliação.
type Handler struct {
	DB         *gorm.DB
	Repository *Repository
	Clientes   *cliente.Repository
	Transacoes *transacao.Repository
	Engine     *reconciliacao.Engine
}

// NewHandler cria um novo handler de projetos.
func NewHandler(db *gorm.DB, engine *reconciliacao.Engine) *Handler {
	return &Handler{
		DB:         db,
		Repository: NewRepository(db),
		Clientes:   cliente.NewRepository(db),
		Transacoes: transacao.NewRepository(db),
		Engine:     engine,
	}
}

// Criar trata POST /api/projetos
func (h *Handler) Criar(w http.ResponseWriter, r *http.Request) {
	var dto criarProjetoDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "JSON inválido", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(dto.Nome) == "" {
		http.Error(w, "O campo 'nome' é obrigatório", http.StatusBadRequest)
		return
	}
	if dto.Valor.IsNegative() {
		http.Error(w, "O campo 'valor' não pode ser negativo", http.StatusBadRequest)
		return
	}
	if dto.Status == "" {
		dto.Status = models.ProjetoStatusOrcamento
	}
	if !models.StatusProjetoValido(dto.Status) {
		http.Error(w, "Status de projeto inválido", http.StatusBadRequest)
		return
	}

	// Projeto administrativo sem cliente cai no cliente singleton.
	if dto.ClienteID == 0 && dto.Tipo == models.ProjetoTipoAdministrativo {
		admin, err := h.Clientes.ObterOuCriarAdministrativo()
		if err != nil {
			http.Error(w, "Erro ao obter cliente administrativo", http.StatusInternalServerError)
			return
		}
		dto.ClienteID = admin.ID
	}
	if dto.ClienteID == 0 {
		http.Error(w, "O campo 'clienteId' é obrigatório", http.StatusBadRequest)
		return
	}
	if _, err := h.Clientes.BuscarPorID(dto.ClienteID); err != nil {
		http.Error(w, "Cliente não encontrado", http.StatusNotFound)
		return
	}

	p := models.Projeto{
		Nome:      strings.TrimSpace(dto.Nome),
		ClienteID: dto.ClienteID,
		Descricao: dto.Descricao,
		Valor:     dto.Valor.Round(2),
		Tipo:      dto.Tipo,
		Status:    dto.Status,
		Data:      dto.Data,
	}
	if err := h.Repository.Criar(&p); err != nil {
		http.Error(w, "Erro ao salvar projeto", http.StatusInternalServerError)
		return
	}

	h.Engine.SincronizarContasProjeto(&p)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(p)
}

// Listar trata GET /api/projetos (aceita ?clienteId=)
func (h *Handler) Listar(w http.ResponseWriter, r *http.Request) {
	var (
		list []models.Projeto
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
		http.Error(w, "Erro ao listar projetos", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(list)
}

// BuscarPorID trata GET /api/projetos/{id}
func (h *Handler) BuscarPorID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}
	p, err := h.Repository.BuscarPorIDCompleto(uint(id))
	if err != nil {
		http.Error(w, "Projeto não encontrado", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(p)
}

// Atualizar trata PATCH /api/projetos/{id} (merge parcial)
func (h *Handler) Atualizar(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}

	var existente models.Projeto
	if err := h.DB.First(&existente, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			http.Error(w, "Projeto não encontrado", http.StatusNotFound)
			return
		}
		http.Error(w, "Erro ao buscar projeto", http.StatusInternalServerError)
		return
	}

	var dto atualizarProjetoDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "JSON inválido", http.StatusBadRequest)
		return
	}
	if dto.Valor != nil && dto.Valor.IsNegative() {
		http.Error(w, "O campo 'valor' não pode ser negativo", http.StatusBadRequest)
		return
	}
	if dto.Status != nil && !models.StatusProjetoValido(*dto.Status) {
		http.Error(w, "Status de projeto inválido", http.StatusBadRequest)
		return
	}
	if dto.ClienteID != nil {
		if _, err := h.Clientes.BuscarPorID(*dto.ClienteID); err != nil {
			http.Error(w, "Cliente não encontrado", http.StatusNotFound)
			return
		}
	}

	dto.aplicar(&existente)
	existente.Valor = existente.Valor.Round(2)
	if err := h.Repository.Atualizar(&existente); err != nil {
		http.Error(w, "Erro ao atualizar projeto", http.StatusInternalServerError)
		return
	}

	h.Engine.SincronizarContasProjeto(&existente)

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(existente)
}

// AtualizarStatus trata PUT /api/projetos/{id}/status
func (h *Handler) AtualizarStatus(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}

	var payload struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "JSON inválido", http.StatusBadRequest)
		return
	}
	if !models.StatusProjetoValido(payload.Status) {
		http.Error(w, "Status de projeto inválido", http.StatusBadRequest)
		return
	}

	p, err := h.Repository.BuscarPorID(uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			http.Error(w, "Projeto não encontrado", http.StatusNotFound)
			return
		}
		http.Error(w, "Erro ao buscar projeto", http.StatusInternalServerError)
		return
	}

	if err := h.Repository.AtualizarStatus(uint(id), payload.Status); err != nil {
		http.Error(w, "Erro ao atualizar status", http.StatusInternalServerError)
		return
	}
	p.Status = payload.Status

	h.Engine.SincronizarContasProjeto(p)

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(p)
}

// Deletar trata DELETE /api/projetos/{id}
func (h *Handler) Deletar(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}
	if _, err := h.Repository.BuscarPorID(uint(id)); err != nil {
		http.Error(w, "Projeto não encontrado", http.StatusNotFound)
		return
	}
	if err := h.Repository.Deletar(uint(id)); err != nil {
		http.Error(w, "Erro ao excluir projeto", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Relatorio trata GET /api/projetos/{id}/relatorio?inicio=&fim=
func (h *Handler) Relatorio(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}
	p, err := h.Repository.BuscarPorID(uint(id))
	if err != nil {
		http.Error(w, "Projeto não encontrado", http.StatusNotFound)
		return
	}
	c, err := h.Clientes.BuscarPorID(p.ClienteID)
	if err != nil {
		http.Error(w, "Cliente do projeto não encontrado", http.StatusNotFound)
		return
	}
	transacoes, err := h.Transacoes.ListarPorProjeto(p.ID)
	if err != nil {
		http.Error(w, "Erro ao listar transações", http.StatusInternalServerError)
		return
	}

	inicio := r.URL.Query().Get("inicio")
	fim := r.URL.Query().Get("fim")

	pdf, err := relatorio.GerarRelatorioProjeto(p, c, transacoes, inicio, fim)
	if err != nil {
		http.Error(w, "Erro ao gerar relatório", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `inline; filename="relatorio-projeto.pdf"`)
	_, _ = w.Write(pdf)
}
