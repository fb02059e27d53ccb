package arquivo

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/CristalRio/api-vidracaria/internal/models"
	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

// Limite de upload: 20 MB por arquivo.
const tamanhoMaximoUpload = 20 << 20

// Handler encapsula DB, repository e o storage de objetos.
type Handler struct {
	DB         *gorm.DB
	Repository *Repository
	Storage    *Storage
}

// NewHandler cria um novo handler de arquivos.
func NewHandler(db *gorm.DB, storage *Storage) *Handler {
	return &Handler{DB: db, Repository: NewRepository(db), Storage: storage}
}

// buscadorArquivos é o que a resolução de download/exclusão precisa do
// repositório.
type buscadorArquivos interface {
	BuscarDeProjetoPorID(id uint) (*models.ArquivoProjeto, error)
	BuscarDeTransacaoPorID(id uint) (*models.ArquivoTransacao, error)
}

// arquivoResolvido é a visão comum de um arquivo de projeto ou de transação.
type arquivoResolvido struct {
	Nome        string
	Caminho     string
	ContentType string
	DeTransacao bool
}

// resolverArquivo procura o metadado primeiro entre arquivos de projeto e
// depois entre arquivos de transação. As duas tabelas têm sequências de ID
// separadas; em colisão o arquivo de projeto vence.
func resolverArquivo(repo buscadorArquivos, id uint) (*arquivoResolvido, error) {
	p, err := repo.BuscarDeProjetoPorID(id)
	if err == nil {
		return &arquivoResolvido{Nome: p.Nome, Caminho: p.Caminho, ContentType: p.ContentType}, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	t, err := repo.BuscarDeTransacaoPorID(id)
	if err != nil {
		return nil, err
	}
	return &arquivoResolvido{Nome: t.Nome, Caminho: t.Caminho, ContentType: t.ContentType, DeTransacao: true}, nil
}

// gravarComRegistro grava o objeto e registra os metadados; se o registro
// falhar, o objeto é removido para não deixar órfão no storage.
func gravarComRegistro(s *Storage, chave string, dados []byte, registrar func() error) error {
	if err := s.Gravar(chave, dados); err != nil {
		return err
	}
	if err := registrar(); err != nil {
		_ = s.Remover(chave)
		return err
	}
	return nil
}

// Upload trata POST /api/arquivos/upload (multipart: campo "arquivo" +
// "projetoId" ou "transacaoId"). Valida o dono, grava o objeto e registra
// os metadados.
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(tamanhoMaximoUpload); err != nil {
		http.Error(w, "Upload inválido ou arquivo grande demais", http.StatusBadRequest)
		return
	}
	file, header, err := r.FormFile("arquivo")
	if err != nil {
		http.Error(w, "O campo 'arquivo' é obrigatório", http.StatusBadRequest)
		return
	}
	defer file.Close()

	projetoID, _ := strconv.Atoi(r.FormValue("projetoId"))
	transacaoID, _ := strconv.Atoi(r.FormValue("transacaoId"))
	if (projetoID == 0) == (transacaoID == 0) {
		http.Error(w, "Informe 'projetoId' ou 'transacaoId' (exatamente um)", http.StatusBadRequest)
		return
	}

	// O dono precisa existir antes de qualquer escrita no storage.
	if projetoID != 0 {
		var p models.Projeto
		if err := h.DB.First(&p, projetoID).Error; err != nil {
			http.Error(w, "Projeto não encontrado", http.StatusNotFound)
			return
		}
	} else {
		var t models.Transacao
		if err := h.DB.First(&t, transacaoID).Error; err != nil {
			http.Error(w, "Transação não encontrada", http.StatusNotFound)
			return
		}
	}

	dados, err := io.ReadAll(io.LimitReader(file, tamanhoMaximoUpload))
	if err != nil {
		http.Error(w, "Erro ao ler o arquivo", http.StatusBadRequest)
		return
	}

	chave := h.Storage.NovaChave(header.Filename)
	contentType := header.Header.Get("Content-Type")
	w.Header().Set("Content-Type", "application/json")

	if projetoID != 0 {
		meta := models.ArquivoProjeto{
			ProjetoID:   uint(projetoID),
			Nome:        header.Filename,
			Caminho:     chave,
			Tamanho:     int64(len(dados)),
			ContentType: contentType,
		}
		if err := gravarComRegistro(h.Storage, chave, dados, func() error {
			return h.Repository.CriarDeProjeto(&meta)
		}); err != nil {
			http.Error(w, "Erro ao gravar o arquivo", http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(meta)
		return
	}

	meta := models.ArquivoTransacao{
		TransacaoID: uint(transacaoID),
		Nome:        header.Filename,
		Caminho:     chave,
		Tamanho:     int64(len(dados)),
		ContentType: contentType,
	}
	if err := gravarComRegistro(h.Storage, chave, dados, func() error {
		return h.Repository.CriarDeTransacao(&meta)
	}); err != nil {
		http.Error(w, "Erro ao gravar o arquivo", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(meta)
}

// ListarPorProjeto trata GET /api/projetos/{id}/arquivos
func (h *Handler) ListarPorProjeto(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}
	list, err := h.Repository.ListarPorProjeto(uint(id))
	if err != nil {
		http.Error(w, "Erro ao listar arquivos", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(list)
}

// ListarPorTransacao trata GET /api/transacoes/{id}/arquivos
func (h *Handler) ListarPorTransacao(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}
	list, err := h.Repository.ListarPorTransacao(uint(id))
	if err != nil {
		http.Error(w, "Erro ao listar arquivos", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(list)
}

// Download trata GET /api/arquivos/{id}/download, para arquivos de projeto
// e de transação.
func (h *Handler) Download(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}
	meta, err := resolverArquivo(h.Repository, uint(id))
	if err != nil {
		http.Error(w, "Arquivo não encontrado", http.StatusNotFound)
		return
	}
	dados, err := h.Storage.Ler(meta.Caminho)
	if err != nil {
		http.Error(w, "Erro ao ler o arquivo", http.StatusInternalServerError)
		return
	}
	if meta.ContentType != "" {
		w.Header().Set("Content-Type", meta.ContentType)
	} else {
		w.Header().Set("Content-Type", "application/octet-stream")
	}
	w.Header().Set("Content-Disposition", `attachment; filename="`+meta.Nome+`"`)
	_, _ = w.Write(dados)
}

// Deletar trata DELETE /api/arquivos/{id}: remove metadados e objeto, para
// arquivos de projeto e de transação.
func (h *Handler) Deletar(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}
	meta, err := resolverArquivo(h.Repository, uint(id))
	if err != nil {
		http.Error(w, "Arquivo não encontrado", http.StatusNotFound)
		return
	}
	if meta.DeTransacao {
		err = h.Repository.DeletarDeTransacao(uint(id))
	} else {
		err = h.Repository.DeletarDeProjeto(uint(id))
	}
	if err != nil {
		http.Error(w, "Erro ao excluir arquivo", http.StatusInternalServerError)
		return
	}
	_ = h.Storage.Remover(meta.Caminho)
	w.WriteHeader(http.StatusNoContent)
}
