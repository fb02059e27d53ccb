package usuario

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/CristalRio/api-vidracaria/internal/auth"
	"github.com/CristalRio/api-vidracaria/internal/models"
	"gorm.io/gorm"
)

// Handler encapsula DB, repository e o segredo do JWT.
type Handler struct {
	DB         *gorm.DB
	Repository *Repository
	JWTSecret  []byte
}

// NewHandler cria um novo handler de usuários.
func NewHandler(db *gorm.DB, jwtSecret []byte) *Handler {
	return &Handler{DB: db, Repository: NewRepository(db), JWTSecret: jwtSecret}
}

type loginDTO struct {
	Email string `json:"email"`
	Senha string `json:"senha"`
}

type loginResposta struct {
	Token   string         `json:"token"`
	Usuario models.Usuario `json:"usuario"`
}

// Login trata POST /api/login
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var dto loginDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "JSON inválido", http.StatusBadRequest)
		return
	}

	u, err := h.Repository.BuscarPorEmail(strings.TrimSpace(dto.Email))
	if err != nil || !VerificarSenha(u.SenhaHash, dto.Senha) {
		http.Error(w, "Credenciais inválidas", http.StatusUnauthorized)
		return
	}

	token, err := auth.GerarToken(h.JWTSecret, u.ID, u.Admin)
	if err != nil {
		http.Error(w, "Erro ao gerar token", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(loginResposta{Token: token, Usuario: *u})
}

type criarUsuarioDTO struct {
	Nome  string `json:"nome"`
	Email string `json:"email"`
	Senha string `json:"senha"`
	Admin bool   `json:"admin"`
}

// Criar trata POST /api/usuarios (restrito a admin via middleware).
func (h *Handler) Criar(w http.ResponseWriter, r *http.Request) {
	var dto criarUsuarioDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "JSON inválido", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(dto.Email) == "" || dto.Senha == "" {
		http.Error(w, "Os campos 'email' e 'senha' são obrigatórios", http.StatusBadRequest)
		return
	}

	hash, err := HashSenha(dto.Senha)
	if err != nil {
		http.Error(w, "Erro ao processar a senha", http.StatusInternalServerError)
		return
	}
	u := models.Usuario{
		Nome:      strings.TrimSpace(dto.Nome),
		Email:     strings.TrimSpace(dto.Email),
		SenhaHash: hash,
		Admin:     dto.Admin,
	}
	if err := h.Repository.Criar(&u); err != nil {
		http.Error(w, "Erro ao salvar usuário (e-mail já cadastrado?)", http.StatusConflict)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(u)
}
