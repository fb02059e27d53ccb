package usuario

import (
	"errors"

	"github.com/CristalRio/api-vidracaria/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Repository encapsula operações de banco para Usuario.
type Repository struct {
	DB *gorm.DB
}

// NewRepository cria um novo repositório.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

func (r *Repository) Criar(u *models.Usuario) error {
	return r.DB.Create(u).Error
}

func (r *Repository) BuscarPorEmail(email string) (*models.Usuario, error) {
	var u models.Usuario
	if err := r.DB.Where("email = ?", email).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

// HashSenha gera o hash bcrypt da senha em texto.
func HashSenha(senha string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(senha), bcrypt.DefaultCost)
	return string(hash), err
}

// VerificarSenha compara o hash bcrypt com a senha em texto.
func VerificarSenha(hash, senha string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(senha)) == nil
}

// SeedAdmin cria o usuário administrador inicial se ainda não existir.
// Idempotente; usado no boot quando ADMIN_EMAIL/ADMIN_SENHA estão no env.
func (r *Repository) SeedAdmin(email, senha string) error {
	if email == "" || senha == "" {
		return nil
	}
	_, err := r.BuscarPorEmail(email)
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	hash, err := HashSenha(senha)
	if err != nil {
		return err
	}
	return r.Criar(&models.Usuario{
		Nome:      "Administrador",
		Email:     email,
		SenhaHash: hash,
		Admin:     true,
	})
}
