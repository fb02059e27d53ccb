package transacao

import (
	"github.com/CristalRio/api-vidracaria/internal/models"
	"gorm.io/gorm"
)

// Repository encapsula operações de banco para Transacao.
type Repository struct {
	DB *gorm.DB
}

// NewRepository cria um novo repositório.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

func (r *Repository) Criar(t *models.Transacao) error {
	return r.DB.Create(t).Error
}

func (r *Repository) Listar() ([]models.Transacao, error) {
	var list []models.Transacao
	err := r.DB.Order("data DESC, id DESC").Find(&list).Error
	return list, err
}

func (r *Repository) ListarPorProjeto(projetoID uint) ([]models.Transacao, error) {
	var list []models.Transacao
	err := r.DB.Where("projeto_id = ?", projetoID).Order("id").Find(&list).Error
	return list, err
}

func (r *Repository) BuscarPorID(id uint) (*models.Transacao, error) {
	var t models.Transacao
	if err := r.DB.First(&t, id).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *Repository) Atualizar(t *models.Transacao) error {
	return r.DB.Save(t).Error
}

func (r *Repository) Deletar(id uint) error {
	return r.DB.Delete(&models.Transacao{}, id).Error
}
