package projeto

import (
	"github.com/CristalRio/api-vidracaria/internal/models"
	"gorm.io/gorm"
)

// Repository encapsula operações de banco para Projeto.
type Repository struct {
	DB *gorm.DB
}

// NewRepository cria um novo repositório.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

func (r *Repository) Criar(p *models.Projeto) error {
	return r.DB.Create(p).Error
}

func (r *Repository) Listar() ([]models.Projeto, error) {
	var list []models.Projeto
	err := r.DB.Order("created_at DESC").Find(&list).Error
	return list, err
}

func (r *Repository) ListarPorCliente(clienteID uint) ([]models.Projeto, error) {
	var list []models.Projeto
	err := r.DB.Where("cliente_id = ?", clienteID).Order("created_at DESC").Find(&list).Error
	return list, err
}

func (r *Repository) BuscarPorID(id uint) (*models.Projeto, error) {
	var p models.Projeto
	if err := r.DB.First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *Repository) BuscarPorIDCompleto(id uint) (*models.Projeto, error) {
	var p models.Projeto
	err := r.DB.
		Preload("Transacoes").
		Preload("Arquivos").
		Preload("Contas").
		First(&p, id).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *Repository) Atualizar(p *models.Projeto) error {
	return r.DB.Save(p).Error
}

func (r *Repository) AtualizarStatus(id uint, status string) error {
	return r.DB.Model(&models.Projeto{}).Where("id = ?", id).Update("status", status).Error
}

// Deletar remove o projeto; transações e arquivos caem via cascade, contas
// ficam com projeto_id nulo (ON DELETE SET NULL).
func (r *Repository) Deletar(id uint) error {
	return r.DB.Delete(&models.Projeto{}, id).Error
}
