package orcamento

import (
	"github.com/CristalRio/api-vidracaria/internal/models"
	"gorm.io/gorm"
)

// Repository encapsula operações de banco para Orcamento.
type Repository struct {
	DB *gorm.DB
}

// NewRepository cria um novo repositório.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

func (r *Repository) Criar(o *models.Orcamento) error {
	return r.DB.Create(o).Error
}

func (r *Repository) Listar() ([]models.Orcamento, error) {
	var list []models.Orcamento
	err := r.DB.Preload("Itens").Order("created_at DESC").Find(&list).Error
	return list, err
}

func (r *Repository) ListarPorCliente(clienteID uint) ([]models.Orcamento, error) {
	var list []models.Orcamento
	err := r.DB.Preload("Itens").Where("cliente_id = ?", clienteID).Order("created_at DESC").Find(&list).Error
	return list, err
}

func (r *Repository) BuscarPorID(id uint) (*models.Orcamento, error) {
	var o models.Orcamento
	if err := r.DB.Preload("Itens").First(&o, id).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

// Atualizar regrava o orçamento substituindo os itens pelos enviados.
func (r *Repository) Atualizar(o *models.Orcamento) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("orcamento_id = ?", o.ID).Delete(&models.ItemOrcamento{}).Error; err != nil {
			return err
		}
		return tx.Session(&gorm.Session{FullSaveAssociations: true}).Save(o).Error
	})
}

func (r *Repository) Deletar(id uint) error {
	return r.DB.Delete(&models.Orcamento{}, id).Error
}
