package cliente

import (
	"github.com/CristalRio/api-vidracaria/internal/models"
	"gorm.io/gorm"
)

// Repository encapsula operações de banco para Cliente.
type Repository struct {
	DB *gorm.DB
}

// NewRepository cria um novo repositório.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

func (r *Repository) Criar(c *models.Cliente) error {
	return r.DB.Create(c).Error
}

func (r *Repository) Listar() ([]models.Cliente, error) {
	var list []models.Cliente
	err := r.DB.Order("nome").Find(&list).Error
	return list, err
}

func (r *Repository) BuscarPorID(id uint) (*models.Cliente, error) {
	var c models.Cliente
	if err := r.DB.Preload("Projetos").First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *Repository) Atualizar(c *models.Cliente) error {
	return r.DB.Save(c).Error
}

// Deletar remove o cliente; os projetos dele caem junto via cascade.
func (r *Repository) Deletar(id uint) error {
	return r.DB.Delete(&models.Cliente{}, id).Error
}

// ObterOuCriarAdministrativo devolve o cliente administrativo singleton,
// criando-o na primeira vez. Idempotente, chaveado pelo nome reservado.
func (r *Repository) ObterOuCriarAdministrativo() (*models.Cliente, error) {
	var c models.Cliente
	err := r.DB.
		Where(models.Cliente{Nome: models.NomeClienteAdministrativo}).
		FirstOrCreate(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}
