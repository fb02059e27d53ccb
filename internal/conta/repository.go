package conta

import (
	"github.com/CristalRio/api-vidracaria/internal/models"
	"gorm.io/gorm"
)

// Repository encapsula operações de banco para Conta.
type Repository struct {
	DB *gorm.DB
}

// NewRepository cria um novo repositório.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

func (r *Repository) Criar(c *models.Conta) error {
	return r.DB.Create(c).Error
}

// Filtros de listagem; campos vazios são ignorados.
type Filtro struct {
	Tipo      string
	Status    string
	ProjetoID *uint
}

func (r *Repository) Listar(f Filtro) ([]models.Conta, error) {
	q := r.DB.Order("vencimento, id")
	if f.Tipo != "" {
		q = q.Where("tipo = ?", f.Tipo)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.ProjetoID != nil {
		q = q.Where("projeto_id = ?", *f.ProjetoID)
	}
	var list []models.Conta
	err := q.Find(&list).Error
	return list, err
}

// ListarPorProjeto devolve as contas do projeto em ordem de id, para que a
// seleção "primeira conta a receber" do motor seja determinística.
func (r *Repository) ListarPorProjeto(projetoID uint) ([]models.Conta, error) {
	var list []models.Conta
	err := r.DB.Where("projeto_id = ?", projetoID).Order("id").Find(&list).Error
	return list, err
}

func (r *Repository) BuscarPorID(id uint) (*models.Conta, error) {
	var c models.Conta
	if err := r.DB.First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *Repository) Atualizar(c *models.Conta) error {
	return r.DB.Save(c).Error
}

func (r *Repository) Deletar(id uint) error {
	return r.DB.Delete(&models.Conta{}, id).Error
}
