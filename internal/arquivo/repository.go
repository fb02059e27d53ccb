package arquivo

import (
	"github.com/CristalRio/api-vidracaria/internal/models"
	"gorm.io/gorm"
)

// Repository encapsula operações de banco para metadados de arquivos.
type Repository struct {
	DB *gorm.DB
}

// NewRepository cria um novo repositório.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

func (r *Repository) CriarDeProjeto(a *models.ArquivoProjeto) error {
	return r.DB.Create(a).Error
}

func (r *Repository) CriarDeTransacao(a *models.ArquivoTransacao) error {
	return r.DB.Create(a).Error
}

func (r *Repository) ListarPorProjeto(projetoID uint) ([]models.ArquivoProjeto, error) {
	var list []models.ArquivoProjeto
	err := r.DB.Where("projeto_id = ?", projetoID).Order("id").Find(&list).Error
	return list, err
}

func (r *Repository) ListarPorTransacao(transacaoID uint) ([]models.ArquivoTransacao, error) {
	var list []models.ArquivoTransacao
	err := r.DB.Where("transacao_id = ?", transacaoID).Order("id").Find(&list).Error
	return list, err
}

func (r *Repository) BuscarDeProjetoPorID(id uint) (*models.ArquivoProjeto, error) {
	var a models.ArquivoProjeto
	if err := r.DB.First(&a, id).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *Repository) BuscarDeTransacaoPorID(id uint) (*models.ArquivoTransacao, error) {
	var a models.ArquivoTransacao
	if err := r.DB.First(&a, id).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *Repository) DeletarDeProjeto(id uint) error {
	return r.DB.Delete(&models.ArquivoProjeto{}, id).Error
}

func (r *Repository) DeletarDeTransacao(id uint) error {
	return r.DB.Delete(&models.ArquivoTransacao{}, id).Error
}
