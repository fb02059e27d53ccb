package projeto

import (
	"strings"

	"github.com/CristalRio/api-vidracaria/internal/models"
	"github.com/shopspring/decimal"
)

type criarProjetoDTO struct {
	Nome      string          `json:"nome"`
	ClienteID uint            `json:"clienteId"`
	Descricao string          `json:"descricao"`
	Valor     decimal.Decimal `json:"valor"`
	Tipo      string          `json:"tipo"`
	Status    string          `json:"status"`
	Data      string          `json:"data"`
}

// atualizarProjetoDTO é o payload de PATCH: só os campos presentes no JSON
// são aplicados (merge parcial).
type atualizarProjetoDTO struct {
	Nome      *string          `json:"nome"`
	ClienteID *uint            `json:"clienteId"`
	Descricao *string          `json:"descricao"`
	Valor     *decimal.Decimal `json:"valor"`
	Tipo      *string          `json:"tipo"`
	Status    *string          `json:"status"`
	Data      *string          `json:"data"`
}

// aplicar copia para o projeto apenas os campos enviados.
func (dto *atualizarProjetoDTO) aplicar(p *models.Projeto) {
	if dto.Nome != nil {
		p.Nome = strings.TrimSpace(*dto.Nome)
	}
	if dto.ClienteID != nil {
		p.ClienteID = *dto.ClienteID
	}
	if dto.Descricao != nil {
		p.Descricao = *dto.Descricao
	}
	if dto.Valor != nil {
		p.Valor = *dto.Valor
	}
	if dto.Tipo != nil {
		p.Tipo = *dto.Tipo
	}
	if dto.Status != nil {
		p.Status = *dto.Status
	}
	if dto.Data != nil {
		p.Data = *dto.Data
	}
}
