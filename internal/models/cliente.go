package models

import (
	"time"

	"gorm.io/gorm"
)

// NomeClienteAdministrativo é o nome reservado do cliente usado em projetos
// administrativos (despesas internas da vidraçaria, sem cliente real).
const NomeClienteAdministrativo = "Administrativo"

// Cliente representa um cliente da vidraçaria.
type Cliente struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deletedAt,omitempty"`

	Nome     string `gorm:"size:255;not null;index" json:"nome"`
	Contato  string `json:"contato"`
	Email    string `json:"email"`
	Telefone string `json:"telefone"`
	Endereco string `json:"endereco"`
	CNPJ     string `gorm:"size:20" json:"cnpj"`

	// Excluir um cliente remove também os projetos dele.
	Projetos   []Projeto   `gorm:"foreignKey:ClienteID;constraint:OnDelete:CASCADE" json:"projetos,omitempty"`
	Orcamentos []Orcamento `gorm:"foreignKey:ClienteID;constraint:OnDelete:CASCADE" json:"orcamentos,omitempty"`
}
