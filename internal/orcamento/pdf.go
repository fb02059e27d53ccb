package orcamento

import (
	"bytes"
	"fmt"

	"github.com/CristalRio/api-vidracaria/internal/models"
	"github.com/go-pdf/fpdf"
)

// GerarPDF monta o documento do orçamento: bloco do cliente, tabela de
// itens, subtotal, desconto e total. Só leitura, sem efeito colateral.
func GerarPDF(o *models.Orcamento, c *models.Cliente) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 30

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(contentW, 9, "Orçamento", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(contentW, 5, fmt.Sprintf("Nº %d  -  %s", o.ID, o.Data), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	// Bloco do cliente
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(contentW, 6, "Cliente", "B", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(contentW, 5, c.Nome, "", 1, "L", false, 0, "")
	if c.Endereco != "" {
		pdf.CellFormat(contentW, 5, c.Endereco, "", 1, "L", false, 0, "")
	}
	if c.Telefone != "" || c.Email != "" {
		pdf.CellFormat(contentW, 5, fmt.Sprintf("%s  %s", c.Telefone, c.Email), "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	if o.Titulo != "" {
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(contentW, 6, o.Titulo, "", 1, "L", false, 0, "")
	}
	if o.Descricao != "" {
		pdf.SetFont("Helvetica", "", 9)
		pdf.MultiCell(contentW, 5, o.Descricao, "", "L", false)
	}
	pdf.Ln(2)

	// Tabela de itens
	col1 := contentW * 0.52
	col2 := contentW * 0.12
	col3 := contentW * 0.18
	col4 := contentW * 0.18

	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(col1, 6, "Descrição", "B", 0, "L", false, 0, "")
	pdf.CellFormat(col2, 6, "Qtd", "B", 0, "C", false, 0, "")
	pdf.CellFormat(col3, 6, "Preço unit.", "B", 0, "R", false, 0, "")
	pdf.CellFormat(col4, 6, "Subtotal", "B", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	for _, item := range o.Itens {
		subtotal := item.Quantidade.Mul(item.PrecoUnit)
		pdf.CellFormat(col1, 6, item.Descricao, "", 0, "L", false, 0, "")
		pdf.CellFormat(col2, 6, item.Quantidade.String(), "", 0, "C", false, 0, "")
		pdf.CellFormat(col3, 6, "R$ "+item.PrecoUnit.StringFixed(2), "", 0, "R", false, 0, "")
		pdf.CellFormat(col4, 6, "R$ "+subtotal.StringFixed(2), "", 1, "R", false, 0, "")
	}

	pdf.Ln(2)
	pdf.Line(15, pdf.GetY(), pageW-15, pdf.GetY())
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(col1+col2+col3, 6, "Subtotal:", "", 0, "R", false, 0, "")
	pdf.CellFormat(col4, 6, "R$ "+o.Subtotal().StringFixed(2), "", 1, "R", false, 0, "")
	if !o.Desconto.IsZero() {
		pdf.CellFormat(col1+col2+col3, 6, fmt.Sprintf("Desconto (%s%%):", o.Desconto.String()), "", 0, "R", false, 0, "")
		pdf.CellFormat(col4, 6, "-R$ "+o.Subtotal().Sub(o.Total()).StringFixed(2), "", 1, "R", false, 0, "")
	}
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(col1+col2+col3, 8, "TOTAL:", "", 0, "R", false, 0, "")
	pdf.CellFormat(col4, 8, "R$ "+o.Total().StringFixed(2), "", 1, "R", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("pdf do orçamento: %w", err)
	}
	return buf.Bytes(), nil
}
