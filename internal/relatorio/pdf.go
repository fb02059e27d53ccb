// Package relatorio gera relatórios em PDF a partir dos dados das
// entidades. Funções puras de leitura: nenhuma mutação, erros de
// renderização sobem para o chamador.
package relatorio

import (
	"bytes"
	"fmt"

	"github.com/CristalRio/api-vidracaria/internal/models"
	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"
)

// GerarRelatorioProjeto monta o relatório financeiro de um projeto:
// cabeçalho, transações do período (datas "YYYY-MM-DD" comparadas
// lexicograficamente; limites vazios não filtram) e totais.
func GerarRelatorioProjeto(p *models.Projeto, c *models.Cliente, transacoes []models.Transacao, inicio, fim string) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 30

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(contentW, 9, "Relatório do Projeto", "", 1, "C", false, 0, "")
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(contentW, 6, p.Nome, "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(contentW, 5, "Cliente: "+c.Nome, "", 1, "L", false, 0, "")
	pdf.CellFormat(contentW, 5, fmt.Sprintf("Status: %s    Data: %s", p.Status, p.Data), "", 1, "L", false, 0, "")
	pdf.CellFormat(contentW, 5, "Valor contratado: R$ "+p.Valor.StringFixed(2), "", 1, "L", false, 0, "")
	if inicio != "" || fim != "" {
		pdf.CellFormat(contentW, 5, fmt.Sprintf("Período: %s a %s", ou(inicio, "início"), ou(fim, "hoje")), "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	col1 := contentW * 0.18
	col2 := contentW * 0.16
	col3 := contentW * 0.44
	col4 := contentW * 0.22

	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(col1, 6, "Data", "B", 0, "L", false, 0, "")
	pdf.CellFormat(col2, 6, "Tipo", "B", 0, "L", false, 0, "")
	pdf.CellFormat(col3, 6, "Descrição", "B", 0, "L", false, 0, "")
	pdf.CellFormat(col4, 6, "Valor", "B", 1, "R", false, 0, "")

	receitas := decimal.Zero
	despesas := decimal.Zero

	pdf.SetFont("Helvetica", "", 9)
	for _, t := range transacoes {
		if !dentroDoPeriodo(t.Data, inicio, fim) {
			continue
		}
		switch t.Tipo {
		case models.TransacaoReceita:
			receitas = receitas.Add(t.Valor)
		case models.TransacaoDespesa:
			despesas = despesas.Add(t.Valor)
		}
		pdf.CellFormat(col1, 6, t.Data, "", 0, "L", false, 0, "")
		pdf.CellFormat(col2, 6, t.Tipo, "", 0, "L", false, 0, "")
		pdf.CellFormat(col3, 6, t.Descricao, "", 0, "L", false, 0, "")
		pdf.CellFormat(col4, 6, "R$ "+t.Valor.StringFixed(2), "", 1, "R", false, 0, "")
	}

	pdf.Ln(2)
	pdf.Line(15, pdf.GetY(), pageW-15, pdf.GetY())
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(col1+col2+col3, 6, "Total de receitas:", "", 0, "R", false, 0, "")
	pdf.CellFormat(col4, 6, "R$ "+receitas.StringFixed(2), "", 1, "R", false, 0, "")
	pdf.CellFormat(col1+col2+col3, 6, "Total de despesas:", "", 0, "R", false, 0, "")
	pdf.CellFormat(col4, 6, "R$ "+despesas.StringFixed(2), "", 1, "R", false, 0, "")
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(col1+col2+col3, 7, "Saldo do período:", "", 0, "R", false, 0, "")
	pdf.CellFormat(col4, 7, "R$ "+receitas.Sub(despesas).StringFixed(2), "", 1, "R", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("pdf do relatório: %w", err)
	}
	return buf.Bytes(), nil
}

func dentroDoPeriodo(data, inicio, fim string) bool {
	if inicio != "" && data < inicio {
		return false
	}
	if fim != "" && data > fim {
		return false
	}
	return true
}

func ou(s, padrao string) string {
	if s == "" {
		return padrao
	}
	return s
}
