package infra

// pdf.go — Monthly report PDF rendering using go-pdf/fpdf.
// Produces an A4 one-pager with the period totals followed by the itemized
// expense and register-closing tables, for download/archival.

import (
	"bytes"
	"fmt"

	"github.com/guilhermegamabs/fiado-v2/internal/dto"

	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"
)

var nomesMeses = [...]string{"", "Janeiro", "Fevereiro", "Março", "Abril", "Maio", "Junho",
	"Julho", "Agosto", "Setembro", "Outubro", "Novembro", "Dezembro"}

// NomeMes returns the Portuguese month name (1-based), or "?" out of range.
func NomeMes(mes int) string {
	if mes < 1 || mes > 12 {
		return "?"
	}
	return nomesMeses[mes]
}

func brl(v decimal.Decimal) string {
	return "R$ " + v.StringFixed(2)
}

// GenerateRelatorioPDF renders the monthly report as a PDF document.
func GenerateRelatorioPDF(rel *dto.RelatorioMesResponse) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	// Core fonts are cp1252; tr maps the Portuguese accents.
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 30

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(contentW, 9, tr("Relatório Financeiro"), "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(contentW, 6, fmt.Sprintf("%s / %d", tr(NomeMes(rel.Mes)), rel.Ano), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	// ── Totals ───────────────────────────────────────────────────────────────
	linha := func(label string, valor decimal.Decimal, bold bool) {
		style := ""
		if bold {
			style = "B"
		}
		pdf.SetFont("Helvetica", style, 10)
		pdf.CellFormat(contentW*0.6, 6, tr(label), "", 0, "L", false, 0, "")
		pdf.CellFormat(contentW*0.4, 6, brl(valor), "", 1, "R", false, 0, "")
	}
	linha("Entradas de caixa", rel.EntradasCaixa, false)
	linha("Recuperado de fiado (informativo)", rel.RecuperadoFiado, false)
	linha("Total de saídas", rel.TotalSaidas, false)
	linha("Saldo do mês", rel.Saldo, true)
	pdf.Ln(5)

	// ── Despesas ─────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(contentW, 7, "Despesas", "B", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	if len(rel.Despesas) == 0 {
		pdf.CellFormat(contentW, 6, tr("Nenhuma despesa no período."), "", 1, "L", false, 0, "")
	}
	for _, d := range rel.Despesas {
		pdf.CellFormat(contentW*0.2, 5.5, d.Data, "", 0, "L", false, 0, "")
		pdf.CellFormat(contentW*0.4, 5.5, tr(d.Descricao), "", 0, "L", false, 0, "")
		pdf.CellFormat(contentW*0.2, 5.5, tr(d.Categoria), "", 0, "L", false, 0, "")
		pdf.CellFormat(contentW*0.2, 5.5, brl(d.Valor), "", 1, "R", false, 0, "")
	}
	pdf.Ln(4)

	// ── Caixas ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(contentW, 7, "Fechamentos de caixa", "B", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	if len(rel.Caixas) == 0 {
		pdf.CellFormat(contentW, 6, tr("Nenhum fechamento no período."), "", 1, "L", false, 0, "")
	}
	for _, c := range rel.Caixas {
		pdf.CellFormat(contentW*0.25, 5.5, c.Data, "", 0, "L", false, 0, "")
		pdf.CellFormat(contentW*0.5, 5.5,
			tr(fmt.Sprintf("din %s  moeda %s  cartão %s  pix %s",
				c.Dinheiro.StringFixed(2), c.Moeda.StringFixed(2),
				c.Cartao.StringFixed(2), c.Pix.StringFixed(2))),
			"", 0, "L", false, 0, "")
		pdf.CellFormat(contentW*0.25, 5.5, brl(c.Total), "", 1, "R", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("pdf: %w", err)
	}
	return buf.Bytes(), nil
}
