package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

// FecharCaixaRequest closes (or re-closes) today's register. Amounts are per
// tender type; all default to zero so a cash-only day is just {"dinheiro": N}.
type FecharCaixaRequest struct {
	Dinheiro   decimal.Decimal `json:"dinheiro" validate:"min=0"`
	Moeda      decimal.Decimal `json:"moeda"    validate:"min=0"`
	Cartao     decimal.Decimal `json:"cartao"   validate:"min=0"`
	Pix        decimal.Decimal `json:"pix"      validate:"min=0"`
	Observacao *string         `json:"observacao"`
}

type NovaDespesaRequest struct {
	Descricao string          `json:"descricao" validate:"required,min=2"`
	Valor     decimal.Decimal `json:"valor"     validate:"required,gt=0"`
	Categoria string          `json:"categoria" validate:"required"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type CaixaDiaResponse struct {
	Data       string          `json:"data"`
	Dinheiro   decimal.Decimal `json:"dinheiro"`
	Moeda      decimal.Decimal `json:"moeda"`
	Cartao     decimal.Decimal `json:"cartao"`
	Pix        decimal.Decimal `json:"pix"`
	Total      decimal.Decimal `json:"total"`
	Observacao *string         `json:"observacao"`
}

type DespesaResponse struct {
	ID        string          `json:"id"`
	Data      string          `json:"data"`
	Descricao string          `json:"descricao"`
	Valor     decimal.Decimal `json:"valor"`
	Categoria string          `json:"categoria"`
}

// RelatorioMesResponse is the monthly report.
//
// RecuperadoFiado is informational only: that money was (or will be) counted
// in a day's register closing, so adding it to Saldo would double-count it.
// Saldo is strictly EntradasCaixa − TotalSaidas.
type RelatorioMesResponse struct {
	Mes             int                `json:"mes"`
	Ano             int                `json:"ano"`
	EntradasCaixa   decimal.Decimal    `json:"entradas_caixa"`
	RecuperadoFiado decimal.Decimal    `json:"recuperado_fiado"`
	TotalSaidas     decimal.Decimal    `json:"total_saidas"`
	Saldo           decimal.Decimal    `json:"saldo"`
	Despesas        []DespesaResponse  `json:"despesas"`
	Caixas          []CaixaDiaResponse `json:"caixas"`
}

// HistoricoMes is one row of the annual history list.
type HistoricoMes struct {
	Mes   int             `json:"mes"`
	Ano   int             `json:"ano"`
	Saldo decimal.Decimal `json:"saldo"`
}

type FinanceiroResponse struct {
	Relatorio RelatorioMesResponse `json:"relatorio"`
	Historico []HistoricoMes       `json:"historico"`
}
