package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type RegistrarFiadoRequest struct {
	Descricao string          `json:"descricao" validate:"required,min=2"`
	Valor     decimal.Decimal `json:"valor"     validate:"required,gt=0"`
}

type RegistrarPagamentoRequest struct {
	Valor decimal.Decimal `json:"valor" validate:"required,gt=0"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

// Allocation status of an outstanding item. A fully covered fiado never
// appears in the list, so there is no "Pago" status here.
const (
	StatusPendente = "Pendente"
	StatusParcial  = "Parcial"
)

// ItemPendente is a fiado that still has an open remainder after the FIFO
// allocation of all lifetime payments against charges in creation order.
type ItemPendente struct {
	ID            string          `json:"id"`
	Descricao     string          `json:"descricao"`
	Valor         decimal.Decimal `json:"valor"`
	ValorRestante decimal.Decimal `json:"valor_restante"`
	Status        string          `json:"status"` // Pendente | Parcial
	DataRegistro  string          `json:"data_registro"`
}

type PagamentoResponse struct {
	ID            string          `json:"id"`
	Valor         decimal.Decimal `json:"valor"`
	DataPagamento string          `json:"data_pagamento"`
}

// DashboardResponse carries the landing-page aggregates.
type DashboardResponse struct {
	FiadoHoje    decimal.Decimal `json:"fiado_hoje"`
	RecebidoHoje decimal.Decimal `json:"recebido_hoje"`
	TotalRua     decimal.Decimal `json:"total_rua"` // Σ fiados − Σ pagamentos, all customers
}
