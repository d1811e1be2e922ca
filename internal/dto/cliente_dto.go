package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CriarClienteRequest struct {
	Nome string `json:"nome" validate:"required,min=2"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

// ClienteComDivida is one row of the customer list, ordered by who owes most.
// DividaTotal can be negative when the cliente is in credit.
type ClienteComDivida struct {
	ID          string          `json:"id"`
	Nome        string          `json:"nome"`
	DividaTotal decimal.Decimal `json:"divida_total"`
}

// ClienteDetalheResponse is the full customer view: live-computed outstanding
// items, the latest payments and the authoritative balance.
type ClienteDetalheResponse struct {
	ID         string              `json:"id"`
	Nome       string              `json:"nome"`
	Saldo      decimal.Decimal     `json:"saldo"`
	Itens      []ItemPendente      `json:"itens_pendentes"`
	Pagamentos []PagamentoResponse `json:"ultimos_pagamentos"`
}
