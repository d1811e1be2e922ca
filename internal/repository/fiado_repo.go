package repository

import (
	"context"
	"time"

	"github.com/guilhermegamabs/fiado-v2/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// FiadoRepository covers the two immutable ledger streams (fiados and
// pagamentos) plus the legacy settle flag. Tx variants exist for the methods
// that participate in the payment atomic unit.
type FiadoRepository interface {
	CreateFiado(ctx context.Context, f *model.Fiado) error
	ListByCliente(ctx context.Context, clienteID uuid.UUID) ([]model.Fiado, error)

	CreatePagamentoTx(ctx context.Context, tx *gorm.DB, p *model.Pagamento) error
	UltimosPagamentos(ctx context.Context, clienteID uuid.UUID, limite int) ([]model.Pagamento, error)

	SumFiados(ctx context.Context, clienteID uuid.UUID) (decimal.Decimal, error)
	SumPagamentos(ctx context.Context, clienteID uuid.UUID) (decimal.Decimal, error)

	// Legacy visual settle pass (inside the payment transaction).
	ListNaoPagosTx(ctx context.Context, tx *gorm.DB, clienteID uuid.UUID) ([]model.Fiado, error)
	SumPagamentosTx(ctx context.Context, tx *gorm.DB, clienteID uuid.UUID) (decimal.Decimal, error)
	SumFiadosBaixadosTx(ctx context.Context, tx *gorm.DB, clienteID uuid.UUID) (decimal.Decimal, error)
	MarcarPagoTx(ctx context.Context, tx *gorm.DB, fiadoID uuid.UUID, quando time.Time) error

	// Dashboard aggregates.
	SumFiadosDia(ctx context.Context, dia time.Time) (decimal.Decimal, error)
	SumPagamentosDia(ctx context.Context, dia time.Time) (decimal.Decimal, error)
	SumFiadosGeral(ctx context.Context) (decimal.Decimal, error)
	SumPagamentosGeral(ctx context.Context) (decimal.Decimal, error)

	// Reporting.
	SumPagamentosPeriodo(ctx context.Context, de, ate time.Time) (decimal.Decimal, error)

	DB() *gorm.DB
}

type fiadoRepo struct{ db *gorm.DB }

func NewFiadoRepository(db *gorm.DB) FiadoRepository { return &fiadoRepo{db: db} }

func (r *fiadoRepo) DB() *gorm.DB { return r.db }

func (r *fiadoRepo) CreateFiado(ctx context.Context, f *model.Fiado) error {
	return r.db.WithContext(ctx).Create(f).Error
}

func (r *fiadoRepo) ListByCliente(ctx context.Context, clienteID uuid.UUID) ([]model.Fiado, error) {
	var fiados []model.Fiado
	err := r.db.WithContext(ctx).
		Where("cliente_id = ?", clienteID).
		Order("data_registro ASC").
		Find(&fiados).Error
	return fiados, err
}

func (r *fiadoRepo) CreatePagamentoTx(ctx context.Context, tx *gorm.DB, p *model.Pagamento) error {
	return tx.WithContext(ctx).Create(p).Error
}

func (r *fiadoRepo) UltimosPagamentos(ctx context.Context, clienteID uuid.UUID, limite int) ([]model.Pagamento, error) {
	var pags []model.Pagamento
	err := r.db.WithContext(ctx).
		Where("cliente_id = ?", clienteID).
		Order("data_pagamento DESC").
		Limit(limite).
		Find(&pags).Error
	return pags, err
}

// sumValor runs COALESCE(SUM(valor),0) so zero rows yield 0, never NULL.
func sumValor(ctx context.Context, db *gorm.DB, table, where string, args ...interface{}) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := db.WithContext(ctx).
		Table(table).
		Select("COALESCE(SUM(valor), 0)").
		Where(where, args...).
		Scan(&total).Error
	return total, err
}

func (r *fiadoRepo) SumFiados(ctx context.Context, clienteID uuid.UUID) (decimal.Decimal, error) {
	return sumValor(ctx, r.db, "fiados", "cliente_id = ?", clienteID)
}

func (r *fiadoRepo) SumPagamentos(ctx context.Context, clienteID uuid.UUID) (decimal.Decimal, error) {
	return sumValor(ctx, r.db, "pagamentos", "cliente_id = ?", clienteID)
}

func (r *fiadoRepo) ListNaoPagosTx(ctx context.Context, tx *gorm.DB, clienteID uuid.UUID) ([]model.Fiado, error) {
	var fiados []model.Fiado
	err := tx.WithContext(ctx).
		Where("cliente_id = ? AND pago = false", clienteID).
		Order("data_registro ASC").
		Find(&fiados).Error
	return fiados, err
}

func (r *fiadoRepo) SumPagamentosTx(ctx context.Context, tx *gorm.DB, clienteID uuid.UUID) (decimal.Decimal, error) {
	return sumValor(ctx, tx, "pagamentos", "cliente_id = ?", clienteID)
}

func (r *fiadoRepo) SumFiadosBaixadosTx(ctx context.Context, tx *gorm.DB, clienteID uuid.UUID) (decimal.Decimal, error) {
	return sumValor(ctx, tx, "fiados", "cliente_id = ? AND pago = true", clienteID)
}

func (r *fiadoRepo) MarcarPagoTx(ctx context.Context, tx *gorm.DB, fiadoID uuid.UUID, quando time.Time) error {
	return tx.WithContext(ctx).
		Model(&model.Fiado{}).
		Where("id = ?", fiadoID).
		Updates(map[string]interface{}{"pago": true, "data_pagamento": quando}).Error
}

func (r *fiadoRepo) SumFiadosDia(ctx context.Context, dia time.Time) (decimal.Decimal, error) {
	return sumValor(ctx, r.db, "fiados", "DATE(data_registro) = ?", dia.Format("2006-01-02"))
}

func (r *fiadoRepo) SumPagamentosDia(ctx context.Context, dia time.Time) (decimal.Decimal, error) {
	return sumValor(ctx, r.db, "pagamentos", "DATE(data_pagamento) = ?", dia.Format("2006-01-02"))
}

func (r *fiadoRepo) SumFiadosGeral(ctx context.Context) (decimal.Decimal, error) {
	return sumValor(ctx, r.db, "fiados", "1 = 1")
}

func (r *fiadoRepo) SumPagamentosGeral(ctx context.Context) (decimal.Decimal, error) {
	return sumValor(ctx, r.db, "pagamentos", "1 = 1")
}

func (r *fiadoRepo) SumPagamentosPeriodo(ctx context.Context, de, ate time.Time) (decimal.Decimal, error) {
	return sumValor(ctx, r.db, "pagamentos", "DATE(data_pagamento) BETWEEN ? AND ?",
		de.Format("2006-01-02"), ate.Format("2006-01-02"))
}
