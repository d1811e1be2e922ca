package repository

import (
	"context"
	"time"

	"github.com/guilhermegamabs/fiado-v2/internal/model"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// MesAno identifies a month with at least one financial movement.
type MesAno struct {
	Mes int
	Ano int
}

type CaixaRepository interface {
	// Upsert inserts the closing for c.DataReferencia or overwrites the
	// existing row's amounts and note. Never a second row for the same date.
	Upsert(ctx context.Context, c *model.CaixaDiario) error
	ListPeriodo(ctx context.Context, de, ate time.Time) ([]model.CaixaDiario, error)
	SumPeriodo(ctx context.Context, de, ate time.Time) (decimal.Decimal, error)
	MesesDisponiveis(ctx context.Context) ([]MesAno, error)
}

type caixaRepo struct{ db *gorm.DB }

func NewCaixaRepository(db *gorm.DB) CaixaRepository { return &caixaRepo{db: db} }

func (r *caixaRepo) Upsert(ctx context.Context, c *model.CaixaDiario) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "data_referencia"}},
		DoUpdates: clause.AssignmentColumns([]string{"dinheiro", "moeda", "cartao", "pix", "observacao", "updated_at"}),
	}).Create(c).Error
}

func (r *caixaRepo) ListPeriodo(ctx context.Context, de, ate time.Time) ([]model.CaixaDiario, error) {
	var rows []model.CaixaDiario
	err := r.db.WithContext(ctx).
		Where("data_referencia BETWEEN ? AND ?", de.Format("2006-01-02"), ate.Format("2006-01-02")).
		Order("data_referencia DESC").
		Find(&rows).Error
	return rows, err
}

func (r *caixaRepo) SumPeriodo(ctx context.Context, de, ate time.Time) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.db.WithContext(ctx).
		Table("caixa_diarios").
		Select("COALESCE(SUM(dinheiro + moeda + cartao + pix), 0)").
		Where("data_referencia BETWEEN ? AND ?", de.Format("2006-01-02"), ate.Format("2006-01-02")).
		Scan(&total).Error
	return total, err
}

func (r *caixaRepo) MesesDisponiveis(ctx context.Context) ([]MesAno, error) {
	var rows []MesAno
	err := r.db.WithContext(ctx).Raw(`
		SELECT DISTINCT EXTRACT(MONTH FROM data_referencia)::int AS mes,
		                EXTRACT(YEAR  FROM data_referencia)::int AS ano
		FROM caixa_diarios`).Scan(&rows).Error
	return rows, err
}
