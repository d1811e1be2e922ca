package repository

import (
	"context"
	"time"

	"github.com/guilhermegamabs/fiado-v2/internal/model"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type DespesaRepository interface {
	Create(ctx context.Context, d *model.Despesa) error
	ListPeriodo(ctx context.Context, de, ate time.Time) ([]model.Despesa, error)
	SumPeriodo(ctx context.Context, de, ate time.Time) (decimal.Decimal, error)
	MesesDisponiveis(ctx context.Context) ([]MesAno, error)
}

type despesaRepo struct{ db *gorm.DB }

func NewDespesaRepository(db *gorm.DB) DespesaRepository { return &despesaRepo{db: db} }

func (r *despesaRepo) Create(ctx context.Context, d *model.Despesa) error {
	return r.db.WithContext(ctx).Create(d).Error
}

func (r *despesaRepo) ListPeriodo(ctx context.Context, de, ate time.Time) ([]model.Despesa, error) {
	var rows []model.Despesa
	err := r.db.WithContext(ctx).
		Where("data_despesa BETWEEN ? AND ?", de.Format("2006-01-02"), ate.Format("2006-01-02")).
		Order("data_despesa DESC").
		Find(&rows).Error
	return rows, err
}

func (r *despesaRepo) SumPeriodo(ctx context.Context, de, ate time.Time) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.db.WithContext(ctx).
		Table("despesas").
		Select("COALESCE(SUM(valor), 0)").
		Where("data_despesa BETWEEN ? AND ?", de.Format("2006-01-02"), ate.Format("2006-01-02")).
		Scan(&total).Error
	return total, err
}

func (r *despesaRepo) MesesDisponiveis(ctx context.Context) ([]MesAno, error) {
	var rows []MesAno
	err := r.db.WithContext(ctx).Raw(`
		SELECT DISTINCT EXTRACT(MONTH FROM data_despesa)::int AS mes,
		                EXTRACT(YEAR  FROM data_despesa)::int AS ano
		FROM despesas`).Scan(&rows).Error
	return rows, err
}
