package repository

import (
	"context"

	"github.com/guilhermegamabs/fiado-v2/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ClienteComDivida is a row of the aggregated customer listing.
type ClienteComDivida struct {
	ID          uuid.UUID
	Nome        string
	DividaTotal decimal.Decimal
}

type ClienteRepository interface {
	Create(ctx context.Context, c *model.Cliente) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Cliente, error)
	ListComDivida(ctx context.Context) ([]ClienteComDivida, error)
	// DeleteCascadeTx removes the cliente and all of its fiados and pagamentos.
	// Must run inside the caller's transaction.
	DeleteCascadeTx(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
	DB() *gorm.DB // exposes the DB for transaction creation in service layer
}

type clienteRepo struct{ db *gorm.DB }

func NewClienteRepository(db *gorm.DB) ClienteRepository { return &clienteRepo{db: db} }

func (r *clienteRepo) DB() *gorm.DB { return r.db }

func (r *clienteRepo) Create(ctx context.Context, c *model.Cliente) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *clienteRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Cliente, error) {
	var c model.Cliente
	err := r.db.WithContext(ctx).First(&c, id).Error
	return &c, err
}

// ListComDivida computes every customer's balance in a single aggregated join
// instead of one SUM query per customer. Ordered by who owes most.
func (r *clienteRepo) ListComDivida(ctx context.Context) ([]ClienteComDivida, error) {
	var rows []ClienteComDivida
	err := r.db.WithContext(ctx).Raw(`
		SELECT c.id,
		       c.nome,
		       COALESCE(f.total, 0) - COALESCE(p.total, 0) AS divida_total
		FROM clientes c
		LEFT JOIN (SELECT cliente_id, SUM(valor) AS total FROM fiados GROUP BY cliente_id) f
		       ON f.cliente_id = c.id
		LEFT JOIN (SELECT cliente_id, SUM(valor) AS total FROM pagamentos GROUP BY cliente_id) p
		       ON p.cliente_id = c.id
		ORDER BY divida_total DESC`).Scan(&rows).Error
	return rows, err
}

func (r *clienteRepo) DeleteCascadeTx(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	if err := tx.WithContext(ctx).Where("cliente_id = ?", id).Delete(&model.Fiado{}).Error; err != nil {
		return err
	}
	if err := tx.WithContext(ctx).Where("cliente_id = ?", id).Delete(&model.Pagamento{}).Error; err != nil {
		return err
	}
	return tx.WithContext(ctx).Delete(&model.Cliente{}, id).Error
}
