package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Despesa is an append-only expense entry.
type Despesa struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	DataDespesa time.Time       `gorm:"type:date;index;not null"`
	Descricao   string          `gorm:"not null"`
	Valor       decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Categoria   string          `gorm:"not null"`
	CreatedAt   time.Time
}
