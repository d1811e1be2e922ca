package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CaixaDiario is the end-of-day cash register closing, one row per calendar
// date (DataReferencia is UNIQUE). Re-closing the same day overwrites the
// amounts and note in place — never a second row.
//
// Amounts are decomposed by tender type; the day total is the sum of the four.
type CaixaDiario struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	DataReferencia time.Time       `gorm:"type:date;uniqueIndex;not null"`
	Dinheiro       decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Moeda          decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Cartao         decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Pix            decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Observacao     *string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Total returns the day total across all tender types.
func (c CaixaDiario) Total() decimal.Decimal {
	return c.Dinheiro.Add(c.Moeda).Add(c.Cartao).Add(c.Pix)
}
