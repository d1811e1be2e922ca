package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Fiado is an immutable debt entry against a cliente. Valor and DataRegistro
// never change after creation; only the legacy Pago/DataPagamento pair is
// updated by the visual settle pass after a payment.
//
// Pago is NOT authoritative: the true balance is always
// SUM(fiados.valor) - SUM(pagamentos.valor), and the Pendente/Parcial status
// shown to the user is recomputed live from the two streams on every read.
type Fiado struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ClienteID     uuid.UUID       `gorm:"type:uuid;index;not null"`
	Descricao     string          `gorm:"not null"`
	Valor         decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	DataRegistro  time.Time       `gorm:"not null"`
	Pago          bool            `gorm:"not null;default:false"`
	DataPagamento *time.Time
}

// Pagamento is an immutable, append-only payment (abatimento) record.
// Payments are never edited or deleted — corrections are new entries.
type Pagamento struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ClienteID     uuid.UUID       `gorm:"type:uuid;index;not null"`
	Valor         decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	DataPagamento time.Time       `gorm:"not null"`
}
