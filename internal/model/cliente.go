package model

import (
	"time"

	"github.com/google/uuid"
)

// Cliente is a store-credit customer. Deleting a cliente removes all of its
// fiados and pagamentos in the same transaction — there is no soft delete.
type Cliente struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nome      string    `gorm:"not null"`
	CreatedAt time.Time

	Fiados     []Fiado     `gorm:"foreignKey:ClienteID"`
	Pagamentos []Pagamento `gorm:"foreignKey:ClienteID"`
}
