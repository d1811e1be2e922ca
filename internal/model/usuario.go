package model

import (
	"time"

	"github.com/google/uuid"
)

// Usuario stores system users. The app is operated by the shop owner and at
// most a couple of helpers, so there is no role hierarchy — any active user
// has full access once authenticated.
type Usuario struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Username     string    `gorm:"uniqueIndex;not null"`
	PasswordHash string    `gorm:"not null"`
	Ativo        bool      `gorm:"not null;default:true"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
