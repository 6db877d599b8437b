package models

import (
	"time"

	"github.com/google/uuid"
)

type URLType string

const (
	URLTypePermanent URLType = "Permanent link"
	URLTypeTemporary URLType = "Temporary link"
	URLTypeOneTime   URLType = "One-Time link"
)

func ValidURLType(t URLType) bool {
	switch t {
	case URLTypePermanent, URLTypeTemporary, URLTypeOneTime:
		return true
	default:
		return false
	}
}

// URL is a short link owned by a (user, team) pair. Code is assigned once at
// creation and never reassigned. RedirectionCount and ExpiresAt exist in the
// schema but no operation acts on them yet.
type URL struct {
	BaseModel
	Code             string     `json:"code" gorm:"type:varchar(32);uniqueIndex;not null"`
	OriginalURL      string     `json:"originalUrl" gorm:"type:text;not null"`
	Alias            *string    `json:"alias,omitempty" gorm:"type:varchar(255)"`
	Type             URLType    `json:"type" gorm:"type:varchar(20);not null;default:'Permanent link'"`
	RedirectionCount *int       `json:"redirectionCount,omitempty"`
	IsActive         bool       `json:"isActive" gorm:"not null;default:true"`
	ExpiresAt        *time.Time `json:"expiresAt,omitempty"`
	UserID           *uuid.UUID `json:"userID,omitempty" gorm:"type:uuid;index"`
	TeamID           uuid.UUID  `json:"teamID" gorm:"type:uuid;not null;index"`
}
