package models

import (
	"time"

	"rpbot/core/reconcile"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Place is a location of a universe: a private category and the role that sees it.
type Place struct {
	ID         string `gorm:"primaryKey;size:36"`
	UniverseID string `gorm:"index;size:36;not null"`
	ServerID   uint64 `gorm:"index;not null"`
	Name       string `gorm:"size:100;not null"`

	Role     reconcile.Ref `gorm:"embedded;embeddedPrefix:role_"`
	Category reconcile.Ref `gorm:"embedded;embeddedPrefix:category_"`

	CreatedAt time.Time
}

// TableName overrides the table name.
func (Place) TableName() string {
	return "places"
}

// BeforeCreate assigns the record id.
func (p *Place) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// Slots lists the remote resources owned by the place.
func (p *Place) Slots() []reconcile.Slot {
	return []reconcile.Slot{
		{Name: "role", Ref: &p.Role},
		{Name: "category", Ref: &p.Category},
	}
}

// RequiredColumns lists the columns the store reads and writes.
func RequiredColumns() []string {
	return []string{
		"id", "universe_id", "server_id", "name",
		"role_id", "role_kind", "category_id", "category_kind",
		"created_at",
	}
}
