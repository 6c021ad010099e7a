package models

import (
	"time"

	"rpbot/core/reconcile"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Road links two places of a universe through a channel under the roads category.
type Road struct {
	ID         string `gorm:"primaryKey;size:36"`
	UniverseID string `gorm:"index;size:36;not null"`
	ServerID   uint64 `gorm:"index;not null"`
	Name       string `gorm:"size:201;not null"`

	Role    reconcile.Ref `gorm:"embedded;embeddedPrefix:role_"`
	Channel reconcile.Ref `gorm:"embedded;embeddedPrefix:channel_"`

	// PlaceOneID and PlaceTwoID are the category ids of the connected places.
	PlaceOneID uint64 `gorm:"not null"`
	PlaceTwoID uint64 `gorm:"not null"`
	Distance   uint64 `gorm:"not null"`

	CreatedAt time.Time
}

// TableName overrides the table name.
func (Road) TableName() string {
	return "roads"
}

// BeforeCreate assigns the record id.
func (r *Road) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}

// Slots lists the remote resources owned by the road.
func (r *Road) Slots() []reconcile.Slot {
	return []reconcile.Slot{
		{Name: "role", Ref: &r.Role},
		{Name: "channel", Ref: &r.Channel},
	}
}

// RequiredColumns lists the columns the store reads and writes.
func RequiredColumns() []string {
	return []string{
		"id", "universe_id", "server_id", "name",
		"role_id", "role_kind", "channel_id", "channel_kind",
		"place_one_id", "place_two_id", "distance", "created_at",
	}
}
