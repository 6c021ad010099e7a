package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DefaultTimeModifier is the in-game time speed of a new universe, in percent.
const DefaultTimeModifier = 100

// Universe groups the servers of one role-play world.
type Universe struct {
	ID                 string `gorm:"primaryKey;size:36"`
	Name               string `gorm:"size:100;not null"`
	CreatorID          uint64 `gorm:"index;not null"`
	GlobalTimeModifier uint32 `gorm:"not null;default:100"`
	CreatedAt          time.Time
}

// TableName overrides the table name.
func (Universe) TableName() string {
	return "universes"
}

// BeforeCreate assigns the id and the default time modifier.
func (u *Universe) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	if u.GlobalTimeModifier == 0 {
		u.GlobalTimeModifier = DefaultTimeModifier
	}
	return nil
}

// RequiredColumns lists the columns the store reads and writes.
func RequiredColumns() []string {
	return []string{"id", "name", "creator_id", "global_time_modifier", "created_at"}
}
