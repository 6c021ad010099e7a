package models

import (
	"time"

	"rpbot/core/reconcile"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ServerConfig is the provisioning record of one managed server.
type ServerConfig struct {
	ID         string `gorm:"primaryKey;size:36"`
	UniverseID string `gorm:"index;size:36"`
	ServerID   uint64 `gorm:"uniqueIndex;not null"`

	AdminRole     reconcile.Ref `gorm:"embedded;embeddedPrefix:admin_role_"`
	ModeratorRole reconcile.Ref `gorm:"embedded;embeddedPrefix:moderator_role_"`
	SpectatorRole reconcile.Ref `gorm:"embedded;embeddedPrefix:spectator_role_"`
	PlayerRole    reconcile.Ref `gorm:"embedded;embeddedPrefix:player_role_"`

	RoadCategory  reconcile.Ref `gorm:"embedded;embeddedPrefix:road_category_"`
	AdminCategory reconcile.Ref `gorm:"embedded;embeddedPrefix:admin_category_"`
	NonRPCategory reconcile.Ref `gorm:"embedded;embeddedPrefix:nrp_category_"`
	RPCategory    reconcile.Ref `gorm:"embedded;embeddedPrefix:rp_category_"`

	LogChannel        reconcile.Ref `gorm:"embedded;embeddedPrefix:log_channel_"`
	CommandsChannel   reconcile.Ref `gorm:"embedded;embeddedPrefix:commands_channel_"`
	ModerationChannel reconcile.Ref `gorm:"embedded;embeddedPrefix:moderation_channel_"`
	GeneralChannel    reconcile.Ref `gorm:"embedded;embeddedPrefix:nrp_general_channel_"`
	CharacterChannel  reconcile.Ref `gorm:"embedded;embeddedPrefix:rp_character_channel_"`
	WikiChannel       reconcile.Ref `gorm:"embedded;embeddedPrefix:rp_wiki_channel_"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName overrides the table name.
func (ServerConfig) TableName() string {
	return "server_configs"
}

// BeforeCreate assigns the record id.
func (c *ServerConfig) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

// Slots lists every persisted reference in a fixed order.
func (c *ServerConfig) Slots() []reconcile.Slot {
	return []reconcile.Slot{
		{Name: "admin_role", Ref: &c.AdminRole},
		{Name: "moderator_role", Ref: &c.ModeratorRole},
		{Name: "spectator_role", Ref: &c.SpectatorRole},
		{Name: "player_role", Ref: &c.PlayerRole},
		{Name: "road_category", Ref: &c.RoadCategory},
		{Name: "admin_category", Ref: &c.AdminCategory},
		{Name: "nrp_category", Ref: &c.NonRPCategory},
		{Name: "rp_category", Ref: &c.RPCategory},
		{Name: "log_channel", Ref: &c.LogChannel},
		{Name: "commands_channel", Ref: &c.CommandsChannel},
		{Name: "moderation_channel", Ref: &c.ModerationChannel},
		{Name: "nrp_general_channel", Ref: &c.GeneralChannel},
		{Name: "rp_character_channel", Ref: &c.CharacterChannel},
		{Name: "rp_wiki_channel", Ref: &c.WikiChannel},
	}
}

// Clone returns an independent copy.
func (c *ServerConfig) Clone() *ServerConfig {
	cp := *c
	return &cp
}

// RequiredColumns lists the columns the store reads and writes.
func RequiredColumns() []string {
	cols := []string{"id", "universe_id", "server_id"}
	for _, s := range (&ServerConfig{}).Slots() {
		cols = append(cols, s.Name+"_id", s.Name+"_kind")
	}
	return cols
}
