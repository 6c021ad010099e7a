package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		cfg, err := LoadConfig(t.TempDir())
		require.NoError(t, err)

		assert.Equal(t, "8080", cfg.Server.Port)
		assert.Equal(t, "mysql", cfg.Database.Driver)
		assert.Equal(t, 60, cfg.Setup.ConfirmTimeoutSeconds)
		assert.Equal(t, "en", cfg.I18n.DefaultLocale)
		assert.Equal(t, 2, cfg.Universe.MaxUniversesPerCreator)
		assert.Equal(t, 2, cfg.Universe.MaxServersPerUniverse)
		assert.Equal(t, "https://discord.com/api/v10", cfg.Discord.BaseURL)
	})

	t.Run("EnvFileOverrides", func(t *testing.T) {
		dir := t.TempDir()
		content := "DISCORD_TOKEN=bot-token\nSETUP_CONFIRM_TIMEOUT_SECONDS=15\nDATABASE_DRIVER=sqlite\n"
		require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte(content), 0o600))
		t.Cleanup(func() {
			os.Unsetenv("DISCORD_TOKEN")
			os.Unsetenv("SETUP_CONFIRM_TIMEOUT_SECONDS")
			os.Unsetenv("DATABASE_DRIVER")
		})

		cfg, err := LoadConfig(dir)
		require.NoError(t, err)

		assert.Equal(t, "bot-token", cfg.Discord.Token)
		assert.Equal(t, 15, cfg.Setup.ConfirmTimeoutSeconds)
		assert.Equal(t, "sqlite", cfg.Database.Driver)
	})
}
