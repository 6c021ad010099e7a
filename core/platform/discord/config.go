package discord

// Config holds configuration for the platform REST client.
type Config struct {
	// Token is the bot token sent as "Bot <token>".
	Token string `mapstructure:"token" default:""`
	// BaseURL is the versioned REST endpoint.
	BaseURL string `mapstructure:"base_url" default:"https://discord.com/api/v10"`
	// TimeoutSeconds bounds every request.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
}
