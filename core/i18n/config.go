package i18n

// Config holds configuration for the translation catalogs.
type Config struct {
	// Prefix is the object prefix under which <locale>.json catalogs live.
	Prefix string `mapstructure:"prefix" default:"translations"`
	// DefaultLocale is used when a key is missing from the requested locale.
	DefaultLocale string `mapstructure:"default_locale" default:"en"`
	// CacheTTLSeconds is how long a loaded catalog is reused. Zero disables caching.
	CacheTTLSeconds int `mapstructure:"cache_ttl_seconds" default:"300"`
}
