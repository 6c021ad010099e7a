package universe

// Config holds the free tier limits.
type Config struct {
	MaxUniversesPerCreator int `mapstructure:"max_universes_per_creator" default:"2"`
	MaxServersPerUniverse  int `mapstructure:"max_servers_per_universe" default:"2"`
}
