// Package config provides configuration management for the provisioning bot.
//
// It utilizes Viper for loading configuration from environment variables
// and an optional .env file.
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings, divided into subsections:
//   - Server: HTTP server settings (port, API key)
//   - Database: MySQL (or SQLite) connection details
//   - Storage: S3/MinIO credentials and the bucket holding translation catalogs
//   - Log: Logging level and format
//   - Discord: bot token and REST endpoint
//   - I18n: catalog prefix, default locale and cache TTL
//   - Setup: confirmation gate timeout
//   - Universe: free tier limits
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Setup.ConfirmTimeoutSeconds)
package config
