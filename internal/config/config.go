// Package config defines process configuration and its loading.
//
// Configuration is layered: compiled-in defaults, then an optional YAML
// file, then SCOUTSCORE_-prefixed environment variables.
package config

// Config contains process configuration.
type Config struct {
	// Addr is the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// DBPath is the SQLite database path.
	DBPath string `koanf:"db_path"`

	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// AdminEmail and AdminPassword bootstrap the first global admin
	// account if no users exist yet.
	AdminEmail    string `koanf:"admin_email"`
	AdminPassword string `koanf:"admin_password"`

	// BaseURL overrides the autodetected base URL used in QR codes.
	BaseURL string `koanf:"base_url"`

	// ScoutnetURL points at the Scoutnet API for roster imports.
	// Empty disables the sync endpoints.
	ScoutnetURL string `koanf:"scoutnet_url"`

	// ScoutnetAPIKey authenticates roster imports.
	ScoutnetAPIKey string `koanf:"scoutnet_api_key"`
}

// Default returns a Config populated with defaults.
func Default() *Config {
	return &Config{
		Addr:     ":8080",
		DBPath:   "scoutscore.db",
		LogLevel: "info",
	}
}
