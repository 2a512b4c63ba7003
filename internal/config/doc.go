// Package config handles configuration loading, saving, and schema definition.
package config

// Config is the top-level nyaya configuration.
// Uses json tags in camelCase to match the JSON config file format.
type Config struct {
	Server   ServerConfig   `json:"server"`
	Redis    RedisConfig    `json:"redis"`
	Channel  ChannelConfig  `json:"channel"`
	Services ServicesConfig `json:"services"`
}

// ServerConfig holds HTTP API settings.
type ServerConfig struct {
	Port   int    `json:"port"`
	APIKey string `json:"apiKey,omitempty"`
}

// RedisConfig holds session store backend settings. When URL is empty
// the gateway keeps sessions in memory.
type RedisConfig struct {
	URL      string `json:"url,omitempty"`
	Password string `json:"password,omitempty"`
	DB       int    `json:"db,omitempty"`
}

// ChannelConfig holds per-channel settings.
type ChannelConfig struct {
	WhatsApp *WhatsAppConfig `json:"whatsapp,omitempty"`
}

// WhatsAppConfig holds WhatsApp bridge settings.
type WhatsAppConfig struct {
	BridgeURL   string   `json:"bridgeUrl"`
	BridgeToken string   `json:"bridgeToken,omitempty"`
	AllowFrom   []string `json:"allowFrom,omitempty"`
}

// ServicesConfig holds service data-table overrides.
type ServicesConfig struct {
	DepartmentsFile string `json:"departmentsFile,omitempty"`
	CorpusFile      string `json:"corpusFile,omitempty"`
}

// DefaultConfig returns the configuration defaults.
func DefaultConfig() Config {
	return Config{
		Server: ServerConfig{
			Port: 8000,
		},
	}
}
