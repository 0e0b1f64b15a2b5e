package models

// RemoteConfig is the miniprogram_config.json document: optional overrides
// published next to the data feeds, read once at startup and merged over
// local configuration.
type RemoteConfig struct {
	BaseURL    string `json:"baseUrl,omitempty"`
	UpdateTime string `json:"updateTime,omitempty"`
}
