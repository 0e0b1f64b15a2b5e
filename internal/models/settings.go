package models

// Settings holds user preferences persisted in local storage.
type Settings struct {
	RiskLevel     string `json:"riskLevel"`
	DataSource    string `json:"dataSource"`
	AutoRefresh   bool   `json:"autoRefresh"`
	Notifications bool   `json:"notifications"`
}

// DefaultSettings returns the settings applied before the user changes
// anything.
func DefaultSettings() Settings {
	return Settings{
		RiskLevel:     "medium",
		DataSource:    "github",
		AutoRefresh:   true,
		Notifications: true,
	}
}
