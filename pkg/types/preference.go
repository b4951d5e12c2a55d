package types

// Preference is a key/value user setting. Values are opaque strings,
// conventionally serialized JSON. Preferences are overwritten in place
// and never tombstoned; merge resolution is last-write-wins on
// UpdatedAt alone.
type Preference struct {
	Key       string `json:"key"`
	Value     string `json:"value"`
	UpdatedAt int64  `json:"updated_at"`
}

// SettingsKey is the preference key holding the application settings
// payload. Reset-to-defaults writes this single row.
const SettingsKey = "settings"
