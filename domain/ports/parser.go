package ports

// SettingsParser parses raw settings file bytes into a nested key-value map.
type SettingsParser interface {
	// Parse unmarshals file bytes into a map keyed by setting name.
	Parse(data []byte) (map[string]any, error)
}
