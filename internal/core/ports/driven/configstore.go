package driven

// ConfigStore is a flat key value view of the settings file. Keys are dot
// separated ("llm.provider", "chat.history_window"). Values keep the type
// they were decoded or set with; the settings service converts them.
type ConfigStore interface {
	// Get returns the raw value and whether the key is present.
	Get(key string) (any, bool)

	// Set stores a value. File backed stores write through.
	Set(key string, value any) error

	// Delete removes a key so its default applies again. Missing keys are
	// not an error.
	Delete(key string) error

	// Path names where the values live, for display.
	Path() string
}
