package driven

// ConfigStore is the persistent settings file.
// Keys use dot notation ("pinecone.index_name"); nesting is an adapter concern.
type ConfigStore interface {
	// Get returns the raw value and whether the key exists.
	Get(key string) (any, bool)

	// GetString returns a string value, or "" if missing or not a string.
	GetString(key string) string

	// GetInt returns an integer value, or 0 if missing or not an integer.
	GetInt(key string) int

	// Keys returns every stored key in sorted order.
	Keys() []string

	// Set stores a value and persists it immediately.
	Set(key string, value any) error

	// Path returns the settings file path.
	Path() string
}
