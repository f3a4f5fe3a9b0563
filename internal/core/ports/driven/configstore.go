package driven

// ConfigStore provides read access to application configuration.
// Implementations handle the file format and type conversion. The CLI never
// writes configuration; users edit the file directly.
type ConfigStore interface {
	// Get retrieves a configuration value by key.
	// Returns the value and a boolean indicating if the key exists.
	Get(key string) (any, bool)

	// GetString retrieves a string configuration value.
	// Returns empty string if key doesn't exist or isn't a string.
	GetString(key string) string

	// GetBool retrieves a boolean configuration value.
	// Returns false if key doesn't exist or isn't a boolean.
	GetBool(key string) bool

	// Load reads configuration from storage.
	Load() error

	// Path returns the configuration file path.
	Path() string
}
