package driving

// ConfigService reads and updates the persisted configuration.
type ConfigService interface {
	// Keys returns every supported key in display order.
	Keys() []string

	// Get returns the effective value of key, falling back to its default.
	Get(key string) (string, error)

	// Set validates value for key and persists it.
	Set(key, value string) error

	// Path returns where the configuration is stored.
	Path() string
}
