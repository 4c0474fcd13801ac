package loader

// ConfigLoader returns raw configuration values keyed by variable name.
type ConfigLoader interface {
	Load() (map[string]string, error)
}
