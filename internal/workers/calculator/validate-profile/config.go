// internal/workers/calculator/validate-profile/config.go
package validateprofile

// Config holds worker-specific settings.
type Config struct {
	// MaxYearsToProject caps the projection slider.
	MaxYearsToProject int
}

func DefaultConfig() *Config {
	return &Config{
		MaxYearsToProject: 5,
	}
}
