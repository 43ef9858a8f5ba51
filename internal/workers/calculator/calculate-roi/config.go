// internal/workers/calculator/calculate-roi/config.go
package calculateroi

import (
	"time"

	"talentroi-workers/internal/models"
	"talentroi-workers/internal/roi"
)

type Config struct {
	Params         roi.Params
	DefaultCadence models.BillingCadence
	Timeout        time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Params:         roi.DefaultParams(),
		DefaultCadence: models.CadenceMonthly,
		Timeout:        30 * time.Second,
	}
}
