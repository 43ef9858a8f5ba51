// internal/workers/analytics/index-calculation/config.go
package indexcalculation

import "time"

type Config struct {
	IndexName string
	Timeout   time.Duration
}

func LoadConfig() *Config {
	return &Config{
		IndexName: "roi-calculations",
		Timeout:   30 * time.Second,
	}
}
