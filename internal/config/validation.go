package config

import (
	"fmt"
	"strings"
)

func validate(c *Config) error {
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level %q", c.LogLevel)
	}
	if c.ProductsFile == "" {
		return fmt.Errorf("products file must be set")
	}
	if c.SaveHistory && c.PricesFile == "" {
		return fmt.Errorf("prices file must be set when history is saved")
	}
	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("http timeout must be > 0")
	}
	if c.RenderWait < 0 {
		return fmt.Errorf("render wait must be >= 0")
	}
	if c.RateLimitRPS <= 0 || c.RateLimitBurst < 1 {
		return fmt.Errorf("rate limit must be > 0 with a burst of at least 1")
	}
	if c.RetryBackoffMin < 0 || c.RetryBackoffMax < c.RetryBackoffMin {
		return fmt.Errorf("retry backoff range %s-%s is invalid", c.RetryBackoffMin, c.RetryBackoffMax)
	}
	if c.IntervalMin <= 0 || c.IntervalMax < c.IntervalMin {
		return fmt.Errorf("cycle interval range %s-%s is invalid", c.IntervalMin, c.IntervalMax)
	}
	if c.Mail.Port <= 0 || c.Mail.Port > 65535 {
		return fmt.Errorf("mail port %d out of range", c.Mail.Port)
	}
	return nil
}
