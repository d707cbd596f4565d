package config

import "time"

// Default constants for application configuration
const (
	DefaultLogLevel         = "info"
	DefaultJSONLog          = false
	DefaultProductsFile     = "products.csv"
	DefaultPricesFile       = "prices.csv"
	DefaultEnvFile          = ".env"
	DefaultSaveHistory      = true
	DefaultSendMail         = true
	DefaultRenderWait       = 2 * time.Second
	DefaultHTTPTimeout      = 30 * time.Second
	DefaultRateLimitRPS     = 0.5
	DefaultRateLimitBurst   = 1
	DefaultRetryBackoffMin  = 60 * time.Second
	DefaultRetryBackoffMax  = 180 * time.Second
	DefaultIntervalMin      = 2 * time.Minute
	DefaultIntervalMax      = 4 * time.Minute
	DefaultIdentityCooldown = 5 * time.Minute
	DefaultMailPort         = 587
)
