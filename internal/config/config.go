package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/law-makers/pricewatch/internal/utils/headers"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// Config holds application configuration values
type Config struct {
	// Logging
	LogLevel string `yaml:"log_level"`
	JSONLog  bool   `yaml:"json_log"`

	// Files
	ProductsFile string `yaml:"products"`
	PricesFile   string `yaml:"prices"`
	SaveHistory  bool   `yaml:"save_history"`
	HistoryDB    string `yaml:"history_db"`

	// Fetching
	Render           bool              `yaml:"render"`
	RenderWait       time.Duration     `yaml:"render_wait"`
	HTTPTimeout      time.Duration     `yaml:"http_timeout"`
	UserAgents       []string          `yaml:"user_agents"`
	Proxies          []string          `yaml:"proxies"`
	Headers          map[string]string `yaml:"headers"`
	IdentityCooldown time.Duration     `yaml:"identity_cooldown"`

	// Rate Limiting
	RateLimitRPS   float64 `yaml:"rate_limit_rps"`
	RateLimitBurst int     `yaml:"rate_limit_burst"`

	// Scheduling
	RetryBackoffMin time.Duration `yaml:"retry_backoff_min"`
	RetryBackoffMax time.Duration `yaml:"retry_backoff_max"`
	IntervalMin     time.Duration `yaml:"interval_min"`
	IntervalMax     time.Duration `yaml:"interval_max"`

	// Output
	SendMail bool       `yaml:"send_mail"`
	NoColor  bool       `yaml:"no_color"`
	Mail     MailConfig `yaml:"mail"`
}

// MailConfig holds SMTP relay settings. The password is normally supplied through the
// environment or the keyring rather than the config file.
type MailConfig struct {
	Domain   string `yaml:"domain"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"-"`
	To       string `yaml:"to"`
}

// Defaults returns a Config populated with the default constants
func Defaults() *Config {
	return &Config{
		LogLevel:         DefaultLogLevel,
		JSONLog:          DefaultJSONLog,
		ProductsFile:     DefaultProductsFile,
		PricesFile:       DefaultPricesFile,
		SaveHistory:      DefaultSaveHistory,
		RenderWait:       DefaultRenderWait,
		HTTPTimeout:      DefaultHTTPTimeout,
		IdentityCooldown: DefaultIdentityCooldown,
		RateLimitRPS:     DefaultRateLimitRPS,
		RateLimitBurst:   DefaultRateLimitBurst,
		RetryBackoffMin:  DefaultRetryBackoffMin,
		RetryBackoffMax:  DefaultRetryBackoffMax,
		IntervalMin:      DefaultIntervalMin,
		IntervalMax:      DefaultIntervalMax,
		SendMail:         DefaultSendMail,
		Mail:             MailConfig{Port: DefaultMailPort},
	}
}

// Load builds a Config by combining defaults, an optional config file, the .env file,
// environment variables, and CLI flags, in increasing order of precedence.
// Caller should pass the root *cobra.Command so flags can be read.
func Load(cmd *cobra.Command) (*Config, error) {
	cfg := Defaults()

	path := os.Getenv("PRICEWATCH_CONFIG")
	if s := flagString(cmd, "config"); s != "" {
		path = s
	}
	if path != "" {
		if err := loadFile(cfg, path); err != nil {
			return nil, err
		}
	}

	envFile := DefaultEnvFile
	if s := flagString(cmd, "env-file"); s != "" {
		envFile = s
	}
	// Existing environment variables win over the .env file
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to read %s: %w", envFile, err)
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}

	if err := applyFlags(cfg, cmd); err != nil {
		return nil, err
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func loadFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *Config) error {
	setString := func(key string, dst *string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
	setBool := func(key string, dst *bool) error {
		v := os.Getenv(key)
		if v == "" {
			return nil
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", key, err)
		}
		*dst = b
		return nil
	}

	setString("PRICEWATCH_LOG_LEVEL", &cfg.LogLevel)
	setString("PRICEWATCH_PRODUCTS", &cfg.ProductsFile)
	setString("PRICEWATCH_PRICES", &cfg.PricesFile)
	setString("PRICEWATCH_HISTORY_DB", &cfg.HistoryDB)
	for key, dst := range map[string]*bool{
		"PRICEWATCH_SAVE":      &cfg.SaveHistory,
		"PRICEWATCH_SEND_MAIL": &cfg.SendMail,
		"PRICEWATCH_RENDER":    &cfg.Render,
	} {
		if err := setBool(key, dst); err != nil {
			return err
		}
	}
	if v := os.Getenv("PRICEWATCH_USER_AGENT"); v != "" {
		cfg.UserAgents = []string{v}
	}
	if v := os.Getenv("PRICEWATCH_PROXY"); v != "" {
		cfg.Proxies = splitList(v)
	}
	if os.Getenv("NO_COLOR") != "" {
		cfg.NoColor = true
	}

	setString("MAIL_DOMAIN", &cfg.Mail.Domain)
	setString("MAIL_USER", &cfg.Mail.User)
	setString("MAIL_PASS", &cfg.Mail.Password)
	setString("MAIL_TO", &cfg.Mail.To)
	if v := os.Getenv("MAIL_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid MAIL_PORT: %w", err)
		}
		cfg.Mail.Port = port
	}
	return nil
}

func applyFlags(cfg *Config, cmd *cobra.Command) error {
	if cmd == nil {
		return nil
	}
	flags := cmd.Flags()
	changed := func(name string) bool {
		f := flags.Lookup(name)
		return f != nil && f.Changed
	}

	if changed("verbose") {
		cfg.LogLevel = "debug"
	}
	if changed("quiet") {
		cfg.LogLevel = "error"
	}
	if changed("json") {
		cfg.JSONLog, _ = flags.GetBool("json")
	}
	if changed("products") {
		cfg.ProductsFile, _ = flags.GetString("products")
	}
	if changed("prices") {
		cfg.PricesFile, _ = flags.GetString("prices")
	}
	if changed("no-save") {
		noSave, _ := flags.GetBool("no-save")
		cfg.SaveHistory = !noSave
	}
	if changed("history-db") {
		cfg.HistoryDB, _ = flags.GetString("history-db")
	}
	if changed("no-mail") {
		noMail, _ := flags.GetBool("no-mail")
		cfg.SendMail = !noMail
	}
	if changed("render") {
		cfg.Render, _ = flags.GetBool("render")
	}
	if changed("render-wait") {
		cfg.RenderWait, _ = flags.GetDuration("render-wait")
	}
	if changed("timeout") {
		cfg.HTTPTimeout, _ = flags.GetDuration("timeout")
	}
	if changed("interval-min") {
		cfg.IntervalMin, _ = flags.GetDuration("interval-min")
	}
	if changed("interval-max") {
		cfg.IntervalMax, _ = flags.GetDuration("interval-max")
	}
	if changed("no-color") {
		cfg.NoColor, _ = flags.GetBool("no-color")
	}
	if changed("user-agent") {
		ua, _ := flags.GetString("user-agent")
		cfg.UserAgents = []string{ua}
	}
	if changed("proxy") {
		cfg.Proxies, _ = flags.GetStringSlice("proxy")
	}
	if changed("header") {
		raw, _ := flags.GetStringArray("header")
		h, err := headers.ParseHeaders(raw)
		if err != nil {
			return err
		}
		if cfg.Headers == nil {
			cfg.Headers = make(map[string]string, len(h))
		}
		for k, v := range h {
			cfg.Headers[k] = v
		}
	}
	return nil
}

func flagString(cmd *cobra.Command, name string) string {
	if cmd == nil {
		return ""
	}
	if f := cmd.Flags().Lookup(name); f != nil {
		return f.Value.String()
	}
	return ""
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
