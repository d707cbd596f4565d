package config

import "github.com/spf13/cobra"

// RegisterFlags registers common CLI flags on the provided root command
func RegisterFlags(cmd *cobra.Command) {
	if cmd == nil {
		return
	}

	f := cmd.PersistentFlags()
	f.BoolP("verbose", "v", false, "Enable debug logging")
	f.BoolP("quiet", "q", false, "Suppress all output except errors")
	f.Bool("json", false, "Write logs as JSON")
	f.String("config", "", "Path to YAML configuration file (optional)")
	f.String("env-file", DefaultEnvFile, "Path to .env file with mail settings")

	f.String("products", DefaultProductsFile, "CSV file listing tracked products")
	f.String("prices", DefaultPricesFile, "CSV file that price history is appended to")
	f.Bool("no-save", false, "Do not append results to the history file")
	f.String("history-db", "", "Also record history in this SQLite database")
	f.Bool("no-mail", false, "Never send alert emails")
	f.Bool("no-color", false, "Disable coloured console output")

	f.Bool("render", false, "Render pages in headless Chrome before extracting")
	f.Duration("render-wait", DefaultRenderWait, "Time to let scripts run before reading a rendered page")
	f.Duration("timeout", DefaultHTTPTimeout, "Timeout for a single page fetch")
	f.String("user-agent", "", "Use this user agent instead of the built-in rotation")
	f.StringSlice("proxy", nil, "HTTP/SOCKS5 proxy, repeatable (e.g., http://localhost:8080)")
	f.StringArray("header", nil, "Extra request header \"Key: Value\", repeatable")

	f.Duration("interval-min", DefaultIntervalMin, "Shortest wait between watch cycles")
	f.Duration("interval-max", DefaultIntervalMax, "Longest wait between watch cycles")
}
