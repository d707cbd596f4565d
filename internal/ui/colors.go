package ui

import "strings"

// ANSI color and style constants for CLI output
const (
	ColorReset = "\033[0m"
	ColorBold  = "\033[1m"
	ColorDim   = "\033[2m"

	ColorCyan        = "\033[36m"
	ColorGreen       = "\033[32m"
	ColorYellow      = "\033[33m"
	ColorWhite       = "\033[97m"
	ColorRed         = "\033[31m"
	ColorLightGreen  = "\033[92m"
	ColorLightYellow = "\033[93m"
)

// Paint wraps s in the given codes. Each line is wrapped separately so a multi-line block
// keeps its colour when a terminal or pager re-renders lines independently.
func Paint(s string, codes ...string) string {
	if len(codes) == 0 || s == "" {
		return s
	}
	prefix := strings.Join(codes, "")

	lines := strings.SplitAfter(s, "\n")
	var b strings.Builder
	for _, line := range lines {
		body := strings.TrimSuffix(line, "\n")
		if body != "" {
			b.WriteString(prefix + body + ColorReset)
		}
		if strings.HasSuffix(line, "\n") {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func Bold(s string) string {
	return ColorBold + s + ColorReset
}

func Success(s string) string {
	return ColorGreen + s + ColorReset
}

func Info(s string) string {
	return ColorDim + ColorYellow + s + ColorReset
}

func Error(s string) string {
	return ColorRed + s + ColorReset
}
