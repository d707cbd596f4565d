package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/law-makers/pricewatch/internal/ui"
)

func TestCommandTree(t *testing.T) {
	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"watch", "check", "inspect", "stores", "credentials"} {
		assert.True(t, names[want], "missing command %s", want)
	}

	for _, flag := range []string{"products", "prices", "no-save", "history-db", "no-mail", "render", "render-wait", "interval-min", "interval-max", "no-color"} {
		assert.NotNil(t, rootCmd.PersistentFlags().Lookup(flag), "missing flag %s", flag)
	}
}

func TestStoresCommand(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"stores", "--no-color", "--env-file", t.TempDir() + "/none.env"})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	})

	require.NoError(t, rootCmd.ExecuteContext(context.Background()))
	for _, id := range []string{"amazon", "bestbuy", "bhphotovideo", "centralcomputer", "gamenerdz", "microcenter", "newegg", "walmart"} {
		assert.Contains(t, out.String(), id)
	}
	assert.Nil(t, GetApp())
}

func TestPrintError(t *testing.T) {
	var out bytes.Buffer
	printError(&out, errors.New("products file not found"))
	assert.Equal(t, ui.ColorRed+"✗ Error:"+ui.ColorReset+" products file not found\n", out.String())
}

func TestHeading(t *testing.T) {
	var out bytes.Buffer
	heading(&out, "FLAGS")
	assert.Equal(t, "\n"+ui.ColorBold+ui.ColorWhite+"FLAGS"+ui.ColorReset+"\n", out.String())
}

func TestWrapText(t *testing.T) {
	in := "one two three four five\n\n- keep this bullet\nsix seven"
	got := wrapText(in, 10)

	assert.Equal(t, "one two\nthree four\nfive\n\n- keep this bullet\nsix seven", got)
}

func TestPrintFlagsTo(t *testing.T) {
	var out bytes.Buffer
	printFlagsTo(&out, "      --products string   CSV file listing tracked products\n  -v, --verbose           Enable debug logging\n")

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "--products string")
	assert.Contains(t, lines[0], "CSV file listing tracked products")
	assert.Contains(t, lines[1], "-v, --verbose")
}
