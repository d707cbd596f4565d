package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/law-makers/pricewatch/pkg/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	input := `URL,ALERT_PRICE,CHECK_STOCK
https://www.amazon.com/dp/B0001,100.00,TRUE
https://www.newegg.com/p/N82E1,450,false

https://centralcomputer.com/item,19.5,
`
	products, err := Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, products, 3)

	assert.Equal(t, "https://www.amazon.com/dp/B0001", products[0].URL)
	assert.Equal(t, "amazon", products[0].Store)
	assert.True(t, products[0].AlertPrice.Equal(decimal.RequireFromString("100")))
	assert.True(t, products[0].CheckStock)

	assert.Equal(t, "newegg", products[1].Store)
	assert.False(t, products[1].CheckStock)

	assert.Equal(t, "centralcomputer", products[2].Store)
	assert.False(t, products[2].CheckStock)
}

func TestParse_ColumnsByName(t *testing.T) {
	input := "CHECK_STOCK,URL,ALERT_PRICE\nyes,https://www.bestbuy.com/site/1.p,300\n"

	products, err := Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "bestbuy", products[0].Store)
	assert.True(t, products[0].CheckStock)
}

func TestParse_CheckStockOptional(t *testing.T) {
	input := "URL,ALERT_PRICE\nhttps://www.walmart.com/ip/1,25\n"

	products, err := Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.False(t, products[0].CheckStock)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		line  int
	}{
		{"bad url", "URL,ALERT_PRICE\nnot a url,10\n", 2},
		{"bad threshold", "URL,ALERT_PRICE\nhttps://www.amazon.com/x,ten\n", 2},
		{"negative threshold", "URL,ALERT_PRICE\nhttps://www.amazon.com/x,-1\n", 2},
		{"sentinel threshold", "URL,ALERT_PRICE\nhttps://www.amazon.com/x,1000000000000000\n", 2},
		{"bad flag", "URL,ALERT_PRICE,CHECK_STOCK\nhttps://www.amazon.com/x,1,maybe\n", 2},
		{"later row", "URL,ALERT_PRICE\nhttps://www.amazon.com/x,1\nhttps://www.amazon.com/y,\n", 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.input))
			require.Error(t, err)

			var rowErr *RowError
			require.True(t, errors.As(err, &rowErr), "expected RowError, got %v", err)
			assert.Equal(t, tt.line, rowErr.Line)
		})
	}
}

func TestParse_MissingColumn(t *testing.T) {
	_, err := Parse(strings.NewReader("URL,PRICE\nhttps://www.amazon.com/x,1\n"))
	assert.ErrorIs(t, err, ErrMissingColumn)

	_, err = Parse(strings.NewReader(""))
	assert.ErrorIs(t, err, ErrMissingColumn)
}

func TestParseThreshold_BelowSentinel(t *testing.T) {
	d, err := ParseThreshold("999999999999999.99")
	require.NoError(t, err)
	assert.True(t, d.LessThan(models.UnavailablePrice))
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "products.csv")
	require.NoError(t, os.WriteFile(path, []byte("\ufeffURL,ALERT_PRICE\nhttps://www.microcenter.com/product/1,49.99\n"), 0o644))

	products, err := Load(path)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "microcenter", products[0].Store)

	_, err = Load(filepath.Join(t.TempDir(), "missing.csv"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
