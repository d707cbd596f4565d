package history

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/law-makers/pricewatch/pkg/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRecords() []models.EvaluatedRecord {
	return []models.EvaluatedRecord{
		models.NewRecord(models.TrackedProduct{
			URL:        "https://www.amazon.com/dp/1",
			Store:      "amazon",
			AlertPrice: decimal.RequireFromString("100.00"),
		}, "Mouse", decimal.RequireFromString("89.99"), models.StockNotApplicable),
		models.NewRecord(models.TrackedProduct{
			URL:        "https://www.newegg.com/p/2",
			Store:      "newegg",
			AlertPrice: decimal.RequireFromString("450"),
			CheckStock: true,
		}, "GPU, boxed", models.UnavailablePrice, models.StockOut),
	}
}

func TestRow(t *testing.T) {
	recs := sampleRecords()

	assert.Equal(t, []string{"https://www.amazon.com/dp/1", "100", "False", "Mouse", "89.99", "", "True"}, Row(recs[0]))
	assert.Equal(t, []string{"https://www.newegg.com/p/2", "450", "True", "GPU, boxed", "", "false", "False"}, Row(recs[1]))
}

func TestCSVSink_HeaderOnlyOnce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prices.csv")
	sink := NewCSVSink(path)
	ctx := context.Background()

	require.NoError(t, sink.Append(ctx, time.Now(), sampleRecords()))
	require.NoError(t, sink.Append(ctx, time.Now(), sampleRecords()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")

	require.Len(t, lines, 5)
	assert.Equal(t, "URL,ALERT_PRICE,CHECK_STOCK,TITLE,PRICE,STOCK,ALERT", lines[0])
	assert.Equal(t, `https://www.newegg.com/p/2,450,True,"GPU, boxed",,false,False`, lines[2])
	assert.Equal(t, lines[1], lines[3])
}

func TestCSVSink_ExistingEmptyFileGetsHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prices.csv")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	require.NoError(t, NewCSVSink(path).Append(context.Background(), time.Now(), sampleRecords()[:1]))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "URL,ALERT_PRICE"))
}

func TestCSVSink_NothingToWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prices.csv")
	require.NoError(t, NewCSVSink(path).Append(context.Background(), time.Now(), nil))

	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestSQLiteSink(t *testing.T) {
	sink, err := OpenSQLite(":memory:")
	require.NoError(t, err)
	defer sink.Close()

	ctx := context.Background()
	first := time.UnixMilli(1_700_000_000_000)
	second := first.Add(3 * time.Minute)

	require.NoError(t, sink.Append(ctx, first, sampleRecords()))
	require.NoError(t, sink.Append(ctx, second, sampleRecords()[1:]))

	obs, err := sink.Latest(ctx, "https://www.newegg.com/p/2", 10)
	require.NoError(t, err)
	require.Len(t, obs, 2)
	assert.True(t, obs[0].CheckedAt.Equal(second))
	assert.Empty(t, obs[0].Price)
	assert.Equal(t, "false", obs[0].Stock)

	obs, err = sink.Latest(ctx, "https://www.amazon.com/dp/1", 10)
	require.NoError(t, err)
	require.Len(t, obs, 1)
	assert.Equal(t, "89.99", obs[0].Price)
	assert.Empty(t, obs[0].Stock)
	assert.True(t, obs[0].Alert)
}

type failingSink struct{ closed bool }

func (f *failingSink) Append(context.Context, time.Time, []models.EvaluatedRecord) error {
	return errors.New("disk full")
}

func (f *failingSink) Close() error {
	f.closed = true
	return nil
}

func TestMulti_AttemptsEverySink(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prices.csv")
	bad := &failingSink{}
	m := Multi{bad, NewCSVSink(path)}

	err := m.Append(context.Background(), time.Now(), sampleRecords())
	assert.ErrorContains(t, err, "disk full")

	_, statErr := os.Stat(path)
	assert.NoError(t, statErr)

	require.NoError(t, m.Close())
	assert.True(t, bad.closed)
}
