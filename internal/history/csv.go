// internal/history/csv.go
package history

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/law-makers/pricewatch/pkg/models"
)

// CSVSink appends rows to a CSV file, writing the header only when the file is new or empty
type CSVSink struct {
	path string
	mu   sync.Mutex
}

// NewCSVSink creates a sink for path. The file is created on first append.
func NewCSVSink(path string) *CSVSink {
	return &CSVSink{path: path}
}

func (s *CSVSink) Append(ctx context.Context, checkedAt time.Time, records []models.EvaluatedRecord) error {
	if len(records) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	file, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open history file: %w", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return fmt.Errorf("failed to stat history file: %w", err)
	}

	writer := csv.NewWriter(file)

	if info.Size() == 0 {
		if err := writer.Write(Columns); err != nil {
			return err
		}
	}

	for _, r := range records {
		if err := writer.Write(Row(r)); err != nil {
			return err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to write history file: %w", err)
	}
	return nil
}

func (s *CSVSink) Close() error {
	return nil
}
