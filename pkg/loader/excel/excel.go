package excel

import (
	"bytes"
	"context"
	stdcsv "encoding/csv"
	"fmt"
	"sync"

	"github.com/atlasgraph/atlas/pkg/loader"
	"github.com/atlasgraph/atlas/pkg/loader/csv"

	"github.com/xuri/excelize/v2"
	"golang.org/x/sync/singleflight"
)

// ExcelGraphLoader loads Excel workbooks (.xlsx, .xlsm) and converts each
// sheet to CSV text. Multi-sheet workbooks are concatenated with sheet name
// headers.
type ExcelGraphLoader struct {
	loader loader.GraphFileLoader

	cache   map[string][]byte
	cacheMu sync.RWMutex
	group   singleflight.Group
}

// NewExcelGraphLoader creates a new ExcelGraphLoader with the given base loader.
func NewExcelGraphLoader(baseLoader loader.GraphFileLoader) *ExcelGraphLoader {
	return &ExcelGraphLoader{
		loader: baseLoader,
		cache:  make(map[string][]byte),
	}
}

// GetFileText retrieves the workbook and returns its sheets as parsed CSV text.
func (l *ExcelGraphLoader) GetFileText(ctx context.Context, file loader.GraphFile) ([]byte, error) {
	key := loader.CacheKey(file)

	l.cacheMu.RLock()
	if cached, ok := l.cache[key]; ok {
		l.cacheMu.RUnlock()
		return cached, nil
	}
	l.cacheMu.RUnlock()

	result, err, _ := l.group.Do(key, func() (any, error) {
		l.cacheMu.RLock()
		if cached, ok := l.cache[key]; ok {
			l.cacheMu.RUnlock()
			return cached, nil
		}
		l.cacheMu.RUnlock()

		content, err := l.loader.GetFileText(ctx, file)
		if err != nil {
			return nil, err
		}

		result, err := workbookToText(content)
		if err != nil {
			return nil, err
		}

		l.cacheMu.Lock()
		l.cache[key] = result
		l.cacheMu.Unlock()

		return result, nil
	})
	if err != nil {
		return nil, err
	}

	return result.([]byte), nil
}

func workbookToText(content []byte) ([]byte, error) {
	wb, err := excelize.OpenReader(bytes.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer wb.Close()

	sheets := wb.GetSheetList()

	var result []byte
	for _, sheet := range sheets {
		rows, err := wb.GetRows(sheet)
		if err != nil || len(rows) == 0 {
			continue
		}

		var buf bytes.Buffer
		w := stdcsv.NewWriter(&buf)
		for _, row := range rows {
			if err := w.Write(row); err != nil {
				return nil, fmt.Errorf("failed to encode sheet %q: %w", sheet, err)
			}
		}
		w.Flush()

		parsed, err := csv.ParseCSV(buf.Bytes())
		if err != nil {
			continue
		}

		if len(result) > 0 {
			result = append(result, '\n')
		}
		if len(sheets) > 1 {
			result = append(result, []byte("--- "+sheet+" ---\n")...)
		}
		result = append(result, parsed...)
	}

	if len(result) == 0 {
		return nil, fmt.Errorf("workbook contains no data")
	}

	return result, nil
}
