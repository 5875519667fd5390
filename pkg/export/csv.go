// Package export writes report tables as CSV files.
package export

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/saachistyle/shop-reports/pkg/report"
)

// WriteCSV writes a table to path with a header row. Rows are rendered in
// header order; cells a row does not carry come out blank, so sparse rows
// from the reorder report line up under the unioned header set.
func WriteCSV(path string, table report.Table) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}

	w := csv.NewWriter(f)
	if err := w.Write(table.Headers); err != nil {
		f.Close()
		return fmt.Errorf("write header: %w", err)
	}

	record := make([]string, len(table.Headers))
	for _, row := range table.Rows {
		for i, header := range table.Headers {
			record[i] = row[header]
		}
		if err := w.Write(record); err != nil {
			f.Close()
			return fmt.Errorf("write row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return fmt.Errorf("flush %s: %w", path, err)
	}

	return f.Close()
}
