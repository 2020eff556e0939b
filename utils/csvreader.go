package utils

import (
	"encoding/csv"
	"fmt"
	"io"
)

// ParseCSV reads every row. Badge-reader exports are small enough that
// streaming row by row is not worth it.
func ParseCSV(r io.Reader) ([][]string, error) {
	reader := csv.NewReader(r)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read csv: %w", err)
	}
	return records, nil
}
