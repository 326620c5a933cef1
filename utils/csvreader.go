package utils

import (
	"encoding/csv"
	"io"
)

// ParseCSV reads every row, header included.
func ParseCSV(r io.Reader) ([][]string, error) {
	return csv.NewReader(r).ReadAll()
}
