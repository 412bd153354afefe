package repository

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Workbook column headers. LOT and TYPESET are required; the rest are optional.
const (
	columnLot      = "lot"
	columnTypeset  = "typeset"
	columnSaleNo   = "saleno"
	columnMaterial = "material"
	columnWeight   = "weight"
)

// ParseWorkbook reads an Excel workbook into catalog records. The first sheet
// is used; the first row must be a header containing at least LOT and TYPESET.
// Any structural problem rejects the whole file — a partial catalog is never
// produced.
func ParseWorkbook(r io.Reader) ([]LotRecord, error) {
	file, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer func() {
		_ = file.Close()
	}()

	sheet := file.GetSheetName(0)
	if sheet == "" {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	rows, err := file.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("workbook has no data rows")
	}

	colIndex := map[string]int{}
	for i, header := range rows[0] {
		colIndex[strings.ToLower(strings.TrimSpace(header))] = i
	}

	missing := make([]string, 0, 2)
	for _, required := range []string{columnLot, columnTypeset} {
		if _, ok := colIndex[required]; !ok {
			missing = append(missing, strings.ToUpper(required))
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required columns: %s", strings.Join(missing, ", "))
	}

	records := make([]LotRecord, 0, len(rows)-1)
	for i, row := range rows[1:] {
		rowNum := i + 2

		lotCell := cell(row, colIndex[columnLot])
		if lotCell == "" {
			continue
		}

		id, err := parseLotID(lotCell)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", rowNum, err)
		}

		weight := WeightMedium
		if idx, ok := colIndex[columnWeight]; ok {
			if value := cell(row, idx); value != "" {
				weight, err = ParseWeightClass(value)
				if err != nil {
					return nil, fmt.Errorf("row %d: %w", rowNum, err)
				}
			}
		}

		record := LotRecord{
			ID:          id,
			WeightClass: weight,
			Description: cell(row, colIndex[columnTypeset]),
		}
		if idx, ok := colIndex[columnSaleNo]; ok {
			record.SaleNumber = cell(row, idx)
		}
		if idx, ok := colIndex[columnMaterial]; ok {
			record.Material = cell(row, idx)
		}

		records = append(records, record)
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("workbook has no lots")
	}

	return records, nil
}

func parseLotID(value string) (int, error) {
	// Lot cells may come back as "86" or "86.0" depending on cell formatting.
	f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return 0, fmt.Errorf("lot %q is not a number", value)
	}
	id := int(f)
	if id <= 0 {
		return 0, fmt.Errorf("lot id must be positive, got %q", value)
	}
	return id, nil
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}
