// Copyright 2025 Ben Lievens
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package dataimport

import (
	"fmt"

	"github.com/blievens89/ngram/analysis"
	"github.com/rs/zerolog/log"
	"github.com/tealeg/xlsx/v2"
)

// ReadXLSXFile loads query records from an XLSX export. With an empty
// sheetName the first sheet is used. The first row must be the header.
func ReadXLSXFile(path, sheetName string) ([]analysis.QueryRecord, error) {
	f, err := xlsx.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open XLSX file: %w", err)
	}
	sheet, err := pickSheet(f, sheetName)
	if err != nil {
		return nil, err
	}
	if len(sheet.Rows) == 0 {
		return nil, fmt.Errorf("sheet '%s' contains no header row", sheet.Name)
	}
	rows := make([][]string, 0, len(sheet.Rows))
	for _, row := range sheet.Rows {
		cells := make([]string, len(row.Cells))
		for i, c := range row.Cells {
			cells[i] = c.String()
		}
		rows = append(rows, cells)
	}
	records, err := recordsFromRows(rows[0], rows[1:])
	if err != nil {
		return nil, err
	}
	log.Info().
		Int("numRecords", len(records)).
		Str("sheet", sheet.Name).
		Msg("loaded records from XLSX")
	return records, nil
}

func pickSheet(f *xlsx.File, sheetName string) (*xlsx.Sheet, error) {
	if sheetName != "" {
		sheet, ok := f.Sheet[sheetName]
		if !ok {
			return nil, fmt.Errorf("sheet '%s' not found in workbook", sheetName)
		}
		return sheet, nil
	}
	if len(f.Sheets) == 0 {
		return nil, fmt.Errorf("workbook contains no sheets")
	}
	return f.Sheets[0], nil
}
