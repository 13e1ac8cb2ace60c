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
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/blievens89/ngram/analysis"
	"github.com/rs/zerolog/log"
)

// ReadCSV loads query records from CSV data (a file's contents, or data
// pasted to stdin). The first row must be the header.
func ReadCSV(r io.Reader) ([]analysis.QueryRecord, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	all, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse CSV data: %w", err)
	}
	if len(all) == 0 {
		return nil, fmt.Errorf("CSV data contains no header row")
	}
	records, err := recordsFromRows(all[0], all[1:])
	if err != nil {
		return nil, err
	}
	log.Info().Int("numRecords", len(records)).Msg("loaded records from CSV")
	return records, nil
}

// ReadCSVFile loads query records from a CSV file on disk.
func ReadCSVFile(path string) ([]analysis.QueryRecord, error) {
	fr, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer fr.Close()
	return ReadCSV(fr)
}
