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
	"context"
	"database/sql"
	"fmt"

	"github.com/blievens89/ngram/analysis"
	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog/log"
	"github.com/schollz/progressbar/v3"
)

// SQLSource reads query records from a sqlite file with a `search_terms`
// table, the shape produced by warehouse exports of search term reports:
// query TEXT, clicks INTEGER, cost FLOAT, conversions FLOAT,
// impressions INTEGER NULL. This is an ingestion source only - analysis
// results are never written back.
type SQLSource struct {
	db *sql.DB
}

// OpenSQLSource opens a sqlite database file as a record source.
func OpenSQLSource(path string) (*SQLSource, error) {
	db, err := sql.Open("sqlite3", "file:"+path+"?mode=ro")
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite source: %w", err)
	}
	return &SQLSource{db: db}, nil
}

func (src *SQLSource) Close() error {
	return src.db.Close()
}

// LoadRecords fetches all rows from the search_terms table. A NULL
// impressions cell keeps the record's impressions unknown. Empty queries
// are dropped here just like in the tabular paths.
func (src *SQLSource) LoadRecords(ctx context.Context) ([]analysis.QueryRecord, error) {
	var total int64
	if err := src.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM search_terms").Scan(&total); err != nil {
		return nil, fmt.Errorf("failed to count source rows: %w", err)
	}
	rows, err := src.db.QueryContext(
		ctx,
		"SELECT query, clicks, cost, conversions, impressions FROM search_terms",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch source rows: %w", err)
	}
	defer rows.Close()

	bar := progressbar.Default(total, "importing records")
	ans := make([]analysis.QueryRecord, 0, total)
	var numDropped int
	for rows.Next() {
		var rec analysis.QueryRecord
		var impressions sql.NullInt64
		if err := rows.Scan(&rec.Query, &rec.Clicks, &rec.Cost, &rec.Conversions, &impressions); err != nil {
			return nil, fmt.Errorf("failed to read source row: %w", err)
		}
		bar.Add(1)
		if rec.Query == "" {
			numDropped++
			continue
		}
		if impressions.Valid {
			v := int(impressions.Int64)
			rec.Impressions = &v
		}
		ans = append(ans, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read source rows: %w", err)
	}
	if numDropped > 0 {
		log.Info().Int("numDropped", numDropped).Msg("dropped rows with empty query")
	}
	log.Info().Int("numRecords", len(ans)).Msg("loaded records from sqlite source")
	return ans, nil
}
