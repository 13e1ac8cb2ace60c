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

package export

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/blievens89/ngram/analysis"
	"github.com/rs/zerolog/log"
)

const (
	snapshotPrefix = "analysis_"
	snapshotSuffix = ".json"
)

// Snapshot is a saved analysis result: the per-size tables without their
// contributing-query lists (those dominate the file size and are cheap to
// recompute), plus the options which produced them. Snapshots are plain
// JSON files under a configured directory - the only result persistence
// this tool does.
type Snapshot struct {
	Timestamp time.Time                     `json:"timestamp"`
	Name      string                        `json:"name"`
	Options   analysis.Options              `json:"options"`
	Results   map[int][]*analysis.Aggregate `json:"results"`
}

// SaveSnapshot stores rs under dir and returns the generated file name.
func SaveSnapshot(dir, name string, rs *analysis.ResultSet) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to save snapshot: %w", err)
	}
	now := time.Now()
	snap := Snapshot{
		Timestamp: now,
		Name:      name,
		Options:   rs.Options,
		Results:   make(map[int][]*analysis.Aggregate, len(rs.Sizes)),
	}
	for _, n := range rs.Sizes {
		rows := make([]*analysis.Aggregate, len(rs.Tables[n]))
		for i, agg := range rs.Tables[n] {
			stripped := *agg
			stripped.Queries = nil
			rows[i] = &stripped
		}
		snap.Results[n] = rows
	}
	filename := fmt.Sprintf("%s%s_%s%s", snapshotPrefix, now.Format("20060102_150405"), sanitizeName(name), snapshotSuffix)
	fw, err := os.Create(filepath.Join(dir, filename))
	if err != nil {
		return "", fmt.Errorf("failed to save snapshot: %w", err)
	}
	defer fw.Close()
	enc := json.NewEncoder(fw)
	enc.SetIndent("", "  ")
	if err := enc.Encode(snap); err != nil {
		return "", fmt.Errorf("failed to save snapshot: %w", err)
	}
	log.Info().Str("file", filename).Msg("saved analysis snapshot")
	return filename, nil
}

// LoadSnapshot reads a previously saved snapshot by file name.
func LoadSnapshot(dir, filename string) (*Snapshot, error) {
	fr, err := os.Open(filepath.Join(dir, filename))
	if err != nil {
		return nil, fmt.Errorf("failed to load snapshot: %w", err)
	}
	defer fr.Close()
	var ans Snapshot
	if err := json.NewDecoder(fr).Decode(&ans); err != nil {
		return nil, fmt.Errorf("failed to load snapshot: %w", err)
	}
	return &ans, nil
}

// ListSnapshots returns the snapshot file names under dir, most recent
// first. A missing directory is just an empty list.
func ListSnapshots(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to list snapshots: %w", err)
	}
	ans := make([]string, 0, len(entries))
	for _, e := range entries {
		name := e.Name()
		if !e.IsDir() && strings.HasPrefix(name, snapshotPrefix) && strings.HasSuffix(name, snapshotSuffix) {
			ans = append(ans, name)
		}
	}
	sort.Sort(sort.Reverse(sort.StringSlice(ans)))
	return ans, nil
}

// sanitizeName keeps snapshot names filesystem-safe.
func sanitizeName(name string) string {
	var sb strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			sb.WriteRune(r)
		case r == ' ':
			sb.WriteByte('-')
		}
	}
	if sb.Len() == 0 {
		return "unnamed"
	}
	return sb.String()
}
