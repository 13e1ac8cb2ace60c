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

package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/blievens89/ngram/analysis"
	"github.com/blievens89/ngram/cnf"
	"github.com/blievens89/ngram/textproc"
	"github.com/chzyer/readline"
	"github.com/fatih/color"
	"github.com/rs/zerolog/log"
)

const maxREPLSuggestions = 3

func ensureConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	configDir := filepath.Join(homeDir, ".config", "ngramizer")
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return "", err
	}
	return configDir, nil
}

// nearestKeys returns up to limit keys of the same size closest to key by
// edit distance, nearest first.
func nearestKeys(key textproc.Key, rows []*analysis.Aggregate, limit int) []textproc.Key {
	type scored struct {
		key  textproc.Key
		dist int
	}
	cands := make([]scored, 0, len(rows))
	for _, agg := range rows {
		d := levenshtein.ComputeDistance(string(key), string(agg.Key))
		if d <= len(key)/2 {
			cands = append(cands, scored{agg.Key, d})
		}
	}
	sort.Slice(cands, func(i, j int) bool {
		if cands[i].dist != cands[j].dist {
			return cands[i].dist < cands[j].dist
		}
		return cands[i].key < cands[j].key
	})
	if len(cands) > limit {
		cands = cands[:limit]
	}
	ans := make([]textproc.Key, len(cands))
	for i, c := range cands {
		ans[i] = c.key
	}
	return ans
}

// takeTop returns the first num rows, tolerating any out-of-range count.
func takeTop(rows []*analysis.Aggregate, num int) []*analysis.Aggregate {
	if num < 0 {
		num = 0
	}
	if num > len(rows) {
		num = len(rows)
	}
	return rows[:num]
}

func runActionREPL(conf *cnf.Conf, srcPath, sheet string) {
	_, rs := loadAndAnalyze(conf, srcPath, sheet)
	opts := rs.Options
	tokenizer := textproc.NewTokenizer(opts.UseStopWords, opts.CustomStopWords)

	byKey := make(map[textproc.Key]*analysis.Aggregate)
	for _, n := range rs.Sizes {
		for _, agg := range rs.Tables[n] {
			byKey[agg.Key] = agg
		}
	}

	titleColor := color.New(color.FgHiMagenta).SprintFunc()
	greenColor := color.New(color.FgGreen).SprintFunc()
	redColor := color.New(color.FgRed).SprintFunc()

	fmt.Println("N-gram performance explorer")
	fmt.Println("Commands:")
	fmt.Println("  <phrase>          - Look up an n-gram's aggregated performance")
	fmt.Println("  top <size> [num]  - Show the best rows for an n-gram size")
	fmt.Println("  setup             - View loaded tables and options")
	fmt.Println("  exit              - Exit REPL")
	fmt.Printf("\nLoaded sizes: %v, %d n-grams total\n\n", rs.Sizes, len(byKey))

	var historyFile string
	historyDir, err := ensureConfigDir()
	if err != nil {
		log.Error().Err(err).Msg("failed to determine user config directory - falling back to session-local history")

	} else {
		historyFile = filepath.Join(historyDir, "ngram-history.txt")
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:      color.New(color.FgHiGreen).Sprintf("/ngram> "),
		HistoryFile: historyFile,
	})
	if err != nil {
		fmt.Printf("Error initializing readline: %v\n", err)
		os.Exit(exitErrorREPLReading)
	}
	defer rl.Close()

	for {
		line, err := rl.Readline()
		if err != nil {
			if err == readline.ErrInterrupt || err == io.EOF {
				fmt.Println("\nNgramizer out!")
				break
			}
			fmt.Printf("Error reading input: %v\n", err)
			continue
		}
		input := strings.TrimSpace(line)

		if input == "" {
			continue
		}
		if input == "exit" {
			fmt.Println("Goodbye!")
			break
		}

		if strings.HasPrefix(input, "top ") {
			parsedInput := strings.Fields(input)[1:]
			n, err := strconv.Atoi(parsedInput[0])
			if err != nil || rs.Tables[n] == nil {
				fmt.Println("Usage: top <size> [num], with size one of", rs.Sizes)
				continue
			}
			num := 10
			if len(parsedInput) == 2 {
				num, err = strconv.Atoi(parsedInput[1])
				if err != nil || num < 1 {
					fmt.Println("Error: Invalid row count")
					continue
				}
			}
			fmt.Printf("%s (by %s):\n", titleColor(fmt.Sprintf("top %d-grams", n)), opts.SortMetric)
			for _, agg := range takeTop(rs.Tables[n], num) {
				fmt.Printf("  %s\tqueries=%d clicks=%d cost=%.2f conv=%.1f\n",
					agg.Key, agg.QueryCount, agg.Clicks, agg.Cost, agg.Conversions)
			}
			continue

		} else if input == "setup" {
			fmt.Printf("%s:\t%s\n", titleColor("Source"), srcPath)
			for _, n := range rs.Sizes {
				fmt.Printf("%s:\t%d rows\n", titleColor(fmt.Sprintf("%d-grams", n)), len(rs.Tables[n]))
			}
			fmt.Printf("%s:\t%d\n", titleColor("Min. occurrences"), opts.MinOccurrences)
			fmt.Printf("%s:\t%s\n", titleColor("Sort metric"), opts.SortMetric)
			continue
		}

		// Treat as an n-gram lookup
		tokens := tokenizer.Clean(input)
		if len(tokens) == 0 {
			fmt.Println("nothing left of the input after cleaning")
			continue
		}
		key := textproc.KeyOf(tokens)
		agg, ok := byKey[key]
		if !ok {
			fmt.Printf("%s not found\n", key)
			if rows := rs.Tables[key.Size()]; rows != nil {
				for _, sugg := range nearestKeys(key, rows, maxREPLSuggestions) {
					fmt.Printf("  did you mean %s?\n", titleColor(string(sugg)))
				}
			}
			continue
		}

		m := agg.Metrics()
		fmt.Printf("%s:\n", titleColor(string(agg.Key)))
		fmt.Printf("  queries=%d clicks=%d cost=%.2f conversions=%.1f\n",
			agg.QueryCount, agg.Clicks, agg.Cost, agg.Conversions)
		if m.CTRKnown {
			fmt.Printf("  ctr: %.2f%%\n", m.CTR*100)

		} else {
			fmt.Printf("  ctr: %s\n", redColor("unknown (no impression data)"))
		}
		var cvrResult string
		if m.CVR > 0 {
			cvrResult = greenColor(fmt.Sprintf("%.2f%%", m.CVR*100))

		} else {
			cvrResult = redColor("0.00%")
		}
		fmt.Printf("  cvr: %s\n", cvrResult)
		if m.CPAKnown {
			fmt.Printf("  cpa: %.2f\n", m.CPA)

		} else {
			fmt.Printf("  cpa: %s\n", redColor("n/a (no conversions)"))
		}
	}
}
