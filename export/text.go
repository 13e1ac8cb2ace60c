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
	"fmt"
	"io"
	"strings"

	"github.com/blievens89/ngram/analysis"
)

// WriteTextReport renders one size's rows as a human-readable report.
// Rates print as percentages here; undefined values print as "n/a".
func WriteTextReport(w io.Writer, n int, rows []*analysis.Aggregate) error {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d-GRAM ANALYSIS RESULTS\n%s\n\n", n, strings.Repeat("=", 50))
	for _, agg := range rows {
		m := agg.Metrics()
		fmt.Fprintf(&sb, "N-gram: %s\n", agg.Key)
		fmt.Fprintf(&sb, "  Queries: %d\n", agg.QueryCount)
		fmt.Fprintf(&sb, "  Clicks: %d\n", agg.Clicks)
		fmt.Fprintf(&sb, "  Cost: £%.2f\n", agg.Cost)
		fmt.Fprintf(&sb, "  Conversions: %.0f\n", agg.Conversions)
		if m.CTRKnown {
			fmt.Fprintf(&sb, "  CTR: %.2f%%\n", m.CTR*100)

		} else {
			fmt.Fprint(&sb, "  CTR: n/a\n")
		}
		fmt.Fprintf(&sb, "  CVR: %.2f%%\n", m.CVR*100)
		if m.CPAKnown {
			fmt.Fprintf(&sb, "  CPA: £%.2f\n", m.CPA)

		} else {
			fmt.Fprint(&sb, "  CPA: n/a\n")
		}
		sb.WriteByte('\n')
	}
	_, err := io.WriteString(w, sb.String())
	if err != nil {
		return fmt.Errorf("failed to write text report: %w", err)
	}
	return nil
}
