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

package cnf

import (
	"encoding/json"
	"os"

	"github.com/blievens89/ngram/analysis"
	"github.com/blievens89/ngram/wasters"
	"github.com/czcorpus/cnc-gokit/logging"
	"github.com/rs/zerolog/log"
)

const (
	dfltServerReadTimeoutSecs  = 30
	dfltServerWriteTimeoutSecs = 30
	dfltListenAddress          = "127.0.0.1"
	dfltListenPort             = 8090
	dfltSnapshotDir            = "./saved_analyses"
)

// AnalysisConf is the configurable part of the aggregation pipeline.
// Stop-word filtering defaults to enabled, hence the negated flag.
type AnalysisConf struct {
	Sizes            []int    `json:"sizes"`
	MinOccurrences   int      `json:"minOccurrences"`
	DisableStopWords bool     `json:"disableStopWords"`
	CustomStopWords  []string `json:"customStopWords"`
	SortMetric       string   `json:"sortMetric"`
}

// ToOptions converts the configured values into pipeline options. The
// result still goes through Options.Validate before any aggregation.
func (ac AnalysisConf) ToOptions() analysis.Options {
	return analysis.Options{
		Sizes:           ac.Sizes,
		MinOccurrences:  ac.MinOccurrences,
		UseStopWords:    !ac.DisableStopWords,
		CustomStopWords: ac.CustomStopWords,
		SortMetric:      analysis.Metric(ac.SortMetric),
	}
}

// WastersConf configures the money-waster scoring pass.
type WastersConf struct {
	Disabled            bool    `json:"disabled"`
	CostPercentile      float64 `json:"costPercentile"`
	CVRPercentile       float64 `json:"cvrPercentile"`
	MinWasteScore       float64 `json:"minWasteScore"`
	MaxNegativeKeywords int     `json:"maxNegativeKeywords"`
}

// Conf is the application configuration as loaded from a JSON file.
type Conf struct {
	srcPath                string
	Logging                logging.LoggingConf `json:"logging"`
	ListenAddress          string              `json:"listenAddress"`
	ListenPort             int                 `json:"listenPort"`
	ServerReadTimeoutSecs  int                 `json:"serverReadTimeoutSecs"`
	ServerWriteTimeoutSecs int                 `json:"serverWriteTimeoutSecs"`
	CorsAllowedOrigins     []string            `json:"corsAllowedOrigins"`
	SnapshotDir            string              `json:"snapshotDir"`
	Analysis               AnalysisConf        `json:"analysis"`
	Wasters                WastersConf         `json:"wasters"`
}

// GetSourcePath returns the path the configuration was loaded from.
func (conf *Conf) GetSourcePath() string {
	return conf.srcPath
}

func LoadConfig(path string) *Conf {
	if path == "" {
		log.Fatal().Msg("Cannot load config - path not specified")
	}
	rawData, err := os.ReadFile(path)
	if err != nil {
		log.Fatal().Err(err).Msg("Cannot load config")
	}
	var conf Conf
	conf.srcPath = path
	err = json.Unmarshal(rawData, &conf)
	if err != nil {
		log.Fatal().Err(err).Msg("Cannot load config")
	}
	return &conf
}

// ValidateAndDefaults fills in unset values and refuses to continue with
// an unusable configuration.
func ValidateAndDefaults(conf *Conf) {
	if conf.ListenAddress == "" {
		conf.ListenAddress = dfltListenAddress
	}
	if conf.ListenPort == 0 {
		conf.ListenPort = dfltListenPort
	}
	if conf.ServerReadTimeoutSecs == 0 {
		conf.ServerReadTimeoutSecs = dfltServerReadTimeoutSecs
	}
	if conf.ServerWriteTimeoutSecs == 0 {
		conf.ServerWriteTimeoutSecs = dfltServerWriteTimeoutSecs
		log.Warn().Msgf(
			"serverWriteTimeoutSecs not specified, using default: %d",
			dfltServerWriteTimeoutSecs,
		)
	}
	if conf.SnapshotDir == "" {
		conf.SnapshotDir = dfltSnapshotDir
		log.Warn().Str("dir", dfltSnapshotDir).Msg("snapshotDir not specified, using default")
	}
	if len(conf.Analysis.Sizes) == 0 {
		conf.Analysis.Sizes = analysis.DefaultOptions().Sizes
	}
	if conf.Analysis.MinOccurrences == 0 {
		conf.Analysis.MinOccurrences = analysis.DefaultOptions().MinOccurrences
	}
	if conf.Analysis.SortMetric == "" {
		conf.Analysis.SortMetric = string(analysis.MetricCost)
	}
	if err := conf.Analysis.ToOptions().Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid analysis configuration")
	}
	if conf.Wasters.CostPercentile == 0 {
		conf.Wasters.CostPercentile = wasters.DfltCostPercentile
	}
	if conf.Wasters.CVRPercentile == 0 {
		conf.Wasters.CVRPercentile = wasters.DfltCVRPercentile
	}
	if conf.Wasters.MinWasteScore == 0 {
		conf.Wasters.MinWasteScore = wasters.DfltMinWasteScore
	}
	if conf.Wasters.MaxNegativeKeywords == 0 {
		conf.Wasters.MaxNegativeKeywords = wasters.DfltMaxKeywords
	}
	if conf.Wasters.CostPercentile < 0 || conf.Wasters.CostPercentile > 100 ||
		conf.Wasters.CVRPercentile < 0 || conf.Wasters.CVRPercentile > 100 {
		log.Fatal().Msg("invalid wasters configuration: percentiles must be within [0, 100]")
	}
}
