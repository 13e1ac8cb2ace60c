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

package apiserver

import (
	"fmt"
	"net/http"
	"path/filepath"

	"github.com/blievens89/ngram/analysis"
	"github.com/blievens89/ngram/dataimport"
	"github.com/blievens89/ngram/export"
	"github.com/blievens89/ngram/wasters"
	"github.com/czcorpus/cnc-gokit/uniresp"
	"github.com/gin-gonic/gin"
)

type analysisRequest struct {
	Records []analysis.QueryRecord `json:"records"`
	Options *requestOptions        `json:"options"`
}

// requestOptions is the request-side options shape. Every field is
// optional; an omitted field keeps the server-configured value, so e.g.
// sending only `sizes` cannot silently switch off stop-word filtering.
type requestOptions struct {
	Sizes           []int     `json:"sizes"`
	MinOccurrences  *int      `json:"minOccurrences"`
	UseStopWords    *bool     `json:"useStopWords"`
	CustomStopWords *[]string `json:"customStopWords"`
	SortMetric      string    `json:"sortMetric"`
}

type resultRow struct {
	*analysis.Aggregate
	Metrics analysis.Metrics `json:"metrics"`
}

type analysisResponse struct {
	Sizes []int               `json:"sizes"`
	Rows  map[int][]resultRow `json:"rows"`
}

type wastersRequest struct {
	analysisRequest
	CostPercentile *float64 `json:"costPercentile"`
	CVRPercentile  *float64 `json:"cvrPercentile"`
}

type scoredRowResponse struct {
	*analysis.Aggregate
	Metrics    analysis.Metrics `json:"metrics"`
	WasteScore float64          `json:"wasteScore"`
	IsWaster   bool             `json:"isWaster"`
}

type wastersSizeResponse struct {
	Thresholds wasters.Thresholds  `json:"thresholds"`
	Wasters    []scoredRowResponse `json:"wasters"`
	Savings    wasters.Savings     `json:"savings"`
}

type wastersResponse struct {
	Sizes []int                       `json:"sizes"`
	Rows  map[int]wastersSizeResponse `json:"rows"`
}

func (api *apiServer) handleVersion(ctx *gin.Context) {
	uniresp.WriteJSONResponse(ctx.Writer, api.version)
}

// resolveOptions merges request options with the configured defaults. A
// request without an options object runs with the server configuration;
// a partial options object keeps the configured values for unset fields.
func (api *apiServer) resolveOptions(reqOpts *requestOptions) analysis.Options {
	opts := api.conf.Analysis.ToOptions()
	if reqOpts == nil {
		return opts
	}
	if len(reqOpts.Sizes) > 0 {
		opts.Sizes = reqOpts.Sizes
	}
	if reqOpts.MinOccurrences != nil {
		opts.MinOccurrences = *reqOpts.MinOccurrences
	}
	if reqOpts.UseStopWords != nil {
		opts.UseStopWords = *reqOpts.UseStopWords
	}
	if reqOpts.CustomStopWords != nil {
		opts.CustomStopWords = *reqOpts.CustomStopWords
	}
	if reqOpts.SortMetric != "" {
		opts.SortMetric = analysis.Metric(reqOpts.SortMetric)
	}
	return opts
}

func resultSetResponse(rs *analysis.ResultSet) analysisResponse {
	resp := analysisResponse{
		Sizes: rs.Sizes,
		Rows:  make(map[int][]resultRow, len(rs.Sizes)),
	}
	for _, n := range rs.Sizes {
		rows := make([]resultRow, len(rs.Tables[n]))
		for i, agg := range rs.Tables[n] {
			rows[i] = resultRow{Aggregate: agg, Metrics: agg.Metrics()}
		}
		resp.Rows[n] = rows
	}
	return resp
}

func (api *apiServer) handleAnalysis(ctx *gin.Context) {
	var req analysisRequest
	if err := ctx.BindJSON(&req); err != nil {
		uniresp.RespondWithErrorJSON(ctx, fmt.Errorf("invalid request: %w", err), http.StatusBadRequest)
		return
	}
	if len(req.Records) == 0 {
		uniresp.RespondWithErrorJSON(ctx, fmt.Errorf("no records provided"), http.StatusBadRequest)
		return
	}
	rs, err := api.analyze(req.Records, api.resolveOptions(req.Options))
	if err != nil {
		uniresp.RespondWithErrorJSON(ctx, err, http.StatusUnprocessableEntity)
		return
	}
	uniresp.WriteJSONResponse(ctx.Writer, resultSetResponse(rs))
}

func (api *apiServer) handleAnalysisCSV(ctx *gin.Context) {
	records, err := dataimport.ReadCSV(ctx.Request.Body)
	if err != nil {
		uniresp.RespondWithErrorJSON(ctx, fmt.Errorf("invalid CSV payload: %w", err), http.StatusBadRequest)
		return
	}
	if len(records) == 0 {
		uniresp.RespondWithErrorJSON(ctx, fmt.Errorf("no usable rows in CSV payload"), http.StatusBadRequest)
		return
	}
	rs, err := api.analyze(records, api.conf.Analysis.ToOptions())
	if err != nil {
		uniresp.RespondWithErrorJSON(ctx, err, http.StatusUnprocessableEntity)
		return
	}
	uniresp.WriteJSONResponse(ctx.Writer, resultSetResponse(rs))
}

func (api *apiServer) handleWasters(ctx *gin.Context) {
	var req wastersRequest
	if err := ctx.BindJSON(&req); err != nil {
		uniresp.RespondWithErrorJSON(ctx, fmt.Errorf("invalid request: %w", err), http.StatusBadRequest)
		return
	}
	if len(req.Records) == 0 {
		uniresp.RespondWithErrorJSON(ctx, fmt.Errorf("no records provided"), http.StatusBadRequest)
		return
	}
	costPct := api.conf.Wasters.CostPercentile
	if req.CostPercentile != nil {
		costPct = *req.CostPercentile
	}
	cvrPct := api.conf.Wasters.CVRPercentile
	if req.CVRPercentile != nil {
		cvrPct = *req.CVRPercentile
	}
	rs, err := api.analyze(req.Records, api.resolveOptions(req.Options))
	if err != nil {
		uniresp.RespondWithErrorJSON(ctx, err, http.StatusUnprocessableEntity)
		return
	}
	resp := wastersResponse{
		Sizes: rs.Sizes,
		Rows:  make(map[int]wastersSizeResponse, len(rs.Sizes)),
	}
	for _, n := range rs.Sizes {
		scored, thresholds, err := wasters.Score(rs.Tables[n], costPct, cvrPct)
		if err != nil {
			uniresp.RespondWithErrorJSON(ctx, err, http.StatusUnprocessableEntity)
			return
		}
		wrows := wasters.Wasters(scored)
		rows := make([]scoredRowResponse, len(wrows))
		for i, sr := range wrows {
			rows[i] = scoredRowResponse{
				Aggregate:  sr.Aggregate,
				Metrics:    sr.Aggregate.Metrics(),
				WasteScore: sr.WasteScore,
				IsWaster:   sr.IsWaster,
			}
		}
		resp.Rows[n] = wastersSizeResponse{
			Thresholds: thresholds,
			Wasters:    rows,
			Savings:    wasters.PotentialSavings(wrows),
		}
	}
	uniresp.WriteJSONResponse(ctx.Writer, resp)
}

func (api *apiServer) handleListSnapshots(ctx *gin.Context) {
	files, err := export.ListSnapshots(api.conf.SnapshotDir)
	if err != nil {
		uniresp.RespondWithErrorJSON(ctx, err, http.StatusInternalServerError)
		return
	}
	uniresp.WriteJSONResponse(ctx.Writer, map[string]any{"snapshots": files})
}

func (api *apiServer) handleGetSnapshot(ctx *gin.Context) {
	filename := ctx.Param("file")
	if filename != filepath.Base(filename) {
		uniresp.RespondWithErrorJSON(ctx, fmt.Errorf("invalid snapshot name"), http.StatusBadRequest)
		return
	}
	snapshot, err := export.LoadSnapshot(api.conf.SnapshotDir, filename)
	if err != nil {
		uniresp.RespondWithErrorJSON(ctx, err, http.StatusNotFound)
		return
	}
	uniresp.WriteJSONResponse(ctx.Writer, snapshot)
}
