package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"syscall"
	"time"

	"github.com/blievens89/ngram/analysis"
	"github.com/blievens89/ngram/cnf"
	"github.com/blievens89/ngram/dataimport"
	"github.com/blievens89/ngram/export"
	"github.com/blievens89/ngram/wasters"
	"github.com/fatih/color"
	"github.com/rs/zerolog/log"
)

const (
	errColor = color.FgHiRed
)

type analyzeArgs struct {
	outDir   string
	detailed bool
	textMode bool
	saveName string
	sheet    string
}

// loadRecords reads query records from a source file, with the format
// detected from the file extension.
func loadRecords(path, sheet string) ([]analysis.QueryRecord, error) {
	if path == "-" {
		return dataimport.ReadCSV(os.Stdin)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return dataimport.ReadCSVFile(path)
	case ".xlsx":
		return dataimport.ReadXLSXFile(path, sheet)
	case ".db", ".sqlite", ".sqlite3":
		src, err := dataimport.OpenSQLSource(path)
		if err != nil {
			return nil, err
		}
		defer src.Close()
		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		return src.LoadRecords(ctx)
	default:
		return nil, fmt.Errorf("unsupported source file type: %s", path)
	}
}

func loadAndAnalyze(conf *cnf.Conf, srcPath, sheet string) ([]analysis.QueryRecord, *analysis.ResultSet) {
	records, err := loadRecords(srcPath, sheet)
	if err != nil {
		color.New(errColor).Fprintln(os.Stderr, err)
		os.Exit(exitErrorImportFailed)
	}
	quality := dataimport.Summarize(records)
	log.Info().
		Int("totalRows", quality.TotalRows).
		Int("totalClicks", quality.TotalClicks).
		Float64("totalCost", quality.TotalCost).
		Float64("convertingShare", quality.ConvertingShare).
		Msg("imported records")
	if quality.TotalRows > 0 && quality.RowsWithConversions == 0 {
		log.Warn().Msg("the dataset contains no conversions - CPA and CVR columns will carry no signal")
	}
	rs, err := analysis.Analyze(records, conf.Analysis.ToOptions())
	if err != nil {
		color.New(errColor).Fprintln(os.Stderr, err)
		os.Exit(exitErrorAnalysisFailed)
	}
	return records, rs
}

func exportResults(rs *analysis.ResultSet, outDir string, detailed bool) {
	if err := os.MkdirAll(outDir, 0755); err != nil {
		color.New(errColor).Fprintln(os.Stderr, err)
		os.Exit(exitErrorExportFailed)
	}
	for _, n := range rs.Sizes {
		path := filepath.Join(outDir, fmt.Sprintf("ngrams_%d.csv", n))
		f, err := os.Create(path)
		if err != nil {
			color.New(errColor).Fprintln(os.Stderr, err)
			os.Exit(exitErrorExportFailed)
		}
		if detailed {
			err = export.WriteDetailedCSV(f, rs.Tables[n])

		} else {
			err = export.WriteSummaryCSV(f, rs.Tables[n])
		}
		if err2 := f.Close(); err == nil {
			err = err2
		}
		if err != nil {
			color.New(errColor).Fprintln(os.Stderr, err)
			os.Exit(exitErrorExportFailed)
		}
		log.Info().Str("file", path).Int("numRows", len(rs.Tables[n])).Msg("exported n-gram table")
	}
}

func runAnalyze(conf *cnf.Conf, srcPath string, args analyzeArgs) {
	_, rs := loadAndAnalyze(conf, srcPath, args.sheet)
	if args.outDir != "" {
		exportResults(rs, args.outDir, args.detailed)
	}
	if args.textMode {
		for _, n := range rs.Sizes {
			if err := export.WriteTextReport(os.Stdout, n, rs.Tables[n]); err != nil {
				color.New(errColor).Fprintln(os.Stderr, err)
				os.Exit(exitErrorExportFailed)
			}
		}

	} else {
		for _, n := range rs.Sizes {
			fmt.Printf("%d-grams: %d rows (min. occurrences: %d)\n",
				n, len(rs.Tables[n]), rs.Options.MinOccurrences)
		}
	}
	if args.saveName != "" {
		path, err := export.SaveSnapshot(conf.SnapshotDir, args.saveName, rs)
		if err != nil {
			color.New(errColor).Fprintln(os.Stderr, err)
			os.Exit(exitErrorSnapshotFailed)
		}
		log.Info().Str("file", path).Msg("saved analysis snapshot")
	}
}

func runWasters(conf *cnf.Conf, srcPath, outPath, sheet string) {
	_, rs := loadAndAnalyze(conf, srcPath, sheet)
	titleColor := color.New(color.FgHiMagenta).SprintFunc()
	var keywords []string
	seen := make(map[string]bool)
	for _, n := range rs.Sizes {
		scored, thresholds, err := wasters.Score(
			rs.Tables[n], conf.Wasters.CostPercentile, conf.Wasters.CVRPercentile)
		if err != nil {
			color.New(errColor).Fprintln(os.Stderr, err)
			os.Exit(exitErrorAnalysisFailed)
		}
		wrows := wasters.Wasters(scored)
		savings := wasters.PotentialSavings(wrows)
		fmt.Printf("%s (cost >= %.2f, CVR <= %.4f)\n",
			titleColor(fmt.Sprintf("%d-gram money wasters", n)), thresholds.Cost, thresholds.CVR)
		for _, row := range wrows {
			m := row.Metrics()
			fmt.Printf("  %s\tscore=%.3f\tcost=%.2f\tclicks=%d\tcvr=%.2f%%\n",
				row.Key, row.WasteScore, row.Cost, row.Clicks, m.CVR*100)
		}
		fmt.Printf("  flagged rows: %d, wasted spend: %.2f, avg CPA: %.2f\n\n",
			savings.NumWasters, savings.WastedCost, savings.AvgWasterCPA)
		for _, kw := range wasters.NegativeKeywords(
			wrows, conf.Wasters.MinWasteScore, conf.Wasters.MaxNegativeKeywords) {
			if !seen[kw] {
				seen[kw] = true
				keywords = append(keywords, kw)
			}
		}
	}
	if outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			color.New(errColor).Fprintln(os.Stderr, err)
			os.Exit(exitErrorExportFailed)
		}
		err = export.WriteNegativeKeywords(f, keywords)
		if err2 := f.Close(); err == nil {
			err = err2
		}
		if err != nil {
			color.New(errColor).Fprintln(os.Stderr, err)
			os.Exit(exitErrorExportFailed)
		}
		log.Info().Str("file", outPath).Int("numKeywords", len(keywords)).Msg("exported negative keywords")

	} else {
		fmt.Println(titleColor("negative keyword candidates"))
		for _, kw := range keywords {
			fmt.Printf("  %s\n", kw)
		}
	}
}

func runSnapshotList(conf *cnf.Conf) {
	files, err := export.ListSnapshots(conf.SnapshotDir)
	if err != nil {
		color.New(errColor).Fprintln(os.Stderr, err)
		os.Exit(exitErrorSnapshotFailed)
	}
	if len(files) == 0 {
		fmt.Println("no snapshots found in", conf.SnapshotDir)
		return
	}
	for _, f := range files {
		fmt.Println(f)
	}
}

func runSnapshotShow(conf *cnf.Conf, filename string, size int) {
	snapshot, err := export.LoadSnapshot(conf.SnapshotDir, filename)
	if err != nil {
		color.New(errColor).Fprintln(os.Stderr, err)
		os.Exit(exitErrorSnapshotFailed)
	}
	sizes := make([]int, 0, len(snapshot.Results))
	for n := range snapshot.Results {
		if size == 0 || n == size {
			sizes = append(sizes, n)
		}
	}
	if len(sizes) == 0 {
		color.New(errColor).Fprintln(
			os.Stderr, fmt.Errorf("snapshot has no table for size %d", size))
		os.Exit(exitErrorSnapshotFailed)
	}
	sort.Ints(sizes)
	fmt.Printf("snapshot %s (created %s)\n\n", snapshot.Name, snapshot.Timestamp.Format(time.RFC3339))
	for _, n := range sizes {
		if err := export.WriteTextReport(os.Stdout, n, snapshot.Results[n]); err != nil {
			color.New(errColor).Fprintln(os.Stderr, err)
			os.Exit(exitErrorExportFailed)
		}
	}
}
