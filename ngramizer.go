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
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/blievens89/ngram/apiserver"
	"github.com/blievens89/ngram/cnf"
	"github.com/czcorpus/cnc-gokit/logging"
)

const (
	actionAnalyze      = "analyze"
	actionWasters      = "wasters"
	actionServer       = "server"
	actionREPL         = "repl"
	actionSnapshotList = "snapshot-list"
	actionSnapshotShow = "snapshot-show"
	actionVersion      = "version"
	actionHelp         = "help"

	exitErrorGeneralFailure = iota
	exitErrorImportFailed
	exitErrorAnalysisFailed
	exitErrorExportFailed
	exitErrorSnapshotFailed
	exitErrorREPLReading
)

var (
	version   string
	buildDate string
	gitCommit string
)

func topLevelUsage() {
	fmt.Fprintf(os.Stderr, "NGRAMIZER - a search query n-gram performance analyzer\n")
	fmt.Fprintf(os.Stderr, "-----------------------------\n\n")
	fmt.Fprintf(os.Stderr, "Commands:\n")
	fmt.Fprintf(os.Stderr, "\t%s\t\tshow version info\n", actionVersion)
	fmt.Fprintf(os.Stderr, "\t%s\t\taggregate n-gram performance from a data file\n", actionAnalyze)
	fmt.Fprintf(os.Stderr, "\t%s\t\tfind money-wasting n-grams and negative keyword candidates\n", actionWasters)
	fmt.Fprintf(os.Stderr, "\t%s\t\trun the HTTP API server\n", actionServer)
	fmt.Fprintf(os.Stderr, "\t%s\t\t\texplore a data file interactively\n", actionREPL)
	fmt.Fprintf(os.Stderr, "\t%s\tlist saved analysis snapshots\n", actionSnapshotList)
	fmt.Fprintf(os.Stderr, "\t%s\tprint a saved analysis snapshot\n", actionSnapshotShow)
	fmt.Fprintf(os.Stderr, "\nUse `ngramizer help ACTION` for information about a specific action\n\n")
}

func setup(confPath string) *cnf.Conf {
	conf := cnf.LoadConfig(confPath)
	if conf.Logging.Level == "" {
		conf.Logging.Level = "info"
	}
	logging.SetupLogging(conf.Logging)
	cnf.ValidateAndDefaults(conf)
	return conf
}

func cleanVersionInfo(v string) string {
	return strings.TrimLeft(strings.Trim(v, "'"), "v")
}

func runActionVersion(ver apiserver.VersionInfo) {
	fmt.Fprintln(os.Stderr, "Ngramizer version: ", ver)
}

func main() {
	version := apiserver.VersionInfo{
		Version:   cleanVersionInfo(version),
		BuildDate: cleanVersionInfo(buildDate),
		GitCommit: cleanVersionInfo(gitCommit),
	}

	cmdVersion := flag.NewFlagSet(actionVersion, flag.ExitOnError)
	cmdVersion.Usage = func() {
		cmdVersion.PrintDefaults()
	}

	cmdHelp := flag.NewFlagSet(actionHelp, flag.ExitOnError)
	cmdHelp.Usage = func() {
		cmdHelp.PrintDefaults()
	}

	cmdAnalyze := flag.NewFlagSet(actionAnalyze, flag.ExitOnError)
	analyzeOut := cmdAnalyze.String("out", "", "write summary CSV files to this directory (one file per n-gram size)")
	analyzeDetailed := cmdAnalyze.Bool("detailed", false, "include the contributing queries column in exported CSV files")
	analyzeText := cmdAnalyze.Bool("text", false, "print a plain-text report to stdout instead of a table preview")
	analyzeSave := cmdAnalyze.String("save", "", "save the results as a named snapshot")
	analyzeSheet := cmdAnalyze.String("sheet", "", "sheet name for XLSX sources (first sheet when empty)")
	cmdAnalyze.Usage = func() {
		fmt.Fprintf(
			os.Stderr,
			"Usage:\t%s %s [options] config.json data.[csv|xlsx|sqlite]\n",
			filepath.Base(os.Args[0]), actionAnalyze)
		fmt.Fprintf(os.Stderr, "\nOptions:\n")
		cmdAnalyze.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nAggregate search query performance into n-gram tables\n")
	}

	cmdWasters := flag.NewFlagSet(actionWasters, flag.ExitOnError)
	wastersOut := cmdWasters.String("out", "", "write negative keyword candidates to this file (one per line)")
	wastersSheet := cmdWasters.String("sheet", "", "sheet name for XLSX sources (first sheet when empty)")
	cmdWasters.Usage = func() {
		fmt.Fprintf(
			os.Stderr,
			"Usage:\t%s %s [options] config.json data.[csv|xlsx|sqlite]\n",
			filepath.Base(os.Args[0]), actionWasters)
		fmt.Fprintf(os.Stderr, "\nOptions:\n")
		cmdWasters.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nScore n-grams by wasted spend and suggest negative keywords\n")
	}

	cmdServer := flag.NewFlagSet(actionServer, flag.ExitOnError)
	cmdServer.Usage = func() {
		fmt.Fprintf(
			os.Stderr,
			"Usage:\t%s %s config.json\n",
			filepath.Base(os.Args[0]), actionServer)
		cmdServer.PrintDefaults()
	}

	cmdREPL := flag.NewFlagSet(actionREPL, flag.ExitOnError)
	replSheet := cmdREPL.String("sheet", "", "sheet name for XLSX sources (first sheet when empty)")
	cmdREPL.Usage = func() {
		fmt.Fprintf(
			os.Stderr,
			"Usage:\t%s %s [options] config.json data.[csv|xlsx|sqlite]\n",
			filepath.Base(os.Args[0]), actionREPL)
		cmdREPL.PrintDefaults()
	}

	cmdSnapshotList := flag.NewFlagSet(actionSnapshotList, flag.ExitOnError)
	cmdSnapshotList.Usage = func() {
		cmdSnapshotList.PrintDefaults()
	}

	cmdSnapshotShow := flag.NewFlagSet(actionSnapshotShow, flag.ExitOnError)
	snapshotSize := cmdSnapshotShow.Int("size", 0, "limit output to a single n-gram size")
	cmdSnapshotShow.Usage = func() {
		fmt.Fprintf(
			os.Stderr,
			"Usage:\t%s %s [options] config.json snapshot-file\n",
			filepath.Base(os.Args[0]), actionSnapshotShow)
		cmdSnapshotShow.PrintDefaults()
	}

	action := actionHelp
	if len(os.Args) > 1 {
		action = os.Args[1]
	}

	switch action {
	case actionHelp:
		var subj string
		if len(os.Args) > 2 {
			cmdHelp.Parse(os.Args[2:])
			subj = cmdHelp.Arg(0)
		}
		if subj == "" {
			topLevelUsage()
			return
		}
		switch subj {
		case actionAnalyze:
			cmdAnalyze.PrintDefaults()
		case actionWasters:
			cmdWasters.PrintDefaults()
		case actionServer:
			cmdServer.PrintDefaults()
		case actionREPL:
			cmdREPL.PrintDefaults()
		case actionSnapshotList:
			cmdSnapshotList.PrintDefaults()
		case actionSnapshotShow:
			cmdSnapshotShow.PrintDefaults()
		}
	case actionVersion:
		cmdVersion.Parse(os.Args[2:])
		runActionVersion(version)
	case actionAnalyze:
		cmdAnalyze.Parse(os.Args[2:])
		conf := setup(cmdAnalyze.Arg(0))
		runAnalyze(conf, cmdAnalyze.Arg(1), analyzeArgs{
			outDir:   *analyzeOut,
			detailed: *analyzeDetailed,
			textMode: *analyzeText,
			saveName: *analyzeSave,
			sheet:    *analyzeSheet,
		})
	case actionWasters:
		cmdWasters.Parse(os.Args[2:])
		conf := setup(cmdWasters.Arg(0))
		runWasters(conf, cmdWasters.Arg(1), *wastersOut, *wastersSheet)
	case actionServer:
		cmdServer.Parse(os.Args[2:])
		conf := setup(cmdServer.Arg(0))
		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		apiserver.Run(ctx, conf, version)
	case actionREPL:
		cmdREPL.Parse(os.Args[2:])
		conf := setup(cmdREPL.Arg(0))
		runActionREPL(conf, cmdREPL.Arg(1), *replSheet)
	case actionSnapshotList:
		cmdSnapshotList.Parse(os.Args[2:])
		conf := setup(cmdSnapshotList.Arg(0))
		runSnapshotList(conf)
	case actionSnapshotShow:
		cmdSnapshotShow.Parse(os.Args[2:])
		conf := setup(cmdSnapshotShow.Arg(0))
		runSnapshotShow(conf, cmdSnapshotShow.Arg(1), *snapshotSize)
	default:
		fmt.Fprintf(os.Stderr, "Unknown action, please use 'help' to get more information")
	}

}
