package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"golang.org/x/term"

	"github.com/projecthamburgresearch/resuscitation-health-app/pkg/analysis"
	"github.com/projecthamburgresearch/resuscitation-health-app/pkg/automation"
	"github.com/projecthamburgresearch/resuscitation-health-app/pkg/engine"
	"github.com/projecthamburgresearch/resuscitation-health-app/pkg/loader"
	"github.com/projecthamburgresearch/resuscitation-health-app/pkg/model"
	"github.com/projecthamburgresearch/resuscitation-health-app/pkg/ui"
)

const version = "0.3.0"

func main() {
	algorithmPath := flag.String("algorithm", "", "Path to an algorithm JSON file")
	algorithmDir := flag.String("dir", "", "Directory to search for an algorithm file")
	algorithmURL := flag.String("url", "", "URL to fetch an algorithm from")
	snapshotFlag := flag.Bool("snapshot", false, "Print the initial navigation snapshot as JSON and exit")
	lintFlag := flag.Bool("lint", false, "Lint the algorithm deck and print findings as JSON")
	listFlag := flag.Bool("list", false, "Print the card list as JSON and exit")
	versionFlag := flag.Bool("version", false, "Show version")
	helpFlag := flag.Bool("help", false, "Show help")
	flag.Parse()

	if *helpFlag {
		printHelp()
		return
	}
	if *versionFlag {
		fmt.Printf("rha %s\n", version)
		return
	}

	alg := loadAlgorithm(*algorithmPath, *algorithmDir, *algorithmURL)

	if *lintFlag {
		writeJSON(analysis.Lint(alg))
		return
	}

	session := engine.NewSession()
	session.ApplyAlgorithm(alg)
	ctrl := automation.NewController(session, loader.Default)

	switch {
	case *listFlag:
		writeJSON(ctrl.ListCards())
		return
	case *snapshotFlag:
		writeJSON(ctrl.GetSnapshot())
		return
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprintln(os.Stderr, "rha: stdout is not a terminal; use -snapshot, -list, or -lint for headless output")
		os.Exit(1)
	}

	if err := ui.Run(session, ctrl); err != nil {
		fmt.Fprintf(os.Stderr, "rha: %v\n", err)
		os.Exit(1)
	}
}

// loadAlgorithm resolves the algorithm from flags, falling back to the
// embedded default so the navigator always starts with a valid graph.
func loadAlgorithm(path, dir, url string) *model.Algorithm {
	switch {
	case url != "":
		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
		defer cancel()
		alg, err := loader.Fetch(ctx, url)
		if err != nil {
			fmt.Fprintf(os.Stderr, "rha: %v; using built-in algorithm\n", err)
			return loader.Default()
		}
		return alg

	case dir != "":
		found, err := loader.FindAlgorithmPath(dir)
		if err != nil {
			fmt.Fprintf(os.Stderr, "rha: %v; using built-in algorithm\n", err)
			return loader.Default()
		}
		path = found
		fallthrough

	case path != "":
		alg, err := loader.Load(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "rha: %v; using built-in algorithm\n", err)
			return loader.Default()
		}
		return alg
	}
	return loader.Default()
}

func writeJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		fmt.Fprintf(os.Stderr, "rha: %v\n", err)
		os.Exit(1)
	}
}

func printHelp() {
	fmt.Println(`rha - wheel-driven protocol navigator

Usage:
  rha [flags]

Flags:
  -algorithm <path>   Load a specific algorithm JSON file
  -dir <path>         Search a directory for algorithm.json
  -url <url>          Fetch an algorithm over HTTP
  -snapshot           Print the initial navigation snapshot as JSON
  -list               Print the card list as JSON
  -lint               Print deck lint findings as JSON
  -version            Show version
  -help               Show this help

With no flags, rha loads the built-in Adult BLS algorithm and starts the
interactive wheel. Drag the wheel knob with the mouse to walk the
protocol; drag the preview card down or a history card up to navigate
without the wheel.`)
}
