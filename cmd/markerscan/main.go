// Command markerscan is a small demonstration CLI over markercore: it
// loads a bundle directory and annotates a text file, printing the
// resulting AnnotationResult as JSON.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/sansecio/markerscan/bundle"
	"github.com/sansecio/markerscan/markercore"
	"github.com/sansecio/markerscan/markercore/zaplog"
)

func main() {
	if len(os.Args) < 3 {
		fmt.Fprintf(os.Stderr, "Usage: %s <bundle-dir> <text-file>\n", os.Args[0])
		os.Exit(1)
	}
	bundleDir, textFile := os.Args[1], os.Args[2]

	b, err := bundle.Load(bundleDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading bundle: %v\n", err)
		os.Exit(1)
	}
	for _, w := range b.Warnings {
		fmt.Fprintf(os.Stderr, "bundle warning: %s\n", w)
	}

	data, err := os.ReadFile(textFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading %s: %v\n", textFile, err)
		os.Exit(1)
	}

	zlog, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error building logger: %v\n", err)
		os.Exit(1)
	}
	defer zlog.Sync()

	analyzer := markercore.NewAnalyzerWithOptions(b, markercore.Options{
		Logger: zaplog.New(zlog),
	})

	acPatterns, regexPatterns := analyzer.Stats()
	fmt.Fprintf(os.Stderr, "AC patterns: %d, Regex patterns: %d\n", acPatterns, regexPatterns)

	result := analyzer.Analyze(string(data))

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding result: %v\n", err)
		os.Exit(1)
	}
}
