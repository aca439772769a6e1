package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/jward/xsdnorm"
)

var (
	flagInput     string
	flagOutput    string
	flagRecursive bool
	flagCacheDB   string
	flagForce     bool
	flagVerbose   bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:          "xsdnorm",
	Short:        "Normalize XML Schema documents into a deterministic form",
	Long:         "xsdnorm strips annotations, sorts attributes and element groups, and re-indents XSD files so that semantically-equivalent schemas produce byte-identical, diff-friendly output.",
	SilenceUsage: true,
	RunE:         runNormalize,
}

func init() {
	rootCmd.Flags().StringVarP(&flagInput, "input", "i", ".", "input file or directory")
	rootCmd.Flags().StringVarP(&flagOutput, "output", "o", "", "output file or directory (required)")
	rootCmd.Flags().BoolVarP(&flagRecursive, "recursive", "r", false, "descend into subdirectories")
	rootCmd.Flags().StringVar(&flagCacheDB, "cache-db", "", "SQLite cache path; unchanged inputs are skipped")
	rootCmd.Flags().BoolVar(&flagForce, "force", false, "normalize every file even when the cache says unchanged")
	rootCmd.Flags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug logging")
	rootCmd.MarkFlagRequired("output")
}

// newLogger creates the stderr logger used for progress and skip
// notices. Timestamps are formatted as "HH:MM:SS.ms".
func newLogger(w io.Writer, verbose bool) *log.Logger {
	level := log.InfoLevel
	if verbose {
		level = log.DebugLevel
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

func runNormalize(cmd *cobra.Command, args []string) error {
	start := time.Now()
	logger := newLogger(os.Stderr, flagVerbose)

	opts := []xsdnorm.Option{
		xsdnorm.WithRecursive(flagRecursive),
		xsdnorm.WithForce(flagForce),
		xsdnorm.WithLogger(logger),
	}
	if flagCacheDB != "" {
		opts = append(opts, xsdnorm.WithCache(flagCacheDB))
	}

	engine, err := xsdnorm.New(opts...)
	if err != nil {
		return fmt.Errorf("creating engine: %w", err)
	}
	defer engine.Close()

	stats, err := engine.Run(cmd.Context(), flagInput, flagOutput)
	if err != nil {
		return err
	}

	logger.Infof("Normalized %d file(s), skipped %d, unchanged %d (%s)",
		stats.Processed, stats.Skipped, stats.Unchanged,
		time.Since(start).Round(time.Millisecond))
	return nil
}
