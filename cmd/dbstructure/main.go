package main

import (
	"context"
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tordrt/dbstructure"
	"github.com/tordrt/dbstructure/internal/formatter"
	"github.com/tordrt/dbstructure/internal/logger"
	"github.com/tordrt/dbstructure/structure"
)

var (
	verbose     bool
	format      string
	outputFile  string
	snapshotDir string
)

var rootCmd = &cobra.Command{
	Use:          "dbstructure",
	Short:        "Describe and compare SQLite database structures",
	Long:         `dbstructure extracts a normalized description of a SQLite database's schema (tables, columns, indexes) and compares two databases for structural equivalence, regardless of the order their schemas were built in.`,
	SilenceUsage: true,
}

var describeCmd = &cobra.Command{
	Use:   "describe <database>",
	Short: "Print the normalized structure of a database",
	Args:  cobra.ExactArgs(1),
	RunE:  runDescribe,
}

var compareCmd = &cobra.Command{
	Use:   "compare <database-a> <database-b>",
	Short: "Check two databases for structural equivalence",
	Args:  cobra.ExactArgs(2),
	RunE:  runCompare,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log progress to stderr")

	describeCmd.Flags().StringVarP(&format, "format", "f", "text", "Output format: text or json")
	describeCmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output file (default: stdout)")
	describeCmd.Flags().StringVarP(&snapshotDir, "snapshot-dir", "d", "", "Write a JSON snapshot directory instead of a single document")

	rootCmd.AddCommand(describeCmd)
	rootCmd.AddCommand(compareCmd)
}

func newLogger() *logger.Logger {
	level := "warn"
	if verbose {
		level = "debug"
	}
	return logger.New(&logger.Config{Level: level, Format: "console", Output: os.Stderr})
}

func runDescribe(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	log := newLogger()

	if snapshotDir != "" && outputFile != "" {
		return fmt.Errorf("cannot use both --snapshot-dir and --output flags")
	}

	describeLog := log.With().Str("database", args[0]).Logger()
	describeLog.Debug().Msg("describing database")
	s, err := dbstructure.DescribeDatabase(ctx, args[0])
	if err != nil {
		return fmt.Errorf("failed to describe database: %w", err)
	}
	tablesLog := log.With().Int("tables", len(s.Tables)).Logger()
	tablesLog.Debug().Msg("extraction complete")

	// Snapshot directory output
	if snapshotDir != "" {
		w := formatter.NewSnapshotWriter(snapshotDir)
		if err := w.Format(s); err != nil {
			return fmt.Errorf("failed to write snapshot: %w", err)
		}
		return nil
	}

	// Single-document output
	var writer = os.Stdout
	if outputFile != "" {
		f, err := os.Create(outputFile)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer func() {
			if err := f.Close(); err != nil {
				fmt.Fprintf(os.Stderr, "warning: failed to close output file: %v\n", err)
			}
		}()
		writer = f
	}

	switch format {
	case "text":
		return formatter.NewTextFormatter(writer).Format(s)
	case "json":
		return formatter.NewJSONFormatter(writer).Format(s)
	default:
		return fmt.Errorf("invalid format: %s (must be 'text' or 'json')", format)
	}
}

func runCompare(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	log := newLogger()

	a, err := dbstructure.DescribeDatabase(ctx, args[0])
	if err != nil {
		return fmt.Errorf("failed to describe %s: %w", args[0], err)
	}
	b, err := dbstructure.DescribeDatabase(ctx, args[1])
	if err != nil {
		return fmt.Errorf("failed to describe %s: %w", args[1], err)
	}

	differences := diffStructures(a, b)
	if len(differences) == 0 {
		log.Info("databases are structurally equivalent")
		fmt.Println("equivalent")
		return nil
	}

	for _, d := range differences {
		fmt.Println(d)
	}
	return fmt.Errorf("databases differ structurally (%d difference(s))", len(differences))
}

// diffStructures reports table-level differences between two structures.
// Both table sequences are sorted by (schema, name), so a single merge pass
// finds everything.
func diffStructures(a, b *structure.Structure) []string {
	var diffs []string

	i, j := 0, 0
	for i < len(a.Tables) && j < len(b.Tables) {
		ta, tb := &a.Tables[i], &b.Tables[j]
		switch c := compareTables(ta, tb); {
		case c < 0:
			diffs = append(diffs, fmt.Sprintf("only in first: %s", tableKey(ta)))
			i++
		case c > 0:
			diffs = append(diffs, fmt.Sprintf("only in second: %s", tableKey(tb)))
			j++
		default:
			if !reflect.DeepEqual(ta, tb) {
				diffs = append(diffs, fmt.Sprintf("differs: %s", tableKey(ta)))
			}
			i++
			j++
		}
	}
	for ; i < len(a.Tables); i++ {
		diffs = append(diffs, fmt.Sprintf("only in first: %s", tableKey(&a.Tables[i])))
	}
	for ; j < len(b.Tables); j++ {
		diffs = append(diffs, fmt.Sprintf("only in second: %s", tableKey(&b.Tables[j])))
	}

	return diffs
}

// compareTables orders tables the way the extractor does: by schema, then name.
func compareTables(a, b *structure.Table) int {
	if c := strings.Compare(a.Schema, b.Schema); c != 0 {
		return c
	}
	return strings.Compare(a.Name, b.Name)
}

func tableKey(t *structure.Table) string {
	return t.Schema + "." + t.Name
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
