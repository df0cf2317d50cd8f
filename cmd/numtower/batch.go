package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"numtower/internal/batch"
	"numtower/internal/trace"
)

func init() {
	batchCmd.Flags().Int("jobs", 0, "files evaluated in parallel (0 = GOMAXPROCS)")
	batchCmd.Flags().String("ui", "", "progress UI mode (auto|on|off)")
	batchCmd.Flags().String("cache", "", "result cache directory")
	batchCmd.Flags().Bool("no-cache", false, "ignore the configured result cache")
}

var batchCmd = &cobra.Command{
	Use:   "batch FILE...",
	Short: "Evaluate expression files, one expression per line",
	Long: `batch evaluates every non-blank line of each file. Lines starting with '#'
are comments. Files are processed in parallel and results printed in
argument order.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		jobs, uiMode, cacheDir, err := batchFlags(cmd)
		if err != nil {
			return err
		}

		opts := batch.Options{
			Jobs:   jobs,
			Tracer: trace.FromContext(cmd.Context()),
		}
		if cacheDir != "" {
			cache, err := batch.OpenCache(cacheDir)
			if err != nil {
				return err
			}
			opts.Cache = cache
		}

		var results []batch.FileResult
		if useTUI(uiMode) && !quiet(cmd) {
			results, err = runBatchWithUI(cmd.Context(), "evaluating", args, opts)
		} else {
			results, err = batch.Run(cmd.Context(), args, opts)
		}
		if err != nil {
			return err
		}

		failed := printBatch(cmd.OutOrStdout(), results, quiet(cmd))
		if failed > 0 {
			return fmt.Errorf("%d expressions failed", failed)
		}
		return nil
	},
}

func batchFlags(cmd *cobra.Command) (jobs int, uiMode, cacheDir string, err error) {
	flags := cmd.Flags()
	jobs, uiMode, cacheDir = settings.Batch.Jobs, settings.Batch.UI, settings.Batch.Cache
	if flags.Changed("jobs") {
		if jobs, err = flags.GetInt("jobs"); err != nil {
			return 0, "", "", fmt.Errorf("failed to get jobs flag: %w", err)
		}
		if jobs < 0 {
			return 0, "", "", fmt.Errorf("--jobs must be >= 0, got %d", jobs)
		}
	}
	if flags.Changed("ui") {
		if uiMode, err = flags.GetString("ui"); err != nil {
			return 0, "", "", fmt.Errorf("failed to get ui flag: %w", err)
		}
	}
	uiMode = strings.ToLower(strings.TrimSpace(uiMode))
	switch uiMode {
	case "", "auto", "on", "off":
	default:
		return 0, "", "", fmt.Errorf("invalid --ui value %q (expected auto|on|off)", uiMode)
	}
	if flags.Changed("cache") {
		if cacheDir, err = flags.GetString("cache"); err != nil {
			return 0, "", "", fmt.Errorf("failed to get cache flag: %w", err)
		}
	}
	if noCache, _ := flags.GetBool("no-cache"); noCache {
		cacheDir = ""
	}
	return jobs, uiMode, cacheDir, nil
}

func useTUI(mode string) bool {
	switch mode {
	case "on":
		return true
	case "off":
		return false
	default:
		return isTerminal(os.Stdout)
	}
}

// printBatch writes one block per file with expressions padded to a common
// display width, and returns the number of failed lines.
func printBatch(out io.Writer, results []batch.FileResult, quietMode bool) int {
	failed := 0
	for _, fr := range results {
		header := fr.Path
		if fr.Cached {
			header += " (cached)"
		}
		fmt.Fprintln(out, header)
		if fr.Err != nil {
			failed++
			fmt.Fprintf(out, "  %s\n", failColor.Sprint(fr.Err.Error()))
			continue
		}
		width := 0
		for _, l := range fr.Lines {
			width = max(width, runewidth.StringWidth(l.Expr))
		}
		for _, l := range fr.Lines {
			prefix := fmt.Sprintf("  %4d  %s", l.Line, runewidth.FillRight(l.Expr, width))
			if l.Failed() {
				failed++
				fmt.Fprintf(out, "%s  %s\n", prefix, failColor.Sprint(l.Err))
				continue
			}
			text := resultColor.Sprint(l.Text)
			if !quietMode {
				text += " " + kindColor.Sprintf("(%s)", l.Kind)
			}
			fmt.Fprintf(out, "%s  => %s\n", prefix, text)
		}
	}
	return failed
}
