package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"numtower/internal/prof"
	"numtower/internal/version"
)

var rootCmd = &cobra.Command{
	Use:           "numtower",
	Short:         "Arbitrary-precision integer arithmetic with numeric tower coercion",
	Long:          `numtower evaluates integer expressions with floor division, float and rational promotion and the coerce protocol`,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := loadSettings(cmd); err != nil {
			return err
		}
		applyColor(settings.Output.Color)
		if err := startProfiling(cmd); err != nil {
			return err
		}
		cleanup, err := setupTracing(cmd)
		if err != nil {
			stopProfiling()
			return err
		}
		traceCleanup = cleanup
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		runCleanup()
	},
}

var (
	traceCleanup func()
	profiles     *prof.Session
)

func runCleanup() {
	if traceCleanup != nil {
		traceCleanup()
		traceCleanup = nil
	}
	stopProfiling()
}

func startProfiling(cmd *cobra.Command) error {
	flags := cmd.Root().PersistentFlags()
	cpu, err := flags.GetString("cpu-profile")
	if err != nil {
		return fmt.Errorf("failed to get cpu-profile flag: %w", err)
	}
	heap, err := flags.GetString("mem-profile")
	if err != nil {
		return fmt.Errorf("failed to get mem-profile flag: %w", err)
	}
	profiles, err = prof.Start(prof.Options{CPU: cpu, Heap: heap})
	return err
}

func stopProfiling() {
	if err := profiles.Stop(); err != nil {
		fmt.Fprintf(os.Stderr, "profile: %v\n", err)
	}
	profiles = nil
}

// main registers subcommands and persistent flags, then executes the root
// command. Errors are printed in red and exit with status 1.
func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(evalCmd)
	rootCmd.AddCommand(divCmd)
	rootCmd.AddCommand(batchCmd)
	rootCmd.AddCommand(dumpCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().String("config", "", "path to numtower.toml (default: search upward)")
	rootCmd.PersistentFlags().String("trace", "", "trace output file (- for stderr)")
	rootCmd.PersistentFlags().String("trace-level", "", "trace level (off|error|phase|detail|debug)")
	rootCmd.PersistentFlags().String("trace-format", "", "trace format (text|ndjson)")
	rootCmd.PersistentFlags().String("cpu-profile", "", "write a CPU profile to file")
	rootCmd.PersistentFlags().String("mem-profile", "", "write a heap profile to file on exit")

	err := rootCmd.Execute()
	runCleanup()
	if err != nil {
		errColor := color.New(color.FgRed, color.Bold)
		fmt.Fprintln(os.Stderr, errColor.Sprint("error: ")+err.Error())
		os.Exit(1)
	}
}

// isTerminal reports whether f is attached to a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

func applyColor(mode string) {
	switch mode {
	case "on":
		color.NoColor = false
	case "off":
		color.NoColor = true
	default:
		color.NoColor = !isTerminal(os.Stdout)
	}
}

func quiet(cmd *cobra.Command) bool {
	q, err := cmd.Root().PersistentFlags().GetBool("quiet")
	return err == nil && q
}
