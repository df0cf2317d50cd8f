package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"numtower/internal/expr"
	"numtower/internal/numeric"
	"numtower/internal/trace"
)

var evalShowKind bool

func init() {
	evalCmd.Flags().BoolVar(&evalShowKind, "kind", false, "print the class of each result")
}

var evalCmd = &cobra.Command{
	Use:   "eval EXPR...",
	Short: "Evaluate expressions",
	Example: `  numtower eval '10**50 / (10**40 + 1)'
  numtower eval '1 / 0.0' '3 / Rational(2, 1)' '6 / coerce(3)'`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ev := expr.NewEvaluator(dispatcherFor(cmd))
		failed := 0
		for _, src := range args {
			v, err := ev.EvalString(src)
			if err != nil {
				failed++
				printFailure(cmd.ErrOrStderr(), src, err)
				continue
			}
			printResult(cmd.OutOrStdout(), v, evalShowKind)
		}
		if failed > 0 {
			return fmt.Errorf("%d of %d expressions failed", failed, len(args))
		}
		return nil
	},
}

func dispatcherFor(cmd *cobra.Command) *numeric.Dispatcher {
	return numeric.NewDispatcher(trace.FromContext(cmd.Context()))
}

var (
	resultColor = color.New(color.FgGreen)
	kindColor   = color.New(color.FgCyan)
	failColor   = color.New(color.FgRed)
)

func printResult(out io.Writer, v any, showKind bool) {
	text := resultColor.Sprint(expr.Format(v))
	if showKind {
		text += " " + kindColor.Sprintf("(%s)", kindOf(v))
	}
	fmt.Fprintln(out, text)
}

func printFailure(out io.Writer, src string, err error) {
	fmt.Fprintf(out, "%s: %s\n", src, failColor.Sprint(err.Error()))
}

func kindOf(v any) string {
	if nv, ok := v.(numeric.Value); ok {
		return nv.Kind().String()
	}
	return fmt.Sprintf("%T", v)
}
