package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"numtower/internal/expr"
	"numtower/internal/numeric"
)

var divModFlag bool

func init() {
	divCmd.Flags().BoolVar(&divModFlag, "divmod", false, "print quotient and modulus")
}

var divCmd = &cobra.Command{
	Use:   "div DIVIDEND DIVISOR",
	Short: "Divide an integer by any operand",
	Long: `div evaluates both operands and divides them with Integer#/ semantics:
floor division for integers, IEEE division for floats, exact division for
rationals and the coerce protocol for everything else.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ev := expr.NewEvaluator(nil)
		lhs, err := ev.EvalString(args[0])
		if err != nil {
			return fmt.Errorf("dividend: %w", err)
		}
		x, ok := lhs.(numeric.Int)
		if !ok {
			return fmt.Errorf("dividend must be an integer, got %s", kindOf(lhs))
		}
		rhs, err := ev.EvalString(args[1])
		if err != nil {
			return fmt.Errorf("divisor: %w", err)
		}

		d := dispatcherFor(cmd)
		if divModFlag {
			q, r, err := d.DivMod(x, rhs)
			if err != nil {
				return err
			}
			printResult(cmd.OutOrStdout(), expr.Tuple{q, r}, true)
			return nil
		}
		v, err := d.Div(x, rhs)
		if err != nil {
			return err
		}
		printResult(cmd.OutOrStdout(), v, !quiet(cmd))
		return nil
	},
}
