package main

import (
	"encoding/hex"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/vmihailenco/msgpack/v5"

	"numtower/internal/expr"
	"numtower/internal/marshal"
	"numtower/internal/numeric"
)

var dumpFormat string

func init() {
	dumpCmd.Flags().StringVar(&dumpFormat, "format", "marshal", "encoding (marshal|msgpack)")
}

var dumpCmd = &cobra.Command{
	Use:   "dump EXPR",
	Short: "Print the wire encoding of an integer result",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		v, err := expr.NewEvaluator(dispatcherFor(cmd)).EvalString(args[0])
		if err != nil {
			return err
		}
		x, ok := v.(numeric.Int)
		if !ok {
			return fmt.Errorf("dump needs an integer result, got %s", kindOf(v))
		}

		var data []byte
		switch dumpFormat {
		case "marshal":
			data, err = marshal.Dump(x.Big())
		case "msgpack":
			data, err = msgpack.Marshal(&x)
		default:
			return fmt.Errorf("unsupported format %q (must be marshal or msgpack)", dumpFormat)
		}
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), spacedHex(data))
		return nil
	},
}

func spacedHex(data []byte) string {
	if len(data) == 0 {
		return ""
	}
	out := make([]byte, 0, len(data)*3-1)
	for i, b := range data {
		if i > 0 {
			out = append(out, ' ')
		}
		out = hex.AppendEncode(out, []byte{b})
	}
	return string(out)
}
