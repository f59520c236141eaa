package commands

import (
	"github.com/spf13/cobra"

	"github.com/tokahuke/jammdb/pkg/byteview"
	"github.com/tokahuke/jammdb/pkg/cli"
	"github.com/tokahuke/jammdb/pkg/encoding"
)

var getCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Read the value stored under a key",
	Long: `Read a single value by key.

The --format flag controls both how the key argument is decoded and how
the value is rendered. With raw, the value bytes are written verbatim;
use -o to capture binary values in a file.

Examples:
  jammdb get greeting
  jammdb get 00ff01 --format hex
  jammdb get greeting --format json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, err := decodeArg(args[0])
		if err != nil {
			return err
		}

		s, err := openStore()
		if err != nil {
			return err
		}
		defer s.Close()

		val, err := s.Get(cmd.Context(), byteview.Borrow(key))
		if err != nil {
			return err
		}

		codec, isJSON, err := outputCodec()
		if err != nil {
			return err
		}
		if isJSON {
			return printJSON(entryJSON{Key: key, Value: val.Bytes()})
		}
		out := val.Bytes()
		if codec != encoding.Raw {
			out = []byte(codec.Encode(val.Bytes()) + "\n")
		}
		return cli.OutputBytes(out, cli.OutputOptions{File: outputFile})
	},
}

func init() {
	rootCmd.AddCommand(getCmd)
}
