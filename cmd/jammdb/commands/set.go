package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/tokahuke/jammdb/pkg/byteview"
	"github.com/tokahuke/jammdb/pkg/encoding"
)

var setCmd = &cobra.Command{
	Use:   "set <key> [value]",
	Short: "Store a value under a key",
	Long: `Store a value. With no value argument, the value is read from stdin
as raw bytes.

Examples:
  jammdb set greeting "hello world"
  jammdb set 00ff 0a0b --format hex
  cat blob.bin | jammdb set blob`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, err := decodeArg(args[0])
		if err != nil {
			return err
		}

		var val []byte
		if len(args) == 2 {
			val, err = decodeArg(args[1])
			if err != nil {
				return err
			}
		} else {
			val, err = io.ReadAll(os.Stdin)
			if err != nil {
				return fmt.Errorf("read value from stdin: %w", err)
			}
		}

		s, err := openStore()
		if err != nil {
			return err
		}
		defer s.Close()

		if err := s.Set(cmd.Context(), byteview.Borrow(key), byteview.Borrow(val)); err != nil {
			return err
		}

		codec, isJSON, err := outputCodec()
		if err != nil {
			return err
		}
		if isJSON {
			return printJSON(struct {
				Set   encoding.Base64Bytes `json:"set"`
				Bytes int                  `json:"bytes"`
			}{Set: key, Bytes: len(val)})
		}
		printSuccess("Set %s (%d bytes)", codec.Encode(key), len(val))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(setCmd)
}
