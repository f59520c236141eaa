package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tokahuke/jammdb/pkg/byteview"
	"github.com/tokahuke/jammdb/pkg/cli"
	"github.com/tokahuke/jammdb/pkg/encoding"
	"github.com/tokahuke/jammdb/pkg/kv"
)

var (
	listLimit    int
	listKeysOnly bool
)

var listCmd = &cobra.Command{
	Use:   "list [prefix]",
	Short: "List entries in key order",
	Long: `List entries whose keys start with the given prefix, in
lexicographic key order. No prefix lists the whole store.

The default output is a table with long values truncated; use
--format json for a full dump, or --keys-only for keys alone.

Examples:
  jammdb list
  jammdb list user/ --limit 10
  jammdb list --format json
  jammdb list 00ff --format hex --keys-only`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var prefix []byte
		if len(args) == 1 {
			p, err := decodeArg(args[0])
			if err != nil {
				return err
			}
			prefix = p
		}

		s, err := openStore()
		if err != nil {
			return err
		}
		defer s.Close()

		var entries []kv.Entry
		for e, lerr := range s.List(cmd.Context(), byteview.Borrow(prefix)) {
			if lerr != nil {
				return lerr
			}
			entries = append(entries, e)
			if listLimit > 0 && len(entries) >= listLimit {
				break
			}
		}

		codec, isJSON, err := outputCodec()
		if err != nil {
			return err
		}

		switch {
		case isJSON && listKeysOnly:
			keys := make([]encoding.Base64Bytes, 0, len(entries))
			for _, e := range entries {
				keys = append(keys, encoding.Base64Bytes(e.Key.Bytes()))
			}
			return printJSON(keys)

		case isJSON:
			out := make([]entryJSON, 0, len(entries))
			for _, e := range entries {
				out = append(out, entryJSON{Key: e.Key.Bytes(), Value: e.Value.Bytes()})
			}
			return printJSON(out)

		case codec == encoding.Raw:
			if len(entries) == 0 {
				fmt.Println("No entries found.")
				return nil
			}
			if listKeysOnly {
				for _, e := range entries {
					fmt.Println(codec.Encode(e.Key.Bytes()))
				}
				return nil
			}
			rows := make([][]string, 0, len(entries))
			for _, e := range entries {
				rows = append(rows, []string{
					styles.Accent.Render(cli.Truncate(codec.Encode(e.Key.Bytes()), 48)),
					cli.Truncate(codec.Encode(e.Value.Bytes()), 64),
				})
			}
			fmt.Print(styles.Table([]string{"KEY", "VALUE"}, rows))
			return nil

		default:
			// hex and base64 print machine-friendly lines.
			for _, e := range entries {
				if listKeysOnly {
					fmt.Println(codec.Encode(e.Key.Bytes()))
				} else {
					fmt.Printf("%s\t%s\n", codec.Encode(e.Key.Bytes()), codec.Encode(e.Value.Bytes()))
				}
			}
			return nil
		}
	},
}

func init() {
	listCmd.Flags().IntVar(&listLimit, "limit", 0, "stop after this many entries (0 = no limit)")
	listCmd.Flags().BoolVar(&listKeysOnly, "keys-only", false, "print keys without values")
	rootCmd.AddCommand(listCmd)
}
