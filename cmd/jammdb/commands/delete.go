package commands

import (
	"github.com/spf13/cobra"

	"github.com/tokahuke/jammdb/pkg/byteview"
	"github.com/tokahuke/jammdb/pkg/encoding"
)

var deleteCmd = &cobra.Command{
	Use:   "delete <key>",
	Short: "Delete a key",
	Long: `Delete a key and its value. Deleting a key that does not exist is
an error.

Examples:
  jammdb delete greeting
  jammdb delete 00ff --format hex`,
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

		// Surface missing keys instead of succeeding silently.
		if _, err := s.Get(cmd.Context(), byteview.Borrow(key)); err != nil {
			return err
		}
		if err := s.Delete(cmd.Context(), byteview.Borrow(key)); err != nil {
			return err
		}

		codec, isJSON, err := outputCodec()
		if err != nil {
			return err
		}
		if isJSON {
			return printJSON(struct {
				Deleted encoding.Base64Bytes `json:"deleted"`
			}{Deleted: key})
		}
		printSuccess("Deleted %s", codec.Encode(key))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}
