package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tokahuke/jammdb/pkg/byteview"
	"github.com/tokahuke/jammdb/pkg/cli"
	"github.com/tokahuke/jammdb/pkg/encoding"
	"github.com/tokahuke/jammdb/pkg/kv"
)

var applyFile string

// applyDoc is the bulk-load file format: a flat list of entries plus an
// optional encoding for the key and value fields.
type applyDoc struct {
	Encoding string       `yaml:"encoding" json:"encoding"`
	Entries  []applyEntry `yaml:"entries" json:"entries"`
}

type applyEntry struct {
	Key   string `yaml:"key" json:"key"`
	Value string `yaml:"value" json:"value"`
}

var applyCmd = &cobra.Command{
	Use:   "apply -f <file>",
	Short: "Write a batch of entries from a YAML or JSON file",
	Long: `Apply key/value entries from a file in one batch. Use '-' to read
from stdin. The whole batch is validated before anything is written.

The file holds a flat list of entries plus an optional encoding
(raw, hex or base64) for the key and value fields:

  encoding: raw
  entries:
    - key: user/1
      value: alice
    - key: user/2
      value: bob

Examples:
  jammdb apply -f entries.yaml
  cat entries.json | jammdb apply -f -`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if applyFile == "" {
			return fmt.Errorf("flag -f is required")
		}

		var doc applyDoc
		if err := cli.LoadFile(applyFile, &doc); err != nil {
			return err
		}
		if len(doc.Entries) == 0 {
			return fmt.Errorf("no entries found in %s", applyFile)
		}

		codec := encoding.Raw
		if doc.Encoding != "" {
			c, err := encoding.ParseCodec(doc.Encoding)
			if err != nil {
				return err
			}
			codec = c
		}

		batch := make([]kv.Entry, 0, len(doc.Entries))
		for i, e := range doc.Entries {
			key, err := codec.Decode(e.Key)
			if err != nil {
				return fmt.Errorf("entry %d: decode key: %w", i, err)
			}
			val, err := codec.Decode(e.Value)
			if err != nil {
				return fmt.Errorf("entry %d: decode value: %w", i, err)
			}
			batch = append(batch, kv.Entry{Key: byteview.Own(key), Value: byteview.Own(val)})
		}

		s, err := openStore()
		if err != nil {
			return err
		}
		defer s.Close()

		if err := s.BatchSet(cmd.Context(), batch); err != nil {
			return err
		}

		_, isJSON, err := outputCodec()
		if err != nil {
			return err
		}
		if isJSON {
			return printJSON(struct {
				Applied int `json:"applied"`
			}{Applied: len(batch)})
		}
		printSuccess("Applied %d entries", len(batch))
		return nil
	},
}

func init() {
	applyCmd.Flags().StringVarP(&applyFile, "file", "f", "", "entries file (use '-' for stdin)")
	rootCmd.AddCommand(applyCmd)
}
