package commands

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/tokahuke/jammdb/cmd/jammdb/internal/build"
	"github.com/tokahuke/jammdb/cmd/jammdb/internal/config"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, isJSON, err := outputCodec()
		if err != nil {
			return err
		}
		if isJSON {
			return printJSON(struct {
				Version string `json:"version"`
				Commit  string `json:"commit"`
				Date    string `json:"date"`
				Go      string `json:"go"`
			}{Version: build.Version, Commit: build.Commit, Date: build.Date, Go: runtime.Version()})
		}
		fmt.Println(build.String())
		if verbose {
			fmt.Printf("  go:     %s\n", runtime.Version())
			if dir, err := config.Dir(); err == nil {
				fmt.Printf("  config: %s\n", dir)
			} else {
				fmt.Printf("  config: (unavailable: %v)\n", err)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
