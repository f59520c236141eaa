package commands

import (
	"fmt"
	"io"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/tokahuke/jammdb/pkg/kv"
)

var (
	snapCompress bool
	snapBatch    int
)

var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Save, restore and list database snapshots",
}

var snapshotSaveCmd = &cobra.Command{
	Use:   "save <name>",
	Short: "Write a snapshot of the database to the archive",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]

		s, err := openStore()
		if err != nil {
			return err
		}
		defer s.Close()

		arch, err := openArchive(cmd.Context())
		if err != nil {
			return err
		}

		start := time.Now()
		w, err := arch.Put(cmd.Context(), name)
		if err != nil {
			return err
		}
		cw := &countingWriter{w: w}
		info, err := kv.Backup(cmd.Context(), s, cw, kv.BackupOptions{Compress: snapCompress})
		if cerr := w.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			// Drop the partial snapshot rather than leave a corrupt file behind.
			_ = arch.Remove(cmd.Context(), name)
			return err
		}

		_, isJSON, err := outputCodec()
		if err != nil {
			return err
		}
		if isJSON {
			return printJSON(struct {
				Name      string    `json:"name"`
				ID        string    `json:"id"`
				Count     uint64    `json:"count"`
				Bytes     int64     `json:"bytes"`
				CreatedAt time.Time `json:"created_at"`
			}{Name: name, ID: info.ID, Count: info.Count, Bytes: cw.n, CreatedAt: info.CreatedAt})
		}
		printSuccess("Saved %s (%d entries, %s, %s)",
			name, info.Count, humanize.Bytes(uint64(cw.n)), time.Since(start).Round(time.Millisecond))
		return nil
	},
}

var snapshotRestoreCmd = &cobra.Command{
	Use:   "restore <name>",
	Short: "Load a snapshot from the archive into the database",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]

		s, err := openStore()
		if err != nil {
			return err
		}
		defer s.Close()

		arch, err := openArchive(cmd.Context())
		if err != nil {
			return err
		}

		start := time.Now()
		r, err := arch.Get(cmd.Context(), name)
		if err != nil {
			return err
		}
		defer r.Close()

		info, err := kv.Restore(cmd.Context(), s, r, kv.RestoreOptions{BatchSize: snapBatch})
		if err != nil {
			return err
		}

		_, isJSON, err := outputCodec()
		if err != nil {
			return err
		}
		if isJSON {
			return printJSON(struct {
				Name  string `json:"name"`
				ID    string `json:"id"`
				Count uint64 `json:"count"`
			}{Name: name, ID: info.ID, Count: info.Count})
		}
		printSuccess("Restored %s (%d entries, %s)",
			name, info.Count, time.Since(start).Round(time.Millisecond))
		return nil
	},
}

type snapshotListEntry struct {
	Name     string    `json:"name"`
	Size     int64     `json:"size"`
	Modified time.Time `json:"modified"`
}

var snapshotListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the snapshots in the archive",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		arch, err := openArchive(cmd.Context())
		if err != nil {
			return err
		}

		infos, err := arch.List(cmd.Context())
		if err != nil {
			return err
		}

		_, isJSON, err := outputCodec()
		if err != nil {
			return err
		}
		if isJSON {
			out := make([]snapshotListEntry, 0, len(infos))
			for _, f := range infos {
				out = append(out, snapshotListEntry{Name: f.Name, Size: f.Size, Modified: f.ModTime})
			}
			return printJSON(out)
		}

		if len(infos) == 0 {
			fmt.Println("No snapshots found.")
			return nil
		}
		rows := make([][]string, 0, len(infos))
		for _, f := range infos {
			rows = append(rows, []string{
				styles.Accent.Render(f.Name),
				humanize.Bytes(uint64(f.Size)),
				humanize.Time(f.ModTime),
			})
		}
		fmt.Print(styles.Table([]string{"NAME", "SIZE", "MODIFIED"}, rows))
		return nil
	},
}

// countingWriter counts bytes written through it.
type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}

func init() {
	snapshotSaveCmd.Flags().BoolVar(&snapCompress, "compress", false, "zstd-compress the snapshot")
	snapshotRestoreCmd.Flags().IntVar(&snapBatch, "batch", 128, "entries applied per write batch")
	snapshotCmd.AddCommand(snapshotSaveCmd, snapshotRestoreCmd, snapshotListCmd)
	rootCmd.AddCommand(snapshotCmd)
}
