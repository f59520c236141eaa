package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// OutputOptions configures where output is written.
type OutputOptions struct {
	// File is the output file path (empty for stdout).
	File string

	// Indent is the indentation for JSON output.
	Indent string

	// Writer is an optional custom writer (overrides File).
	Writer io.Writer
}

// OutputJSON writes v as indented JSON to the configured destination.
func OutputJSON(v any, opts OutputOptions) error {
	w, closer, err := outputWriter(opts)
	if err != nil {
		return err
	}
	defer closer()

	enc := json.NewEncoder(w)
	indent := opts.Indent
	if indent == "" {
		indent = "  "
	}
	enc.SetIndent("", indent)
	return enc.Encode(v)
}

// OutputBytes writes data verbatim to the configured destination.
func OutputBytes(data []byte, opts OutputOptions) error {
	w, closer, err := outputWriter(opts)
	if err != nil {
		return err
	}
	defer closer()

	_, err = w.Write(data)
	return err
}

func outputWriter(opts OutputOptions) (io.Writer, func() error, error) {
	if opts.Writer != nil {
		return opts.Writer, func() error { return nil }, nil
	}
	if opts.File != "" {
		f, err := os.Create(opts.File)
		if err != nil {
			return nil, nil, fmt.Errorf("create output file: %w", err)
		}
		return f, f.Close, nil
	}
	return os.Stdout, func() error { return nil }, nil
}
