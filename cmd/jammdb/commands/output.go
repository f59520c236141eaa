package commands

import (
	"fmt"

	"github.com/tokahuke/jammdb/pkg/cli"
	"github.com/tokahuke/jammdb/pkg/encoding"
)

var styles = cli.NewStyles(cli.DefaultTheme)

// outputCodec resolves the --format flag. The bool reports JSON mode,
// where arguments decode as raw.
func outputCodec() (encoding.Codec, bool, error) {
	name := effectiveFormat()
	if name == "json" {
		return encoding.Raw, true, nil
	}
	c, err := encoding.ParseCodec(name)
	if err != nil {
		return "", false, err
	}
	return c, false, nil
}

// decodeArg interprets a key or value argument according to --format.
func decodeArg(arg string) ([]byte, error) {
	codec, _, err := outputCodec()
	if err != nil {
		return nil, err
	}
	return codec.Decode(arg)
}

func printJSON(v any) error {
	return cli.OutputJSON(v, cli.OutputOptions{File: outputFile})
}

func printSuccess(format string, args ...any) {
	fmt.Println(styles.Success.Render(fmt.Sprintf(format, args...)))
}

// entryJSON is the JSON shape for a key/value pair.
type entryJSON struct {
	Key   encoding.Base64Bytes `json:"key"`
	Value encoding.Base64Bytes `json:"value"`
}
