package torrent

import (
	"fmt"

	"github.com/ValentinKolb/dDHT/lib/bencode"
	"github.com/spf13/cobra"
)

var (
	// TorrentCommands represents the torrent command group
	TorrentCommands = &cobra.Command{
		Use:   "torrent",
		Short: "Inspect torrent metadata files",
	}

	inspectCmd = &cobra.Command{
		Use:   "inspect [file]",
		Short: "Decodes a torrent metadata file and prints its structure",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := bencode.DecodeFile(args[0])
			if err != nil {
				return err
			}
			printDict(d, "")
			return nil
		},
	}
)

func init() {
	TorrentCommands.AddCommand(inspectCmd)
}

// printDict prints a decoded dictionary in stream order, truncating
// long byte strings (piece hashes easily run to hundreds of kilobytes)
func printDict(d *bencode.Dict, indent string) {
	for _, key := range d.Keys() {
		v, _ := d.Get(key)
		switch v.Kind() {
		case bencode.KindDict:
			fmt.Printf("%s%s:\n", indent, key)
			printDict(v.Dict(), indent+"  ")
		case bencode.KindBytes:
			fmt.Printf("%s%s: %s\n", indent, key, truncate(v))
		default:
			fmt.Printf("%s%s: %s\n", indent, key, v)
		}
	}
}

// truncate shortens long byte values for terminal output
func truncate(v bencode.Value) string {
	const max = 64
	raw := v.Bytes()
	if len(raw) <= max {
		return v.String()
	}
	return fmt.Sprintf("<%d bytes>", len(raw))
}
