package cmd

import (
	"fmt"
	"os"

	"github.com/ValentinKolb/dDHT/cmd/node"
	"github.com/ValentinKolb/dDHT/cmd/serve"
	"github.com/ValentinKolb/dDHT/cmd/torrent"
	"github.com/spf13/cobra"
)

const (
	Version = "0.3.1"
)

var (

	// RootCmd represents the base command when called without any subcommands
	RootCmd = &cobra.Command{
		Use:   "ddht",
		Short: "DHT peer discovery node",
		Long: fmt.Sprintf(`dDHT (v%s)

A BitTorrent-style DHT node written in Go: bencode codec, KRPC
query/response protocol over UDP, bootstrap probing and a server
answering ping and find_node queries.`, Version),
	}
	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the version number of dDHT",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("dDHT v%s\n", Version)
		},
	}
)

func init() {
	// Add Commands
	RootCmd.AddCommand(serve.ServeCmd)
	RootCmd.AddCommand(node.NodeCommands)
	RootCmd.AddCommand(torrent.TorrentCommands)
	RootCmd.AddCommand(versionCmd)
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the RootCmd.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
