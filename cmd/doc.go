// Package cmd implements the command-line interface for the dDHT node.
// It provides a hierarchical command structure for running the server
// and querying remote nodes as a client.
//
// The package is organized into several subpackages:
//
//   - node: Commands for client operations (ping, findnode, bootstrap)
//   - serve: Commands for starting and configuring the DHT server
//   - torrent: Commands for inspecting torrent metadata files
//   - util: Shared utilities for command-line processing and configuration (internal use)
//
// See ddht -help for a list of all commands.
package cmd
