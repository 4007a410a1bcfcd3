package node

import (
	"github.com/ValentinKolb/dDHT/cmd/util"
	"github.com/ValentinKolb/dDHT/krpc/client"
	"github.com/ValentinKolb/dDHT/krpc/common"
	"github.com/ValentinKolb/dDHT/krpc/transport/udp"
	"github.com/ValentinKolb/dDHT/lib/identity"
	"github.com/spf13/cobra"
)

var (
	dhtNode *client.Node

	// NodeCommands represents the node command group
	NodeCommands = &cobra.Command{
		Use:               "node",
		Short:             "Query remote DHT nodes",
		PersistentPreRunE: setupNode,
	}
)

func init() {
	// Initialize viper
	cobra.OnInitialize(util.InitClientConfig)

	// Add common client flags to the node command
	util.SetupClientFlags(NodeCommands)

	// Add subcommands
	NodeCommands.AddCommand(pingCmd)
	NodeCommands.AddCommand(findNodeCmd)
	NodeCommands.AddCommand(bootstrapCmd)
}

// setupNode creates the client node with a fresh identity
func setupNode(cmd *cobra.Command, _ []string) error {
	if err := util.BindCommandFlags(cmd); err != nil {
		return err
	}

	config := util.GetClientConfig()
	common.InitLoggers(config.LogLevel)

	id, err := identity.GenerateNodeID()
	if err != nil {
		return err
	}

	dhtNode = client.NewNode(id, config, udp.Dial)
	return nil
}
