package node

import (
	"context"
	"fmt"

	"github.com/ValentinKolb/dDHT/lib/identity"
	"github.com/spf13/cobra"
)

var (
	pingCmd = &cobra.Command{
		Use:   "ping [endpoint]",
		Short: "Sends a ping query to a remote node",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := dhtNode.Connect(args[0])
			if err != nil {
				return err
			}
			defer session.Close()

			resp, err := session.Ping(context.Background())
			if err != nil {
				return err
			}
			fmt.Printf("node %x responded (t=%x)\n", resp.ID, resp.TransactionID)
			return nil
		},
	}
	findNodeCmd = &cobra.Command{
		Use:   "findnode [endpoint] [target]",
		Short: "Sends a find_node query for a hex target id to a remote node",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			target, err := identity.ParseNodeID(args[1])
			if err != nil {
				return err
			}

			session, err := dhtNode.Connect(args[0])
			if err != nil {
				return err
			}
			defer session.Close()

			resp, err := session.FindNode(context.Background(), target)
			if err != nil {
				return err
			}
			fmt.Printf("node %x responded with %d bytes of compact node info\n", resp.ID, len(resp.Nodes))
			return nil
		},
	}
	bootstrapCmd = &cobra.Command{
		Use:   "bootstrap",
		Short: "Probes the configured bootstrap endpoints and lists the reachable ones",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			active := dhtNode.Bootstrap(context.Background())
			if len(active) == 0 {
				fmt.Println("no bootstrap endpoint reachable")
				return nil
			}
			for _, endpoint := range active {
				fmt.Println(endpoint)
			}
			return nil
		},
	}
)
