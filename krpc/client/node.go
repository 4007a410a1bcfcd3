package client

import (
	"context"
	"time"

	"github.com/ValentinKolb/dDHT/krpc/common"
	"github.com/ValentinKolb/dDHT/krpc/transport"
	"github.com/ValentinKolb/dDHT/lib/identity"
)

// Node owns one node identity for its entire lifetime and opens
// sessions to remote peers with it
type Node struct {
	id     identity.NodeID
	config common.ClientConfig
	dial   transport.DialFunc
}

// NewNode creates a node with the given identity. The dial function
// decides the transport medium (udp.Dial in production).
func NewNode(id identity.NodeID, config common.ClientConfig, dial transport.DialFunc) *Node {
	if config.TimeoutSecond <= 0 {
		config.TimeoutSecond = common.DefaultTimeoutSecond
	}
	return &Node{id: id, config: config, dial: dial}
}

// ID returns the node's identity
func (n *Node) ID() identity.NodeID {
	return n.id
}

// Connect opens a session to the given remote endpoint. The caller
// owns the session and must Close it on every exit path.
func (n *Node) Connect(endpoint string) (*Session, error) {
	conn, err := n.dial(endpoint)
	if err != nil {
		return nil, err
	}
	timeout := time.Duration(n.config.TimeoutSecond) * time.Second
	return newSession(n.id, endpoint, conn, timeout), nil
}

// Bootstrap probes the configured bootstrap endpoints in order. Each
// endpoint is pinged through a scoped session; endpoints that time out
// or fail on the transport are skipped. The reachable endpoints are
// returned preserving their relative input order. Bootstrap itself
// never fails.
func (n *Node) Bootstrap(ctx context.Context) []string {
	var active []string

	for _, endpoint := range n.config.BootstrapEndpoints {
		if err := n.probe(ctx, endpoint); err != nil {
			Logger.Debugf("Bootstrap endpoint %s unreachable: %v", endpoint, err)
			continue
		}
		Logger.Infof("Bootstrap endpoint %s is reachable", endpoint)
		active = append(active, endpoint)
	}

	return active
}

// probe pings one endpoint through a session scoped to this call
func (n *Node) probe(ctx context.Context, endpoint string) error {
	session, err := n.Connect(endpoint)
	if err != nil {
		return err
	}
	defer session.Close()

	_, err = session.Ping(ctx)
	return err
}
