package transport

import (
	"context"
	"net"

	"github.com/ValentinKolb/dDHT/krpc/common"
)

// --------------------------------------------------------------------------
// Client Transport
// --------------------------------------------------------------------------

// IDatagramTransport is a connectionless datagram socket bound to one
// remote address. A session exclusively owns one transport binding,
// it is never shared.
type IDatagramTransport interface {
	// Send writes one datagram to the bound remote address
	Send(p []byte) error

	// Receive blocks until a datagram arrives, honouring the context
	// deadline. It returns the payload and the sender address.
	Receive(ctx context.Context) ([]byte, net.Addr, error)

	// Close releases the binding. It is safe to call more than once.
	Close() error
}

// DialFunc opens a transport bound to the given remote endpoint.
// It is injected into the client layer so tests can substitute the
// transport medium.
type DialFunc func(endpoint string) (IDatagramTransport, error)

// --------------------------------------------------------------------------
// Server Transport
// --------------------------------------------------------------------------

// ServerHandleFunc is called by a server transport for every received
// datagram. It returns the reply payload, or nil if no reply should be
// sent for this datagram.
type ServerHandleFunc func(req []byte, addr net.Addr) (resp []byte)

// IServerTransport is the interface for the server side transport layer
type IServerTransport interface {
	// RegisterHandler registers the handler called for every datagram.
	// Must be called before Listen.
	RegisterHandler(handler ServerHandleFunc)

	// Listen binds the local address and serves datagrams until the
	// transport is closed. One datagram is fully handled before the
	// next is received.
	Listen(config common.ServerConfig) error

	// Addr returns the bound local address, nil before Listen
	Addr() net.Addr

	// Close unbinds the local address and stops Listen
	Close() error
}
