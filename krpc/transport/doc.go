// Package transport defines the datagram transport interfaces used by
// the KRPC client and server layers.
//
// The client side transport (IDatagramTransport) is a connectionless
// socket bound to exactly one remote address and exclusively owned by
// one session. The server side transport (IServerTransport) binds one
// local address and hands every received datagram to a registered
// handler, sending back whatever reply the handler returns.
//
// The udp subpackage provides the production implementation. The
// interfaces exist so the client and server layers can be exercised
// against in-memory transports in tests.
package transport
