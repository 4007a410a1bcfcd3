// Package client implements the query side of the KRPC protocol: the
// Session abstraction over one transport binding and the Node owning a
// persistent identity, including the first-hop bootstrap probe.
//
// Key Components:
//
//   - Session: bound to one remote address, supports Ping and FindNode.
//     Inbound datagrams are demultiplexed into a pending table keyed by
//     transaction id, so multiple queries may be logically outstanding
//     and a reply can never be attributed to the wrong query. Awaiting
//     a response suspends the caller until the matching datagram
//     arrives or the configured timeout (5 s by default) elapses,
//     surfaced as common.ErrTimeout. Retry policy belongs to the
//     caller, not this layer.
//
//   - Node: holds one immutable node identity. Bootstrap walks the
//     fixed list of well-known endpoints, pings each through a scoped
//     session, swallows per-endpoint timeout and transport failures
//     and reports the reachable endpoints in their original order.
//
// No iterative or recursive peer expansion happens beyond that
// first-hop probe.
package client
