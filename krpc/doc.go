// Package krpc implements the KRPC query/response protocol spoken
// between DHT nodes: bencoded dictionaries exchanged one per UDP
// datagram, correlated by transaction id.
//
// The package is organized into several subpackages:
//
//   - common: message taxonomy, wire encoding, configuration and the
//     logging facade
//   - transport: datagram transport interfaces plus the UDP
//     implementation
//   - client: Session (ping, find_node) and Node (bootstrap probe)
//   - server: the receive/dispatch/reply loop
//
// Full Kademlia routing behaviour (k-buckets, iterative lookup, peer
// storage) is deliberately out of scope; the protocol layer here is the
// foundation such behaviour would be built on.
package krpc
