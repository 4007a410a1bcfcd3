// Package server implements the answering side of the KRPC protocol:
// a dispatch loop that receives one datagram at a time, decodes it,
// classifies it by query method and replies.
//
// The dispatch table:
//
//   - ping: reply with the server's node id
//   - find_node: reply with the node id and an empty node set, a
//     placeholder until a routing table exists
//   - get_peers, announce_peer: well-formed KRPC error 201, the
//     methods are not implemented but every query gets a reply
//   - anything else: KRPC error 204 "Method Unknown"
//
// Undecodable datagrams are discarded with a log line; a single bad
// datagram never stops the loop. Per-method query counters are
// published via the optional Prometheus metrics endpoint.
package server
