// Package common provides the core data structures shared across the
// KRPC protocol stack: the message taxonomy, configuration structures
// and the logging facade used by client, server and transport.
//
// Key Components:
//
//   - Message: tagged union over the three KRPC variants (query,
//     response, error), correlated by a 4-byte transaction id. Factory
//     functions build well-formed queries and replies, Encode/
//     DecodeMessage translate between messages and the one-dictionary-
//     per-datagram wire shape.
//
//   - ServerConfig / ClientConfig: configuration for the server loop
//     and the client sessions, with formatted String() output for
//     startup logging.
//
//   - Logger: custom logging implementation behind the dragonboat
//     ILogger facade, providing consistent formatting across the
//     application.
package common
