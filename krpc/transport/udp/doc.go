// Package udp implements the datagram transport interfaces over UDP
// sockets. One KRPC message travels as one datagram, there is no
// fragmentation or multi-datagram reassembly.
package udp
