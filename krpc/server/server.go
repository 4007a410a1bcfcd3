package server

import (
	"fmt"
	"net"
	"net/http"

	"github.com/ValentinKolb/dDHT/krpc/common"
	"github.com/ValentinKolb/dDHT/krpc/transport"
	"github.com/ValentinKolb/dDHT/lib/identity"
	"github.com/VictoriaMetrics/metrics"
	"github.com/lni/dragonboat/v4/logger"
)

var Logger = logger.GetLogger("server")

// NewServer creates a new DHT server. The node identity is constructed
// by the caller and injected, it is immutable for the server's
// lifetime.
//
// Usage:
//
//	s := server.NewServer(
//		config,
//		udp.NewServerTransport(),
//		nodeID,
//	)
//
//	if err := s.Serve(); err != nil {
//		panic(err)
//	}
func NewServer(
	config common.ServerConfig,
	transport transport.IServerTransport,
	nodeID identity.NodeID,
) dhtServer {
	Logger.Infof("Created DHT Server")
	Logger.Infof(config.String())

	return dhtServer{
		config:    config,
		transport: transport,
		nodeID:    nodeID,
	}
}

type dhtServer struct {
	config    common.ServerConfig
	transport transport.IServerTransport
	nodeID    identity.NodeID
}

// registerTransportHandler wires the dispatch table into the transport.
// The handler classifies each datagram by (y=q, q=<method>) and builds
// the reply; a nil return means no datagram is sent back.
func (s *dhtServer) registerTransportHandler() {
	s.transport.RegisterHandler(func(req []byte, addr net.Addr) []byte {
		msg, err := common.DecodeMessage(req)

		// Case undecodable datagram -> discard, never fail closed.
		// Without a transaction id there is nothing to correlate a
		// reply to.
		if err != nil {
			Logger.Warningf("Discarding undecodable datagram from %s: %v", addr, err)
			metrics.GetOrCreateCounter(`dht_datagrams_discarded_total`).Inc()
			return nil
		}

		// Case non-query message -> nothing to dispatch
		if msg.Type != common.MsgTQuery {
			Logger.Debugf("Ignoring %s message from %s", msg.Type, addr)
			return nil
		}

		Logger.Debugf("Query %s from %s (t=%x)", msg.Method, addr, msg.TransactionID)
		metrics.GetOrCreateCounter(fmt.Sprintf(`dht_queries_total{method=%q}`, msg.Method)).Inc()

		respMsg := s.dispatch(msg)

		resp, err := respMsg.Encode()
		if err != nil {
			Logger.Errorf("Failed to encode reply to %s: %v", addr, err)
			return nil
		}
		return resp
	})
}

// dispatch maps one query to its reply. Every query receives some
// reply, unimplemented and unknown methods get a well-formed KRPC
// error.
func (s *dhtServer) dispatch(msg *common.Message) *common.Message {
	switch msg.Method {
	case common.MethodPing:
		return common.NewPingResponse(msg.TransactionID, s.nodeID)

	case common.MethodFindNode:
		// placeholder pending a routing table, peers get an empty set
		return common.NewFindNodeResponse(msg.TransactionID, s.nodeID, nil)

	case common.MethodGetPeers, common.MethodAnnouncePeer:
		return common.NewErrorReply(msg.TransactionID, common.ErrCodeGeneric, "Method Not Implemented")

	default:
		return common.NewErrorReply(msg.TransactionID, common.ErrCodeMethodUnknown, "Method Unknown")
	}
}

// serveMetrics exposes the Prometheus metrics endpoint if configured
func (s *dhtServer) serveMetrics() {
	if s.config.MetricsEndpoint == "" {
		return
	}

	go func() {
		Logger.Infof("Starting metrics server on %s", s.config.MetricsEndpoint)
		mux := http.NewServeMux()
		mux.HandleFunc("/metrics", func(w http.ResponseWriter, _ *http.Request) {
			metrics.WritePrometheus(w, true)
		})
		Logger.Errorf("%v", http.ListenAndServe(s.config.MetricsEndpoint, mux))
	}()
}

// Serve starts the DHT server: it initializes the loggers, wires the
// dispatch handler and runs the transport's receive loop
func (s *dhtServer) Serve() error {
	common.InitLoggers(s.config.LogLevel)

	Logger.Infof("Node (%s) has been started", s.nodeID)

	s.serveMetrics()
	s.registerTransportHandler()

	return s.transport.Listen(s.config)
}
