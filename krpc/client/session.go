package client

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ValentinKolb/dDHT/krpc/common"
	"github.com/ValentinKolb/dDHT/krpc/transport"
	"github.com/ValentinKolb/dDHT/lib/identity"
	"github.com/lni/dragonboat/v4/logger"
	"github.com/puzpuzpuz/xsync/v3"
)

var Logger = logger.GetLogger("client")

// --------------------------------------------------------------------------
// Response Types
// --------------------------------------------------------------------------

// Response is the generic reply to a query: the responder's node id and
// the echoed transaction id
type Response struct {
	ID            []byte
	TransactionID []byte
}

// FindNodeResponse additionally carries the compact node info returned
// by a find_node query
type FindNodeResponse struct {
	Response
	Nodes []byte
}

// --------------------------------------------------------------------------
// Session
// --------------------------------------------------------------------------

// Session binds a local node identity to one remote address and
// exclusively owns one transport binding. A reader goroutine
// demultiplexes inbound datagrams into a pending table keyed by
// transaction id, so a reply is only ever accepted as the answer to
// the query whose transaction id it echoes. Mismatched datagrams are
// dropped and the waiting query keeps waiting until its true match
// arrives or the timeout expires.
//
// Close is terminal and idempotent.
type Session struct {
	localID identity.NodeID
	remote  string
	conn    transport.IDatagramTransport
	timeout time.Duration

	pending   *xsync.MapOf[string, chan *common.Message]
	stopCh    chan struct{}
	closeOnce sync.Once
}

// newSession wires a session onto an open transport and starts the
// reader goroutine
func newSession(localID identity.NodeID, remote string, conn transport.IDatagramTransport, timeout time.Duration) *Session {
	s := &Session{
		localID: localID,
		remote:  remote,
		conn:    conn,
		timeout: timeout,
		pending: xsync.NewMapOf[string, chan *common.Message](),
		stopCh:  make(chan struct{}),
	}
	go s.readResponses()
	return s
}

// Remote returns the endpoint this session is bound to
func (s *Session) Remote() string {
	return s.remote
}

// Close releases the transport binding and stops the reader goroutine.
// Safe to call on every exit path, success or failure.
func (s *Session) Close() error {
	var err error
	s.closeOnce.Do(func() {
		close(s.stopCh)
		err = s.conn.Close()
	})
	return err
}

// Ping sends a ping query and awaits its response
func (s *Session) Ping(ctx context.Context) (*Response, error) {
	query, err := common.NewPingQuery(s.localID)
	if err != nil {
		return nil, err
	}

	msg, err := s.roundTrip(ctx, query)
	if err != nil {
		return nil, err
	}

	return parseResponse(msg)
}

// FindNode sends a find_node query for the target id and awaits its
// response
func (s *Session) FindNode(ctx context.Context, target identity.NodeID) (*FindNodeResponse, error) {
	query, err := common.NewFindNodeQuery(s.localID, target)
	if err != nil {
		return nil, err
	}

	msg, err := s.roundTrip(ctx, query)
	if err != nil {
		return nil, err
	}

	resp, err := parseResponse(msg)
	if err != nil {
		return nil, err
	}

	// real peers send a compact byte blob, a node without a routing
	// table sends an empty list
	var nodes []byte
	if v, ok := msg.Result.Get("nodes"); ok {
		nodes = v.Bytes()
	}

	return &FindNodeResponse{Response: *resp, Nodes: nodes}, nil
}

// --------------------------------------------------------------------------
// Helper Methods
// --------------------------------------------------------------------------

// roundTrip sends one encoded query datagram and suspends the caller
// until the matching response arrives or the timeout elapses
func (s *Session) roundTrip(ctx context.Context, query *common.Message) (*common.Message, error) {
	// Create a channel for the response
	respCh := make(chan *common.Message, 1)

	// Register the transaction. Transaction id generation has no
	// collision guarantee, so an id that is already outstanding is
	// replaced by a fresh one.
	for {
		if _, loaded := s.pending.LoadOrStore(string(query.TransactionID), respCh); !loaded {
			break
		}
		t, err := identity.GenerateTransactionID()
		if err != nil {
			return nil, err
		}
		query.TransactionID = t
	}

	// Ensure we clean up when done
	defer s.pending.Delete(string(query.TransactionID))

	data, err := query.Encode()
	if err != nil {
		return nil, err
	}
	if err := s.conn.Send(data); err != nil {
		return nil, err
	}

	// Wait for the matching response or timeout
	select {
	case msg := <-respCh:
		return msg, nil
	case <-time.After(s.timeout):
		return nil, fmt.Errorf("%w after %s awaiting %s", common.ErrTimeout, s.timeout, query.Method)
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-s.stopCh:
		return nil, fmt.Errorf("session closed")
	}
}

// readResponses reads datagrams in a loop and distributes them to the
// waiting queries by transaction id
func (s *Session) readResponses() {
	for {
		// Check if we should stop
		select {
		case <-s.stopCh:
			return
		default:
			// Continue
		}

		data, _, err := s.conn.Receive(context.Background())
		if err != nil {
			select {
			case <-s.stopCh:
				// expected, the transport was closed under the read
			default:
				Logger.Errorf("Receive error on session to %s: %v", s.remote, err)
			}
			return
		}

		msg, err := common.DecodeMessage(data)
		if err != nil {
			// a bad datagram never aborts the session
			Logger.Warningf("Discarding undecodable datagram from %s: %v", s.remote, err)
			continue
		}

		respCh, found := s.pending.Load(string(msg.TransactionID))
		if !found {
			Logger.Warningf("Discarding datagram from %s with unknown transaction id %x", s.remote, msg.TransactionID)
			continue
		}

		select {
		case respCh <- msg:
		default:
			// slot already filled, a duplicate reply
		}
	}
}

// parseResponse validates a reply message and wraps it as a Response
func parseResponse(msg *common.Message) (*Response, error) {
	switch msg.Type {
	case common.MsgTResponse:
		id, ok := msg.Result.Get("id")
		if !ok {
			return nil, fmt.Errorf("response without responder id")
		}
		return &Response{ID: id.Bytes(), TransactionID: msg.TransactionID}, nil
	case common.MsgTError:
		return nil, fmt.Errorf("remote error %d: %s", msg.ErrCode, msg.ErrMsg)
	default:
		return nil, fmt.Errorf("unexpected message type %s", msg.Type)
	}
}
