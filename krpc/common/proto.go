package common

import (
	"errors"
	"fmt"

	"github.com/ValentinKolb/dDHT/lib/bencode"
	"github.com/ValentinKolb/dDHT/lib/identity"
)

// ErrTimeout is returned when an awaited response does not arrive
// within the deadline. It is recoverable only by a higher-layer retry
// policy and is matchable with errors.Is.
var ErrTimeout = errors.New("request timed out")

// --------------------------------------------------------------------------
// Message Structure
// --------------------------------------------------------------------------

// Message represents a single KRPC message. On the wire every message
// is one bencoded dictionary with the transaction id under "t" and the
// variant tag under "y". Which further fields are used depends on the
// message type.
type Message struct {
	// Type of message
	Type MessageType

	// TransactionID correlates one outgoing query with its response
	TransactionID []byte

	// Query only fields
	Method string        // the query method name ("q" key)
	Args   *bencode.Dict // query arguments ("a" key), always contains the sender id

	// Response only fields
	Result *bencode.Dict // response values ("r" key), always contains the responder id

	// Error only fields
	ErrCode int64
	ErrMsg  string
}

// --------------------------------------------------------------------------
// Method Names and Error Codes
// --------------------------------------------------------------------------

const (
	MethodPing         = "ping"
	MethodFindNode     = "find_node"
	MethodGetPeers     = "get_peers"
	MethodAnnouncePeer = "announce_peer"
)

// KRPC error codes
const (
	ErrCodeGeneric       int64 = 201
	ErrCodeServer        int64 = 202
	ErrCodeProtocol      int64 = 203
	ErrCodeMethodUnknown int64 = 204
)

// --------------------------------------------------------------------------
// Message Factory Functions
// --------------------------------------------------------------------------

// NewPingQuery creates a new ping query with a fresh transaction id
func NewPingQuery(sender identity.NodeID) (*Message, error) {
	return newQuery(sender, MethodPing, nil)
}

// NewFindNodeQuery creates a new find_node query with a fresh
// transaction id, carrying the target id in the arguments
func NewFindNodeQuery(sender identity.NodeID, target identity.NodeID) (*Message, error) {
	return newQuery(sender, MethodFindNode, func(args *bencode.Dict) {
		args.Set("target", bencode.Bytes(target.Bytes()))
	})
}

// newQuery builds a query message. All queries carry the sender id in
// their arguments under the "id" key.
func newQuery(sender identity.NodeID, method string, extend func(*bencode.Dict)) (*Message, error) {
	t, err := identity.GenerateTransactionID()
	if err != nil {
		return nil, err
	}

	args := bencode.NewDict()
	args.Set("id", bencode.Bytes(sender.Bytes()))
	if extend != nil {
		extend(args)
	}

	return &Message{
		Type:          MsgTQuery,
		TransactionID: t,
		Method:        method,
		Args:          args,
	}, nil
}

// NewPingResponse creates the response to a ping query, echoing its
// transaction id
func NewPingResponse(t []byte, responder identity.NodeID) *Message {
	result := bencode.NewDict()
	result.Set("id", bencode.Bytes(responder.Bytes()))
	return &Message{Type: MsgTResponse, TransactionID: t, Result: result}
}

// NewFindNodeResponse creates the response to a find_node query with
// the compact node info blob under "nodes"
func NewFindNodeResponse(t []byte, responder identity.NodeID, nodes []byte) *Message {
	result := bencode.NewDict()
	result.Set("id", bencode.Bytes(responder.Bytes()))
	result.Set("nodes", bencode.Bytes(nodes))
	return &Message{Type: MsgTResponse, TransactionID: t, Result: result}
}

// NewErrorReply creates an error message echoing the transaction id of
// the offending query
func NewErrorReply(t []byte, code int64, msg string) *Message {
	return &Message{Type: MsgTError, TransactionID: t, ErrCode: code, ErrMsg: msg}
}

// --------------------------------------------------------------------------
// Wire Encoding
// --------------------------------------------------------------------------

// Encode serializes the message into exactly one bencoded dictionary,
// the unit of transmission (one message per datagram)
func (m *Message) Encode() ([]byte, error) {
	d := bencode.NewDict()
	d.Set("t", bencode.Bytes(m.TransactionID))

	switch m.Type {
	case MsgTQuery:
		d.Set("y", bencode.String("q"))
		d.Set("q", bencode.String(m.Method))
		d.Set("a", bencode.DictValue(m.Args))
	case MsgTResponse:
		d.Set("y", bencode.String("r"))
		d.Set("r", bencode.DictValue(m.Result))
	case MsgTError:
		d.Set("y", bencode.String("e"))
		d.Set("e", bencode.List(bencode.Integer(m.ErrCode), bencode.String(m.ErrMsg)))
	default:
		return nil, fmt.Errorf("krpc: cannot encode message of type %s", m.Type)
	}

	return bencode.EncodeDict(d)
}

// DecodeMessage parses one datagram as a KRPC message, validating the
// required "t"/"y" shape for each variant
func DecodeMessage(data []byte) (*Message, error) {
	d, err := bencode.DecodeDict(data)
	if err != nil {
		return nil, err
	}

	t, ok := d.Get("t")
	if !ok || t.Kind() != bencode.KindBytes {
		return nil, fmt.Errorf("krpc: message has no transaction id")
	}
	y, ok := d.Get("y")
	if !ok || y.Kind() != bencode.KindBytes {
		return nil, fmt.Errorf("krpc: message has no type tag")
	}

	msg := &Message{TransactionID: t.Bytes()}

	switch y.Text() {
	case "q":
		msg.Type = MsgTQuery
		q, ok := d.Get("q")
		if !ok || q.Kind() != bencode.KindBytes {
			return nil, fmt.Errorf("krpc: query has no method name")
		}
		a, ok := d.Get("a")
		if !ok || a.Kind() != bencode.KindDict {
			return nil, fmt.Errorf("krpc: query has no argument dictionary")
		}
		msg.Method = q.Text()
		msg.Args = a.Dict()

	case "r":
		msg.Type = MsgTResponse
		r, ok := d.Get("r")
		if !ok || r.Kind() != bencode.KindDict {
			return nil, fmt.Errorf("krpc: response has no result dictionary")
		}
		msg.Result = r.Dict()

	case "e":
		msg.Type = MsgTError
		e, ok := d.Get("e")
		if !ok || e.Kind() != bencode.KindList || len(e.List()) < 2 {
			return nil, fmt.Errorf("krpc: malformed error message")
		}
		code, ok := e.List()[0].Int64()
		if !ok {
			return nil, fmt.Errorf("krpc: error code is not an integer")
		}
		if e.List()[1].Kind() != bencode.KindBytes {
			return nil, fmt.Errorf("krpc: error message is not a string")
		}
		msg.ErrCode = code
		msg.ErrMsg = e.List()[1].Text()

	default:
		return nil, fmt.Errorf("krpc: unknown message type tag %q", y.Text())
	}

	return msg, nil
}

// --------------------------------------------------------------------------
// Message Type Definition
// --------------------------------------------------------------------------

// MessageType defines the KRPC message variant ("y" key on the wire)
type MessageType uint8

const (
	MsgTUnknown MessageType = iota
	MsgTQuery               // y=q
	MsgTResponse            // y=r
	MsgTError               // y=e
)

// String returns the string representation of a MessageType.
func (t MessageType) String() string {
	switch t {
	case MsgTQuery:
		return "query"
	case MsgTResponse:
		return "response"
	case MsgTError:
		return "error"
	default:
		return "unknown"
	}
}
