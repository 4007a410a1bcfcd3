package udp

import (
	"errors"
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/ValentinKolb/dDHT/krpc/common"
	"github.com/ValentinKolb/dDHT/krpc/transport"
)

// serverTransport implements transport.IServerTransport over an
// unconnected UDP socket
type serverTransport struct {
	handler transport.ServerHandleFunc

	mu   sync.RWMutex
	conn *net.UDPConn
}

// NewServerTransport creates a new UDP server transport
func NewServerTransport() transport.IServerTransport {
	return &serverTransport{}
}

// --------------------------------------------------------------------------
// Interface Methods (docu see transport.IServerTransport)
// --------------------------------------------------------------------------

func (t *serverTransport) RegisterHandler(handler transport.ServerHandleFunc) {
	t.handler = handler
}

func (t *serverTransport) Listen(config common.ServerConfig) error {
	if t.handler == nil {
		return fmt.Errorf("no handler registered")
	}

	addr, err := net.ResolveUDPAddr("udp", config.Endpoint)
	if err != nil {
		return fmt.Errorf("failed to resolve %s: %w", config.Endpoint, err)
	}

	conn, err := net.ListenUDP("udp", addr)
	if err != nil {
		return fmt.Errorf("failed to create UDP socket: %w", err)
	}

	t.mu.Lock()
	t.conn = conn
	t.mu.Unlock()

	Logger.Infof("Starting udp server on %s", conn.LocalAddr())

	timeout := time.Duration(config.TimeoutSecond) * time.Second

	// Sequential loop: one datagram is fully handled and replied
	// before the next is received
	buf := make([]byte, maxDatagramSize)
	for {
		n, remote, err := conn.ReadFromUDP(buf)
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				Logger.Infof("udp server on %s stopped", config.Endpoint)
				return nil
			}
			Logger.Errorf("Read error: %v", err)
			continue
		}

		resp := t.handler(buf[:n], remote)
		if resp == nil {
			continue
		}

		if timeout > 0 {
			if err := conn.SetWriteDeadline(time.Now().Add(timeout)); err != nil {
				Logger.Errorf("Failed to set write deadline: %v", err)
				continue
			}
		}
		if _, err := conn.WriteToUDP(resp, remote); err != nil {
			Logger.Errorf("Failed to write response to %s: %v", remote, err)
		}
	}
}

func (t *serverTransport) Addr() net.Addr {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if t.conn == nil {
		return nil
	}
	return t.conn.LocalAddr()
}

func (t *serverTransport) Close() error {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if t.conn == nil {
		return nil
	}
	err := t.conn.Close()
	if errors.Is(err, net.ErrClosed) {
		return nil
	}
	return err
}
