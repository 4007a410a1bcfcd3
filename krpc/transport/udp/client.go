package udp

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"time"

	"github.com/ValentinKolb/dDHT/krpc/common"
	"github.com/ValentinKolb/dDHT/krpc/transport"
	"github.com/lni/dragonboat/v4/logger"
)

var Logger = logger.GetLogger("transport/udp")

// maxDatagramSize bounds a single received datagram. The protocol sends
// one bencoded dictionary per datagram with no reassembly, so anything
// larger than a UDP payload can carry is out of contract.
const maxDatagramSize = 64 * 1024

// clientTransport implements transport.IDatagramTransport over a
// connected UDP socket
type clientTransport struct {
	conn *net.UDPConn
}

// Dial opens a UDP socket bound to the given remote endpoint.
// It satisfies transport.DialFunc.
func Dial(endpoint string) (transport.IDatagramTransport, error) {
	addr, err := net.ResolveUDPAddr("udp", endpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", endpoint, err)
	}

	conn, err := net.DialUDP("udp", nil, addr)
	if err != nil {
		return nil, fmt.Errorf("failed to dial %s: %w", endpoint, err)
	}

	return &clientTransport{conn: conn}, nil
}

// --------------------------------------------------------------------------
// Interface Methods (docu see transport.IDatagramTransport)
// --------------------------------------------------------------------------

func (t *clientTransport) Send(p []byte) error {
	_, err := t.conn.Write(p)
	return err
}

func (t *clientTransport) Receive(ctx context.Context) ([]byte, net.Addr, error) {
	deadline, ok := ctx.Deadline()
	if !ok {
		deadline = time.Time{} // block until a datagram arrives
	}
	if err := t.conn.SetReadDeadline(deadline); err != nil {
		return nil, nil, err
	}

	buf := make([]byte, maxDatagramSize)
	n, addr, err := t.conn.ReadFrom(buf)
	if err != nil {
		var netErr net.Error
		if errors.As(err, &netErr) && netErr.Timeout() {
			return nil, nil, fmt.Errorf("%w: %v", common.ErrTimeout, err)
		}
		return nil, nil, err
	}
	return buf[:n], addr, nil
}

func (t *clientTransport) Close() error {
	err := t.conn.Close()
	if errors.Is(err, net.ErrClosed) || errors.Is(err, os.ErrClosed) {
		return nil
	}
	return err
}
