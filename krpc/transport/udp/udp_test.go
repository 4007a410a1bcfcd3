package udp

import (
	"bytes"
	"context"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/ValentinKolb/dDHT/krpc/common"
)

// startEchoServer runs a server transport on an ephemeral loopback port
// and returns its address
func startEchoServer(t *testing.T) string {
	t.Helper()

	srv := NewServerTransport()
	srv.RegisterHandler(func(req []byte, addr net.Addr) []byte {
		return append([]byte("echo:"), req...)
	})

	go func() {
		if err := srv.Listen(common.ServerConfig{Endpoint: "127.0.0.1:0", TimeoutSecond: 1}); err != nil {
			t.Errorf("Listen failed: %v", err)
		}
	}()
	t.Cleanup(func() { srv.Close() })

	// wait until the socket is bound
	deadline := time.Now().Add(2 * time.Second)
	for srv.Addr() == nil {
		if time.Now().After(deadline) {
			t.Fatal("server did not bind in time")
		}
		time.Sleep(5 * time.Millisecond)
	}
	return srv.Addr().String()
}

// TestLoopbackRoundTrip tests one datagram out, one reply back
func TestLoopbackRoundTrip(t *testing.T) {
	endpoint := startEchoServer(t)

	conn, err := Dial(endpoint)
	if err != nil {
		t.Fatalf("Dial failed: %v", err)
	}
	defer conn.Close()

	if err := conn.Send([]byte("ping")); err != nil {
		t.Fatalf("Send failed: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	data, _, err := conn.Receive(ctx)
	if err != nil {
		t.Fatalf("Receive failed: %v", err)
	}
	if !bytes.Equal(data, []byte("echo:ping")) {
		t.Errorf("Receive = %q", data)
	}
}

// TestReceiveTimeout tests that an expired deadline surfaces ErrTimeout
func TestReceiveTimeout(t *testing.T) {
	endpoint := startEchoServer(t)

	conn, err := Dial(endpoint)
	if err != nil {
		t.Fatalf("Dial failed: %v", err)
	}
	defer conn.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, _, err = conn.Receive(ctx)
	if !errors.Is(err, common.ErrTimeout) {
		t.Errorf("Receive error = %v, want ErrTimeout", err)
	}
}

// TestCloseIdempotent tests that Close can be called more than once
func TestCloseIdempotent(t *testing.T) {
	endpoint := startEchoServer(t)

	conn, err := Dial(endpoint)
	if err != nil {
		t.Fatalf("Dial failed: %v", err)
	}
	if err := conn.Close(); err != nil {
		t.Errorf("first Close failed: %v", err)
	}
	if err := conn.Close(); err != nil {
		t.Errorf("second Close failed: %v", err)
	}
}
