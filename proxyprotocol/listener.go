package proxyprotocol

import (
	"context"
	"net"

	proxyproto "github.com/pires/go-proxyproto"
)

// Listener is a net.Listener that accepts connections which may be prefixed
// with a PROXY protocol header.
//
// The header is read lazily, on first use of the connection, so that a slow
// peer does not block Accept().
type Listener struct {
	net.Listener
}

// NewListener wraps l so that accepted connections understand the PROXY
// protocol.
func NewListener(l net.Listener) net.Listener {
	return &Listener{l}
}

// Accept waits for and returns the next connection to the listener.
func (l *Listener) Accept() (net.Conn, error) {
	c, err := l.Listener.Accept()
	if err != nil {
		return nil, err
	}
	return newConn(c), nil
}

// DialLocal dials addr and sends a PROXY v2 LOCAL header, identifying the
// connection as originating from the proxy itself.
func DialLocal(ctx context.Context, network, addr string) (net.Conn, error) {
	var dialer net.Dialer
	conn, err := dialer.DialContext(ctx, network, addr)
	if err != nil {
		return nil, err
	}

	header := proxyproto.Header{
		Command: proxyproto.LOCAL,
		Version: 2,
	}
	if _, err := header.WriteTo(conn); err != nil {
		conn.Close()
		return nil, err
	}

	return conn, nil
}
