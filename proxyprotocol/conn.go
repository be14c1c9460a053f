package proxyprotocol

import (
	"bufio"
	"net"
	"sync"
	"time"

	proxyproto "github.com/pires/go-proxyproto"
)

// Conn is a net.Conn that reads an optional PROXY protocol header from the
// start of the stream and reports the addresses it carries.
//
// Connections that do not begin with a PROXY header are passed through
// unchanged.
type Conn struct {
	net.Conn

	reader *bufio.Reader
	once   sync.Once
	header *proxyproto.Header
	local  net.Addr
	remote net.Addr
	err    error
}

// NewConn reads the PROXY header from c, if present, and returns the wrapped
// connection.
func NewConn(c net.Conn) (net.Conn, error) {
	conn := newConn(c)
	if err := conn.init(); err != nil {
		return nil, err
	}
	return conn, nil
}

func newConn(c net.Conn) *Conn {
	return &Conn{
		Conn:   c,
		reader: bufio.NewReader(c),
	}
}

// Header returns the PROXY header that was read from the connection, or nil
// if the peer did not send one.
func (c *Conn) Header() *proxyproto.Header {
	c.init()
	return c.header
}

func (c *Conn) init() error {
	c.once.Do(func() {
		header, err := proxyproto.Read(c.reader)
		switch err {
		case nil:
			c.header = header
			if header.Command == proxyproto.PROXY {
				c.local = newAddr(header.TransportProtocol, header.DestinationAddress, header.DestinationPort)
				c.remote = newAddr(header.TransportProtocol, header.SourceAddress, header.SourcePort)
			}
		case proxyproto.ErrNoProxyProtocol, proxyproto.ErrInvalidLength:
			// not a PROXY connection, read it as-is
		default:
			c.err = err
		}
	})

	return c.err
}

// Read reads data from the connection, after the PROXY header.
func (c *Conn) Read(b []byte) (int, error) {
	if err := c.init(); err != nil {
		return 0, err
	}
	return c.reader.Read(b)
}

// LocalAddr returns the destination address from the PROXY header, or the
// address of the underlying connection if there is none.
func (c *Conn) LocalAddr() net.Addr {
	if c.init() != nil || c.local == nil {
		return c.Conn.LocalAddr()
	}
	return c.local
}

// RemoteAddr returns the source address from the PROXY header, or the address
// of the underlying connection if there is none.
func (c *Conn) RemoteAddr() net.Addr {
	if c.init() != nil || c.remote == nil {
		return c.Conn.RemoteAddr()
	}
	return c.remote
}

// SetDeadline sets the read and write deadlines of the underlying connection.
func (c *Conn) SetDeadline(t time.Time) error {
	return c.Conn.SetDeadline(t)
}
