package proxy

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/net/http2"
)

// TransportOptions configures the transport used to reach the upstream server.
// A zero timeout means no timeout.
type TransportOptions struct {
	DialTimeout           time.Duration
	ResponseHeaderTimeout time.Duration
}

// NewTransport returns the round-tripper appropriate for the scheme of the
// upstream URL.
//
// The "http" and "https" schemes use a standard transport. The "h2c" scheme
// speaks cleartext HTTP/2 to the upstream server.
func NewTransport(upstream *url.URL, options TransportOptions) (http.RoundTripper, error) {
	dialer := &net.Dialer{
		Timeout:   options.DialTimeout,
		KeepAlive: 30 * time.Second,
	}

	switch upstream.Scheme {
	case "http", "https":
		transport := http.DefaultTransport.(*http.Transport).Clone()
		transport.DialContext = dialer.DialContext
		transport.ResponseHeaderTimeout = options.ResponseHeaderTimeout
		return transport, nil

	case "h2c":
		return &http2.Transport{
			AllowHTTP: true,
			DialTLSContext: func(ctx context.Context, network, addr string, _ *tls.Config) (net.Conn, error) {
				return dialer.DialContext(ctx, network, addr)
			},
		}, nil
	}

	return nil, fmt.Errorf("unsupported upstream scheme '%s'", upstream.Scheme)
}
