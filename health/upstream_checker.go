package health

import (
	"fmt"
	"net"
	"net/url"
	"time"
)

// UpstreamChecker is a checker that verifies that the upstream server accepts
// TCP connections. It does not send a request.
type UpstreamChecker struct {
	Upstream *url.URL
	Timeout  time.Duration
}

// Check returns information about the reachability of the upstream server.
func (checker *UpstreamChecker) Check() Status {
	address := checker.address()

	conn, err := net.DialTimeout("tcp", address, checker.Timeout)
	if err != nil {
		return Status{
			false,
			fmt.Sprintf("The upstream server at %s is unreachable: %s", address, err),
		}
	}
	conn.Close()

	return Status{
		true,
		fmt.Sprintf("The server is accepting requests and the upstream server at %s is reachable.", address),
	}
}

// address returns the host and port of the upstream server, using the default
// port for the scheme if none is given.
func (checker *UpstreamChecker) address() string {
	if checker.Upstream.Port() != "" {
		return checker.Upstream.Host
	}

	port := "80"
	if checker.Upstream.Scheme == "https" {
		port = "443"
	}

	return net.JoinHostPort(checker.Upstream.Hostname(), port)
}
