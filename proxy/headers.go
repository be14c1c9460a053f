package proxy

import (
	"net"
	"net/http"
	"strings"

	"github.com/golang/gddo/httputil/header"
)

// isHopByHopHeader checks if a given header name is a Hop-by-Hop header, and
// hence should not be forwarded. The name must already be canonicalized with
// http.CanonicalHeaderKey().
func isHopByHopHeader(name string) bool {
	switch name {
	case
		"Connection",
		"Proxy-Connection",
		"Keep-Alive",
		"Proxy-Authenticate",
		"Proxy-Authorization",
		"Te",
		"Trailer",
		"Transfer-Encoding",
		"Upgrade":
		return true
	default:
		return false
	}
}

// connectionTokens returns the canonicalized names of any additional headers
// that the sender has marked as hop-by-hop via the Connection header.
func connectionTokens(headers http.Header) map[string]struct{} {
	tokens := map[string]struct{}{}
	for _, value := range header.ParseList(headers, "Connection") {
		tokens[http.CanonicalHeaderKey(value)] = struct{}{}
	}

	return tokens
}

// copyEndToEndHeaders copies all headers from source to target except for
// hop-by-hop headers.
func copyEndToEndHeaders(target, source http.Header) {
	tokens := connectionTokens(source)

	for name, values := range source {
		if isHopByHopHeader(name) {
			continue
		}

		if _, ok := tokens[name]; ok {
			continue
		}

		target[name] = append([]string(nil), values...)
	}
}

// buildUpstreamHeaders creates the set of headers that are to be forwarded to
// the upstream server for the given request. The X-Forwarded-For chain is
// extended with the client address, and X-Forwarded-Host/-Proto describe the
// original request.
func buildUpstreamHeaders(request *http.Request) http.Header {
	headers := http.Header{}
	copyEndToEndHeaders(headers, request.Header)

	if clientIP, _, err := net.SplitHostPort(request.RemoteAddr); err == nil {
		if prior := request.Header.Values("X-Forwarded-For"); len(prior) != 0 {
			clientIP = strings.Join(prior, ", ") + ", " + clientIP
		}
		headers.Set("X-Forwarded-For", clientIP)
	}

	headers.Set("X-Forwarded-Host", request.Host)

	if request.TLS == nil {
		headers.Set("X-Forwarded-Proto", "http")
	} else {
		headers.Set("X-Forwarded-Proto", "https")
	}

	// An absent User-Agent must not be replaced by Go's default.
	if _, ok := headers["User-Agent"]; !ok {
		headers.Set("User-Agent", "")
	}

	return headers
}
