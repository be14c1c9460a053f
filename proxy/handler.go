package proxy

import (
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"

	"github.com/askwiki/gateway/request"
	"github.com/askwiki/gateway/statuspage"
)

// ErrorMessage is the body sent to the client when the upstream server can
// not be contacted.
const ErrorMessage = "Proxy Error: Could not connect to the upstream backend."

// Handler is an http.Handler that forwards requests to a single upstream
// server.
//
// Each request is forwarded exactly once. The method, path, query string,
// end-to-end headers and body are passed through unchanged, as are the status,
// headers and body of the upstream response.
type Handler struct {
	// Upstream is the base URL of the upstream server. Its path, if any, is
	// prepended to the path of each forwarded request.
	Upstream *url.URL

	// Transport performs the upstream round-trip. If it is nil,
	// http.DefaultTransport is used.
	Transport http.RoundTripper

	// StatusPageWriter writes the response sent when the upstream server can
	// not be contacted. If it is nil, a plain-text ErrorMessage is sent.
	StatusPageWriter statuspage.Writer

	Logger *log.Logger
}

// ServeHTTP forwards the request to the upstream server.
func (handler *Handler) ServeHTTP(writer http.ResponseWriter, req *http.Request) {
	ctx := request.FromRequest(req)
	upstreamRequest := handler.prepareRequest(req)

	if ctx != nil {
		ctx.Route = "proxy"
		ctx.Upstream = upstreamRequest.URL
	}

	response, err := handler.transport().RoundTrip(upstreamRequest)
	if err != nil {
		handler.fail(writer, req, err)
		return
	}

	err = writeResponse(writer, response)
	if err != nil && ctx != nil {
		// The headers have been sent, so the best we can do is log the error.
		ctx.Error = fmt.Errorf("relaying upstream response: %w", err)
	}
}

// prepareRequest produces the HTTP request that is sent to the upstream
// server.
func (handler *Handler) prepareRequest(req *http.Request) *http.Request {
	upstreamRequest := req.Clone(req.Context())
	upstreamRequest.RequestURI = ""
	upstreamRequest.Close = false
	upstreamRequest.Host = "" // use the host from the upstream URL
	upstreamRequest.Header = buildUpstreamHeaders(req)

	if req.ContentLength == 0 {
		upstreamRequest.Body = nil
	}

	target := *req.URL
	target.Scheme = handler.Upstream.Scheme
	target.Host = handler.Upstream.Host
	target.User = nil
	target.Path, target.RawPath = joinPath(handler.Upstream, req.URL)

	if handler.Upstream.RawQuery == "" || req.URL.RawQuery == "" {
		target.RawQuery = handler.Upstream.RawQuery + req.URL.RawQuery
	} else {
		target.RawQuery = handler.Upstream.RawQuery + "&" + req.URL.RawQuery
	}

	if target.Scheme == "h2c" {
		target.Scheme = "http"
	}

	upstreamRequest.URL = &target

	return upstreamRequest
}

func (handler *Handler) transport() http.RoundTripper {
	if handler.Transport == nil {
		return http.DefaultTransport
	}

	return handler.Transport
}

// fail responds to a request that could not be forwarded.
func (handler *Handler) fail(writer http.ResponseWriter, req *http.Request, err error) {
	if handler.Logger != nil {
		handler.Logger.Printf(
			"proxy: can not forward %s %s to %s: %s",
			req.Method,
			req.URL.RequestURI(),
			handler.Upstream.Host,
			err,
		)
	}

	if ctx := request.FromRequest(req); ctx != nil {
		ctx.Error = err
	}

	statusWriter := handler.StatusPageWriter
	if statusWriter == nil {
		statusWriter = statuspage.TextWriter{}
	}

	statusWriter.WriteError(writer, req, statuspage.Error{
		Inner:      err,
		StatusCode: http.StatusInternalServerError,
		Message:    ErrorMessage,
	})
}

// writeResponse relays the entirety of response to writer. The body is
// flushed to the client as it arrives from the upstream server.
func writeResponse(writer http.ResponseWriter, response *http.Response) error {
	defer response.Body.Close()

	copyEndToEndHeaders(writer.Header(), response.Header)
	writer.WriteHeader(response.StatusCode)

	_, err := io.Copy(flushWriter{writer}, response.Body)
	return err
}

// joinPath combines the path of the upstream base URL with the path of the
// incoming request.
func joinPath(base, requested *url.URL) (path, rawPath string) {
	if base.Path == "" || base.Path == "/" {
		return requested.Path, requested.RawPath
	}

	if base.RawPath == "" && requested.RawPath == "" {
		return singleJoiningSlash(base.Path, requested.Path), ""
	}

	basePath := base.EscapedPath()
	requestedPath := requested.EscapedPath()

	path = singleJoiningSlash(base.Path, requested.Path)
	rawPath = singleJoiningSlash(basePath, requestedPath)

	return path, rawPath
}

func singleJoiningSlash(a, b string) string {
	aslash := strings.HasSuffix(a, "/")
	bslash := strings.HasPrefix(b, "/")

	switch {
	case aslash && bslash:
		return a + b[1:]
	case !aslash && !bslash:
		return a + "/" + b
	}

	return a + b
}

// flushWriter flushes the underlying writer after every write so that
// streamed upstream responses reach the client without delay.
type flushWriter struct {
	writer http.ResponseWriter
}

func (w flushWriter) Write(data []byte) (int, error) {
	n, err := w.writer.Write(data)
	if flusher, ok := w.writer.(http.Flusher); ok {
		flusher.Flush()
	}

	return n, err
}
