package request

import (
	"bufio"
	"errors"
	"net"
	"net/http"
)

// Writer is an http.ResponseWriter that wraps another response writer, trapping
// information about the response before it is written.
//
// The interface supports methods from http.ResponseWriter, http.Flusher and
// http.Hijacker.
type Writer struct {
	// Inner is the original response writer to which the response is written.
	Inner http.ResponseWriter

	// Context is the request context to which this writer belongs.
	Context *Context
}

// Header returns writer.Inner.Header.
func (writer *Writer) Header() http.Header {
	return writer.Inner.Header()
}

// Write sends data to the client. If data is written before the HTTP headers
// have been sent, a response code of 200 OK is used.
func (writer *Writer) Write(data []byte) (int, error) {
	if writer.Context.StatusCode == 0 {
		writer.WriteHeader(http.StatusOK)
	}

	size, err := writer.Inner.Write(data)
	writer.Context.Metrics.BytesOut += int64(size)

	return size, err
}

// WriteHeader sends the HTTP headers and records the status code. Only the
// first call has any effect on the recorded status.
func (writer *Writer) WriteHeader(statusCode int) {
	if writer.Context.StatusCode == 0 {
		writer.Context.StatusCode = statusCode
		writer.Context.Metrics.FirstByteSent()
	}

	writer.Inner.WriteHeader(statusCode)
}

// Flush calls writer.Inner.Flush() if it implements http.Flusher.
func (writer *Writer) Flush() {
	if flusher, ok := writer.Inner.(http.Flusher); ok {
		flusher.Flush()
	}
}

// Hijack calls writer.Inner.Hijack() if it implements http.Hijacker, otherwise
// it returns an error.
func (writer *Writer) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	if hijacker, ok := writer.Inner.(http.Hijacker); ok {
		writer.Context.Metrics.FirstByteSent()
		return hijacker.Hijack()
	}

	return nil, nil, errors.New("the inner response writer does not implement http.Hijacker")
}

// Unwrap returns the inner writer, for use by http.ResponseController.
func (writer *Writer) Unwrap() http.ResponseWriter {
	return writer.Inner
}
