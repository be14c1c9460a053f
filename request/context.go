package request

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	humanize "github.com/dustin/go-humanize"
)

// Context holds information about an HTTP request/response transaction used
// for logging. It is created once per request by the front-end and annotated
// by whichever handler serves the request.
type Context struct {
	Logger *log.Logger

	// Request is the original HTTP request, with its body wrapped so that
	// inbound bytes are counted.
	Request *http.Request

	// Writer wraps the original response writer and updates the context as the
	// response is written.
	Writer *Writer

	// Route is a short description of the handler that served the request,
	// such as "proxy" or "static".
	Route string

	// Upstream is the URL of the request sent to the upstream server, if any.
	Upstream *url.URL

	// StatusCode is the HTTP status code sent in response to this request.
	// A value of zero means that no headers have been written.
	StatusCode int

	// Error is an optional error that is logged for this request.
	Error error

	Metrics Metrics

	buffer bytes.Buffer
}

type contextKey struct{}

// NewContext creates a context for the given request/response pair. The
// returned request carries the context so that handlers further down the
// chain can retrieve it with FromRequest.
func NewContext(
	logger *log.Logger,
	writer http.ResponseWriter,
	request *http.Request,
) (*Context, *http.Request) {
	ctx := &Context{Logger: logger}
	ctx.Metrics.Start()
	ctx.Writer = &Writer{Inner: writer, Context: ctx}

	request = request.WithContext(
		context.WithValue(request.Context(), contextKey{}, ctx),
	)

	if request.Body != nil && request.Body != http.NoBody {
		request.Body = &countingReader{request.Body, &ctx.Metrics.BytesIn}
	}

	ctx.Request = request

	return ctx, request
}

// FromRequest returns the context attached to request by NewContext, or nil if
// there is none.
func FromRequest(request *http.Request) *Context {
	ctx, _ := request.Context().Value(contextKey{}).(*Context)
	return ctx
}

// Close marks the request as complete.
func (ctx *Context) Close() {
	ctx.Metrics.LastByteSent()
}

// Log writes a log entry for the context to the logger.
//
// The log format consists of the following space separated fields:
//
// - event type
// - remote address
// - frontend host
// - upstream address
// - route
// - request information (method, URI and protocol)
// - http status code
// - time to first byte
// - time to last byte
// - bytes inbound
// - bytes outbound
// - message (optional)
//
// The event types are:
// - "HTTP" - the request was served
// - "FAIL" - the request failed, the message describes the error
//
// All fields are always present, except for the message which is optional. If a
// field value is unknown or not applicable, a hyphen is used in place. If a
// field value contains spaces or other special characters it is rendered as a
// double-quoted Go string. This allows log output to be parsed programatically.
func (ctx *Context) Log() {
	if ctx.Logger == nil || ctx.isMuted() {
		return
	}

	// event type
	if ctx.Error == nil {
		ctx.write("HTTP")
	} else {
		ctx.write("FAIL")
	}

	// remote address
	ctx.write(ctx.Request.RemoteAddr)

	// frontend
	ctx.write(ctx.Request.Host)

	// upstream
	if ctx.Upstream == nil {
		ctx.write("")
	} else {
		ctx.write(ctx.Upstream.Host)
	}

	// route
	ctx.write(ctx.Route)

	// request information
	ctx.write(
		"%s %s %s",
		ctx.Request.Method,
		ctx.Request.URL.RequestURI(),
		ctx.Request.Proto,
	)

	// status code
	if ctx.StatusCode == 0 {
		ctx.write("")
	} else {
		ctx.write("%d", ctx.StatusCode)
	}

	// time to first byte
	if ctx.Metrics.IsFirstByteSent() {
		ctx.write(
			"f/%sms",
			humanize.FormatFloat("#,###.##", ctx.Metrics.TimeToFirstByte),
		)
	} else {
		ctx.write("")
	}

	// time to last byte
	if ctx.Metrics.IsLastByteSent() {
		ctx.write(
			"l/%sms",
			humanize.FormatFloat("#,###.##", ctx.Metrics.TimeToLastByte),
		)
	} else {
		ctx.write("")
	}

	// bytes in / out
	ctx.write("i/%s", humanize.FormatFloat("#,###.", float64(ctx.Metrics.BytesIn)))
	ctx.write("o/%s", humanize.FormatFloat("#,###.", float64(ctx.Metrics.BytesOut)))

	// optional message
	if ctx.Error != nil {
		ctx.write(ctx.Error.Error())
	}

	ctx.Logger.Println(ctx.buffer.String())
	ctx.buffer.Reset()
}

// write is a helper function that writes to a string to a buffer, quoting the
// string if it contains whitespace or special characters.
func (ctx *Context) write(str string, v ...interface{}) {
	if ctx.buffer.Len() != 0 {
		ctx.buffer.WriteRune(' ')
	}

	if len(v) != 0 {
		str = fmt.Sprintf(str, v...)
	}

	if str == "" {
		ctx.buffer.WriteRune('-')
		return
	}

	if strings.ContainsAny(str, " \a\b\f\n\r\t\v\"") {
		ctx.buffer.WriteString(strconv.Quote(str))
	} else {
		ctx.buffer.WriteString(str)
	}
}

func (ctx *Context) isMuted() bool {
	if ctx.Request.URL.Path != "/favicon.ico" {
		return false
	}

	return 200 <= ctx.StatusCode && ctx.StatusCode < 500
}

type countingReader struct {
	io.ReadCloser
	count *int64
}

func (reader *countingReader) Read(data []byte) (int, error) {
	n, err := reader.ReadCloser.Read(data)
	*reader.count += int64(n)
	return n, err
}
