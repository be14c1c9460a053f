package statuspage

import (
	"io"
	"net/http"
)

// TextWriter writes status pages that consist of nothing but the message, as
// plain text, regardless of what the client accepts.
type TextWriter struct{}

// Write outputs a status page for statusCode to writer, in response to request.
func (wr TextWriter) Write(
	writer http.ResponseWriter,
	request *http.Request,
	statusCode int,
) (int64, error) {
	return wr.WriteMessage(writer, request, statusCode, StatusMessage(statusCode))
}

// WriteMessage outputs message as the body of a response with the given
// status code.
func (wr TextWriter) WriteMessage(
	writer http.ResponseWriter,
	_ *http.Request,
	statusCode int,
	message string,
) (int64, error) {
	writer.Header().Set("Content-Type", "text/plain; charset=utf-8")
	writer.Header().Set("X-Content-Type-Options", "nosniff")
	writer.WriteHeader(statusCode)
	n, err := io.WriteString(writer, message)
	return int64(n), err
}

// WriteError outputs an appropriate status page for the given error.
func (wr TextWriter) WriteError(
	writer http.ResponseWriter,
	request *http.Request,
	statusErr error,
) (int, int64, error) {
	return writeError(wr, writer, request, statusErr)
}
