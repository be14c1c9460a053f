package health

import (
	"io"
	"log"
	"net"
	"net/http"

	"github.com/askwiki/gateway/request"
)

const requestHost = "localhost"
const requestPath = "/.gateway/health-check"

// HTTPHandler is a http.Handler/frontend.ConditionalHandler that returns health
// check information.
type HTTPHandler struct {
	Checker Checker
	Logger  *log.Logger
}

// CanHandle returns true if request can be served by this handler.
func (handler *HTTPHandler) CanHandle(req *http.Request) bool {
	host, _, err := net.SplitHostPort(req.Host)
	if err != nil {
		host = req.Host
	}

	return host == requestHost && req.URL.Path == requestPath
}

func (handler *HTTPHandler) ServeHTTP(writer http.ResponseWriter, req *http.Request) {
	if ctx := request.FromRequest(req); ctx != nil {
		ctx.Route = "health"
	}

	writer.Header().Set("Content-Type", "text/plain; charset=utf-8")

	status := Status{
		true,
		"The server is accepting requests, but no health-checker is configured.",
	}

	if handler.Checker != nil {
		status = handler.Checker.Check()
	}

	if status.IsHealthy {
		writer.WriteHeader(http.StatusOK)
	} else {
		if handler.Logger != nil {
			handler.Logger.Println(status)
		}

		writer.WriteHeader(http.StatusServiceUnavailable)
	}

	io.WriteString(writer, status.Message)
}
