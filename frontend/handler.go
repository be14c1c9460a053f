package frontend

import (
	"log"
	"net/http"
	"strings"
	"sync"

	"github.com/askwiki/gateway/request"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

// DefaultAskPath is the path prefix forwarded to the upstream server when
// Handler.AskPath is empty.
const DefaultAskPath = "/ask"

// Handler provides the main http.Handler implementation.
//
// Requests for AskPath, or any path beneath it, are sent to Proxy. All other
// requests are sent to Static, unless they are intercepted by HealthCheck.
type Handler struct {
	AskPath     string
	Proxy       http.Handler
	Static      http.Handler
	HealthCheck ConditionalHandler
	Logger      *log.Logger

	once   sync.Once
	router chi.Router
}

func (handler *Handler) ServeHTTP(writer http.ResponseWriter, req *http.Request) {
	handler.once.Do(handler.init)
	handler.router.ServeHTTP(writer, req)
}

func (handler *Handler) init() {
	router := chi.NewRouter()
	router.Use(handler.accessLog)
	router.Use(chimiddleware.Recoverer)

	if handler.HealthCheck != nil {
		router.Use(intercept(handler.HealthCheck))
	}

	askPath := "/" + strings.Trim(handler.AskPath, "/")
	if askPath == "/" {
		askPath = DefaultAskPath
	}

	router.Mount(askPath, handler.Proxy)
	router.Handle("/*", handler.Static)

	handler.router = router
}

// accessLog is middleware that attaches a request.Context to each request and
// logs it once the response is complete.
func (handler *Handler) accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, req *http.Request) {
		ctx, req := request.NewContext(handler.Logger, writer, req)
		defer func() {
			ctx.Close()
			ctx.Log()
		}()

		next.ServeHTTP(ctx.Writer, req)
	})
}

// intercept returns middleware that serves the request with h, before routing,
// if h can handle it.
func intercept(h ConditionalHandler) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, req *http.Request) {
			if h.CanHandle(req) {
				h.ServeHTTP(writer, req)
			} else {
				next.ServeHTTP(writer, req)
			}
		})
	}
}
