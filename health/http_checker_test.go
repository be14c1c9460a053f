package health_test

import (
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"time"

	"github.com/askwiki/gateway/health"
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/ginkgo/extensions/table"
	. "github.com/onsi/gomega"
)

var _ = Describe("HTTPChecker", func() {
	var (
		server          *httptest.Server
		serverURL       *url.URL
		subject         *health.HTTPChecker
		requestedPath   string
		responseCode    int
		responseMessage string
	)

	BeforeEach(func() {
		server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestedPath = r.URL.Path
			w.WriteHeader(responseCode)
			io.WriteString(w, responseMessage)
		}))
		serverURL, _ = url.Parse(server.URL)

		subject = &health.HTTPChecker{
			Address: serverURL.Host,
		}
	})

	AfterEach(func() {
		server.Close()
	})

	DescribeTable(
		"Check",
		func(code int, message string, expected health.Status) {
			responseCode = code
			responseMessage = message
			Expect(subject.Check()).To(Equal(expected))
		},
		Entry(
			"healthy response",
			http.StatusOK,
			"<ok message>",
			health.Status{IsHealthy: true, Message: "<ok message>"},
		),
		Entry(
			"unhealthy response",
			http.StatusServiceUnavailable,
			"<error message>",
			health.Status{IsHealthy: false, Message: "<error message>"},
		),
	)

	Describe("Check", func() {
		It("requests the health-check path", func() {
			responseCode = http.StatusOK
			subject.Check()
			Expect(requestedPath).To(Equal("/.gateway/health-check"))
		})

		It("defaults to localhost", func() {
			_, port, _ := net.SplitHostPort(serverURL.Host)
			subject.Address = fmt.Sprintf(":%s", port)

			responseCode = http.StatusOK
			responseMessage = "<message>"

			Expect(subject.Check()).To(Equal(health.Status{
				IsHealthy: true,
				Message:   "<message>",
			}))
		})

		It("returns an unhealthy status when the address is invalid", func() {
			subject.Address = "x"

			Expect(subject.Check()).To(Equal(health.Status{
				IsHealthy: false,
				Message:   "address x: missing port in address",
			}))
		})

		It("returns an unhealthy status when the check is too slow", func() {
			server.Config.Handler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				time.Sleep(time.Second)
			})
			subject.Client = &http.Client{Timeout: 100 * time.Millisecond}

			result := subject.Check()

			Expect(result.IsHealthy).To(BeFalse())
			Expect(result.Message).To(ContainSubstring("Client.Timeout exceeded"))
		})

		It("returns an unhealthy status when the server is unreachable", func() {
			server.Close()

			result := subject.Check()

			Expect(result.IsHealthy).To(BeFalse())
			Expect(result.Message).To(ContainSubstring("connection refused"))
		})
	})
})
