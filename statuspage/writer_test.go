package statuspage_test

import (
	"errors"
	"net/http"
	"net/http/httptest"

	"github.com/askwiki/gateway/statuspage"
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/ginkgo/extensions/table"
	. "github.com/onsi/gomega"
)

var _ = Describe("TemplateWriter", func() {
	var (
		subject  *statuspage.TemplateWriter
		recorder *httptest.ResponseRecorder
		request  *http.Request
	)

	BeforeEach(func() {
		subject = &statuspage.TemplateWriter{}
		recorder = httptest.NewRecorder()
		request = httptest.NewRequest(http.MethodGet, "/missing", nil)
	})

	DescribeTable(
		"chooses the format based on the Accept header",
		func(accept string, contentType string) {
			if accept != "" {
				request.Header.Set("Accept", accept)
			}
			subject.Write(recorder, request, http.StatusNotFound)
			Expect(recorder.Header().Get("Content-Type")).To(Equal(contentType))
		},
		Entry("no header", "", "text/plain; charset=utf-8"),
		Entry("browser", "text/html,application/xhtml+xml,*/*;q=0.8", "text/html; charset=utf-8"),
		Entry("wildcard", "*/*", "text/plain; charset=utf-8"),
		Entry("plain text preferred", "text/html;q=0.5, text/plain", "text/plain; charset=utf-8"),
	)

	Describe("Write", func() {
		It("writes the status code and message", func() {
			subject.Write(recorder, request, http.StatusNotFound)
			Expect(recorder.Code).To(Equal(http.StatusNotFound))
			Expect(recorder.Body.String()).To(Equal(
				"404 Not Found\n\nThe page you've requested could not be found.\n",
			))
		})
	})

	Describe("WriteError", func() {
		It("uses the status code and message from a statuspage.Error", func() {
			code, _, err := subject.WriteError(recorder, request, statuspage.Error{
				Inner:      errors.New("<inner>"),
				StatusCode: http.StatusMethodNotAllowed,
				Message:    "<message>",
			})
			Expect(err).ShouldNot(HaveOccurred())
			Expect(code).To(Equal(http.StatusMethodNotAllowed))
			Expect(recorder.Body.String()).To(ContainSubstring("<message>"))
		})

		It("uses 500 for other errors", func() {
			code, _, _ := subject.WriteError(recorder, request, errors.New("<error>"))
			Expect(code).To(Equal(http.StatusInternalServerError))
			Expect(recorder.Code).To(Equal(http.StatusInternalServerError))
		})
	})
})

var _ = Describe("TextWriter", func() {
	It("writes only the message as plain text", func() {
		recorder := httptest.NewRecorder()
		request := httptest.NewRequest(http.MethodGet, "/", nil)
		request.Header.Set("Accept", "text/html")

		n, err := statuspage.TextWriter{}.WriteMessage(recorder, request, http.StatusInternalServerError, "<message>")

		Expect(err).ShouldNot(HaveOccurred())
		Expect(n).To(BeEquivalentTo(len("<message>")))
		Expect(recorder.Code).To(Equal(http.StatusInternalServerError))
		Expect(recorder.Header().Get("Content-Type")).To(Equal("text/plain; charset=utf-8"))
		Expect(recorder.Body.String()).To(Equal("<message>"))
	})
})

var _ = Describe("Error", func() {
	It("uses the message of the inner error", func() {
		err := statuspage.Error{Inner: errors.New("<inner>"), StatusCode: http.StatusNotFound}
		Expect(err.Error()).To(Equal("<inner>"))
		Expect(errors.Unwrap(err)).To(MatchError("<inner>"))
	})

	It("falls back to the status text", func() {
		err := statuspage.Error{StatusCode: http.StatusNotFound}
		Expect(err.Error()).To(Equal("Not Found"))
	})
})

var _ = Describe("StatusMessage", func() {
	DescribeTable(
		"returns a message for the status code",
		func(code int, expected string) {
			Expect(statuspage.StatusMessage(code)).To(Equal(expected))
		},
		Entry("known code", http.StatusNotFound, "The page you've requested could not be found."),
		Entry("unknown error code", http.StatusTeapot, "We're sorry, something went wrong!"),
		Entry("non-error code", http.StatusOK, "That's all we know."),
	)
})
