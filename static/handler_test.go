package static_test

import (
	"net/http"
	"net/http/httptest"
	"testing/fstest"

	"github.com/askwiki/gateway/request"
	"github.com/askwiki/gateway/static"
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/ginkgo/extensions/table"
	. "github.com/onsi/gomega"
)

var _ = Describe("Handler", func() {
	var (
		subject  *static.Handler
		recorder *httptest.ResponseRecorder
	)

	BeforeEach(func() {
		subject = &static.Handler{
			Root: fstest.MapFS{
				"index.html":           {Data: []byte("<index>")},
				"static/css/style.css": {Data: []byte("<style>")},
				"static/js/script.js":  {Data: []byte("<script>")},
				"docs/index.html":      {Data: []byte("<docs>")},
			},
			Fallback: static.DefaultFallback,
		}
		recorder = httptest.NewRecorder()
	})

	get := func(target string) {
		subject.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, target, nil))
	}

	DescribeTable(
		"serves matching files",
		func(target, body, contentType string) {
			get(target)
			Expect(recorder.Code).To(Equal(http.StatusOK))
			Expect(recorder.Body.String()).To(Equal(body))
			Expect(recorder.Header().Get("Content-Type")).To(HavePrefix(contentType))
		},
		Entry("stylesheet", "/static/css/style.css", "<style>", "text/css"),
		Entry("script", "/static/js/script.js", "<script>", "text/javascript"),
		Entry("root document", "/", "<index>", "text/html"),
		Entry("directory index", "/docs/", "<docs>", "text/html"),
	)

	DescribeTable(
		"serves the fallback document for unmatched paths",
		func(target string) {
			get(target)
			Expect(recorder.Code).To(Equal(http.StatusOK))
			Expect(recorder.Body.String()).To(Equal("<index>"))
		},
		Entry("client-side route", "/conversations/123"),
		Entry("missing asset", "/static/js/missing.js"),
		Entry("directory without index", "/static/"),
		Entry("path below a file", "/index.html/more"),
		Entry("path escaping the root", "/../../etc/passwd"),
		Entry("path similar to the proxied path", "/askfoo"),
	)

	It("serves HEAD requests", func() {
		subject.ServeHTTP(recorder, httptest.NewRequest(http.MethodHead, "/static/css/style.css", nil))
		Expect(recorder.Code).To(Equal(http.StatusOK))
		Expect(recorder.Body.String()).To(BeEmpty())
	})

	It("responds with 404 if there is no fallback document", func() {
		subject.Fallback = ""
		get("/conversations/123")
		Expect(recorder.Code).To(Equal(http.StatusNotFound))
	})

	It("responds with 404 if the fallback document does not exist", func() {
		subject.Fallback = "app.html"
		get("/conversations/123")
		Expect(recorder.Code).To(Equal(http.StatusNotFound))
	})

	It("accepts a fallback document with a leading slash", func() {
		subject.Fallback = "/index.html"
		get("/conversations/123")
		Expect(recorder.Body.String()).To(Equal("<index>"))
	})

	It("responds with 405 for methods other than GET and HEAD", func() {
		subject.ServeHTTP(recorder, httptest.NewRequest(http.MethodPost, "/index.html", nil))
		Expect(recorder.Code).To(Equal(http.StatusMethodNotAllowed))
		Expect(recorder.Header().Get("Allow")).To(Equal("GET, HEAD"))
	})

	It("annotates the request context", func() {
		ctx, req := request.NewContext(nil, recorder, httptest.NewRequest(http.MethodGet, "/", nil))
		subject.ServeHTTP(ctx.Writer, req)
		Expect(ctx.Route).To(Equal("static"))
		Expect(ctx.StatusCode).To(Equal(http.StatusOK))
	})
})
