package web_test

import (
	"io/fs"

	"github.com/askwiki/gateway/web"
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/ginkgo/extensions/table"
	. "github.com/onsi/gomega"
)

var _ = Describe("Assets", func() {
	DescribeTable(
		"contains the chat client",
		func(name, content string) {
			data, err := fs.ReadFile(web.Assets, name)
			Expect(err).ShouldNot(HaveOccurred())
			Expect(string(data)).To(ContainSubstring(content))
		},
		Entry("entry document", "index.html", `src="/static/js/script.js"`),
		Entry("stylesheet", "static/css/style.css", ".bot-message"),
		Entry("script", "static/js/script.js", "fetch('/ask'"),
	)

	It("references elements that exist in the entry document", func() {
		data, err := fs.ReadFile(web.Assets, "index.html")
		Expect(err).ShouldNot(HaveOccurred())

		for _, id := range []string{"questionInput", "askButton", "chatLog", "loadingIndicator", "errorMessage"} {
			Expect(string(data)).To(ContainSubstring(`id="` + id + `"`))
		}
	})
})
