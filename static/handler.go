package static

import (
	"io"
	"io/fs"
	"net/http"
	"path"
	"strings"

	"github.com/askwiki/gateway/request"
	"github.com/askwiki/gateway/statuspage"
)

// DefaultFallback is the document served for paths that match no file.
const DefaultFallback = "index.html"

// Handler is an http.Handler that serves files from a static root.
//
// Requests for paths that do not match a file are answered with the contents
// of the fallback document, so that the client can handle its own routing.
type Handler struct {
	// Root is the file system that files are served from.
	Root fs.FS

	// Fallback is the path, relative to Root, of the document served when no
	// file matches. If it is empty, unmatched paths produce a 404 response.
	Fallback string

	StatusPageWriter statuspage.Writer
}

// ServeHTTP serves the file at the request path, or the fallback document.
func (handler *Handler) ServeHTTP(writer http.ResponseWriter, req *http.Request) {
	if ctx := request.FromRequest(req); ctx != nil {
		ctx.Route = "static"
	}

	if req.Method != http.MethodGet && req.Method != http.MethodHead {
		writer.Header().Set("Allow", "GET, HEAD")
		handler.statusPage(writer, req, http.StatusMethodNotAllowed)
		return
	}

	name := resolve(req.URL.Path)

	if ok, err := handler.serve(writer, req, name); ok || err != nil {
		return
	}

	if handler.Fallback != "" {
		if ok, err := handler.serve(writer, req, resolve(handler.Fallback)); ok || err != nil {
			return
		}
	}

	handler.statusPage(writer, req, http.StatusNotFound)
}

// serve writes the file with the given name. If name is a directory its index
// document is served instead. It returns false if there is no such file, in
// which case nothing has been written.
func (handler *Handler) serve(
	writer http.ResponseWriter,
	req *http.Request,
	name string,
) (bool, error) {
	file, info, ok := open(handler.Root, name)
	if !ok {
		return false, nil
	}

	if info.IsDir() {
		file.Close()

		file, info, ok = open(handler.Root, path.Join(name, "index.html"))
		if !ok {
			return false, nil
		} else if info.IsDir() {
			file.Close()
			return false, nil
		}
	}
	defer file.Close()

	content, isSeeker := file.(io.ReadSeeker)
	if !isSeeker {
		var err error
		content, err = buffer(file)
		if err != nil {
			handler.statusPage(writer, req, http.StatusInternalServerError)
			return false, err
		}
	}

	http.ServeContent(writer, req, info.Name(), info.ModTime(), content)

	return true, nil
}

func (handler *Handler) statusPage(writer http.ResponseWriter, req *http.Request, statusCode int) {
	statusWriter := handler.StatusPageWriter
	if statusWriter == nil {
		statusWriter = statuspage.DefaultWriter
	}

	statusWriter.Write(writer, req, statusCode)
}

// resolve converts a URL path to a file name within the root. The result never
// refers to a location outside the root.
func resolve(urlPath string) string {
	name := strings.TrimPrefix(path.Clean("/"+urlPath), "/")
	if name == "" {
		return "."
	}

	return name
}

// open opens the named file. Any failure, including invalid names, is treated
// as the file not existing.
func open(root fs.FS, name string) (fs.File, fs.FileInfo, bool) {
	file, err := root.Open(name)
	if err != nil {
		return nil, nil, false
	}

	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, nil, false
	}

	return file, info, true
}
