package server

import (
	"bytes"
	"embed"
	"net/http"
	"regexp"
	"time"

	"github.com/pkg/errors"
	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/css"
	"github.com/tdewolff/minify/v2/html"
	"github.com/tdewolff/minify/v2/js"
)

//go:embed frontend/index.html
var frontendFiles embed.FS

func newMinifier() *minify.M {
	m := minify.New()
	m.AddFunc("text/css", css.Minify)
	m.AddFunc("text/html", html.Minify)
	m.AddFuncRegexp(regexp.MustCompile("^(application|text)/(x-)?(java|ecma)script$"), js.Minify)
	return m
}

// viewerPage returns the minified viewer page.
func viewerPage() ([]byte, error) {
	src, err := frontendFiles.ReadFile("frontend/index.html")
	if err != nil {
		return nil, errors.Wrap(err, "read viewer page")
	}

	var out bytes.Buffer
	if err := newMinifier().Minify("text/html", &out, bytes.NewReader(src)); err != nil {
		return nil, errors.Wrap(err, "minify viewer page")
	}
	return out.Bytes(), nil
}

func serveViewer(page []byte) http.HandlerFunc {
	modTime := time.Now()
	return func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" && r.URL.Path != "/index.html" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		http.ServeContent(w, r, "index.html", modTime, bytes.NewReader(page))
	}
}
