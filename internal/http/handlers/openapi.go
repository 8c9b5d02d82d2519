package handlers

import (
	"bytes"
	_ "embed"
	"html/template"
	"net/http"
	"path"
	"strings"

	"promptglot/internal/domain"
)

//go:embed openapi.json
var openAPISpec []byte

const redocVersion = "2.2.0"

var docsPage = template.Must(template.New("docs").Parse(`<!DOCTYPE html>
<html lang="en">
  <head>
    <meta charset="utf-8" />
    <title>{{.Title}}</title>
    <meta name="viewport" content="width=device-width, initial-scale=1" />
    <style>
      body { margin: 0; padding: 0; }
      redoc { display: block; height: 100vh; }
    </style>
  </head>
  <body>
    <redoc spec-url="{{.SpecURL}}"></redoc>
    <script src="https://cdn.jsdelivr.net/npm/redoc@{{.RedocVersion}}/bundles/redoc.standalone.js"></script>
  </body>
</html>`))

type docsView struct {
	Title        string
	SpecURL      string
	RedocVersion string
}

func (a *App) OpenAPIJSON(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Cache-Control", "public, max-age=300")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(openAPISpec)
}

// OpenAPIDocs renders the Redoc viewer for the document mounted beside it,
// so /api/docs reads /api/openapi.json.
func (a *App) OpenAPIDocs(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	err := docsPage.Execute(&buf, docsView{
		Title:        "PromptGlot API Docs",
		SpecURL:      specURLFor(r.URL.Path),
		RedocVersion: redocVersion,
	})
	if err != nil {
		a.fail(w, domain.Internal(err))
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

func specURLFor(docsPath string) string {
	dir := path.Dir(strings.TrimSuffix(docsPath, "/"))
	if dir == "." {
		dir = "/"
	}
	return path.Join(dir, "openapi.json")
}
