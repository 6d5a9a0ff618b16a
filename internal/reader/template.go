package reader

import (
	"bytes"
	_ "embed"
	"text/template"
)

//go:embed reader.tmpl
var readerTpl string

var compiled = template.Must(template.New("reader").Parse(readerTpl))

type wrapData struct {
	Body        string
	AllowImages bool
}

// wrapHTML embeds an extracted body in the fixed reader shell. The shell
// forces foreground/background colors and, when images are off, hides any
// media element the stripper missed.
func wrapHTML(body string, allowImages bool) (string, error) {
	var buf bytes.Buffer
	if err := compiled.Execute(&buf, wrapData{Body: body, AllowImages: allowImages}); err != nil {
		return "", err
	}
	return buf.String(), nil
}
