package report

import (
	"bytes"
	"fmt"
	"io"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/harrison/segcheck/internal/girder"
)

var markdownRenderer = goldmark.New(goldmark.WithExtensions(extension.Table))

const htmlHead = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Segment Check Report</title>
<style>
body { font-family: sans-serif; margin: 2em; }
table { border-collapse: collapse; }
th, td { border: 1px solid #ccc; padding: 4px 8px; }
</style>
</head>
<body>
`

func renderHTML(w io.Writer, run *girder.Run) error {
	var body bytes.Buffer
	if err := markdownRenderer.Convert([]byte(Markdown(run)), &body); err != nil {
		return fmt.Errorf("failed to render html: %w", err)
	}

	var b bytes.Buffer
	b.WriteString(htmlHead)
	b.Write(body.Bytes())
	b.WriteString("</body>\n</html>\n")
	_, err := w.Write(b.Bytes())
	return err
}
