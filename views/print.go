package views

import (
	"embed"
	"html/template"
	"io"
)

//go:embed templates/*.gohtml
var templatesFS embed.FS

var printTmpl = template.Must(template.ParseFS(templatesFS, "templates/print.gohtml"))

// PrintData is the printable attendance record.
type PrintData struct {
	Institution string
	Faculty     string
	Page        Page
}

// RenderPrint writes a standalone HTML page that opens the browser's print dialog.
func RenderPrint(w io.Writer, data PrintData) error {
	return printTmpl.Execute(w, data)
}
