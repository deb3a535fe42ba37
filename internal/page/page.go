// Package page renders the hosting page that carries the upload form and
// loads the WASM controller.
package page

import (
	"html/template"
	"io"
)

// Element ids shared by the page template and the browser adapter.
const (
	FormID    = "uploadForm"
	SpinnerID = "spinner-container"
	MessageID = "message-area"

	// EndpointAttr is read by the adapter to find the upload endpoint.
	EndpointAttr = "data-upload-endpoint"
)

// Data is the view model of the index page.
type Data struct {
	Title          string
	SheetDefault   string
	UploadEndpoint string
	StaticPrefix   string
	Bundle         string
}

var indexTmpl = template.Must(template.New("index").Parse(`<!doctype html>
<html lang="en">
  <head>
    <meta charset="utf-8" />
    <meta name="viewport" content="width=device-width, initial-scale=1" />
    <title>{{.Data.Title}}</title>
    <link rel="stylesheet" href="https://cdn.jsdelivr.net/npm/bootstrap@5.3.3/dist/css/bootstrap.min.css" />
  </head>
  <body class="container py-4">
    <h1 class="mb-4">{{.Data.Title}}</h1>
    <form id="{{.FormID}}" data-upload-endpoint="{{.Data.UploadEndpoint}}" enctype="multipart/form-data">
      <div class="mb-3">
        <label for="file" class="form-label">Schedule file</label>
        <input class="form-control" type="file" id="file" name="file" accept=".xlsx,.xls,.csv" />
      </div>
      <div class="mb-3">
        <label for="sheet" class="form-label">Sheet name</label>
        <input class="form-control" type="text" id="sheet" name="sheet" value="{{.Data.SheetDefault}}" />
      </div>
      <button class="btn btn-primary" type="submit">Upload</button>
    </form>
    <div id="{{.SpinnerID}}" class="mt-3" style="display: none">
      <div class="spinner-border" role="status"><span class="visually-hidden">Loading...</span></div>
    </div>
    <div id="{{.MessageID}}" class="mt-3"></div>
    <script src="{{.Data.StaticPrefix}}/wasm_exec.js"></script>
    <script>
      const go = new Go();
      WebAssembly.instantiateStreaming(fetch("{{.Data.StaticPrefix}}/{{.Data.Bundle}}"), go.importObject)
        .then((result) => go.run(result.instance));
    </script>
  </body>
</html>
`))

type view struct {
	Data      Data
	FormID    string
	SpinnerID string
	MessageID string
}

// Render writes the index page.
func Render(w io.Writer, d Data) error {
	return indexTmpl.Execute(w, view{
		Data:      d,
		FormID:    FormID,
		SpinnerID: SpinnerID,
		MessageID: MessageID,
	})
}
