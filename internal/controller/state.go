package controller

import (
	"bytes"
	"html/template"
)

// State is the UI state of the upload form.
type State int

const (
	StateIdle State = iota
	StateSubmitting
	StateSuccess
	StateFailure
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSubmitting:
		return "submitting"
	case StateSuccess:
		return "success"
	case StateFailure:
		return "failure"
	default:
		return "unknown"
	}
}

// Link is one entry of the success block.
type Link struct {
	Href string
	Text string
}

// SuccessLinks are shown after every successful upload. They point at the
// processing backend's fixed routes and do not depend on the response.
var SuccessLinks = []Link{
	{Href: "/view_instructor_chart", Text: "View instructor_chart"},
	{Href: "/view_room_chart", Text: "View room_chart"},
	{Href: "/download_processed", Text: "Download standardized schedule file"},
}

var successTmpl = template.Must(template.New("success").Parse(`<div class="alert alert-success">
  File processed successfully!<br />
  {{range $i, $l := .}}{{if eq $i 1}} &nbsp;|&nbsp;
  {{else if gt $i 1}}
  {{end}}<a href="{{$l.Href}}">{{$l.Text}}</a>{{end}}
</div>`))

var failureTmpl = template.Must(template.New("failure").Parse(`<div class="alert alert-danger">
  There was an error uploading the file: {{.}}
</div>`))

var successHTML = mustRender(successTmpl, SuccessLinks)

// Frame is what the three page regions show for a given state.
type Frame struct {
	SpinnerVisible bool
	SubmitEnabled  bool
	Message        template.HTML
}

// RenderState maps a state to its frame. cause is only read in StateFailure.
func RenderState(s State, cause error) Frame {
	switch s {
	case StateSubmitting:
		return Frame{SpinnerVisible: true}
	case StateSuccess:
		return Frame{SubmitEnabled: true, Message: successHTML}
	case StateFailure:
		text := "unknown error"
		if cause != nil {
			text = cause.Error()
		}
		return Frame{SubmitEnabled: true, Message: mustRender(failureTmpl, text)}
	default:
		return Frame{SubmitEnabled: true}
	}
}

// mustRender panics only on template bugs; the data types are fixed.
func mustRender(t *template.Template, data any) template.HTML {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		panic(err)
	}
	return template.HTML(buf.String())
}
