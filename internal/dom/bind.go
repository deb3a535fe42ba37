//go:build js && wasm

package dom

import (
	"context"
	"syscall/js"

	jsdom "honnef.co/go/js/dom/v2"

	"schedupload/internal/controller"
	"schedupload/internal/form"
)

// inFlight stands in for the form while a submission is pending; the
// controller rejects the submit before reading it.
type inFlight struct{}

func (inFlight) Snapshot(context.Context) (*form.Payload, error) {
	return nil, controller.ErrSubmissionInFlight
}

// Bind registers the controller as the form's submit handler and returns a
// function that removes it.
//
// The callback only prevents the default action, captures FormData and
// enters Submitting; the upload itself runs on another goroutine because a
// js.FuncOf callback must not block.
func Bind(ctx context.Context, r Regions, c *controller.Controller) (release func()) {
	listener := r.Form.el.AddEventListener("submit", false, func(ev jsdom.Event) {
		var src form.Source = inFlight{}
		if c.State() != controller.StateSubmitting {
			src = NewFormData(r.Form)
		}
		c.HandleSubmit(ctx, Event{ev: ev}, src)
	})

	return func() {
		r.Form.el.RemoveEventListener("submit", false, listener)
		listener.Release()
	}
}

// WhenReady runs fn once the document has been parsed.
func WhenReady(doc jsdom.Document, fn func()) {
	if doc.Underlying().Get("readyState").String() != "loading" {
		fn()
		return
	}
	var listener js.Func
	listener = doc.AddEventListener("DOMContentLoaded", false, func(jsdom.Event) {
		doc.RemoveEventListener("DOMContentLoaded", false, listener)
		listener.Release()
		fn()
	})
}

// ResolveURL resolves ref against the page location, as fetch would.
func ResolveURL(ref string) string {
	base := js.Global().Get("location").Get("href")
	return js.Global().Get("URL").New(ref, base).Call("toString").String()
}
