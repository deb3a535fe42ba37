//go:build js && wasm

// Package dom binds the upload controller to the hosting page's elements.
package dom

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"syscall/js"

	jsdom "honnef.co/go/js/dom/v2"

	"schedupload/internal/form"
	"schedupload/internal/page"
)

// ErrElementNotFound is returned when one of the page elements is absent.
var ErrElementNotFound = errors.New("element not found")

const submitControls = `button[type="submit"], input[type="submit"]`

// Element wraps a DOM element.
type Element struct {
	el jsdom.Element
}

// ByID looks up an element by id.
func ByID(doc jsdom.Document, id string) (Element, error) {
	el := doc.GetElementByID(id)
	if el == nil || el.Underlying().IsNull() {
		return Element{}, fmt.Errorf("%w: #%s", ErrElementNotFound, id)
	}
	return Element{el: el}, nil
}

// Attr returns the attribute value, or "" when unset.
func (e Element) Attr(name string) string {
	if !e.el.HasAttribute(name) {
		return ""
	}
	return e.el.GetAttribute(name)
}

// Spinner toggles the spinner container's display style.
type Spinner struct {
	el jsdom.HTMLElement
}

func (s Spinner) SetVisible(visible bool) {
	display := "none"
	if visible {
		display = "block"
	}
	s.el.Style().SetProperty("display", display, "")
}

// MessageArea replaces its inner HTML.
type MessageArea struct{ Element }

func (m MessageArea) SetHTML(html template.HTML) {
	m.el.SetInnerHTML(string(html))
}

// Form toggles the submit controls of the form element.
type Form struct{ Element }

func (f Form) SetSubmitEnabled(enabled bool) {
	for _, ctl := range f.el.QuerySelectorAll(submitControls) {
		if enabled {
			ctl.RemoveAttribute("disabled")
		} else {
			ctl.SetAttribute("disabled", "")
		}
	}
}

// Regions are the three elements the controller drives.
type Regions struct {
	Form     Form
	Spinner  Spinner
	Messages MessageArea
}

// Lookup finds the form, spinner container and message area by their fixed ids.
func Lookup(doc jsdom.Document) (Regions, error) {
	f, err := ByID(doc, page.FormID)
	if err != nil {
		return Regions{}, err
	}
	s, err := ByID(doc, page.SpinnerID)
	if err != nil {
		return Regions{}, err
	}
	spinner, ok := s.el.(jsdom.HTMLElement)
	if !ok {
		return Regions{}, fmt.Errorf("#%s is not an HTML element", page.SpinnerID)
	}
	m, err := ByID(doc, page.MessageID)
	if err != nil {
		return Regions{}, err
	}
	return Regions{Form: Form{f}, Spinner: Spinner{el: spinner}, Messages: MessageArea{m}}, nil
}

// Event wraps a DOM event.
type Event struct{ ev jsdom.Event }

func (e Event) PreventDefault() { e.ev.PreventDefault() }

// FormData is a FormData captured synchronously at submit time. File bytes are
// read when Snapshot runs.
//
// The typed bindings do not cover FormData or promises, so this part talks to
// syscall/js directly.
type FormData struct{ v js.Value }

// NewFormData captures the form's current field values.
func NewFormData(f Form) FormData {
	return FormData{v: js.Global().Get("FormData").New(f.el.Underlying())}
}

// Snapshot converts the captured FormData into a payload, reading each file's
// bytes. It must not run on the event callback goroutine: reading files waits
// on promises.
func (d FormData) Snapshot(ctx context.Context) (*form.Payload, error) {
	p := form.NewPayload()
	it := d.v.Call("entries")
	for {
		next := it.Call("next")
		if next.Get("done").Bool() {
			break
		}
		pair := next.Get("value")
		name, value := pair.Index(0).String(), pair.Index(1)

		if value.Type() == js.TypeString {
			if err := p.AddField(name, value.String()); err != nil {
				return nil, err
			}
			continue
		}

		buf, err := Await(ctx, value.Call("arrayBuffer"))
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", value.Get("name").String(), err)
		}
		u8 := js.Global().Get("Uint8Array").New(buf)
		content := make([]byte, u8.Length())
		js.CopyBytesToGo(content, u8)

		if err := p.AddFile(name, value.Get("name").String(), value.Get("type").String(), content); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// Await blocks until the promise settles or ctx is done.
func Await(ctx context.Context, promise js.Value) (js.Value, error) {
	resolved := make(chan js.Value, 1)
	rejected := make(chan js.Value, 1)

	onResolve := js.FuncOf(func(_ js.Value, args []js.Value) any {
		resolved <- argOrUndefined(args)
		return nil
	})
	defer onResolve.Release()
	onReject := js.FuncOf(func(_ js.Value, args []js.Value) any {
		rejected <- argOrUndefined(args)
		return nil
	})
	defer onReject.Release()

	promise.Call("then", onResolve, onReject)

	select {
	case v := <-resolved:
		return v, nil
	case reason := <-rejected:
		// String() accepts undefined and null reasons.
		return js.Undefined(), errors.New(js.Global().Get("String").Invoke(reason).String())
	case <-ctx.Done():
		return js.Undefined(), ctx.Err()
	}
}

func argOrUndefined(args []js.Value) js.Value {
	if len(args) == 0 {
		return js.Undefined()
	}
	return args[0]
}
