// Package form holds the per-submission snapshot of an upload form and its
// multipart encoding.
package form

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"
	"strings"
)

// ErrEmptyName rejects an entry without a field name.
var ErrEmptyName = errors.New("field name is required")

// File is the content of a file input captured at submit time.
type File struct {
	Filename    string
	ContentType string
	Content     []byte
}

// Entry is one form field. Exactly one of Value or File is meaningful.
type Entry struct {
	Name  string
	Value string
	File  *File
}

// IsFile reports whether the entry came from a file input.
func (e Entry) IsFile() bool { return e.File != nil }

// Payload is an ordered snapshot of form fields, including file contents.
// It is built fresh for every submission and owned by the request that sends it.
type Payload struct {
	entries []Entry
}

// Source produces a payload for one submission.
// The browser adapter reads file bytes lazily, hence the context.
type Source interface {
	Snapshot(ctx context.Context) (*Payload, error)
}

// NewPayload returns an empty payload.
func NewPayload() *Payload {
	return &Payload{}
}

// AddField appends a text field.
func (p *Payload) AddField(name, value string) error {
	if name == "" {
		return ErrEmptyName
	}
	p.entries = append(p.entries, Entry{Name: name, Value: value})
	return nil
}

// AddFile appends a file field. An empty content type is sent as application/octet-stream.
func (p *Payload) AddFile(name, filename, contentType string, content []byte) error {
	if name == "" {
		return ErrEmptyName
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	p.entries = append(p.entries, Entry{
		Name: name,
		File: &File{Filename: filename, ContentType: contentType, Content: content},
	})
	return nil
}

// Entries returns a copy of the entries in insertion order.
func (p *Payload) Entries() []Entry {
	out := make([]Entry, len(p.entries))
	copy(out, p.entries)
	return out
}

// Len returns the number of entries.
func (p *Payload) Len() int { return len(p.entries) }

// Snapshot lets a ready-made payload act as its own Source.
func (p *Payload) Snapshot(context.Context) (*Payload, error) {
	return p, nil
}

// Encode writes the payload as multipart/form-data and returns the body and
// its Content-Type, boundary included.
func (p *Payload) Encode() (io.Reader, string, error) {
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)

	for _, e := range p.entries {
		if !e.IsFile() {
			if err := w.WriteField(e.Name, e.Value); err != nil {
				return nil, "", fmt.Errorf("write field %q: %w", e.Name, err)
			}
			continue
		}

		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
			escapeQuotes(e.Name), escapeQuotes(e.File.Filename)))
		h.Set("Content-Type", e.File.ContentType)
		part, err := w.CreatePart(h)
		if err != nil {
			return nil, "", fmt.Errorf("create part %q: %w", e.Name, err)
		}
		if _, err := part.Write(e.File.Content); err != nil {
			return nil, "", fmt.Errorf("write file %q: %w", e.File.Filename, err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("close multipart writer: %w", err)
	}
	return body, w.FormDataContentType(), nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}
