package page

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender(t *testing.T) {
	var buf bytes.Buffer
	err := Render(&buf, Data{
		Title:          "Upload Your Schedule",
		SheetDefault:   "GENERAL SCHEDULE",
		UploadEndpoint: "/upload",
		StaticPrefix:   "/static",
		Bundle:         "main.wasm",
	})
	require.NoError(t, err)

	html := buf.String()
	assert.Contains(t, html, `<form id="uploadForm" data-upload-endpoint="/upload"`)
	assert.Contains(t, html, `id="spinner-container"`)
	assert.Contains(t, html, `style="display: none"`)
	assert.Contains(t, html, `<div id="message-area"`)
	assert.Contains(t, html, `name="file"`)
	assert.Contains(t, html, `value="GENERAL SCHEDULE"`)
	assert.Contains(t, html, `<script src="/static/wasm_exec.js">`)
	assert.Contains(t, html, "<title>Upload Your Schedule</title>")
}

func TestRender_EscapesConfig(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, Data{Title: `<b>x</b>`, UploadEndpoint: `/up"load`}))

	html := buf.String()
	assert.NotContains(t, html, "<b>x</b>")
	assert.NotContains(t, html, `/up"load`)
}
