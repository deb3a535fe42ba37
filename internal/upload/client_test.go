package upload

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schedupload/internal/form"
)

func schedulePayload(t *testing.T) *form.Payload {
	t.Helper()
	p := form.NewPayload()
	require.NoError(t, p.AddFile("file", "schedule.csv", "text/csv", []byte("course,room\nMATH101,B12\n")))
	require.NoError(t, p.AddField("sheet", "GENERAL SCHEDULE"))
	return p
}

func TestClient_Upload(t *testing.T) {
	t.Run("success posts multipart to /upload", func(t *testing.T) {
		var gotMethod, gotPath, gotFile, gotFilename, gotSheet string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotMethod = r.Method
			gotPath = r.URL.Path

			f, fh, err := r.FormFile("file")
			if err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			defer f.Close()
			b, _ := io.ReadAll(f)
			gotFile = string(b)
			gotFilename = fh.Filename
			gotSheet = r.FormValue("sheet")

			_, _ = io.WriteString(w, "File successfully processed!")
		}))
		defer srv.Close()

		c := NewClient(srv.URL + DefaultEndpoint)
		res, err := c.Upload(context.Background(), schedulePayload(t))

		require.NoError(t, err)
		assert.Equal(t, http.MethodPost, gotMethod)
		assert.Equal(t, "/upload", gotPath)
		assert.Equal(t, "schedule.csv", gotFilename)
		assert.Equal(t, "course,room\nMATH101,B12\n", gotFile)
		assert.Equal(t, "GENERAL SCHEDULE", gotSheet)
		assert.Equal(t, http.StatusOK, res.StatusCode)
		assert.Equal(t, "File successfully processed!", res.Body)
	})

	t.Run("only content type header is set", func(t *testing.T) {
		var ct string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ct = r.Header.Get("Content-Type")
			w.WriteHeader(http.StatusCreated)
		}))
		defer srv.Close()

		res, err := NewClient(srv.URL).Upload(context.Background(), schedulePayload(t))

		require.NoError(t, err)
		assert.Equal(t, http.StatusCreated, res.StatusCode)
		assert.True(t, strings.HasPrefix(ct, "multipart/form-data; boundary="))
	})

	t.Run("non-2xx collapses to generic error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "Invalid file type. Please upload an Excel file.", http.StatusInternalServerError)
		}))
		defer srv.Close()

		res, err := NewClient(srv.URL).Upload(context.Background(), schedulePayload(t))

		assert.Nil(t, res)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrResponseNotOK)
		assert.Equal(t, "Network response was not ok", err.Error())

		var se *StatusError
		require.True(t, errors.As(err, &se))
		assert.Equal(t, http.StatusInternalServerError, se.StatusCode)
	})

	t.Run("any 2xx is success", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		}))
		defer srv.Close()

		res, err := NewClient(srv.URL).Upload(context.Background(), schedulePayload(t))
		require.NoError(t, err)
		assert.Equal(t, http.StatusNoContent, res.StatusCode)
		assert.Empty(t, res.Body)
	})

	t.Run("transport error", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		url := srv.URL
		srv.Close()

		res, err := NewClient(url).Upload(context.Background(), schedulePayload(t))

		assert.Nil(t, res)
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrResponseNotOK)
		assert.NotEmpty(t, err.Error())
	})

	t.Run("nil payload", func(t *testing.T) {
		_, err := NewClient("http://unused").Upload(context.Background(), nil)
		assert.ErrorIs(t, err, ErrPayloadNil)
	})
}

func TestNewClient_DefaultEndpoint(t *testing.T) {
	assert.Equal(t, DefaultEndpoint, NewClient("").Endpoint())

	hc := &http.Client{}
	c := NewClient("https://example.com/upload", WithHTTPClient(hc))
	assert.Equal(t, "https://example.com/upload", c.Endpoint())
	assert.Same(t, hc, c.http)
}
