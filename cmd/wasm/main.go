//go:build js && wasm

package main

import (
	"context"
	"log/slog"

	jsdom "honnef.co/go/js/dom/v2"

	"schedupload/internal/controller"
	"schedupload/internal/dom"
	"schedupload/internal/logging"
	"schedupload/internal/page"
	"schedupload/internal/upload"
)

func main() {
	logger := logging.Init()
	doc := jsdom.GetWindow().Document()

	dom.WhenReady(doc, func() {
		regions, err := dom.Lookup(doc)
		if err != nil {
			logger.Error("upload form not bound", logging.Err(err))
			return
		}

		endpoint := regions.Form.Attr(page.EndpointAttr)
		if endpoint == "" {
			endpoint = upload.DefaultEndpoint
		}
		endpoint = dom.ResolveURL(endpoint)

		up := upload.NewClient(endpoint, upload.WithLogger(logger))
		ctrl := controller.New(up, regions.Form, regions.Spinner, regions.Messages, controller.WithLogger(logger))
		dom.Bind(context.Background(), regions, ctrl)

		logger.Info("upload form bound", slog.String("endpoint", endpoint))
	})

	// Keep the runtime alive for event callbacks.
	select {}
}
