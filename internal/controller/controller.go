// Package controller bridges an upload form submission to a single network
// upload and reflects the outcome in three page regions.
package controller

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"sync"

	"schedupload/internal/form"
	"schedupload/internal/logging"
	"schedupload/internal/upload"
)

// ErrSubmissionInFlight rejects a submission made while another is still Submitting.
var ErrSubmissionInFlight = errors.New("a submission is already in flight")

// Event is the submit event delivered by the page.
type Event interface {
	PreventDefault()
}

// SubmitControl is the form element; its submit controls are disabled while Submitting.
type SubmitControl interface {
	SetSubmitEnabled(enabled bool)
}

// Spinner is the loading indicator region.
type Spinner interface {
	SetVisible(visible bool)
}

// MessageArea is the region replaced with the success or error block.
type MessageArea interface {
	SetHTML(html template.HTML)
}

// Controller drives the Idle -> Submitting -> Success|Failure cycle of one form.
// It is safe for concurrent use.
type Controller struct {
	uploader upload.Uploader
	form     SubmitControl
	spinner  Spinner
	messages MessageArea
	logger   *slog.Logger

	mu    sync.Mutex
	state State
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the controller logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) { c.logger = l }
}

// New wires a controller to the uploader and the three page regions and
// renders the Idle frame.
func New(up upload.Uploader, f SubmitControl, spinner Spinner, messages MessageArea, opts ...Option) *Controller {
	c := &Controller{
		uploader: up,
		form:     f,
		spinner:  spinner,
		messages: messages,
		logger:   slog.Default(),
		state:    StateIdle,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.apply(RenderState(StateIdle, nil))
	return c
}

// State returns the current UI state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// HandleSubmit is the submit event handler. The default action is always
// suppressed and the Submitting frame is applied before it returns; the
// upload then runs in the background. The returned channel yields the
// outcome once and is closed.
func (c *Controller) HandleSubmit(ctx context.Context, ev Event, src form.Source) <-chan error {
	ev.PreventDefault()

	done := make(chan error, 1)
	if err := c.begin(ctx); err != nil {
		done <- err
		close(done)
		return done
	}

	go func() {
		defer close(done)
		done <- c.run(ctx, src)
	}()
	return done
}

// Submit runs one full cycle and blocks until the upload resolves.
func (c *Controller) Submit(ctx context.Context, src form.Source) error {
	if err := c.begin(ctx); err != nil {
		return err
	}
	return c.run(ctx, src)
}

func (c *Controller) begin(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == StateSubmitting {
		c.logger.DebugContext(ctx, "submission rejected", "state", c.state.String())
		return ErrSubmissionInFlight
	}
	c.state = StateSubmitting
	c.applyLocked(RenderState(StateSubmitting, nil))
	c.logger.InfoContext(ctx, "upload submitted")
	return nil
}

func (c *Controller) run(ctx context.Context, src form.Source) error {
	payload, err := src.Snapshot(ctx)
	if err != nil {
		err = fmt.Errorf("read form: %w", err)
	} else {
		_, err = c.uploader.Upload(ctx, payload)
	}
	c.finish(ctx, err)
	return err
}

func (c *Controller) finish(ctx context.Context, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err != nil {
		c.state = StateFailure
		c.logger.WarnContext(ctx, "upload failed", logging.Err(err))
	} else {
		c.state = StateSuccess
		c.logger.InfoContext(ctx, "upload succeeded")
	}
	c.applyLocked(RenderState(c.state, err))
}

func (c *Controller) apply(f Frame) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.applyLocked(f)
}

func (c *Controller) applyLocked(f Frame) {
	c.spinner.SetVisible(f.SpinnerVisible)
	c.messages.SetHTML(f.Message)
	c.form.SetSubmitEnabled(f.SubmitEnabled)
}
