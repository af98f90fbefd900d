// Package cli implements the terminal surfaces of the redaction client: the
// upload/redact controller, its renderer and the interactive shell. The
// controller never talks to the service directly, it drives a
// DocumentRedactor and settles every outcome into its own state.
package cli

import (
	"context"
	"errors"
	"log/slog"
	"path"

	"github.com/hackatronbits/Team-Encryptors/internal/redactor"
)

// User-facing notices. The wording is part of the UI contract.
const (
	NoticeNoFile    = "Please upload a PDF first."
	NoticeBusy      = "A redaction is already in progress."
	NoticeBadAnswer = "Something went wrong. Please try again."
	NoticeFailed    = "Failed to process the PDF."
)

// State is everything the surfaces render from. The zero value is the idle
// screen: nothing selected, nothing produced, no request running.
type State struct {
	Selected  string // path of the chosen document, empty when none
	ResultURL string // download URL of the last produced file, empty when none
	UsedOCR   bool   // the last produced file needed OCR
	InFlight  bool   // a submit is running right now
	Notice    string // non-blocking status line, empty when all is well
}

// Controller owns the upload/redact interaction. It processes one event at
// a time: both the shell and the one-shot command drive it sequentially.
type Controller struct {
	log      *slog.Logger
	redactor DocumentRedactor
	opts     redactor.Options
	state    State
}

func NewController(log *slog.Logger, r DocumentRedactor, opts redactor.Options) *Controller {
	return &Controller{
		log:      log,
		redactor: r,
		opts:     opts,
	}
}

// State returns a snapshot for rendering.
func (c *Controller) State() State {
	return c.state
}

// Select remembers path as the document to submit next. A previous result
// stays visible until a new submit settles over it.
func (c *Controller) Select(path string) {
	c.state.Selected = path
	c.state.Notice = ""
}

// Submit ships the current selection to the service and settles the state
// with either a download URL or a notice. Every failure is absorbed here;
// callers only re-render.
//
// While a request is outstanding InFlight is true and another Submit is
// rejected without touching the network.
func (c *Controller) Submit(ctx context.Context) {
	if c.state.InFlight {
		c.state.Notice = NoticeBusy
		return
	}

	if c.state.Selected == "" {
		c.state.Notice = NoticeNoFile
		return
	}

	c.state.InFlight = true
	defer func() { c.state.InFlight = false }()

	c.log.InfoContext(ctx, "submitting document", slog.String("file", c.state.Selected))

	result, err := c.redactor.RedactFile(ctx, c.state.Selected, c.opts)
	switch {
	case errors.Is(err, redactor.ErrMissingFilename):
		c.log.ErrorContext(ctx, "service answered without a produced filename", slog.String("file", c.state.Selected))
		c.state.Notice = NoticeBadAnswer

	case err != nil:
		c.log.ErrorContext(ctx, "failed to redact document",
			slog.String("file", c.state.Selected),
			slog.String("err", err.Error()),
		)
		c.state.Notice = NoticeFailed

	default:
		c.log.InfoContext(ctx, "document redacted",
			slog.String("file", c.state.Selected),
			slog.String("result", result.Filename),
			slog.Bool("used_ocr", result.UsedOCR),
		)
		c.state.ResultURL = result.DownloadURL
		c.state.UsedOCR = result.UsedOCR
		c.state.Notice = ""
	}
}

// Download fetches the produced file from the current result into destDir
// and returns the local path.
func (c *Controller) Download(ctx context.Context, destDir string) (string, error) {
	if c.state.ResultURL == "" {
		return "", errors.New("nothing to download yet")
	}

	// The URL is the static base plus the produced filename, so the last
	// path segment is the name the service serves it under.
	return c.redactor.Download(ctx, path.Base(c.state.ResultURL), destDir)
}
