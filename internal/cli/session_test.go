package cli_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hackatronbits/Team-Encryptors/internal/cli"
	"github.com/hackatronbits/Team-Encryptors/internal/redactor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSession_SelectRedactDownload(t *testing.T) {
	t.Parallel()

	doc := filepath.Join(t.TempDir(), "report.pdf")
	require.NoError(t, os.WriteFile(doc, []byte("%PDF-1.7"), 0o644))

	svc := &fakeService{result: &redactor.Result{
		Filename:    "report_redacted.pdf",
		UsedOCR:     true,
		DownloadURL: "http://localhost:8000/static/report_redacted.pdf",
	}}

	ctrl := cli.NewController(slog.New(slog.DiscardHandler), svc, redactor.Options{})

	script := strings.Join([]string{
		"select " + doc,
		"redact",
		"download",
		"exit",
	}, "\n")

	var out bytes.Buffer
	sess := cli.NewSession(ctrl, svc, t.TempDir(), strings.NewReader(script), &out)
	require.NoError(t, sess.Run(context.Background()))

	assert.Equal(t, 1, svc.redacts)
	assert.Equal(t, doc, svc.lastPath)
	assert.Equal(t, []string{"report_redacted.pdf"}, svc.downloads)

	assert.Contains(t, out.String(), "Selected file: "+doc)
	assert.Contains(t, out.String(), "Processing...")
	assert.Contains(t, out.String(), "Download Redacted PDF: http://localhost:8000/static/report_redacted.pdf")
	assert.Contains(t, out.String(), "OCR was used")
	assert.Contains(t, out.String(), "Saved to")
	assert.Contains(t, out.String(), "Bye!")
}

func TestSession_RedactWithoutSelection(t *testing.T) {
	t.Parallel()

	svc := &fakeService{}
	ctrl := cli.NewController(slog.New(slog.DiscardHandler), svc, redactor.Options{})

	var out bytes.Buffer
	sess := cli.NewSession(ctrl, svc, t.TempDir(), strings.NewReader("redact\nexit\n"), &out)
	require.NoError(t, sess.Run(context.Background()))

	assert.Equal(t, 0, svc.redacts)
	assert.Contains(t, out.String(), "Please upload a PDF first.")
	assert.NotContains(t, out.String(), "Processing...")
}

func TestSession_SelectMissingFile(t *testing.T) {
	t.Parallel()

	svc := &fakeService{}
	ctrl := cli.NewController(slog.New(slog.DiscardHandler), svc, redactor.Options{})

	missing := filepath.Join(t.TempDir(), "gone.pdf")

	var out bytes.Buffer
	sess := cli.NewSession(ctrl, svc, t.TempDir(), strings.NewReader("select "+missing+"\nexit\n"), &out)
	require.NoError(t, sess.Run(context.Background()))

	assert.Contains(t, out.String(), "No such file:")
	assert.Empty(t, ctrl.State().Selected)
}

func TestSession_Health(t *testing.T) {
	t.Parallel()

	svc := &fakeService{}
	ctrl := cli.NewController(slog.New(slog.DiscardHandler), svc, redactor.Options{})

	var out bytes.Buffer
	sess := cli.NewSession(ctrl, svc, t.TempDir(), strings.NewReader("health\nexit\n"), &out)
	require.NoError(t, sess.Run(context.Background()))

	assert.Contains(t, out.String(), "Service is up.")

	svc.healthErr = errors.New("connection refused")

	out.Reset()
	sess = cli.NewSession(ctrl, svc, t.TempDir(), strings.NewReader("health\nexit\n"), &out)
	require.NoError(t, sess.Run(context.Background()))

	assert.Contains(t, out.String(), "Service is unreachable:")
}

func TestSession_UnknownCommand(t *testing.T) {
	t.Parallel()

	svc := &fakeService{}
	ctrl := cli.NewController(slog.New(slog.DiscardHandler), svc, redactor.Options{})

	var out bytes.Buffer
	sess := cli.NewSession(ctrl, svc, t.TempDir(), strings.NewReader("frobnicate\nhelp\nexit\n"), &out)
	require.NoError(t, sess.Run(context.Background()))

	assert.Contains(t, out.String(), "Unknown command: frobnicate")
	assert.Contains(t, out.String(), "Available commands:")
}

func TestSession_EOFEndsRun(t *testing.T) {
	t.Parallel()

	svc := &fakeService{}
	ctrl := cli.NewController(slog.New(slog.DiscardHandler), svc, redactor.Options{})

	var out bytes.Buffer
	sess := cli.NewSession(ctrl, svc, t.TempDir(), strings.NewReader("status\n"), &out)
	require.NoError(t, sess.Run(context.Background()))

	assert.Contains(t, out.String(), "Selected file: none")
}
