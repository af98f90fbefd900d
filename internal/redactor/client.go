// Package redactor provides the HTTP client for the remote redaction
// service. The service owns the heavy lifting (PII detection, OCR, PDF
// rewriting); this client only ships documents to it and interprets its
// answers.
package redactor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/hackatronbits/Team-Encryptors/internal/config"
)

const redactPath = "/redact-pdf/"

// Client talks to the redaction service. It is safe for concurrent use.
type Client struct {
	apiURL     string
	staticBase string
	http       *http.Client
}

// New creates a Client from cfg. A RequestTimeout of zero leaves requests
// bounded only by the caller's context.
func New(cfg config.Redactor) *Client {
	return &Client{
		apiURL:     strings.TrimRight(cfg.APIURL, "/"),
		staticBase: strings.TrimRight(cfg.StaticBase, "/"),
		http: &http.Client{
			Timeout: cfg.RequestTimeout,
		},
	}
}

// Options carries the optional advanced-mode form fields. The zero value
// keeps the request payload down to the single file part the service
// expects by default.
type Options struct {
	Mode       string   // "default" or "advanced"
	Exclusions []string // terms the service must leave unredacted
}

// Result is the service's answer to an accepted document.
type Result struct {
	Filename    string // name of the produced file, as served by the service
	UsedOCR     bool   // the document needed OCR, accuracy may vary
	DownloadURL string // where the produced file can be fetched from
}

// Redact submits the document read from r as a multipart upload named
// filename and returns the service's verdict. A response with a 2xx status
// but no produced filename is reported as ErrMissingFilename.
func (c *Client) Redact(ctx context.Context, r io.Reader, filename string, opts Options) (*Result, error) {
	body := &bytes.Buffer{}

	mw := multipart.NewWriter(body)
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("redact: build form: %w", err)
	}

	if _, err = io.Copy(part, r); err != nil {
		return nil, fmt.Errorf("redact: read %q: %w", filename, err)
	}

	if opts.Mode != "" {
		if err = mw.WriteField("redaction_type", opts.Mode); err != nil {
			return nil, fmt.Errorf("redact: build form: %w", err)
		}
	}

	if len(opts.Exclusions) > 0 {
		if err = mw.WriteField("exclusions", strings.Join(opts.Exclusions, ",")); err != nil {
			return nil, fmt.Errorf("redact: build form: %w", err)
		}
	}

	if err = mw.Close(); err != nil {
		return nil, fmt.Errorf("redact: build form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL+redactPath, body)
	if err != nil {
		return nil, fmt.Errorf("redact: request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("redact: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("redact: status %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
	}

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("redact: read response: %w", err)
	}

	var result struct {
		Filename string `json:"filename"`
		UsedOCR  bool   `json:"used_ocr"`
	}
	if err = json.Unmarshal(b, &result); err != nil || result.Filename == "" {
		return nil, ErrMissingFilename
	}

	return &Result{
		Filename:    result.Filename,
		UsedOCR:     result.UsedOCR,
		DownloadURL: c.DownloadURL(result.Filename),
	}, nil
}

// RedactFile submits the file at path under its base name.
func (c *Client) RedactFile(ctx context.Context, path string, opts Options) (*Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("redact: open %q: %w", path, err)
	}
	defer f.Close()

	return c.Redact(ctx, f, filepath.Base(path), opts)
}

// DownloadURL derives the public URL of a produced file: the static base
// followed by the filename the service reported.
func (c *Client) DownloadURL(filename string) string {
	return c.staticBase + "/" + filename
}

// Download fetches the produced file and writes it into destDir under its
// service-reported name. It returns the local path.
func (c *Client) Download(ctx context.Context, filename, destDir string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.DownloadURL(filename), nil)
	if err != nil {
		return "", fmt.Errorf("download: request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("download: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("download: status %d", resp.StatusCode)
	}

	path := filepath.Join(destDir, filepath.Base(filename))

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("download: create %q: %w", path, err)
	}
	defer f.Close()

	if _, err = io.Copy(f, resp.Body); err != nil {
		return "", fmt.Errorf("download: write %q: %w", path, err)
	}

	return path, nil
}

// Health pings the service root. A healthy service answers 200 with its
// banner.
func (c *Client) Health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apiURL+"/", nil)
	if err != nil {
		return fmt.Errorf("health: request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("health: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health: status %d", resp.StatusCode)
	}

	return nil
}
