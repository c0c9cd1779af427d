// Package upload forwards submitted files to the external processing
// endpoint that performs the actual cloud storage upload. The endpoint
// accepts a form-encoded POST carrying the shared API key and a base64
// payload, and answers with a stored-file identifier.
package upload

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/nucesstack/notestack/internal/pkg/apperrors"
	"github.com/nucesstack/notestack/internal/pkg/logger"
)

// Request describes a file handed to the external endpoint together
// with its submission metadata.
type Request struct {
	Content    []byte
	Filename   string
	MimeType   string
	Title      string
	SemesterID int64
	SubjectID  int64
	Uploader   string
}

// Result is the upstream response on success.
type Result struct {
	FileID      string
	WebViewLink string
}

// webhookResponse mirrors the endpoint's JSON body.
type webhookResponse struct {
	Success     bool   `json:"success"`
	FileID      string `json:"fileId"`
	WebViewLink string `json:"webViewLink"`
	Message     string `json:"message"`
}

// Forwarder sends file payloads upstream.
type Forwarder interface {
	Forward(ctx context.Context, req Request) (*Result, error)
}

// Client is the HTTP Forwarder against the configured webhook.
type Client struct {
	endpoint string
	apiKey   string
	http     *http.Client
}

// NewClient creates a Client. The timeout bounds the whole upstream
// call; on expiry the caller sees an upstream failure, not a hang.
func NewClient(endpoint, apiKey string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		endpoint: endpoint,
		apiKey:   apiKey,
		http:     &http.Client{Timeout: timeout},
	}
}

// Forward encodes the file as base64, POSTs it with the shared API key,
// and returns the stored-file identifier. Non-2xx status, a falsy
// success flag, or a missing fileId all surface as ErrUpstreamUpload.
func (c *Client) Forward(ctx context.Context, req Request) (*Result, error) {
	form := url.Values{}
	form.Set("key", c.apiKey)
	form.Set("file", base64.StdEncoding.EncodeToString(req.Content))
	form.Set("filename", req.Filename)
	form.Set("mimeType", req.MimeType)
	form.Set("title", req.Title)
	form.Set("semester_id", strconv.FormatInt(req.SemesterID, 10))
	form.Set("subject_id", strconv.FormatInt(req.SubjectID, 10))
	form.Set("uploader", req.Uploader)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, apperrors.NewUpstreamError(fmt.Sprintf("building upload request: %v", err))
	}
	httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		logger.Error().Err(err).Str("endpoint", c.endpoint).Msg("Upload webhook call failed")
		return nil, apperrors.NewUpstreamError(fmt.Sprintf("upload endpoint unreachable: %v", err))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, apperrors.NewUpstreamError(fmt.Sprintf("reading upload response: %v", err))
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		logger.Error().Int("status", resp.StatusCode).Str("endpoint", c.endpoint).Msg("Upload webhook returned non-2xx status")
		return nil, apperrors.NewUpstreamError(fmt.Sprintf("upload endpoint returned %d", resp.StatusCode))
	}

	var parsed webhookResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, apperrors.NewUpstreamError(fmt.Sprintf("malformed upload response: %v", err))
	}
	if !parsed.Success {
		logger.Error().Str("message", parsed.Message).Msg("Upload webhook reported failure")
		return nil, apperrors.NewUpstreamError(fmt.Sprintf("upload endpoint error: %s", parsed.Message))
	}
	if parsed.FileID == "" {
		return nil, apperrors.NewUpstreamError("upload endpoint returned no fileId")
	}

	return &Result{FileID: parsed.FileID, WebViewLink: parsed.WebViewLink}, nil
}
