// internal/upload/client.go
package upload

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/hammyapp/hammy/internal/logutil"
)

// DefaultEndpoint is the hamster.is upload API.
const DefaultEndpoint = "https://hamster.is/api/1/upload"

// fieldName is the multipart field the API reads the payload from.
const fieldName = "source"

// Result carries the hosted link and encoded image id of a successful
// upload.
type Result struct {
	URL     string
	ImageID string
}

// Options tunes the client. The zero value gives production defaults:
// the hamster.is endpoint, 3 total attempts, library-default backoff.
type Options struct {
	Endpoint     string
	RetryMax     int
	RetryWaitMin time.Duration
	RetryWaitMax time.Duration
	Timeout      time.Duration
}

// Client posts image buffers to the hosting API with bounded retry on
// transient failures (429 and 5xx).
type Client struct {
	http     *retryablehttp.Client
	endpoint string
	apiKey   string
}

// NewClient builds an upload client for the given API key.
func NewClient(apiKey string, opts Options) *Client {
	if opts.Endpoint == "" {
		opts.Endpoint = DefaultEndpoint
	}
	if opts.RetryMax == 0 {
		opts.RetryMax = 2 // 1 initial + 2 retries
	}
	if opts.Timeout == 0 {
		opts.Timeout = 120 * time.Second
	}

	rc := retryablehttp.NewClient()
	rc.RetryMax = opts.RetryMax
	rc.Logger = nil
	// Hand back the final response once the retry budget runs out,
	// otherwise the server's error body never reaches parseError.
	rc.ErrorHandler = retryablehttp.PassthroughErrorHandler
	rc.HTTPClient.Timeout = opts.Timeout
	if opts.RetryWaitMin > 0 {
		rc.RetryWaitMin = opts.RetryWaitMin
	}
	if opts.RetryWaitMax > 0 {
		rc.RetryWaitMax = opts.RetryWaitMax
	}

	return &Client{http: rc, endpoint: opts.Endpoint, apiKey: apiKey}
}

// Upload posts data as a named file part and parses the API response.
// Failed uploads are logged with the offending filename before the
// error is returned, so the batch loop only has to skip the item.
func (c *Client) Upload(ctx context.Context, data []byte, filename string) (*Result, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile(fieldName, filename)
	if err != nil {
		return nil, fmt.Errorf("create form file: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return nil, fmt.Errorf("write form file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("close multipart writer: %w", err)
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, body.Bytes())
	if err != nil {
		return nil, fmt.Errorf("build upload request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("X-API-Key", c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		uerr := &UploadError{Message: err.Error(), File: filename}
		logutil.Errorf("%v", uerr)
		return nil, uerr
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read upload response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		uerr := parseError(raw, filename, resp.StatusCode)
		logutil.Errorf("%v", uerr)
		return nil, uerr
	}

	var parsed struct {
		Image struct {
			URL       string `json:"url"`
			IDEncoded string `json:"id_encoded"`
		} `json:"image"`
	}
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, &MalformedResponseError{File: filename, Err: err}
	}
	if parsed.Image.URL == "" || parsed.Image.IDEncoded == "" {
		return nil, &MalformedResponseError{File: filename, Err: fmt.Errorf("missing image.url or image.id_encoded")}
	}

	return &Result{URL: parsed.Image.URL, ImageID: parsed.Image.IDEncoded}, nil
}

// parseError extracts the server's error message: the message field of
// a JSON error object when present, otherwise the trimmed body text.
func parseError(raw []byte, filename string, status int) *UploadError {
	var parsed struct {
		Error map[string]any `json:"error"`
	}
	if err := json.Unmarshal(raw, &parsed); err == nil && parsed.Error != nil {
		if msg, ok := parsed.Error["message"].(string); ok && msg != "" {
			return &UploadError{Message: msg, File: filename, Status: status}
		}
		return &UploadError{Message: "no error message in JSON", File: filename, Status: status}
	}

	msg := strings.TrimSpace(string(raw))
	if msg == "" {
		msg = "no error message"
	}
	return &UploadError{Message: msg, File: filename, Status: status}
}
