package uploads

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
)

// UploadError carries the asset host's own failure message when it returned
// one, so the operator sees the host's reason verbatim.
type UploadError struct {
	Message string
}

func (e *UploadError) Error() string { return e.Message }

// ProgressFunc receives a monotonically non-decreasing percent 0-100.
// Delivery is best-effort; it is skipped entirely when the payload size is
// unknown.
type ProgressFunc func(percent int)

// Client uploads binaries to a third-party media host: a multipart POST to
// an endpoint templated by resource kind, authenticated only by an unsigned
// upload preset. The response's secure URL is the asset's one and only
// identity; nothing else is recorded.
type Client struct {
	base   string
	preset string
	http   *http.Client
}

func NewClient(base, preset string) *Client {
	return &Client{
		base:   strings.TrimRight(base, "/"),
		preset: preset,
		http:   &http.Client{Timeout: 60 * time.Second},
	}
}

// Upload sends the file and returns its public URL. An empty resourceKind
// defaults to "auto" (host-side type detection).
func (c *Client) Upload(ctx context.Context, filename string, r io.Reader, size int64, resourceKind string) (string, error) {
	return c.UploadWithProgress(ctx, filename, r, size, resourceKind, nil)
}

// UploadWithProgress is Upload with a progress callback driven by request
// body consumption.
func (c *Client) UploadWithProgress(ctx context.Context, filename string, r io.Reader, size int64, resourceKind string, onProgress ProgressFunc) (string, error) {
	if resourceKind == "" {
		resourceKind = "auto"
	}

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return "", fmt.Errorf("build upload body: %w", err)
	}
	if _, err := io.Copy(part, r); err != nil {
		return "", fmt.Errorf("read upload payload: %w", err)
	}
	if err := mw.WriteField("upload_preset", c.preset); err != nil {
		return "", fmt.Errorf("build upload body: %w", err)
	}
	if err := mw.Close(); err != nil {
		return "", fmt.Errorf("build upload body: %w", err)
	}

	var payload io.Reader = &body
	total := int64(body.Len())
	if onProgress != nil && size > 0 {
		payload = &progressReader{r: payload, total: total, fn: onProgress}
	}

	url := c.base + "/" + resourceKind + "/upload"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, payload)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.ContentLength = total

	resp, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &UploadError{Message: hostErrorMessage(raw)}
	}

	var ok struct {
		SecureURL string `json:"secure_url"`
		URL       string `json:"url"`
	}
	if err := json.Unmarshal(raw, &ok); err != nil {
		return "", fmt.Errorf("decode upload response: %w", err)
	}
	if ok.SecureURL != "" {
		return ok.SecureURL, nil
	}
	if ok.URL != "" {
		return ok.URL, nil
	}
	return "", &UploadError{Message: "upload host returned no URL"}
}

func hostErrorMessage(raw []byte) string {
	var payload struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(raw, &payload); err == nil && payload.Error.Message != "" {
		return payload.Error.Message
	}
	return "upload failed"
}

type progressReader struct {
	r     io.Reader
	total int64
	read  int64
	last  int
	fn    ProgressFunc
}

func (p *progressReader) Read(buf []byte) (int, error) {
	n, err := p.r.Read(buf)
	if n > 0 {
		p.read += int64(n)
		pct := int(p.read * 100 / p.total)
		if pct > 100 {
			pct = 100
		}
		if pct > p.last {
			p.last = pct
			p.fn(pct)
		}
	}
	return n, err
}
