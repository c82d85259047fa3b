package recruit

import (
	"bytes"
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/recruitgenius/recruit-cli/internal/logger"
)

const (
	contentType     = "application/json"
	contentEncoding = "gzip"
	requestIDHeader = "X-Request-ID"
	// Upper bound of an error body kept in StatusError.
	maxErrorBody = 1024
)

func (c *Client) getJSON(ctx context.Context, path string, q url.Values, target any) error {
	req, err := c.newRequest(ctx, http.MethodGet, path, q, nil)
	if err != nil {
		return err
	}

	return c.do(req, target)
}

func (c *Client) postJSON(ctx context.Context, path string, q url.Values, body any, target any) error {
	var payload io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request body: %w", err)
		}
		payload = bytes.NewReader(data)
	}

	req, err := c.newRequest(ctx, http.MethodPost, path, q, payload)
	if err != nil {
		return err
	}

	if body != nil {
		req.Header.Set("Content-Type", contentType)
	}

	return c.do(req, target)
}

// postFile sends a single file as a multipart form under field.
func (c *Client) postFile(ctx context.Context, path, field string, upload Upload, target any) error {
	var b bytes.Buffer
	w := multipart.NewWriter(&b)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, field, upload.Filename))
	header.Set("Content-Type", upload.ContentType)

	part, err := w.CreatePart(header)
	if err != nil {
		return err
	}

	if _, err = io.Copy(part, upload.Body); err != nil {
		return fmt.Errorf("read %s: %w", upload.Filename, err)
	}

	if err = w.Close(); err != nil {
		return err
	}

	req, err := c.newRequest(ctx, http.MethodPost, path, nil, &b)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	return c.do(req, target)
}

func (c *Client) newRequest(ctx context.Context, method, path string, q url.Values, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.endpoint(path), body)
	if err != nil {
		return nil, err
	}

	if len(q) > 0 {
		req.URL.RawQuery = q.Encode()
	}

	return c.setHeaders(req), nil
}

func (c *Client) setHeaders(req *http.Request) *http.Request {
	if c.token != "" {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.token))
	}
	req.Header.Set("User-Agent", c.UserAgent)
	req.Header.Set("Accept", contentType)
	req.Header.Set("Accept-Encoding", contentEncoding)
	req.Header.Set(requestIDHeader, uuid.NewString())

	return req
}

// do sends the request and decodes a successful JSON answer into target.
// target may be nil when the body is not needed.
func (c *Client) do(req *http.Request, target any) error {
	log := logger.WithFields(c.logger, logger.RequestFields(req.Method, req.URL.Path, req.Header.Get(requestIDHeader))...)

	if err := c.limiter.Wait(req.Context()); err != nil {
		return fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, err)
	}

	log.Debug("make request", zap.String("url", req.URL.String()))

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	var reader io.Reader = resp.Body
	if resp.Header.Get("Content-Encoding") == "gzip" {
		gzipReader, err := gzip.NewReader(resp.Body)
		if err != nil {
			return err
		}
		defer gzipReader.Close()
		reader = gzipReader
	}

	data, err := io.ReadAll(reader)
	if err != nil {
		return fmt.Errorf("%s %s: read body: %w", req.Method, req.URL.Path, err)
	}

	log.Debug("got response",
		zap.Int("status", resp.StatusCode),
		zap.String("body_preview", logger.TruncateForLog(string(data), 200)),
	)

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		body := strings.TrimSpace(string(data))
		if len(body) > maxErrorBody {
			body = body[:maxErrorBody]
		}
		return &StatusError{
			Method:     req.Method,
			URL:        req.URL.Path,
			StatusCode: resp.StatusCode,
			Body:       body,
		}
	}

	if target == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}

	if err := json.Unmarshal(data, target); err != nil {
		return fmt.Errorf("%s %s: decode response: %w", req.Method, req.URL.Path, err)
	}

	return nil
}
