package backend

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/nguyentantai21042004/meeting-secretary/internal/logger"
)

// RequestIDHeader is set on every request so backend logs can be correlated.
const RequestIDHeader = "X-Request-ID"

func (c *implClient) StartRecording(ctx context.Context) (StartResult, error) {
	var res StartResult
	if err := c.post(ctx, EndpointStartRecording, nil, "", &res); err != nil {
		return StartResult{}, err
	}
	return res, nil
}

func (c *implClient) StopRecording(ctx context.Context) (StopResult, error) {
	var res StopResult
	if err := c.post(ctx, EndpointStopRecording, nil, "", &res); err != nil {
		return StopResult{}, err
	}
	return res, nil
}

func (c *implClient) Transcribe(ctx context.Context) (TranscribeResult, error) {
	var res TranscribeResult
	if err := c.post(ctx, EndpointTranscribe, nil, "", &res); err != nil {
		return TranscribeResult{}, err
	}
	return res, nil
}

func (c *implClient) TranscribeAndSummarize(ctx context.Context) (TranscribeResult, error) {
	var res TranscribeResult
	if err := c.post(ctx, EndpointTranscribeAndSummarize, nil, "", &res); err != nil {
		return TranscribeResult{}, err
	}
	return res, nil
}

// TranscribeFile uploads r as the multipart field "file" named name.
// The body is streamed through a pipe so large recordings are never held in memory.
func (c *implClient) TranscribeFile(ctx context.Context, name string, r io.Reader) (TranscribeResult, error) {
	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)
	filename := path.Base(strings.ReplaceAll(name, `\`, "/"))

	writeErr := make(chan error, 1)
	go func() {
		err := writeMultipart(mw, filename, r)
		pw.CloseWithError(err)
		writeErr <- err
	}()

	var res TranscribeResult
	err := c.post(ctx, EndpointTranscribeFile, pr, mw.FormDataContentType(), &res)
	// Unblocks the writer if the request ended before the body was consumed.
	pr.Close()
	if werr := <-writeErr; werr != nil && !errors.Is(werr, io.ErrClosedPipe) {
		return TranscribeResult{}, werr
	}
	if err != nil {
		return TranscribeResult{}, err
	}
	return res, nil
}

func writeMultipart(mw *multipart.Writer, filename string, r io.Reader) error {
	fw, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return fmt.Errorf("create form file: %w", err)
	}
	if _, err := io.Copy(fw, r); err != nil {
		return fmt.Errorf("copy upload: %w", err)
	}
	if err := mw.Close(); err != nil {
		return fmt.Errorf("close multipart writer: %w", err)
	}
	return nil
}

// FetchText GETs an artifact path returned by the backend and returns its body as text.
func (c *implClient) FetchText(ctx context.Context, artifactPath string) (string, error) {
	target, err := c.resolveArtifact(artifactPath)
	if err != nil {
		return "", err
	}

	ctx = c.tagRequest(ctx)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set(RequestIDHeader, logger.RequestID(ctx))

	resp, err := c.do(ctx, req)
	if err != nil {
		return "", fmt.Errorf("fetch %s: %w", artifactPath, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", errorFromResponse(resp)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", artifactPath, err)
	}
	return string(data), nil
}

// post sends a POST to endpoint and decodes the JSON response into out.
func (c *implClient) post(ctx context.Context, endpoint string, body io.Reader, contentType string, out interface{}) error {
	ctx = c.tagRequest(ctx)
	target := c.base.JoinPath(endpoint).String()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, logger.RequestID(ctx))

	resp, err := c.do(ctx, req)
	if err != nil {
		return fmt.Errorf("%s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return errorFromResponse(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", endpoint, err)
	}
	return nil
}

func (c *implClient) do(ctx context.Context, req *http.Request) (*http.Response, error) {
	start := time.Now()
	c.logger.Debug(ctx, "%s %s", req.Method, req.URL)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn(ctx, "%s %s failed: %v", req.Method, req.URL, err)
		return nil, err
	}

	c.logger.Info(ctx, "%s %s -> %d (%s)", req.Method, req.URL.Path, resp.StatusCode, time.Since(start).Round(time.Millisecond))
	return resp, nil
}

// tagRequest attaches a fresh request id unless ctx already carries one.
func (c *implClient) tagRequest(ctx context.Context) context.Context {
	if logger.RequestID(ctx) != "" {
		return ctx
	}
	return logger.WithRequestID(ctx, uuid.NewString())
}

// resolveArtifact maps a backend-returned path onto the backend origin.
// Absolute http(s) URLs pass through; Windows separators are normalized.
func (c *implClient) resolveArtifact(artifactPath string) (string, error) {
	p := strings.TrimSpace(artifactPath)
	if p == "" {
		return "", fmt.Errorf("empty artifact path")
	}

	if strings.HasPrefix(p, "http://") || strings.HasPrefix(p, "https://") {
		u, err := url.Parse(p)
		if err != nil {
			return "", fmt.Errorf("parse artifact url: %w", err)
		}
		return u.String(), nil
	}

	p = strings.ReplaceAll(p, `\`, "/")
	p = strings.TrimLeft(p, "/")
	return c.origin.ResolveReference(&url.URL{Path: p}).String(), nil
}
