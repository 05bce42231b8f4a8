// Package client is a Go client for the climb-log HTTP API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"

	"github.com/tmorrell/cruxlog/internal/domain/climb"
	"github.com/tmorrell/cruxlog/internal/listing"
)

// Upload is a photo to attach to a log entry.
type Upload struct {
	Filename    string
	ContentType string
	Data        []byte
}

// APIError is a non-2xx response decoded into the API's error shape. Fields
// is populated for validation failures and carries the same field-to-message
// mapping the client-side validator produces.
type APIError struct {
	StatusCode int
	Message    string
	Fields     map[string]string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error (status %d): %s", e.StatusCode, e.Message)
}

// Client talks to a climb-log server.
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a client. A nil httpClient uses http.DefaultClient.
func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
	}
}

// List fetches one page of logs for the given query state.
func (c *Client) List(ctx context.Context, q listing.Query) (*climb.ListResult, error) {
	var result climb.ListResult
	path := "/api/logs?" + q.Values().Encode()
	if err := c.getJSON(ctx, path, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Get fetches a single log by id.
func (c *Client) Get(ctx context.Context, id string) (*climb.Log, error) {
	var log climb.Log
	if err := c.getJSON(ctx, "/api/logs/"+url.PathEscape(id), &log); err != nil {
		return nil, err
	}
	return &log, nil
}

// Create stores a new log entry. An upload switches the request to multipart.
func (c *Client) Create(ctx context.Context, in climb.Input, img *Upload) (*climb.Log, error) {
	return c.send(ctx, http.MethodPost, "/api/logs", in, img, false)
}

// Update replaces an entry. A new upload always wins over removeImage.
func (c *Client) Update(ctx context.Context, id string, in climb.Input, img *Upload, removeImage bool) (*climb.Log, error) {
	return c.send(ctx, http.MethodPut, "/api/logs/"+url.PathEscape(id), in, img, removeImage)
}

// Delete removes an entry.
func (c *Client) Delete(ctx context.Context, id string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.baseURL+"/api/logs/"+url.PathEscape(id), nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return decodeError(resp)
	}
	return nil
}

// Stats fetches the aggregate statistics.
func (c *Client) Stats(ctx context.Context) (*climb.Stats, error) {
	var stats climb.Stats
	if err := c.getJSON(ctx, "/api/stats", &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// Image fetches the raw photo bytes for an entry.
func (c *Client) Image(ctx context.Context, id string) (contentType string, data []byte, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/logs/"+url.PathEscape(id)+"/image", nil)
	if err != nil {
		return "", nil, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return "", nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", nil, decodeError(resp)
	}
	data, err = io.ReadAll(resp.Body)
	if err != nil {
		return "", nil, err
	}
	return resp.Header.Get("Content-Type"), data, nil
}

func (c *Client) send(ctx context.Context, method, path string, in climb.Input, img *Upload, removeImage bool) (*climb.Log, error) {
	var body io.Reader
	var contentType string

	if img != nil || removeImage {
		buf, ct, err := encodeMultipart(in, img, removeImage)
		if err != nil {
			return nil, err
		}
		body, contentType = buf, ct
	} else {
		data, err := json.Marshal(in)
		if err != nil {
			return nil, err
		}
		body, contentType = bytes.NewReader(data), "application/json"
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, decodeError(resp)
	}

	var log climb.Log
	if err := json.NewDecoder(resp.Body).Decode(&log); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &log, nil
}

func encodeMultipart(in climb.Input, img *Upload, removeImage bool) (*bytes.Buffer, string, error) {
	buf := &bytes.Buffer{}
	mw := multipart.NewWriter(buf)

	fields := map[string]string{
		"date":        in.Date,
		"environment": in.Environment,
		"location":    in.Location,
		"routeName":   in.RouteName,
		"climbType":   in.ClimbType,
		"gradeSystem": in.GradeSystem,
		"grade":       in.Grade,
		"progress":    in.Progress,
	}
	for name, value := range fields {
		if err := mw.WriteField(name, value); err != nil {
			return nil, "", err
		}
	}
	if removeImage {
		if err := mw.WriteField("removeImage", "1"); err != nil {
			return nil, "", err
		}
	}

	if img != nil {
		filename := img.Filename
		if filename == "" {
			filename = "image"
		}
		header := textproto.MIMEHeader{}
		header.Set("Content-Disposition",
			fmt.Sprintf(`form-data; name="image"; filename=%q`, filename))
		header.Set("Content-Type", img.ContentType)
		part, err := mw.CreatePart(header)
		if err != nil {
			return nil, "", err
		}
		if _, err := part.Write(img.Data); err != nil {
			return nil, "", err
		}
	}

	if err := mw.Close(); err != nil {
		return nil, "", err
	}
	return buf, mw.FormDataContentType(), nil
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return decodeError(resp)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func decodeError(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode, Message: resp.Status}

	var payload struct {
		Message string            `json:"message"`
		Errors  map[string]string `json:"errors"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err == nil {
		if payload.Message != "" {
			apiErr.Message = payload.Message
		}
		apiErr.Fields = payload.Errors
	}
	return apiErr
}
