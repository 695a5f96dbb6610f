// Package client talks to the user extra REST resource over HTTP.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"userextra/internal/model"
)

// ResourcePath is the collection path relative to the base URL.
const ResourcePath = "/api/user-extras"

var ErrNotFound = errors.New("user extra not found")

// StatusError is a non-2xx answer from the API.
type StatusError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *StatusError) Error() string {
	if e.Code == "" {
		return fmt.Sprintf("api responded %d", e.StatusCode)
	}
	return fmt.Sprintf("api responded %d %s: %s", e.StatusCode, e.Code, e.Message)
}

// Is lets errors.Is(err, ErrNotFound) match a 404.
func (e *StatusError) Is(target error) bool {
	return target == ErrNotFound && e.StatusCode == http.StatusNotFound
}

// Image is one file sent to the upload endpoint.
type Image struct {
	Filename string
	Reader   io.Reader
}

type Client struct {
	base *url.URL
	http *http.Client
}

// New returns a client for the API at baseURL. A zero timeout means no timeout.
func New(baseURL string, timeout time.Duration) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse api base url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("api base url %q must be absolute", baseURL)
	}
	return &Client{
		base: u,
		http: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}, nil
}

// List fetches the collection; query is forwarded verbatim.
func (c *Client) List(ctx context.Context, query url.Values) ([]model.UserExtra, error) {
	var out []model.UserExtra
	if err := c.do(ctx, http.MethodGet, c.endpoint("", query), nil, "", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Get(ctx context.Context, id string) (*model.UserExtra, error) {
	var out model.UserExtra
	if err := c.do(ctx, http.MethodGet, c.endpoint(id, nil), nil, "", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Create(ctx context.Context, e *model.UserExtra) (*model.UserExtra, error) {
	return c.send(ctx, http.MethodPost, c.endpoint("", nil), e, "application/json")
}

func (c *Client) Update(ctx context.Context, e *model.UserExtra) (*model.UserExtra, error) {
	return c.send(ctx, http.MethodPut, c.endpoint(e.IDString(), nil), e, "application/json")
}

func (c *Client) PartialUpdate(ctx context.Context, e *model.UserExtra) (*model.UserExtra, error) {
	return c.send(ctx, http.MethodPatch, c.endpoint(e.IDString(), nil), e, "application/merge-patch+json")
}

func (c *Client) Delete(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, c.endpoint(id, nil), nil, "", nil)
}

// UploadImages posts both images as one multipart form.
func (c *Client) UploadImages(ctx context.Context, id string, front, back Image) (*model.UserExtra, error) {
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	for _, f := range []struct {
		field string
		img   Image
	}{{"frontImage", front}, {"backImage", back}} {
		field, img := f.field, f.img
		part, err := w.CreateFormFile(field, img.Filename)
		if err != nil {
			return nil, fmt.Errorf("create form file %s: %w", field, err)
		}
		if _, err := io.Copy(part, img.Reader); err != nil {
			return nil, fmt.Errorf("copy %s: %w", field, err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("close multipart writer: %w", err)
	}

	var out model.UserExtra
	if err := c.do(ctx, http.MethodPost, c.endpoint(id, nil)+"/images", &body, w.FormDataContentType(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) endpoint(id string, query url.Values) string {
	u := *c.base
	u.Path = c.base.Path + ResourcePath
	if id != "" {
		u.Path += "/" + id
		u.RawPath = c.base.EscapedPath() + ResourcePath + "/" + url.PathEscape(id)
	}
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}
	return u.String()
}

func (c *Client) send(ctx context.Context, method, target string, in *model.UserExtra, contentType string) (*model.UserExtra, error) {
	payload, err := json.Marshal(in)
	if err != nil {
		return nil, fmt.Errorf("encode user extra: %w", err)
	}
	var out model.UserExtra
	if err := c.do(ctx, method, target, bytes.NewReader(payload), contentType, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) do(ctx context.Context, method, target string, body io.Reader, contentType string, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return fmt.Errorf("build %s request: %w", method, err)
	}
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeStatusError(resp)
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", req.URL.Path, err)
	}
	return nil
}

func decodeStatusError(resp *http.Response) error {
	se := &StatusError{StatusCode: resp.StatusCode}
	var payload struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, 64<<10)).Decode(&payload); err == nil {
		se.Code = payload.Error.Code
		se.Message = payload.Error.Message
	}
	return se
}
