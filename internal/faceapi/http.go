package faceapi

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
)

// APIError is a non-2xx response from the recognition service. The server
// reports failures as a JSON object with a "detail" message; when present it
// is surfaced verbatim.
type APIError struct {
	StatusCode int
	Detail     string
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	return fmt.Sprintf("request failed with status %d", e.StatusCode)
}

// IsAPIError returns the APIError if err is one, unwrapping if needed.
func IsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// newAPIError builds an APIError from a non-2xx response body, extracting
// the server-provided detail message when the body is a JSON error object.
func newAPIError(statusCode int, body []byte) *APIError {
	var payload struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Detail != "" {
		return &APIError{StatusCode: statusCode, Detail: payload.Detail}
	}
	return &APIError{StatusCode: statusCode, Detail: strings.TrimSpace(string(body))}
}

// doGetJSON performs a GET request and unmarshals the JSON response into the
// result type. The endpoint is the path after the base URL (e.g. "api/faces").
func doGetJSON[T any](ctx context.Context, c *Client, endpoint string) (*T, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.resolveURL(endpoint), nil)
	if err != nil {
		return nil, fmt.Errorf("could not create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("could not send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("could not read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, newAPIError(resp.StatusCode, body)
	}

	var result T
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("could not unmarshal response: %w", err)
	}

	return &result, nil
}

// doPostForm performs a POST request with urlencoded form fields and
// unmarshals the JSON response.
func doPostForm[T any](ctx context.Context, c *Client, endpoint string, form url.Values) (*T, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.resolveURL(endpoint),
		strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("could not create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	return doJSON[T](c, req)
}

// doPostMultipart performs a POST request with a multipart form containing an
// encoded image under the "image" field plus any extra string fields.
func doPostMultipart[T any](ctx context.Context, c *Client, endpoint string, image []byte, fields map[string]string) (*T, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("image", "frame.jpg")
	if err != nil {
		return nil, fmt.Errorf("could not create form file: %w", err)
	}
	if _, err := part.Write(image); err != nil {
		return nil, fmt.Errorf("could not write image data: %w", err)
	}

	for key, value := range fields {
		if err := writer.WriteField(key, value); err != nil {
			return nil, fmt.Errorf("could not write form field %s: %w", key, err)
		}
	}

	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("could not close writer: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.resolveURL(endpoint), &body)
	if err != nil {
		return nil, fmt.Errorf("could not create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	return doJSON[T](c, req)
}

// doJSON sends a prepared request and unmarshals the JSON response.
func doJSON[T any](c *Client, req *http.Request) (*T, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("could not send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("could not read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, newAPIError(resp.StatusCode, body)
	}

	var result T
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("could not unmarshal response: %w", err)
	}

	return &result, nil
}
