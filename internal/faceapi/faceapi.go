// Package faceapi is a client for the face recognition service HTTP API.
// The service owns detection, embedding extraction, matching, and identity
// persistence; this package only shapes requests and responses.
package faceapi

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Client represents a client for the face recognition API.
type Client struct {
	URL        string
	parsedURL  *url.URL
	httpClient *http.Client
}

// NewClient creates a client for the recognition service at baseURL.
func NewClient(baseURL string) (*Client, error) {
	trimmed := strings.TrimRight(baseURL, "/")
	parsed, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("could not parse API URL: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("invalid API URL %q: scheme must be http or https", baseURL)
	}

	return &Client{
		URL:       trimmed,
		parsedURL: parsed,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}, nil
}

// resolveURL builds a full URL from the base URL and an endpoint path
// (e.g. "api/recognize").
func (c *Client) resolveURL(endpoint string) string {
	return c.parsedURL.JoinPath(endpoint).String()
}

// ResolveRef resolves a server-relative reference (e.g. a face_image_url
// like "/data/recognized/alice/x.jpg") against the API base URL.
func (c *Client) ResolveRef(ref string) string {
	if ref == "" {
		return ""
	}
	parsed, err := url.Parse(ref)
	if err != nil {
		return ref
	}
	return c.parsedURL.ResolveReference(parsed).String()
}
