// Package client calls the engagement endpoints over HTTP. It is the
// transport behind the optimistic client mirror.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mansiruhil/fail-u-forward-sub000/internal/adapter/http/api"
	"github.com/mansiruhil/fail-u-forward-sub000/internal/domain/engagement"
	"github.com/mansiruhil/fail-u-forward-sub000/internal/domain/post"
	"github.com/mansiruhil/fail-u-forward-sub000/internal/port/auth"
	"github.com/mansiruhil/fail-u-forward-sub000/internal/port/repository"
)

const defaultTimeout = 10 * time.Second

var (
	errMissingBaseURL = errors.New("client: base url is empty")
	// ErrUnexpectedResponse is returned for a status or body the server should not send.
	ErrUnexpectedResponse = errors.New("client: unexpected response")
	// ErrBadRequest is a 400 for any reason other than an unknown reaction kind.
	ErrBadRequest = errors.New("client: request rejected as invalid")
)

// Client sends engagement actions for one credential.
type Client struct {
	baseURL    string
	credential string
	httpClient *http.Client
}

type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

func New(baseURL, credential string, opts ...Option) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, errMissingBaseURL
	}
	if _, err := url.Parse(baseURL); err != nil {
		return nil, fmt.Errorf("client: parse base url: %w", err)
	}
	c := &Client{
		baseURL:    baseURL,
		credential: credential,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func (c *Client) Like(ctx context.Context, postID post.ID) (engagement.State, error) {
	return c.send(ctx, postID, "like", nil)
}

func (c *Client) Dislike(ctx context.Context, postID post.ID) (engagement.State, error) {
	return c.send(ctx, postID, "dislike", nil)
}

func (c *Client) React(ctx context.Context, postID post.ID, kind engagement.ReactionKind) (engagement.State, error) {
	return c.send(ctx, postID, "react", api.ReactRequest{ReactionKind: string(kind)})
}

/**
 * Posts one action and decodes the authoritative state from the envelope.
 * Non-2xx statuses are mapped back onto the port errors.
 */
func (c *Client) send(ctx context.Context, postID post.ID, action string, body any) (engagement.State, error) {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return engagement.State{}, fmt.Errorf("client: encode body: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	endpoint := fmt.Sprintf("%s/posts/%s/%s", c.baseURL, url.PathEscape(string(postID)), action)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, reader)
	if err != nil {
		return engagement.State{}, fmt.Errorf("client: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.credential != "" {
		req.Header.Set("Authorization", "Bearer "+c.credential)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return engagement.State{}, fmt.Errorf("%w: %v", repository.ErrStorageUnavailable, err)
	}
	defer resp.Body.Close()

	var env api.Envelope[api.EngagementState]
	decodeErr := json.NewDecoder(resp.Body).Decode(&env)

	if resp.StatusCode != http.StatusOK {
		return engagement.State{}, statusError(resp.StatusCode, env.Error)
	}
	if decodeErr != nil {
		return engagement.State{}, fmt.Errorf("%w: decode body: %v", ErrUnexpectedResponse, decodeErr)
	}
	if !env.Success || env.Data == nil {
		return engagement.State{}, fmt.Errorf("%w: empty data", ErrUnexpectedResponse)
	}
	return env.Data.Domain(), nil
}

func statusError(status int, message *string) error {
	detail := http.StatusText(status)
	if message != nil && *message != "" {
		detail = *message
	}
	switch {
	case status == http.StatusUnauthorized:
		return fmt.Errorf("%w: %s", auth.ErrUnauthorized, detail)
	case status == http.StatusNotFound:
		return fmt.Errorf("%w: %s", repository.ErrPostNotFound, detail)
	case status == http.StatusBadRequest && detail == api.MessageInvalidReactionKind:
		return fmt.Errorf("%w: %s", engagement.ErrInvalidReactionKind, detail)
	case status == http.StatusBadRequest:
		return fmt.Errorf("%w: %s", ErrBadRequest, detail)
	case status >= http.StatusInternalServerError:
		return fmt.Errorf("%w: %s", repository.ErrStorageUnavailable, detail)
	default:
		return fmt.Errorf("%w: status %d: %s", ErrUnexpectedResponse, status, detail)
	}
}
