// Package helpdesk submits service requests to the helpdesk REST API.
package helpdesk

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"golang.org/x/oauth2"

	"github.com/custodia-labs/sops-ai/internal/core/domain"
	"github.com/custodia-labs/sops-ai/internal/core/ports/driven"
	"github.com/custodia-labs/sops-ai/internal/logger"
)

// Ensure Client implements the interface.
var _ driven.HelpdeskClient = (*Client)(nil)

// DefaultTimeout bounds a single create-request call.
const DefaultTimeout = 30 * time.Second

// requestPath is appended to the server URL.
const requestPath = "/api/v1/request"

// Fixed messages for well-known failure statuses.
const (
	msgUnauthorized = "Unauthorized: Invalid or expired access token. Please check REQUEST_ACCESS_TOKEN."
	msgForbidden    = "Forbidden: You don't have permission to create requests."
	msgNotFound     = "Not Found: The API endpoint was not found. Please check REQUEST_SERVER_URL."
	msgServerError  = "Internal Server Error: The server encountered an error while processing the request."
	msgTimeout      = "Request timeout: The API request took too long to complete. Please try again."
)

// Config holds configuration for the helpdesk client.
type Config struct {
	// ServerURL is the helpdesk base URL (required). A trailing slash is ignored.
	ServerURL string

	// AccessToken is sent as a bearer token (required).
	AccessToken string

	// Timeout is the request timeout (default: 30s).
	Timeout time.Duration
}

// Client posts new requests to the helpdesk.
type Client struct {
	serverURL  string
	endpoint   string
	httpClient *http.Client
}

// NewClient creates a helpdesk client authenticated with a static bearer token.
func NewClient(cfg Config) (*Client, error) {
	if cfg.ServerURL == "" {
		return nil, errors.New("helpdesk: server URL is required")
	}
	if cfg.AccessToken == "" {
		return nil, errors.New("helpdesk: access token is required")
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}

	src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.AccessToken, TokenType: "Bearer"})
	httpClient := oauth2.NewClient(context.Background(), src)
	httpClient.Timeout = cfg.Timeout

	return &Client{
		serverURL:  cfg.ServerURL,
		endpoint:   strings.TrimRight(cfg.ServerURL, "/") + requestPath,
		httpClient: httpClient,
	}, nil
}

// CreateRequest posts the payload and maps the response status.
func (c *Client) CreateRequest(ctx context.Context, payload domain.RequestPayload) (*domain.RequestResult, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, &domain.RequestAPIError{Message: fmt.Sprintf("Request error: %v", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, &domain.RequestAPIError{Message: fmt.Sprintf("Request error: %v", err)}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, c.transportError(err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &domain.RequestAPIError{StatusCode: resp.StatusCode, Message: fmt.Sprintf("Request error: %v", err)}
	}
	logger.Debug("helpdesk: POST %s -> %d", c.endpoint, resp.StatusCode)

	return mapResponse(resp.StatusCode, raw)
}

// mapResponse turns a helpdesk response into a result or a *domain.RequestAPIError.
func mapResponse(status int, raw []byte) (*domain.RequestResult, error) {
	switch status {
	case http.StatusOK, http.StatusCreated:
		var data any
		if err := json.Unmarshal(raw, &data); err != nil {
			return &domain.RequestResult{Raw: string(raw)}, nil
		}
		return &domain.RequestResult{Data: data}, nil

	case http.StatusBadRequest:
		details, ok := decodeObject(raw)
		if !ok {
			return nil, &domain.RequestAPIError{StatusCode: status, Message: "Bad Request: " + string(raw)}
		}
		message := "Invalid request data"
		if m, ok := details["message"]; ok {
			message = fmt.Sprint(m)
		}
		return nil, &domain.RequestAPIError{StatusCode: status, Message: "Bad Request: " + message, Details: details}

	case http.StatusUnauthorized:
		return nil, &domain.RequestAPIError{StatusCode: status, Message: msgUnauthorized}
	case http.StatusForbidden:
		return nil, &domain.RequestAPIError{StatusCode: status, Message: msgForbidden}
	case http.StatusNotFound:
		return nil, &domain.RequestAPIError{StatusCode: status, Message: msgNotFound}
	case http.StatusInternalServerError:
		return nil, &domain.RequestAPIError{StatusCode: status, Message: msgServerError}

	default:
		if details, ok := decodeObject(raw); ok {
			return nil, &domain.RequestAPIError{
				StatusCode: status,
				Message:    fmt.Sprintf("API request failed with status %d", status),
				Details:    details,
			}
		}
		return nil, &domain.RequestAPIError{
			StatusCode: status,
			Message:    fmt.Sprintf("API request failed with status %d: %s", status, raw),
		}
	}
}

func (c *Client) transportError(err error) error {
	var netErr net.Error
	switch {
	case errors.Is(err, context.DeadlineExceeded), errors.As(err, &netErr) && netErr.Timeout():
		return &domain.RequestAPIError{Message: msgTimeout}
	case errors.Is(err, context.Canceled):
		return &domain.RequestAPIError{Message: fmt.Sprintf("Request error: %v", err)}
	default:
		return &domain.RequestAPIError{
			Message: fmt.Sprintf("Connection error: Could not connect to %s. Please check the server URL.", c.serverURL),
		}
	}
}

func decodeObject(raw []byte) (map[string]any, bool) {
	var obj map[string]any
	if err := json.Unmarshal(raw, &obj); err != nil || obj == nil {
		return nil, false
	}
	return obj, true
}
