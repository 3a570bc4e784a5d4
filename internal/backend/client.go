// Package backend implements the HTTP client for the event search service.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	apperrors "github.com/mlemay/eventfind/internal/errors"
	"github.com/mlemay/eventfind/internal/logging"
)

// FindEventsPath is the endpoint that accepts event search queries.
const FindEventsPath = "/find-events"

// maxResponseBytes caps how much of a response body is read. Event result
// payloads are short prose; anything beyond this is a misbehaving backend.
const maxResponseBytes = 1 << 20

// Client performs event searches against a backend service over HTTP.
// Identical concurrent queries are coalesced into a single request.
type Client struct {
	httpClient *http.Client
	baseURL    string
	logger     logging.Logger
	group      singleflight.Group
}

// NewClient creates a Client for the service at baseURL. A nil httpClient
// falls back to a plain http.Client with no timeout; callers configure
// timeouts through the injected client or the request context.
func NewClient(httpClient *http.Client, baseURL string, logger logging.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	if logger == nil {
		logger = logging.Nop{}
	}
	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
		logger:     logger,
	}
}

// FindEvents submits a query for events matching interest near location and
// returns the backend's results text verbatim.
//
// Failures are classified by layer:
//   - apperrors.TransportError: the request never received a response.
//   - apperrors.ProtocolError: the response status was outside 2xx.
//   - apperrors.LogicalError: a 2xx response whose payload signals an error.
//
// Context cancellation surfaces through the TransportError chain, so
// errors.Is(err, context.Canceled) still holds for interrupted queries.
//
// Concurrent calls with identical interest and location share one request.
// The shared request runs under the first caller's context: canceling it
// cancels the request for every coalesced caller, and all of them receive
// the same result or error.
func (c *Client) FindEvents(ctx context.Context, interest, location string) (string, error) {
	key := interest + "\x00" + location
	result, err, shared := c.group.Do(key, func() (any, error) {
		return c.findEvents(ctx, interest, location)
	})
	if shared {
		c.logger.Debug("coalesced duplicate in-flight query",
			logging.String("interest", interest),
			logging.String("location", location))
	}
	if err != nil {
		return "", err
	}
	return result.(string), nil
}

func (c *Client) findEvents(ctx context.Context, interest, location string) (string, error) {
	payload, err := json.Marshal(queryPayload{
		InterestDescription: interest,
		Location:            location,
	})
	if err != nil {
		return "", apperrors.WrapError(err, "encoding query payload")
	}

	url := c.baseURL + FindEventsPath
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", apperrors.WrapError(err, "building request for %s", url)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debug("request failed before a response arrived",
			logging.String("url", url), logging.Err(err))
		return "", apperrors.TransportError{Cause: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return "", apperrors.TransportError{Cause: err}
	}

	c.logger.Debug("received response",
		logging.String("url", url),
		logging.Int("status", resp.StatusCode),
		logging.Float64("elapsed_seconds", time.Since(start).Seconds()))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", apperrors.ProtocolError{
			StatusCode: resp.StatusCode,
			Message:    errorMessage(body, resp.StatusCode),
		}
	}

	var env ResponseEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return "", apperrors.WrapError(err, "decoding response envelope")
	}
	if env.Error != "" {
		return "", apperrors.LogicalError{Message: env.Error}
	}
	return env.ResultsText, nil
}
