package directory

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"ridehail/pkg/logger"
	"ridehail/pkg/metrics"
	"ridehail/rating-service/internal/app/rating/entity"

	"github.com/cenkalti/backoff/v4"
)

const (
	KindDriver    = "driver"
	KindPassenger = "passenger"
)

// RemoteClientConfig bounds every directory call.
type RemoteClientConfig struct {
	Timeout        time.Duration
	MaxAttempts    int
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
}

func DefaultRemoteClientConfig() RemoteClientConfig {
	return RemoteClientConfig{
		Timeout:        5 * time.Second,
		MaxAttempts:    3,
		InitialBackoff: 100 * time.Millisecond,
		MaxBackoff:     time.Second,
	}
}

// Client looks up drivers and passengers in their directories on behalf of
// the caller whose token is passed with each call.
type Client struct {
	driverURL    string
	passengerURL string
	httpClient   *http.Client
	cfg          RemoteClientConfig
}

func NewClient(driverURL, passengerURL string, cfg RemoteClientConfig) *Client {
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 1
	}
	return &Client{
		driverURL:    strings.TrimRight(driverURL, "/"),
		passengerURL: strings.TrimRight(passengerURL, "/"),
		httpClient:   &http.Client{Timeout: cfg.Timeout},
		cfg:          cfg,
	}
}

func (c *Client) GetDriver(ctx context.Context, id, token string) (*entity.Participant, error) {
	return c.lookup(ctx, KindDriver, c.driverURL+"/drivers/"+url.PathEscape(id), id, token)
}

func (c *Client) GetPassenger(ctx context.Context, id, token string) (*entity.Participant, error) {
	return c.lookup(ctx, KindPassenger, c.passengerURL+"/passengers/"+url.PathEscape(id), id, token)
}

func (c *Client) lookup(ctx context.Context, kind, endpoint, id, token string) (*entity.Participant, error) {
	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = c.cfg.InitialBackoff
	policy.MaxInterval = c.cfg.MaxBackoff
	policy.MaxElapsedTime = 0

	var record *entity.Participant
	operation := func() error {
		var err error
		record, err = c.fetch(ctx, kind, endpoint, id, token)
		var transportErr *TransportError
		if err != nil && (!errors.As(err, &transportErr) || !transportErr.retryable()) {
			return backoff.Permanent(err)
		}
		return err
	}

	notify := func(err error, wait time.Duration) {
		metrics.DirectoryLookupRetries.WithLabelValues(kind).Inc()
		logger.Warn().
			Err(err).
			Str("directory", kind).
			Str("id", id).
			Dur("retry_in", wait).
			Msg("Directory lookup failed, retrying")
	}

	b := backoff.WithContext(backoff.WithMaxRetries(policy, uint64(c.cfg.MaxAttempts-1)), ctx)
	err := backoff.RetryNotify(operation, b, notify)
	metrics.RecordDirectoryLookup(kind, outcome(err))
	if err != nil {
		var notFound *NotFoundError
		var transportErr *TransportError
		if errors.As(err, &notFound) || errors.As(err, &transportErr) || errors.Is(err, ErrForbidden) {
			return nil, err
		}
		return nil, &TransportError{Kind: kind, Err: err}
	}

	return record, nil
}

func (c *Client) fetch(ctx context.Context, kind, endpoint, id, token string) (*entity.Participant, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{Kind: kind, Err: err}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode == http.StatusNotFound:
		return nil, &NotFoundError{Kind: kind, ID: id}
	case resp.StatusCode == http.StatusForbidden, resp.StatusCode == http.StatusUnauthorized:
		return nil, ErrForbidden
	default:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, &TransportError{Kind: kind, StatusCode: resp.StatusCode, Err: errors.New(strings.TrimSpace(string(body)))}
	}

	var record entity.Participant
	if err := json.NewDecoder(resp.Body).Decode(&record); err != nil {
		return nil, &TransportError{Kind: kind, StatusCode: resp.StatusCode, Err: fmt.Errorf("failed to decode body: %w", err)}
	}
	return &record, nil
}

func outcome(err error) string {
	var notFound *NotFoundError
	switch {
	case err == nil:
		return "found"
	case errors.As(err, &notFound):
		return "not_found"
	case errors.Is(err, ErrForbidden):
		return "forbidden"
	default:
		return "transport_error"
	}
}
