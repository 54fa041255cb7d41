package providers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
)

const maxResponseBytes = 4 << 20

// Do executes req with the configured timeout and returns the response body
// of a 2xx response. Failures are returned as *ProviderError.
func Do(ctx context.Context, cfg Config, name Name, req *http.Request) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()

	resp, err := cfg.HTTPClient.Do(req.WithContext(ctx))
	if err != nil {
		return nil, classifyTransport(name, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, classifyTransport(name, err)
	}

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return body, nil
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, NewProviderError(ErrorAuthentication, name, fmt.Sprintf("%s response %d", name, resp.StatusCode), nil)
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, NewProviderError(ErrorRateLimited, name, fmt.Sprintf("%s response %d", name, resp.StatusCode), nil)
	case resp.StatusCode >= 500:
		return nil, NewProviderError(ErrorProviderOutage, name, fmt.Sprintf("%s response %d", name, resp.StatusCode), nil)
	default:
		return nil, NewProviderError(ErrorBadData, name, fmt.Sprintf("%s response %d", name, resp.StatusCode), nil)
	}
}

func classifyTransport(name Name, err error) error {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return NewProviderError(ErrorTimeout, name, "request timed out", err)
	}
	return NewProviderError(ErrorProviderOutage, name, "request failed", err)
}

// BadData wraps a decode failure of an otherwise successful response.
func BadData(name Name, err error) error {
	return NewProviderError(ErrorBadData, name, "malformed response", err)
}
