package chainmate

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	defaultTokenAPIBaseURL = "https://token-api.thegraph.com"
	balanceFetchLimit      = 200
	maxProviderBodySize    = 4 << 20
	defaultHTTPTimeout     = 30 * time.Second
)

// HTTPDoer is an interface for making HTTP requests. It enables dependency
// injection for testing without network calls.
type HTTPDoer interface {
	Do(*http.Request) (*http.Response, error)
}

// BalanceProvider fetches the token balances of a wallet. An empty list is
// a valid "no holdings" outcome, not an error.
type BalanceProvider interface {
	TokenBalances(ctx context.Context, wallet string) ([]TokenBalance, error)
}

// graphProvider calls the token balance API over HTTP. Values arrive
// pre-computed in USD; this client performs no retries.
type graphProvider struct {
	baseURL string
	apiKey  string
	client  HTTPDoer
	logger  *slog.Logger
}

func newGraphProvider(baseURL, apiKey string, client HTTPDoer, logger *slog.Logger) *graphProvider {
	trimmed := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if trimmed == "" {
		trimmed = defaultTokenAPIBaseURL
	}
	return &graphProvider{
		baseURL: trimmed,
		apiKey:  apiKey,
		client:  client,
		logger:  logger,
	}
}

type balanceResponse struct {
	Data []TokenBalance `json:"data"`
}

// upstreamFailure mirrors the provider's error body; either field may carry
// the human-readable message.
type upstreamFailure struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

func (p *graphProvider) TokenBalances(ctx context.Context, wallet string) ([]TokenBalance, error) {
	endpoint := fmt.Sprintf("%s/balances/evm/%s?limit=%d", p.baseURL, url.PathEscape(wallet), balanceFetchLimit)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, WrapError(ErrCodeUpstreamFetch, "build balance request", err)
	}
	req.Header.Set("Accept", "application/json")
	if p.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+p.apiKey)
	}

	start := time.Now()
	resp, err := p.client.Do(req)
	if err != nil {
		return nil, WrapError(ErrCodeUpstreamFetch, "Failed to fetch portfolio data", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxProviderBodySize))
	if err != nil {
		return nil, WrapError(ErrCodeUpstreamFetch, "Failed to fetch portfolio data", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		p.logger.Warn("balance provider returned failure",
			"wallet", wallet,
			"status", resp.StatusCode,
			"duration_ms", time.Since(start).Milliseconds(),
		)
		return nil, NewError(ErrCodeUpstreamFetch, upstreamErrorMessage(body))
	}

	var parsed balanceResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, WrapError(ErrCodeUpstreamFetch, "decode balance response", err)
	}

	p.logger.Debug("fetched token balances",
		"wallet", wallet,
		"tokens", len(parsed.Data),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	if parsed.Data == nil {
		return []TokenBalance{}, nil
	}
	return parsed.Data, nil
}

// upstreamErrorMessage extracts the provider's own message from a failure
// body when one is decodable, otherwise falls back to a generic message.
func upstreamErrorMessage(body []byte) string {
	var failure upstreamFailure
	if err := json.Unmarshal(body, &failure); err == nil {
		if failure.Message != "" {
			return failure.Message
		}
		if failure.Error != "" {
			return failure.Error
		}
	}
	return "Failed to fetch portfolio data"
}
