package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/shopspring/decimal"

	"BalanceSentinel/internal/model"
)

// DefaultAceDataBaseURL is the public AceData platform endpoint.
const DefaultAceDataBaseURL = "https://platform.acedata.cloud"

// AceDataFetcher implements Fetcher using the AceData application API.
type AceDataFetcher struct {
	BaseURL       string
	AppID         string
	Authorization string
	Client        *http.Client
}

// NewAceDataFetcher creates a new fetcher with optional proxy support.
func NewAceDataFetcher(baseURL, appID, authorization, proxyURL string) *AceDataFetcher {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &AceDataFetcher{
		BaseURL:       baseURL,
		AppID:         appID,
		Authorization: authorization,
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
	}
}

func (f *AceDataFetcher) Name() string { return "acedata" }

// applicationResponse is the subset of the application payload we use.
type applicationResponse struct {
	RemainingAmount decimal.NullDecimal `json:"remaining_amount"`
	UsedAmount      decimal.NullDecimal `json:"used_amount"`
}

func (f *AceDataFetcher) Fetch(ctx context.Context) (model.Balance, error) {
	endpoint := fmt.Sprintf("%s/api/v1/applications/%s", f.BaseURL, url.PathEscape(f.AppID))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return model.Balance{}, err
	}
	req.Header.Set("Authorization", f.Authorization)
	req.Header.Set("Accept", "application/json")

	resp, err := f.Client.Do(req)
	if err != nil {
		return model.Balance{}, fmt.Errorf("fetch balance: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return model.Balance{}, fmt.Errorf("fetch balance: status %d, body: %s", resp.StatusCode, string(body))
	}

	var app applicationResponse
	if err := json.NewDecoder(resp.Body).Decode(&app); err != nil {
		return model.Balance{}, fmt.Errorf("decode balance: %w", err)
	}
	return model.Balance{
		RemainingAmount: app.RemainingAmount,
		UsedAmount:      app.UsedAmount,
		FetchedAt:       time.Now(),
	}, nil
}
