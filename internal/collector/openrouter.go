package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"PriceSentinel/internal/model"
)

// DefaultOpenRouterMappings maps OpenRouter model ids to our model ids.
var DefaultOpenRouterMappings = map[string]string{
	"openai/gpt-4o":                              "gpt-4o",
	"openai/gpt-4o-mini":                         "gpt-4o-mini",
	"openai/o3-mini":                             "o3-mini",
	"openai/o1":                                  "o1",
	"anthropic/claude-3.5-sonnet":                "claude-3-5-sonnet",
	"anthropic/claude-3.5-haiku":                 "claude-3-5-haiku",
	"anthropic/claude-3.7-sonnet":                "claude-3-7-sonnet",
	"google/gemini-2.0-flash-001":                "gemini-2-flash",
	"google/gemini-2.0-pro-exp-02-05":            "gemini-2-pro",
	"google/gemini-2.0-flash-thinking-exp-01-21": "gemini-2-flash-thinking",
	"deepseek/deepseek-chat":                     "deepseek-v3",
	"deepseek/deepseek-r1":                       "deepseek-r1",
	"meta-llama/llama-3.3-70b-instruct":          "llama-3-3-70b",
	"mistralai/mistral-large":                    "mistral-large",
	"mistralai/mistral-small-24b-instruct-2501":  "mistral-small-3",
	"qwen/qwen-2.5-72b-instruct":                 "qwen-2-5-72b",
	"x-ai/grok-2":                                "grok-2",
	"x-ai/grok-2-vision":                         "grok-2-vision",
	"cohere/command-r-plus":                      "command-r-plus",
	"cohere/command-a":                           "cohere-command-a",
	"perplexity/sonar":                           "perplexity-sonar",
	"perplexity/sonar-pro":                       "perplexity-sonar-pro",
	"microsoft/phi-4":                            "microsoft-phi-4",
}

// OpenRouterFetcher implements Fetcher using the OpenRouter models API.
type OpenRouterFetcher struct {
	BaseURL  string
	Mappings map[string]string
	Client   *http.Client
}

// NewOpenRouterFetcher creates a new fetcher with optional proxy support.
// A nil or empty mappings table falls back to DefaultOpenRouterMappings.
func NewOpenRouterFetcher(baseURL, proxyURL string, mappings map[string]string) *OpenRouterFetcher {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	if len(mappings) == 0 {
		mappings = DefaultOpenRouterMappings
	}
	return &OpenRouterFetcher{
		BaseURL:  strings.TrimRight(baseURL, "/"),
		Mappings: mappings,
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
	}
}

func (f *OpenRouterFetcher) Name() string { return "openrouter" }

// orModel is the JSON shape of one entry in the OpenRouter models listing.
// Prices are USD per token, encoded as strings.
type orModel struct {
	ID      string `json:"id"`
	Pricing *struct {
		Prompt     string `json:"prompt"`
		Completion string `json:"completion"`
	} `json:"pricing"`
}

// FetchPrices returns per-1M-token prices for every mapped model with a positive input price.
func (f *OpenRouterFetcher) FetchPrices(ctx context.Context) (map[string]model.RoutePricing, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", f.BaseURL+"/models", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("HTTP-Referer", "https://aipricecompare.com")
	req.Header.Set("X-Title", "AI Price Compare")

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("openrouter fetch: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("openrouter: status %d, body: %s", resp.StatusCode, string(body))
	}

	var listing struct {
		Data []orModel `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&listing); err != nil {
		return nil, fmt.Errorf("openrouter decode: %w", err)
	}

	prices := make(map[string]model.RoutePricing)
	for _, m := range listing.Data {
		ourID, ok := f.Mappings[m.ID]
		if !ok || m.Pricing == nil {
			continue
		}
		in, inErr := perMillion(m.Pricing.Prompt)
		out, outErr := perMillion(m.Pricing.Completion)
		if inErr != nil || outErr != nil || in <= 0 {
			continue
		}
		prices[ourID] = model.RoutePricing{
			Provider:    "OpenRouter",
			InputPer1M:  model.Float(in),
			OutputPer1M: model.Float(out),
			Currency:    model.DefaultCurrency,
			URL:         "https://openrouter.ai/" + m.ID,
		}
	}
	return prices, nil
}

// perMillion converts a per-token price string to a per-1M price rounded to cents.
func perMillion(perToken string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(perToken), 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("invalid price %q", perToken)
	}
	return math.Round(v*1e6*100) / 100, nil
}
