package platform

import (
	"net"
	"net/http"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// NewLLMClient builds the chat-completions client for the configured provider.
// The dialer bounds the connect phase; the per-call context bounds the read
// phase. Retries are disabled: a gateway failure is terminal for the request.
func NewLLMClient(cfg *Config) *openai.Client {
	transport := &http.Transport{
		DialContext: (&net.Dialer{
			Timeout: cfg.LLMConnectTimeout,
		}).DialContext,
	}

	opts := []option.RequestOption{
		option.WithBaseURL(cfg.LLMBaseURL),
		option.WithAPIKey(cfg.LLMAPIKey),
		option.WithHTTPClient(&http.Client{Transport: transport}),
		option.WithMaxRetries(0),
	}
	if cfg.LLMSiteURL != "" {
		opts = append(opts, option.WithHeader("HTTP-Referer", cfg.LLMSiteURL))
	}
	if cfg.LLMAppName != "" {
		opts = append(opts, option.WithHeader("X-Title", cfg.LLMAppName))
	}

	return openai.NewClient(opts...)
}
