package service

import (
	"context"
	"errors"
	"net"
	"strings"
	"time"

	"github.com/openai/openai-go"
	"github.com/sirupsen/logrus"
)

// ChatMessage is the only shape ever sent to the provider: role and content,
// nothing else from the stored message.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Completer is the gateway contract the chat orchestration depends on.
type Completer interface {
	Complete(ctx context.Context, messages []ChatMessage) (string, error)
}

// LLMService calls the external chat-completions provider. All upstream detail
// stays in the operator log; callers only ever see the three gateway error
// kinds.
type LLMService struct {
	client      *openai.Client
	model       string
	temperature float64
	timeout     time.Duration
	hasKey      bool
	logger      *logrus.Logger
}

func NewLLMService(client *openai.Client, model string, apiKey string, readTimeout time.Duration, logger *logrus.Logger) *LLMService {
	return &LLMService{
		client:      client,
		model:       model,
		temperature: 0.7,
		timeout:     readTimeout,
		hasKey:      strings.TrimSpace(apiKey) != "",
		logger:      logger,
	}
}

// Complete sends the assembled message list and returns the assistant content
// verbatim. No retries; the configured deadline bounds the whole exchange.
func (s *LLMService) Complete(ctx context.Context, messages []ChatMessage) (string, error) {
	if !s.hasKey {
		// fail fast, no network call
		return "", ErrServiceUnavailable
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	params := openai.ChatCompletionNewParams{
		Messages:    openai.F([]openai.ChatCompletionMessageParamUnion{}),
		Model:       openai.F(s.model),
		Temperature: openai.F(s.temperature),
	}
	for _, message := range messages {
		var content any = message.Content
		params.Messages.Value = append(params.Messages.Value, openai.ChatCompletionMessageParam{
			Role:    openai.F(openai.ChatCompletionMessageParamRole(message.Role)),
			Content: openai.F(content),
		})
	}

	completion, err := s.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", s.translate(err)
	}

	if len(completion.Choices) == 0 {
		s.logger.Warnf("llm response has no choices")
		return "", ErrBadGateway
	}
	content := completion.Choices[0].Message.Content
	if strings.TrimSpace(content) == "" {
		s.logger.Warnf("llm response content is empty")
		return "", ErrBadGateway
	}
	return content, nil
}

// translate collapses transport, status, and parse failures into the gateway
// taxonomy after logging the raw detail.
func (s *LLMService) translate(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		s.logger.Warnf("llm request timed out: %s", err)
		return ErrGatewayTimeout
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		s.logger.Warnf("llm request timed out: %s", err)
		return ErrGatewayTimeout
	}
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		s.logger.Warnf("llm provider returned status %d: %s", apiErr.StatusCode, apiErr.Error())
		return ErrBadGateway
	}
	s.logger.Warnf("llm request failed: %s", err)
	return ErrBadGateway
}
