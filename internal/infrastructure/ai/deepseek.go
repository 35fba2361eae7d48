package ai

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/shared"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/doeshing/copywriter-go/internal/domain"
	"github.com/doeshing/copywriter-go/internal/ports"
)

var tracer = otel.Tracer("github.com/doeshing/copywriter-go/internal/infrastructure/ai")

// deepSeekProvider talks to an OpenAI-compatible chat completions endpoint.
type deepSeekProvider struct {
	client openai.Client
	model  string
	logger ports.Logger
}

func newDeepSeekProvider(spec domain.PrimarySpec, httpClient *http.Client, logger ports.Logger) ports.Provider {
	client := openai.NewClient(
		option.WithAPIKey(spec.Credential),
		option.WithBaseURL(strings.TrimRight(spec.BaseURL, "/")+"/"),
		option.WithMaxRetries(0),
		option.WithHTTPClient(httpClient),
	)
	return &deepSeekProvider{client: client, model: spec.Model, logger: logger}
}

func (p *deepSeekProvider) Name() string {
	return string(domain.ProviderKindPrimary)
}

func (p *deepSeekProvider) Generate(ctx context.Context, prompt string) (string, error) {
	ctx, span := tracer.Start(ctx, "provider.deepseek")
	span.SetAttributes(attribute.String("model", p.model))
	defer span.End()

	resp, err := p.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:       shared.ChatModel(p.model),
		Messages:    []openai.ChatCompletionMessageParamUnion{openai.UserMessage(prompt)},
		Temperature: openai.Float(domain.DefaultPrimaryTemperature),
	}, option.WithJSONSet("stream", false))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "completion failed")
		return "", p.mapError(err)
	}
	if len(resp.Choices) == 0 {
		span.SetStatus(codes.Error, "no choices")
		return "", domain.ProviderError(domain.MsgEmptyCompletion, nil)
	}
	p.logger.Debug("completion received", map[string]interface{}{
		"model":             resp.Model,
		"completion_tokens": resp.Usage.CompletionTokens,
	})
	return resp.Choices[0].Message.Content, nil
}

func (p *deepSeekProvider) mapError(err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return domain.ProviderError(err.Error(), err)
	}
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		p.logger.Warn("deepseek request rejected", map[string]interface{}{
			"status": apiErr.StatusCode,
			"type":   apiErr.Type,
		})
		if msg := strings.TrimSpace(apiErr.Message); msg != "" {
			return domain.ProviderError(domain.MsgPrimaryPrefix+msg, err)
		}
		return domain.ProviderError(domain.MsgGenericFailure, err)
	}
	return domain.ProviderError(domain.MsgGenericFailure, err)
}
