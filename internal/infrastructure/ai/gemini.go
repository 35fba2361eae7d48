package ai

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"google.golang.org/genai"

	"github.com/doeshing/copywriter-go/internal/domain"
	"github.com/doeshing/copywriter-go/internal/ports"
)

// geminiProvider uses the generative-content API.
type geminiProvider struct {
	client *genai.Client
	model  string
	logger ports.Logger
}

func newGeminiProvider(ctx context.Context, spec domain.SecondarySpec, httpClient *http.Client, baseURL string, logger ports.Logger) (ports.Provider, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      spec.Credential,
		Backend:     genai.BackendGeminiAPI,
		HTTPClient:  httpClient,
		HTTPOptions: genai.HTTPOptions{BaseURL: baseURL},
	})
	if err != nil {
		return nil, domain.NewError(domain.KindConfiguration, err.Error(), err)
	}
	return &geminiProvider{client: client, model: spec.Model, logger: logger}, nil
}

func (p *geminiProvider) Name() string {
	return string(domain.ProviderKindSecondary)
}

func (p *geminiProvider) Generate(ctx context.Context, prompt string) (string, error) {
	ctx, span := tracer.Start(ctx, "provider.gemini")
	span.SetAttributes(attribute.String("model", p.model))
	defer span.End()

	resp, err := p.client.Models.GenerateContent(ctx, p.model, genai.Text(prompt), nil)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "generate content failed")
		return "", p.mapError(err)
	}
	text := resp.Text()
	if text == "" {
		span.SetStatus(codes.Error, "empty response")
		return "", domain.ProviderError(domain.MsgEmptyCompletion, nil)
	}
	return text, nil
}

func (p *geminiProvider) mapError(err error) error {
	var apiErr genai.APIError
	var apiErrPtr *genai.APIError
	switch {
	case errors.As(err, &apiErr):
	case errors.As(err, &apiErrPtr):
		apiErr = *apiErrPtr
	default:
		return domain.ProviderError(strings.TrimSpace(err.Error()), err)
	}
	p.logger.Warn("gemini request rejected", map[string]interface{}{
		"code":   apiErr.Code,
		"status": apiErr.Status,
	})
	msg := strings.TrimSpace(apiErr.Message)
	if msg == "" {
		msg = domain.MsgGenericFailure
	}
	return domain.ProviderError(msg, err)
}
