package ai

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/doeshing/copywriter-go/internal/domain"
	"github.com/doeshing/copywriter-go/internal/pkg/logger"
)

type stubConfig struct {
	cfg   domain.Config
	err   error
	loads atomic.Int32
}

func (s *stubConfig) Load(context.Context) (domain.Config, error) {
	s.loads.Add(1)
	return s.cfg, s.err
}

func TestDeepSeekGenerate(t *testing.T) {
	var got struct {
		Model       string  `json:"model"`
		Temperature float64 `json:"temperature"`
		Stream      *bool   `json:"stream"`
		Messages    []struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"messages"`
	}
	var auth, path string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		path = r.URL.Path
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &got)
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"id":"c1","object":"chat.completion","created":1,"model":"deepseek-reasoner",
			"choices":[{"index":0,"finish_reason":"stop","message":{"role":"assistant","content":"焕新文案"}}],
			"usage":{"prompt_tokens":10,"completion_tokens":4,"total_tokens":14}}`)
	}))
	defer server.Close()

	provider := newDeepSeekProvider(domain.PrimarySpec{
		Credential: "sk-test",
		Model:      "deepseek-reasoner",
		BaseURL:    server.URL,
	}, server.Client(), logger.Discard())

	text, err := provider.Generate(context.Background(), "prompt body")
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if text != "焕新文案" {
		t.Fatalf("text = %q", text)
	}
	if path != "/chat/completions" {
		t.Fatalf("path = %q", path)
	}
	if auth != "Bearer sk-test" {
		t.Fatalf("authorization = %q", auth)
	}
	if got.Model != "deepseek-reasoner" || got.Temperature != 0.7 {
		t.Fatalf("request = %+v", got)
	}
	if got.Stream == nil || *got.Stream {
		t.Fatalf("stream = %v, want explicit false", got.Stream)
	}
	if len(got.Messages) != 1 || got.Messages[0].Role != "user" || got.Messages[0].Content != "prompt body" {
		t.Fatalf("messages = %+v", got.Messages)
	}
}

func TestDeepSeekErrorIsProviderKind(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusPaymentRequired)
		_, _ = io.WriteString(w, `{"error":{"message":"Insufficient Balance","type":"unknown_error"}}`)
	}))
	defer server.Close()

	provider := newDeepSeekProvider(domain.PrimarySpec{Credential: "sk", Model: "m", BaseURL: server.URL}, server.Client(), logger.Discard())
	_, err := provider.Generate(context.Background(), "p")
	if !domain.IsKind(err, domain.KindProvider) {
		t.Fatalf("err = %v, want provider kind", err)
	}
	if got, want := err.Error(), domain.MsgPrimaryPrefix+"Insufficient Balance"; got != want {
		t.Fatalf("message = %q, want %q", got, want)
	}
	if calls.Load() != 1 {
		t.Fatalf("calls = %d, retries must be disabled", calls.Load())
	}
}

func TestDeepSeekFailuresWithoutUpstreamMessage(t *testing.T) {
	emptyMessage := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = io.WriteString(w, `{"error":{"message":"","type":"server_error"}}`)
	}))
	defer emptyMessage.Close()

	unreachable := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	unreachableURL := unreachable.URL
	unreachable.Close()

	tests := []struct {
		name    string
		baseURL string
	}{
		{"empty upstream message", emptyMessage.URL},
		{"transport failure", unreachableURL},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider := newDeepSeekProvider(domain.PrimarySpec{Credential: "sk", Model: "m", BaseURL: tt.baseURL}, http.DefaultClient, logger.Discard())
			_, err := provider.Generate(context.Background(), "p")
			if !domain.IsKind(err, domain.KindProvider) {
				t.Fatalf("err = %v, want provider kind", err)
			}
			if err.Error() != domain.MsgGenericFailure {
				t.Fatalf("message = %q, want generic failure", err.Error())
			}
			if errors.Unwrap(err) == nil {
				t.Fatal("cause should be attached")
			}
		})
	}
}

func TestDeepSeekEmptyChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"id":"c1","object":"chat.completion","created":1,"model":"m","choices":[]}`)
	}))
	defer server.Close()

	provider := newDeepSeekProvider(domain.PrimarySpec{Credential: "sk", Model: "m", BaseURL: server.URL}, server.Client(), logger.Discard())
	_, err := provider.Generate(context.Background(), "p")
	if !domain.IsKind(err, domain.KindProvider) || err.Error() != domain.MsgEmptyCompletion {
		t.Fatalf("err = %v", err)
	}
}

func TestGeminiGenerate(t *testing.T) {
	var path, key string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		key = r.Header.Get("x-goog-api-key")
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"candidates":[{"content":{"role":"model","parts":[{"text":"双子座文案"}]},"finishReason":"STOP"}]}`)
	}))
	defer server.Close()

	provider, err := newGeminiProvider(context.Background(), domain.SecondarySpec{Credential: "g-key", Model: "gemini-2.5-flash"}, server.Client(), server.URL, logger.Discard())
	if err != nil {
		t.Fatal(err)
	}
	text, err := provider.Generate(context.Background(), "prompt")
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if text != "双子座文案" {
		t.Fatalf("text = %q", text)
	}
	if !strings.Contains(path, "gemini-2.5-flash:generateContent") {
		t.Fatalf("path = %q", path)
	}
	if key != "g-key" {
		t.Fatalf("api key header = %q", key)
	}
}

func TestGeminiErrorCarriesUpstreamMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = io.WriteString(w, `{"error":{"code":400,"message":"API key not valid","status":"INVALID_ARGUMENT"}}`)
	}))
	defer server.Close()

	provider, err := newGeminiProvider(context.Background(), domain.SecondarySpec{Credential: "bad", Model: "m"}, server.Client(), server.URL, logger.Discard())
	if err != nil {
		t.Fatal(err)
	}
	_, err = provider.Generate(context.Background(), "p")
	if !domain.IsKind(err, domain.KindProvider) {
		t.Fatalf("err = %v, want provider kind", err)
	}
	if !strings.Contains(domain.UserMessage(err), "API key not valid") {
		t.Fatalf("user message = %q", domain.UserMessage(err))
	}
}

func TestGeminiEmptyUpstreamMessageFallsBackToGeneric(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = io.WriteString(w, `{"error":{"code":500,"message":"","status":"INTERNAL"}}`)
	}))
	defer server.Close()

	provider, err := newGeminiProvider(context.Background(), domain.SecondarySpec{Credential: "k", Model: "m"}, server.Client(), server.URL, logger.Discard())
	if err != nil {
		t.Fatal(err)
	}
	_, err = provider.Generate(context.Background(), "p")
	if !domain.IsKind(err, domain.KindProvider) || err.Error() != domain.MsgGenericFailure {
		t.Fatalf("err = %v, want generic provider failure", err)
	}
}

func TestGeminiTransportFailureCarriesCause(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	baseURL := server.URL
	server.Close()

	provider, err := newGeminiProvider(context.Background(), domain.SecondarySpec{Credential: "k", Model: "m"}, http.DefaultClient, baseURL, logger.Discard())
	if err != nil {
		t.Fatal(err)
	}
	_, err = provider.Generate(context.Background(), "p")
	if !domain.IsKind(err, domain.KindProvider) {
		t.Fatalf("err = %v, want provider kind", err)
	}
	cause := errors.Unwrap(err)
	if cause == nil {
		t.Fatal("cause should be attached")
	}
	if got, want := err.Error(), strings.TrimSpace(cause.Error()); got != want {
		t.Fatalf("message = %q, want transport error %q", got, want)
	}
	if got := domain.UserMessage(err); got != domain.MsgGenerationPrefix+strings.TrimSpace(cause.Error()) {
		t.Fatalf("user message = %q", got)
	}
}

func TestSelectorPrecedence(t *testing.T) {
	tests := []struct {
		name  string
		creds domain.Credentials
		want  string
	}{
		{"primary wins", domain.Credentials{PrimaryKey: "a", SecondaryKey: "b"}, "deepseek"},
		{"secondary fallback", domain.Credentials{SecondaryKey: "b"}, "gemini"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &stubConfig{cfg: domain.Config{Credentials: tt.creds}}
			sel := NewSelector(cfg, NewFactory(logger.Discard()), logger.Discard())
			provider, err := sel.Select(context.Background())
			if err != nil {
				t.Fatal(err)
			}
			if provider.Name() != tt.want {
				t.Fatalf("provider = %s, want %s", provider.Name(), tt.want)
			}
		})
	}
}

func TestSelectorWithoutCredentials(t *testing.T) {
	cfg := &stubConfig{}
	sel := NewSelector(cfg, NewFactory(logger.Discard()), logger.Discard())

	_, err := sel.Select(context.Background())
	if !domain.IsKind(err, domain.KindConfiguration) {
		t.Fatalf("err = %v, want configuration kind", err)
	}
	if _, err := sel.Select(context.Background()); err == nil {
		t.Fatal("expected error on second call")
	}
	if cfg.loads.Load() != 2 {
		t.Fatalf("config loaded %d times, want once per request", cfg.loads.Load())
	}
}

func TestSelectorConfigFailure(t *testing.T) {
	sel := NewSelector(&stubConfig{err: errors.New("yaml: bad indent")}, NewFactory(logger.Discard()), logger.Discard())
	_, err := sel.Select(context.Background())
	if !domain.IsKind(err, domain.KindConfiguration) {
		t.Fatalf("err = %v", err)
	}
}
