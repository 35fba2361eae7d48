package domain_test

import (
	"testing"
	"time"

	"github.com/doeshing/copywriter-go/internal/domain"
)

func TestResolveProvider(t *testing.T) {
	tests := []struct {
		name     string
		creds    domain.ProviderCredentials
		wantKind domain.ProviderKind
		wantErr  domain.ErrorKind
	}{
		{
			name:     "primary takes precedence",
			creds:    domain.ProviderCredentials{PrimaryKey: "a", SecondaryKey: "b"},
			wantKind: domain.ProviderKindPrimary,
		},
		{
			name:     "secondary when primary absent",
			creds:    domain.ProviderCredentials{SecondaryKey: "b"},
			wantKind: domain.ProviderKindSecondary,
		},
		{
			name:    "nothing configured",
			creds:   domain.ProviderCredentials{},
			wantErr: domain.KindConfiguration,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec, err := domain.ResolveProvider(tt.creds)
			if tt.wantErr != "" {
				if !domain.IsKind(err, tt.wantErr) {
					t.Fatalf("err = %v, want kind %s", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if spec.Kind() != tt.wantKind {
				t.Fatalf("kind = %s, want %s", spec.Kind(), tt.wantKind)
			}
		})
	}
}

func TestResolveProviderAppliesModelDefaults(t *testing.T) {
	spec, err := domain.ResolveProvider(domain.ProviderCredentials{PrimaryKey: "k"})
	if err != nil {
		t.Fatal(err)
	}
	primary, ok := spec.(domain.PrimarySpec)
	if !ok {
		t.Fatalf("spec = %T", spec)
	}
	if primary.Model != domain.DefaultPrimaryModel || primary.BaseURL != domain.DefaultPrimaryBaseURL {
		t.Fatalf("unexpected defaults: %+v", primary)
	}
}

func TestParseStyleKey(t *testing.T) {
	for _, name := range domain.StyleKeyNames() {
		key, err := domain.ParseStyleKey(name)
		if err != nil || string(key) != name {
			t.Fatalf("ParseStyleKey(%q) = %q, %v", name, key, err)
		}
	}
	if key, err := domain.ParseStyleKey(" quest "); err != nil || key != domain.StyleQUEST {
		t.Fatalf("case-insensitive parse failed: %q %v", key, err)
	}
	if _, err := domain.ParseStyleKey("SWOT"); err == nil {
		t.Fatal("expected error for unknown style")
	}
	if len(domain.Styles()) != 6 {
		t.Fatalf("want 6 styles, got %d", len(domain.Styles()))
	}
}

func TestStyleKeyNextCycles(t *testing.T) {
	key := domain.StyleAIDA
	for range domain.Styles() {
		key = key.Next()
	}
	if key != domain.StyleAIDA {
		t.Fatalf("cycle ended at %s", key)
	}
}

func TestNewHistoryEntryIDsIncrease(t *testing.T) {
	now := time.Date(2025, 3, 4, 5, 6, 7, 0, time.Local)
	req := domain.GenerationRequest{InputText: "in", Style: domain.StyleFAB}

	first := domain.NewHistoryEntry(req, "out", now, 0)
	if first.ID != now.UnixMilli() {
		t.Fatalf("id = %d", first.ID)
	}
	if first.Timestamp != "2025/3/4 05:06:07" {
		t.Fatalf("timestamp = %q", first.Timestamp)
	}
	second := domain.NewHistoryEntry(req, "out", now, first.ID)
	if second.ID <= first.ID {
		t.Fatalf("ids not increasing: %d then %d", first.ID, second.ID)
	}

	view := second.Project()
	if view.Request.InputText != "in" || view.Request.Style != domain.StyleFAB || view.GeneratedText != "out" {
		t.Fatalf("projection = %+v", view)
	}
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"validation", domain.ValidationError(domain.MsgEmptyInput), domain.MsgEmptyInput},
		{"configuration", domain.ConfigurationError(domain.MsgMissingCredentials), domain.MsgGenerationPrefix + domain.MsgMissingCredentials},
		{"provider without detail", domain.ProviderError("", nil), domain.MsgGenerationPrefix + domain.MsgGenericFailure},
		{"provider with detail", domain.ProviderError("quota", nil), domain.MsgGenerationPrefix + "quota"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := domain.UserMessage(tt.err); got != tt.want {
				t.Fatalf("got %q, want %q", got, tt.want)
			}
		})
	}
}
