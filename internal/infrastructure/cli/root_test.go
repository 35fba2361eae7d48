package cli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/doeshing/copywriter-go/internal/app"
	"github.com/doeshing/copywriter-go/internal/application/generation"
	"github.com/doeshing/copywriter-go/internal/application/history"
	"github.com/doeshing/copywriter-go/internal/application/reveal"
	"github.com/doeshing/copywriter-go/internal/domain"
	"github.com/doeshing/copywriter-go/internal/infrastructure/auth"
	"github.com/doeshing/copywriter-go/internal/infrastructure/storage"
	"github.com/doeshing/copywriter-go/internal/pkg/logger"
	"github.com/doeshing/copywriter-go/internal/ports"
)

type scriptedProvider struct {
	text  string
	err   error
	block bool
}

func (p *scriptedProvider) Name() string { return "scripted" }

func (p *scriptedProvider) Generate(ctx context.Context, _ string) (string, error) {
	if p.block {
		<-ctx.Done()
		return "", ctx.Err()
	}
	return p.text, p.err
}

type fixedSelector struct{ provider ports.Provider }

func (s fixedSelector) Select(context.Context) (ports.Provider, error) { return s.provider, nil }

type memoryClipboard struct{ text string }

func (c *memoryClipboard) Copy(text string) error {
	c.text = text
	return nil
}

func (c *memoryClipboard) Enabled() bool { return true }

func newGenerateContainer(t *testing.T, provider ports.Provider) *app.Container {
	t.Helper()
	log := logger.Discard()
	store := history.Open(context.Background(), storage.NewFileStore(t.TempDir()), log)
	ctrl := generation.New(fixedSelector{provider: provider}, store, reveal.NewEngine(time.Millisecond), log)
	t.Cleanup(ctrl.Close)
	return &app.Container{
		Logger:     log,
		History:    store,
		Controller: ctrl,
		Clipboard:  &memoryClipboard{},
	}
}

var sampleRequest = domain.GenerationRequest{InputText: "夏季新品上市", Style: domain.StyleBAB}

func TestRunGenerateRevealsAndCommits(t *testing.T) {
	container := newGenerateContainer(t, &scriptedProvider{text: "清凉一夏，从这里开始"})
	var out, errOut bytes.Buffer

	if err := runGenerate(context.Background(), &out, &errOut, container, sampleRequest, true); err != nil {
		t.Fatalf("runGenerate() error = %v", err)
	}
	if got := out.String(); got != "清凉一夏，从这里开始\n" {
		t.Fatalf("stdout = %q", got)
	}
	if !strings.Contains(errOut.String(), "saved #") {
		t.Fatalf("stderr missing commit notice: %q", errOut.String())
	}
	if container.History.Len() != 1 {
		t.Fatalf("history len = %d, want 1", container.History.Len())
	}
	if clip := container.Clipboard.(*memoryClipboard); clip.text != "清凉一夏，从这里开始" {
		t.Fatalf("clipboard = %q", clip.text)
	}
}

func TestRunGenerateErrorStateIsSilentFailure(t *testing.T) {
	container := newGenerateContainer(t, &scriptedProvider{err: errors.New("quota exceeded")})
	var out, errOut bytes.Buffer

	err := runGenerate(context.Background(), &out, &errOut, container, sampleRequest, false)
	var silent *SilentError
	if !errors.As(err, &silent) {
		t.Fatalf("err = %v, want *SilentError", err)
	}
	if !strings.Contains(errOut.String(), domain.MsgGenerationPrefix+"quota exceeded") {
		t.Fatalf("stderr = %q", errOut.String())
	}
	if out.Len() != 0 {
		t.Fatalf("stdout should stay empty, got %q", out.String())
	}
	if container.History.Len() != 0 {
		t.Fatal("failed generation must not be recorded")
	}
}

func TestRunGenerateBlankInput(t *testing.T) {
	container := newGenerateContainer(t, &scriptedProvider{text: "unused"})
	var out, errOut bytes.Buffer

	err := runGenerate(context.Background(), &out, &errOut, container, domain.GenerationRequest{InputText: "  ", Style: domain.StyleAIDA}, false)
	if !errors.Is(err, errGenerationFailed) {
		t.Fatalf("err = %v", err)
	}
	if !strings.Contains(errOut.String(), domain.MsgEmptyInput) {
		t.Fatalf("stderr = %q", errOut.String())
	}
}

func TestRunGenerateTimeout(t *testing.T) {
	for i := 0; i < 5; i++ {
		container := newGenerateContainer(t, &scriptedProvider{block: true})
		var out, errOut bytes.Buffer

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
		err := runGenerate(ctx, &out, &errOut, container, sampleRequest, false)
		cancel()

		if err == nil || err.Error() != "generation timed out" {
			t.Fatalf("run %d: err = %v, want generation timed out", i, err)
		}
		if strings.Contains(errOut.String(), domain.MsgGenerationPrefix) {
			t.Fatalf("run %d: timeout rendered as provider failure: %q", i, errOut.String())
		}
		if container.History.Len() != 0 {
			t.Fatalf("run %d: timed out generation recorded", i)
		}
	}
}

type loginPrompter struct {
	user, password string
	secretReads    int
}

func (p *loginPrompter) Confirm(string) (bool, error) { return false, nil }

func (p *loginPrompter) ReadLine(label string) (string, error) {
	if label == "用户名" {
		return p.user, nil
	}
	return "", errors.New("password must not be read with echo")
}

func (p *loginPrompter) ReadSecret(string) (string, error) {
	p.secretReads++
	return p.password, nil
}

func (p *loginPrompter) Enabled() bool { return true }

func unsetLoginEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"COPYWRITER_USER", "COPYWRITER_PASSWORD"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestPassGate(t *testing.T) {
	gate := auth.NewGate(domain.Credentials{LoginUser: "editor", LoginPassword: "s3cret"})

	t.Run("disabled gate", func(t *testing.T) {
		unsetLoginEnv(t)
		container := &app.Container{Gate: auth.NewGate(domain.Credentials{})}
		if err := passGate(container); err != nil {
			t.Fatalf("err = %v", err)
		}
	})

	t.Run("prompted password is read without echo", func(t *testing.T) {
		unsetLoginEnv(t)
		prompter := &loginPrompter{user: "editor", password: "s3cret"}
		container := &app.Container{Gate: gate, Prompter: prompter}
		if err := passGate(container); err != nil {
			t.Fatalf("err = %v", err)
		}
		if prompter.secretReads != 1 {
			t.Fatalf("secret reads = %d, want 1", prompter.secretReads)
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		unsetLoginEnv(t)
		container := &app.Container{Gate: gate, Prompter: &loginPrompter{user: "editor", password: "nope"}}
		if err := passGate(container); !errors.Is(err, errInvalidLogin) {
			t.Fatalf("err = %v, want errInvalidLogin", err)
		}
	})

	t.Run("environment credentials", func(t *testing.T) {
		t.Setenv("COPYWRITER_USER", "editor")
		t.Setenv("COPYWRITER_PASSWORD", "s3cret")
		if err := passGate(&app.Container{Gate: gate}); err != nil {
			t.Fatalf("err = %v", err)
		}
	})

	t.Run("no prompter and no environment", func(t *testing.T) {
		unsetLoginEnv(t)
		if err := passGate(&app.Container{Gate: gate}); err == nil {
			t.Fatal("expected login required error")
		}
	})
}
