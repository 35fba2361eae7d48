package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/doeshing/copywriter-go/internal/app"
	"github.com/doeshing/copywriter-go/internal/domain"
	"github.com/doeshing/copywriter-go/internal/infrastructure/cli/commands"
	"github.com/doeshing/copywriter-go/internal/infrastructure/tui"
	"github.com/doeshing/copywriter-go/internal/ports"
)

// Options holds CLI-level configuration.
type Options struct {
	Verbose bool
}

// NewRootCmd wires the cobra root command. The container is closed when the
// command finishes.
func NewRootCmd(ctx context.Context, opts Options) (*cobra.Command, error) {
	container, err := app.BuildContainer(ctx, opts.Verbose)
	if err != nil {
		return nil, err
	}
	container.Prompter = NewPrompter(nil, nil)
	container.Clipboard = NewClipboard()
	cobra.OnFinalize(func() {
		if err := container.Close(context.Background()); err != nil {
			container.Logger.Warn("shutdown incomplete", map[string]interface{}{"error": err.Error()})
		}
	})

	generateCmd := newGenerateCommand(container)

	root := &cobra.Command{
		Use:   "copywriter [text]",
		Short: "copywriter - marketing copy rewriter",
		Long:  "copywriter rewrites marketing copy in one of six classic copywriting styles and keeps a local history.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			return generateCmd.RunE(cmd, args)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Bare `copywriter <text>` shares the generate flags.
	root.Flags().AddFlagSet(generateCmd.Flags())

	historyCmd := commands.NewHistoryCommand(container)
	historyCmd.PersistentPreRunE = func(*cobra.Command, []string) error {
		return passGate(container)
	}

	root.AddCommand(generateCmd)
	root.AddCommand(newTUICommand(container))
	root.AddCommand(commands.NewStylesCommand(container))
	root.AddCommand(historyCmd)
	root.AddCommand(commands.NewDoctorCommand(container))
	root.AddCommand(commands.NewConfigCommand(container))
	root.AddCommand(commands.NewVersionCommand())
	return root, nil
}

func newGenerateCommand(container *app.Container) *cobra.Command {
	var (
		style      string
		copyResult bool
		timeout    time.Duration
	)

	cmd := &cobra.Command{
		Use:     "generate [text]",
		Aliases: []string{"gen", "g"},
		Short:   "Rewrite copy in a copywriting style",
		Long:    "Rewrite copy in a copywriting style. The text comes from the arguments, or from stdin when none are given.",
		RunE: func(cmd *cobra.Command, args []string) error {
			key := container.Config.DefaultStyleKey()
			if style != "" {
				parsed, err := domain.ParseStyleKey(style)
				if err != nil {
					return fmt.Errorf("%w (choose from %s)", err, strings.Join(domain.StyleKeyNames(), ", "))
				}
				key = parsed
			}
			if err := passGate(container); err != nil {
				return err
			}
			input, err := readInput(cmd.InOrStdin(), args, container)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			if timeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, timeout)
				defer cancel()
			}
			return runGenerate(ctx, cmd.OutOrStdout(), cmd.ErrOrStderr(), container, domain.GenerationRequest{
				InputText: input,
				Style:     key,
			}, copyResult)
		},
	}

	cmd.Flags().StringVarP(&style, "style", "s", "", "Copywriting style: "+strings.Join(domain.StyleKeyNames(), "|")+" (default from config)")
	cmd.Flags().BoolVarP(&copyResult, "copy", "c", false, "Copy the generated copy to the clipboard")
	cmd.Flags().DurationVar(&timeout, "timeout", 0, "Abort the provider call after this long (0 = no limit)")

	return cmd
}

// runGenerate drives one pipeline, printing the reveal to out and status to errOut.
func runGenerate(ctx context.Context, out, errOut io.Writer, container *app.Container, req domain.GenerationRequest, copyResult bool) error {
	spinner := NewSpinner(errOut, "正在生成 "+req.Style.Label()+" ...")
	writer := NewRevealWriter(out)
	container.Controller.SetObserver(func(snap domain.Snapshot) {
		switch snap.State {
		case domain.StateAwaitingProvider:
			spinner.Start()
		case domain.StateRevealing:
			spinner.Stop()
			writer.WritePrefix(snap.Result)
		default:
			spinner.Stop()
		}
	})
	defer container.Controller.SetObserver(nil)

	stop := context.AfterFunc(ctx, container.Controller.Cancel)
	defer stop()

	snap, err := container.Controller.Submit(ctx, req)
	spinner.Stop()
	if err != nil {
		return err
	}
	if snap.Result != "" {
		writer.Finish(snap.Result)
	}
	if snap.State == domain.StateError {
		RenderFailure(errOut, snap)
		return errGenerationFailed
	}
	if snap.Committed == nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return fmt.Errorf("generation timed out")
		}
		return fmt.Errorf("generation cancelled")
	}
	RenderCommitted(errOut, snap.Committed)

	if copyResult {
		if err := container.Clipboard.Copy(snap.Result); err != nil {
			return fmt.Errorf("copy failed: %w", err)
		}
		RenderNotice(errOut, commands.MsgCopied)
	}
	return nil
}

// errGenerationFailed has already been rendered; main only sets the exit code.
var errGenerationFailed = &SilentError{msg: "generation failed"}

// SilentError marks failures whose message was already shown to the user.
type SilentError struct{ msg string }

func (e *SilentError) Error() string { return e.msg }

func readInput(in io.Reader, args []string, container *app.Container) (string, error) {
	if len(args) > 0 && !(len(args) == 1 && args[0] == "-") {
		return strings.Join(args, " "), nil
	}
	if len(args) == 0 && container.Prompter != nil && container.Prompter.Enabled() {
		return container.Prompter.ReadLine("原始文案")
	}
	data, err := io.ReadAll(in)
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	return strings.TrimRight(string(data), "\n"), nil
}

// passGate asks for the shared credentials when the entry gate is configured.
func passGate(container *app.Container) error {
	if container.Gate == nil || !container.Gate.Enabled() {
		return nil
	}
	if user, ok := os.LookupEnv("COPYWRITER_USER"); ok {
		if container.Gate.Check(user, os.Getenv("COPYWRITER_PASSWORD")) {
			return nil
		}
		return errInvalidLogin
	}
	if container.Prompter == nil || !container.Prompter.Enabled() {
		return fmt.Errorf("login required: set COPYWRITER_USER and COPYWRITER_PASSWORD")
	}
	user, err := container.Prompter.ReadLine("用户名")
	if err != nil {
		return err
	}
	password, err := readSecret(container.Prompter, "密码")
	if err != nil {
		return err
	}
	if !container.Gate.Check(user, password) {
		return errInvalidLogin
	}
	return nil
}

var errInvalidLogin = errors.New("用户名或密码错误")

type secretReader interface {
	ReadSecret(label string) (string, error)
}

func readSecret(prompter ports.ConfirmationPrompter, label string) (string, error) {
	if sr, ok := prompter.(secretReader); ok {
		return sr.ReadSecret(label)
	}
	return prompter.ReadLine(label)
}

func newTUICommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Open the interactive editor",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return tui.Run(tui.Config{
				Controller:   container.Controller,
				History:      container.History,
				Gate:         container.Gate,
				Clipboard:    container.Clipboard,
				DefaultStyle: container.Config.DefaultStyleKey(),
			})
		},
	}
}
