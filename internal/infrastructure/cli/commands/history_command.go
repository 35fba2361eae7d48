package commands

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"github.com/doeshing/copywriter-go/internal/app"
	"github.com/doeshing/copywriter-go/internal/domain"
	"github.com/doeshing/copywriter-go/internal/infrastructure/cli/helpers"
)

// NewHistoryCommand creates the history command with all subcommands
func NewHistoryCommand(container *app.Container) *cobra.Command {
	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect generation history",
		RunE: func(cmd *cobra.Command, args []string) error {
			return listHistoryEntries(cmd.OutOrStdout(), container, 0)
		},
	}

	historyCmd.AddCommand(
		newHistoryListCommand(container),
		newHistoryShowCommand(container),
		newHistoryLoadCommand(container),
		newHistoryDeleteCommand(container),
		newHistoryClearCommand(container),
		newHistoryExportCommand(container),
	)

	return historyCmd
}

// newHistoryListCommand creates the 'history list' subcommand
func newHistoryListCommand(container *app.Container) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List history entries, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			return listHistoryEntries(cmd.OutOrStdout(), container, limit)
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 0, "Max entries to show (0 = all)")
	return cmd
}

// newHistoryShowCommand creates the 'history show' subcommand
func newHistoryShowCommand(container *app.Container) *cobra.Command {
	var render bool

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show one history entry in full",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			entry, err := lookupEntry(container, args[0])
			if err != nil {
				return err
			}
			doc := entryMarkdown(entry)
			if render {
				rendered, err := renderMarkdown(doc)
				if err == nil {
					doc = rendered
				}
			}
			fmt.Fprint(cmd.OutOrStdout(), doc)
			return nil
		},
	}

	cmd.Flags().BoolVar(&render, "render", false, "Render with terminal styling")
	return cmd
}

// newHistoryLoadCommand creates the 'history load' subcommand
func newHistoryLoadCommand(container *app.Container) *cobra.Command {
	var copyResult bool

	cmd := &cobra.Command{
		Use:   "load <id>",
		Short: "Print an entry's generated copy (optionally to the clipboard)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseEntryID(args[0])
			if err != nil {
				return err
			}
			view, err := container.Controller.LoadEntry(id)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, view.GeneratedText)
			if copyResult {
				if container.Clipboard == nil {
					return fmt.Errorf("clipboard unavailable")
				}
				if err := container.Clipboard.Copy(view.GeneratedText); err != nil {
					return fmt.Errorf("copy failed: %w", err)
				}
				fmt.Fprintln(cmd.ErrOrStderr(), MsgCopied)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&copyResult, "copy", "c", false, "Copy the generated copy to the clipboard")
	return cmd
}

// newHistoryDeleteCommand creates the 'history delete' subcommand
func newHistoryDeleteCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete one history entry",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			entry, err := lookupEntry(container, args[0])
			if err != nil {
				return err
			}
			if err := container.History.Remove(cmd.Context(), entry.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), MsgEntryDeleted, entry.ID)
			return nil
		},
	}
}

// newHistoryClearCommand creates the 'history clear' subcommand
func newHistoryClearCommand(container *app.Container) *cobra.Command {
	var assumeYes bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete all history entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			confirmed, err := helpers.ConfirmDestructive(container.Prompter, assumeYes, PromptConfirmClear)
			if err != nil {
				return err
			}
			if !confirmed {
				fmt.Fprintln(cmd.OutOrStdout(), MsgHistoryCancelled)
				return nil
			}
			if err := container.History.Clear(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), MsgHistoryCleared)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "Skip the confirmation prompt")
	return cmd
}

// newHistoryExportCommand creates the 'history export' subcommand
func newHistoryExportCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "export [path]",
		Short: "Export history as a JSON array (stdout when no path is given)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 || args[0] == "-" {
				return container.History.Export(cmd.OutOrStdout())
			}
			file, err := os.OpenFile(args[0], os.O_CREATE|os.O_TRUNC|os.O_WRONLY, domain.SecureFilePermissions)
			if err != nil {
				return err
			}
			if err := container.History.Export(file); err != nil {
				file.Close()
				return err
			}
			return file.Close()
		},
	}
}

// listHistoryEntries lists entries with truncated previews
func listHistoryEntries(out io.Writer, container *app.Container, limit int) error {
	if container.History == nil {
		return fmt.Errorf(ErrHistoryStoreUnavailable)
	}

	entries := container.History.Entries()
	if len(entries) == 0 {
		fmt.Fprintln(out, MsgNoHistoryRecorded)
		return nil
	}
	if limit > 0 && limit < len(entries) {
		entries = entries[:limit]
	}
	for _, entry := range entries {
		fmt.Fprintf(out, "#%d | %s | %s\n  %s\n  → %s\n",
			entry.ID,
			entry.Timestamp,
			entry.Style,
			helpers.Truncate(entry.InputText, domain.InputPreviewRunes),
			helpers.Truncate(entry.GeneratedText, domain.OutputPreviewRunes))
	}
	return nil
}

func lookupEntry(container *app.Container, raw string) (domain.HistoryEntry, error) {
	id, err := parseEntryID(raw)
	if err != nil {
		return domain.HistoryEntry{}, err
	}
	entry, ok := container.History.Get(id)
	if !ok {
		return domain.HistoryEntry{}, fmt.Errorf(ErrEntryNotFound, id)
	}
	return entry, nil
}

func parseEntryID(raw string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimPrefix(strings.TrimSpace(raw), "#"), 10, 64)
	if err != nil {
		return 0, fmt.Errorf(ErrInvalidEntryID, raw)
	}
	return id, nil
}

func entryMarkdown(entry domain.HistoryEntry) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# #%d %s\n\n", entry.ID, entry.Style.Label())
	fmt.Fprintf(&b, "_%s_\n\n", entry.Timestamp)
	b.WriteString("## 原始文案\n\n")
	b.WriteString(entry.InputText)
	b.WriteString("\n\n## 生成文案\n\n")
	b.WriteString(entry.GeneratedText)
	b.WriteString("\n")
	return b.String()
}

func renderMarkdown(doc string) (string, error) {
	renderer, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(100))
	if err != nil {
		return "", err
	}
	return renderer.Render(doc)
}
