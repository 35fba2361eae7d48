package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/doeshing/copywriter-go/internal/app"
	"github.com/doeshing/copywriter-go/internal/domain"
)

// NewStylesCommand lists the rewriting styles.
func NewStylesCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "styles",
		Short: "List available copywriting styles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			current := container.Config.DefaultStyleKey()
			for _, style := range domain.Styles() {
				marker := " "
				if style.Key == current {
					marker = "*"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %-6s %s\n", marker, style.Key, style.Label)
			}
			return nil
		},
	}
}
