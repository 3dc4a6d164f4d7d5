package cli

import (
	"os"

	"github.com/spf13/cobra"
	"langpedia/internal/app"
	"langpedia/internal/catalog"
	"langpedia/internal/transport/terminal"
)

// NewQuizCmd plays the quiz in the terminal against the configured catalog.
func NewQuizCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "quiz",
		Short: "Play the language quiz in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			loader, closeLoader, err := catalogLoader(ctx, cfg)
			if err != nil {
				return err
			}
			defer closeLoader()
			items, err := loader.LoadCatalog(ctx)
			if err != nil {
				return err
			}
			c, err := catalog.New(items)
			if err != nil {
				return err
			}

			player := terminal.NewPlayer(app.NewQuizEngine(nil), cmd.InOrStdin(), cmd.OutOrStdout(), terminal.ColorEnabled(os.Stdout))
			_, err = player.Play(ctx, c.Items())
			return err
		},
	}
}
