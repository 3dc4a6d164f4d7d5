package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"langpedia/internal/catalog"
)

// NewCatalogCmd groups catalog maintenance commands.
func NewCatalogCmd(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Inspect and validate language catalogs",
	}
	cmd.AddCommand(newCatalogValidateCmd(configPath))
	return cmd
}

func newCatalogValidateCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "validate [path]",
		Short: "Validate a YAML or JSON catalog against the schema",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			} else {
				cfg, err := loadConfig(*configPath)
				if err != nil {
					return err
				}
				path = cfg.Catalog.Path
			}

			var (
				c   *catalog.Catalog
				err error
			)
			if path == "" {
				path = "bundled catalog"
				c = catalog.Default()
			} else {
				c, err = catalog.ParseFile(path)
			}
			out := cmd.OutOrStdout()
			if err != nil {
				var verr catalog.ValidationError
				if errors.As(err, &verr) {
					for _, e := range verr.Errors {
						fmt.Fprintf(out, "  - %s\n", e)
					}
				}
				return fmt.Errorf("%s: %w", path, err)
			}
			eligible := len(catalog.EligibleItems(c.Items()))
			fmt.Fprintf(out, "%s: %d languages, %d eligible for the quiz\n", path, c.Len(), eligible)
			return nil
		},
	}
}
