package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-buildergen/pkg/generator"
)

// AdaptersCmd returns the adapters command.
func AdaptersCmd(sess *session) *cobra.Command {
	return &cobra.Command{
		Use:   "adapters",
		Short: "List the registered source adapters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			gen := generator.New(generator.WithConfig(sess.cfg))
			for _, name := range gen.Adapters() {
				marker := ""
				if name == sess.cfg.Adapter {
					marker = " (default)"
				}
				if _, err := fmt.Fprintln(cmd.OutOrStdout(), name+marker); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
