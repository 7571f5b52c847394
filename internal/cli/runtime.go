package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	buildergen "github.com/goliatone/go-buildergen"
)

// RuntimeCmd returns the runtime command, which copies the option package
// into a project.
func RuntimeCmd(sess *session) *cobra.Command {
	var (
		out   string
		force bool
	)
	cmd := &cobra.Command{
		Use:   "runtime",
		Short: "Write the option runtime package into a directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if out == "" {
				return errors.New("--out is required")
			}
			if err := os.MkdirAll(out, 0o755); err != nil {
				return fmt.Errorf("create %s: %w", out, err)
			}
			return fs.WalkDir(buildergen.RuntimeFS(), ".", func(path string, d fs.DirEntry, err error) error {
				if err != nil || d.IsDir() {
					return err
				}
				data, err := fs.ReadFile(buildergen.RuntimeFS(), path)
				if err != nil {
					return err
				}
				target := filepath.Join(out, path)
				if _, statErr := os.Stat(target); statErr == nil && !force {
					return fmt.Errorf("%s exists; use --force to replace it", target)
				}
				if err := os.WriteFile(target, data, 0o644); err != nil {
					return fmt.Errorf("write %s: %w", target, err)
				}
				sess.log.Info("wrote runtime file", "path", target)
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "destination directory")
	cmd.Flags().BoolVar(&force, "force", false, "replace existing files")
	return cmd
}
