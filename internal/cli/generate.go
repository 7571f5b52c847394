package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-buildergen/pkg/config"
	"github.com/goliatone/go-buildergen/pkg/generator"
	"github.com/goliatone/go-buildergen/pkg/tui"
)

type generateFlags struct {
	types       []string
	adapter     string
	out         string
	stdout      bool
	interactive bool
	force       bool
	pkg         string
}

// GenerateCmd returns the generate command.
func GenerateCmd(sess *session) *cobra.Command {
	flags := &generateFlags{}
	cmd := &cobra.Command{
		Use:   "generate [files...]",
		Short: "Write a builder file next to each source",
		Long: `Generate reads Go sources, YAML record descriptors, OpenAPI documents, or
JSON Schemas and writes one <name>_builder.go file per input. Without arguments the file
named by $GOFILE is used, so the command works as a go:generate directive.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, sess, flags, args)
		},
	}

	cmd.Flags().StringSliceVarP(&flags.types, "type", "t", nil, "record names to generate (default: directive-marked records)")
	cmd.Flags().StringVar(&flags.adapter, "adapter", "", "source adapter: go, descriptor, openapi, jsonschema (default: detect)")
	cmd.Flags().StringVarP(&flags.out, "out", "o", "", "output directory (default: next to the source)")
	cmd.Flags().BoolVar(&flags.stdout, "stdout", false, "print generated source instead of writing files")
	cmd.Flags().BoolVarP(&flags.interactive, "interactive", "i", false, "pick records and confirm overwrites in the terminal")
	cmd.Flags().BoolVar(&flags.force, "force", false, "overwrite files that were not generated")
	cmd.Flags().StringVar(&flags.pkg, "package", "", "package name for records declared by OpenAPI and JSON Schema documents")
	return cmd
}

func runGenerate(cmd *cobra.Command, sess *session, flags *generateFlags, args []string) error {
	sources, err := sourceArgs(args)
	if err != nil {
		return err
	}

	cfg := sess.cfg
	if flags.pkg != "" {
		cfg.OpenAPI.Package = flags.pkg
		if err := config.Validate(cfg); err != nil {
			return fmt.Errorf("--package %q: %w", flags.pkg, err)
		}
	}

	options := []generator.Option{
		generator.WithConfig(cfg),
		generator.WithLogger(sess.log),
	}
	var prompter *tui.Prompter
	if flags.interactive {
		prompter = tui.New(tui.WithPromptDriver(tui.NewSurveyDriver(cmd.ErrOrStderr())))
		options = append(options, generator.WithSelector(prompter))
	}
	gen := generator.New(options...)

	if flags.out != "" && !flags.stdout {
		if err := os.MkdirAll(flags.out, 0o755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}

	ctx := cmd.Context()
	written := 0
	for _, src := range sources {
		res, err := gen.Generate(ctx, generator.Request{
			Source:      src,
			Adapter:     flags.adapter,
			TypeNames:   flags.types,
			Interactive: flags.interactive,
		})
		if errors.Is(err, generator.ErrNoRecords) {
			sess.log.Warn("nothing to generate", "source", src.Location())
			continue
		}
		if err != nil {
			return err
		}

		if flags.stdout {
			if _, err := cmd.OutOrStdout().Write(res.Source); err != nil {
				return fmt.Errorf("write stdout: %w", err)
			}
			written++
			continue
		}

		target := outputPath(res, flags.out)
		ok, err := mayOverwrite(cmd, prompter, target, flags.force)
		if err != nil {
			return err
		}
		if !ok {
			sess.log.Warn("skipped existing file", "path", target)
			continue
		}
		if err := os.WriteFile(target, res.Source, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", target, err)
		}
		sess.log.Info("wrote builders", "path", target, "records", len(res.Units))
		written++
	}

	if written == 0 {
		sess.log.Warn("no files generated")
	}
	return nil
}

// outputPath places the result in dir when given, next to a local source
// otherwise, and in the working directory for remote sources.
func outputPath(res generator.Result, dir string) string {
	if strings.TrimSpace(dir) != "" {
		return filepath.Join(dir, res.FileName)
	}
	if res.Path != "" {
		return res.Path
	}
	return res.FileName
}

// mayOverwrite allows replacing missing or generated files. Hand-written
// files need --force, or a confirmation in interactive mode.
func mayOverwrite(cmd *cobra.Command, prompter *tui.Prompter, path string, force bool) (bool, error) {
	existing, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf("read %s: %w", path, err)
	}
	if force || tui.IsGenerated(existing) {
		return true, nil
	}
	if prompter != nil {
		return prompter.ConfirmOverwrite(cmd.Context(), path, existing)
	}
	return false, fmt.Errorf("%s exists and was not generated; use --force to replace it", path)
}
