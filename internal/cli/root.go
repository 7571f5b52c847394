// Package cli wires the buildergen commands.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-buildergen/pkg/config"
	"github.com/goliatone/go-buildergen/pkg/logger"
)

// globalFlags are shared by every command through the root's persistent
// flag set.
type globalFlags struct {
	configPath string
	logLevel   string
	logJSON    bool
}

// session is the state resolved before a command runs.
type session struct {
	cfg        config.Config
	configPath string
	log        logger.Logger
}

// RootCmd returns the buildergen command tree.
func RootCmd() *cobra.Command {
	flags := &globalFlags{}
	sess := &session{}

	root := &cobra.Command{
		Use:           "buildergen",
		Short:         "Generate validated builders for Go record types",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return sess.init(cmd, flags)
		},
	}

	root.PersistentFlags().StringVar(&flags.configPath, "config", "", "configuration file (default: nearest "+config.FileName+")")
	root.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "log level: debug, info, warn, error")
	root.PersistentFlags().BoolVar(&flags.logJSON, "log-json", false, "emit logs as JSON")

	root.AddCommand(
		GenerateCmd(sess),
		InspectCmd(sess),
		AdaptersCmd(sess),
		RuntimeCmd(sess),
	)
	return root
}

// Execute runs the root command and reports failures on stderr.
func Execute() int {
	cmd := RootCmd()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "buildergen:", err)
		return 1
	}
	return 0
}

func (s *session) init(cmd *cobra.Command, flags *globalFlags) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get working directory: %w", err)
	}
	cfg, path, err := config.Load(flags.configPath, cwd)
	if err != nil {
		return err
	}
	if flags.logLevel != "" {
		cfg.Log.Level = flags.logLevel
	}
	if cmd.Flags().Changed("log-json") {
		cfg.Log.JSON = flags.logJSON
	}
	if err := config.Validate(cfg); err != nil {
		return err
	}

	logCfg := logger.DefaultConfig()
	logCfg.Level = logger.ParseLevel(cfg.Log.Level)
	logCfg.JSON = cfg.Log.JSON
	logCfg.Output = cmd.ErrOrStderr()

	s.cfg = cfg
	s.configPath = path
	s.log = logger.NewLogger(logCfg)
	if path != "" {
		s.log.Debug("loaded configuration", "path", path)
	}
	cmd.SetContext(logger.ContextWithLogger(cmd.Context(), s.log))
	return nil
}
