package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/joseph-ayodele/docsheet/internal/common"
)

func newConfigCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage docsheet configuration",
		Long: `Manage docsheet configuration files and settings.

Configuration hierarchy (highest to lowest priority):
1. CLI flags
2. Environment variables (DOCSHEET_*, GROQ_API_KEY, OPENAI_API_KEY)
3. Config file (~/.docsheet/config.yaml)
4. Defaults`,
	}
	cmd.AddCommand(newConfigShowCmd(a), newConfigInitCmd(a))
	return cmd
}

func newConfigShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			if used := a.v.ConfigFileUsed(); used != "" {
				fmt.Fprintf(a.errOut, "Configuration file: %s\n\n", used)
			} else {
				fmt.Fprintf(a.errOut, "No configuration file found (using defaults)\n\n")
			}
			data, err := yaml.Marshal(a.cfg.Redacted())
			if err != nil {
				return fmt.Errorf("error marshaling config: %w", err)
			}
			_, err = a.out.Write(data)
			return err
		},
	}
}

func newConfigInitCmd(a *app) *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default configuration file",
		Long:  `Create a configuration file with every option at its default, at --config or ~/.docsheet/config.yaml.`,
		// The target usually does not exist yet, so skip loading it.
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.writeDefaultConfig(force)
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	return cmd
}

func (a *app) writeDefaultConfig(force bool) error {
	path := a.cfgFile
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("error finding home directory: %w", err)
		}
		path = filepath.Join(home, ".docsheet", "config.yaml")
	}
	if _, err := os.Stat(path); err == nil && !force {
		return common.NewKindError(common.KindConfig,
			"config file already exists: "+path+" (use --force to overwrite)", common.ErrInvalidInput)
	}

	body, err := yaml.Marshal(common.LoadConfig(defaultsOnly()))
	if err != nil {
		return fmt.Errorf("error marshaling config: %w", err)
	}
	header := "# docsheet configuration\n" +
		"#\n" +
		"# Prefer the environment for the API key:\n" +
		"#   export GROQ_API_KEY=gsk_...\n\n"

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return common.NewKindError(common.KindFileIO, "create config directory", err)
	}
	if err := os.WriteFile(path, append([]byte(header), body...), 0o600); err != nil {
		return common.NewKindError(common.KindFileIO, "write "+path, err)
	}
	fmt.Fprintf(a.out, "Created default configuration: %s\n", path)
	return nil
}
