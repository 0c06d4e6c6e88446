// SPDX-License-Identifier: MIT

package commands

import (
	"fmt"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/varbox/config"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage varbox configuration files",
	}

	initCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Write the default configuration as TOML",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := DefaultConfigFile
			if len(args) == 1 {
				path = args[0]
			}
			force, _ := cmd.Flags().GetBool("force")
			if _, err := os.Stat(path); err == nil && !force {
				return errors.WithHint(errors.Newf("%s already exists", path), "pass --force to overwrite it")
			}
			if err := config.Save(path, config.Default()); err != nil {
				return errors.Wrap(err, "config init")
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
			return nil
		},
	}
	initCmd.Flags().Bool("force", false, "overwrite an existing file")

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := config.NewViper(configPath(cmd))
			if err != nil {
				return err
			}
			cfg, err := config.Load(v)
			if err != nil {
				return err
			}
			data, err := toml.Marshal(cfg)
			if err != nil {
				return errors.Wrap(err, "failed to marshal config to TOML")
			}
			fmt.Fprintf(cmd.OutOrStdout(), "# varbox configuration\n%s", data)
			return nil
		},
	}

	cmd.AddCommand(initCmd, showCmd)

	return cmd
}
